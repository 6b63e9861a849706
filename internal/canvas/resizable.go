package canvas

import (
	"math"

	"VisionBoard/internal/gesture"
	"VisionBoard/internal/state"

	log "github.com/sirupsen/logrus"
)

// Resizable turns an item's footprint into a box resized from its
// bottom-right handle, never smaller than MinSize on either side.
type Resizable struct {
	t       tracker[state.Size]
	minSize int
	scale   float64
	// followZoom divides deltas by scale. Off by default: the handle tracks
	// raw screen pixels.
	followZoom bool

	// OnCommit receives the final size of every resize.
	OnCommit func(id string, s state.Size)
}

// NewResizable creates an idle wrapper for item id with the given size.
func NewResizable(r *gesture.Router, id string, size state.Size, minSize int) *Resizable {
	if minSize < 1 {
		minSize = state.DefaultMinItemSize
	}
	rs := &Resizable{minSize: minSize, scale: 1}
	rs.t = tracker[state.Size]{
		id:     id,
		router: r,
		owner:  rs,
		value:  size,
		auth:   size,
		step:   rs.step,
		commit: rs.commitSize,
	}
	return rs
}

func (rs *Resizable) step(origin state.Size, dx, dy float64) state.Size {
	if rs.followZoom {
		dx, dy = dx/rs.scale, dy/rs.scale
	}
	return state.Size{
		Width:  max(rs.minSize, int(math.Round(float64(origin.Width)+dx))),
		Height: max(rs.minSize, int(math.Round(float64(origin.Height)+dy))),
	}
}

func (rs *Resizable) commitSize(id string, s state.Size) {
	log.WithFields(log.Fields{"id": id, "width": s.Width, "height": s.Height}).Debug("resize committed")
	if rs.OnCommit != nil {
		rs.OnCommit(id, s)
	}
}

// ID returns the wrapped item's id.
func (rs *Resizable) ID() string { return rs.t.id }

// Size is the size to draw the item at right now.
func (rs *Resizable) Size() state.Size { return rs.t.value }

// Phase reports whether a resize is in progress.
func (rs *Resizable) Phase() Phase { return rs.t.phase() }

// SetScale sets the current zoom. It only matters when deltas follow zoom.
func (rs *Resizable) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	rs.scale = scale
}

// SetFollowZoom chooses whether resize deltas are divided by zoom.
func (rs *Resizable) SetFollowZoom(follow bool) { rs.followZoom = follow }

// SetEditing suspends reconciliation while the item's text is being edited.
func (rs *Resizable) SetEditing(editing bool) { rs.t.setEditing(editing) }

// SetAuthoritative records the store's size; see Draggable.SetAuthoritative.
func (rs *Resizable) SetAuthoritative(s state.Size) { rs.t.setAuthoritative(s) }

// PointerDown starts a resize. The host only calls it for presses on the
// resize handle.
func (rs *Resizable) PointerDown(ev gesture.Event) bool {
	if !rs.t.begin(ev) {
		return false
	}
	log.WithField("id", rs.t.id).Debug("resize started")
	return true
}

// Close commits and releases an open resize.
func (rs *Resizable) Close() { rs.t.close() }
