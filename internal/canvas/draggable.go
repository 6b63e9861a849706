package canvas

import (
	"VisionBoard/internal/gesture"
	"VisionBoard/internal/state"

	log "github.com/sirupsen/logrus"
)

// Target classifies what part of an item a press landed on.
type Target uint8

const (
	TargetBody Target = iota
	TargetTextEdit
	TargetResizeHandle
	TargetDelete
)

// Draggable turns an item into a pointer-draggable element. While dragging
// it shows a transient position; on release the final position is handed to
// OnCommit exactly once.
type Draggable struct {
	t        tracker[state.Point]
	scale    float64
	disabled bool

	// OnCommit receives the final position of every drag.
	OnCommit func(id string, p state.Point)
	// OnSelect runs on every qualifying press, before the drag starts.
	OnSelect func(id string)
}

// NewDraggable creates an idle wrapper for item id at pos.
func NewDraggable(r *gesture.Router, id string, pos state.Point) *Draggable {
	d := &Draggable{scale: 1}
	d.t = tracker[state.Point]{
		id:     id,
		router: r,
		owner:  d,
		value:  pos,
		auth:   pos,
		step:   d.step,
		commit: d.commitPosition,
	}
	return d
}

func (d *Draggable) step(origin state.Point, dx, dy float64) state.Point {
	return state.RoundPoint(float64(origin.X)+dx/d.scale, float64(origin.Y)+dy/d.scale)
}

func (d *Draggable) commitPosition(id string, p state.Point) {
	log.WithFields(log.Fields{"id": id, "x": p.X, "y": p.Y}).Debug("drag committed")
	if d.OnCommit != nil {
		d.OnCommit(id, p)
	}
}

// ID returns the wrapped item's id.
func (d *Draggable) ID() string { return d.t.id }

// Position is the position to draw the item at right now.
func (d *Draggable) Position() state.Point { return d.t.value }

// Phase reports whether a drag is in progress.
func (d *Draggable) Phase() Phase { return d.t.phase() }

// SetScale sets the current zoom used to convert pixel deltas.
func (d *Draggable) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	d.scale = scale
}

// SetDisabled stops presses from starting drags; they still select.
func (d *Draggable) SetDisabled(disabled bool) { d.disabled = disabled }

// SetEditing suspends reconciliation while the item's text is being edited.
func (d *Draggable) SetEditing(editing bool) { d.t.setEditing(editing) }

// SetAuthoritative records the store's position. It is shown immediately
// unless a drag or an edit is in progress.
func (d *Draggable) SetAuthoritative(p state.Point) { d.t.setAuthoritative(p) }

// PointerDown starts a drag if the press landed on the item body. Presses
// on the text editor, resize handle or delete button are ignored.
func (d *Draggable) PointerDown(ev gesture.Event, target Target) bool {
	if target != TargetBody || d.t.phase() == Active {
		return false
	}
	if d.OnSelect != nil {
		d.OnSelect(d.t.id)
	}
	if d.disabled {
		return false
	}
	if !d.t.begin(ev) {
		return false
	}
	log.WithField("id", d.t.id).Debug("drag started")
	return true
}

// Close commits and releases an open drag. Call it when the item goes away.
func (d *Draggable) Close() { d.t.close() }
