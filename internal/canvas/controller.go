package canvas

import (
	"VisionBoard/internal/gesture"
	"VisionBoard/internal/state"

	log "github.com/sirupsen/logrus"
)

// Affordance sizes in logical units.
const (
	HandleSize       = 16.0
	DeleteButtonSize = 24.0
	// DeleteButtonInset is how far the delete button overhangs the item's
	// top-right corner.
	DeleteButtonInset = 8.0
)

// Hit is the result of hit-testing a screen point.
type Hit struct {
	Target Target
	ID     string
	// Background is true when the point is on empty canvas.
	Background bool
}

// item bundles the two wrappers that belong to one board item.
type item struct {
	drag   *Draggable
	resize *Resizable
}

// Controller is the canvas engine: it decides whether input pans the view
// or drives an item, keeps one Draggable and one Resizable per store item,
// and pushes authoritative values into them when the store changes.
type Controller struct {
	store  *state.Store
	view   *Viewport
	router *gesture.Router

	items   map[string]*item
	order   []string
	unsub   func()
	refresh func()

	// OnBackground runs after a background press cleared the selection, so
	// the host can close menus.
	OnBackground func()
}

// NewController wires a store, a viewport and a router together.
func NewController(store *state.Store, view *Viewport, router *gesture.Router) *Controller {
	c := &Controller{
		store:  store,
		view:   view,
		router: router,
		items:  make(map[string]*item),
	}
	c.unsub = store.Subscribe(func(state.Change) { c.Sync() })
	prev := view.OnChange
	view.OnChange = func(vs ViewportState) {
		c.syncScale(vs.Zoom)
		c.redraw()
		if prev != nil {
			prev(vs)
		}
	}
	c.Sync()
	return c
}

// Store returns the board store.
func (c *Controller) Store() *state.Store { return c.store }

// Viewport returns the pan/zoom controller.
func (c *Controller) Viewport() *Viewport { return c.view }

// Router returns the input router gestures register on.
func (c *Controller) Router() *gesture.Router { return c.router }

// SetRefresh sets a callback run whenever a transient value changes and the
// host should redraw.
func (c *Controller) SetRefresh(fn func()) { c.refresh = fn }

func (c *Controller) redraw() {
	if c.refresh != nil {
		c.refresh()
	}
}

// Sync reconciles the wrappers with the store: new items get wrappers,
// removed items have theirs closed, and every survivor receives the
// authoritative position, size and editing flag.
func (c *Controller) Sync() {
	items := c.store.Items()
	editing := c.store.Editing()
	zoom := c.view.Zoom()

	seen := make(map[string]bool, len(items))
	order := make([]string, 0, len(items))
	for _, it := range items {
		seen[it.ID] = true
		order = append(order, it.ID)
		w, ok := c.items[it.ID]
		if !ok {
			w = c.newItem(it)
			c.items[it.ID] = w
		}
		w.drag.SetScale(zoom)
		w.resize.SetScale(zoom)
		w.drag.SetEditing(it.ID == editing)
		w.resize.SetEditing(it.ID == editing)
		w.drag.SetAuthoritative(it.Position)
		w.resize.SetAuthoritative(it.Size)
	}
	c.order = order
	for id, w := range c.items {
		if !seen[id] {
			delete(c.items, id)
			w.drag.Close()
			w.resize.Close()
		}
	}
	c.redraw()
}

func (c *Controller) newItem(it state.BoardItem) *item {
	geo := c.view.Geometry()
	d := NewDraggable(c.router, it.ID, it.Position)
	d.OnCommit = c.store.UpdatePosition
	d.OnSelect = c.store.Select
	r := NewResizable(c.router, it.ID, it.Size, geo.MinItemSize)
	r.SetFollowZoom(geo.ResizeFollowsZoom)
	r.OnCommit = c.store.UpdateSize
	return &item{drag: d, resize: r}
}

func (c *Controller) syncScale(zoom float64) {
	for _, w := range c.items {
		w.drag.SetScale(zoom)
		w.resize.SetScale(zoom)
	}
}

// Position returns the position an item should be drawn at.
func (c *Controller) Position(id string) (state.Point, bool) {
	w, ok := c.items[id]
	if !ok {
		return state.Point{}, false
	}
	return w.drag.Position(), true
}

// Size returns the size an item should be drawn at.
func (c *Controller) Size(id string) (state.Size, bool) {
	w, ok := c.items[id]
	if !ok {
		return state.Size{}, false
	}
	return w.resize.Size(), true
}

// Draggable returns the drag wrapper of an item.
func (c *Controller) Draggable(id string) *Draggable {
	if w, ok := c.items[id]; ok {
		return w.drag
	}
	return nil
}

// Resizable returns the resize wrapper of an item.
func (c *Controller) Resizable(id string) *Resizable {
	if w, ok := c.items[id]; ok {
		return w.resize
	}
	return nil
}

// Bounds returns an item's drawn footprint in logical space.
func (c *Controller) Bounds(id string) (state.Rect, bool) {
	w, ok := c.items[id]
	if !ok {
		return state.Rect{}, false
	}
	p, s := w.drag.Position(), w.resize.Size()
	return state.Rect{X: float64(p.X), Y: float64(p.Y), Width: float64(s.Width), Height: float64(s.Height)}, true
}

// DeleteButtonBounds returns the logical rectangle of an item's delete
// affordance.
func (c *Controller) DeleteButtonBounds(id string) (state.Rect, bool) {
	b, ok := c.Bounds(id)
	if !ok {
		return state.Rect{}, false
	}
	return state.Rect{
		X:      b.X + b.Width - DeleteButtonSize + DeleteButtonInset,
		Y:      b.Y - DeleteButtonInset,
		Width:  DeleteButtonSize,
		Height: DeleteButtonSize,
	}, true
}

// HitTest classifies the screen point (sx, sy) in view pixels.
func (c *Controller) HitTest(sx, sy float64) Hit {
	lx, ly := c.view.Transform().ScreenToLogical(sx, sy)
	if sel := c.store.Selected(); sel != "" {
		if r, ok := c.DeleteButtonBounds(sel); ok && r.Contains(lx, ly) {
			return Hit{Target: TargetDelete, ID: sel}
		}
	}
	editing := c.store.Editing()
	for i := len(c.order) - 1; i >= 0; i-- {
		id := c.order[i]
		b, ok := c.Bounds(id)
		if !ok || !b.Contains(lx, ly) {
			continue
		}
		if lx >= b.X+b.Width-HandleSize && ly >= b.Y+b.Height-HandleSize {
			return Hit{Target: TargetResizeHandle, ID: id}
		}
		if id == editing {
			return Hit{Target: TargetTextEdit, ID: id}
		}
		return Hit{Target: TargetBody, ID: id}
	}
	return Hit{Background: true}
}

// PointerDown routes a press. A qualifying pan wins; otherwise the press
// goes to the hit item, or clears the selection on empty canvas.
func (c *Controller) PointerDown(ev gesture.Event, hit Hit) {
	ev.Kind = gesture.KindDown
	if c.view.PanStart(ev) {
		return
	}
	if hit.Background {
		c.store.ClearSelection()
		if c.OnBackground != nil {
			c.OnBackground()
		}
		return
	}
	w, ok := c.items[hit.ID]
	if !ok {
		return
	}
	switch {
	case ev.Button != gesture.ButtonPrimary:
		// other buttons select without starting a gesture
		if hit.Target == TargetBody || hit.Target == TargetResizeHandle {
			c.store.Select(hit.ID)
		}
	case hit.Target == TargetResizeHandle:
		w.resize.PointerDown(ev)
	case hit.Target == TargetBody:
		w.drag.PointerDown(ev, TargetBody)
	}
	c.redraw()
}

// PointerMove feeds a move to the pan and to the router.
func (c *Controller) PointerMove(ev gesture.Event) {
	ev.Kind = gesture.KindMove
	c.view.PanMove(ev)
	if c.router.Busy() {
		c.router.Dispatch(ev)
		c.redraw()
	}
}

// PointerUp ends the pan and any gesture on the pointer.
func (c *Controller) PointerUp(ev gesture.Event) {
	ev.Kind = gesture.KindUp
	c.router.Dispatch(ev)
	c.view.PanEnd()
	c.redraw()
}

// PointerLeave ends an active pan when the pointer leaves the canvas.
// Item gestures keep tracking through the router.
func (c *Controller) PointerLeave() {
	c.view.PanEnd()
}

// Cancel aborts every gesture, e.g. when the window loses focus. Cancelled
// gestures commit like released ones.
func (c *Controller) Cancel() {
	c.router.CancelAll()
	c.view.PanEnd()
	c.redraw()
}

// Wheel zooms the view and reports whether the event was consumed.
func (c *Controller) Wheel(deltaY float64) bool {
	return c.view.HandleWheel(deltaY)
}

// AddNote creates a text note at the placement anchor, selects it and opens
// it for editing.
func (c *Controller) AddNote(variant state.Variant, color string) string {
	id := c.store.Create(variant, color, c.view.PlacementAnchor())
	c.store.Select(id)
	c.store.SetEditing(id)
	log.WithFields(log.Fields{"id": id, "variant": variant}).Info("note added")
	return id
}

// AddImage creates an image item at the placement anchor and selects it.
func (c *Controller) AddImage(img state.ImagePayload, size state.Size) string {
	id := c.store.CreateImage(img, size, c.view.PlacementAnchor())
	c.store.Select(id)
	log.WithField("id", id).Info("image added")
	return id
}

// Delete removes an item; an open gesture on it is committed and released.
func (c *Controller) Delete(id string) {
	c.store.Delete(id)
}

// Close releases every wrapper and the store subscription.
func (c *Controller) Close() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
	for id, w := range c.items {
		w.drag.Close()
		w.resize.Close()
		delete(c.items, id)
	}
	c.order = nil
}
