package canvas

import (
	"testing"

	"VisionBoard/internal/gesture"
	"VisionBoard/internal/state"
)

func newTestController(t *testing.T) *Controller {
	t.Helper()
	v := NewViewport(DefaultGeometry())
	v.SetViewSize(800, 600)
	c := NewController(state.NewStore(state.DefaultMinItemSize), v, gesture.NewRouter())
	t.Cleanup(c.Close)
	return c
}

// screenOf returns the view pixel of a logical point.
func screenOf(c *Controller, lx, ly float64) (float64, float64) {
	return c.Viewport().Transform().LogicalToScreen(lx, ly)
}

func TestAddNoteSelectsAndEdits(t *testing.T) {
	c := newTestController(t)
	id := c.AddNote(state.VariantRect, "#FFEFD5")

	it, ok := c.Store().Item(id)
	if !ok {
		t.Fatal("note not stored")
	}
	if it.Position != (state.Point{X: 1992, Y: 1992}) || it.Size != (state.Size{Width: 300, Height: 200}) {
		t.Errorf("note footprint: %+v %+v", it.Position, it.Size)
	}
	if c.Store().Selected() != id || c.Store().Editing() != id {
		t.Errorf("selected=%q editing=%q", c.Store().Selected(), c.Store().Editing())
	}
	if p, ok := c.Position(id); !ok || p != it.Position {
		t.Errorf("wrapper not created: %+v %v", p, ok)
	}
}

func TestAddImageSelectsOnly(t *testing.T) {
	c := newTestController(t)
	id := c.AddImage(state.ImagePayload{Format: "png", Data: []byte{1}, Width: 640, Height: 480}, state.Size{Width: 300, Height: 225})
	if c.Store().Selected() != id || c.Store().Editing() != "" {
		t.Errorf("selected=%q editing=%q", c.Store().Selected(), c.Store().Editing())
	}
}

func TestHitTest(t *testing.T) {
	c := newTestController(t)
	id := c.AddNote(state.VariantRect, "#FFEFD5")
	b, _ := c.Bounds(id)

	sx, sy := screenOf(c, b.X+100, b.Y+100)
	if h := c.HitTest(sx, sy); h.Target != TargetTextEdit || h.ID != id {
		t.Errorf("editing body: %+v", h)
	}

	c.Store().SetEditing("")
	if h := c.HitTest(sx, sy); h.Target != TargetBody || h.ID != id {
		t.Errorf("body: %+v", h)
	}

	sx, sy = screenOf(c, b.X+b.Width-4, b.Y+b.Height-4)
	if h := c.HitTest(sx, sy); h.Target != TargetResizeHandle || h.ID != id {
		t.Errorf("handle: %+v", h)
	}

	del, _ := c.DeleteButtonBounds(id)
	sx, sy = screenOf(c, del.X+del.Width/2, del.Y+del.Height/2)
	if h := c.HitTest(sx, sy); h.Target != TargetDelete || h.ID != id {
		t.Errorf("delete: %+v", h)
	}

	if h := c.HitTest(5, 5); !h.Background {
		t.Errorf("empty canvas: %+v", h)
	}
}

func TestHitTestPrefersTopmost(t *testing.T) {
	c := newTestController(t)
	below := c.AddNote(state.VariantSquare, "#FFEFD5")
	above := c.AddNote(state.VariantSquare, "#BBF7D0")
	c.Store().ClearSelection()
	b, _ := c.Bounds(below)
	sx, sy := screenOf(c, b.X+50, b.Y+50)
	if h := c.HitTest(sx, sy); h.ID != above {
		t.Errorf("got %q, want topmost %q", h.ID, above)
	}
}

func TestBackgroundPressClearsSelection(t *testing.T) {
	c := newTestController(t)
	c.AddNote(state.VariantRect, "#FFEFD5")
	closed := false
	c.OnBackground = func() { closed = true }

	c.PointerDown(press(5, 5), c.HitTest(5, 5))

	if c.Store().Selected() != "" || c.Store().Editing() != "" || !closed {
		t.Errorf("selected=%q editing=%q menuClosed=%v", c.Store().Selected(), c.Store().Editing(), closed)
	}
}

func TestDragThroughControllerCommitsToStore(t *testing.T) {
	c := newTestController(t)
	id := c.AddNote(state.VariantRect, "#FFEFD5")
	c.Store().ClearSelection()
	c.Viewport().SetZoom(2)

	b, _ := c.Bounds(id)
	sx, sy := screenOf(c, b.X+50, b.Y+50)
	c.PointerDown(press(sx, sy), c.HitTest(sx, sy))
	if c.Store().Selected() != id {
		t.Error("press did not select the item")
	}
	c.PointerMove(moveTo(sx+48, sy+24))

	if it, _ := c.Store().Item(id); it.Position != (state.Point{X: 1992, Y: 1992}) {
		t.Errorf("store written mid-drag: %+v", it.Position)
	}
	if p, _ := c.Position(id); p != (state.Point{X: 2016, Y: 2004}) {
		t.Errorf("transient position: %+v", p)
	}

	c.PointerUp(release(sx+48, sy+24))
	if it, _ := c.Store().Item(id); it.Position != (state.Point{X: 2016, Y: 2004}) {
		t.Errorf("committed position: %+v", it.Position)
	}
	if c.Router().Busy() {
		t.Error("router still busy after release")
	}
}

func TestResizeThroughController(t *testing.T) {
	c := newTestController(t)
	id := c.AddNote(state.VariantRect, "#FFEFD5")
	b, _ := c.Bounds(id)
	sx, sy := screenOf(c, b.X+b.Width-2, b.Y+b.Height-2)

	c.PointerDown(press(sx, sy), c.HitTest(sx, sy))
	c.PointerMove(moveTo(sx-500, sy-500))
	c.PointerUp(release(sx-500, sy-500))

	if it, _ := c.Store().Item(id); it.Size != (state.Size{Width: 100, Height: 100}) {
		t.Errorf("size: %+v", it.Size)
	}
}

func TestPanWinsOverItemDrag(t *testing.T) {
	c := newTestController(t)
	id := c.AddNote(state.VariantRect, "#FFEFD5")
	c.Store().ClearSelection()
	b, _ := c.Bounds(id)
	sx, sy := screenOf(c, b.X+50, b.Y+50)

	ev := press(sx, sy)
	ev.Modifiers = gesture.ModShift
	c.PointerDown(ev, c.HitTest(sx, sy))
	c.PointerMove(moveTo(sx+30, sy))

	if c.Router().Busy() || c.Store().Selected() != "" {
		t.Error("shift press reached the item")
	}
	if s := c.Viewport().State(); s.PanX != 30 || !s.Panning {
		t.Errorf("viewport: %+v", s)
	}
	if p, _ := c.Position(id); p != (state.Point{X: 1992, Y: 1992}) {
		t.Errorf("item moved during pan: %+v", p)
	}
	c.PointerLeave()
	if c.Viewport().Panning() {
		t.Error("leave did not end the pan")
	}
}

func TestDeleteDuringDragReleasesGesture(t *testing.T) {
	c := newTestController(t)
	id := c.AddNote(state.VariantRect, "#FFEFD5")
	c.Store().ClearSelection()
	b, _ := c.Bounds(id)
	sx, sy := screenOf(c, b.X+50, b.Y+50)
	c.PointerDown(press(sx, sy), c.HitTest(sx, sy))
	c.PointerMove(moveTo(sx+10, sy+10))

	c.Delete(id)

	if c.Store().Len() != 0 || c.Draggable(id) != nil {
		t.Error("item or wrapper survived delete")
	}
	if c.Router().Listeners() != 0 || c.Router().Busy() {
		t.Error("gesture outlived its item")
	}
	c.PointerUp(release(sx+10, sy+10))
	if c.Store().Len() != 0 {
		t.Error("release resurrected the item")
	}
}

func TestCancelCommitsOpenDrag(t *testing.T) {
	c := newTestController(t)
	id := c.AddNote(state.VariantRect, "#FFEFD5")
	c.Store().ClearSelection()
	b, _ := c.Bounds(id)
	sx, sy := screenOf(c, b.X+50, b.Y+50)
	c.PointerDown(press(sx, sy), c.HitTest(sx, sy))
	c.PointerMove(moveTo(sx+24, sy))

	c.Cancel()

	if it, _ := c.Store().Item(id); it.Position.X != 2016 {
		t.Errorf("cancelled drag not committed: %+v", it.Position)
	}
}

func TestWheelRescalesWrappers(t *testing.T) {
	c := newTestController(t)
	redraws := 0
	c.SetRefresh(func() { redraws++ })
	if !c.Wheel(-1) {
		t.Fatal("wheel not consumed")
	}
	if !approx(c.Viewport().Zoom(), 1.1) || redraws == 0 {
		t.Errorf("zoom=%v redraws=%d", c.Viewport().Zoom(), redraws)
	}
	if c.Wheel(0) {
		t.Error("zero wheel consumed")
	}
}

func TestSecondaryPressSelectsWithoutDrag(t *testing.T) {
	c := newTestController(t)
	id := c.AddNote(state.VariantRect, "#FFEFD5")
	c.Store().ClearSelection()

	b, _ := c.Bounds(id)
	sx, sy := screenOf(c, b.X+50, b.Y+50)
	ev := press(sx, sy)
	ev.Button = gesture.ButtonSecondary
	c.PointerDown(ev, c.HitTest(sx, sy))

	if c.Store().Selected() != id {
		t.Errorf("selected: %q", c.Store().Selected())
	}
	if c.Router().Busy() {
		t.Error("secondary press started a gesture")
	}
	c.PointerMove(moveTo(sx+40, sy+40))
	if p, _ := c.Position(id); p != (state.Point{X: 1992, Y: 1992}) {
		t.Errorf("item moved: %+v", p)
	}
}
