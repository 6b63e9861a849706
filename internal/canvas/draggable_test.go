package canvas

import (
	"testing"

	"VisionBoard/internal/gesture"
	"VisionBoard/internal/state"
)

type commits[T any] struct {
	ids    []string
	values []T
}

func (c *commits[T]) record(id string, v T) {
	c.ids = append(c.ids, id)
	c.values = append(c.values, v)
}

func press(x, y float64) gesture.Event {
	return gesture.Event{Kind: gesture.KindDown, X: x, Y: y, Button: gesture.ButtonPrimary}
}

func moveTo(x, y float64) gesture.Event {
	return gesture.Event{Kind: gesture.KindMove, X: x, Y: y}
}

func release(x, y float64) gesture.Event {
	return gesture.Event{Kind: gesture.KindUp, X: x, Y: y}
}

func TestDragCommitsScaledDeltaOnce(t *testing.T) {
	r := gesture.NewRouter()
	d := NewDraggable(r, "a", state.Point{X: 100, Y: 100})
	d.SetScale(2)
	var got commits[state.Point]
	d.OnCommit = got.record

	if !d.PointerDown(press(10, 10), TargetBody) {
		t.Fatal("drag did not start")
	}
	if d.Phase() != Active {
		t.Fatalf("phase: %v", d.Phase())
	}
	r.Dispatch(moveTo(30, 20))
	if p := d.Position(); p != (state.Point{X: 110, Y: 105}) {
		t.Errorf("transient position: %+v", p)
	}
	r.Dispatch(moveTo(61, 10))
	r.Dispatch(release(61, 10))
	r.Dispatch(release(61, 10))

	want := state.Point{X: 126, Y: 100}
	if len(got.values) != 1 || got.values[0] != want || got.ids[0] != "a" {
		t.Fatalf("commits: %+v, want one of %+v", got, want)
	}
	if d.Phase() != Idle || r.Listeners() != 0 || r.Busy() {
		t.Error("drag left state behind")
	}
}

func TestDragWithoutMoveCommitsStart(t *testing.T) {
	r := gesture.NewRouter()
	d := NewDraggable(r, "a", state.Point{X: 40, Y: 64})
	var got commits[state.Point]
	d.OnCommit = got.record

	d.PointerDown(press(5, 5), TargetBody)
	r.Dispatch(release(5, 5))

	if len(got.values) != 1 || got.values[0] != (state.Point{X: 40, Y: 64}) {
		t.Errorf("commits: %+v", got.values)
	}
}

func TestDragIgnoresAuthoritativeUntilIdle(t *testing.T) {
	r := gesture.NewRouter()
	d := NewDraggable(r, "a", state.Point{})
	d.PointerDown(press(0, 0), TargetBody)
	r.Dispatch(moveTo(50, 0))

	d.SetAuthoritative(state.Point{X: 999, Y: 999})
	if p := d.Position(); p != (state.Point{X: 50}) {
		t.Errorf("authoritative value overrode an active drag: %+v", p)
	}
	r.Dispatch(release(50, 0))
	if p := d.Position(); p != (state.Point{X: 999, Y: 999}) {
		t.Errorf("authoritative value not adopted after drag: %+v", p)
	}
}

func TestEditingSuspendsReconciliation(t *testing.T) {
	d := NewDraggable(gesture.NewRouter(), "a", state.Point{X: 1, Y: 1})
	d.SetEditing(true)
	d.SetAuthoritative(state.Point{X: 7, Y: 7})
	if p := d.Position(); p != (state.Point{X: 1, Y: 1}) {
		t.Errorf("reconciled while editing: %+v", p)
	}
	d.SetEditing(false)
	if p := d.Position(); p != (state.Point{X: 7, Y: 7}) {
		t.Errorf("not reconciled after editing: %+v", p)
	}
}

func TestDragExcludedTargets(t *testing.T) {
	r := gesture.NewRouter()
	d := NewDraggable(r, "a", state.Point{})
	selected := 0
	d.OnSelect = func(string) { selected++ }
	for _, target := range []Target{TargetTextEdit, TargetResizeHandle, TargetDelete} {
		if d.PointerDown(press(0, 0), target) {
			t.Errorf("drag started on target %d", target)
		}
	}
	if selected != 0 || r.Listeners() != 0 {
		t.Errorf("excluded press had effects: selected=%d listeners=%d", selected, r.Listeners())
	}
}

func TestDisabledDragStillSelects(t *testing.T) {
	r := gesture.NewRouter()
	d := NewDraggable(r, "a", state.Point{})
	var sel []string
	d.OnSelect = func(id string) { sel = append(sel, id) }
	d.SetDisabled(true)
	if d.PointerDown(press(0, 0), TargetBody) {
		t.Error("disabled wrapper started a drag")
	}
	if len(sel) != 1 || sel[0] != "a" || r.Busy() {
		t.Errorf("select=%v busy=%v", sel, r.Busy())
	}
}

func TestCancelCommitsLikeRelease(t *testing.T) {
	r := gesture.NewRouter()
	d := NewDraggable(r, "a", state.Point{})
	var got commits[state.Point]
	d.OnCommit = got.record
	d.PointerDown(press(0, 0), TargetBody)
	r.Dispatch(moveTo(24, 48))
	r.CancelAll()
	if len(got.values) != 1 || got.values[0] != (state.Point{X: 24, Y: 48}) {
		t.Errorf("commits: %+v", got.values)
	}
}

func TestCloseCommitsAndReleases(t *testing.T) {
	r := gesture.NewRouter()
	d := NewDraggable(r, "a", state.Point{})
	var got commits[state.Point]
	d.OnCommit = got.record
	d.PointerDown(press(0, 0), TargetBody)
	r.Dispatch(moveTo(3, 4))

	d.Close()
	d.Close()
	r.Dispatch(release(3, 4))

	if len(got.values) != 1 {
		t.Errorf("commits: %+v", got.values)
	}
	if r.Listeners() != 0 || r.Busy() || r.DefaultSuppressed() {
		t.Error("Close leaked router state")
	}
}
