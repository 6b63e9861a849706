package gesture

import "testing"

type recorder struct {
	moves []Event
	ends  []Event
}

func (r *recorder) move(ev Event) { r.moves = append(r.moves, ev) }
func (r *recorder) end(ev Event)  { r.ends = append(r.ends, ev) }

func down(x, y float64) Event {
	return Event{Kind: KindDown, X: x, Y: y}
}

func TestSessionStreamsMovesThenEndsOnce(t *testing.T) {
	r := NewRouter()
	var rec recorder
	owner := "note-1"
	s := Begin(r, owner, down(10, 10), rec.move, rec.end)
	if s == nil {
		t.Fatal("Begin returned nil")
	}
	if r.CapturedBy(0) != owner {
		t.Fatalf("capture owner: got %v", r.CapturedBy(0))
	}
	if !r.DefaultSuppressed() {
		t.Error("default handling not suppressed during gesture")
	}

	r.Dispatch(Event{Kind: KindMove, X: 20, Y: 15})
	r.Dispatch(Event{Kind: KindMove, X: 30, Y: 25})
	r.Dispatch(Event{Kind: KindUp, X: 30, Y: 25})
	r.Dispatch(Event{Kind: KindUp, X: 30, Y: 25})
	r.Dispatch(Event{Kind: KindMove, X: 99, Y: 99})

	if len(rec.moves) != 2 {
		t.Errorf("moves: got %d, want 2", len(rec.moves))
	}
	if len(rec.ends) != 1 {
		t.Errorf("ends: got %d, want 1", len(rec.ends))
	}
	if r.Listeners() != 0 {
		t.Errorf("leaked listeners: %d", r.Listeners())
	}
	if r.Busy() || r.DefaultSuppressed() {
		t.Error("capture or suppression outlived the gesture")
	}
	if !s.Done() {
		t.Error("session not done")
	}
}

func TestSessionCancelRunsSameCleanup(t *testing.T) {
	r := NewRouter()
	var rec recorder
	Begin(r, "owner", down(0, 0), rec.move, rec.end)

	r.CancelAll()

	if len(rec.ends) != 1 || rec.ends[0].Kind != KindCancel {
		t.Fatalf("ends: got %+v", rec.ends)
	}
	if r.Listeners() != 0 || r.Busy() {
		t.Error("cancel leaked listeners or capture")
	}
}

func TestSessionDisposeSkipsOnEnd(t *testing.T) {
	r := NewRouter()
	var rec recorder
	s := Begin(r, "owner", down(0, 0), rec.move, rec.end)

	s.Dispose()
	s.Dispose()
	s.End(Event{Kind: KindUp})
	r.Dispatch(Event{Kind: KindUp})

	if len(rec.ends) != 0 {
		t.Errorf("onEnd ran after dispose: %+v", rec.ends)
	}
	if r.Listeners() != 0 || r.Busy() || r.DefaultSuppressed() {
		t.Error("dispose did not release everything")
	}
}

func TestSessionIgnoresOtherPointers(t *testing.T) {
	r := NewRouter()
	var a, b recorder
	sa := Begin(r, "a", Event{Kind: KindDown, PointerID: 1}, a.move, a.end)
	sb := Begin(r, "b", Event{Kind: KindDown, PointerID: 2}, b.move, b.end)
	if sa == nil || sb == nil {
		t.Fatal("Begin failed for independent pointers")
	}

	r.Dispatch(Event{Kind: KindMove, PointerID: 1, X: 5})
	r.Dispatch(Event{Kind: KindUp, PointerID: 2})

	if len(a.moves) != 1 || len(b.moves) != 0 {
		t.Errorf("moves routed wrongly: a=%d b=%d", len(a.moves), len(b.moves))
	}
	if len(a.ends) != 0 || len(b.ends) != 1 {
		t.Errorf("ends routed wrongly: a=%d b=%d", len(a.ends), len(b.ends))
	}
	if r.CapturedBy(1) != "a" || r.CapturedBy(2) != nil {
		t.Errorf("capture state: 1=%v 2=%v", r.CapturedBy(1), r.CapturedBy(2))
	}
}

func TestBeginRefusesCapturedPointer(t *testing.T) {
	r := NewRouter()
	Begin(r, "first", down(0, 0), nil, nil)
	if s := Begin(r, "second", down(0, 0), nil, nil); s != nil {
		t.Error("second owner captured a held pointer")
	}
	if r.Listeners() != 2 {
		t.Errorf("listeners: got %d, want 2", r.Listeners())
	}
}

func TestOnEndPanicStillCleansUp(t *testing.T) {
	r := NewRouter()
	Begin(r, "owner", down(0, 0), nil, func(Event) { panic("boom") })
	func() {
		defer func() { _ = recover() }()
		r.Dispatch(Event{Kind: KindUp})
	}()
	if r.Listeners() != 0 || r.Busy() {
		t.Error("panic in onEnd leaked listeners")
	}
}

func TestModifiersHas(t *testing.T) {
	m := ModShift | ModAlt
	if !m.Has(ModShift) || m.Has(ModCtrl) || Modifiers(0).Has(0) {
		t.Errorf("Has misbehaves for %b", m)
	}
}
