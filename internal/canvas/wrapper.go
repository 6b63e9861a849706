package canvas

import (
	"VisionBoard/internal/gesture"
)

// Phase is the state of an interactive wrapper.
type Phase uint8

const (
	Idle Phase = iota
	Active
)

func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "idle"
}

// session is the ephemeral record of one drag or resize.
type session[T comparable] struct {
	origin         T
	startX, startY float64
	handle         *gesture.Session
}

// tracker is the Idle | Active(session) machine shared by Draggable and
// Resizable. It holds the transient value, the last authoritative value it
// was given, and the single open session if any.
type tracker[T comparable] struct {
	id     string
	router *gesture.Router
	owner  any

	value   T
	auth    T
	editing bool
	open    *session[T]

	// step computes the transient value from the session origin and the raw
	// screen delta since the press.
	step   func(origin T, dx, dy float64) T
	commit func(id string, v T)
}

func (t *tracker[T]) phase() Phase {
	if t.open != nil {
		return Active
	}
	return Idle
}

func (t *tracker[T]) begin(ev gesture.Event) bool {
	if t.open != nil {
		return false
	}
	s := &session[T]{origin: t.value, startX: ev.X, startY: ev.Y}
	s.handle = gesture.Begin(t.router, t.owner, ev, t.move, t.end)
	if s.handle == nil {
		return false
	}
	t.open = s
	return true
}

func (t *tracker[T]) move(ev gesture.Event) {
	s := t.open
	if s == nil {
		return
	}
	t.value = t.step(s.origin, ev.X-s.startX, ev.Y-s.startY)
}

// end commits the value the last move wrote, whether or not the pointer
// moved at all.
func (t *tracker[T]) end(gesture.Event) {
	if t.open == nil {
		return
	}
	t.finish()
}

// close is the teardown path: an open session is committed and disposed.
func (t *tracker[T]) close() {
	if t.open == nil {
		return
	}
	h := t.open.handle
	t.finish()
	h.Dispose()
}

func (t *tracker[T]) finish() {
	final := t.value
	t.open = nil
	if t.commit != nil {
		t.commit(t.id, final)
	}
	t.reconcile()
}

func (t *tracker[T]) setAuthoritative(v T) {
	t.auth = v
	t.reconcile()
}

func (t *tracker[T]) setEditing(editing bool) {
	t.editing = editing
	t.reconcile()
}

// reconcile adopts the authoritative value unless a gesture or a text edit
// owns the transient one.
func (t *tracker[T]) reconcile() {
	if t.open != nil || t.editing {
		return
	}
	t.value = t.auth
}
