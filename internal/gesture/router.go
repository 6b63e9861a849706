// Package gesture routes pointer input and provides the single-use gesture
// session every drag and resize affordance is built on.
package gesture

// MaxPointers bounds the pointer ids the router tracks: 0 is the mouse,
// the rest are touch contacts.
const MaxPointers = 10

// Button identifies a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Modifiers is a bitmask of keyboard modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether every bit of m2 is set in m.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m2 != 0 && m&m2 == m2
}

// Kind is the phase of a pointer event.
type Kind uint8

const (
	KindDown Kind = iota
	KindMove
	KindUp
	KindCancel
)

// Event is a pointer event in screen space.
type Event struct {
	Kind      Kind
	PointerID int
	X, Y      float64
	Button    Button
	Modifiers Modifiers
}

type handler struct {
	id uint32
	fn func(Event)
}

// Handle removes a listener registered on a Router.
type Handle struct {
	id  uint32
	end bool
	r   *Router
}

// Remove unregisters the listener. Calling it more than once is harmless.
func (h Handle) Remove() {
	if h.r == nil {
		return
	}
	if h.end {
		h.r.end = removeHandler(h.r.end, h.id)
	} else {
		h.r.move = removeHandler(h.r.move, h.id)
	}
}

func removeHandler(s []handler, id uint32) []handler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// Router is the process-wide input-routing layer. The host window feeds it
// every pointer event regardless of which element is under the pointer, so
// a gesture keeps tracking after the pointer leaves its element.
//
// Router is not safe for concurrent use; it runs on the UI event loop.
type Router struct {
	move     []handler
	end      []handler
	nextID   uint32
	captured [MaxPointers]any
	suppress int
}

// NewRouter creates a router with no listeners.
func NewRouter() *Router {
	return &Router{}
}

// OnMove registers fn for every move event.
func (r *Router) OnMove(fn func(Event)) Handle {
	r.nextID++
	r.move = append(r.move, handler{id: r.nextID, fn: fn})
	return Handle{id: r.nextID, r: r}
}

// OnEnd registers fn for every up and cancel event.
func (r *Router) OnEnd(fn func(Event)) Handle {
	r.nextID++
	r.end = append(r.end, handler{id: r.nextID, fn: fn})
	return Handle{id: r.nextID, end: true, r: r}
}

// Capture routes pointerID exclusively to owner until released.
// It fails if another owner already holds the pointer.
func (r *Router) Capture(pointerID int, owner any) bool {
	if pointerID < 0 || pointerID >= MaxPointers || owner == nil {
		return false
	}
	if cur := r.captured[pointerID]; cur != nil && cur != owner {
		return false
	}
	r.captured[pointerID] = owner
	return true
}

// Release drops owner's capture of pointerID. It is a no-op if owner does
// not hold it.
func (r *Router) Release(pointerID int, owner any) {
	if pointerID < 0 || pointerID >= MaxPointers {
		return
	}
	if r.captured[pointerID] == owner {
		r.captured[pointerID] = nil
	}
}

// CapturedBy returns the owner of pointerID, or nil.
func (r *Router) CapturedBy(pointerID int) any {
	if pointerID < 0 || pointerID >= MaxPointers {
		return nil
	}
	return r.captured[pointerID]
}

// Busy reports whether any pointer is currently captured.
func (r *Router) Busy() bool {
	for _, c := range r.captured {
		if c != nil {
			return true
		}
	}
	return false
}

// DefaultSuppressed reports whether native scroll and selection handling
// should be skipped by the host because a gesture is in progress.
func (r *Router) DefaultSuppressed() bool {
	return r.suppress > 0
}

// Listeners returns the number of registered move and end listeners.
func (r *Router) Listeners() int {
	return len(r.move) + len(r.end)
}

// Dispatch delivers ev to the listeners for its kind. Down events are not
// routed here; the host decides which element a press starts a gesture on.
func (r *Router) Dispatch(ev Event) {
	var hs []handler
	switch ev.Kind {
	case KindMove:
		hs = r.move
	case KindUp, KindCancel:
		hs = r.end
	default:
		return
	}
	// Handlers may remove themselves while running.
	snapshot := make([]handler, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		h.fn(ev)
	}
}

// CancelAll sends a cancel for every captured pointer, e.g. when the window
// loses focus or the device disappears.
func (r *Router) CancelAll() {
	for id, owner := range r.captured {
		if owner != nil {
			r.Dispatch(Event{Kind: KindCancel, PointerID: id})
		}
	}
}
