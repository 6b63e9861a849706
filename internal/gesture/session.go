package gesture

// Session is one in-flight gesture: it owns the capture of a single pointer
// and the two router listeners that follow it. A Session is single use;
// whichever of End, Dispose or a routed up/cancel happens first tears it
// down, and every later call is a no-op.
type Session struct {
	router    *Router
	owner     any
	pointerID int
	start     Event

	onMove func(Event)
	onEnd  func(Event)

	moveHandle Handle
	endHandle  Handle
	done       bool
}

// Begin captures start's pointer for owner and streams subsequent events
// for that pointer to onMove until an up or cancel arrives, at which point
// onEnd runs once and everything is released.
//
// Begin returns nil if the pointer is already captured by someone else.
func Begin(r *Router, owner any, start Event, onMove, onEnd func(Event)) *Session {
	if !r.Capture(start.PointerID, owner) {
		return nil
	}
	s := &Session{
		router:    r,
		owner:     owner,
		pointerID: start.PointerID,
		start:     start,
		onMove:    onMove,
		onEnd:     onEnd,
	}
	s.moveHandle = r.OnMove(s.handleMove)
	s.endHandle = r.OnEnd(s.handleEnd)
	r.suppress++
	return s
}

// Start returns the event that began the session.
func (s *Session) Start() Event {
	return s.start
}

// Done reports whether the session has terminated.
func (s *Session) Done() bool {
	return s.done
}

func (s *Session) handleMove(ev Event) {
	if s.done || ev.PointerID != s.pointerID {
		return
	}
	if s.onMove != nil {
		s.onMove(ev)
	}
}

func (s *Session) handleEnd(ev Event) {
	if ev.PointerID != s.pointerID {
		return
	}
	s.End(ev)
}

// End terminates the session through the normal path: onEnd runs with ev,
// then capture and listeners are released.
func (s *Session) End(ev Event) {
	if s.done {
		return
	}
	s.done = true
	defer s.cleanup()
	if s.onEnd != nil {
		s.onEnd(ev)
	}
}

// Dispose tears the session down without running onEnd. Owners use it when
// they are destroyed mid-gesture and have already settled their own state.
func (s *Session) Dispose() {
	if s.done {
		return
	}
	s.done = true
	s.cleanup()
}

func (s *Session) cleanup() {
	s.moveHandle.Remove()
	s.endHandle.Remove()
	s.router.Release(s.pointerID, s.owner)
	s.router.suppress--
}
