package state

import "sync/atomic"

// revisionClock stamps every authoritative change with a monotonically
// increasing number so observers can tell a genuine update from a re-render.
type revisionClock struct {
	n atomic.Uint64
}

func (c *revisionClock) tick() uint64 {
	return c.n.Add(1)
}

func (c *revisionClock) current() uint64 {
	return c.n.Load()
}
