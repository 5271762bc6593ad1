package main

import "dotfield/core"

// frameScheduler implements core.Scheduler on top of the GLFW event
// loop. It holds at most one pending callback; the main loop drains it
// once per iteration, so a callback fires at most once per display
// refresh. Single-threaded, like everything on the GL thread.
type frameScheduler struct {
	next   func()
	handle core.Handle
	last   core.Handle
}

// Schedule stores fn as the next-frame callback, replacing any
// previous one, and returns its cancellation handle.
func (s *frameScheduler) Schedule(fn func()) core.Handle {
	s.last++
	s.next = fn
	s.handle = s.last
	return s.last
}

// Cancel drops the pending callback if h still identifies it. Stale
// handles are ignored.
func (s *frameScheduler) Cancel(h core.Handle) {
	if h == s.handle {
		s.next = nil
		s.handle = core.NoHandle
	}
}

// take removes and returns the pending callback, or nil.
func (s *frameScheduler) take() func() {
	fn := s.next
	s.next = nil
	s.handle = core.NoHandle
	return fn
}
