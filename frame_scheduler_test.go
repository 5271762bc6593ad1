package main

import (
	"testing"

	"dotfield/core"
)

func TestFrameSchedulerTake(t *testing.T) {
	s := &frameScheduler{}
	fired := false
	s.Schedule(func() { fired = true })

	fn := s.take()
	if fn == nil {
		t.Fatal("take returned nil for a scheduled callback")
	}
	fn()
	if !fired {
		t.Error("callback did not run")
	}
	if s.take() != nil {
		t.Error("take returned the same callback twice")
	}
}

func TestFrameSchedulerCancel(t *testing.T) {
	s := &frameScheduler{}
	h := s.Schedule(func() { t.Error("cancelled callback ran") })
	s.Cancel(h)

	if fn := s.take(); fn != nil {
		fn()
	}
}

func TestFrameSchedulerIgnoresStaleHandle(t *testing.T) {
	s := &frameScheduler{}
	stale := s.Schedule(func() {})
	s.take()

	fired := false
	s.Schedule(func() { fired = true })
	s.Cancel(stale)

	fn := s.take()
	if fn == nil {
		t.Fatal("stale cancel dropped a newer callback")
	}
	fn()
	if !fired {
		t.Error("newer callback did not run")
	}
}

func TestFrameSchedulerDrivesDriver(t *testing.T) {
	s := &frameScheduler{}
	var draws int
	d := core.NewDriver(s, func(float32) { draws++ }, false, nil)

	// Simulate a few loop iterations.
	for i := 0; i < 3; i++ {
		if fn := s.take(); fn != nil {
			fn()
		}
	}
	if draws != 3 {
		t.Errorf("draw calls = %d, want 3", draws)
	}

	// Stop immediately followed by start: exactly one pending step.
	d.Stop()
	d.Start()
	if fn := s.take(); fn == nil {
		t.Fatal("no step pending after stop+start")
	} else {
		fn()
	}
	if s.next == nil {
		t.Error("step did not reschedule itself")
	}
	if draws != 4 {
		t.Errorf("draw calls = %d, want 4", draws)
	}
}
