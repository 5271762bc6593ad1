package core

import "go.uber.org/zap"

// ClockStep is the fixed virtual-time increment per animation step.
// The clock is decoupled from wall time: one increment per step
// regardless of the actual refresh interval.
const ClockStep = 0.016

// Handle identifies a scheduled step with a Scheduler.
type Handle uint64

// NoHandle is the zero Handle, meaning nothing is scheduled.
const NoHandle Handle = 0

// Scheduler runs a callback on the next display refresh. Schedule
// returns a handle that Cancel accepts; cancelling must be synchronous
// and must prevent a not-yet-fired callback from running.
type Scheduler interface {
	Schedule(fn func()) Handle
	Cancel(h Handle)
}

// State is the driver's lifecycle state.
type State int

const (
	// Paused means no step is scheduled and the clock is frozen.
	Paused State = iota
	// Running means a step is scheduled and the clock advances.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

// Driver advances the animation clock and issues one draw per display
// refresh. It owns the clock exclusively and holds at most one pending
// scheduled step at a time.
//
// Driver is not safe for concurrent use; all calls must come from the
// event loop thread that also services the Scheduler.
type Driver struct {
	sched   Scheduler
	draw    func(clock float32)
	log     *zap.Logger
	clock   float64
	pending Handle
}

// NewDriver creates a driver bound to a scheduler and a draw callback.
// It starts running immediately unless the reduced-motion preference
// is set, in which case it stays paused until the preference clears.
func NewDriver(sched Scheduler, draw func(clock float32), reducedMotion bool, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Driver{sched: sched, draw: draw, log: log}
	if reducedMotion {
		d.log.Info("reduced motion preferred, animation paused")
	} else {
		d.Start()
	}
	return d
}

// Start schedules the next animation step. Calling Start while already
// running has no effect; the driver never double-schedules.
func (d *Driver) Start() {
	if d.pending != NoHandle {
		return
	}
	d.pending = d.sched.Schedule(d.step)
	d.log.Debug("animation started")
}

// Stop cancels the pending step, if any, freezing the clock. It is
// synchronous: after Stop returns, no already-scheduled step will fire.
func (d *Driver) Stop() {
	if d.pending == NoHandle {
		return
	}
	d.sched.Cancel(d.pending)
	d.pending = NoHandle
	d.log.Debug("animation stopped", zap.Float64("clock", d.clock))
}

// SetReducedMotion applies a change of the accessibility preference:
// true pauses the animation, false resumes it.
func (d *Driver) SetReducedMotion(reduced bool) {
	if reduced {
		d.Stop()
	} else {
		d.Start()
	}
}

// State reports whether the driver is currently running.
func (d *Driver) State() State {
	if d.pending != NoHandle {
		return Running
	}
	return Paused
}

// Clock returns the current virtual time.
func (d *Driver) Clock() float64 { return d.clock }

func (d *Driver) step() {
	d.pending = NoHandle
	d.clock += ClockStep
	d.draw(float32(d.clock))
	d.pending = d.sched.Schedule(d.step)
}
