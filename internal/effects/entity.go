package effects

import (
	"sync"
	"time"
)

// StepFunc performs one tick and reports the delay until the next one.
// Returning more=false ends the schedule.
type StepFunc func(now time.Time) (next time.Duration, more bool)

// Entity owns one recurring timer: a step function plus its cancel handle.
// The next step is scheduled only after the current one returns, so steps never overlap.
type Entity struct {
	clock Clock
	step  StepFunc

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending bool
}

// NewEntity binds a step function to a clock
func NewEntity(clock Clock, step StepFunc) *Entity {
	return &Entity{clock: clock, step: step}
}

// Start cancels any pending step and schedules the step after first
func (e *Entity) Start(first time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLocked()
	e.scheduleLocked(first)
}

// Stop cancels the pending step. A step already running will not reschedule.
func (e *Entity) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasPending := e.pending
	e.cancelLocked()
	return wasPending
}

// Running reports whether a step is scheduled
func (e *Entity) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

func (e *Entity) cancelLocked() {
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.pending = false
}

func (e *Entity) scheduleLocked(d time.Duration) {
	gen := e.gen
	e.pending = true
	e.timer = e.clock.AfterFunc(d, func() { e.fire(gen) })
}

func (e *Entity) fire(gen uint64) {
	e.mu.Lock()
	if gen != e.gen {
		// Stale callback from a timer that lost the race with Stop
		e.mu.Unlock()
		return
	}
	e.pending = false
	e.timer = nil
	e.mu.Unlock()

	next, more := e.step(e.clock.Now())

	e.mu.Lock()
	defer e.mu.Unlock()
	if !more || gen != e.gen {
		return
	}
	e.scheduleLocked(next)
}
