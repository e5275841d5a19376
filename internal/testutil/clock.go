package testutil

import (
	"sync"
	"time"
)

// StepClock provides a thread-safe deterministic clock for tests.
//
// Every call to Now advances the clock by a fixed step before returning, so a
// measurement that reads the clock twice always reports exactly one step of
// elapsed time. This keeps traces and golden files byte-identical across runs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	ticks int64
}

// NewStepClock creates a clock starting at the Unix epoch.
//
// A non-positive step means one microsecond.
func NewStepClock(step time.Duration) *StepClock {
	if step <= 0 {
		step = time.Microsecond
	}
	return &StepClock{start: time.Unix(0, 0).UTC(), step: step}
}

// Now advances the clock by one step and returns the new instant.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
	return c.start.Add(time.Duration(c.ticks) * c.step)
}

// Ticks returns how many times Now has been called.
func (c *StepClock) Ticks() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Reset rewinds the clock to its start.
//
// Used for test reuse. After Reset(), the next call to Now() returns start+step.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = 0
}
