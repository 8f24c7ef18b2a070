// Package clock drives a step function at a fixed, self-correcting interval
// and tracks the stopped/running/paused lifecycle.
package clock

import (
	"context"
	"errors"
	"sync"
	"time"

	"life-canvas/internal/core"
)

// MaxSpeed is the largest accepted multiplier.
const MaxSpeed = 1e9

// ErrInvalidSpeed is returned for non-positive or non-finite multipliers.
var ErrInvalidSpeed = errors.New("speed multiplier must be positive")

// Stepper advances the simulation once. elapsed is the time since the
// previous step. It returns false when the step changed nothing, which
// pauses the clock.
type Stepper func(elapsed time.Duration) (changed bool)

// Clock calls a Stepper every base/speed. The delay before the next wake-up
// is shortened by the time the step itself took so the long-run tick rate
// does not drift.
type Clock struct {
	mu     sync.Mutex
	base   time.Duration
	speed  float64
	state  core.RunState
	gen    uint64
	cancel context.CancelFunc

	step   Stepper
	notify func(core.RunState)
	now    func() time.Time
}

// New returns a stopped clock. notify may be nil; it is called synchronously,
// without locks held, on every state transition.
func New(base time.Duration, step Stepper, notify func(core.RunState)) *Clock {
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	if notify == nil {
		notify = func(core.RunState) {}
	}
	return &Clock{base: base, speed: 1, step: step, notify: notify, now: time.Now}
}

// State returns the current lifecycle state.
func (c *Clock) State() core.RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Speed returns the current multiplier.
func (c *Clock) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// SetSpeed changes the multiplier used for the next scheduled wake-up.
func (c *Clock) SetSpeed(speed float64) error {
	if !(speed > 0) || speed > MaxSpeed {
		return ErrInvalidSpeed
	}
	c.mu.Lock()
	c.speed = speed
	c.mu.Unlock()
	return nil
}

// Interval returns base / speed.
func (c *Clock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval()
}

func (c *Clock) interval() time.Duration {
	return time.Duration(float64(c.base) / c.speed)
}

// Start moves a stopped or paused clock to running. It is a no-op while
// already running.
func (c *Clock) Start() {
	c.mu.Lock()
	if c.state == core.Running {
		c.mu.Unlock()
		return
	}
	c.gen++
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = core.Running
	gen := c.gen
	c.mu.Unlock()

	go c.run(ctx, gen)
	c.notify(core.Running)
}

// Stop cancels any pending wake-up. No step runs after Stop returns.
func (c *Clock) Stop() {
	c.mu.Lock()
	prev := c.state
	c.halt()
	c.state = core.Stopped
	c.mu.Unlock()

	if prev != core.Stopped {
		c.notify(core.Stopped)
	}
}

// halt invalidates the running loop. Callers hold c.mu.
func (c *Clock) halt() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Clock) run(ctx context.Context, gen uint64) {
	last := c.now()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		wake := c.now()
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		interval := c.interval()
		due, wait := schedule(interval, wake.Sub(last))
		if !due {
			c.mu.Unlock()
			timer.Reset(wait)
			continue
		}
		changed := c.step(wake.Sub(last))
		if !changed {
			c.halt()
			c.state = core.Paused
			c.mu.Unlock()
			c.notify(core.Paused)
			return
		}
		c.mu.Unlock()

		last = wake
		timer.Reset(rearm(interval, c.now().Sub(wake)))
	}
}

// schedule decides whether a wake-up after sinceLast is due for a step. When
// it is not, wait is the remaining time until it will be.
func schedule(interval, sinceLast time.Duration) (due bool, wait time.Duration) {
	if sinceLast >= interval {
		return true, 0
	}
	return false, interval - sinceLast
}

// rearm returns the delay until the next wake-up after a step that took spent.
func rearm(interval, spent time.Duration) time.Duration {
	if d := interval - spent; d > 0 {
		return d
	}
	return 0
}
