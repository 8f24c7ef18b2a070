package clock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"life-canvas/internal/core"
)

type recorder struct {
	mu     sync.Mutex
	states []core.RunState
	ch     chan core.RunState
}

func newRecorder() *recorder { return &recorder{ch: make(chan core.RunState, 16)} }

func (r *recorder) notify(s core.RunState) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
	r.ch <- s
}

func (r *recorder) waitFor(t *testing.T, want core.RunState) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-r.ch:
			if s == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestScheduleAndRearm(t *testing.T) {
	const interval = 100 * time.Millisecond
	if due, wait := schedule(interval, 40*time.Millisecond); due || wait != 60*time.Millisecond {
		t.Fatalf("early wake-up: due=%v wait=%v", due, wait)
	}
	if due, _ := schedule(interval, interval); !due {
		t.Fatal("a full interval should be due")
	}
	if d := rearm(interval, 30*time.Millisecond); d != 70*time.Millisecond {
		t.Fatalf("rearm should subtract the step duration, got %v", d)
	}
	if d := rearm(interval, 250*time.Millisecond); d != 0 {
		t.Fatalf("rearm must clamp to zero, got %v", d)
	}
}

func TestPausesWhenStable(t *testing.T) {
	var steps atomic.Int32
	rec := newRecorder()
	c := New(2*time.Millisecond, func(time.Duration) bool {
		return steps.Add(1) < 3
	}, rec.notify)

	c.Start()
	rec.waitFor(t, core.Running)
	rec.waitFor(t, core.Paused)

	if got := steps.Load(); got != 3 {
		t.Fatalf("expected 3 steps before pausing, got %d", got)
	}
	if c.State() != core.Paused {
		t.Fatalf("expected paused, got %s", c.State())
	}

	c.Start()
	rec.waitFor(t, core.Running)
	rec.waitFor(t, core.Paused)
	c.Stop()
	rec.waitFor(t, core.Stopped)
}

func TestStopCancelsPendingSteps(t *testing.T) {
	var steps atomic.Int32
	c := New(time.Millisecond, func(time.Duration) bool {
		steps.Add(1)
		return true
	}, nil)

	c.Start()
	deadline := time.Now().Add(2 * time.Second)
	for steps.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	c.Stop()
	after := steps.Load()
	time.Sleep(20 * time.Millisecond)
	if got := steps.Load(); got != after {
		t.Fatalf("steps ran after Stop: %d -> %d", after, got)
	}
	if c.State() != core.Stopped {
		t.Fatalf("expected stopped, got %s", c.State())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	rec := newRecorder()
	c := New(time.Hour, func(time.Duration) bool { return true }, rec.notify)
	c.Start()
	c.Start()
	c.Stop()
	c.Stop()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.states) != 2 || rec.states[0] != core.Running || rec.states[1] != core.Stopped {
		t.Fatalf("unexpected transitions %v", rec.states)
	}
}

func TestSpeedChangesInterval(t *testing.T) {
	c := New(100*time.Millisecond, func(time.Duration) bool { return true }, nil)
	if err := c.SetSpeed(0.5); err != nil {
		t.Fatal(err)
	}
	if c.Interval() != 200*time.Millisecond {
		t.Fatalf("0.5x should double the interval, got %v", c.Interval())
	}
	if err := c.SetSpeed(4); err != nil {
		t.Fatal(err)
	}
	if c.Interval() != 25*time.Millisecond {
		t.Fatalf("4x should quarter the interval, got %v", c.Interval())
	}
	for _, bad := range []float64{0, -1} {
		if err := c.SetSpeed(bad); err == nil {
			t.Fatalf("speed %v should be rejected", bad)
		}
	}
	if c.Speed() != 4 {
		t.Fatalf("rejected speed must not apply, got %v", c.Speed())
	}
}

func TestElapsedIsReported(t *testing.T) {
	got := make(chan time.Duration, 1)
	c := New(5*time.Millisecond, func(elapsed time.Duration) bool {
		select {
		case got <- elapsed:
		default:
		}
		return false
	}, nil)
	c.Start()
	select {
	case elapsed := <-got:
		if elapsed < 5*time.Millisecond {
			t.Fatalf("step ran early after %v", elapsed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("step never ran")
	}
}
