package engine

import "life-canvas/internal/core"

// Status is the snapshot passed to observers.
type Status struct {
	State      core.RunState
	Cols       int
	Speed      float64
	Score      int
	Steps      int
	Generation int
	Mode       core.Mode
	Ready      bool
	// Rate is the last tick's score scaled by the seconds it covered.
	Rate float64
}

// Observer is notified on run-state transitions and on cols, speed, mode,
// reset and restore changes.
type Observer interface {
	OnChange(Status)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Status)

// OnChange calls f.
func (f ObserverFunc) OnChange(s Status) { f(s) }

type subscription struct {
	id  int
	obs Observer
}

// Subscribe registers o and returns a function that removes it. Observers
// may subscribe or unsubscribe from inside a notification.
func (e *Engine) Subscribe(o Observer) (cancel func()) {
	e.obsMu.Lock()
	e.nextObs++
	id := e.nextObs
	e.observers = append(e.observers, subscription{id: id, obs: o})
	e.obsMu.Unlock()

	return func() {
		e.obsMu.Lock()
		defer e.obsMu.Unlock()
		for i, s := range e.observers {
			if s.id == id {
				e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) notify() {
	e.obsMu.Lock()
	subs := append([]subscription(nil), e.observers...)
	e.obsMu.Unlock()
	if len(subs) == 0 {
		return
	}
	st := e.Status()
	for _, s := range subs {
		s.obs.OnChange(st)
	}
}
