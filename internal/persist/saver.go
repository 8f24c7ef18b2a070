package persist

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval is how often Run saves a snapshot.
const DefaultInterval = 5 * time.Second

// Snapshotter produces a consistent copy of the current state.
type Snapshotter interface {
	Snapshot() State
}

// Saver writes snapshots to a Store from its own goroutine. Save never
// blocks on the store: a snapshot queued while a write is in flight replaces
// any older pending one.
type Saver struct {
	store  Store
	key    string
	logger *log.Logger

	mu      sync.Mutex
	pending *State
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

// NewSaver starts a saver writing under Key. logger may be nil.
func NewSaver(store Store, logger *log.Logger) *Saver {
	if logger == nil {
		logger = log.Default()
	}
	s := &Saver{
		store:  store,
		key:    Key,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go s.loop()
	return s
}

// Load returns the stored snapshot. A missing entry, a read error or a
// corrupt value all yield false; corrupt values are removed from the store.
func (s *Saver) Load() (*State, bool) {
	data, ok, err := s.store.Get(s.key)
	if err != nil {
		s.logger.Printf("persist: read %s: %v", s.key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	st, err := Decode(data)
	if err != nil {
		s.logger.Printf("persist: discarding %s: %v", s.key, err)
		if err := s.store.Remove(s.key); err != nil {
			s.logger.Printf("persist: remove %s: %v", s.key, err)
		}
		return nil, false
	}
	return &st, true
}

// Save queues st for writing and returns immediately.
func (s *Saver) Save(st State) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = &st
	select {
	case s.wake <- struct{}{}:
	default:
	}
	s.mu.Unlock()
}

// Run saves a snapshot of src every interval until ctx is done.
func (s *Saver) Run(ctx context.Context, src Snapshotter, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Save(src.Snapshot())
		}
	}
}

// Close flushes the pending snapshot, if any, and stops the writer.
func (s *Saver) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.wake)
	s.mu.Unlock()
	<-s.done
}

func (s *Saver) loop() {
	defer close(s.done)
	for range s.wake {
		s.flush()
	}
	s.flush()
}

func (s *Saver) flush() {
	s.mu.Lock()
	st := s.pending
	s.pending = nil
	s.mu.Unlock()
	if st == nil {
		return
	}
	data, err := Encode(*st)
	if err != nil {
		s.logger.Printf("persist: encode: %v", err)
		return
	}
	if err := s.store.Set(s.key, data); err != nil {
		s.logger.Printf("persist: write %s: %v", s.key, err)
	}
}
