package app

import (
	"context"
	"log"
	"time"

	"life-canvas/internal/engine"
	"life-canvas/internal/persist"
)

// Session is an engine together with its background saver. Both hosts open
// one at startup and close it on the way out.
type Session struct {
	Engine *engine.Engine

	saver  *persist.Saver
	cancel context.CancelFunc
	done   chan struct{}
}

// Open builds the engine, restores the saved game unless fresh is set and
// starts saving every interval. A store error is logged and the game starts
// from scratch.
func Open(cfg engine.Config, store persist.Store, fresh bool, interval time.Duration, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	if interval <= 0 {
		interval = persist.DefaultInterval
	}
	e := engine.New(cfg)
	saver := persist.NewSaver(store, logger)

	var st *persist.State
	if !fresh {
		if loaded, ok := saver.Load(); ok {
			st = loaded
			logger.Printf("restored %dx%d grid at generation %d", st.Cols, st.Cols, st.Generation)
		}
	}
	e.Restore(st)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{Engine: e, saver: saver, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		saver.Run(ctx, e, interval)
	}()
	return s
}

// Close stops the clock, writes a final snapshot and waits for the store.
func (s *Session) Close() {
	s.Engine.Stop()
	s.cancel()
	<-s.done
	s.saver.Save(s.Engine.Snapshot())
	s.saver.Close()
}
