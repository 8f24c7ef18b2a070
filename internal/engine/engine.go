// Package engine ties the automaton, the ledger and the clock together and is
// the single object hosts talk to.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"life-canvas/internal/clock"
	"life-canvas/internal/core"
	"life-canvas/internal/ledger"
	"life-canvas/internal/life"
	"life-canvas/internal/persist"
	"life-canvas/internal/render"
)

// ErrInvalidMode is returned by SetMode for an unknown mode.
var ErrInvalidMode = errors.New("unknown mode")

// Engine owns the simulation state. All methods are safe for concurrent use.
//
// Locking: mu guards the grid and ledger. The clock calls step while holding
// its own lock, so Engine never calls into the clock while holding mu.
type Engine struct {
	cfg Config

	mu         sync.RWMutex
	grid       *life.Grid
	ledger     *ledger.Ledger
	mode       core.Mode
	rules      life.Rules
	generation int
	version    uint64
	rate       float64
	ready      bool

	clock *clock.Clock

	obsMu     sync.Mutex
	observers []subscription
	nextObs   int
}

// New returns a stopped engine with an all-dead grid.
func New(cfg Config) *Engine {
	cfg.Cols = core.ClampCols(cfg.Cols)
	cfg.Speed = min(cfg.Speed, clock.MaxSpeed)
	if !cfg.Mode.Valid() {
		cfg.Mode = core.ModeClassic
	}
	e := &Engine{
		cfg:    cfg,
		grid:   life.NewGrid(cfg.Cols),
		ledger: ledger.New(0, cfg.Steps),
		mode:   cfg.Mode,
		rules:  cfg.Rules,
	}
	e.clock = clock.New(cfg.Interval, e.step, func(core.RunState) { e.notify() })
	if cfg.Speed > 0 {
		// Clamped to MaxSpeed above, so this cannot fail.
		_ = e.clock.SetSpeed(cfg.Speed)
	}
	return e
}

func (e *Engine) step(elapsed time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := e.grid.Step(e.mode, e.rules)
	e.generation++
	e.ledger.Add(res.Score)
	e.rate = float64(res.Score) * elapsed.Seconds()
	e.version++
	return res.Changed
}

// Start runs the clock. A paused clock resumes.
func (e *Engine) Start() { e.clock.Start() }

// Stop halts the clock.
func (e *Engine) Stop() { e.clock.Stop() }

// State returns the clock's run state.
func (e *Engine) State() core.RunState { return e.clock.State() }

// StepOnce stops the clock and advances exactly one generation. It reports
// whether any cell changed.
func (e *Engine) StepOnce() bool {
	e.clock.Stop()
	changed := e.step(e.clock.Interval())
	e.notify()
	return changed
}

// Reset stops the clock and clears the grid, score and budget.
func (e *Engine) Reset() {
	e.clock.Stop()
	e.mu.Lock()
	e.resetLocked(e.cfg.Cols)
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) resetLocked(cols int) {
	e.cfg.Cols = cols
	e.grid.Reset(cols)
	e.ledger.Reset()
	e.generation = 0
	e.rate = 0
	e.version++
}

// SetCols resizes the grid, which resets it. Sizes below one are clamped.
func (e *Engine) SetCols(cols int) {
	cols = core.ClampCols(cols)
	e.mu.RLock()
	same := e.grid.Cols() == cols
	e.mu.RUnlock()
	if same {
		return
	}
	e.clock.Stop()
	e.mu.Lock()
	e.resetLocked(cols)
	e.mu.Unlock()
	e.notify()
}

// SetSpeed changes the clock multiplier.
func (e *Engine) SetSpeed(speed float64) error {
	if err := e.clock.SetSpeed(speed); err != nil {
		return fmt.Errorf("set speed %v: %w", speed, err)
	}
	e.notify()
	return nil
}

// SetMode switches the wall rule from the next tick on.
func (e *Engine) SetMode(m core.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("set mode %d: %w", uint8(m), ErrInvalidMode)
	}
	e.mu.Lock()
	e.mode = m
	e.version++
	e.mu.Unlock()
	e.notify()
	return nil
}

// Mode returns the active mode.
func (e *Engine) Mode() core.Mode {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mode
}

// Toggle flips cell index if the budget allows, spending one step. It is a
// no-op returning false when the index is out of range or the budget is
// exhausted. Toggling a paused grid resumes the clock.
func (e *Engine) Toggle(index int) bool {
	e.mu.Lock()
	if index < 0 || index >= e.grid.Len() || !e.ledger.Spend() {
		e.mu.Unlock()
		return false
	}
	e.grid.Toggle(index)
	e.version++
	e.mu.Unlock()

	if e.clock.State() == core.Paused {
		e.clock.Start()
	}
	return true
}

// Seed stops the clock, resets and fills the grid at random with the given
// density. The same seed always produces the same grid.
func (e *Engine) Seed(seed int64, density float64) {
	e.clock.Stop()
	e.mu.Lock()
	e.resetLocked(e.cfg.Cols)
	e.grid.Fill(core.NewRNG(seed), density)
	e.mu.Unlock()
	e.notify()
}

// Snapshot copies the durable state.
func (e *Engine) Snapshot() persist.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return persist.State{
		Cols:       e.grid.Cols(),
		Score:      e.ledger.Score(),
		Steps:      e.ledger.Steps(),
		Generation: e.generation,
		Mode:       e.mode,
		Cells:      e.grid.Snapshot(),
	}
}

// Restore replaces the state with st and marks the engine ready. A nil st
// keeps the fresh grid.
func (e *Engine) Restore(st *persist.State) {
	if st != nil {
		e.clock.Stop()
	}
	e.mu.Lock()
	if st != nil {
		e.resetLocked(core.ClampCols(st.Cols))
		e.grid.Load(st.Cells)
		e.ledger.Restore(st.Score, st.Steps)
		e.generation = st.Generation
		if st.Mode.Valid() {
			e.mode = st.Mode
		}
	}
	e.ready = true
	e.version++
	e.mu.Unlock()
	e.notify()
}

// View calls fn with the current generation while holding the read lock.
func (e *Engine) View(fn func(render.Frame)) {
	state := e.clock.State()
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(render.Frame{
		Cols:    e.grid.Cols(),
		Cells:   e.grid.Cells(),
		Mode:    e.mode,
		State:   state,
		Rules:   e.rules,
		Version: e.version,
	})
}

// Version increases on every change visible to the renderer.
func (e *Engine) Version() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// Cols returns the grid side length.
func (e *Engine) Cols() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Cols()
}

// Cell returns a copy of cell index.
func (e *Engine) Cell(index int) (life.Cell, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Cell(index)
}

// Status returns the observer snapshot.
func (e *Engine) Status() Status {
	state := e.clock.State()
	speed := e.clock.Speed()
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Status{
		State:      state,
		Cols:       e.grid.Cols(),
		Speed:      speed,
		Score:      e.ledger.Score(),
		Steps:      e.ledger.Steps(),
		Generation: e.generation,
		Mode:       e.mode,
		Ready:      e.ready,
		Rate:       e.rate,
	}
}

// Population counts living cells.
func (e *Engine) Population() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.grid.Population()
}
