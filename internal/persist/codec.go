// Package persist stores and restores a single snapshot of the simulation in
// a key-value store.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"life-canvas/internal/core"
	"life-canvas/internal/ledger"
	"life-canvas/internal/life"
)

// ErrCorrupt is returned by Decode for any malformed snapshot.
var ErrCorrupt = errors.New("corrupt snapshot")

// headerLen is the number of values before the per-cell triples.
const headerLen = 5

// State is the durable part of a simulation.
type State struct {
	Cols       int
	Score      int
	Steps      int // ledger.Unlimited for no limit
	Generation int
	Mode       core.Mode
	Cells      []life.Cell
}

// MaxCols bounds the grid side accepted from a snapshot so cols*cols
// cannot overflow.
const MaxCols = 1 << 15

// Encode flattens s into a JSON array: cols, score, steps (-1 when
// unlimited), generation, mode, then index, alive (0|1) and age for every
// cell in index order.
func Encode(s State) ([]byte, error) {
	steps := s.Steps
	if steps < 0 {
		steps = ledger.Unlimited
	}
	out := make([]int, 0, headerLen+3*len(s.Cells))
	out = append(out, s.Cols, s.Score, steps, s.Generation, int(s.Mode))
	for _, c := range s.Cells {
		alive := 0
		if c.Alive {
			alive = 1
		}
		out = append(out, c.Index, alive, c.Age)
	}
	return json.Marshal(out)
}

// Decode parses a snapshot produced by Encode. Any structural or type
// problem yields an error wrapping ErrCorrupt.
func Decode(data []byte) (State, error) {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	vals := make([]int, len(raw))
	for i, p := range raw {
		if p == nil {
			return State{}, fmt.Errorf("%w: value %d is null", ErrCorrupt, i)
		}
		v := *p
		if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return State{}, fmt.Errorf("%w: value %d is not an integer", ErrCorrupt, i)
		}
		vals[i] = int(v)
	}
	if len(vals) < headerLen {
		return State{}, fmt.Errorf("%w: %d values, header needs %d", ErrCorrupt, len(vals), headerLen)
	}

	s := State{
		Cols:       vals[0],
		Score:      vals[1],
		Steps:      vals[2],
		Generation: vals[3],
		Mode:       core.Mode(vals[4]),
	}
	switch {
	case s.Cols < 1 || s.Cols > MaxCols:
		return State{}, fmt.Errorf("%w: cols %d", ErrCorrupt, s.Cols)
	case s.Score < 0:
		return State{}, fmt.Errorf("%w: score %d", ErrCorrupt, s.Score)
	case s.Steps < ledger.Unlimited:
		return State{}, fmt.Errorf("%w: steps %d", ErrCorrupt, s.Steps)
	case s.Generation < 0:
		return State{}, fmt.Errorf("%w: generation %d", ErrCorrupt, s.Generation)
	case vals[4] < 0 || !s.Mode.Valid():
		return State{}, fmt.Errorf("%w: mode %d", ErrCorrupt, vals[4])
	}

	body := vals[headerLen:]
	if len(body)%3 != 0 || len(body)/3 != s.Cols*s.Cols {
		return State{}, fmt.Errorf("%w: %d cell values for a %dx%d grid", ErrCorrupt, len(body), s.Cols, s.Cols)
	}

	s.Cells = make([]life.Cell, s.Cols*s.Cols)
	seen := make([]bool, len(s.Cells))
	for k := 0; k < len(body); k += 3 {
		idx, alive, age := body[k], body[k+1], body[k+2]
		if idx < 0 || idx >= len(s.Cells) || seen[idx] {
			return State{}, fmt.Errorf("%w: cell index %d", ErrCorrupt, idx)
		}
		if alive != 0 && alive != 1 {
			return State{}, fmt.Errorf("%w: alive flag %d at cell %d", ErrCorrupt, alive, idx)
		}
		seen[idx] = true
		x, y := core.ToCoord(s.Cols, idx)
		s.Cells[idx] = life.Cell{X: x, Y: y, Index: idx, Alive: alive == 1, Age: age, Updated: true}
	}
	return s, nil
}
