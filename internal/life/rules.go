package life

import "life-canvas/internal/core"

// Cell is one site of the torus. X and Y are cached from Index.
type Cell struct {
	X, Y    int
	Index   int
	Alive   bool
	Age     int
	Updated bool
}

// Rules holds the tunable thresholds of the aging automaton.
type Rules struct {
	// WallAge is the age a living cell must exceed to become a wall.
	WallAge int
	// WallDecayAge is the age at which superpower walls stop being walls.
	WallDecayAge int
	// AfterglowFloor is the most negative age a dead cell fades to before
	// being reset to zero.
	AfterglowFloor int
	// ScoreNumerator is divided by a living cell's age to get its tick score.
	ScoreNumerator int
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{
		WallAge:        12,
		WallDecayAge:   1024,
		AfterglowFloor: -12,
		ScoreNumerator: 16,
	}
}

// IsWall reports whether c acts as a wall under mode m.
func (r Rules) IsWall(c Cell, m core.Mode) bool {
	switch m {
	case core.ModeSuperpower:
		return c.Alive && c.Age > r.WallAge && c.Age < r.WallDecayAge
	case core.ModeMadness:
		return c.Alive && c.Age > r.WallAge
	default:
		return false
	}
}

// nextDeadAge returns the age of a cell that is dead after this tick.
func (r Rules) nextDeadAge(c Cell) int {
	if !c.Alive && c.Age < 0 && c.Age > r.AfterglowFloor {
		return c.Age - 1
	}
	if c.Alive {
		return -1
	}
	return 0
}

// score is the tick contribution of a cell with the given post-step age.
func (r Rules) score(age int) int {
	if age <= 0 {
		return 0
	}
	return r.ScoreNumerator / age
}
