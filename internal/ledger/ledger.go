// Package ledger tracks the score earned by a running simulation and the
// budget of manual cell toggles it buys.
package ledger

// Unlimited is the configuration value for a budget that never runs out.
const Unlimited = -1

// LevelSize is the number of points between budget grants.
const LevelSize = 10000

// Ledger holds the score and the remaining toggle budget.
type Ledger struct {
	initialScore int
	initialSteps int

	score     int
	steps     int
	unlimited bool
}

// New returns a ledger starting from the given score and budget. A negative
// budget means unlimited.
func New(score, steps int) *Ledger {
	l := &Ledger{initialScore: score, initialSteps: steps}
	l.Reset()
	return l
}

// Reset restores the configured initial score and budget.
func (l *Ledger) Reset() {
	l.Restore(l.initialScore, l.initialSteps)
}

// Restore sets score and budget directly, e.g. from a persisted snapshot.
func (l *Ledger) Restore(score, steps int) {
	if score < 0 {
		score = 0
	}
	l.score = score
	l.unlimited = steps < 0
	l.steps = steps
	if l.unlimited {
		l.steps = 0
	}
}

// Score returns the accumulated score.
func (l *Ledger) Score() int { return l.score }

// Level returns score / LevelSize.
func (l *Ledger) Level() int { return Level(l.score) }

// Level maps a score to its level.
func Level(score int) int { return score / LevelSize }

// Steps returns the remaining budget, or Unlimited.
func (l *Ledger) Steps() int {
	if l.unlimited {
		return Unlimited
	}
	return l.steps
}

// IsUnlimited reports whether toggles are never refused.
func (l *Ledger) IsUnlimited() bool { return l.unlimited }

// CanSpend reports whether a toggle would be accepted.
func (l *Ledger) CanSpend() bool { return l.unlimited || l.steps > 0 }

// Spend consumes one toggle. It returns false and changes nothing when the
// budget is exhausted.
func (l *Ledger) Spend() bool {
	if l.unlimited {
		return true
	}
	if l.steps <= 0 {
		return false
	}
	l.steps--
	return true
}

// Add credits a tick's score and grants one toggle per level crossed. It
// returns the number of toggles granted. Negative deltas are ignored.
func (l *Ledger) Add(delta int) int {
	if delta <= 0 {
		return 0
	}
	before := Level(l.score)
	l.score += delta
	gained := Level(l.score) - before
	if !l.unlimited {
		l.steps += gained
	}
	return gained
}
