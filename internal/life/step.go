package life

import "life-canvas/internal/core"

// StepResult summarizes one generation.
type StepResult struct {
	// Changed is true when at least one cell was born or died.
	Changed bool
	// Score is the tick score earned by cells alive after the step.
	Score int
}

// Step advances the grid by one generation under mode m. Every write goes to
// the next buffer and reads only the current one; the buffers are swapped
// once the pass is complete.
func (g *Grid) Step(m core.Mode, r Rules) StepResult {
	var res StepResult
	cur, nxt := g.cur, g.nxt
	for i := range cur {
		c := cur[i]
		living := 0
		for _, j := range g.neighbors.Of(i) {
			if cur[j].Alive || r.IsWall(cur[j], m) {
				living++
			}
		}

		alive := (c.Alive && living > 1 && living < 4) || living == 3
		if r.IsWall(c, m) {
			alive = true
		}

		n := &nxt[i]
		n.Alive = alive
		if alive {
			if c.Alive {
				n.Age = c.Age + 1
			} else {
				n.Age = 1
			}
		} else {
			n.Age = r.nextDeadAge(c)
		}
		n.Updated = c.Alive != n.Alive || c.Age != n.Age

		if c.Alive != n.Alive {
			res.Changed = true
		}
		res.Score += r.score(n.Age)
	}
	g.cur, g.nxt = nxt, cur
	return res
}
