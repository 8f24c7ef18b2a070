package life

import "life-canvas/internal/core"

// Grid owns the double-buffered cells of a cols x cols torus together with
// the neighborhood index for that size.
type Grid struct {
	cols      int
	cur       []Cell
	nxt       []Cell
	neighbors *core.Neighbors
}

// NewGrid allocates an all-dead grid. Non-positive sizes are clamped to 1.
func NewGrid(cols int) *Grid {
	g := &Grid{}
	g.Reset(cols)
	return g
}

func makeCells(cols int) []Cell {
	cells := make([]Cell, cols*cols)
	for i := range cells {
		x, y := core.ToCoord(cols, i)
		cells[i] = Cell{X: x, Y: y, Index: i, Updated: true}
	}
	return cells
}

// Reset replaces both buffers with dead cells. The neighborhood index is only
// rebuilt when the size actually changes.
func (g *Grid) Reset(cols int) {
	cols = core.ClampCols(cols)
	if g.neighbors == nil || g.neighbors.Cols != cols {
		g.neighbors = core.BuildNeighbors(cols)
	}
	g.cols = cols
	g.cur = makeCells(cols)
	g.nxt = makeCells(cols)
}

// Cols returns the side length.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cur) }

// Cells exposes the current generation. Callers must not retain the slice
// across a Step, which swaps buffers.
func (g *Grid) Cells() []Cell { return g.cur }

// Cell returns a copy of cell i.
func (g *Grid) Cell(i int) (Cell, bool) {
	if i < 0 || i >= len(g.cur) {
		return Cell{}, false
	}
	return g.cur[i], true
}

// Neighbors exposes the precomputed neighborhood index.
func (g *Grid) Neighbors() *core.Neighbors { return g.neighbors }

// Set writes the state of cell i. Out of range indices are ignored.
func (g *Grid) Set(i int, alive bool, age int) bool {
	if i < 0 || i >= len(g.cur) {
		return false
	}
	c := &g.cur[i]
	c.Updated = c.Alive != alive || c.Age != age
	c.Alive = alive
	c.Age = age
	return true
}

// Toggle flips cell i. A revived cell starts at age 1, a killed cell is reset
// to age 0 so no afterglow is shown for it.
func (g *Grid) Toggle(i int) bool {
	if i < 0 || i >= len(g.cur) {
		return false
	}
	if g.cur[i].Alive {
		return g.Set(i, false, 0)
	}
	return g.Set(i, true, 1)
}

// Fill seeds every cell alive with probability density using rng.
func (g *Grid) Fill(rng *core.RNG, density float64) {
	alive := make([]bool, len(g.cur))
	rng.FillDensity(alive, density)
	for i, a := range alive {
		age := 0
		if a {
			age = 1
		}
		g.Set(i, a, age)
	}
}

// Load copies alive/age from cells into the current buffer by index. Cells
// with out of range indices are skipped.
func (g *Grid) Load(cells []Cell) {
	for _, c := range cells {
		g.Set(c.Index, c.Alive, c.Age)
	}
}

// Snapshot returns a copy of the current generation.
func (g *Grid) Snapshot() []Cell {
	return append([]Cell(nil), g.cur...)
}

// Population counts living cells.
func (g *Grid) Population() int {
	n := 0
	for i := range g.cur {
		if g.cur[i].Alive {
			n++
		}
	}
	return n
}
