package core

// Neighbors holds the eight Moore neighbor indices of every cell.
type Neighbors struct {
	Cols int
	idx  [][8]int
}

// neighborOffsets lists the (dx, dy) pairs visited for each cell.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// BuildNeighbors precomputes the wrapped neighborhood for a cols x cols torus.
// On grids smaller than 3x3 the same index can appear more than once.
func BuildNeighbors(cols int) *Neighbors {
	cols = ClampCols(cols)
	n := &Neighbors{Cols: cols, idx: make([][8]int, cols*cols)}
	for i := range n.idx {
		x, y := ToCoord(cols, i)
		for k, off := range neighborOffsets {
			nx := Wrap(cols, x, off[0])
			ny := Wrap(cols, y, off[1])
			n.idx[i][k] = cols*ny + nx
		}
	}
	return n
}

// Of returns the neighbor indices of cell i.
func (n *Neighbors) Of(i int) *[8]int { return &n.idx[i] }

// Len reports the number of cells covered.
func (n *Neighbors) Len() int { return len(n.idx) }
