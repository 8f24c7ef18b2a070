package core

import (
	"errors"
	"fmt"
)

// ErrOutOfRange reports coordinates that fall outside the [0, cols) square.
var ErrOutOfRange = errors.New("coordinate out of range")

// ToIndex returns the row-major index of (x, y) on a cols x cols grid.
func ToIndex(cols, x, y int) (int, error) {
	if x < 0 || y < 0 || x >= cols || y >= cols {
		return 0, fmt.Errorf("(%d,%d) on %dx%d grid: %w", x, y, cols, cols, ErrOutOfRange)
	}
	return cols*y + x, nil
}

// ToCoord returns the (x, y) position of a row-major index.
func ToCoord(cols, index int) (int, int) {
	return index % cols, index / cols
}

// Wrap returns v+delta folded onto the torus [0, cols).
func Wrap(cols, v, delta int) int {
	if cols <= 0 {
		return 0
	}
	n := (v + delta) % cols
	if n < 0 {
		n += cols
	}
	return n
}

// FloorDiv divides rounding towards negative infinity. Tile offsets for
// coordinates left of or above the origin rely on this.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ClampCols enforces the minimum grid size of one cell per side.
func ClampCols(cols int) int {
	if cols < 1 {
		return 1
	}
	return cols
}
