package render

import (
	"math"

	"life-canvas/internal/core"
)

// Minimum and maximum on-screen cell sizes, in pixels, reachable by zooming.
const (
	MinCellPixels = 1.32
	MaxCellPixels = 60
)

// Viewport is the pan/zoom state supplied by the gesture layer. Screen
// position of a grid coordinate u is u*cellSize*Scale + X.
type Viewport struct {
	Scale float64
	X, Y  float64
}

// DefaultViewport is the unzoomed, unpanned view.
func DefaultViewport() Viewport { return Viewport{Scale: 1} }

// Pan moves the view by a screen-space delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.X += dx
	v.Y += dy
	return v
}

// ZoomAt multiplies the scale by factor, clamped to [lo, hi], keeping the
// content under (px, py) fixed on screen.
func (v Viewport) ZoomAt(factor, px, py, lo, hi float64) Viewport {
	if !(factor > 0) || !(v.Scale > 0) {
		return v
	}
	next := v.Scale * factor
	if hi > 0 && next > hi {
		next = hi
	}
	if lo > 0 && next < lo {
		next = lo
	}
	ux := (px - v.X) / v.Scale
	uy := (py - v.Y) / v.Scale
	v.X = px - ux*next
	v.Y = py - uy*next
	v.Scale = next
	return v
}

// ScaleBounds returns the zoom range that keeps cells between MinCellPixels
// and MaxCellPixels for the given unscaled cell size.
func ScaleBounds(cellSize float64) (lo, hi float64) {
	if !(cellSize > 0) {
		cellSize = 1
	}
	return MinCellPixels / cellSize, MaxCellPixels / cellSize
}

// CellSize is the unscaled side of one cell on a width x height surface.
func CellSize(width, height, cols int) float64 {
	cols = core.ClampCols(cols)
	return float64(min(width, height)) / float64(cols)
}

// Layout is the window of grid coordinates intersecting the surface. The
// window is not limited to [0, cols): coordinates outside it are drawn as
// toroidal repetitions of the grid.
type Layout struct {
	Cols          int
	Width, Height float64
	Cell          float64
	X, Y          float64

	OffsetCols, OffsetRows   int
	VisibleCols, VisibleRows int
}

// NewLayout computes the visible window. It reports false when the surface
// is empty or the viewport unusable.
func NewLayout(cols int, vp Viewport, width, height int) (Layout, bool) {
	cols = core.ClampCols(cols)
	if width <= 0 || height <= 0 || !(vp.Scale > 0) {
		return Layout{}, false
	}
	cell := CellSize(width, height, cols) * vp.Scale
	if !(cell > 0) || math.IsInf(cell, 0) {
		return Layout{}, false
	}
	l := Layout{
		Cols:   cols,
		Width:  float64(width),
		Height: float64(height),
		Cell:   cell,
		X:      vp.X,
		Y:      vp.Y,
	}
	l.VisibleCols = int(math.Ceil(l.Width/cell)) + 1
	l.VisibleRows = int(math.Ceil(l.Height/cell)) + 1
	l.OffsetCols = -int(math.Ceil(vp.X / cell))
	l.OffsetRows = -int(math.Ceil(vp.Y / cell))
	return l, true
}

// Visit calls fn for every on-screen placement of a cell, with the cell's
// index and the top-left screen corner of that placement.
func (l Layout) Visit(fn func(index int, x, y float64)) {
	cols := l.Cols
	for row := l.OffsetRows; row < l.OffsetRows+l.VisibleRows; row++ {
		r := core.Wrap(cols, row, 0)
		tileY := core.FloorDiv(row, cols)
		y := float64(r+tileY*cols)*l.Cell + l.Y
		if y <= -l.Cell || y >= l.Height {
			continue
		}
		for col := l.OffsetCols; col < l.OffsetCols+l.VisibleCols; col++ {
			c := core.Wrap(cols, col, 0)
			tileX := core.FloorDiv(col, cols)
			x := float64(c+tileX*cols)*l.Cell + l.X
			if x <= -l.Cell || x >= l.Width {
				continue
			}
			fn(r*cols+c, x, y)
		}
	}
}

// CellAt maps a screen point to the index of the cell drawn there.
func (l Layout) CellAt(sx, sy float64) (int, bool) {
	if !(l.Cell > 0) || l.Cols <= 0 {
		return 0, false
	}
	col := int(math.Floor((sx - l.X) / l.Cell))
	row := int(math.Floor((sy - l.Y) / l.Cell))
	c := core.Wrap(l.Cols, col, 0)
	r := core.Wrap(l.Cols, row, 0)
	return r*l.Cols + c, true
}
