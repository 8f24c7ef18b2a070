// Package render draws a toroidal cell grid onto a host surface through a
// pan/zoom viewport, tiling the grid to fill the screen.
package render

import (
	"image/color"

	"life-canvas/internal/core"
	"life-canvas/internal/life"
)

// Surface is the drawable rectangle supplied by the host.
type Surface interface {
	// Size returns the current pixel dimensions. It is queried on every draw.
	Size() (w, h int)
	Fill(c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeRect(x, y, w, h, width float64, c color.RGBA)
}

// Frame is a consistent view of one generation.
type Frame struct {
	Cols    int
	Cells   []life.Cell
	Mode    core.Mode
	State   core.RunState
	Rules   life.Rules
	Version uint64
}

// Source provides frames. View must hold whatever lock keeps Cells stable
// until fn returns.
type Source interface {
	View(fn func(Frame))
}

// Renderer draws frames and skips work when nothing changed since the last
// completed draw.
type Renderer struct {
	palettes Palettes
	vp       Viewport
	limiter  *core.FixedStep

	clean       bool
	lastVersion uint64
	lastState   core.RunState
	lastSize    core.Size
	layout      Layout
}

// NewRenderer returns a renderer using the given palettes. fps caps the redraw
// rate; zero or less disables the cap.
func NewRenderer(p Palettes, fps int) *Renderer {
	r := &Renderer{palettes: p, vp: DefaultViewport()}
	if fps > 0 {
		r.limiter = core.NewFixedStep(fps)
	}
	return r
}

// Viewport returns the current pan/zoom state.
func (r *Renderer) Viewport() Viewport { return r.vp }

// SetViewport replaces the pan/zoom state and marks the canvas dirty.
func (r *Renderer) SetViewport(vp Viewport) {
	if !(vp.Scale > 0) {
		vp.Scale = 1
	}
	r.vp = vp
	r.clean = false
}

// Invalidate forces the next Draw to repaint.
func (r *Renderer) Invalidate() { r.clean = false }

// Clean reports whether the last draw is still current.
func (r *Renderer) Clean() bool { return r.clean }

// Layout returns the layout used by the most recent draw.
func (r *Renderer) Layout() Layout { return r.layout }

// LayoutFor computes the layout for a surface of the given size with the
// current viewport.
func (r *Renderer) LayoutFor(cols, w, h int) (Layout, bool) {
	return NewLayout(cols, r.vp, w, h)
}

// Draw paints src onto s unless the canvas is clean or the frame cap has not
// elapsed. It reports whether anything was drawn.
func (r *Renderer) Draw(s Surface, src Source) bool {
	w, h := s.Size()
	size := core.Size{W: w, H: h}
	if size != r.lastSize {
		r.clean = false
	}
	if r.limiter != nil && !r.limiter.ShouldStep() {
		return false
	}

	drawn := false
	src.View(func(f Frame) {
		if r.clean && f.Version == r.lastVersion && f.State == r.lastState {
			return
		}
		r.paint(s, f, w, h)
		r.lastVersion = f.Version
		r.lastState = f.State
		drawn = true
	})
	if drawn {
		r.clean = true
		r.lastSize = size
	}
	return drawn
}

func (r *Renderer) paint(s Surface, f Frame, w, h int) {
	p := r.palettes.For(f.State)
	s.Fill(p.Background)
	l, ok := NewLayout(f.Cols, r.vp, w, h)
	if !ok {
		return
	}
	r.layout = l

	inset := 0.0
	if r.vp.Scale > 3 {
		inset = 1
	}
	side := l.Cell - 2*inset
	if l.Cell > 4 {
		side--
	}
	if side < 1 {
		side = l.Cell
		inset = 0
	}
	outline := l.Cell >= 6

	l.Visit(func(index int, x, y float64) {
		if index >= len(f.Cells) {
			return
		}
		c := f.Cells[index]
		wall := f.Rules.IsWall(c, f.Mode)
		s.FillRect(x+inset, y+inset, side, side, p.Color(c, wall))
		if wall && outline {
			s.StrokeRect(x+inset, y+inset, side, side, 1, p.WallEdge)
		}
	})
}
