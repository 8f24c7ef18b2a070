// Package term hosts the engine in a terminal through tcell. Two character
// columns make one square pixel.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Surface draws into a region of a tcell screen starting at the top-left
// corner and leaving the bottom reserved rows free.
type Surface struct {
	screen   tcell.Screen
	reserved int
}

// NewSurface wraps screen, keeping reserved rows at the bottom out of the
// drawable area.
func NewSurface(screen tcell.Screen, reserved int) *Surface {
	return &Surface{screen: screen, reserved: reserved}
}

// Size returns the drawable area in pixels.
func (s *Surface) Size() (int, int) {
	w, h := s.screen.Size()
	h -= s.reserved
	if h < 0 {
		h = 0
	}
	return w / 2, h
}

// Fill paints the whole drawable area.
func (s *Surface) Fill(c color.RGBA) {
	w, h := s.Size()
	s.fill(0, 0, w, h, c)
}

// FillRect paints the pixels covered by the rectangle. Rectangles narrower
// than a pixel still paint one.
func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	x0, x1 := span(x, w)
	y0, y1 := span(y, h)
	s.fill(x0, y0, x1, y1, c)
}

// StrokeRect paints the outermost ring of pixels of the rectangle.
func (s *Surface) StrokeRect(x, y, w, h, _ float64, c color.RGBA) {
	x0, x1 := span(x, w)
	y0, y1 := span(y, h)
	s.fill(x0, y0, x1, y0+1, c)
	s.fill(x0, y1-1, x1, y1, c)
	s.fill(x0, y0, x0+1, y1, c)
	s.fill(x1-1, y0, x1, y1, c)
}

func span(pos, size float64) (int, int) {
	a := int(math.Round(pos))
	b := int(math.Round(pos + size))
	if b <= a {
		b = a + 1
	}
	return a, b
}

func (s *Surface) fill(x0, y0, x1, y1 int, c color.RGBA) {
	w, h := s.Size()
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w), min(y1, h)
	style := tcell.StyleDefault.Background(rgb(c)).Foreground(rgb(c))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x*2, y, ' ', nil, style)
			s.screen.SetContent(x*2+1, y, ' ', nil, style)
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
