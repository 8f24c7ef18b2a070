package render

import (
	"image/color"

	"life-canvas/internal/core"
	"life-canvas/internal/life"
)

// Age thresholds for the living cell colors.
const (
	OldAge      = 2
	VeryOldAge  = 8
	SuperOldAge = 16
)

// Palette holds the cell colors used while the clock is in one run state.
type Palette struct {
	Background color.RGBA
	Dead       color.RGBA
	Alive      color.RGBA
	Old        color.RGBA
	VeryOld    color.RGBA
	SuperOld   color.RGBA
	Wall       color.RGBA
	WallEdge   color.RGBA
	// Afterglow is indexed by |age| mod len for dead cells with negative age.
	Afterglow []color.RGBA
}

// Palettes selects a palette per run state.
type Palettes struct {
	Running Palette
	Paused  Palette
	Stopped Palette
}

// For returns the palette for s.
func (p Palettes) For(s core.RunState) Palette {
	switch s {
	case core.Running:
		return p.Running
	case core.Paused:
		return p.Paused
	default:
		return p.Stopped
	}
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

var (
	colorBackground = hex(0x000000)
	colorDead       = hex(0x242424)
	colorAlive      = hex(0xffc107)
	colorOld        = hex(0xf44336)
	colorVeryOld    = hex(0x9c27b0)
	colorSuperOld   = hex(0x3f51b5)
	colorWall       = hex(0xe8eaf6)
	colorWallEdge   = hex(0x6389a7)
	colorSecondary  = hex(0x6389a7)
	colorDanger     = hex(0xff0048)
)

// DefaultPalettes returns the standard colors. While stopped every living
// cell is drawn in the muted secondary color.
func DefaultPalettes() Palettes {
	live := Palette{
		Background: colorBackground,
		Dead:       colorDead,
		Alive:      colorAlive,
		Old:        colorOld,
		VeryOld:    colorVeryOld,
		SuperOld:   colorSuperOld,
		Wall:       colorWall,
		WallEdge:   colorWallEdge,
		Afterglow:  Afterglow(colorDanger, colorDead, 12),
	}
	stopped := live
	stopped.Alive = colorSecondary
	stopped.Old = colorSecondary
	stopped.VeryOld = colorSecondary
	stopped.SuperOld = colorSecondary
	stopped.Afterglow = Afterglow(colorSecondary, colorDead, 12)
	return Palettes{Running: live, Paused: live, Stopped: stopped}
}

// Afterglow builds a fade of n entries. Entry 0 is the fully faded color and
// entry k blends from glow towards faded as k grows.
func Afterglow(glow, faded color.RGBA, n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	out[0] = faded
	for k := 1; k < n; k++ {
		t := float64(k) / float64(n)
		out[k] = lerpRGBA(scaleRGBA(glow, 0.55), faded, t)
	}
	return out
}

// Color returns the fill for c. Walls take precedence over age bands, which
// take precedence over the plain alive color.
func (p Palette) Color(c life.Cell, wall bool) color.RGBA {
	if wall {
		return p.Wall
	}
	if c.Alive {
		switch {
		case c.Age > SuperOldAge:
			return p.SuperOld
		case c.Age > VeryOldAge:
			return p.VeryOld
		case c.Age > OldAge:
			return p.Old
		default:
			return p.Alive
		}
	}
	if c.Age < 0 && len(p.Afterglow) > 0 {
		return p.Afterglow[(-c.Age)%len(p.Afterglow)]
	}
	return p.Dead
}

// ScoreColor picks the readout color for a score rate, brighter for faster
// scoring.
func (p Palette) ScoreColor(rate float64) color.RGBA {
	switch {
	case rate <= 0:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case rate < 1500:
		return p.SuperOld
	case rate < 3000:
		return p.VeryOld
	case rate < 6000:
		return p.Old
	default:
		return p.Alive
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

func scaleRGBA(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R)*f + 0.5),
		G: uint8(float64(c.G)*f + 0.5),
		B: uint8(float64(c.B)*f + 0.5),
		A: c.A,
	}
}
