//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"life-canvas/internal/core"
	"life-canvas/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Overlay draws a minimap of the whole torus in the canvas corner with the
// visible window outlined.
type Overlay struct {
	src      render.Source
	palettes render.Palettes
	size     int
	show     bool

	mapImg      *ebiten.Image
	mapBuf      []byte
	cols        int
	lastVersion uint64
	lastState   core.RunState
	drawn       bool
}

// NewOverlay constructs a minimap of the given side length in pixels.
func NewOverlay(src render.Source, palettes render.Palettes, size int) *Overlay {
	if size <= 0 {
		size = 128
	}
	return &Overlay{src: src, palettes: palettes, size: size}
}

// Visible reports whether the minimap is shown.
func (o *Overlay) Visible() bool { return o.show }

// Update toggles the minimap with the 1 key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw renders the minimap onto screen in the bottom-left corner of a canvas
// of canvasH pixels. l is the layout of the main view.
func (o *Overlay) Draw(screen *ebiten.Image, canvasH int, l render.Layout) {
	if !o.show {
		return
	}
	o.src.View(func(f render.Frame) {
		if f.Cols <= 0 || len(f.Cells) != f.Cols*f.Cols {
			return
		}
		if o.mapImg == nil || o.cols != f.Cols {
			o.mapImg = ebiten.NewImage(f.Cols, f.Cols)
			o.mapBuf = make([]byte, 4*f.Cols*f.Cols)
			o.cols = f.Cols
			o.drawn = false
		}
		if o.drawn && f.Version == o.lastVersion && f.State == o.lastState {
			return
		}
		render.FillRGBA(o.mapBuf, f, o.palettes.For(f.State))
		o.mapImg.ReplacePixels(o.mapBuf)
		o.lastVersion = f.Version
		o.lastState = f.State
		o.drawn = true
	})
	if o.mapImg == nil || o.cols <= 0 {
		return
	}

	const margin = 8
	k := float64(o.size) / float64(o.cols)
	left := float64(margin)
	top := float64(canvasH - margin - o.size)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(left, top)
	screen.DrawImage(o.mapImg, op)
	vector.StrokeRect(screen, float32(left), float32(top), float32(o.size), float32(o.size), 1, color.RGBA{R: 99, G: 137, B: 167, A: 255}, false)

	if !(l.Cell > 0) || l.Cols != o.cols {
		return
	}
	o.drawWindow(screen, l, left, top, k)
}

// drawWindow outlines the part of the torus visible in l. The window may
// straddle the grid edge, so it is drawn at every wrapped offset and clipped
// to the minimap.
func (o *Overlay) drawWindow(screen *ebiten.Image, l render.Layout, left, top, k float64) {
	cols := float64(o.cols)
	u0 := -l.X / l.Cell
	v0 := -l.Y / l.Cell
	w := math.Min(l.Width/l.Cell, cols)
	h := math.Min(l.Height/l.Cell, cols)
	u0 = math.Mod(math.Mod(u0, cols)+cols, cols)
	v0 = math.Mod(math.Mod(v0, cols)+cols, cols)

	sub := screen.SubImage(rectOf(left, top, float64(o.size))).(*ebiten.Image)
	edge := color.RGBA{R: 255, G: 255, B: 255, A: 200}
	for _, du := range []float64{0, -cols} {
		for _, dv := range []float64{0, -cols} {
			x := left + (u0+du)*k
			y := top + (v0+dv)*k
			vector.StrokeRect(sub, float32(x), float32(y), float32(w*k), float32(h*k), 1, edge, false)
		}
	}
}

func rectOf(x, y, side float64) image.Rectangle {
	return image.Rect(int(x), int(y), int(math.Ceil(x+side)), int(math.Ceil(y+side)))
}
