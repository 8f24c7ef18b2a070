//go:build ebiten

package app

import (
	"log"
	"os"

	"life-canvas/internal/core"
	"life-canvas/internal/engine"
	"life-canvas/internal/render"
	"life-canvas/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth    = 220
	minimapSize = 128
	dragSlop    = 4
	zoomStep    = 1.1
)

// Game adapts the engine to the ebiten.Game interface. The grid is painted
// into an offscreen canvas that is only repainted when the engine or the
// viewport changed.
type Game struct {
	engine   *engine.Engine
	palettes render.Palettes
	renderer *render.Renderer
	canvas   *ebiten.Image
	hud      *ui.HUD
	overlay  *ui.Overlay
	logger   *log.Logger

	seed    int64
	density float64
	capture string

	width, height int

	pressed  bool
	dragging bool
	pressX   int
	pressY   int
	lastX    int
	lastY    int
}

// New constructs a Game for the provided engine.
func New(e *engine.Engine, cfg *Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	palettes := render.DefaultPalettes()
	return &Game{
		engine:   e,
		palettes: palettes,
		renderer: render.NewRenderer(palettes, cfg.FPS),
		hud:      ui.NewHUD(e, palettes.Running, hudWidth),
		overlay:  ui.NewOverlay(e, palettes, minimapSize),
		logger:   logger,
		seed:     cfg.Seed,
		density:  0.25,
		capture:  cfg.Capture,
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Update handles per-frame input. The simulation advances on the engine's
// own clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.overlay.Update()

	if g.hud.Update(g.width) {
		return nil
	}
	g.handleMouse()
	return nil
}

func (g *Game) handleKeys() {
	e := g.engine
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if e.State() == core.Running {
			e.Stop()
		} else {
			e.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		e.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		e.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.seed++
		e.Seed(g.seed, g.density)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if err := e.SetMode(e.Mode().Next()); err != nil {
			g.logger.Printf("mode: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.stepSpeed(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.stepSpeed(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.stepCols(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.stepCols(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) {
		g.renderer.SetViewport(render.DefaultViewport())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.writeCapture()
	}
}

func (g *Game) stepSpeed(direction int) {
	next, ok := core.NextPreset(engine.SpeedPresets, g.engine.Status().Speed, direction)
	if !ok {
		return
	}
	if err := g.engine.SetSpeed(next); err != nil {
		g.logger.Printf("speed: %v", err)
	}
}

func (g *Game) stepCols(direction int) {
	presets := make([]float64, len(engine.ColsPresets))
	for i, c := range engine.ColsPresets {
		presets[i] = float64(c)
	}
	next, ok := core.NextPreset(presets, float64(g.engine.Cols()), direction)
	if !ok {
		return
	}
	g.engine.SetCols(int(next))
	g.renderer.SetViewport(render.DefaultViewport())
}

func (g *Game) writeCapture() {
	f, err := os.Create(g.capture)
	if err != nil {
		g.logger.Printf("capture: %v", err)
		return
	}
	defer f.Close()
	if err := render.WritePNG(f, g.engine, g.palettes); err != nil {
		g.logger.Printf("capture: %v", err)
		return
	}
	g.logger.Printf("wrote %s", g.capture)
}

// handleMouse distinguishes clicks from drags: a press that moves less than
// dragSlop pixels before release toggles the cell under it, anything else
// pans the view.
func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	inCanvas := mx >= 0 && mx < g.width && my >= 0 && my < g.height

	if _, wy := ebiten.Wheel(); wy != 0 && inCanvas {
		factor := zoomStep
		if wy < 0 {
			factor = 1 / zoomStep
		}
		lo, hi := render.ScaleBounds(render.CellSize(g.width, g.height, g.engine.Cols()))
		vp := g.renderer.Viewport().ZoomAt(factor, float64(mx), float64(my), lo, hi)
		g.renderer.SetViewport(vp)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inCanvas {
		g.pressed = true
		g.dragging = false
		g.pressX, g.pressY = mx, my
		g.lastX, g.lastY = mx, my
	}
	if !g.pressed {
		return
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !g.dragging && (abs(mx-g.pressX) > dragSlop || abs(my-g.pressY) > dragSlop) {
			g.dragging = true
		}
		if g.dragging && (mx != g.lastX || my != g.lastY) {
			vp := g.renderer.Viewport().Pan(float64(mx-g.lastX), float64(my-g.lastY))
			g.renderer.SetViewport(vp)
		}
		g.lastX, g.lastY = mx, my
		return
	}

	g.pressed = false
	if g.dragging {
		return
	}
	l, ok := g.renderer.LayoutFor(g.engine.Cols(), g.width, g.height)
	if !ok {
		return
	}
	if idx, ok := l.CellAt(float64(g.pressX), float64(g.pressY)); ok {
		g.engine.Toggle(idx)
	}
}

// Draw renders the canvas, the minimap and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.width <= 0 || g.height <= 0 {
		return
	}
	if g.canvas == nil || g.canvas.Bounds().Dx() != g.width || g.canvas.Bounds().Dy() != g.height {
		g.canvas = ebiten.NewImage(g.width, g.height)
		g.renderer.Invalidate()
	}
	g.renderer.Draw(imageSurface{img: g.canvas}, g.engine)
	screen.DrawImage(g.canvas, nil)

	if g.overlay.Visible() {
		l, _ := g.renderer.LayoutFor(g.engine.Cols(), g.width, g.height)
		g.overlay.Draw(screen, g.height, l)
	}
	g.hud.Draw(screen, g.width, g.height)
}

// Layout gives the canvas whatever the window has left after the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width = outsideWidth - g.hud.Width()
	if g.width < 1 {
		g.width = 1
	}
	g.height = outsideHeight
	return outsideWidth, outsideHeight
}

// WindowSize returns the initial window size including the HUD.
func (g *Game) WindowSize() (int, int) {
	return g.width + g.hud.Width(), g.height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
