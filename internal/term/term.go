package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"life-canvas/internal/core"
	"life-canvas/internal/engine"
	"life-canvas/internal/ledger"
	"life-canvas/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Options controls a terminal session.
type Options struct {
	FPS     int
	Seed    int64
	Density float64
	Logger  *log.Logger
}

// Host drives one engine on one tcell screen.
type Host struct {
	screen   tcell.Screen
	engine   *engine.Engine
	surface  *Surface
	renderer *render.Renderer
	palettes render.Palettes
	opts     Options

	lastStatus engine.Status
	shown      bool
	buttons    tcell.ButtonMask
}

// NewHost prepares a host. The screen must already be initialised.
func NewHost(screen tcell.Screen, e *engine.Engine, opts Options) *Host {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Density <= 0 {
		opts.Density = 0.25
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	palettes := render.DefaultPalettes()
	h := &Host{
		screen:   screen,
		engine:   e,
		surface:  NewSurface(screen, 1),
		renderer: render.NewRenderer(palettes, 0),
		palettes: palettes,
		opts:     opts,
	}
	h.fitViewport()
	return h
}

// fitViewport zooms so one cell covers one pixel.
func (h *Host) fitViewport() {
	w, hh := h.surface.Size()
	cell := render.CellSize(w, hh, h.engine.Cols())
	vp := render.DefaultViewport()
	if cell > 0 && cell < 1 {
		vp.Scale = 1 / cell
	}
	h.renderer.SetViewport(vp)
}

// Run processes input and redraws until ctx is done or the user quits.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	defer h.screen.DisableMouse()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	ticker := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer ticker.Stop()

	h.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.Handle(ev) {
				return nil
			}
		case <-ticker.C:
			h.Frame()
		}
	}
}

// Frame redraws the grid and the status line if either changed.
func (h *Host) Frame() {
	drew := h.renderer.Draw(h.surface, h.engine)
	st := h.engine.Status()
	if drew || !h.shown || st != h.lastStatus {
		h.drawStatus(st)
		h.lastStatus = st
		h.shown = true
		h.screen.Show()
	}
}

func (h *Host) drawStatus(st engine.Status) {
	w, rows := h.screen.Size()
	if rows <= 0 {
		return
	}
	y := rows - 1
	base := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	for x := 0; x < w; x++ {
		h.screen.SetContent(x, y, ' ', nil, base)
	}
	steps := fmt.Sprint(st.Steps)
	if st.Steps == ledger.Unlimited {
		steps = "inf"
	}
	x := put(h.screen, 0, y, fmt.Sprintf(" %-7s ", st.State), base)
	score := h.palettes.Running.ScoreColor(st.Rate)
	x = put(h.screen, x, y, fmt.Sprintf("score %d", st.Score), base.Foreground(rgb(score)))
	put(h.screen, x, y, fmt.Sprintf("  steps %s  gen %d  %s  %gx  %dx%d", steps, st.Generation, st.Mode, st.Speed, st.Cols, st.Cols), base)
}

func put(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// Handle applies one event. It returns false when the user asked to quit.
func (h *Host) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.renderer.Invalidate()
		h.shown = false
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventKey:
		return h.handleKey(ev)
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0
	h.buttons = buttons

	x, y := ev.Position()
	switch {
	case buttons&tcell.WheelUp != 0:
		h.zoom(1.25, float64(x/2), float64(y))
	case buttons&tcell.WheelDown != 0:
		h.zoom(0.8, float64(x/2), float64(y))
	case pressed:
		h.toggleAt(x, y)
	}
}

func (h *Host) toggleAt(x, y int) {
	w, hh := h.surface.Size()
	px := x / 2
	if px >= w || y >= hh {
		return
	}
	l, ok := h.renderer.LayoutFor(h.engine.Cols(), w, hh)
	if !ok {
		return
	}
	if idx, ok := l.CellAt(float64(px)+0.5, float64(y)+0.5); ok {
		h.engine.Toggle(idx)
	}
}

func (h *Host) zoom(factor, px, py float64) {
	w, hh := h.surface.Size()
	lo, hi := render.ScaleBounds(render.CellSize(w, hh, h.engine.Cols()))
	// A terminal pixel is already coarse, so allow zooming out to one cell
	// per pixel even when that is below the on-screen minimum.
	if cell := render.CellSize(w, hh, h.engine.Cols()); cell > 0 && 1/cell < lo {
		lo = 1 / cell
	}
	h.renderer.SetViewport(h.renderer.Viewport().ZoomAt(factor, px, py, lo, hi))
}

func (h *Host) pan(dx, dy float64) {
	h.renderer.SetViewport(h.renderer.Viewport().Pan(dx, dy))
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	e := h.engine
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		h.pan(2, 0)
	case tcell.KeyRight:
		h.pan(-2, 0)
	case tcell.KeyUp:
		h.pan(0, 2)
	case tcell.KeyDown:
		h.pan(0, -2)
	case tcell.KeyRune:
		w, hh := h.surface.Size()
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if e.State() == core.Running {
				e.Stop()
			} else {
				e.Start()
			}
		case 'n':
			e.StepOnce()
		case 'c':
			e.Reset()
		case 'r':
			h.opts.Seed++
			e.Seed(h.opts.Seed, h.opts.Density)
		case 'm':
			if err := e.SetMode(e.Mode().Next()); err != nil {
				h.opts.Logger.Printf("mode: %v", err)
			}
		case '+', '=':
			h.stepSpeed(1)
		case '-':
			h.stepSpeed(-1)
		case ']':
			h.stepCols(1)
		case '[':
			h.stepCols(-1)
		case 'z':
			h.zoom(1.25, float64(w)/2, float64(hh)/2)
		case 'x':
			h.zoom(0.8, float64(w)/2, float64(hh)/2)
		case '0':
			h.fitViewport()
		}
	}
	return true
}

func (h *Host) stepSpeed(direction int) {
	next, ok := core.NextPreset(engine.SpeedPresets, h.engine.Status().Speed, direction)
	if !ok {
		return
	}
	if err := h.engine.SetSpeed(next); err != nil {
		h.opts.Logger.Printf("speed: %v", err)
	}
}

func (h *Host) stepCols(direction int) {
	presets := make([]float64, len(engine.ColsPresets))
	for i, c := range engine.ColsPresets {
		presets[i] = float64(c)
	}
	next, ok := core.NextPreset(presets, float64(h.engine.Cols()), direction)
	if !ok {
		return
	}
	h.engine.SetCols(int(next))
	h.fitViewport()
}
