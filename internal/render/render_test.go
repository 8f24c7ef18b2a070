package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"life-canvas/internal/core"
	"life-canvas/internal/life"
)

type rect struct {
	x, y, w, h float64
	c          color.RGBA
}

type fakeSurface struct {
	w, h    int
	fills   int
	rects   []rect
	strokes int
}

func (s *fakeSurface) Size() (int, int)  { return s.w, s.h }
func (s *fakeSurface) Fill(c color.RGBA) { s.fills++; s.rects = s.rects[:0] }
func (s *fakeSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	s.rects = append(s.rects, rect{x, y, w, h, c})
}
func (s *fakeSurface) StrokeRect(x, y, w, h, width float64, c color.RGBA) { s.strokes++ }

type fakeSource struct{ f Frame }

func (s *fakeSource) View(fn func(Frame)) { fn(s.f) }

func newFrame(cols int) Frame {
	g := life.NewGrid(cols)
	return Frame{Cols: cols, Cells: g.Snapshot(), Mode: core.ModeClassic, State: core.Running, Rules: life.DefaultRules(), Version: 1}
}

func TestLayoutWindow(t *testing.T) {
	l, ok := NewLayout(10, Viewport{Scale: 2, X: -35, Y: 15}, 200, 100)
	if !ok {
		t.Fatal("expected valid layout")
	}
	if l.Cell != 20 {
		t.Fatalf("cell size %v, expected 20", l.Cell)
	}
	if l.VisibleCols != 11 || l.VisibleRows != 6 {
		t.Fatalf("visible %dx%d, expected 11x6", l.VisibleCols, l.VisibleRows)
	}
	if l.OffsetCols != 1 || l.OffsetRows != -1 {
		t.Fatalf("offset (%d,%d), expected (1,-1)", l.OffsetCols, l.OffsetRows)
	}
	if _, ok := NewLayout(10, Viewport{Scale: 0}, 200, 100); ok {
		t.Fatal("zero scale must be rejected")
	}
	if _, ok := NewLayout(10, DefaultViewport(), 0, 100); ok {
		t.Fatal("empty surface must be rejected")
	}
}

func TestVisitCoversSurfaceWithTiles(t *testing.T) {
	const cols = 3
	l, _ := NewLayout(cols, Viewport{Scale: 0.5, X: -7, Y: 11}, 90, 90)
	counts := map[int]int{}
	covered := func(px, py float64) bool {
		found := false
		l.Visit(func(_ int, x, y float64) {
			if px >= x && px < x+l.Cell && py >= y && py < y+l.Cell {
				found = true
			}
		})
		return found
	}
	l.Visit(func(index int, x, y float64) {
		counts[index]++
		if x <= -l.Cell || y <= -l.Cell || x >= 90 || y >= 90 {
			t.Fatalf("off-screen placement at (%v,%v)", x, y)
		}
	})
	if len(counts) != cols*cols {
		t.Fatalf("expected every cell to be visible, got %d", len(counts))
	}
	for i, n := range counts {
		if n < 2 {
			t.Fatalf("cell %d drawn %d times, expected toroidal repetitions", i, n)
		}
	}
	for _, p := range [][2]float64{{0, 0}, {89, 89}, {45, 0.5}, {0.2, 60}} {
		if !covered(p[0], p[1]) {
			t.Fatalf("screen point %v not covered", p)
		}
	}
}

func TestCellAtMatchesVisit(t *testing.T) {
	const cols = 5
	vps := []Viewport{
		{Scale: 1},
		{Scale: 2.5, X: -123.4, Y: 77.7},
		{Scale: 0.3, X: 999, Y: -1234},
	}
	for _, vp := range vps {
		l, _ := NewLayout(cols, vp, 120, 80)
		l.Visit(func(index int, x, y float64) {
			px, py := x+l.Cell/2, y+l.Cell/2
			if px < 0 || py < 0 || px >= 120 || py >= 80 {
				return
			}
			got, ok := l.CellAt(px, py)
			if !ok || got != index {
				t.Fatalf("viewport %+v: CellAt(%v,%v)=%d, expected %d", vp, px, py, got, index)
			}
		})
	}
}

func TestZoomKeepsPointFixed(t *testing.T) {
	vp := Viewport{Scale: 1, X: 10, Y: -20}
	min, max := ScaleBounds(10)
	if math.Abs(min-0.132) > 1e-9 || max != 6 {
		t.Fatalf("bounds (%v,%v)", min, max)
	}
	z := vp.ZoomAt(2, 50, 50, min, max)
	if z.Scale != 2 {
		t.Fatalf("scale %v, expected 2", z.Scale)
	}
	before := (50 - vp.X) / vp.Scale
	after := (50 - z.X) / z.Scale
	if math.Abs(before-after) > 1e-9 {
		t.Fatalf("content under cursor moved from %v to %v", before, after)
	}
	if z = z.ZoomAt(100, 0, 0, min, max); z.Scale != max {
		t.Fatalf("zoom should clamp to %v, got %v", max, z.Scale)
	}
	if p := vp.Pan(5, -5); p.X != 15 || p.Y != -25 {
		t.Fatalf("pan produced %+v", p)
	}
}

func TestPaletteColorPriority(t *testing.T) {
	p := DefaultPalettes().Running
	cases := []struct {
		cell life.Cell
		wall bool
		want color.RGBA
	}{
		{life.Cell{Alive: true, Age: 50}, true, p.Wall},
		{life.Cell{Alive: true, Age: 17}, false, p.SuperOld},
		{life.Cell{Alive: true, Age: 9}, false, p.VeryOld},
		{life.Cell{Alive: true, Age: 3}, false, p.Old},
		{life.Cell{Alive: true, Age: 1}, false, p.Alive},
		{life.Cell{Age: 0}, false, p.Dead},
		{life.Cell{Age: -3}, false, p.Afterglow[3]},
		{life.Cell{Age: -12}, false, p.Afterglow[0]},
	}
	for _, c := range cases {
		if got := p.Color(c.cell, c.wall); got != c.want {
			t.Fatalf("cell %+v wall=%v colored %v, expected %v", c.cell, c.wall, got, c.want)
		}
	}
	if p.Afterglow[0] != p.Dead {
		t.Fatal("fully faded afterglow should match the dead color")
	}
	stopped := DefaultPalettes().For(core.Stopped)
	if stopped.Alive == p.Alive {
		t.Fatal("stopped palette should mute living cells")
	}
}

func TestRendererSkipsCleanFrames(t *testing.T) {
	r := NewRenderer(DefaultPalettes(), 0)
	s := &fakeSurface{w: 40, h: 40}
	src := &fakeSource{f: newFrame(4)}

	if !r.Draw(s, src) {
		t.Fatal("first draw must paint")
	}
	if r.Draw(s, src) {
		t.Fatal("unchanged frame should be skipped")
	}

	src.f.Version++
	if !r.Draw(s, src) {
		t.Fatal("new generation must repaint")
	}
	r.SetViewport(Viewport{Scale: 2})
	if !r.Draw(s, src) {
		t.Fatal("viewport change must repaint")
	}
	s.w = 60
	if !r.Draw(s, src) {
		t.Fatal("resize must repaint")
	}
	src.f.State = core.Paused
	if !r.Draw(s, src) {
		t.Fatal("run state change must repaint with the new palette")
	}
	if r.Draw(s, src) || !r.Clean() {
		t.Fatal("canvas should be clean after a completed draw")
	}
	if s.fills != 5 {
		t.Fatalf("expected 5 paints, got %d", s.fills)
	}
}

func TestRendererDrawsEveryVisibleCell(t *testing.T) {
	r := NewRenderer(DefaultPalettes(), 0)
	s := &fakeSurface{w: 40, h: 40}
	f := newFrame(4)
	f.Cells[5].Alive = true
	f.Cells[5].Age = 1
	r.Draw(s, &fakeSource{f: f})

	if len(s.rects) != 16 {
		t.Fatalf("expected 16 cells at scale 1, got %d", len(s.rects))
	}
	alive := 0
	for _, rc := range s.rects {
		if rc.c == DefaultPalettes().Running.Alive {
			alive++
			if rc.x != 10 || rc.y != 10 {
				t.Fatalf("alive cell drawn at (%v,%v)", rc.x, rc.y)
			}
		}
	}
	if alive != 1 {
		t.Fatalf("expected one alive cell, got %d", alive)
	}
}

func TestRendererOutlinesWalls(t *testing.T) {
	r := NewRenderer(DefaultPalettes(), 0)
	s := &fakeSurface{w: 80, h: 80}
	f := newFrame(4)
	f.Mode = core.ModeMadness
	f.Cells[0].Alive = true
	f.Cells[0].Age = 30
	r.Draw(s, &fakeSource{f: f})
	if s.strokes != 1 {
		t.Fatalf("expected one wall outline, got %d", s.strokes)
	}
}

func TestWritePNG(t *testing.T) {
	f := newFrame(6)
	f.Cells[7].Alive = true
	f.Cells[7].Age = 1
	var buf bytes.Buffer
	if err := WritePNG(&buf, &fakeSource{f: f}, DefaultPalettes()); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("unexpected bounds %v", b)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	want := DefaultPalettes().Running.Alive
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatal("alive cell pixel has the wrong color")
	}
}
