package engine

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"seehuhn.de/go/geom/vec"

	"cellgrid/internal/core"
	"cellgrid/internal/tile"
	"cellgrid/internal/viewport"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func squareConfig(size, cols, rows int) Config {
	cfg := DefaultConfig()
	cfg.ViewportWidth = size * cols
	cfg.ViewportHeight = size * rows
	cfg.CellSize = size
	cfg.Columns = cols
	cfg.Rows = rows
	cfg.Shape = tile.ShapeSquare
	cfg.Padding = 0
	cfg.Background = black
	cfg.Foreground = white
	return cfg
}

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func pixel(e *Engine, x, y int) color.RGBA {
	w, _ := e.Size()
	off := (y*w + x) * 4
	p := e.Pix()
	return color.RGBA{R: p[off], G: p[off+1], B: p[off+2], A: p[off+3]}
}

func TestWriteCellChangesOneTile(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	before := append([]byte(nil), e.Pix()...)
	if !e.WriteCell(1, 1, red, blue, false) {
		t.Fatalf("expected write inside the grid to succeed")
	}
	w, h := e.Size()
	changed := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 4
			if bytes.Equal(before[off:off+4], e.Pix()[off:off+4]) {
				continue
			}
			changed++
			if x < 10 || x >= 20 || y < 10 || y >= 20 {
				t.Fatalf("pixel (%d,%d) outside cell (1,1) changed", x, y)
			}
			if got := pixel(e, x, y); got != red {
				t.Fatalf("pixel (%d,%d) = %v, want red", x, y, got)
			}
		}
	}
	if changed != 100 {
		t.Fatalf("expected 100 changed pixels, got %d", changed)
	}
	cell, _ := e.CellAt(1, 1)
	if cell.Foreground != red || !cell.HasBackground || cell.Background != blue {
		t.Fatalf("unexpected stored cell %+v", cell)
	}
}

func TestWriteCellOutsideGrid(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	if e.WriteCell(3, 0, red, blue, false) || e.WriteCell(-1, 0, red, blue, false) {
		t.Fatalf("expected writes outside the grid to be rejected")
	}
}

func TestWriteCellForegroundOnlyKeepsBackground(t *testing.T) {
	cfg := squareConfig(10, 3, 3)
	cfg.Shape = tile.ShapeInset
	cfg.Padding = 2
	e := newEngine(t, cfg)
	e.WriteCell(0, 0, red, blue, false)
	e.WriteCell(0, 0, white, black, true)
	if got := pixel(e, 0, 0); got != blue {
		t.Fatalf("padding pixel = %v, want stored blue background", got)
	}
	if got := pixel(e, 5, 5); got != white {
		t.Fatalf("center pixel = %v, want white", got)
	}
	cell, _ := e.CellAt(0, 0)
	if !cell.HasBackground || cell.Background != blue {
		t.Fatalf("foreground-only write dropped the background override: %+v", cell)
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	e.WriteCell(0, 0, red, blue, false)
	cases := map[string]func(*Config){
		"zero viewport":    func(c *Config) { c.ViewportWidth = 0 },
		"zero cell":        func(c *Config) { c.CellSize = 0 },
		"oversized cell":   func(c *Config) { c.CellSize = 31 },
		"empty grid":       func(c *Config) { c.Rows = 0 },
		"zero scale":       func(c *Config) { c.Scale = 0 },
		"transparency > 1": func(c *Config) { c.Transparency = 1.5 },
		"zero fade":        func(c *Config) { c.Fade = 0 },
	}
	for name, mutate := range cases {
		cfg := squareConfig(10, 3, 3)
		mutate(&cfg)
		err := e.Configure(cfg)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
	if cell, _ := e.CellAt(0, 0); cell.Foreground != red {
		t.Fatalf("invalid configure modified the grid")
	}
}

func TestZoomRecenterReference(t *testing.T) {
	cfg := squareConfig(129, 9, 9)
	cfg.ViewportWidth, cfg.ViewportHeight = 1161, 1161
	cfg.Columns, cfg.Rows = 100, 100
	e := newEngine(t, cfg)

	steps := []struct{ from, to, total int }{
		{129, 130, -4},
		{130, 131, -9},
		{131, 132, -13},
	}
	for _, s := range steps {
		e.ZoomEnd(float64(s.to) / float64(s.from))
		v := e.View()
		if v.CellSize != s.to {
			t.Fatalf("zoom %d→%d: cell size %d", s.from, s.to, v.CellSize)
		}
		tx, ty := v.State.Total(v.CellSize)
		if tx != s.total || ty != s.total {
			t.Fatalf("zoom %d→%d: total (%d,%d), want %d", s.from, s.to, tx, ty, s.total)
		}
	}
}

func TestZoomIsRelativeToGestureStart(t *testing.T) {
	cfg := squareConfig(10, 20, 20)
	cfg.ViewportWidth, cfg.ViewportHeight = 200, 200
	e := newEngine(t, cfg)
	e.ZoomChanged(1.5)
	e.ZoomChanged(2)
	if got := e.View().CellSize; got != 20 {
		t.Fatalf("expected cell size 20 from gesture start, got %d", got)
	}
	e.ZoomEnded(1)
	if got := e.View().CellSize; got != 10 {
		t.Fatalf("expected gesture to end at the start size, got %d", got)
	}
	tx, ty := e.View().State.Total(10)
	if tx != 0 || ty != 0 {
		t.Fatalf("zooming back should restore the pan offset, got (%d,%d)", tx, ty)
	}
	e.ZoomEnd(100)
	if got := e.View().CellSize; got != 200 {
		t.Fatalf("expected cell size clamped to viewport, got %d", got)
	}
}

func TestLocateFollowsShift(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	gc, ok := e.Locate(vec.Vec2{X: 15, Y: 25})
	if !ok || gc.X != 1 || gc.Y != 2 {
		t.Fatalf("unexpected cell %v (ok=%v)", gc, ok)
	}
	e.Shift(5, 0)
	gc, ok = e.Locate(vec.Vec2{X: 15, Y: 25})
	if !ok || gc.X != 1 || gc.Y != 2 {
		t.Fatalf("after shift 5: unexpected cell %v (ok=%v)", gc, ok)
	}
	gc, ok = e.Locate(vec.Vec2{X: 14, Y: 25})
	if !ok || gc.X != 0 {
		t.Fatalf("after shift 5: expected column 0 at x=14, got %v (ok=%v)", gc, ok)
	}
	if _, ok := e.Locate(vec.Vec2{X: 2, Y: 2}); ok {
		t.Fatalf("expected the exposed strip to have no cell")
	}
	if _, ok := e.Locate(vec.Vec2{X: -1, Y: 2}); ok {
		t.Fatalf("expected points outside the viewport to have no cell")
	}
}

func TestShiftClampsToGrid(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	e.Shift(1000, -1000)
	st := e.View().State
	if st.CellX != 2 || st.PixelX != 0 || st.CellY != -2 || st.PixelY != 0 {
		t.Fatalf("unexpected clamped state %+v", st)
	}
}

func TestDragCarriesFractions(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	e.DragStart(vec.Vec2{})
	e.Drag(vec.Vec2{X: 2.5})
	if got := e.View().State.PixelX; got != 2 {
		t.Fatalf("expected 2px shift, got %d", got)
	}
	e.DragEnd(vec.Vec2{X: 3})
	if got := e.View().State.PixelX; got != 3 {
		t.Fatalf("expected carried fraction to complete a pixel, got %d", got)
	}
	if e.Dragging() {
		t.Fatalf("expected drag to end")
	}
}

func TestDoubleTapResetsView(t *testing.T) {
	cfg := squareConfig(10, 20, 20)
	cfg.ViewportWidth, cfg.ViewportHeight = 100, 100
	e := newEngine(t, cfg)
	e.Shift(-37, 12)
	e.ZoomEnd(2)
	e.DoubleTap()
	v := e.View()
	if v.CellSize != 10 || v.State != (viewport.ShiftState{}) {
		t.Fatalf("expected reset view, got size %d state %+v", v.CellSize, v.State)
	}
}

func TestTapPaintsCell(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	if !e.Tap(vec.Vec2{X: 25, Y: 5}) {
		t.Fatalf("expected tap inside the grid to paint")
	}
	cell, _ := e.CellAt(2, 0)
	if got := pixel(e, 25, 5); got != cell.Foreground {
		t.Fatalf("pixel %v does not match painted color %v", got, cell.Foreground)
	}
	if cell.HasBackground {
		t.Fatalf("tap should not add a background override")
	}
}

func TestShuffleMatchesRedraw(t *testing.T) {
	for _, prerender := range []int{0, 2} {
		cfg := squareConfig(9, 5, 4)
		cfg.Shape = tile.ShapeCircle
		cfg.Padding = 1
		cfg.Prerender = prerender
		e := newEngine(t, cfg)
		e.Shift(4, -3)
		e.frames.Replenish()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := e.frames.Wait(ctx); err != nil {
			cancel()
			t.Fatalf("wait for prerender: %v", err)
		}
		cancel()

		e.Shuffle()
		got := append([]byte(nil), e.Pix()...)
		e.redraw()
		if !bytes.Equal(got, e.Pix()) {
			t.Fatalf("prerender=%d: shuffled pixels differ from a redraw of the shuffled grid", prerender)
		}
	}
}

type stepOne struct{ color color.RGBA }

func (stepOne) Name() string { return "one" }

func (stepOne) Reset(g *core.Grid, _ *core.RNG, _ core.ColorMode) { g.Fill(black) }

func (s stepOne) Step(g *core.Grid) []int {
	g.Cells()[4].Foreground = s.color
	return []int{4}
}

func TestStepPatternRedrawsChangedCells(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	p := stepOne{color: red}
	e.ResetPattern(p)
	if got := pixel(e, 15, 15); got != black {
		t.Fatalf("expected reset to paint black, got %v", got)
	}
	if n := e.StepPattern(p); n != 1 {
		t.Fatalf("expected one changed cell, got %d", n)
	}
	if got := pixel(e, 15, 15); got != red {
		t.Fatalf("expected stepped cell to be red, got %v", got)
	}
	if got := pixel(e, 5, 5); got != black {
		t.Fatalf("expected untouched cell to stay black, got %v", got)
	}
}

func TestTransparencyScalesBackground(t *testing.T) {
	cfg := squareConfig(10, 3, 3)
	cfg.Shape = tile.ShapeInset
	cfg.Padding = 2
	cfg.Background = white
	e := newEngine(t, cfg)
	if !e.SetFloatParameter("transparency", 1) {
		t.Fatalf("expected transparency to be accepted")
	}
	if got := pixel(e, 0, 0); got != (color.RGBA{}) {
		t.Fatalf("expected fully transparent background, got %v", got)
	}
	if e.SetFloatParameter("transparency", 2) {
		t.Fatalf("expected out of range transparency to be rejected")
	}
}

func TestSetIntParameter(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	if !e.SetIntParameter("shape", 1) || e.Config().Shape != tile.ShapeInset {
		t.Fatalf("expected shape index 1 to select inset")
	}
	if !e.SetIntParameter("padding", 3) {
		t.Fatalf("expected padding to be accepted")
	}
	if got := pixel(e, 1, 1); got != black {
		t.Fatalf("expected padding pixel to show background, got %v", got)
	}
	if e.SetIntParameter("cell", 31) {
		t.Fatalf("expected oversized cell to be rejected")
	}
	if !e.SetIntParameter("cell", 15) || e.View().CellSize != 15 {
		t.Fatalf("expected cell size 15")
	}
	if p, ok := e.Parameters().Lookup("cell"); !ok || p.Value != "15" {
		t.Fatalf("expected snapshot to report cell size 15, got %+v", p)
	}
	if e.SetIntParameter("unknown", 1) {
		t.Fatalf("expected unknown key to be rejected")
	}
}

type recordSink struct {
	w, h int
	pix  []byte
	err  error
}

func (s *recordSink) Present(pix []byte, w, h int) error {
	s.w, s.h = w, h
	s.pix = append(s.pix[:0], pix...)
	return s.err
}

func TestPresent(t *testing.T) {
	e := newEngine(t, squareConfig(10, 3, 3))
	s := &recordSink{}
	if err := e.Present(s); err != nil {
		t.Fatalf("present: %v", err)
	}
	if s.w != 30 || s.h != 30 || !bytes.Equal(s.pix, e.Pix()) {
		t.Fatalf("sink received %dx%d frame with %d bytes", s.w, s.h, len(s.pix))
	}
	boom := errors.New("boom")
	s.err = boom
	if err := e.Present(s); !errors.Is(err, boom) {
		t.Fatalf("expected sink error to be wrapped, got %v", err)
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w": "320", "h": "200", "cell": "12", "shape": "rounded", "padding": "2",
		"bg": "#102030", "mode": "grayscale", "transparency": "0.25", "cols": "bogus",
	})
	if cfg.ViewportWidth != 320 || cfg.ViewportHeight != 200 || cfg.CellSize != 12 || cfg.Padding != 2 {
		t.Fatalf("unexpected sizes %+v", cfg)
	}
	if cfg.Shape != tile.ShapeRounded || cfg.ColorMode != core.ColorModeGrayscale {
		t.Fatalf("unexpected shape %v or mode %v", cfg.Shape, cfg.ColorMode)
	}
	if cfg.Background != (color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}) || cfg.Transparency != 0.25 {
		t.Fatalf("unexpected background %v transparency %v", cfg.Background, cfg.Transparency)
	}
	if cfg.Columns != DefaultConfig().Columns {
		t.Fatalf("unparseable value should keep the default, got %d", cfg.Columns)
	}
}

func TestZoomRoundTripReusesTile(t *testing.T) {
	cfg := squareConfig(10, 8, 8)
	cfg.Prerender = 0
	e := newEngine(t, cfg)
	if hits, misses := e.TileStats(); hits != 0 || misses != 1 {
		t.Fatalf("after New: hits=%d misses=%d", hits, misses)
	}
	e.ZoomStep(1)
	e.ZoomStep(-1)
	e.Shift(-3, 0)
	if hits, misses := e.TileStats(); hits != 1 || misses != 2 {
		t.Fatalf("after zoom round trip: hits=%d misses=%d", hits, misses)
	}
}

func TestZoomSweepKeepsTileCacheBounded(t *testing.T) {
	cfg := squareConfig(4, 40, 40)
	cfg.Shape = tile.ShapeRounded
	cfg.Padding = 1
	e := newEngine(t, cfg)
	for e.View().CellSize < cfg.MaxCellSize() {
		e.ZoomStep(1)
		if n := e.TileEntries(); n > tile.CacheCapacity {
			t.Fatalf("cell size %d: tile cache holds %d entries, cap %d", e.View().CellSize, n, tile.CacheCapacity)
		}
	}
	if _, misses := e.TileStats(); misses < uint64(cfg.MaxCellSize()-cfg.CellSize) {
		t.Fatalf("expected one compile per size, got %d misses", misses)
	}
}

func TestLandscapeLeftTapHitsRotatedCell(t *testing.T) {
	// 40x30 viewport; landscape-left maps (x, y) to (y, 40-x).
	e := newEngine(t, squareConfig(10, 4, 3))
	raw := vec.Vec2{X: 12, Y: 25}
	if gc, ok := e.Locate(raw); !ok || gc.X != 1 || gc.Y != 2 {
		t.Fatalf("portrait: unexpected cell %v (ok=%v)", gc, ok)
	}

	e.SetOrientation(viewport.OrientationLandscapeLeft, viewport.DevicePhone)
	if !e.Tap(raw) {
		t.Fatalf("expected rotated tap to paint")
	}
	rotated, _ := e.CellAt(2, 2)
	if rotated.Foreground == white {
		t.Fatalf("rotated cell (2,2) was not painted")
	}
	if unrotated, _ := e.CellAt(1, 2); unrotated.Foreground != white {
		t.Fatalf("unrotated cell (1,2) was painted")
	}

	// Lying flat keeps the last landscape orientation.
	e.SetOrientation(viewport.OrientationFaceUp, viewport.DevicePhone)
	if cur, prev := e.Orientation(); cur != viewport.OrientationFaceUp || prev != viewport.OrientationLandscapeLeft {
		t.Fatalf("orientation history %v/%v", cur, prev)
	}
	if gc, ok := e.Locate(raw); !ok || gc.X != 2 || gc.Y != 2 {
		t.Fatalf("face up after landscape: unexpected cell %v (ok=%v)", gc, ok)
	}
}

func TestImageFrameOffsetsPoints(t *testing.T) {
	e := newEngine(t, squareConfig(10, 4, 3))
	e.SetImageFrame(vec.Vec2{X: 100, Y: 50}, vec.Vec2{})
	if gc, ok := e.Locate(vec.Vec2{X: 115, Y: 75}); !ok || gc.X != 1 || gc.Y != 2 {
		t.Fatalf("unexpected cell %v (ok=%v)", gc, ok)
	}
	if _, ok := e.Locate(vec.Vec2{X: 15, Y: 25}); ok {
		t.Fatalf("point left of the image frame located a cell")
	}
}

func TestPrerenderDoesNotShiftTapColors(t *testing.T) {
	tapColor := func(prerender, pans int) color.RGBA {
		cfg := squareConfig(10, 6, 6)
		cfg.Prerender = prerender
		e := newEngine(t, cfg)
		for i := 0; i < pans; i++ {
			e.Shift(1-2*(i%2), 0)
		}
		e.ResetView()
		e.Tap(vec.Vec2{X: 5, Y: 5})
		cell, _ := e.CellAt(0, 0)
		return cell.Foreground
	}
	want := tapColor(0, 0)
	for _, tc := range []struct{ prerender, pans int }{{0, 7}, {2, 0}, {2, 7}} {
		if got := tapColor(tc.prerender, tc.pans); got != want {
			t.Fatalf("prerender=%d pans=%d: tap color %v, expected %v", tc.prerender, tc.pans, got, want)
		}
	}
}
