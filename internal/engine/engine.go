// Package engine ties the cell grid, the pan/zoom view and the tile renderer
// together behind a small event-driven API.
package engine

import (
	"fmt"
	"image"
	"image/color"

	"seehuhn.de/go/geom/vec"

	"cellgrid/internal/core"
	"cellgrid/internal/prerender"
	"cellgrid/internal/render"
	"cellgrid/internal/tile"
	"cellgrid/internal/viewport"
)

// frameStream selects the RNG stream that seeds prerendered frames.
const frameStream = 1

// Sink receives finished frames. pix is only valid for the duration of the
// call.
type Sink interface {
	Present(pix []byte, width, height int) error
}

// Pattern drives cell colors over time.
type Pattern interface {
	Name() string
	// Reset recolors the whole grid.
	Reset(g *core.Grid, rng *core.RNG, mode core.ColorMode)
	// Step advances one tick and returns the indices of the cells whose
	// foreground changed.
	Step(g *core.Grid) []int
}

// Frame is a fully rendered shuffle: one foreground per grid cell and the
// matching viewport pixels.
type Frame struct {
	Colors []color.RGBA
	Pix    []byte
}

// Engine owns the grid, the view over it and the pixel buffer the view is
// rendered into. It is not safe for concurrent use; prerendered frames are
// produced on their own goroutine from snapshots.
type Engine struct {
	cfg Config
	bg  color.RGBA

	grid  *core.Grid
	view  viewport.View
	tiles *tile.Cache
	buf   *render.CellBuffer
	rend  *render.Renderer
	rng   *core.RNG

	// frameRNG seeds prerendered frames so that producing them does not
	// advance rng.
	frameRNG *core.RNG

	zoomBase int
	drag     dragState
	orient   orientationState
	frames   *prerender.Cache[Frame]
}

// New returns an engine configured with cfg.
func New(cfg Config) (*Engine, error) {
	e := &Engine{tiles: tile.NewCache()}
	if err := e.Configure(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// Configure validates cfg and rebuilds the grid, the view and the buffer
// from it. An invalid config leaves the engine untouched.
func (e *Engine) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if e.buf == nil || e.cfg.ViewportWidth != cfg.ViewportWidth || e.cfg.ViewportHeight != cfg.ViewportHeight {
		e.buf = render.NewCellBuffer(cfg.ViewportWidth, cfg.ViewportHeight)
		e.rend = render.NewRenderer(e.buf)
		e.tiles.Clear()
	}
	e.cfg = cfg
	e.bg = cfg.background()
	e.rng = core.NewRNG(cfg.Seed)
	e.frameRNG = core.NewRNGStream(cfg.Seed, frameStream)
	e.grid = core.NewGrid(cfg.Columns, cfg.Rows, cfg.Foreground)
	e.view = viewport.View{
		Width:    cfg.ViewportWidth,
		Height:   cfg.ViewportHeight,
		CellSize: cfg.CellSize,
		Columns:  cfg.Columns,
		Rows:     cfg.Rows,
	}
	e.zoomBase = 0
	e.drag = dragState{}
	e.frames = prerender.New[Frame](cfg.Prerender)
	core.Logger().Info("configure",
		"viewport", fmt.Sprintf("%dx%d", cfg.ViewportWidth, cfg.ViewportHeight),
		"grid", fmt.Sprintf("%dx%d", cfg.Columns, cfg.Rows),
		"cell", cfg.CellSize, "shape", cfg.Shape.String(), "padding", cfg.Padding)
	e.applyTile()
	e.frames.Replenish()
	return nil
}

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// View returns a copy of the current view.
func (e *Engine) View() viewport.View { return e.view }

// Background returns the background color with transparency applied.
func (e *Engine) Background() color.RGBA { return e.bg }

// Pix exposes the viewport buffer as row-major RGBA8. It is owned by the
// engine and must be treated as read-only.
func (e *Engine) Pix() []byte { return e.buf.Pix() }

// Size returns the viewport size in pixels.
func (e *Engine) Size() (int, int) { return e.buf.Size() }

// CellAt returns the grid cell at (x, y).
func (e *Engine) CellAt(x, y int) (core.Cell, bool) { return e.grid.At(x, y) }

// TileStats returns the tile cache hit and miss counters.
func (e *Engine) TileStats() (hits, misses uint64) { return e.tiles.Stats() }

// TileEntries returns the number of block lists held by the tile cache.
func (e *Engine) TileEntries() int { return e.tiles.Len() }

// Present hands the current frame to s.
func (e *Engine) Present(s Sink) error {
	w, h := e.buf.Size()
	if err := s.Present(e.buf.Pix(), w, h); err != nil {
		return fmt.Errorf("present %dx%d frame: %w", w, h, err)
	}
	return nil
}

func (e *Engine) mapper() viewport.Mapper {
	return viewport.Mapper{View: e.view, Scale: e.cfg.Scale}
}

// Locate returns the grid cell under raw input point p, after undoing the
// device orientation and the image frame.
func (e *Engine) Locate(p vec.Vec2) (image.Point, bool) {
	return e.mapper().Locate(e.normalize(p))
}

// Shift pans the view by a pixel delta.
func (e *Engine) Shift(dx, dy int) {
	before := e.view.State
	e.view.Shift(dx, dy)
	if e.view.State == before {
		return
	}
	e.layoutChanged()
}

// Zoom resizes cells by factor relative to the cell size at the start of the
// current gesture, keeping the viewport center anchored.
func (e *Engine) Zoom(factor float64) {
	if e.zoomBase == 0 {
		e.zoomBase = e.view.CellSize
	}
	e.zoomTo(viewport.ZoomSize(e.zoomBase, factor, e.cfg.MaxCellSize()))
}

// ZoomEnd applies the final factor of a gesture and ends it.
func (e *Engine) ZoomEnd(factor float64) {
	e.Zoom(factor)
	e.zoomBase = 0
	e.frames.Replenish()
}

// ZoomStep changes the cell size by delta pixels outside of any gesture.
func (e *Engine) ZoomStep(delta int) {
	size := min(max(e.view.CellSize+delta, viewport.MinCellSize), e.cfg.MaxCellSize())
	e.zoomTo(size)
	e.frames.Replenish()
}

func (e *Engine) zoomTo(size int) {
	if size == e.view.CellSize {
		return
	}
	from := e.view.CellSize
	e.view = viewport.Recenter(e.view, size)
	core.Logger().Debug("zoom", "from", from, "to", size, "state", e.view.State)
	e.applyTile()
}

// ResetView restores the configured cell size and removes any pan.
func (e *Engine) ResetView() {
	e.zoomBase = 0
	e.view.CellSize = e.cfg.CellSize
	e.view.State = viewport.ShiftState{}
	e.applyTile()
	e.frames.Replenish()
}

// WriteCell stores the colors of grid cell (x, y) and redraws it when it is
// visible. A background equal to the grid background clears any override.
// With foregroundOnly set only the foreground is stored and drawn. It
// reports false for cells outside the grid.
func (e *Engine) WriteCell(x, y int, fg, bg color.RGBA, foregroundOnly bool) bool {
	cell, ok := e.grid.At(x, y)
	if !ok {
		return false
	}
	var override *color.RGBA
	switch {
	case foregroundOnly && cell.HasBackground:
		override = &cell.Background
	case !foregroundOnly && bg != e.bg:
		override = &bg
	}
	e.grid.Set(x, y, fg, override)
	e.drawCell(x, y, foregroundOnly)
	return true
}

// FillAll sets every cell's foreground to c and redraws.
func (e *Engine) FillAll(c color.RGBA) {
	e.grid.Fill(c)
	e.redraw()
}

// Shuffle gives every cell a random foreground. A prerendered frame is used
// when one is ready.
func (e *Engine) Shuffle() {
	cells := e.grid.Cells()
	if f, ok := e.frames.Take(); ok {
		for i := range cells {
			cells[i].Foreground = f.Colors[i]
			cells[i].HasBackground = false
		}
		copy(e.buf.Pix(), f.Pix)
		return
	}
	for i := range cells {
		cells[i].Foreground = core.RandomColor(e.rng, e.cfg.ColorMode)
		cells[i].HasBackground = false
	}
	e.redraw()
}

// ResetPattern lets p recolor the whole grid.
func (e *Engine) ResetPattern(p Pattern) {
	p.Reset(e.grid, e.rng, e.cfg.ColorMode)
	e.redraw()
}

// StepPattern advances p by one tick and redraws the cells it changed. It
// returns the number of changed cells.
func (e *Engine) StepPattern(p Pattern) int {
	changed := p.Step(e.grid)
	for _, idx := range changed {
		e.drawCell(idx%e.grid.W, idx/e.grid.W, true)
	}
	return len(changed)
}

func (e *Engine) drawCell(x, y int, foregroundOnly bool) {
	vc, ok := e.mapper().ViewCellFromGridCell(image.Pt(x, y))
	if !ok {
		return
	}
	p, ok := e.view.PlacementAt(vc.X, vc.Y)
	if !ok {
		return
	}
	fg, bg := e.grid.Colors(x, y, e.bg)
	e.rend.DrawPlacement(p, fg, bg, foregroundOnly)
}

func (e *Engine) colors(x, y int) (color.RGBA, color.RGBA) {
	return e.grid.Colors(x, y, e.bg)
}

// applyTile installs the tile for the current cell size and redraws.
func (e *Engine) applyTile() {
	blocks := e.tiles.Blocks(e.cfg.maskKey(e.view.CellSize), e.cfg.ViewportWidth)
	e.rend.SetBlocks(e.view.CellSize, blocks)
	e.layoutChanged()
}

func (e *Engine) redraw() {
	e.rend.Draw(&e.view, e.colors)
}

// layoutChanged redraws after the view or the tile changed. Prerendered
// frames no longer match the buffer and are dropped.
func (e *Engine) layoutChanged() {
	e.redraw()
	if e.cfg.Prerender > 0 {
		e.frames.Invalidate(e.frameProducer())
	}
}

// frameProducer snapshots everything a shuffle frame depends on. The
// producer owns its RNG and never touches engine state.
func (e *Engine) frameProducer() prerender.Producer[Frame] {
	view := e.view
	blocks := e.tiles.Blocks(e.cfg.maskKey(view.CellSize), e.cfg.ViewportWidth)
	bg, mode := e.bg, e.cfg.ColorMode
	cols, rows := e.grid.W, e.grid.H
	rng := core.NewRNG(e.frameRNG.Source().Int64())
	return func() Frame {
		buf := render.NewCellBuffer(view.Width, view.Height)
		r := render.NewRenderer(buf)
		r.SetBlocks(view.CellSize, blocks)
		colors := make([]color.RGBA, cols*rows)
		for i := range colors {
			colors[i] = core.RandomColor(rng, mode)
		}
		r.Draw(&view, func(x, y int) (color.RGBA, color.RGBA) {
			if x < 0 || y < 0 || x >= cols || y >= rows {
				return bg, bg
			}
			return colors[y*cols+x], bg
		})
		return Frame{Colors: colors, Pix: buf.Pix()}
	}
}
