package render

import (
	"image/color"

	"cellgrid/internal/tile"
	"cellgrid/internal/viewport"
)

// maxClipEntries bounds the memo of clipped block lists. A single frame uses
// at most nine distinct windows.
const maxClipEntries = 64

// ColorFunc resolves the colors of grid cell (x, y). Cells outside the grid
// are expected to resolve to the background for both.
type ColorFunc func(x, y int) (fg, bg color.RGBA)

// Renderer draws a panned view into a CellBuffer, truncating tiles that are
// cut by the viewport edges.
type Renderer struct {
	buf     *CellBuffer
	size    int
	blocks  []tile.Block
	clipped map[tile.Window][]tile.Block
}

// NewRenderer returns a renderer drawing into buf.
func NewRenderer(buf *CellBuffer) *Renderer {
	return &Renderer{buf: buf, clipped: make(map[tile.Window][]tile.Block)}
}

// Buffer returns the target buffer.
func (r *Renderer) Buffer() *CellBuffer { return r.buf }

// SetBlocks installs the tile for cells of the given size.
func (r *Renderer) SetBlocks(size int, blocks []tile.Block) {
	r.size = size
	r.blocks = blocks
	clear(r.clipped)
	r.buf.SetTile(size, blocks)
}

// Blocks returns the tile's blocks restricted to w.
func (r *Renderer) Blocks(w tile.Window) []tile.Block {
	if w.Covers(r.size) {
		return r.blocks
	}
	if b, ok := r.clipped[w]; ok {
		return b
	}
	if len(r.clipped) >= maxClipEntries {
		clear(r.clipped)
	}
	b := tile.Clip(r.blocks, w, r.buf.width)
	r.clipped[w] = b
	return b
}

// DrawPlacement stamps one placement.
func (r *Renderer) DrawPlacement(p viewport.Placement, fg, bg color.RGBA, foregroundOnly bool) {
	r.buf.WriteTile(p.OriginX, p.OriginY, r.Blocks(p.Window), fg, bg, foregroundOnly)
}

// Draw redraws every visible cell of v.
func (r *Renderer) Draw(v *viewport.View, colors ColorFunc) {
	v.Visit(func(p viewport.Placement) {
		fg, bg := colors(p.GridX, p.GridY)
		r.DrawPlacement(p, fg, bg, false)
	})
}
