// Package render owns the viewport pixel buffer and stamps compiled cell
// tiles into it.
package render

import (
	"image/color"

	"cellgrid/internal/core"
	"cellgrid/internal/tile"
)

// CellBuffer owns a row-major RGBA8 buffer of width×height pixels and the
// block list of the current cell tile. It is not safe for concurrent use.
type CellBuffer struct {
	width, height int
	cellSize      int
	blocks        []tile.Block
	pix           []byte
}

// NewCellBuffer allocates a zeroed buffer. Non-positive sizes become 1.
func NewCellBuffer(width, height int) *CellBuffer {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &CellBuffer{width: width, height: height, pix: make([]byte, 4*width*height)}
}

// SetTile installs the block list used by WriteCell. blocks must have been
// compiled for this buffer's width.
func (b *CellBuffer) SetTile(cellSize int, blocks []tile.Block) {
	b.cellSize = cellSize
	b.blocks = blocks
}

// Pix exposes the buffer. Callers outside the rendering path must treat it
// as read-only.
func (b *CellBuffer) Pix() []byte { return b.pix }

// Size returns the buffer dimensions in pixels.
func (b *CellBuffer) Size() (int, int) { return b.width, b.height }

// Fill paints the whole buffer with c.
func (b *CellBuffer) Fill(c color.RGBA) { fillPixels(b.pix, c) }

// WriteCell redraws the unshifted viewport cell (x, y) with the installed
// tile. Cells that do not fit entirely inside the buffer are ignored. With
// foregroundOnly set, background runs are left untouched.
func (b *CellBuffer) WriteCell(x, y int, fg, bg color.RGBA, foregroundOnly bool) {
	s := b.cellSize
	if s <= 0 || x < 0 || y < 0 || (x+1)*s > b.width || (y+1)*s > b.height {
		return
	}
	b.WriteTile(s*x, s*y, b.blocks, fg, bg, foregroundOnly)
}

// WriteTile stamps blocks with their top-left corner at pixel (originX,
// originY). The origin may be negative when blocks were clipped to the
// visible window. A run that would leave the buffer is dropped.
func (b *CellBuffer) WriteTile(originX, originY int, blocks []tile.Block, fg, bg color.RGBA, foregroundOnly bool) {
	base := (originY*b.width + originX) * tile.BytesPerPixel
	for _, blk := range blocks {
		if !blk.Foreground && foregroundOnly {
			continue
		}
		off := base + blk.ByteOffset
		end := off + blk.PixelCount*tile.BytesPerPixel
		if off < 0 || end > len(b.pix) {
			core.Logger().Debug("drop run outside buffer", "offset", off, "pixels", blk.PixelCount, "len", len(b.pix))
			continue
		}
		fillPixels(b.pix[off:end], resolve(blk, fg, bg))
	}
}

func resolve(blk tile.Block, fg, bg color.RGBA) color.RGBA {
	switch {
	case blk.Foreground && blk.Coverage != 0:
		return core.Blend(fg, bg, blk.Coverage)
	case blk.Foreground:
		return fg
	default:
		return bg
	}
}
