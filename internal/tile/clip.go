package tile

// Window is the visible part of a tile in tile-local pixels: columns
// [X0, X1) and rows [Y0, Y1).
type Window struct {
	X0, X1 int
	Y0, Y1 int
}

// Full returns the window covering a whole tile of the given size.
func Full(size int) Window { return Window{X1: size, Y1: size} }

// Empty reports whether the window contains no pixels.
func (w Window) Empty() bool { return w.X0 >= w.X1 || w.Y0 >= w.Y1 }

// Covers reports whether w contains the whole tile of the given size.
func (w Window) Covers(size int) bool {
	return w.X0 <= 0 && w.Y0 <= 0 && w.X1 >= size && w.Y1 >= size
}

// Clip returns the parts of blocks that fall inside w. Blocks are split at
// buffer-row and window boundaries, so every kept pixel is inside the window
// and no pixel inside it is lost. Kind and coverage carry over to the pieces.
func Clip(blocks []Block, w Window, stride int) []Block {
	if w.Empty() {
		return nil
	}
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		i := b.ByteOffset / BytesPerPixel
		rem := b.PixelCount
		for rem > 0 {
			y, x := i/stride, i%stride
			n := min(rem, stride-x)
			if y >= w.Y0 && y < w.Y1 {
				lo, hi := max(x, w.X0), min(x+n, w.X1)
				if lo < hi {
					out = appendRun(out, Block{
						ByteOffset: (y*stride + lo) * BytesPerPixel,
						PixelCount: hi - lo,
						Foreground: b.Foreground,
						Coverage:   b.Coverage,
					})
				}
			}
			i += n
			rem -= n
		}
	}
	return out
}

// TruncateLeft drops the leading hidden pixel columns of a tile. It and the
// other Truncate functions are the single-edge forms of Clip; the renderer
// clips edge tiles with one Window covering every hidden edge at once.
func TruncateLeft(blocks []Block, hidden, size, stride int) []Block {
	return Clip(blocks, Window{X0: hidden, X1: size, Y1: size}, stride)
}

// TruncateRight drops the trailing hidden pixel columns of a tile.
func TruncateRight(blocks []Block, hidden, size, stride int) []Block {
	return Clip(blocks, Window{X1: size - hidden, Y1: size}, stride)
}

// TruncateTop drops the leading hidden pixel rows of a tile.
func TruncateTop(blocks []Block, hidden, size, stride int) []Block {
	return Clip(blocks, Window{X1: size, Y0: hidden, Y1: size}, stride)
}

// TruncateBottom drops the trailing hidden pixel rows of a tile.
func TruncateBottom(blocks []Block, hidden, size, stride int) []Block {
	return Clip(blocks, Window{X1: size, Y1: size - hidden}, stride)
}
