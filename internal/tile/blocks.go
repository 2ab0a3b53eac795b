package tile

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Block is a run of pixels that resolve to one color. ByteOffset is relative
// to the origin of the cell tile inside a buffer whose rows are stride pixels
// wide.
//
// Background blocks always carry Coverage 0. A foreground block with
// Coverage 0 is fully opaque interior; Coverage in (0, 1) is a blended edge.
type Block struct {
	ByteOffset int
	PixelCount int
	Foreground bool
	Coverage   float64
}

// End returns the byte offset just past the block.
func (b Block) End() int { return b.ByteOffset + b.PixelCount*BytesPerPixel }

func (b Block) sameKind(o Block) bool {
	return b.Foreground == o.Foreground && b.Coverage == o.Coverage
}

// CompileBlocks scans the mask row-major and coalesces equal pixels into
// runs. Runs only grow while they stay byte-contiguous in a buffer of the
// given stride, so a convex shape yields O(size) blocks.
func CompileBlocks(m *Mask, stride int) []Block {
	if stride < m.Size {
		stride = m.Size
	}
	blocks := make([]Block, 0, 4*m.Size)
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			blocks = appendRun(blocks, Block{
				ByteOffset: (y*stride + x) * BytesPerPixel,
				PixelCount: 1,
				Foreground: m.Coverage[y*m.Size+x] > 0,
				Coverage:   runCoverage(m.Coverage[y*m.Size+x]),
			})
		}
	}
	return blocks
}

func runCoverage(c float64) float64 {
	if c <= 0 || c >= 1 {
		return 0
	}
	return c
}

// appendRun appends b, extending the last block instead when it is of the
// same kind and ends exactly where b starts.
func appendRun(blocks []Block, b Block) []Block {
	if n := len(blocks); n > 0 {
		last := &blocks[n-1]
		if last.sameKind(b) && last.End() == b.ByteOffset {
			last.PixelCount += b.PixelCount
			return blocks
		}
	}
	return append(blocks, b)
}

// PixelCount sums the pixels covered by blocks.
func PixelCount(blocks []Block) int {
	n := 0
	for _, b := range blocks {
		n += b.PixelCount
	}
	return n
}
