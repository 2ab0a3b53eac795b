package tile

import "testing"

// expand maps every pixel index covered by blocks to its block.
func expand(t *testing.T, blocks []Block) map[int]Block {
	t.Helper()
	px := make(map[int]Block)
	for _, b := range blocks {
		if b.ByteOffset%BytesPerPixel != 0 {
			t.Fatalf("unaligned block %+v", b)
		}
		for i := 0; i < b.PixelCount; i++ {
			idx := b.ByteOffset/BytesPerPixel + i
			if _, dup := px[idx]; dup {
				t.Fatalf("pixel %d covered twice", idx)
			}
			px[idx] = b
		}
	}
	return px
}

func TestBlocksCoverTile(t *testing.T) {
	for _, shape := range []Shape{ShapeSquare, ShapeInset, ShapeCircle, ShapeRounded} {
		for size := 1; size <= 30; size++ {
			for _, stride := range []int{size, size + 1, 3*size + 7} {
				m := CompileMask(size, shape, size/4, DefaultFade)
				blocks := CompileBlocks(m, stride)
				if got := PixelCount(blocks); got != size*size {
					t.Fatalf("%v size=%d stride=%d: %d pixels, expected %d", shape, size, stride, got, size*size)
				}
				px := expand(t, blocks)
				for y := 0; y < size; y++ {
					for x := 0; x < size; x++ {
						b, ok := px[y*stride+x]
						if !ok {
							t.Fatalf("%v size=%d: pixel (%d,%d) missing", shape, size, x, y)
						}
						c := m.At(x, y)
						if b.Foreground != (c > 0) {
							t.Fatalf("%v size=%d: (%d,%d) foreground=%v coverage=%v", shape, size, x, y, b.Foreground, c)
						}
						if !b.Foreground && b.Coverage != 0 {
							t.Fatalf("background block with coverage %v", b.Coverage)
						}
						if c == 1 && b.Coverage != 0 {
							t.Fatalf("opaque pixel stored with coverage %v", b.Coverage)
						}
						if c > 0 && c < 1 && b.Coverage != c {
							t.Fatalf("edge pixel coverage %v, expected %v", b.Coverage, c)
						}
					}
				}
			}
		}
	}
}

func TestBlocksCoalesceRows(t *testing.T) {
	m := CompileMask(16, ShapeSquare, 0, DefaultFade)
	if got := len(CompileBlocks(m, 100)); got != 16 {
		t.Fatalf("square in wide buffer: %d blocks, expected one per row", got)
	}
	if got := len(CompileBlocks(m, 16)); got != 1 {
		t.Fatalf("square as wide as buffer: %d blocks, expected 1", got)
	}
}

func TestBlocksLinearInSize(t *testing.T) {
	for _, shape := range []Shape{ShapeCircle, ShapeRounded} {
		size := 64
		blocks := CompileBlocks(CompileMask(size, shape, 4, DefaultFade), 640)
		if len(blocks) > 8*size {
			t.Fatalf("%v: %d blocks for size %d", shape, len(blocks), size)
		}
	}
}

func TestCacheReusesEntries(t *testing.T) {
	c := NewCache()
	key := MaskKey{Size: 12, Shape: ShapeCircle, Padding: 1, Fade: DefaultFade}
	a := c.Blocks(key, 120)
	b := c.Blocks(key, 120)
	if &a[0] != &b[0] {
		t.Fatalf("block list recompiled for identical key")
	}
	c.Blocks(key, 130)
	if n := c.Len(); n != 2 {
		t.Fatalf("cache holds %d block lists", n)
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 2 {
		t.Fatalf("hits=%d misses=%d", hits, misses)
	}
	c.Clear()
	if n := c.Len(); n != 0 {
		t.Fatalf("cache not cleared")
	}
}

func TestCacheEvictsOldSizes(t *testing.T) {
	c := NewCache()
	for size := 1; size <= 200; size++ {
		c.Blocks(MaskKey{Size: size, Shape: ShapeRounded, Padding: 2, Fade: DefaultFade}, 640)
		if n := c.Len(); n > CacheCapacity {
			t.Fatalf("size %d: cache holds %d block lists, cap %d", size, n, CacheCapacity)
		}
	}
	recent := MaskKey{Size: 200, Shape: ShapeRounded, Padding: 2, Fade: DefaultFade}
	_, before := c.Stats()
	c.Blocks(recent, 640)
	if _, after := c.Stats(); after != before {
		t.Fatalf("most recent size was evicted")
	}
	_, before = c.Stats()
	c.Blocks(MaskKey{Size: 1, Shape: ShapeRounded, Padding: 2, Fade: DefaultFade}, 640)
	if _, after := c.Stats(); after != before+1 {
		t.Fatalf("oldest size was not evicted")
	}
}
