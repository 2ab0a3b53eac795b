package tile

import "testing"

func TestTruncationKeepsExactColumns(t *testing.T) {
	for _, shape := range []Shape{ShapeSquare, ShapeCircle, ShapeRounded} {
		for _, stride := range []int{12, 13, 50} {
			size := 12
			blocks := CompileBlocks(CompileMask(size, shape, 2, DefaultFade), stride)
			all := expand(t, blocks)
			for s := 0; s <= size; s++ {
				right := expand(t, TruncateRight(blocks, s, size, stride))
				left := expand(t, TruncateLeft(blocks, s, size, stride))
				for idx, b := range all {
					x := idx % stride
					if rb, ok := right[idx]; ok != (x < size-s) {
						t.Fatalf("%v stride=%d right %d: pixel x=%d kept=%v", shape, stride, s, x, ok)
					} else if ok && !rb.sameKind(b) {
						t.Fatalf("right truncation changed block kind")
					}
					if lb, ok := left[idx]; ok != (x >= s) {
						t.Fatalf("%v stride=%d left %d: pixel x=%d kept=%v", shape, stride, s, x, ok)
					} else if ok && !lb.sameKind(b) {
						t.Fatalf("left truncation changed block kind")
					}
				}
				if len(right) > len(all) || len(left) > len(all) {
					t.Fatalf("truncation invented pixels")
				}
			}
		}
	}
}

func TestTruncateRows(t *testing.T) {
	size, stride := 8, 8
	blocks := CompileBlocks(CompileMask(size, ShapeSquare, 0, DefaultFade), stride)
	top := expand(t, TruncateTop(blocks, 3, size, stride))
	bottom := expand(t, TruncateBottom(blocks, 3, size, stride))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			idx := y*stride + x
			if _, ok := top[idx]; ok != (y >= 3) {
				t.Fatalf("top truncation: (%d,%d) kept=%v", x, y, ok)
			}
			if _, ok := bottom[idx]; ok != (y < 5) {
				t.Fatalf("bottom truncation: (%d,%d) kept=%v", x, y, ok)
			}
		}
	}
}

func TestClipWindow(t *testing.T) {
	size, stride := 10, 40
	blocks := CompileBlocks(CompileMask(size, ShapeCircle, 1, DefaultFade), stride)
	w := Window{X0: 2, X1: 7, Y0: 4, Y1: 10}
	got := expand(t, Clip(blocks, w, stride))
	if len(got) != 5*6 {
		t.Fatalf("clip kept %d pixels, expected 30", len(got))
	}
	for idx := range got {
		x, y := idx%stride, idx/stride
		if x < w.X0 || x >= w.X1 || y < w.Y0 || y >= w.Y1 {
			t.Fatalf("pixel (%d,%d) outside window", x, y)
		}
	}
	if Clip(blocks, Window{X0: 3, X1: 3, Y1: size}, stride) != nil {
		t.Fatalf("empty window should clip everything")
	}
}
