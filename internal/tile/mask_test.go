package tile

import (
	"math"
	"testing"
)

func TestMaskRotationSymmetry(t *testing.T) {
	for _, shape := range []Shape{ShapeSquare, ShapeCircle} {
		for size := 1; size <= 50; size++ {
			for pad := 0; pad <= size/4; pad++ {
				m := CompileMask(size, shape, pad, DefaultFade)
				for y := 0; y < size; y++ {
					for x := 0; x < size; x++ {
						a := m.At(x, y)
						b := m.At(size-1-y, x)
						if a != b {
							t.Fatalf("%v size=%d pad=%d: (%d,%d)=%v rotated=%v", shape, size, pad, x, y, a, b)
						}
					}
				}
			}
		}
	}
}

func TestMaskCoverageRange(t *testing.T) {
	for _, shape := range []Shape{ShapeSquare, ShapeInset, ShapeCircle, ShapeRounded} {
		for size := 1; size <= 40; size++ {
			m := CompileMask(size, shape, size/5, 0.5)
			if len(m.Coverage) != size*size {
				t.Fatalf("%v size=%d: %d coverage values", shape, size, len(m.Coverage))
			}
			for i, c := range m.Coverage {
				if c < 0 || c > 1 || math.IsNaN(c) {
					t.Fatalf("%v size=%d: coverage[%d]=%v", shape, size, i, c)
				}
			}
		}
	}
}

func TestSquareIgnoresPadding(t *testing.T) {
	m := CompileMask(8, ShapeSquare, 3, DefaultFade)
	for i, c := range m.Coverage {
		if c != 1 {
			t.Fatalf("coverage[%d]=%v, expected 1", i, c)
		}
	}
}

func TestInsetPadding(t *testing.T) {
	m := CompileMask(10, ShapeInset, 2, DefaultFade)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := 0.0
			if x >= 2 && x < 8 && y >= 2 && y < 8 {
				want = 1
			}
			if got := m.At(x, y); got != want {
				t.Fatalf("(%d,%d)=%v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestNormalizePadding(t *testing.T) {
	cases := []struct {
		size, pad int
		shape     Shape
		wantShape Shape
		wantPad   int
	}{
		{10, 2, ShapeSquare, ShapeSquare, 0},
		{10, 2, ShapeCircle, ShapeCircle, 2},
		{10, 5, ShapeCircle, ShapeInset, 4},
		{12, 4, ShapeCircle, ShapeCircle, 4},
		{10, 9, ShapeInset, ShapeInset, 4},
		{4, 1, ShapeCircle, ShapeInset, 1},
		{5, 1, ShapeRounded, ShapeRounded, 1},
		{2, 0, ShapeCircle, ShapeInset, 0},
		{1, 3, ShapeRounded, ShapeInset, 0},
		{10, -3, ShapeInset, ShapeInset, 0},
	}
	for _, tc := range cases {
		shape, pad := NormalizePadding(tc.size, tc.shape, tc.pad)
		if shape != tc.wantShape || pad != tc.wantPad {
			t.Fatalf("NormalizePadding(%d,%v,%d)=(%v,%d), expected (%v,%d)",
				tc.size, tc.shape, tc.pad, shape, pad, tc.wantShape, tc.wantPad)
		}
	}
}

func TestCircleAntialiasedEdge(t *testing.T) {
	m := CompileMask(20, ShapeCircle, 0, DefaultFade)
	if m.At(10, 10) != 1 {
		t.Fatalf("center coverage %v, expected 1", m.At(10, 10))
	}
	if m.At(0, 0) != 0 {
		t.Fatalf("corner coverage %v, expected 0", m.At(0, 0))
	}
	partial := 0
	for _, c := range m.Coverage {
		if c > 0 && c < 1 {
			partial++
		}
	}
	if partial == 0 {
		t.Fatalf("circle has no antialiased pixels")
	}
}

func TestRoundedCorners(t *testing.T) {
	m := CompileMask(20, ShapeRounded, 2, DefaultFade)
	if m.At(2, 2) == 1 {
		t.Fatalf("corner pixel inside padding should be cut")
	}
	if m.At(10, 2) != 1 || m.At(2, 10) != 1 {
		t.Fatalf("straight edges should be fully covered: top=%v left=%v", m.At(10, 2), m.At(2, 10))
	}
	if m.At(1, 10) != 0 {
		t.Fatalf("padding column should be empty, got %v", m.At(1, 10))
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if m.At(x, y) != m.At(19-x, y) || m.At(x, y) != m.At(x, 19-y) {
				t.Fatalf("rounded mask not mirror symmetric at (%d,%d)", x, y)
			}
		}
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range []Shape{ShapeSquare, ShapeInset, ShapeCircle, ShapeRounded} {
		got, ok := ParseShape(s.String())
		if !ok || got != s {
			t.Fatalf("ParseShape(%q)=(%v,%v)", s.String(), got, ok)
		}
	}
	if _, ok := ParseShape("hexagon"); ok {
		t.Fatalf("unknown shape accepted")
	}
}
