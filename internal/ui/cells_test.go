package ui

import (
	"image"
	"slices"
	"testing"

	"cellgrid/internal/viewport"
)

func TestCellBoundsFollowShift(t *testing.T) {
	v := viewport.View{Width: 30, Height: 30, CellSize: 10, Columns: 3, Rows: 3}
	v.Shift(5, 0)
	lo, hi, ok := CellBounds(v, image.Pt(0, 1), 1)
	if !ok {
		t.Fatalf("expected cell (0,1) to be visible")
	}
	if lo.X != 5 || lo.Y != 10 || hi.X != 15 || hi.Y != 20 {
		t.Fatalf("unexpected bounds %v..%v", lo, hi)
	}
	lo, hi, ok = CellBounds(v, image.Pt(2, 0), 2)
	if !ok {
		t.Fatalf("expected truncated cell (2,0) to be visible")
	}
	if lo.X != 12.5 || hi.X != 15 || hi.Y != 5 {
		t.Fatalf("unexpected truncated bounds %v..%v", lo, hi)
	}
	if _, _, ok := CellBounds(v, image.Pt(5, 0), 1); ok {
		t.Fatalf("expected cell outside the grid to have no bounds")
	}
}

func TestGridLines(t *testing.T) {
	v := viewport.View{Width: 30, Height: 20, CellSize: 10, Columns: 3, Rows: 3}
	v.Shift(4, 0)
	xs, ys := GridLines(v, 1)
	if !slices.Equal(xs, []float64{4, 14, 24}) {
		t.Fatalf("unexpected vertical lines %v", xs)
	}
	if !slices.Equal(ys, []float64{0, 10}) {
		t.Fatalf("unexpected horizontal lines %v", ys)
	}
}
