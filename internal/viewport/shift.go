// Package viewport tracks how a grid of cells is panned and zoomed inside a
// fixed-size pixel viewport and maps between viewport and grid coordinates.
package viewport

import "cellgrid/internal/tile"

// ShiftState is the pan offset split into whole cells and a sub-cell pixel
// remainder. |PixelX| and |PixelY| stay below the cell size.
type ShiftState struct {
	CellX, CellY   int
	PixelX, PixelY int
}

// Total returns the pan offset in pixels for the given cell size.
func (s ShiftState) Total(size int) (int, int) {
	return s.CellX*size + s.PixelX, s.CellY*size + s.PixelY
}

// View describes a Width×Height pixel viewport showing a Columns×Rows grid
// of CellSize pixel cells, panned by State.
type View struct {
	Width, Height int
	CellSize      int
	Columns, Rows int
	State         ShiftState
}

// ViewColumns returns the number of whole cells that fit across the viewport.
func (v *View) ViewColumns() int { return v.Width / v.CellSize }

// ViewRows returns the number of whole cells that fit down the viewport.
func (v *View) ViewRows() int { return v.Height / v.CellSize }

// Shift pans the view by a pixel delta and clamps the result.
func (v *View) Shift(dx, dy int) {
	v.State.CellX, v.State.PixelX = shiftAxis(v.State.CellX, v.State.PixelX, dx, v.CellSize)
	v.State.CellY, v.State.PixelY = shiftAxis(v.State.CellY, v.State.PixelY, dy, v.CellSize)
	v.Clamp()
}

// SetTotal replaces the pan offset with a pixel total and clamps the result.
func (v *View) SetTotal(tx, ty int) {
	v.State = ShiftState{
		CellX: tx / v.CellSize, PixelX: tx % v.CellSize,
		CellY: ty / v.CellSize, PixelY: ty % v.CellSize,
	}
	v.Clamp()
}

// Clamp keeps at least part of the grid inside the viewport on each axis:
// CellX stays within [-(Columns-1), ViewColumns()-1], likewise for Y. An
// axis that had to be clamped loses its pixel remainder.
func (v *View) Clamp() {
	v.State.CellX, v.State.PixelX = clampAxis(v.State.CellX, v.State.PixelX, v.Columns, v.ViewColumns())
	v.State.CellY, v.State.PixelY = clampAxis(v.State.CellY, v.State.PixelY, v.Rows, v.ViewRows())
}

func shiftAxis(cell, pixel, delta, size int) (int, int) {
	cell += delta / size
	pixel += delta % size
	switch {
	case pixel >= size:
		pixel -= size
		cell++
	case pixel <= -size:
		pixel += size
		cell--
	}
	return cell, pixel
}

func clampAxis(cell, pixel, gridCount, viewCount int) (int, int) {
	lo, hi := -(gridCount - 1), viewCount-1
	if cell < lo {
		return lo, 0
	}
	if cell > hi {
		return hi, 0
	}
	return cell, pixel
}

// lead is the pixel origin of viewport cell 0 on one axis, in (-size, 0].
func lead(pixel, size int) int {
	if pixel > 0 {
		return pixel - size
	}
	return pixel
}

// carry is 1 when a positive pixel shift exposes a partial cell before
// viewport cell 1.
func carry(pixel int) int {
	if pixel > 0 {
		return 1
	}
	return 0
}

// DrawnColumns returns how many viewport columns are at least partly visible.
func (v *View) DrawnColumns() int {
	return ceilDiv(v.Width-lead(v.State.PixelX, v.CellSize), v.CellSize)
}

// DrawnRows returns how many viewport rows are at least partly visible.
func (v *View) DrawnRows() int {
	return ceilDiv(v.Height-lead(v.State.PixelY, v.CellSize), v.CellSize)
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

// Placement is one viewport cell to draw.
type Placement struct {
	ViewX, ViewY int
	GridX, GridY int
	// OriginX, OriginY locate the tile's top-left pixel in the viewport and
	// are negative for tiles cut by the left or top edge.
	OriginX, OriginY int
	// Window is the visible part of the tile in tile-local pixels.
	Window tile.Window
}

// PlacementAt returns the placement of viewport cell (vx, vy), or false if
// that cell is not drawn.
func (v *View) PlacementAt(vx, vy int) (Placement, bool) {
	if vx < 0 || vy < 0 || vx >= v.DrawnColumns() || vy >= v.DrawnRows() {
		return Placement{}, false
	}
	return v.placement(vx, vy), true
}

func (v *View) placement(vx, vy int) Placement {
	s := v.CellSize
	ox := vx*s + lead(v.State.PixelX, s)
	oy := vy*s + lead(v.State.PixelY, s)
	return Placement{
		ViewX: vx, ViewY: vy,
		GridX: vx - v.State.CellX - carry(v.State.PixelX),
		GridY: vy - v.State.CellY - carry(v.State.PixelY),
		OriginX: ox, OriginY: oy,
		Window: tile.Window{
			X0: max(0, -ox), X1: min(s, v.Width-ox),
			Y0: max(0, -oy), Y1: min(s, v.Height-oy),
		},
	}
}

// Visit calls fn for every viewport cell that is at least partly visible,
// row by row. Leading and trailing cells carry truncated windows; the
// horizontal and vertical windows are computed independently.
func (v *View) Visit(fn func(Placement)) {
	cols, rows := v.DrawnColumns(), v.DrawnRows()
	for vy := 0; vy < rows; vy++ {
		for vx := 0; vx < cols; vx++ {
			fn(v.placement(vx, vy))
		}
	}
}
