package viewport

import "math"

// MinCellSize is the smallest cell size zooming can reach.
const MinCellSize = 1

// ZoomSize scales size by factor, rounding half to even so repeated zooms
// carry no directional bias, and clamps the result to [MinCellSize, maxSize].
func ZoomSize(size int, factor float64, maxSize int) int {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return size
	}
	n := int(math.RoundToEven(float64(size) * factor))
	return min(max(n, MinCellSize), max(maxSize, MinCellSize))
}

// RecenterAxis adjusts a pixel pan total on an axis of the given extent
// while the cell size moves from one size to another, one pixel of cell size
// at a time. Growing s→s+1 moves the total by -(extent/s)/2 - (s+1)%2;
// shrinking s→s-1 applies the exact inverse of the matching growth step, so
// zooming in and back out restores the original offset.
func RecenterAxis(total, from, to, extent int) int {
	for s := from; s < to; s++ {
		total -= (extent/s)/2 + (s+1)%2
	}
	for s := from; s > to; s-- {
		total += (extent/(s-1))/2 + s%2
	}
	return total
}

// Recenter returns a copy of v resized to newSize with its pan offset
// adjusted so the viewport center stays visually anchored.
func Recenter(v View, newSize int) View {
	if newSize < MinCellSize || newSize == v.CellSize {
		return v
	}
	tx, ty := v.State.Total(v.CellSize)
	tx = RecenterAxis(tx, v.CellSize, newSize, v.Width)
	ty = RecenterAxis(ty, v.CellSize, newSize, v.Height)
	v.CellSize = newSize
	v.SetTotal(tx, ty)
	return v
}
