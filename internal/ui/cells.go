package ui

import (
	"image"

	"seehuhn.de/go/geom/vec"

	"cellgrid/internal/viewport"
)

// CellSource is the part of the engine the overlay reads.
type CellSource interface {
	Locate(p vec.Vec2) (image.Point, bool)
	View() viewport.View
}

// CellBounds returns the visible part of grid cell gc in input points, as
// top-left and bottom-right corners. scale converts points to viewport
// pixels.
func CellBounds(v viewport.View, gc image.Point, scale float64) (vec.Vec2, vec.Vec2, bool) {
	if scale <= 0 {
		scale = 1
	}
	vc, ok := viewport.Mapper{View: v, Scale: scale}.ViewCellFromGridCell(gc)
	if !ok {
		return vec.Vec2{}, vec.Vec2{}, false
	}
	p, ok := v.PlacementAt(vc.X, vc.Y)
	if !ok || p.Window.Empty() {
		return vec.Vec2{}, vec.Vec2{}, false
	}
	x0 := float64(p.OriginX+p.Window.X0) / scale
	y0 := float64(p.OriginY+p.Window.Y0) / scale
	x1 := float64(p.OriginX+p.Window.X1) / scale
	y1 := float64(p.OriginY+p.Window.Y1) / scale
	return vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y1}, true
}

// GridLines returns the x positions of the vertical and the y positions of
// the horizontal cell boundaries inside the viewport, in input points.
func GridLines(v viewport.View, scale float64) (xs, ys []float64) {
	if scale <= 0 {
		scale = 1
	}
	v.Visit(func(p viewport.Placement) {
		if p.ViewY == 0 && p.OriginX >= 0 && p.OriginX < v.Width {
			xs = append(xs, float64(p.OriginX)/scale)
		}
		if p.ViewX == 0 && p.OriginY >= 0 && p.OriginY < v.Height {
			ys = append(ys, float64(p.OriginY)/scale)
		}
	})
	return xs, ys
}
