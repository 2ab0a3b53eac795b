package viewport

import (
	"image"
	"math"

	"seehuhn.de/go/geom/vec"
)

// Mapper converts input points to viewport and grid cells for one View.
// Scale converts input points to viewport pixels.
type Mapper struct {
	View  View
	Scale float64
}

// ViewCellFromPoint returns the viewport cell under p. Points outside the
// viewport's pixel extent have no cell.
func (m Mapper) ViewCellFromPoint(p vec.Vec2) (image.Point, bool) {
	scale := m.Scale
	if scale <= 0 {
		scale = 1
	}
	px, py := p.X*scale, p.Y*scale
	if px < 0 || py < 0 || px >= float64(m.View.Width) || py >= float64(m.View.Height) {
		return image.Point{}, false
	}
	s := float64(m.View.CellSize)
	lx := float64(lead(m.View.State.PixelX, m.View.CellSize))
	ly := float64(lead(m.View.State.PixelY, m.View.CellSize))
	return image.Pt(int(math.Floor((px-lx)/s)), int(math.Floor((py-ly)/s))), true
}

// GridCellFromViewCell returns the grid cell shown at viewport cell vc.
func (m Mapper) GridCellFromViewCell(vc image.Point) (image.Point, bool) {
	st := m.View.State
	gc := image.Pt(vc.X-st.CellX-carry(st.PixelX), vc.Y-st.CellY-carry(st.PixelY))
	if gc.X < 0 || gc.Y < 0 || gc.X >= m.View.Columns || gc.Y >= m.View.Rows {
		return image.Point{}, false
	}
	return gc, true
}

// ViewCellFromGridCell returns the viewport cell showing grid cell gc, if it
// is currently drawn.
func (m Mapper) ViewCellFromGridCell(gc image.Point) (image.Point, bool) {
	st := m.View.State
	vc := image.Pt(gc.X+st.CellX+carry(st.PixelX), gc.Y+st.CellY+carry(st.PixelY))
	if vc.X < 0 || vc.Y < 0 || vc.X >= m.View.DrawnColumns() || vc.Y >= m.View.DrawnRows() {
		return image.Point{}, false
	}
	return vc, true
}

// Locate returns the grid cell under p.
func (m Mapper) Locate(p vec.Vec2) (image.Point, bool) {
	vc, ok := m.ViewCellFromPoint(p)
	if !ok {
		return image.Point{}, false
	}
	return m.GridCellFromViewCell(vc)
}
