// Package tile compiles a cell's shape into a coverage mask and the mask into
// run-length blocks that can be stamped into a viewport buffer.
package tile

import (
	"fmt"
	"math"
	"strings"
)

// Shape selects the outline drawn inside every cell tile.
type Shape int

const (
	// ShapeSquare fills the whole tile and ignores padding.
	ShapeSquare Shape = iota
	// ShapeInset is a padded square without antialiasing.
	ShapeInset
	// ShapeCircle is an antialiased disc.
	ShapeCircle
	// ShapeRounded is a padded square with antialiased quarter-circle corners.
	ShapeRounded
)

// DefaultFade is the antialias falloff width in pixels.
const DefaultFade = 1.0

// roundedCornerFactor is the corner radius relative to the padded size.
const roundedCornerFactor = 0.25

// minShapedSize is the smallest padded size that still gets a curved outline.
const minShapedSize = 3

var shapeNames = []string{"square", "inset", "circle", "rounded"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape maps a name such as "circle" to its Shape.
func ParseShape(name string) (Shape, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return ShapeSquare, false
}

// Mask holds per-pixel coverage in [0, 1] for one Size×Size tile, row-major.
type Mask struct {
	Size     int
	Coverage []float64
}

// At returns the coverage at (x, y), or 0 outside the tile.
func (m *Mask) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return 0
	}
	return m.Coverage[y*m.Size+x]
}

// NormalizePadding resolves the effective shape and padding for a tile size.
// Square tiles never pad. Padding that would consume the tile is clamped to
// size/2-1, and curved shapes whose padded size drops below three pixels fall
// back to an inset square.
func NormalizePadding(size int, shape Shape, padding int) (Shape, int) {
	if shape == ShapeSquare || padding < 0 {
		padding = 0
	}
	if 2*padding >= size {
		padding = max(size/2-1, 0)
	}
	if (shape == ShapeCircle || shape == ShapeRounded) && size-2*padding < minShapedSize {
		shape = ShapeInset
	}
	return shape, padding
}

// CompileMask computes the coverage mask of a tile. It is a pure function of
// its arguments. A non-positive fade uses DefaultFade.
func CompileMask(size int, shape Shape, padding int, fade float64) *Mask {
	if size < 1 {
		size = 1
	}
	if fade <= 0 {
		fade = DefaultFade
	}
	shape, padding = NormalizePadding(size, shape, padding)
	m := &Mask{Size: size, Coverage: make([]float64, size*size)}

	switch shape {
	case ShapeCircle:
		fillCircle(m, padding, fade)
	case ShapeRounded:
		fillRounded(m, padding, fade)
	default:
		fillRect(m, padding)
	}
	return m
}

func fillRect(m *Mask, padding int) {
	lo, hi := padding, m.Size-padding
	for y := lo; y < hi; y++ {
		row := m.Coverage[y*m.Size : (y+1)*m.Size]
		for x := lo; x < hi; x++ {
			row[x] = 1
		}
	}
}

func fillCircle(m *Mask, padding int, fade float64) {
	center := float64(m.Size) / 2
	radius := float64(m.Size-2*padding) / 2
	for y := 0; y < m.Size; y++ {
		dy := float64(y) + 0.5 - center
		for x := 0; x < m.Size; x++ {
			dx := float64(x) + 0.5 - center
			m.Coverage[y*m.Size+x] = falloff(radius, math.Sqrt(dx*dx+dy*dy), fade)
		}
	}
}

func fillRounded(m *Mask, padding int, fade float64) {
	lo := float64(padding)
	hi := float64(m.Size - padding)
	r := roundedCornerFactor * (hi - lo)
	for y := padding; y < m.Size-padding; y++ {
		py := float64(y) + 0.5
		cy, inY := cornerCenter(py, lo, hi, r)
		for x := padding; x < m.Size-padding; x++ {
			px := float64(x) + 0.5
			cx, inX := cornerCenter(px, lo, hi, r)
			if !inX || !inY {
				m.Coverage[y*m.Size+x] = 1
				continue
			}
			dx, dy := px-cx, py-cy
			m.Coverage[y*m.Size+x] = falloff(r, math.Sqrt(dx*dx+dy*dy), fade)
		}
	}
}

// cornerCenter returns the corner-circle center coordinate on one axis and
// whether p lies within a corner band on that axis.
func cornerCenter(p, lo, hi, r float64) (float64, bool) {
	switch {
	case p < lo+r:
		return lo + r, true
	case p > hi-r:
		return hi - r, true
	}
	return 0, false
}

func falloff(radius, dist, fade float64) float64 {
	v := (radius - dist) / fade
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}
