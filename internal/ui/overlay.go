//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals over the viewport: the outline of
// the cell under the cursor (key 1), cell boundaries (key 2) and the zoom
// anchor at the viewport center (key 3).
type Overlay struct {
	src   CellSource
	scale float64

	showHover  bool
	showGrid   bool
	showAnchor bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance. scale converts input points
// to viewport pixels.
func NewOverlay(src CellSource, scale float64) *Overlay {
	o := &Overlay{src: src, scale: scale, showHover: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHover = !o.showHover
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showGrid = !o.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showAnchor = !o.showAnchor
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o == nil || o.src == nil {
		return
	}
	v := o.src.View()
	w, h := float64(v.Width)/o.scale, float64(v.Height)/o.scale
	if o.showGrid {
		xs, ys := GridLines(v, o.scale)
		for _, x := range xs {
			o.drawLine(screen, x, 0, x, h, 1, gridColor)
		}
		for _, y := range ys {
			o.drawLine(screen, 0, y, w, y, 1, gridColor)
		}
	}
	if o.showHover {
		mx, my := ebiten.CursorPosition()
		if gc, ok := o.src.Locate(vec.Vec2{X: float64(mx), Y: float64(my)}); ok {
			if lo, hi, ok := CellBounds(v, gc, o.scale); ok {
				o.drawRect(screen, lo, hi, hoverColor)
			}
		}
	}
	if o.showAnchor {
		cx, cy := w/2, h/2
		o.drawLine(screen, cx-anchorSize, cy, cx+anchorSize, cy, 1, anchorColor)
		o.drawLine(screen, cx, cy-anchorSize, cx, cy+anchorSize, 1, anchorColor)
	}
}

func (o *Overlay) drawRect(screen *ebiten.Image, lo, hi vec.Vec2, col color.RGBA) {
	o.drawLine(screen, lo.X, lo.Y, hi.X, lo.Y, 1, col)
	o.drawLine(screen, hi.X, lo.Y, hi.X, hi.Y, 1, col)
	o.drawLine(screen, hi.X, hi.Y, lo.X, hi.Y, 1, col)
	o.drawLine(screen, lo.X, hi.Y, lo.X, lo.Y, 1, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

const anchorSize = 8

var (
	gridColor   = color.RGBA{R: 90, G: 90, B: 110, A: 140}
	hoverColor  = color.RGBA{R: 255, G: 230, B: 80, A: 255}
	anchorColor = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)
