//go:build ebiten

package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a finished viewport buffer into an ebiten image and
// draws it. It satisfies engine.Sink.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
}

// NewGridPainter allocates a painter for a w×h pixel buffer.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Present uploads pix. The dimensions must match the painter; a reconfigured
// engine needs a new painter.
func (gp *GridPainter) Present(pix []byte, width, height int) error {
	if width != gp.w || height != gp.h || len(pix) != 4*width*height {
		return fmt.Errorf("present %dx%d buffer to %dx%d painter", width, height, gp.w, gp.h)
	}
	gp.img.WritePixels(pix)
	return nil
}

// Draw renders the last presented buffer onto dst, scaled down by the device
// pixel scale so the buffer maps onto logical window coordinates.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale float64) {
	op := &ebiten.DrawImageOptions{}
	if scale > 0 && scale != 1 {
		op.GeoM.Scale(1/scale, 1/scale)
	}
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
