// Package sink provides frame consumers outside the ebiten window: PNG
// snapshots, compressed frame streams and a tcell terminal view.
package sink

import (
	"fmt"
	"image"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// PNG encodes each presented frame as a PNG image. Magnify scales frames by
// an integer factor with nearest-neighbor sampling so cell edges stay sharp.
type PNG struct {
	W       io.Writer
	Magnify int
}

// Present encodes pix to the writer.
func (p PNG) Present(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(pix) != 4*width*height {
		return fmt.Errorf("png: %d bytes for %dx%d", len(pix), width, height)
	}
	src := &image.RGBA{Pix: pix, Stride: 4 * width, Rect: image.Rect(0, 0, width, height)}
	var img image.Image = src
	if p.Magnify > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, width*p.Magnify, height*p.Magnify))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		img = dst
	}
	if err := png.Encode(p.W, img); err != nil {
		return fmt.Errorf("png: %w", err)
	}
	return nil
}
