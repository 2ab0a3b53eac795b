package render

import "image/color"

// fillPixels paints every pixel of buf with c. buf must hold whole pixels.
// The first pixel is written directly and then doubled with copy, which is
// the Go equivalent of a 4-byte memset pattern.
func fillPixels(buf []byte, c color.RGBA) {
	if len(buf) < 4 {
		return
	}
	buf[0] = c.R
	buf[1] = c.G
	buf[2] = c.B
	buf[3] = c.A
	for filled := 4; filled < len(buf); filled *= 2 {
		copy(buf[filled:], buf[:filled])
	}
}

// pixelAt reads the RGBA value at byte offset off.
func pixelAt(buf []byte, off int) color.RGBA {
	return color.RGBA{R: buf[off], G: buf[off+1], B: buf[off+2], A: buf[off+3]}
}
