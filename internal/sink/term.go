package sink

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"seehuhn.de/go/geom/vec"
)

// upperHalf draws the top pixel as foreground and the bottom pixel as
// background, doubling the vertical resolution of a terminal cell.
const upperHalf = '▀'

// Term presents frames on a tcell screen by sampling the frame at two pixels
// per terminal cell.
type Term struct {
	Screen tcell.Screen

	w, h int
}

// Present samples pix onto the screen and shows it.
func (t *Term) Present(pix []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(pix) != 4*width*height {
		return fmt.Errorf("term: %d bytes for %dx%d", len(pix), width, height)
	}
	t.w, t.h = width, height
	cols, rows := t.Screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := t.sample(pix, cx, 2*cy, cols, 2*rows)
			bottom := t.sample(pix, cx, 2*cy+1, cols, 2*rows)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.Screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	t.Screen.Show()
	return nil
}

// sample returns the frame pixel at the center of sub-cell (sx, sy) of an
// sw×sh sampling grid.
func (t *Term) sample(pix []byte, sx, sy, sw, sh int) tcell.Color {
	x := min((2*sx+1)*t.w/(2*sw), t.w-1)
	y := min((2*sy+1)*t.h/(2*sh), t.h-1)
	off := (y*t.w + x) * 4
	return tcell.NewRGBColor(int32(pix[off]), int32(pix[off+1]), int32(pix[off+2]))
}

// Point maps terminal cell (col, row) to the center of the frame area it
// shows, in frame pixels. It reports false before the first frame.
func (t *Term) Point(col, row int) (vec.Vec2, bool) {
	cols, rows := t.Screen.Size()
	if t.w == 0 || cols <= 0 || rows <= 0 {
		return vec.Vec2{}, false
	}
	return vec.Vec2{
		X: (float64(col) + 0.5) * float64(t.w) / float64(cols),
		Y: (float64(row) + 0.5) * float64(t.h) / float64(rows),
	}, true
}

// CellSize returns how many frame pixels one terminal cell spans.
func (t *Term) CellSize() (float64, float64) {
	cols, rows := t.Screen.Size()
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return float64(t.w) / float64(cols), float64(t.h) / float64(rows)
}
