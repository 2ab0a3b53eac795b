package core

import "image/color"

// Cell is one logical grid unit. Background is only used when HasBackground
// is set; otherwise the grid-wide background applies.
type Cell struct {
	X, Y          int
	Foreground    color.RGBA
	Background    color.RGBA
	HasBackground bool
}

// Grid stores cells in row-major order. Cells are value structs indexed by
// y*W+x and carry no reference back to the grid.
type Grid struct {
	W, H int
	data []Cell
}

// NewGrid allocates a grid with every cell set to the foreground color.
func NewGrid(w, h int, fg color.RGBA) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &Grid{W: w, H: h, data: make([]Cell, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.data[y*w+x] = Cell{X: x, Y: y, Foreground: fg}
		}
	}
	return g
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []Cell { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) (Cell, bool) {
	if !g.Contains(x, y) {
		return Cell{}, false
	}
	return g.data[g.Index(x, y)], true
}

// Set stores the colors of the cell at (x, y). It reports false when the
// coordinates are outside the grid.
func (g *Grid) Set(x, y int, fg color.RGBA, bg *color.RGBA) bool {
	if !g.Contains(x, y) {
		return false
	}
	c := &g.data[g.Index(x, y)]
	c.Foreground = fg
	if bg != nil {
		c.Background = *bg
		c.HasBackground = true
	} else {
		c.HasBackground = false
	}
	return true
}

// Colors resolves the foreground and background of (x, y), falling back to
// bg for both when the cell does not exist.
func (g *Grid) Colors(x, y int, bg color.RGBA) (color.RGBA, color.RGBA) {
	if !g.Contains(x, y) {
		return bg, bg
	}
	c := g.data[g.Index(x, y)]
	if c.HasBackground {
		return c.Foreground, c.Background
	}
	return c.Foreground, bg
}

// Fill sets every cell to the given foreground and drops background overrides.
func (g *Grid) Fill(fg color.RGBA) {
	for i := range g.data {
		g.data[i].Foreground = fg
		g.data[i].HasBackground = false
	}
}
