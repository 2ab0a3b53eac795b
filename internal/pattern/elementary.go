package pattern

import (
	"image/color"
	"strconv"

	"cellgrid/internal/core"
)

// Elementary runs a one-dimensional Wolfram rule on the top row and scrolls
// its history down the grid. Every generation gets its own live color.
type Elementary struct {
	w, h int
	rule uint8
	cur  []uint8
	tmp  []uint8
	rows []color.RGBA

	rng     *core.RNG
	mode    core.ColorMode
	dead    color.RGBA
	changed []int
}

// NewElementary returns an elementary automaton for the given Wolfram code.
func NewElementary(rule uint8, dead color.RGBA) *Elementary {
	return &Elementary{rule: rule, dead: dead}
}

func (e *Elementary) Name() string { return "elementary" }

// Cells exposes the state history, newest generation first.
func (e *Elementary) Cells() []uint8 { return e.cur }

// Reset clears the history and seeds a single live cell in the middle of the
// top row.
func (e *Elementary) Reset(g *core.Grid, rng *core.RNG, mode core.ColorMode) {
	e.w, e.h = g.W, g.H
	e.cur = make([]uint8, g.W*g.H)
	e.tmp = make([]uint8, g.W)
	e.rows = make([]color.RGBA, g.H)
	e.rng, e.mode = rng, mode
	e.rows[0] = core.RandomColor(rng, mode)
	e.cur[e.w/2] = 1
	cells := g.Cells()
	for i := range cells {
		cells[i].Foreground = e.color(i)
		cells[i].HasBackground = false
	}
}

// Step computes the next generation and returns the cells whose color moved.
func (e *Elementary) Step(g *core.Grid) []int {
	cells := g.Cells()
	if len(cells) != len(e.cur) || e.w == 0 {
		return nil
	}
	copy(e.tmp, e.cur[:e.w])
	copy(e.cur[e.w:], e.cur[:e.w*(e.h-1)])
	copy(e.rows[1:], e.rows[:e.h-1])
	e.rows[0] = core.RandomColor(e.rng, e.mode)
	for x := 0; x < e.w; x++ {
		left := e.tmp[(x-1+e.w)%e.w]
		center := e.tmp[x]
		right := e.tmp[(x+1)%e.w]
		idx := (left << 2) | (center << 1) | right
		e.cur[x] = (e.rule >> idx) & 1
	}

	e.changed = e.changed[:0]
	for i := range cells {
		c := e.color(i)
		if cells[i].Foreground == c {
			continue
		}
		cells[i].Foreground = c
		e.changed = append(e.changed, i)
	}
	return e.changed
}

func (e *Elementary) color(i int) color.RGBA {
	if e.cur[i] == 0 {
		return e.dead
	}
	return e.rows[i/e.w]
}

func init() {
	Register("elementary", func(cfg map[string]string) Pattern {
		rule := uint8(110)
		if v, ok := cfg["rule"]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
				rule = uint8(parsed)
			}
		}
		return NewElementary(rule, colorOption(cfg, "dead", color.RGBA{A: 255}))
	})
}
