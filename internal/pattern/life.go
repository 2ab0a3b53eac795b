package pattern

import (
	"image/color"

	"cellgrid/internal/core"
)

// Life runs Conway's Game of Life with toroidal wrapping. Live cells keep the
// color they were born with; dead cells take the dead color.
type Life struct {
	w, h int
	cur  []uint8
	nxt  []uint8

	rng     *core.RNG
	mode    core.ColorMode
	dead    color.RGBA
	density float64
	changed []int
}

// NewLife returns a Life pattern. density is the share of cells alive after
// Reset.
func NewLife(dead color.RGBA, density float64) *Life {
	return &Life{dead: dead, density: density}
}

// Name returns the pattern identifier.
func (l *Life) Name() string { return "life" }

// Cells exposes the current alive/dead state.
func (l *Life) Cells() []uint8 { return l.cur }

// Reset sizes the board to g and seeds it randomly.
func (l *Life) Reset(g *core.Grid, rng *core.RNG, mode core.ColorMode) {
	l.w, l.h = g.W, g.H
	l.cur = make([]uint8, g.W*g.H)
	l.nxt = make([]uint8, len(l.cur))
	l.rng, l.mode = rng, mode
	cells := g.Cells()
	for i := range l.cur {
		if rng.Float64() < l.density {
			l.cur[i] = 1
			cells[i].Foreground = core.RandomColor(rng, mode)
		} else {
			cells[i].Foreground = l.dead
		}
		cells[i].HasBackground = false
	}
}

// Step advances one generation and recolors births and deaths.
func (l *Life) Step(g *core.Grid) []int {
	cells := g.Cells()
	if len(cells) != len(l.cur) {
		return nil
	}
	l.advance()
	l.changed = l.changed[:0]
	for i := range l.cur {
		if l.cur[i] == l.nxt[i] {
			continue
		}
		if l.cur[i] == 1 {
			cells[i].Foreground = core.RandomColor(l.rng, l.mode)
		} else {
			cells[i].Foreground = l.dead
		}
		l.changed = append(l.changed, i)
	}
	return l.changed
}

// advance computes the next generation into cur, keeping the previous one in
// nxt for change detection.
func (l *Life) advance() {
	w, h := l.w, l.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := (x + dx + w) % w
					ny := (y + dy + h) % h
					neighbors += int(l.cur[ny*w+nx])
				}
			}
			idx := y*w + x
			alive := l.cur[idx] == 1
			l.nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				l.nxt[idx] = 1
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
}

func init() {
	Register("life", func(cfg map[string]string) Pattern {
		return NewLife(colorOption(cfg, "dead", color.RGBA{A: 255}), floatOption(cfg, "density", 0.3))
	})
}
