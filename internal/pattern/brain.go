package pattern

import (
	"image/color"

	"cellgrid/internal/core"
)

const (
	brainDead  = 0
	brainOn    = 1
	brainDying = 2
)

// Brain runs Brian's Brain. Firing cells get a fresh color, dying cells
// fade halfway to the dead color.
type Brain struct {
	w, h int
	cur  []uint8
	nxt  []uint8

	rng     *core.RNG
	mode    core.ColorMode
	dead    color.RGBA
	changed []int
}

// NewBrain returns a Brian's Brain pattern.
func NewBrain(dead color.RGBA) *Brain { return &Brain{dead: dead} }

func (b *Brain) Name() string { return "brain" }

// Cells exposes the current state buffer.
func (b *Brain) Cells() []uint8 { return b.cur }

// Reset fires roughly one cell in eight.
func (b *Brain) Reset(g *core.Grid, rng *core.RNG, mode core.ColorMode) {
	b.w, b.h = g.W, g.H
	b.cur = make([]uint8, g.W*g.H)
	b.nxt = make([]uint8, len(b.cur))
	b.rng, b.mode = rng, mode
	cells := g.Cells()
	for i := range b.cur {
		cells[i].HasBackground = false
		if rng.IntN(8) == 0 {
			b.cur[i] = brainOn
			cells[i].Foreground = core.RandomColor(rng, mode)
			continue
		}
		cells[i].Foreground = b.dead
	}
}

// Step advances one tick and recolors every cell whose state changed.
func (b *Brain) Step(g *core.Grid) []int {
	cells := g.Cells()
	if len(cells) != len(b.cur) {
		return nil
	}
	b.advance()
	b.changed = b.changed[:0]
	for i, s := range b.cur {
		if s == b.nxt[i] {
			continue
		}
		switch s {
		case brainOn:
			cells[i].Foreground = core.RandomColor(b.rng, b.mode)
		case brainDying:
			cells[i].Foreground = core.Blend(cells[i].Foreground, b.dead, 0.5)
		default:
			cells[i].Foreground = b.dead
		}
		b.changed = append(b.changed, i)
	}
	return b.changed
}

// advance computes the next tick into cur and leaves the previous one in nxt.
func (b *Brain) advance() {
	w, h := b.w, b.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			switch b.cur[idx] {
			case brainOn:
				b.nxt[idx] = brainDying
			case brainDying:
				b.nxt[idx] = brainDead
			default:
				neighbors := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx := (x + dx + w) % w
						ny := (y + dy + h) % h
						if b.cur[ny*w+nx] == brainOn {
							neighbors++
						}
					}
				}
				b.nxt[idx] = brainDead
				if neighbors == 2 {
					b.nxt[idx] = brainOn
				}
			}
		}
	}
	b.cur, b.nxt = b.nxt, b.cur
}

func init() {
	Register("brain", func(cfg map[string]string) Pattern {
		return NewBrain(colorOption(cfg, "dead", color.RGBA{A: 255}))
	})
}
