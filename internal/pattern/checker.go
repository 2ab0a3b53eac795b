package pattern

import (
	"image/color"

	"cellgrid/internal/core"
)

// Checker paints two random colors in a checkerboard and swaps them every
// Period steps.
type Checker struct {
	Period int

	a, b    color.RGBA
	tick    int
	changed []int
}

// NewChecker returns a Checker swapping colors every period steps.
func NewChecker(period int) *Checker { return &Checker{Period: max(period, 1)} }

func (c *Checker) Name() string { return "checker" }

func (c *Checker) Reset(g *core.Grid, rng *core.RNG, mode core.ColorMode) {
	c.a = core.RandomColor(rng, mode)
	c.b = core.RandomColor(rng, mode)
	c.tick = 0
	c.paint(g)
}

func (c *Checker) Step(g *core.Grid) []int {
	c.tick++
	if c.tick%c.Period != 0 {
		return nil
	}
	c.a, c.b = c.b, c.a
	return c.paint(g)
}

func (c *Checker) paint(g *core.Grid) []int {
	cells := g.Cells()
	c.changed = c.changed[:0]
	for i := range cells {
		want := c.a
		if (cells[i].X+cells[i].Y)%2 == 1 {
			want = c.b
		}
		if cells[i].Foreground != want {
			cells[i].Foreground = want
			c.changed = append(c.changed, i)
		}
	}
	return c.changed
}

func init() {
	Register("checker", func(cfg map[string]string) Pattern {
		return NewChecker(intOption(cfg, "period", 30))
	})
}
