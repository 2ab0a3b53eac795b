package pattern

import "cellgrid/internal/core"

// Random gives every cell a random color and then recolors a few random cells
// per step.
type Random struct {
	perStep int
	rng     *core.RNG
	mode    core.ColorMode
	changed []int
}

// NewRandom returns a Random pattern recoloring perStep cells per step.
func NewRandom(perStep int) *Random { return &Random{perStep: max(perStep, 1)} }

func (r *Random) Name() string { return "random" }

func (r *Random) Reset(g *core.Grid, rng *core.RNG, mode core.ColorMode) {
	r.rng, r.mode = rng, mode
	cells := g.Cells()
	for i := range cells {
		cells[i].Foreground = core.RandomColor(rng, mode)
		cells[i].HasBackground = false
	}
}

func (r *Random) Step(g *core.Grid) []int {
	if r.rng == nil {
		return nil
	}
	cells := g.Cells()
	r.changed = r.changed[:0]
	for n := 0; n < r.perStep; n++ {
		i := r.rng.IntN(len(cells))
		cells[i].Foreground = core.RandomColor(r.rng, r.mode)
		r.changed = append(r.changed, i)
	}
	return r.changed
}

func init() {
	Register("random", func(cfg map[string]string) Pattern {
		return NewRandom(intOption(cfg, "per_step", 16))
	})
}
