package pattern

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"cellgrid/internal/core"
)

// Gradient sweeps a hue ramp across the columns and rotates it by Speed
// degrees per step. Grayscale and monochrome modes ramp lightness instead.
type Gradient struct {
	Speed float64

	offset float64
	mode   core.ColorMode
	all    []int
}

// NewGradient returns a Gradient rotating by speed degrees per step.
func NewGradient(speed float64) *Gradient { return &Gradient{Speed: speed} }

func (gr *Gradient) Name() string { return "gradient" }

func (gr *Gradient) Reset(g *core.Grid, _ *core.RNG, mode core.ColorMode) {
	gr.mode = mode
	gr.offset = 0
	gr.all = gr.all[:0]
	for i := range g.Cells() {
		gr.all = append(gr.all, i)
		g.Cells()[i].HasBackground = false
	}
	gr.paint(g)
}

func (gr *Gradient) Step(g *core.Grid) []int {
	if gr.Speed == 0 || len(gr.all) != len(g.Cells()) {
		return nil
	}
	gr.offset = math.Mod(gr.offset+gr.Speed, 360)
	gr.paint(g)
	return gr.all
}

func (gr *Gradient) paint(g *core.Grid) {
	cells := g.Cells()
	for i := range cells {
		x := cells[i].X
		cells[i].Foreground = gr.at(float64(x) / float64(g.W))
	}
}

// at returns the ramp color at t in [0, 1).
func (gr *Gradient) at(t float64) color.RGBA {
	hue := math.Mod(t*360+gr.offset, 360)
	var c colorful.Color
	switch gr.mode {
	case core.ColorModeGrayscale:
		l := math.Abs(hue-180) / 180
		c = colorful.Color{R: l, G: l, B: l}
	case core.ColorModeMonochrome:
		if hue < 180 {
			c = colorful.Color{R: 1, G: 1, B: 1}
		}
	default:
		c = colorful.Hsv(hue, 0.85, 0.95)
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func init() {
	Register("gradient", func(cfg map[string]string) Pattern {
		return NewGradient(floatOption(cfg, "speed", 3))
	})
}
