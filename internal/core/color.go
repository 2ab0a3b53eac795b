package core

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode selects the palette RandomColor draws from.
type ColorMode int

const (
	// ColorModeFull draws saturated hues across the whole wheel.
	ColorModeFull ColorMode = iota
	// ColorModeGrayscale draws neutral grays.
	ColorModeGrayscale
	// ColorModeMonochrome draws pure black or white.
	ColorModeMonochrome
)

var colorModeNames = map[string]ColorMode{
	"full":       ColorModeFull,
	"grayscale":  ColorModeGrayscale,
	"monochrome": ColorModeMonochrome,
}

// String returns the flag spelling of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorModeGrayscale:
		return "grayscale"
	case ColorModeMonochrome:
		return "monochrome"
	default:
		return "full"
	}
}

// ParseColorMode maps a name such as "grayscale" to its ColorMode.
func ParseColorMode(s string) (ColorMode, bool) {
	m, ok := colorModeNames[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

// Blend mixes fg over bg by coverage t in [0, 1]. All four channels are
// interpolated so that t=0 yields bg and t=1 yields fg exactly.
func Blend(fg, bg color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return bg
	}
	if t >= 1 {
		return fg
	}
	return color.RGBA{
		R: lerpComponent(bg.R, fg.R, t),
		G: lerpComponent(bg.G, fg.G, t),
		B: lerpComponent(bg.B, fg.B, t),
		A: lerpComponent(bg.A, fg.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// RandomColor returns an opaque color drawn under the given mode.
func RandomColor(rng *RNG, mode ColorMode) color.RGBA {
	switch mode {
	case ColorModeMonochrome:
		if rng.Bool() {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{A: 255}
	case ColorModeGrayscale:
		v := uint8(rng.IntN(256))
		return color.RGBA{R: v, G: v, B: v, A: 255}
	default:
		c := colorful.Hsv(rng.Float64()*360, 0.55+0.45*rng.Float64(), 0.6+0.4*rng.Float64())
		r, g, b := c.Clamped().RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
}

// WithAlpha scales the alpha channel of c by level in [0, 1]. The color
// channels are scaled too so the result stays premultiplied.
func WithAlpha(c color.RGBA, level float64) color.RGBA {
	if level >= 1 {
		return c
	}
	if level < 0 {
		level = 0
	}
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * level)) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	alpha := uint8(255)
	switch len(hex) {
	case 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return color.RGBA{}, fmt.Errorf("parse color %q: want #rrggbb or #rrggbbaa", s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c the way ParseColor reads it.
func FormatColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
