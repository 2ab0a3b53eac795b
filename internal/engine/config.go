package engine

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"cellgrid/internal/core"
	"cellgrid/internal/tile"
)

// ErrInvalidConfig is wrapped by every error Configure returns.
var ErrInvalidConfig = errors.New("invalid config")

// Config describes the viewport, the cell tile and the grid shown in it.
type Config struct {
	ViewportWidth  int
	ViewportHeight int

	Background color.RGBA
	Foreground color.RGBA

	CellSize int
	Padding  int
	Shape    tile.Shape
	Fade     float64

	Columns int
	Rows    int

	// Scale converts input points to viewport pixels.
	Scale float64
	// Transparency in [0, 1] fades the background toward fully transparent.
	Transparency float64

	ColorMode core.ColorMode
	Seed      int64
	// Prerender is the number of shuffled frames kept ready. Zero disables
	// prerendering.
	Prerender int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		ViewportWidth:  960,
		ViewportHeight: 640,
		Background:     color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff},
		Foreground:     color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
		CellSize:       16,
		Padding:        1,
		Shape:          tile.ShapeCircle,
		Fade:           tile.DefaultFade,
		Columns:        120,
		Rows:           80,
		Scale:          1,
		ColorMode:      core.ColorModeFull,
		Seed:           1337,
	}
}

// MaxCellSize is the largest cell size the viewport accepts.
func (c Config) MaxCellSize() int { return min(c.ViewportWidth, c.ViewportHeight) }

// Validate reports the first problem with the config, wrapping
// ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.ViewportWidth, c.ViewportHeight)
	case c.CellSize < 1:
		return fmt.Errorf("%w: cell size %d", ErrInvalidConfig, c.CellSize)
	case c.CellSize > c.MaxCellSize():
		return fmt.Errorf("%w: cell size %d exceeds viewport %dx%d", ErrInvalidConfig, c.CellSize, c.ViewportWidth, c.ViewportHeight)
	case c.Columns <= 0 || c.Rows <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %v", ErrInvalidConfig, c.Scale)
	case c.Transparency < 0 || c.Transparency > 1:
		return fmt.Errorf("%w: transparency %v", ErrInvalidConfig, c.Transparency)
	case c.Fade <= 0:
		return fmt.Errorf("%w: fade %v", ErrInvalidConfig, c.Fade)
	case c.Prerender < 0:
		return fmt.Errorf("%w: prerender %d", ErrInvalidConfig, c.Prerender)
	}
	return nil
}

// background returns the background color with transparency applied.
func (c Config) background() color.RGBA {
	return core.WithAlpha(c.Background, 1-c.Transparency)
}

func (c Config) maskKey(size int) tile.MaskKey {
	return tile.MaskKey{Size: size, Shape: c.Shape, Padding: c.Padding, Fade: c.Fade}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; range checks are left to Validate.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.ViewportWidth = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.ViewportHeight = parsed
		}
	}
	if v, ok := cfg["cell"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg["padding"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Padding = parsed
		}
	}
	if v, ok := cfg["shape"]; ok {
		if parsed, ok := tile.ParseShape(v); ok {
			c.Shape = parsed
		}
	}
	if v, ok := cfg["fade"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Fade = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Columns = parsed
		}
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Scale = parsed
		}
	}
	if v, ok := cfg["transparency"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Transparency = parsed
		}
	}
	if v, ok := cfg["bg"]; ok {
		if parsed, err := core.ParseColor(v); err == nil {
			c.Background = parsed
		}
	}
	if v, ok := cfg["fg"]; ok {
		if parsed, err := core.ParseColor(v); err == nil {
			c.Foreground = parsed
		}
	}
	if v, ok := cfg["mode"]; ok {
		if parsed, ok := core.ParseColorMode(v); ok {
			c.ColorMode = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["prerender"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Prerender = parsed
		}
	}
	return c
}
