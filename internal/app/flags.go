package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"cellgrid/internal/core"
	"cellgrid/internal/engine"
	"cellgrid/internal/tile"
	"cellgrid/internal/viewport"
)

// Config represents the command-line parameters shared by the cellgrid
// binaries.
type Config struct {
	Pattern string
	TPS     int
	Verbose bool

	Width, Height int
	Cell          int
	Padding       int
	Shape         string
	Fade          float64
	Cols, Rows    int
	Scale         float64
	Transparency  float64
	Background    string
	Foreground    string
	Mode          string
	Seed          int64
	Prerender     int
	Orientation   string
	Device        string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := engine.DefaultConfig()
	return &Config{
		Pattern:      "random",
		TPS:          30,
		Width:        d.ViewportWidth,
		Height:       d.ViewportHeight,
		Cell:         d.CellSize,
		Padding:      d.Padding,
		Shape:        d.Shape.String(),
		Fade:         d.Fade,
		Cols:         d.Columns,
		Rows:         d.Rows,
		Scale:        d.Scale,
		Transparency: d.Transparency,
		Background:   core.FormatColor(d.Background),
		Foreground:   core.FormatColor(d.Foreground),
		Mode:         d.ColorMode.String(),
		Seed:         d.Seed,
		Prerender:    2,
		Orientation:  viewport.OrientationPortrait.String(),
		Device:       "phone",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern to run")
	fs.IntVar(&c.TPS, "tps", c.TPS, "pattern steps per second")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
	fs.IntVar(&c.Width, "w", c.Width, "viewport width in pixels")
	fs.IntVar(&c.Height, "h", c.Height, "viewport height in pixels")
	fs.IntVar(&c.Cell, "cell", c.Cell, "cell size in pixels")
	fs.IntVar(&c.Padding, "padding", c.Padding, "padding inside each cell in pixels")
	fs.StringVar(&c.Shape, "shape", c.Shape, "cell shape: square, inset, circle or rounded")
	fs.Float64Var(&c.Fade, "fade", c.Fade, "antialias falloff width in pixels")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "device pixels per input point")
	fs.Float64Var(&c.Transparency, "transparency", c.Transparency, "background transparency in [0,1]")
	fs.StringVar(&c.Background, "bg", c.Background, "background color (#rrggbb or #rrggbbaa)")
	fs.StringVar(&c.Foreground, "fg", c.Foreground, "initial cell color")
	fs.StringVar(&c.Mode, "mode", c.Mode, "random color mode: full, grayscale or monochrome")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random colors")
	fs.IntVar(&c.Prerender, "prerender", c.Prerender, "shuffled frames kept ready (0 disables)")
	fs.StringVar(&c.Orientation, "orientation", c.Orientation, "input orientation: portrait, upside-down, landscape-left, landscape-right, face-up or face-down")
	fs.StringVar(&c.Device, "device", c.Device, "device class for upside-down input: phone or tablet")
}

// Engine converts the flags into an engine configuration.
func (c *Config) Engine() (engine.Config, error) {
	shape, ok := tile.ParseShape(c.Shape)
	if !ok {
		return engine.Config{}, fmt.Errorf("-shape: unknown shape %q", c.Shape)
	}
	mode, ok := core.ParseColorMode(c.Mode)
	if !ok {
		return engine.Config{}, fmt.Errorf("-mode: unknown color mode %q", c.Mode)
	}
	bg, err := core.ParseColor(c.Background)
	if err != nil {
		return engine.Config{}, fmt.Errorf("-bg: %w", err)
	}
	fg, err := core.ParseColor(c.Foreground)
	if err != nil {
		return engine.Config{}, fmt.Errorf("-fg: %w", err)
	}
	cfg := engine.Config{
		ViewportWidth:  c.Width,
		ViewportHeight: c.Height,
		Background:     bg,
		Foreground:     fg,
		CellSize:       c.Cell,
		Padding:        c.Padding,
		Shape:          shape,
		Fade:           c.Fade,
		Columns:        c.Cols,
		Rows:           c.Rows,
		Scale:          c.Scale,
		Transparency:   c.Transparency,
		ColorMode:      mode,
		Seed:           c.Seed,
		Prerender:      c.Prerender,
	}
	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}

// Orient applies the -orientation and -device flags to eng.
func (c *Config) Orient(eng *engine.Engine) error {
	o, ok := viewport.ParseOrientation(c.Orientation)
	if !ok {
		return fmt.Errorf("-orientation: unknown orientation %q", c.Orientation)
	}
	dev, ok := viewport.ParseDevice(c.Device)
	if !ok {
		return fmt.Errorf("-device: unknown device %q", c.Device)
	}
	eng.SetOrientation(o, dev)
	return nil
}

// SetupLogging routes engine logs to stderr, at debug level when verbose.
func (c *Config) SetupLogging() {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
