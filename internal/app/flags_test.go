package app

import (
	"errors"
	"flag"
	"testing"

	"cellgrid/internal/core"
	"cellgrid/internal/engine"
	"cellgrid/internal/tile"
	"cellgrid/internal/viewport"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cfg
}

func TestDefaultsBuildValidEngineConfig(t *testing.T) {
	cfg, err := parse(t).Engine()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	d := engine.DefaultConfig()
	if cfg.Background != d.Background || cfg.Shape != d.Shape || cfg.CellSize != d.CellSize {
		t.Fatalf("defaults drifted from engine defaults: %+v", cfg)
	}
}

func TestFlagsOverrideEngineConfig(t *testing.T) {
	cfg, err := parse(t, "-shape", "rounded", "-mode", "monochrome", "-cell", "8", "-bg", "#00000080", "-cols", "7").Engine()
	if err != nil {
		t.Fatalf("engine config: %v", err)
	}
	if cfg.Shape != tile.ShapeRounded || cfg.ColorMode != core.ColorModeMonochrome || cfg.CellSize != 8 || cfg.Columns != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Background.A != 0x80 {
		t.Fatalf("expected translucent background, got %v", cfg.Background)
	}
}

func TestFlagErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-shape", "hexagon"},
		{"-mode", "sepia"},
		{"-bg", "red"},
		{"-fg", "#12"},
	} {
		if _, err := parse(t, args...).Engine(); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
	if _, err := parse(t, "-cell", "0").Engine(); !errors.Is(err, engine.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero cell, got %v", err)
	}
}

func TestOrientFlags(t *testing.T) {
	ecfg, err := parse(t).Engine()
	if err != nil {
		t.Fatalf("engine config: %v", err)
	}
	eng, err := engine.New(ecfg)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if err := parse(t, "-orientation", "landscape-left", "-device", "tablet").Orient(eng); err != nil {
		t.Fatalf("orient: %v", err)
	}
	if cur, _ := eng.Orientation(); cur != viewport.OrientationLandscapeLeft {
		t.Fatalf("expected landscape-left, got %v", cur)
	}
	if err := parse(t, "-orientation", "sideways").Orient(eng); err == nil {
		t.Fatalf("expected error for unknown orientation")
	}
	if err := parse(t, "-device", "watch").Orient(eng); err == nil {
		t.Fatalf("expected error for unknown device")
	}
}
