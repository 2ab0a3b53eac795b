// Package pattern provides cell color programs that animate a grid.
package pattern

import (
	"image/color"
	"sort"
	"strconv"

	"cellgrid/internal/core"
)

// Pattern recolors a grid once on Reset and then incrementally on every Step.
type Pattern interface {
	Name() string
	Reset(g *core.Grid, rng *core.RNG, mode core.ColorMode)
	// Step returns the indices of the cells whose foreground changed.
	Step(g *core.Grid) []int
}

// Factory constructs a Pattern using an optional configuration map.
type Factory func(cfg map[string]string) Pattern

var patterns = map[string]Factory{}

// Register adds a pattern factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	patterns[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := patterns[name]
	return f, ok
}

// Names lists the registered patterns in sorted order.
func Names() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intOption(cfg map[string]string, key string, def int) int {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func floatOption(cfg map[string]string, key string, def float64) float64 {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func colorOption(cfg map[string]string, key string, def color.RGBA) color.RGBA {
	if v, ok := cfg[key]; ok {
		if parsed, err := core.ParseColor(v); err == nil {
			return parsed
		}
	}
	return def
}
