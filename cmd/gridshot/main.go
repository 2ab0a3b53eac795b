package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cellgrid/internal/app"
	"cellgrid/internal/engine"
	"cellgrid/internal/pattern"
	"cellgrid/internal/sink"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	out := flag.String("out", "grid.png", "output file (.png or .zst frame stream)")
	magnify := flag.Int("magnify", 1, "PNG upscale factor")
	pan := flag.String("pan", "", "pixel pan applied before rendering, as dx,dy")
	zoom := flag.Float64("zoom", 1, "zoom factor applied before rendering")
	frames := flag.Int("frames", 1, "pattern steps to record in a frame stream")
	flag.Parse()
	cfg.SetupLogging()

	factory, ok := pattern.Lookup(cfg.Pattern)
	if !ok {
		log.Fatalf("unknown pattern %q (have %v)", cfg.Pattern, pattern.Names())
	}
	ecfg, err := cfg.Engine()
	if err != nil {
		log.Fatal(err)
	}
	eng, err := engine.New(ecfg)
	if err != nil {
		log.Fatal(err)
	}
	p := factory(nil)
	eng.ResetPattern(p)

	if *zoom != 1 {
		eng.ZoomEnd(*zoom)
	}
	if *pan != "" {
		dx, dy, err := parsePan(*pan)
		if err != nil {
			log.Fatal(err)
		}
		eng.Shift(dx, dy)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".png":
		if err := eng.Present(sink.PNG{W: f, Magnify: *magnify}); err != nil {
			log.Fatal(err)
		}
	case ".zst":
		fw, err := sink.NewFrameWriter(f)
		if err != nil {
			log.Fatal(err)
		}
		for i := 0; i < max(*frames, 1); i++ {
			if i > 0 {
				eng.StepPattern(p)
			}
			if err := eng.Present(fw); err != nil {
				log.Fatal(err)
			}
		}
		if err := fw.Close(); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d frames to %s\n", fw.Frames(), *out)
	default:
		log.Fatalf("-out: unsupported extension %q", filepath.Ext(*out))
	}

	hits, misses := eng.TileStats()
	log.Printf("tile cache: %d hits, %d misses", hits, misses)
}

func parsePan(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("-pan: want dx,dy, got %q", s)
	}
	dx, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("-pan: %w", err)
	}
	dy, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("-pan: %w", err)
	}
	return dx, dy, nil
}
