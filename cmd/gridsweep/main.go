package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"cellgrid/internal/engine"
	"cellgrid/internal/tile"
)

type paramSet struct {
	shape   tile.Shape
	cell    int
	padding int
}

func (p paramSet) String() string {
	return fmt.Sprintf("shape=%s cell=%d padding=%d", p.shape, p.cell, p.padding)
}

type scenarioResult struct {
	params   paramSet
	shuffle  time.Duration
	pan      time.Duration
	hits     uint64
	misses   uint64
	err      error
	coverage float64
}

func main() {
	frames := flag.Int("frames", 60, "frames rendered per scenario and phase")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("w", 960, "viewport width in pixels")
	height := flag.Int("h", 640, "viewport height in pixels")
	flag.Parse()

	base := engine.DefaultConfig()
	base.ViewportWidth = *width
	base.ViewportHeight = *height
	base.Prerender = 0

	shapes := []tile.Shape{tile.ShapeSquare, tile.ShapeInset, tile.ShapeCircle, tile.ShapeRounded}
	cellOptions := []int{4, 8, 16, 32, 64}
	paddingOptions := []int{0, 1, 3}

	var sets []paramSet
	for _, shape := range shapes {
		for _, cell := range cellOptions {
			for _, padding := range paddingOptions {
				sets = append(sets, paramSet{shape: shape, cell: cell, padding: padding})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d frames)\n", len(sets), *workers, *frames)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, *frames)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("skip %s: %v", res.params, res.err)
			continue
		}
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].shuffle+all[i].pan > all[j].shuffle+all[j].pan })
	elapsed := time.Since(start)

	fmt.Printf("\nSlowest first (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, res := range all {
		fmt.Printf("%2d) shuffle=%s/frame pan=%s/frame tiles=%d/%d coverage=%.2f %s\n",
			i+1, perFrame(res.shuffle, *frames), perFrame(res.pan, *frames), res.hits, res.hits+res.misses, res.coverage, res.params)
	}
}

// runScenario renders frames full shuffles followed by frames one-pixel pans
// and reports the time spent in each phase.
func runScenario(base engine.Config, params paramSet, frames int) scenarioResult {
	cfg := base
	cfg.Shape = params.shape
	cfg.CellSize = params.cell
	cfg.Padding = params.padding

	res := scenarioResult{params: params}
	eng, err := engine.New(cfg)
	if err != nil {
		res.err = err
		return res
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		eng.Shuffle()
	}
	res.shuffle = time.Since(start)

	start = time.Now()
	for i := 0; i < frames; i++ {
		dx := 1
		if (i/params.cell)%2 == 1 {
			dx = -1
		}
		eng.Shift(dx, 0)
	}
	res.pan = time.Since(start)

	res.hits, res.misses = eng.TileStats()
	res.coverage = coverage(eng.Pix(), eng.Background())
	return res
}

func perFrame(d time.Duration, frames int) time.Duration {
	if frames <= 0 {
		return 0
	}
	return d / time.Duration(frames)
}

// coverage returns the fraction of pixels that differ from the background.
func coverage(pix []byte, bg color.RGBA) float64 {
	n := len(pix) / 4
	if n == 0 {
		return 0
	}
	painted := 0
	for off := 0; off+3 < len(pix); off += 4 {
		if pix[off] != bg.R || pix[off+1] != bg.G || pix[off+2] != bg.B || pix[off+3] != bg.A {
			painted++
		}
	}
	return float64(painted) / float64(n)
}
