//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"cellgrid/internal/app"
	"cellgrid/internal/engine"
	"cellgrid/internal/pattern"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
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
	if err := cfg.Orient(eng); err != nil {
		log.Fatal(err)
	}

	p := factory(nil)
	game := app.New(eng, p, cfg.TPS)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("cellgrid — " + p.Name())
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
