package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"seehuhn.de/go/geom/vec"

	"cellgrid/internal/app"
	"cellgrid/internal/core"
	"cellgrid/internal/engine"
	"cellgrid/internal/pattern"
	"cellgrid/internal/sink"
)

const keyPan = 8

type viewer struct {
	screen  tcell.Screen
	term    *sink.Term
	eng     *engine.Engine
	pattern engine.Pattern
	step    *core.FixedStep
	px      int

	paused  bool
	pressed bool
	moved   bool
	press   vec.Vec2
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	px := flag.Int("px", 4, "viewport pixels per terminal column")
	flag.Parse()
	cfg.SetupLogging()

	factory, ok := pattern.Lookup(cfg.Pattern)
	if !ok {
		log.Fatalf("unknown pattern %q (have %v)", cfg.Pattern, pattern.Names())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)

	v := &viewer{
		screen: screen,
		term:   &sink.Term{Screen: screen},
		step:   core.NewFixedStep(cfg.TPS),
		px:     max(*px, 1),
	}
	cols, rows := screen.Size()
	cfg.Width, cfg.Height = v.viewport(cols, rows)
	ecfg, err := cfg.Engine()
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	v.eng, err = engine.New(ecfg)
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	if err := cfg.Orient(v.eng); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	v.pattern = factory(nil)
	v.eng.ResetPattern(v.pattern)

	v.run()
	screen.Fini()
}

// viewport returns the pixel size that maps each half block to a px×px
// square.
func (v *viewer) viewport(cols, rows int) (int, int) {
	return max(cols, 1) * v.px, max(rows, 1) * 2 * v.px
}

func (v *viewer) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.handle(ev) {
				return
			}
		case <-ticker.C:
			if !v.paused && v.step.ShouldStep() {
				v.eng.StepPattern(v.pattern)
			}
			if err := v.eng.Present(v.term); err != nil {
				core.Logger().Error("present", "err", err)
			}
		}
	}
}

// handle processes one terminal event. It returns false to quit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.key(ev)
	case *tcell.EventMouse:
		v.mouse(ev)
	case *tcell.EventResize:
		v.resize()
	}
	return true
}

func (v *viewer) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.eng.Shift(keyPan, 0)
	case tcell.KeyRight:
		v.eng.Shift(-keyPan, 0)
	case tcell.KeyUp:
		v.eng.Shift(0, keyPan)
	case tcell.KeyDown:
		v.eng.Shift(0, -keyPan)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 's':
			v.eng.Shuffle()
		case 'r':
			v.eng.ResetPattern(v.pattern)
		case '0':
			v.eng.ResetView()
		case '+', '=':
			v.eng.ZoomStep(1)
		case '-':
			v.eng.ZoomStep(-1)
		}
	}
	return true
}

// mouse maps button 1 to taps and drags and the wheel to zoom steps.
func (v *viewer) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	p, ok := v.point(col, row)
	if !ok {
		return
	}
	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		v.eng.ZoomStep(1)
	case btn&tcell.WheelDown != 0:
		v.eng.ZoomStep(-1)
	case btn&tcell.Button1 != 0:
		if !v.pressed {
			v.pressed, v.moved, v.press = true, false, p
			v.eng.DragStart(p)
			return
		}
		if p != v.press {
			v.moved = true
		}
		v.eng.Drag(p)
	case v.pressed:
		v.pressed = false
		v.eng.DragEnd(p)
		if !v.moved {
			v.eng.Tap(p)
		}
	}
}

// point converts a terminal cell to an engine input point.
func (v *viewer) point(col, row int) (vec.Vec2, bool) {
	p, ok := v.term.Point(col, row)
	if !ok {
		return vec.Vec2{}, false
	}
	s := v.eng.Config().Scale
	return vec.Vec2{X: p.X / s, Y: p.Y / s}, true
}

func (v *viewer) resize() {
	v.screen.Sync()
	cols, rows := v.screen.Size()
	cfg := v.eng.Config()
	cfg.ViewportWidth, cfg.ViewportHeight = v.viewport(cols, rows)
	if err := v.eng.Configure(cfg); err != nil {
		core.Logger().Warn("resize", "cols", cols, "rows", rows, "err", err)
		return
	}
	v.eng.ResetPattern(v.pattern)
}
