//go:build ebiten

package app

import (
	"math"
	"time"

	"seehuhn.de/go/geom/vec"

	"cellgrid/internal/core"
	"cellgrid/internal/engine"
	"cellgrid/internal/render"
	"cellgrid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// hudWidth is the width of the parameter panel in points.
	hudWidth = 260
	// dragThreshold is how far the cursor may move before a press becomes a
	// drag, in points.
	dragThreshold   = 4
	doubleTapWindow = 300 * time.Millisecond

	// wheelIdle ends a wheel zoom gesture.
	wheelIdle = 250 * time.Millisecond
	wheelStep = 1.1
	keyPan    = 16
)

// Game adapts an engine and a pattern to the ebiten.Game interface.
type Game struct {
	eng     *engine.Engine
	pattern engine.Pattern
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	step    *core.FixedStep

	paused   bool
	tickOnce bool

	press     vec.Vec2
	pressed   bool
	dragging  bool
	lastTap   time.Time
	wheel     float64
	wheelLast time.Time
}

// New constructs a Game for the provided engine and pattern.
func New(eng *engine.Engine, p engine.Pattern, tps int) *Game {
	w, h := eng.Size()
	g := &Game{
		eng:     eng,
		pattern: p,
		painter: render.NewGridPainter(w, h),
		hud:     ui.NewHUD(p.Name(), eng, hudWidth),
		overlay: ui.NewOverlay(eng, eng.Config().Scale),
		step:    core.NewFixedStep(tps),
	}
	eng.ResetPattern(p)
	return g
}

// Reset recolors the grid from the pattern.
func (g *Game) Reset() {
	g.eng.ResetPattern(g.pattern)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the pattern.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.eng.Shuffle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.eng.ZoomStep(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.eng.ZoomStep(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) {
		g.eng.ResetView()
	}
	g.overlay.Update()
	w, _ := g.viewSize()
	g.hud.Update(w)

	g.updatePanKeys()
	g.updatePointer()
	g.updateWheel()

	if (!g.paused && g.step.ShouldStep()) || g.tickOnce {
		g.eng.StepPattern(g.pattern)
		g.tickOnce = false
	}
	return nil
}

func (g *Game) updatePanKeys() {
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx += keyPan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx -= keyPan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy += keyPan
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy -= keyPan
	}
	if dx != 0 || dy != 0 {
		g.eng.Shift(dx, dy)
	}
}

// updatePointer turns mouse presses into taps, double taps and drags.
func (g *Game) updatePointer() {
	mx, my := ebiten.CursorPosition()
	p := vec.Vec2{X: float64(mx), Y: float64(my)}
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if g.hud.Contains(mx) {
			return
		}
		g.pressed, g.dragging, g.press = true, false, p
	case g.pressed && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if !g.dragging && math.Hypot(p.X-g.press.X, p.Y-g.press.Y) >= dragThreshold {
			g.dragging = true
			g.eng.DragStart(g.press)
		}
		if g.dragging {
			g.eng.Drag(p)
		}
	case g.pressed && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.pressed = false
		if g.dragging {
			g.eng.DragEnd(p)
			return
		}
		now := time.Now()
		if now.Sub(g.lastTap) < doubleTapWindow {
			g.lastTap = time.Time{}
			g.eng.DoubleTap()
			return
		}
		g.lastTap = now
		g.eng.Tap(p)
	}
}

// updateWheel treats a burst of wheel events as one zoom gesture.
func (g *Game) updateWheel() {
	_, yoff := ebiten.Wheel()
	now := time.Now()
	if yoff != 0 {
		if g.wheel == 0 {
			g.wheel = 1
		}
		g.wheel *= math.Pow(wheelStep, yoff)
		g.wheelLast = now
		g.eng.ZoomChanged(g.wheel)
		return
	}
	if g.wheel != 0 && now.Sub(g.wheelLast) > wheelIdle {
		g.eng.ZoomEnded(g.wheel)
		g.wheel = 0
	}
}

// Draw renders the current viewport, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.eng.Present(g.painter); err != nil {
		core.Logger().Error("present", "err", err)
		return
	}
	g.painter.Draw(screen, g.eng.Config().Scale)
	g.overlay.Draw(screen)
	w, h := g.viewSize()
	g.hud.Draw(screen, w, h)
}

// viewSize returns the viewport size in points.
func (g *Game) viewSize() (int, int) {
	w, h := g.eng.Size()
	s := g.eng.Config().Scale
	return int(math.Ceil(float64(w) / s)), int(math.Ceil(float64(h) / s))
}

// Layout returns the logical screen size: the viewport in points plus the
// HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.viewSize()
	return w + g.hud.Width(), h
}
