package engine

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"cellgrid/internal/core"
)

type dragState struct {
	active bool
	last   vec.Vec2
	// restX, restY carry the sub-pixel part of the drag between events.
	restX, restY float64
}

// Tap paints the cell under p with a random color.
func (e *Engine) Tap(p vec.Vec2) bool {
	gc, ok := e.Locate(p)
	if !ok {
		return false
	}
	return e.WriteCell(gc.X, gc.Y, core.RandomColor(e.rng, e.cfg.ColorMode), e.bg, true)
}

// DoubleTap resets pan and zoom.
func (e *Engine) DoubleTap() { e.ResetView() }

// DragStart begins a pan gesture at p.
func (e *Engine) DragStart(p vec.Vec2) {
	e.drag = dragState{active: true, last: p}
}

// Drag pans the view by the movement since the previous drag event. Points
// are scaled to pixels and fractions are carried to the next event.
func (e *Engine) Drag(p vec.Vec2) {
	if !e.drag.active {
		e.DragStart(p)
		return
	}
	fx := (p.X-e.drag.last.X)*e.cfg.Scale + e.drag.restX
	fy := (p.Y-e.drag.last.Y)*e.cfg.Scale + e.drag.restY
	dx, dy := math.Trunc(fx), math.Trunc(fy)
	e.drag.restX, e.drag.restY = fx-dx, fy-dy
	e.drag.last = p
	e.Shift(int(dx), int(dy))
}

// DragEnd applies the final movement and ends the gesture.
func (e *Engine) DragEnd(p vec.Vec2) {
	if e.drag.active {
		e.Drag(p)
	}
	e.drag = dragState{}
	e.frames.Replenish()
}

// Dragging reports whether a pan gesture is in progress.
func (e *Engine) Dragging() bool { return e.drag.active }

// ZoomChanged reports an intermediate pinch factor.
func (e *Engine) ZoomChanged(factor float64) { e.Zoom(factor) }

// ZoomEnded reports the final pinch factor.
func (e *Engine) ZoomEnded(factor float64) { e.ZoomEnd(factor) }
