package engine

import (
	"seehuhn.de/go/geom/vec"

	"cellgrid/internal/core"
	"cellgrid/internal/viewport"
)

// orientationState is the host orientation input applied to points before
// they are mapped to cells.
type orientationState struct {
	current, prev viewport.Orientation
	device        viewport.Device
	origin        vec.Vec2
	// extent is the portrait size of the image in points. Zero means the
	// viewport size.
	extent vec.Vec2
}

// SetOrientation records a device orientation change. The orientation in
// effect so far becomes the previous one, which flat and upside-down
// readings fall back to.
func (e *Engine) SetOrientation(o viewport.Orientation, dev viewport.Device) {
	if o == e.orient.current && dev == e.orient.device {
		return
	}
	e.orient.prev = e.orient.current
	e.orient.current = o
	e.orient.device = dev
	core.Logger().Debug("orientation", "current", o.String(), "prev", e.orient.prev.String(),
		"transform", viewport.Resolve(o, e.orient.prev, dev))
}

// Orientation returns the current and previous orientations.
func (e *Engine) Orientation() (current, prev viewport.Orientation) {
	return e.orient.current, e.orient.prev
}

// SetImageFrame places the rendered image within the input surface. origin
// is the image's offset and extent its portrait size, both in points. A
// zero extent uses the viewport size.
func (e *Engine) SetImageFrame(origin, extent vec.Vec2) {
	e.orient.origin = origin
	e.orient.extent = extent
}

// normalize maps a raw input point into image coordinates.
func (e *Engine) normalize(p vec.Vec2) vec.Vec2 {
	extent := e.orient.extent
	if extent == (vec.Vec2{}) {
		extent = vec.Vec2{
			X: float64(e.cfg.ViewportWidth) / e.cfg.Scale,
			Y: float64(e.cfg.ViewportHeight) / e.cfg.Scale,
		}
	}
	return viewport.Normalize(p, e.orient.origin, extent, e.orient.current, e.orient.prev, e.orient.device)
}
