package viewport

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Orientation is the device orientation reported by the host platform.
type Orientation int

const (
	OrientationUnknown Orientation = iota
	OrientationPortrait
	OrientationUpsideDown
	OrientationLandscapeLeft
	OrientationLandscapeRight
	OrientationFaceUp
	OrientationFaceDown
)

var orientationNames = [...]string{"unknown", "portrait", "upside-down", "landscape-left", "landscape-right", "face-up", "face-down"}

func (o Orientation) String() string {
	if o < 0 || int(o) >= len(orientationNames) {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// ParseOrientation maps a name such as "landscape-left" to its Orientation.
func ParseOrientation(name string) (Orientation, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range orientationNames {
		if n == name {
			return Orientation(i), true
		}
	}
	return OrientationUnknown, false
}

// IsLandscape reports whether o is one of the landscape orientations.
func (o Orientation) IsLandscape() bool {
	return o == OrientationLandscapeLeft || o == OrientationLandscapeRight
}

// Device distinguishes hardware whose interface follows the device upside
// down from hardware that keeps its last usable orientation.
type Device int

const (
	DevicePhone Device = iota
	DeviceTablet
)

// ParseDevice maps "phone" or "tablet" to its Device.
func ParseDevice(name string) (Device, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "phone":
		return DevicePhone, true
	case "tablet":
		return DeviceTablet, true
	}
	return DevicePhone, false
}

// Transform is one of the five point transforms applied before mapping.
type Transform int

const (
	TransformPortrait Transform = iota
	// TransformUpsideDown rotates by 180°.
	TransformUpsideDown
	// TransformUpsideDownLocked is upside down on a device whose interface
	// stayed in portrait; points pass through unchanged.
	TransformUpsideDownLocked
	TransformLandscapeLeft
	TransformLandscapeRight
)

// Resolve picks the transform for the current and previous orientation.
// Flat and unknown orientations inherit the previous one. Upside down
// rotates on tablets; on phones the interface keeps its last landscape
// orientation, or portrait.
func Resolve(o, prev Orientation, dev Device) Transform {
	switch o {
	case OrientationFaceUp, OrientationFaceDown, OrientationUnknown:
		if prev == o || prev == OrientationFaceUp || prev == OrientationFaceDown || prev == OrientationUnknown {
			return TransformPortrait
		}
		return Resolve(prev, OrientationPortrait, dev)
	case OrientationUpsideDown:
		switch {
		case dev == DeviceTablet:
			return TransformUpsideDown
		case prev == OrientationLandscapeLeft:
			return TransformLandscapeLeft
		case prev == OrientationLandscapeRight:
			return TransformLandscapeRight
		}
		return TransformUpsideDownLocked
	case OrientationLandscapeLeft:
		return TransformLandscapeLeft
	case OrientationLandscapeRight:
		return TransformLandscapeRight
	}
	return TransformPortrait
}

// Matrix returns the affine map of t for a view whose portrait extent is
// (w, h). Landscape-left runs image x along screen y; landscape-right is
// its mirror.
func (t Transform) Matrix(w, h float64) matrix.Matrix {
	switch t {
	case TransformUpsideDown:
		return matrix.Matrix{-1, 0, 0, -1, w, h}
	case TransformLandscapeLeft:
		return matrix.Matrix{0, -1, 1, 0, 0, w}
	case TransformLandscapeRight:
		return matrix.Matrix{0, 1, -1, 0, h, 0}
	}
	return matrix.Identity
}

func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Normalize maps a raw input point into image coordinates. origin is the
// image's offset within the view and extent the view's portrait size. It has
// no hidden state.
func Normalize(p, origin, extent vec.Vec2, o, prev Orientation, dev Device) vec.Vec2 {
	q := vec.Vec2{X: p.X - origin.X, Y: p.Y - origin.Y}
	return apply(Resolve(o, prev, dev).Matrix(extent.X, extent.Y), q)
}
