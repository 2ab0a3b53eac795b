package engine

import (
	"strconv"

	"cellgrid/internal/core"
	"cellgrid/internal/tile"
)

var shapeOrder = []tile.Shape{tile.ShapeSquare, tile.ShapeInset, tile.ShapeCircle, tile.ShapeRounded}

// Parameters returns the current settings for display.
func (e *Engine) Parameters() core.ParameterSnapshot {
	st := e.view.State
	groups := []core.ParameterGroup{
		{
			Name: "Viewport",
			Params: []core.Parameter{
				intParam("w", "Width", e.cfg.ViewportWidth),
				intParam("h", "Height", e.cfg.ViewportHeight),
				floatParam("scale", "Scale", e.cfg.Scale),
				floatParam("transparency", "Transparency", e.cfg.Transparency),
			},
		},
		{
			Name: "Tile",
			Params: []core.Parameter{
				intParam("cell", "Cell size", e.view.CellSize),
				intParam("padding", "Padding", e.cfg.Padding),
				intParam("shape", "Shape", shapeIndex(e.cfg.Shape)),
				stringParam("shape_name", "Shape name", e.cfg.Shape.String()),
				floatParam("fade", "Edge fade", e.cfg.Fade),
			},
		},
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("cols", "Columns", e.cfg.Columns),
				intParam("rows", "Rows", e.cfg.Rows),
				stringParam("mode", "Color mode", e.cfg.ColorMode.String()),
				int64Param("seed", "Seed", e.cfg.Seed),
			},
		},
		{
			Name: "Pan",
			Params: []core.Parameter{
				intParam("cell_x", "Cell X", st.CellX),
				intParam("cell_y", "Cell Y", st.CellY),
				intParam("pixel_x", "Pixel X", st.PixelX),
				intParam("pixel_y", "Pixel Y", st.PixelY),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the parameters that can be adjusted at runtime.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "cell", Label: "Cell size", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: float64(e.cfg.MaxCellSize()), HasMax: true},
		{Key: "padding", Label: "Padding", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "shape", Label: "Shape", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: float64(len(shapeOrder) - 1), HasMax: true},
		{Key: "fade", Label: "Edge fade", Type: core.ParamTypeFloat, Step: 0.25, Min: 0.25, HasMin: true, Max: 8, HasMax: true},
		{Key: "transparency", Label: "Transparency", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}
}

// SetIntParameter applies an integer parameter without resetting the grid.
func (e *Engine) SetIntParameter(key string, value int) bool {
	switch key {
	case "cell":
		if value < 1 || value > e.cfg.MaxCellSize() {
			return false
		}
		e.zoomBase = 0
		e.zoomTo(value)
	case "padding":
		if value < 0 {
			return false
		}
		e.cfg.Padding = value
		e.applyTile()
	case "shape":
		if value < 0 || value >= len(shapeOrder) {
			return false
		}
		e.cfg.Shape = shapeOrder[value]
		e.applyTile()
	default:
		return false
	}
	e.frames.Replenish()
	return true
}

// SetFloatParameter applies a floating point parameter without resetting
// the grid.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "fade":
		if value <= 0 {
			return false
		}
		e.cfg.Fade = value
		e.applyTile()
	case "transparency":
		if value < 0 || value > 1 {
			return false
		}
		e.cfg.Transparency = value
		e.bg = e.cfg.background()
		e.layoutChanged()
	default:
		return false
	}
	e.frames.Replenish()
	return true
}

func shapeIndex(s tile.Shape) int {
	for i, o := range shapeOrder {
		if o == s {
			return i
		}
	}
	return 0
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
