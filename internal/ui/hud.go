//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"cellgrid/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// ParameterSource supplies the values shown on the HUD.
type ParameterSource interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the viewport. Controls
// reported by a core.ParameterControlsProvider get -/+ buttons; the "Pan"
// group is listed read-only below them.
type HUD struct {
	src   ParameterSource
	title string
	width int

	panel    *ebiten.Image
	pixel    *ebiten.Image
	snapshot core.ParameterSnapshot

	controls     []hudControl
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
}

type hudControl struct {
	control core.ParameterControl
	value   float64
	label   string
	ok      bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for src with the given panel width.
func NewHUD(title string, src ParameterSource, width int) *HUD {
	h := &HUD{src: src, title: title, width: max(width, 0)}
	if h.width == 0 {
		return h
	}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	if provider, ok := src.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, hudControl{control: ctrl, label: "--", top: top, minusRect: minus, plusRect: plus})
		}
	}
	h.intSetter, _ = src.(core.IntParameterSetter)
	h.floatSetter, _ = src.(core.FloatParameterSetter)
	return h
}

// Width returns the panel width in points.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the snapshot and handles button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width == 0 {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.src.Parameters()
	for i := range h.controls {
		c := &h.controls[i]
		p, found := h.snapshot.Lookup(c.control.Key)
		v, err := strconv.ParseFloat(p.Value, 64)
		c.ok = found && err == nil
		c.value = v
		c.label = "--"
		if c.ok {
			c.label = formatValue(c.control, v)
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.panelOffsetX, my)
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case !c.ok:
		case pt.In(c.minusRect):
			h.adjust(c, -1)
			return
		case pt.In(c.plusRect):
			h.adjust(c, 1)
			return
		}
	}
}

// Contains reports whether the screen point lies on the panel.
func (h *HUD) Contains(x int) bool {
	return h != nil && h.width > 0 && x >= h.panelOffsetX
}

func (h *HUD) target(c *hudControl, direction int) (float64, bool) {
	step := c.control.Step
	if step <= 0 {
		step = 1
	}
	t := c.value + float64(direction)*step
	if c.control.HasMin {
		t = math.Max(t, c.control.Min)
	}
	if c.control.HasMax {
		t = math.Min(t, c.control.Max)
	}
	return t, math.Abs(t-c.value) > 1e-9
}

func (h *HUD) adjust(c *hudControl, direction int) {
	t, ok := h.target(c, direction)
	if !ok {
		return
	}
	switch c.control.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil && h.intSetter.SetIntParameter(c.control.Key, int(math.Round(t))) {
			c.value = math.Round(t)
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil && h.floatSetter.SetFloatParameter(c.control.Key, t) {
			c.value = t
		}
	}
	c.label = formatValue(c.control, c.value)
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width == 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	for i := range h.controls {
		c := &h.controls[i]
		y := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, y, labelColor)
		valueColor := labelColor
		if !c.ok {
			valueColor = dimColor
		}
		w := text.BoundString(face, c.label).Dx()
		text.Draw(h.panel, c.label, face, c.minusRect.Min.X-buttonGap-w, y, valueColor)
		_, canDec := h.target(c, -1)
		_, canInc := h.target(c, 1)
		h.drawButton(c.minusRect, "-", c.ok && canDec)
		h.drawButton(c.plusRect, "+", c.ok && canInc)
	}
	y := controlsTop + len(h.controls)*lineHeight + infoSpacing
	for _, g := range h.snapshot.Groups {
		if g.Name != "Pan" {
			continue
		}
		for _, p := range g.Params {
			text.Draw(h.panel, p.Label+": "+p.Value, face, panelPadding, y, dimColor)
			y += infoLine
		}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, labelColor
	if !enabled {
		bg, fg = buttonDisabledColor, dimColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch {
	case ctrl.Step < 0.01:
		precision = 3
	case ctrl.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

var (
	panelColor          = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor          = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor          = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor            = color.RGBA{R: 140, G: 140, B: 150, A: 255}
	buttonColor         = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonDisabledColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 12
	infoLine       = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
