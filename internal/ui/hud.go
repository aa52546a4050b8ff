//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"mad-fractals/internal/core"
	"mad-fractals/internal/viewport"
)

const lineHeight = 16

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	alertColor = color.RGBA{R: 255, G: 96, B: 96, A: 255}
	shadeColor = color.RGBA{A: 128}
)

// HUD renders the side panel to the right of the canvas.
type HUD struct {
	width int
	panel *ebiten.Image

	title    string
	snapshot core.ParameterSnapshot
	input    string
	alert    string
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int { return h.width }

// Update refreshes the panel contents from the active simulation.
func (h *HUD) Update(sim core.Sim, input, alert string) {
	h.title = strings.ToUpper(sim.Name())
	h.snapshot = core.ParameterSnapshot{}
	if provider, ok := sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
	}
	h.input = input
	h.alert = alert
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	y := lineHeight
	line := func(s string, clr color.Color) {
		text.Draw(h.panel, s, basicfont.Face7x13, 8, y, clr)
		y += lineHeight
	}
	line(h.title, textColor)
	line("tab: switch  r: reset", textColor)
	y += lineHeight / 2
	for _, group := range h.snapshot.Groups {
		line(group.Name, textColor)
		for _, p := range group.Params {
			line(fmt.Sprintf("  %s: %s", p.Label, p.Value), textColor)
		}
	}
	y += lineHeight / 2
	line("rule> "+h.input+"_", textColor)
	if h.alert != "" {
		for _, part := range wrap(h.alert, (h.width-16)/7) {
			line(part, alertColor)
		}
		line("(esc to dismiss)", alertColor)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// DrawSelection shades the zoom rectangle on the canvas.
func DrawSelection(screen *ebiten.Image, rect viewport.SelectionRect, scale int) {
	s := float32(scale)
	vector.DrawFilledRect(screen, float32(rect.X)*s, float32(rect.Y)*s, float32(rect.W)*s, float32(rect.H)*s, shadeColor, false)
}
