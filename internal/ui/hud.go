//go:build ebiten

package ui

import (
	"image/color"

	"ecs-tilemap/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 15
)

// HUD renders the storage statistics panel on the right of the screen.
type HUD struct {
	source     core.ParameterProvider
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []string
	visible    bool
}

// NewHUD constructs a HUD reading from source.
func NewHUD(source core.ParameterProvider, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{source: source, width: width, visible: true}
}

// SetSource swaps the provider, e.g. after a snapshot is loaded.
func (h *HUD) SetSource(source core.ParameterProvider) {
	if h != nil {
		h.source = source
	}
}

// Toggle shows or hides the panel.
func (h *HUD) Toggle() {
	if h != nil {
		h.visible = !h.visible
	}
}

// Update refreshes the cached lines from the provider.
func (h *HUD) Update() {
	if h == nil || h.source == nil {
		return
	}
	h.lines = ParameterLines(h.source.Parameters())
}

// Draw paints the panel anchored to the right edge of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.width <= 0 || !h.visible {
		return
	}
	height := screen.Bounds().Dy()
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 220})

	face := basicfont.Face7x13
	y := panelPadding + 10
	header := color.RGBA{R: 200, G: 200, B: 210, A: 255}
	body := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	for _, line := range h.lines {
		c := body
		if len(line) > 0 && line[0] != ' ' {
			c = header
		}
		text.Draw(h.panel, line, face, panelPadding, y, c)
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx()-h.width), 0)
	screen.DrawImage(h.panel, op)
}
