//go:build ebiten

package ui

import (
	"image/color"

	"ecs-tilemap/internal/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay shows the tile under the cursor and a status line.
type Overlay struct {
	lines  []string
	status string
	pixel  *ebiten.Image
	show   bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{show: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Toggle shows or hides the inspector.
func (o *Overlay) Toggle() { o.show = !o.show }

// SetStatus replaces the bottom status line.
func (o *Overlay) SetStatus(s string) { o.status = s }

// Update inspects m at the world point under the cursor.
func (o *Overlay) Update(m *tilemap.Map, cursor tilemap.Vec2) {
	if !o.show {
		o.lines = nil
		return
	}
	o.lines = InspectLines(m, cursor)
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	face := basicfont.Face7x13
	if len(o.lines) > 0 {
		w := 0
		for _, l := range o.lines {
			if n := text.BoundString(face, l).Dx(); n > w {
				w = n
			}
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(w+2*panelPadding), float64(len(o.lines)*lineHeight+panelPadding))
		op.GeoM.Translate(4, 4)
		op.ColorScale.ScaleWithColor(color.RGBA{R: 0, G: 0, B: 0, A: 180})
		screen.DrawImage(o.pixel, op)
		for i, l := range o.lines {
			text.Draw(screen, l, face, 4+panelPadding, 4+lineHeight*(i+1), color.White)
		}
	}
	if o.status != "" {
		y := screen.Bounds().Dy() - panelPadding
		text.Draw(screen, o.status, face, panelPadding, y, color.RGBA{R: 230, G: 230, B: 160, A: 255})
	}
}
