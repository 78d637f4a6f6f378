package render

import (
	"image/color"

	"ecs-tilemap/internal/ecs"
	"ecs-tilemap/internal/tilemap"
)

// DefaultPalette maps texture indices to flat colors.
var DefaultPalette = []color.RGBA{
	{R: 70, G: 52, B: 32, A: 255},    // ground
	{R: 130, G: 130, B: 130, A: 255}, // rubble
	{R: 60, G: 150, B: 70, A: 255},   // shrubs
	{R: 180, G: 180, B: 200, A: 255}, // ridges
	{R: 240, G: 240, B: 250, A: 255}, // peaks
}

// paletteColor clamps idx into the palette. An empty palette yields
// transparent black.
func paletteColor(palette []color.RGBA, idx int) color.RGBA {
	if len(palette) == 0 || idx < 0 {
		return color.RGBA{}
	}
	if idx >= len(palette) {
		idx = len(palette) - 1
	}
	return palette[idx]
}

// FillMinimapRGBA writes one pixel per cell into buf (4 bytes per pixel,
// row-major), colored by the topmost layer holding a tile there. Cells with no
// tile are cleared to transparent black. buf must hold Size.Count()*4 bytes.
func FillMinimapRGBA(buf []byte, m *tilemap.Map, palette []color.RGBA) {
	for i := range buf {
		buf[i] = 0
	}
	// Lower layers first so upper layers overwrite them.
	for _, l := range m.Layers {
		for pos, e := range l.Storage.Occupied() {
			tex := l.Texture
			if b, ok := m.World.Tile(e); ok {
				if !b.Visible {
					continue
				}
				tex = b.Texture
			}
			col := paletteColor(palette, tex)
			base := (int(pos.Y)*int(m.Size.X) + int(pos.X)) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

// TileColor resolves the color of tile e on layer l.
func TileColor(m *tilemap.Map, l *tilemap.Layer, e ecs.Entity, palette []color.RGBA) (color.RGBA, bool) {
	b, ok := m.World.Tile(e)
	if !ok {
		return paletteColor(palette, l.Texture), true
	}
	if !b.Visible {
		return color.RGBA{}, false
	}
	return paletteColor(palette, b.Texture), true
}
