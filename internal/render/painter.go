//go:build ebiten

package render

import (
	"image/color"

	"ecs-tilemap/internal/core"
	"ecs-tilemap/internal/ecs"
	"ecs-tilemap/internal/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
)

// MinimapPainter keeps one pixel per cell in an offscreen image.
type MinimapPainter struct {
	size core.TilemapSize
	img  *ebiten.Image
	buf  []byte
}

// NewMinimapPainter allocates a painter for a map of the given size.
func NewMinimapPainter(size core.TilemapSize) *MinimapPainter {
	w, h := int(size.X), int(size.Y)
	mp := &MinimapPainter{size: size, buf: make([]byte, 4*w*h)}
	mp.img = ebiten.NewImage(w, h)
	return mp
}

// Blit rasterises m and draws it at (x, y) scaled by scale.
func (mp *MinimapPainter) Blit(dst *ebiten.Image, m *tilemap.Map, palette []color.RGBA, x, y, scale float64) {
	if m.Size != mp.size {
		return
	}
	FillMinimapRGBA(mp.buf, m, palette)
	mp.img.WritePixels(mp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	dst.DrawImage(mp.img, op)
}

// TilePainter draws the visible tiles of every layer as flat quads.
type TilePainter struct {
	pixel   *ebiten.Image
	palette []color.RGBA
	drawn   int
}

// NewTilePainter constructs a painter using the given palette.
func NewTilePainter(palette []color.RGBA) *TilePainter {
	p := &TilePainter{palette: palette}
	p.pixel = ebiten.NewImage(1, 1)
	p.pixel.Fill(color.White)
	return p
}

// Drawn reports how many tiles the last Draw call submitted.
func (p *TilePainter) Drawn() int { return p.drawn }

// Draw renders m through cam. Layers are drawn bottom to top and only the
// cells intersecting the screen are looked up.
func (p *TilePainter) Draw(dst *ebiten.Image, m *tilemap.Map, cam Camera) {
	p.drawn = 0
	sw, sh := dst.Bounds().Dx(), dst.Bounds().Dy()
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	lo := tilemap.Vec2{X: float32(cam.X), Y: float32(cam.Y)}
	hi := tilemap.Vec2{X: float32(cam.X + float64(sw)/zoom), Y: float32(cam.Y + float64(sh)/zoom)}

	op := &ebiten.DrawImageOptions{}
	for _, l := range m.Layers {
		from, to, ok := l.VisibleRange(lo, hi)
		if !ok {
			continue
		}
		qw, qh := float64(l.TileSize.X), float64(l.TileSize.Y)
		if l.Type != tilemap.Square {
			qh /= 2
		}
		for y := from.Y; y <= to.Y; y++ {
			for x := from.X; x <= to.X; x++ {
				pos := core.TilePos{X: x, Y: y}
				e := l.Storage.Get(pos)
				if e == ecs.NoEntity {
					continue
				}
				col, visible := TileColor(m, l, e, p.palette)
				if !visible {
					continue
				}
				wp := l.WorldPos(pos)
				op.GeoM.Reset()
				op.GeoM.Scale((qw-1)*zoom, (qh-1)*zoom)
				op.GeoM.Translate((float64(wp.X)-cam.X)*zoom, (float64(wp.Y)-cam.Y)*zoom)
				op.ColorScale.Reset()
				op.ColorScale.ScaleWithColor(col)
				dst.DrawImage(p.pixel, op)
				p.drawn++
			}
		}
	}
}
