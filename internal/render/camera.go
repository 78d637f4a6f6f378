package render

import "ecs-tilemap/internal/tilemap"

const (
	minZoom = 0.05
	maxZoom = 8
)

// Camera maps world space to screen space: screen = (world - (X, Y)) * Zoom.
type Camera struct {
	X, Y float64
	Zoom float64
}

// NewCamera returns a camera centred on the world origin for a screen of
// the given size.
func NewCamera(screenW, screenH int, zoom float64) Camera {
	c := Camera{Zoom: clampZoom(zoom)}
	c.X = -float64(screenW) / 2 / c.Zoom
	c.Y = -float64(screenH) / 2 / c.Zoom
	return c
}

// Pan moves the camera by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// ZoomAt multiplies the zoom by factor, keeping the world point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float64) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clampZoom(c.Zoom * factor)
	c.X = wx - sx/c.Zoom
	c.Y = wy - sy/c.Zoom
}

// ScreenToWorld converts a screen position to world space.
func (c Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return c.X + sx/c.Zoom, c.Y + sy/c.Zoom
}

// WorldPoint is ScreenToWorld returning a tilemap vector.
func (c Camera) WorldPoint(sx, sy float64) tilemap.Vec2 {
	x, y := c.ScreenToWorld(sx, sy)
	return tilemap.Vec2{X: float32(x), Y: float32(y)}
}

func clampZoom(z float64) float64 {
	if z <= 0 {
		return 1
	}
	if z < minZoom {
		return minZoom
	}
	if z > maxZoom {
		return maxZoom
	}
	return z
}
