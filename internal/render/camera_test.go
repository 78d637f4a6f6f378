package render

import (
	"math"
	"testing"
)

func TestCameraPanScalesWithZoom(t *testing.T) {
	c := NewCamera(200, 100, 2)
	if c.X != -50 || c.Y != -25 {
		t.Fatalf("centred camera at (%v,%v)", c.X, c.Y)
	}
	c.Pan(10, -20)
	if c.X != -45 || c.Y != -35 {
		t.Fatalf("after pan (%v,%v)", c.X, c.Y)
	}
}

func TestCameraZoomKeepsAnchor(t *testing.T) {
	c := NewCamera(640, 480, 1)
	wx, wy := c.ScreenToWorld(100, 300)
	c.ZoomAt(1.5, 100, 300)
	gx, gy := c.ScreenToWorld(100, 300)
	if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
		t.Fatalf("anchor moved from (%v,%v) to (%v,%v)", wx, wy, gx, gy)
	}
	c.ZoomAt(1000, 0, 0)
	if c.Zoom != maxZoom {
		t.Fatalf("zoom = %v, want clamp to %v", c.Zoom, maxZoom)
	}
	if NewCamera(1, 1, 0).Zoom != 1 {
		t.Fatal("non-positive zoom must fall back to 1")
	}
}
