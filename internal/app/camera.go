package app

import "ecs-tilemap/internal/render"

const (
	panSpeed   = 12 // screen pixels per tick
	zoomFactor = 1.05
)

// CameraInput is the set of camera keys held during a frame.
type CameraInput struct {
	Left, Right, Up, Down bool
	ZoomIn, ZoomOut       bool
}

// CameraController advances a camera at a fixed rate regardless of the
// frame rate.
type CameraController struct {
	Camera  render.Camera
	screenW int
	screenH int
}

// NewCameraController centres a camera on the map origin.
func NewCameraController(screenW, screenH int, zoom float64) *CameraController {
	return &CameraController{
		Camera:  render.NewCamera(screenW, screenH, zoom),
		screenW: screenW,
		screenH: screenH,
	}
}

// Apply moves the camera by ticks steps of the held input. Zoom is anchored
// at the screen centre.
func (c *CameraController) Apply(in CameraInput, ticks int) {
	for i := 0; i < ticks; i++ {
		var dx, dy float64
		if in.Left {
			dx -= panSpeed
		}
		if in.Right {
			dx += panSpeed
		}
		if in.Up {
			dy -= panSpeed
		}
		if in.Down {
			dy += panSpeed
		}
		if dx != 0 || dy != 0 {
			c.Camera.Pan(dx, dy)
		}
		cx, cy := float64(c.screenW)/2, float64(c.screenH)/2
		if in.ZoomIn && !in.ZoomOut {
			c.Camera.ZoomAt(zoomFactor, cx, cy)
		}
		if in.ZoomOut && !in.ZoomIn {
			c.Camera.ZoomAt(1/zoomFactor, cx, cy)
		}
	}
}
