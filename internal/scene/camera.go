package scene

import "github.com/chillax-ai/codemap/internal/graph"

// Zoom limits and the per-notch wheel factor.
const (
	ZoomMin       = 0.25
	ZoomMax       = 4.0
	wheelZoomIn   = 1.1
	wheelZoomOut  = 0.9
)

// Camera holds the pan/zoom transform between model space and screen
// space. Wheel zoom is anchored on the cursor: the model point under the
// pointer stays visually fixed across a zoom change.
type Camera struct {
	Pan  graph.Vec2
	Zoom float64
}

// NewCamera returns an identity camera.
func NewCamera() Camera {
	return Camera{Zoom: 1}
}

// ScreenToModel undoes pan and zoom.
func (c Camera) ScreenToModel(p graph.Vec2) graph.Vec2 {
	return graph.Vec2{
		X: (p.X - c.Pan.X) / c.Zoom,
		Y: (p.Y - c.Pan.Y) / c.Zoom,
	}
}

// ModelToScreen applies zoom then pan.
func (c Camera) ModelToScreen(p graph.Vec2) graph.Vec2 {
	return graph.Vec2{
		X: p.X*c.Zoom + c.Pan.X,
		Y: p.Y*c.Zoom + c.Pan.Y,
	}
}

// ApplyWheel updates zoom by one wheel notch and adjusts pan so the
// point under the cursor does not move on screen.
func (c *Camera) ApplyWheel(cursor graph.Vec2, deltaY float64) {
	factor := wheelZoomIn
	if deltaY > 0 {
		factor = wheelZoomOut
	}
	newZoom := clamp(c.Zoom*factor, ZoomMin, ZoomMax)
	ratio := newZoom / c.Zoom
	c.Pan = cursor.Sub(cursor.Sub(c.Pan).Scale(ratio))
	c.Zoom = newZoom
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
