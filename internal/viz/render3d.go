package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	Distance         float64
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 15, Near: 0.1, RotX: -0.4, RotY: 0.6, Zoom: 0.3}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.01, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p r3.Vec) r3.Vec {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to sub-pixel coordinates of a sw x sh
// surface. Returns x, y, depth, and visibility.
func (c *Camera) Project(p r3.Vec, sw, sh int) (int, int, float64, bool) {
	rot := r3.Scale(c.Zoom, c.RotatePoint(p))
	dist := c.Distance
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := math.Min(float64(sw), float64(sh))
	pScale := minDim / 3.0
	// braille sub-pixels are twice as tall as they are wide on screen
	sx := int(rot.X*scale*pScale*2) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// DrawAxes draws short x, y and z axes through the origin.
func DrawAxes(cv *Canvas, cam *Camera, length float64) {
	w, h := cv.PixelSize()
	ox, oy, _, ok := cam.Project(r3.Vec{}, w, h)
	if !ok {
		return
	}
	for _, axis := range []r3.Vec{{X: length}, {Y: length}, {Z: length}} {
		x, y, _, vis := cam.Project(axis, w, h)
		if vis {
			cv.DrawLine(ox, oy, x, y, -1)
		}
	}
}
