package scene

import "math"

// Camera is a perspective camera looking from Eye at Target with a fixed
// world up of +Y. Width and Height are the viewport size in logical pixels.
type Camera struct {
	Eye    Vec3
	Target Vec3
	FOV    float64 // vertical field of view in degrees
	Width  float64
	Height float64
}

// DefaultCamera looks at the board center from white's side.
func DefaultCamera(width, height float64) Camera {
	return Camera{
		Eye:    Vec3{X: 0, Y: 5, Z: 10},
		Target: Vec3{},
		FOV:    75,
		Width:  width,
		Height: height,
	}
}

// basis returns the camera's right, up and forward unit vectors.
func (c Camera) basis() (right, up, forward Vec3) {
	forward = c.Target.Sub(c.Eye).Normalize()
	right = forward.Cross(Vec3{Y: 1}).Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// focal returns the distance from the eye to the image plane in pixels.
func (c Camera) focal() float64 {
	return (c.Height / 2) / math.Tan(c.FOV*math.Pi/360)
}

// Project maps a world point to viewport pixels. depth is the distance
// along the view axis; ok is false for points behind the camera.
func (c Camera) Project(p Vec3) (x, y, depth float64, ok bool) {
	right, up, forward := c.basis()
	d := p.Sub(c.Eye)
	depth = d.Dot(forward)
	if depth <= 1e-9 {
		return 0, 0, depth, false
	}
	f := c.focal()
	x = c.Width/2 + f*d.Dot(right)/depth
	y = c.Height/2 - f*d.Dot(up)/depth
	return x, y, depth, true
}

// Ray returns the world-space ray through viewport pixel (x, y).
// It is the inverse of Project: every point on the ray projects to (x, y).
func (c Camera) Ray(x, y float64) (origin, dir Vec3) {
	right, up, forward := c.basis()
	f := c.focal()
	dir = forward.
		Add(right.Scale((x - c.Width/2) / f)).
		Add(up.Scale(-(y - c.Height/2) / f))
	return c.Eye, dir.Normalize()
}

// PixelScale returns how many pixels one world unit spans at the given depth.
func (c Camera) PixelScale(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return c.focal() / depth
}
