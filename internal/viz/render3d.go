package viz

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 4, RotX: -math.Pi / 3, RotZ: math.Pi / 6, Zoom: 1.0}
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a point of the unit cube centred on the origin to a
// perspective (x, y) in the same units. Points behind the camera are
// reported as not visible.
func (c *Camera) Project(p Vec3) (x, y float64, ok bool) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Distance {
		return 0, 0, false
	}
	scale := c.Distance / (c.Distance - rot.Z)
	return rot.X * scale, rot.Y * scale, true
}

// Portrait3D projects three state components through cam onto a canvas.
// Each component is first normalized to [-0.5, 0.5].
func Portrait3D(traj *dynamo.Trajectory, cols [3]int, cam *Camera, width, height int) string {
	if cam == nil {
		cam = NewCamera()
	}
	var center, span Vec3
	axes := [3][]float64{series(traj, cols[0]), series(traj, cols[1]), series(traj, cols[2])}
	lo0, hi0 := finiteRange(axes[0])
	lo1, hi1 := finiteRange(axes[1])
	lo2, hi2 := finiteRange(axes[2])
	center = Vec3{(lo0 + hi0) / 2, (lo1 + hi1) / 2, (lo2 + hi2) / 2}
	span = Vec3{hi0 - lo0, hi1 - lo1, hi2 - lo2}

	xs := make([]float64, traj.Len())
	ys := make([]float64, traj.Len())
	for i := range xs {
		p := Vec3{axes[0][i], axes[1][i], axes[2][i]}.Sub(center)
		p = Vec3{p.X / span.X, p.Y / span.Y, p.Z / span.Z}
		x, y, ok := cam.Project(p)
		if !ok {
			x, y = math.NaN(), math.NaN()
		}
		xs[i], ys[i] = x, y
	}

	c := NewCanvas(width, height)
	c.Polyline(xs, ys)
	return c.String()
}
