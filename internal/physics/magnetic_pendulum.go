package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

type Magnet struct {
	X, Y float64
}

// Magnets sit on a circle of radius 1.5 at 120 degree spacing.
var Magnets = []Magnet{
	{1.5, 0},
	{1.5 * math.Cos(2*math.Pi/3), 1.5 * math.Sin(2*math.Pi/3)},
	{1.5 * math.Cos(4*math.Pi/3), 1.5 * math.Sin(4*math.Pi/3)},
}

// MagneticPendulum is a damped bob on a spring over three magnets, whose
// basins of attraction are fractal. State: [x, y, vx, vy].
func MagneticPendulum() dynamo.System {
	return dynamo.System{
		Name:       "magnetic-pendulum",
		Dim:        4,
		ParamNames: []string{"height", "damping", "spring", "power"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			h := p.Get("height", 0.5)
			damping, spring, power := p.Get("damping", 0.2), p.Get("spring", 0.5), p.Get("power", 3)

			x, y, vx, vy := s[0], s[1], s[2], s[3]
			fx, fy := -spring*x-damping*vx, -spring*y-damping*vy
			for _, mag := range Magnets {
				dx, dy := mag.X-x, mag.Y-y
				hd := math.Hypot(dx, dy)
				if hd < 1e-10 {
					continue
				}
				f := 1 / math.Pow(math.Max(math.Sqrt(hd*hd+h*h), 0.1), power)
				fx += f * dx / hd
				fy += f * dy / hd
			}
			return dynamo.State{vx, vy, fx, fy}
		},
		DefaultState: dynamo.State{0.5, 0.3, 0, 0},
	}
}

// ClosestMagnet is the index of the magnet nearest the bob.
func ClosestMagnet(s dynamo.State) int {
	best, dist := -1, math.Inf(1)
	for i, mag := range Magnets {
		if d := math.Hypot(mag.X-s[0], mag.Y-s[1]); d < dist {
			best, dist = i, d
		}
	}
	return best
}
