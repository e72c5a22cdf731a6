package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Orbit is the Newtonian one-body problem: a light body around a fixed
// central mass. State: [x, y, vx, vy] in metres and m/s.
func Orbit() dynamo.System {
	return dynamo.System{
		Name:       "orbit",
		Dim:        4,
		ParamNames: []string{"mass"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			gm := G * p.Get("mass", MSun)
			x, y := s[0], s[1]
			r := math.Hypot(x, y)
			r3 := r * r * r
			return dynamo.State{s[2], s[3], -gm * x / r3, -gm * y / r3}
		},
		DefaultState: dynamo.State{4.0e12, 0, 0, 474.0},
	}
}

// OrbitEnergy is the specific orbital energy |v|^2/2 - GM/r.
func OrbitEnergy(p dynamo.Params) func(dynamo.State) float64 {
	gm := G * p.Get("mass", MSun)
	return func(s dynamo.State) float64 {
		v2 := s[2]*s[2] + s[3]*s[3]
		return 0.5*v2 - gm/math.Hypot(s[0], s[1])
	}
}
