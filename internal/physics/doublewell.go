package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// DoubleWell models a damped particle in the bistable potential
// A (x^2 - B)^2. State: [x, v].
func DoubleWell() dynamo.System {
	return dynamo.System{
		Name:       "doublewell",
		Dim:        2,
		ParamNames: []string{"a", "b", "mass", "damping"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			a, b := p.Get("a", 1.0), p.Get("b", 1.0)
			mass, damping := p.Get("mass", 1.0), p.Get("damping", 0.1)

			x, v := s[0], s[1]
			return dynamo.State{v, (-4*a*x*(x*x-b) - damping*v) / mass}
		},
		DefaultState: dynamo.State{1.1, 0},
	}
}

func DoubleWellEnergy(p dynamo.Params) func(dynamo.State) float64 {
	a, b, mass := p.Get("a", 1.0), p.Get("b", 1.0), p.Get("mass", 1.0)
	return func(s dynamo.State) float64 {
		x, v := s[0], s[1]
		return 0.5*mass*v*v + a*math.Pow(x*x-b, 2)
	}
}
