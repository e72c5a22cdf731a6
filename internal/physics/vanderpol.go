package physics

import "github.com/san-kum/odeint/internal/dynamo"

const (
	VanDerPolMu    = 5.0
	VanDerPolOmega = 1.0
)

// VanDerPol implements the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - ω²x
func VanDerPol() dynamo.System {
	return dynamo.System{
		Name:       "vanderpol",
		Dim:        2,
		ParamNames: []string{"mu", "omega"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			mu := p.Get("mu", VanDerPolMu)
			omega := p.Get("omega", VanDerPolOmega)

			x, y := s[0], s[1]
			return dynamo.State{y, mu*(1-x*x)*y - omega*omega*x}
		},
		DefaultState: dynamo.State{1.0, 0.0},
	}
}
