package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Duffing implements a nonlinear forced oscillator. State: [x, v].
// The forcing gamma*cos(omega*t) makes it non-autonomous.
func Duffing() dynamo.System {
	return dynamo.System{
		Name:       "duffing",
		Dim:        2,
		ParamNames: []string{"alpha", "beta", "delta", "gamma", "omega"},
		RHS: func(t float64, s dynamo.State, p dynamo.Params) dynamo.State {
			alpha := p.Get("alpha", -1.0)
			beta := p.Get("beta", 1.0)
			delta := p.Get("delta", 0.3)
			gamma := p.Get("gamma", 0.5)
			omega := p.Get("omega", 1.2)

			x, v := s[0], s[1]
			return dynamo.State{v, -delta*v - alpha*x - beta*x*x*x + gamma*math.Cos(omega*t)}
		},
		DefaultState: dynamo.State{1.0, 0.0},
	}
}

// DuffingEnergy is the unforced energy v^2/2 + alpha x^2/2 + beta x^4/4.
func DuffingEnergy(p dynamo.Params) func(dynamo.State) float64 {
	alpha, beta := p.Get("alpha", -1.0), p.Get("beta", 1.0)
	return func(s dynamo.State) float64 {
		x, v := s[0], s[1]
		return 0.5*v*v + 0.5*alpha*x*x + 0.25*beta*x*x*x*x
	}
}
