package physics

import "github.com/san-kum/odeint/internal/dynamo"

const (
	LorenzSigma = 10.0
	LorenzRho   = 28.0
	LorenzBeta  = 8.0 / 3.0
)

// Lorenz is the butterfly attractor. State: [x, y, z].
func Lorenz() dynamo.System {
	return dynamo.System{
		Name:       "lorenz",
		Dim:        3,
		ParamNames: []string{"sigma", "rho", "beta"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			sigma := p.Get("sigma", LorenzSigma)
			rho := p.Get("rho", LorenzRho)
			beta := p.Get("beta", LorenzBeta)
			return dynamo.State{sigma * (s[1] - s[0]), s[0]*(rho-s[2]) - s[1], s[0]*s[1] - beta*s[2]}
		},
		DefaultState: dynamo.State{1.0, 1.0, 1.0},
	}
}
