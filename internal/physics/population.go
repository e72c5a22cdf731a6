package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Lotka-Volterra rates: prey growth, predation, predator death and
// predator growth per prey consumed.
const (
	LotkaAlpha = 1.5
	LotkaBeta  = 1.0
	LotkaGamma = 2.0
	LotkaDelta = 1.0
)

// Brusselator constants for the unstable regime.
const (
	BrusselatorA = 1.0
	BrusselatorB = 3.0
)

// LotkaVolterra is the predator-prey model. State: [prey, predators].
func LotkaVolterra() dynamo.System {
	return dynamo.System{
		Name:       "lotka-volterra",
		Dim:        2,
		ParamNames: []string{"alpha", "beta", "gamma", "delta"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			alpha := p.Get("alpha", LotkaAlpha)
			beta := p.Get("beta", LotkaBeta)
			gamma := p.Get("gamma", LotkaGamma)
			delta := p.Get("delta", LotkaDelta)

			x, y := s[0], s[1]
			return dynamo.State{x * (alpha - beta*y), -y * (gamma - delta*x)}
		},
		DefaultState: dynamo.State{2.0, 2.0},
	}
}

// LotkaVolterraInvariant is conserved along exact solutions:
// delta x - gamma ln x + beta y - alpha ln y.
func LotkaVolterraInvariant(p dynamo.Params) func(dynamo.State) float64 {
	alpha := p.Get("alpha", LotkaAlpha)
	beta := p.Get("beta", LotkaBeta)
	gamma := p.Get("gamma", LotkaGamma)
	delta := p.Get("delta", LotkaDelta)
	return func(s dynamo.State) float64 {
		x, y := s[0], s[1]
		return delta*x - gamma*math.Log(x) + beta*y - alpha*math.Log(y)
	}
}

// Brusselator is the autocatalytic reaction model. State: [x, y].
func Brusselator() dynamo.System {
	return dynamo.System{
		Name:       "brusselator",
		Dim:        2,
		ParamNames: []string{"a", "b"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			a := p.Get("a", BrusselatorA)
			b := p.Get("b", BrusselatorB)

			x, y := s[0], s[1]
			return dynamo.State{1 - (b+1)*x + a*x*x*y, b*x - a*x*x*y}
		},
		DefaultState: dynamo.State{0.0, 0.0},
	}
}
