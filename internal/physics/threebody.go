package physics

import "github.com/san-kum/odeint/internal/dynamo"

// ThreeBody is the planar three-body problem with separate masses.
// State: [x, y, vx, vy] for each body. The default state is the
// figure-eight choreography, periodic with period about 6.3259.
func ThreeBody() dynamo.System {
	return dynamo.System{
		Name:       "threebody",
		Dim:        12,
		ParamNames: []string{"m1", "m2", "m3", "g", "softening"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			return gravity(s, threeMasses(p), p.Get("g", 1), p.Get("softening", 0))
		},
		DefaultState: dynamo.State{
			0.97000436, -0.24308753, 0.466203685, 0.43236573,
			-0.97000436, 0.24308753, 0.466203685, 0.43236573,
			0, 0, -0.93240737, -0.86473146,
		},
	}
}

const FigureEightPeriod = 6.32591398

func ThreeBodyEnergy(p dynamo.Params) func(dynamo.State) float64 {
	masses, g, eps := threeMasses(p), p.Get("g", 1), p.Get("softening", 0)
	return func(s dynamo.State) float64 {
		return gravityEnergy(s, masses, g, eps)
	}
}

func threeMasses(p dynamo.Params) []float64 {
	return []float64{p.Get("m1", 1), p.Get("m2", 1), p.Get("m3", 1)}
}
