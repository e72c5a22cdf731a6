package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Decay is exponential decay dx/dt = -k x in any dimension.
func Decay() dynamo.System {
	return dynamo.System{
		Name:       "decay",
		ParamNames: []string{"k"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			return s.Scale(-p.Get("k", 1.0))
		},
		DefaultState: dynamo.State{1.0},
	}
}

// HarmonicOscillator is a unit mass on a spring of stiffness k.
// State: [x, v].
func HarmonicOscillator() dynamo.System {
	return dynamo.System{
		Name:       "oscillator",
		Dim:        2,
		ParamNames: []string{"k"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			return dynamo.State{s[1], -p.Get("k", 1.0) * s[0]}
		},
		DefaultState: dynamo.State{1.0, 0.0},
	}
}

// OscillatorExact is the closed-form oscillator solution from x0 at t=0.
func OscillatorExact(p dynamo.Params, x0 dynamo.State, t float64) dynamo.State {
	w := math.Sqrt(p.Get("k", 1.0))
	sin, cos := math.Sincos(w * t)
	return dynamo.State{
		x0[0]*cos + x0[1]/w*sin,
		-x0[0]*w*sin + x0[1]*cos,
	}
}

func OscillatorEnergy(p dynamo.Params) func(dynamo.State) float64 {
	k := p.Get("k", 1.0)
	return func(s dynamo.State) float64 {
		return 0.5*s[1]*s[1] + 0.5*k*s[0]*s[0]
	}
}
