package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

const (
	PendulumLength = 0.1
	DrivenAmp      = 5.0
	DrivenOmega    = 10.0
)

// NonlinearPendulum is the undamped pendulum without the small-angle
// approximation. State: [theta, omega].
func NonlinearPendulum() dynamo.System {
	return dynamo.System{
		Name:       "pendulum",
		Dim:        2,
		ParamNames: []string{"l"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			l := p.Get("l", PendulumLength)
			return dynamo.State{s[1], -(Gravity / l) * math.Sin(s[0])}
		},
		DefaultState: dynamo.State{math.Pi / 2, 0},
	}
}

// DrivenPendulum has its pivot shaken horizontally:
//
//	domega/dt = -(g/l) sin(theta) + a cos(theta) sin(omegad t)
func DrivenPendulum() dynamo.System {
	return dynamo.System{
		Name:       "driven-pendulum",
		Dim:        2,
		ParamNames: []string{"l", "a", "omegad"},
		RHS: func(t float64, s dynamo.State, p dynamo.Params) dynamo.State {
			l := p.Get("l", PendulumLength)
			a := p.Get("a", DrivenAmp)
			wd := p.Get("omegad", DrivenOmega)

			theta := s[0]
			return dynamo.State{s[1], -(Gravity/l)*math.Sin(theta) + a*math.Cos(theta)*math.Sin(wd*t)}
		},
		DefaultState: dynamo.State{0, 0},
	}
}

// PendulumEnergy is the energy per unit mass of the undriven pendulum.
func PendulumEnergy(p dynamo.Params) func(dynamo.State) float64 {
	l := p.Get("l", PendulumLength)
	return func(s dynamo.State) float64 {
		v := l * s[1]
		return 0.5*v*v + Gravity*l*(1-math.Cos(s[0]))
	}
}
