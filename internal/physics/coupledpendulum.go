package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// CoupledPendulums are two pendulums joined by a spring that acts on the
// angle difference. State: [theta1, omega1, theta2, omega2].
func CoupledPendulums() dynamo.System {
	return dynamo.System{
		Name:       "coupled-pendulums",
		Dim:        4,
		ParamNames: []string{"l", "k", "m"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			l, k, m := p.Get("l", 1), p.Get("k", 20), p.Get("m", 1)
			coupling := k * (s[2] - s[0]) / (m * l)
			return dynamo.State{
				s[1], -Gravity/l*math.Sin(s[0]) + coupling,
				s[3], -Gravity/l*math.Sin(s[2]) - coupling,
			}
		},
		// One pendulum displaced; the swing moves back and forth between them.
		DefaultState: dynamo.State{0.5, 0, 0, 0},
	}
}

func CoupledPendulumsEnergy(p dynamo.Params) func(dynamo.State) float64 {
	l, k, m := p.Get("l", 1), p.Get("k", 20), p.Get("m", 1)
	return func(s dynamo.State) float64 {
		d := s[2] - s[0]
		return 0.5*(s[1]*s[1]+s[3]*s[3]) +
			Gravity/l*(2-math.Cos(s[0])-math.Cos(s[2])) +
			0.5*k/(m*l)*d*d
	}
}
