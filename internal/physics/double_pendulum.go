package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// DoublePendulum is a pendulum hanging from the bob of another, both with
// point masses on rigid massless rods. Angles are measured from the
// downward vertical. State: [theta1, theta2, omega1, omega2].
func DoublePendulum() dynamo.System {
	return dynamo.System{
		Name:       "double-pendulum",
		Dim:        4,
		ParamNames: []string{"m1", "m2", "l1", "l2"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			m1, m2, l1, l2 := p.Get("m1", 1), p.Get("m2", 1), p.Get("l1", 1), p.Get("l2", 1)
			theta1, theta2, omega1, omega2 := s[0], s[1], s[2], s[3]

			sinD, cosD := math.Sincos(theta2 - theta1)
			den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
			den2 := (l2 / l1) * den1

			alpha1 := (m2*l1*omega1*omega1*sinD*cosD +
				m2*Gravity*math.Sin(theta2)*cosD +
				m2*l2*omega2*omega2*sinD -
				(m1+m2)*Gravity*math.Sin(theta1)) / den1

			alpha2 := (-m2*l2*omega2*omega2*sinD*cosD +
				(m1+m2)*Gravity*math.Sin(theta1)*cosD -
				(m1+m2)*l1*omega1*omega1*sinD -
				(m1+m2)*Gravity*math.Sin(theta2)) / den2

			return dynamo.State{omega1, omega2, alpha1, alpha2}
		},
		DefaultState: dynamo.State{math.Pi / 2, math.Pi / 2, 0, 0},
	}
}

func DoublePendulumEnergy(p dynamo.Params) func(dynamo.State) float64 {
	m1, m2, l1, l2 := p.Get("m1", 1), p.Get("m2", 1), p.Get("l1", 1), p.Get("l2", 1)
	return func(s dynamo.State) float64 {
		theta1, theta2, omega1, omega2 := s[0], s[1], s[2], s[3]
		v1sq := l1 * l1 * omega1 * omega1
		v2sq := v1sq + l2*l2*omega2*omega2 + 2*l1*l2*omega1*omega2*math.Cos(theta1-theta2)

		y1 := -l1 * math.Cos(theta1)
		y2 := y1 - l2*math.Cos(theta2)
		return 0.5*m1*v1sq + 0.5*m2*v2sq + m1*Gravity*y1 + m2*Gravity*y2
	}
}
