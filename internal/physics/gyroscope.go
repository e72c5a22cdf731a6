package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Gyroscope is a heavy spinning top: Euler's equations in the body frame
// plus the Euler angles. State: [w1, w2, w3, theta, phi, psi].
func Gyroscope() dynamo.System {
	return dynamo.System{
		Name:       "gyroscope",
		Dim:        6,
		ParamNames: []string{"i1", "i2", "i3", "m", "l"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			i1, i2, i3 := p.Get("i1", 1), p.Get("i2", 1), p.Get("i3", 2)
			mgl := p.Get("m", 1) * Gravity * p.Get("l", 0.5)

			w1, w2, w3 := s[0], s[1], s[2]
			sin, cos := math.Sincos(s[3])
			if math.Abs(sin) < 1e-10 {
				sin = 1e-10
			}
			return dynamo.State{
				((i2-i3)*w2*w3 + mgl*sin) / i1,
				(i3 - i1) * w3 * w1 / i2,
				(i1 - i2) * w1 * w2 / i3,
				w1,
				w2 / sin,
				w3 - w2*cos/sin,
			}
		},
		DefaultState: dynamo.State{0, 0, 10, 0.3, 0, 0},
	}
}

func GyroscopeEnergy(p dynamo.Params) func(dynamo.State) float64 {
	i1, i2, i3 := p.Get("i1", 1), p.Get("i2", 1), p.Get("i3", 2)
	mgl := p.Get("m", 1) * Gravity * p.Get("l", 0.5)
	return func(s dynamo.State) float64 {
		return 0.5*(i1*s[0]*s[0]+i2*s[1]*s[1]+i3*s[2]*s[2]) + mgl*math.Cos(s[3])
	}
}
