package physics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

const (
	NBodyG         = 1.0
	NBodySoftening = 0.01
)

// NBody is any number of equal-mass bodies in the plane under softened
// gravity. State: [x, y, vx, vy] per body.
func NBody() dynamo.System {
	return dynamo.System{
		Name:       "nbody",
		ParamNames: []string{"g", "m", "softening"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			if len(s)%4 != 0 {
				return nil
			}
			return gravity(s, equalMasses(len(s)/4, p.Get("m", 1)), p.Get("g", NBodyG), p.Get("softening", NBodySoftening))
		},
		DefaultState: RingState(4, 1),
	}
}

// RingState places n bodies evenly on a circle with the velocities that
// keep the ring rotating rigidly for unit G and unit masses.
func RingState(n int, radius float64) dynamo.State {
	// Inward pull on one body from the other n-1.
	pull := 0.0
	for k := 1; k < n; k++ {
		pull += 1 / math.Sin(math.Pi*float64(k)/float64(n))
	}
	v := math.Sqrt(pull / (4 * radius))

	s := make(dynamo.State, 4*n)
	for i := 0; i < n; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		s[i*4] = radius * cos
		s[i*4+1] = radius * sin
		s[i*4+2] = -v * sin
		s[i*4+3] = v * cos
	}
	return s
}

func NBodyEnergy(p dynamo.Params) func(dynamo.State) float64 {
	m, g, eps := p.Get("m", 1), p.Get("g", NBodyG), p.Get("softening", NBodySoftening)
	return func(s dynamo.State) float64 {
		return gravityEnergy(s, equalMasses(len(s)/4, m), g, eps)
	}
}

// Momentum is the total linear momentum of bodies with the given masses.
func Momentum(s dynamo.State, masses []float64) (px, py float64) {
	for i, m := range masses {
		px += m * s[i*4+2]
		py += m * s[i*4+3]
	}
	return px, py
}

// AngularMomentum is the total angular momentum about the origin.
func AngularMomentum(s dynamo.State, masses []float64) float64 {
	l := 0.0
	for i, m := range masses {
		l += m * (s[i*4]*s[i*4+3] - s[i*4+1]*s[i*4+2])
	}
	return l
}

func equalMasses(n int, m float64) []float64 {
	masses := make([]float64, n)
	for i := range masses {
		masses[i] = m
	}
	return masses
}

// gravity is the derivative of planar bodies laid out as [x, y, vx, vy].
func gravity(s dynamo.State, masses []float64, g, softening float64) dynamo.State {
	n := len(masses)
	dx := make(dynamo.State, len(s))
	eps2 := softening * softening

	for i := 0; i < n; i++ {
		dx[i*4] = s[i*4+2]
		dx[i*4+1] = s[i*4+3]
	}
	for i := 0; i < n; i++ {
		xi, yi := s[i*4], s[i*4+1]
		for j := i + 1; j < n; j++ {
			rx := s[j*4] - xi
			ry := s[j*4+1] - yi
			r2 := rx*rx + ry*ry + eps2
			r3Inv := 1 / (r2 * math.Sqrt(r2))

			dx[i*4+2] += g * masses[j] * r3Inv * rx
			dx[i*4+3] += g * masses[j] * r3Inv * ry
			dx[j*4+2] -= g * masses[i] * r3Inv * rx
			dx[j*4+3] -= g * masses[i] * r3Inv * ry
		}
	}
	return dx
}

func gravityEnergy(s dynamo.State, masses []float64, g, softening float64) float64 {
	eps2 := softening * softening
	ke, pe := 0.0, 0.0
	for i, mi := range masses {
		vx, vy := s[i*4+2], s[i*4+3]
		ke += 0.5 * mi * (vx*vx + vy*vy)
		for j := i + 1; j < len(masses); j++ {
			rx := s[j*4] - s[i*4]
			ry := s[j*4+1] - s[i*4+1]
			pe -= g * mi * masses[j] / math.Sqrt(rx*rx+ry*ry+eps2)
		}
	}
	return ke + pe
}
