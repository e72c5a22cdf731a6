package physics

import "github.com/san-kum/odeint/internal/dynamo"

// Wave is the 1D wave equation on a string of the given length, discretized
// by central differences on n points with the ends held in place.
// State: [u1..un, v1..vn], so at least six components.
func Wave() dynamo.System {
	return dynamo.System{
		Name:       "wave",
		ParamNames: []string{"c", "damping", "length"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			n := len(s) / 2
			if len(s)%2 != 0 || n < 3 {
				return nil
			}
			c, damping := p.Get("c", 1), p.Get("damping", 0.01)
			h := p.Get("length", 1) / float64(n-1)
			c2h2 := c * c / (h * h)

			dx := make(dynamo.State, len(s))
			for i := 0; i < n; i++ {
				dx[i] = s[n+i]
				if i == 0 || i == n-1 {
					continue
				}
				dx[n+i] = c2h2*(s[i-1]-2*s[i]+s[i+1]) - damping*s[n+i]
			}
			return dx
		},
		DefaultState: PluckedString(21, 0.5),
	}
}

// PluckedString is a string of n points at rest, pulled up to amp at the
// middle.
func PluckedString(n int, amp float64) dynamo.State {
	s := make(dynamo.State, 2*n)
	mid := n / 2
	for i := 0; i < n; i++ {
		if i <= mid {
			s[i] = amp * float64(i) / float64(mid)
		} else {
			s[i] = amp * float64(n-1-i) / float64(n-1-mid)
		}
	}
	return s
}

func WaveEnergy(p dynamo.Params) func(dynamo.State) float64 {
	c, length := p.Get("c", 1), p.Get("length", 1)
	return func(s dynamo.State) float64 {
		n := len(s) / 2
		h := length / float64(n-1)
		e := 0.0
		for i := 0; i < n; i++ {
			v := s[n+i]
			e += 0.5 * v * v
			if i < n-1 {
				slope := (s[i+1] - s[i]) / h
				e += 0.5 * c * c * slope * slope
			}
		}
		return e
	}
}
