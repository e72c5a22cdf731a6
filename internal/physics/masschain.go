package physics

import "github.com/san-kum/odeint/internal/dynamo"

// MassChain is a line of equal masses joined by springs, with both ends
// tied to walls. State: [x1, v1, x2, v2, ...] with x the displacement.
func MassChain() dynamo.System {
	return dynamo.System{
		Name:       "mass-chain",
		ParamNames: []string{"k", "m", "damping"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			if len(s)%2 != 0 {
				return nil
			}
			k, m, damping := p.Get("k", 100), p.Get("m", 1), p.Get("damping", 0.1)
			n := len(s) / 2
			dx := make(dynamo.State, len(s))
			for i := 0; i < n; i++ {
				left, right := 0.0, 0.0
				if i > 0 {
					left = s[(i-1)*2]
				}
				if i < n-1 {
					right = s[(i+1)*2]
				}
				x, v := s[i*2], s[i*2+1]
				dx[i*2] = v
				dx[i*2+1] = (k*(left-x) + k*(right-x) - damping*v) / m
			}
			return dx
		},
		// A pulse at the left end.
		DefaultState: dynamo.State{1, 0, 0.5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	}
}

func MassChainEnergy(p dynamo.Params) func(dynamo.State) float64 {
	k, m := p.Get("k", 100), p.Get("m", 1)
	return func(s dynamo.State) float64 {
		n := len(s) / 2
		e, prev := 0.0, 0.0
		for i := 0; i < n; i++ {
			x, v := s[i*2], s[i*2+1]
			e += 0.5*m*v*v + 0.5*k*(x-prev)*(x-prev)
			prev = x
		}
		return e + 0.5*k*prev*prev
	}
}
