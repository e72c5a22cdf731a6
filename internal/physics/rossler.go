package physics

import "github.com/san-kum/odeint/internal/dynamo"

// Rossler is the Rossler attractor with a=0.2, b=0.2, c=5.7 by default.
func Rossler() dynamo.System {
	return dynamo.System{
		Name:       "rossler",
		Dim:        3,
		ParamNames: []string{"a", "b", "c"},
		RHS: func(_ float64, s dynamo.State, p dynamo.Params) dynamo.State {
			a, b, c := p.Get("a", 0.2), p.Get("b", 0.2), p.Get("c", 5.7)
			return dynamo.State{-s[1] - s[2], s[0] + a*s[1], b + s[2]*(s[0]-c)}
		},
		DefaultState: dynamo.State{1.0, 1.0, 1.0},
	}
}
