package integrators

import "github.com/san-kum/odeint/internal/dynamo"

// Euler is the first-order forward Euler rule X' = X + dt*f(t, X).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f dynamo.Func, t float64, x dynamo.State, dt float64) (float64, dynamo.State, error) {
	dx, err := dynamo.Eval(f, t, x)
	if err != nil {
		return 0, nil, err
	}
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return t + dt, result, nil
}
