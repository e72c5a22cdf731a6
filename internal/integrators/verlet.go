package integrators

import (
	"fmt"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Velocity Verlet and leapfrog treat the state as [positions..., velocities...]
// and read accelerations from the second half of the derivative. Both are
// symplectic, which keeps the energy of conservative systems bounded.

type Verlet struct {
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(f dynamo.Func, t float64, x dynamo.State, dt float64) (float64, dynamo.State, error) {
	n := len(x)
	if n%2 != 0 {
		return 0, nil, fmt.Errorf("%w: verlet needs an even state dimension, got %d", dynamo.ErrDimensionMismatch, n)
	}
	half := n / 2
	if len(v.scratch) != n {
		v.scratch = make(dynamo.State, n)
	}

	result := make(dynamo.State, n)
	dx, err := dynamo.Eval(f, t, x)
	if err != nil {
		return 0, nil, err
	}
	dt2 := dt * dt

	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*dx[half+i]*dt2
	}

	for i := 0; i < half; i++ {
		v.scratch[i] = result[i]
		v.scratch[half+i] = x[half+i]
	}

	dxNew, err := dynamo.Eval(f, t+dt, v.scratch)
	if err != nil {
		return 0, nil, err
	}

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + (dx[half+i]+dxNew[half+i])*halfDt
	}

	return t + dt, result, nil
}

type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Step(f dynamo.Func, t float64, x dynamo.State, dt float64) (float64, dynamo.State, error) {
	n := len(x)
	if n%2 != 0 {
		return 0, nil, fmt.Errorf("%w: leapfrog needs an even state dimension, got %d", dynamo.ErrDimensionMismatch, n)
	}
	half := n / 2

	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	result := make(dynamo.State, n)
	dx, err := dynamo.Eval(f, t, x)
	if err != nil {
		return 0, nil, err
	}
	halfDt := dt * 0.5

	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfDt
	}

	for i := 0; i < half; i++ {
		result[i] = x[i] + l.scratch[half+i]*dt
		l.scratch[i] = result[i]
	}

	dxNew, err := dynamo.Eval(f, t+dt, l.scratch)
	if err != nil {
		return 0, nil, err
	}

	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfDt
	}

	return t + dt, result, nil
}
