package dynamo

import "fmt"

// RHS is the derivative function of dX/dt = f(t, X, p). It must be pure:
// integrators call it many times per step and expect identical results for
// identical inputs.
type RHS func(t float64, x State, p Params) State

// Func is an RHS with its parameter set already bound.
type Func func(t float64, x State) State

// System describes one model: its RHS and the parameters it accepts.
type System struct {
	Name string
	// Dim is the state dimension, or 0 when the model accepts any.
	Dim          int
	ParamNames   []string
	RHS          RHS
	DefaultState State
}

// Bind validates p against the system's parameter names and returns the
// bound derivative function.
func (s System) Bind(p Params) (Func, error) {
	if s.RHS == nil {
		return nil, fmt.Errorf("%w: system %q has no rhs", ErrInvalidInput, s.Name)
	}
	if err := p.Validate(s.ParamNames...); err != nil {
		return nil, fmt.Errorf("system %s: %w", s.Name, err)
	}
	rhs := s.RHS
	return func(t float64, x State) State {
		return rhs(t, x, p)
	}, nil
}

// Initial is an initial condition. When X0 is nil the state defaults to Dim
// zeros; when both are set they must agree.
type Initial struct {
	T0  float64
	X0  State
	Dim int
}

// Resolve returns the initial state, applying the defaulting rules.
func (in Initial) Resolve() (State, error) {
	if in.Dim < 0 {
		return nil, invalidInput("dimension must be non-negative, got %d", in.Dim)
	}
	if in.X0 == nil {
		if in.Dim == 0 {
			return nil, invalidInput("no initial state given, dimension required")
		}
		return Zeros(in.Dim), nil
	}
	if in.Dim != 0 && len(in.X0) != in.Dim {
		return nil, mismatch(in.Dim, len(in.X0))
	}
	if len(in.X0) == 0 {
		return nil, invalidInput("initial state is empty")
	}
	return in.X0.Clone(), nil
}

// Problem is a bound initial value problem.
type Problem struct {
	Name string
	F    Func
	T0   float64
	X0   State
}

func NewProblem(sys System, p Params, init Initial) (*Problem, error) {
	f, err := sys.Bind(p)
	if err != nil {
		return nil, err
	}
	if init.X0 == nil && init.Dim == 0 {
		init.Dim = sys.Dim
	}
	x0, err := init.Resolve()
	if err != nil {
		return nil, fmt.Errorf("system %s: %w", sys.Name, err)
	}
	if sys.Dim != 0 && len(x0) != sys.Dim {
		return nil, fmt.Errorf("system %s: %w", sys.Name, mismatch(sys.Dim, len(x0)))
	}
	return &Problem{Name: sys.Name, F: f, T0: init.T0, X0: x0}, nil
}

// Eval calls f and checks the result has the dimension of x.
func Eval(f Func, t float64, x State) (State, error) {
	dx := f(t, x)
	if len(dx) != len(x) {
		return nil, fmt.Errorf("rhs at t=%g: %w", t, mismatch(len(x), len(dx)))
	}
	return dx, nil
}

// Counting wraps f so every call increments *n.
func Counting(f Func, n *int) Func {
	return func(t float64, x State) State {
		*n++
		return f(t, x)
	}
}
