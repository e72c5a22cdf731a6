package dynamo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// State is a fixed-length vector of real numbers. Arithmetic never aliases:
// every operation returns a fresh State.
type State []float64

// Zeros returns an n-dimensional zero state.
func Zeros(n int) State {
	return make(State, n)
}

func (s State) Dim() int { return len(s) }

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, 2)
}

// Equal reports exact elementwise equality.
func (s State) Equal(other State) bool {
	return floats.Equal(s, other)
}

func (s State) Add(other State) (State, error) {
	if len(s) != len(other) {
		return nil, mismatch(len(s), len(other))
	}
	return floats.AddTo(make(State, len(s)), s, other), nil
}

func (s State) Sub(other State) (State, error) {
	if len(s) != len(other) {
		return nil, mismatch(len(s), len(other))
	}
	return floats.SubTo(make(State, len(s)), s, other), nil
}

func (s State) Mul(other State) (State, error) {
	if len(s) != len(other) {
		return nil, mismatch(len(s), len(other))
	}
	return floats.MulTo(make(State, len(s)), s, other), nil
}

func (s State) Div(other State) (State, error) {
	if len(s) != len(other) {
		return nil, mismatch(len(s), len(other))
	}
	return floats.DivTo(make(State, len(s)), s, other), nil
}

func (s State) AddScalar(v float64) State {
	result := s.Clone()
	floats.AddConst(v, result)
	return result
}

func (s State) SubScalar(v float64) State {
	return s.AddScalar(-v)
}

func (s State) Scale(factor float64) State {
	return floats.ScaleTo(make(State, len(s)), factor, s)
}

// DivScalar divides each component by v directly. Scaling by 1/v would
// round differently and overflow for subnormal v.
func (s State) DivScalar(v float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] / v
	}
	return result
}

// AddScaled returns s + alpha*other.
func (s State) AddScaled(alpha float64, other State) (State, error) {
	if len(s) != len(other) {
		return nil, mismatch(len(s), len(other))
	}
	return floats.AddScaledTo(make(State, len(s)), s, alpha, other), nil
}
