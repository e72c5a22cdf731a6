package dynamo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linear() System {
	return System{
		Name:       "linear",
		Dim:        2,
		ParamNames: []string{"a", "b"},
		RHS: func(t float64, x State, p Params) State {
			return State{p.Get("a", 1) * x[0], p.Get("b", 2) * x[1]}
		},
	}
}

func TestParamsDefaultAndExplicit(t *testing.T) {
	assert.True(t, DefaultParams().IsDefault())
	assert.True(t, ExplicitParams(nil).IsDefault())

	src := map[string]float64{"a": 3, "b": 4}
	p := ExplicitParams(src)
	src["a"] = 99

	assert.False(t, p.IsDefault())
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, 3.0, p.Get("a", 0))
	assert.Equal(t, 7.0, p.Get("missing", 7))
	assert.Equal(t, []string{"a", "b"}, p.Names())

	m := p.Map()
	m["a"] = 0
	assert.Equal(t, 3.0, p.Get("a", 0))
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]float64
		ok     bool
	}{
		{"default", nil, true},
		{"complete", map[string]float64{"a": 1, "b": 2}, true},
		{"partial", map[string]float64{"a": 1}, false},
		{"unknown", map[string]float64{"a": 1, "b": 2, "c": 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExplicitParams(tt.values).Validate("a", "b")
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidParams))
		})
	}
}

func TestParamsValidateNamesOffenders(t *testing.T) {
	err := ExplicitParams(map[string]float64{"a": 1, "z": 2}).Validate("a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing b")
	assert.Contains(t, err.Error(), "unknown z")
}

func TestSystemBind(t *testing.T) {
	f, err := linear().Bind(DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, State{1, 4}, f(0, State{1, 2}))

	f, err = linear().Bind(ExplicitParams(map[string]float64{"a": -1, "b": 0}))
	require.NoError(t, err)
	assert.Equal(t, State{-1, 0}, f(0, State{1, 2}))

	_, err = linear().Bind(ExplicitParams(map[string]float64{"a": 1}))
	assert.True(t, errors.Is(err, ErrInvalidParams))

	_, err = System{Name: "empty"}.Bind(DefaultParams())
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestInitialResolve(t *testing.T) {
	tests := []struct {
		name string
		in   Initial
		want State
		err  error
	}{
		{"explicit", Initial{X0: State{1, 2}}, State{1, 2}, nil},
		{"zeros", Initial{Dim: 3}, State{0, 0, 0}, nil},
		{"agreeing dim", Initial{X0: State{1}, Dim: 1}, State{1}, nil},
		{"disagreeing dim", Initial{X0: State{1}, Dim: 2}, nil, ErrDimensionMismatch},
		{"nothing", Initial{}, nil, ErrInvalidInput},
		{"negative dim", Initial{Dim: -1}, nil, ErrInvalidInput},
		{"empty state", Initial{X0: State{}}, nil, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Resolve()
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInitialResolveCopies(t *testing.T) {
	x0 := State{1, 2}
	got, err := Initial{X0: x0}.Resolve()
	require.NoError(t, err)
	got[0] = 5
	assert.Equal(t, 1.0, x0[0])
}

func TestNewProblem(t *testing.T) {
	prob, err := NewProblem(linear(), DefaultParams(), Initial{T0: 2})
	require.NoError(t, err)
	assert.Equal(t, "linear", prob.Name)
	assert.Equal(t, 2.0, prob.T0)
	assert.Equal(t, State{0, 0}, prob.X0)

	_, err = NewProblem(linear(), DefaultParams(), Initial{X0: State{1, 2, 3}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = NewProblem(linear(), ExplicitParams(map[string]float64{"b": 1}), Initial{X0: State{1, 2}})
	assert.True(t, errors.Is(err, ErrInvalidParams))
}

func TestEvalChecksDimension(t *testing.T) {
	bad := func(t float64, x State) State { return State{1} }
	_, err := Eval(bad, 0.5, State{1, 2})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	n := 0
	f := Counting(func(t float64, x State) State { return x }, &n)
	out, err := Eval(f, 0, State{3})
	require.NoError(t, err)
	assert.Equal(t, State{3}, out)
	assert.Equal(t, 1, n)
}
