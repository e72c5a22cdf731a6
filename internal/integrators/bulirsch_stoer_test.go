package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oscillatorFunc(t float64, x dynamo.State) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func TestBulirschStoer_Oscillator(t *testing.T) {
	prob := mustProblem(t, oscillator(), dynamo.State{1, 0})
	run, err := NewFixed(NewBulirschStoer(1e-10), prob, 0.5, 20)
	require.NoError(t, err)

	traj, err := Run(run)
	require.NoError(t, err)

	tEnd, x := traj.Last()
	assert.InDelta(t, 10.0, tEnd, 1e-12)
	assert.InDelta(t, math.Cos(10), x[0], 1e-7)
	assert.InDelta(t, -math.Sin(10), x[1], 1e-7)

	for i, e := range traj.Stats.Errors {
		assert.Less(t, e, 0.5*1e-10, "step %d recorded a correction above its target", i)
	}
}

func TestBulirschStoer_LastRows(t *testing.T) {
	bs := NewBulirschStoer(1e-8)
	_, x, err := bs.Step(oscillatorFunc, 0, dynamo.State{1, 0}, 1)
	require.NoError(t, err)

	assert.Greater(t, bs.LastRows(), 2)
	assert.Less(t, bs.LastError(), 1e-8)
	assert.InDelta(t, math.Cos(1), x[0], 1e-7)
}

func TestBulirschStoer_ConstantRHSConvergesImmediately(t *testing.T) {
	f := func(t float64, x dynamo.State) dynamo.State { return dynamo.State{3} }
	bs := NewBulirschStoer(1e-12)

	tNew, x, err := bs.Step(f, 2, dynamo.State{1}, 0.5)
	require.NoError(t, err)

	assert.Equal(t, 2.5, tNew)
	assert.InDelta(t, 2.5, x[0], 1e-14)
	assert.Equal(t, 2, bs.LastRows())
}

func TestBulirschStoer_NotConverged(t *testing.T) {
	bs := NewBulirschStoer(1e-14)
	bs.MaxRows = 2

	_, _, err := bs.Step(oscillatorFunc, 0, dynamo.State{1, 0}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dynamo.ErrNotConverged))
	assert.Equal(t, 2, bs.LastRows())
}

func TestBulirschStoer_NotConvergedKeepsPartialTrajectory(t *testing.T) {
	prob := mustProblem(t, oscillator(), dynamo.State{1, 0})
	bs := NewBulirschStoer(1e-6)
	bs.MaxRows = 3
	// Tighten the target after five steps so the sixth cannot converge.
	run, err := NewFixed(bs, prob, 0.01, 10)
	require.NoError(t, err)

	tighten := dynamo.ObserverFunc(func(t float64, x dynamo.State) {
		if t >= 0.05-1e-12 {
			bs.Accuracy = 1e-30
		}
	})
	traj, err := Run(run, WithObserver(tighten))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dynamo.ErrNotConverged))
	require.NotNil(t, traj)
	assert.Equal(t, 6, traj.Len())

	var stepErr *dynamo.StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 5, stepErr.Step)
	assert.InDelta(t, 0.05, stepErr.Time, 1e-12)
}

func TestBulirschStoer_Validate(t *testing.T) {
	assert.Error(t, NewBulirschStoer(0).Validate())
	assert.Error(t, NewBulirschStoer(math.Inf(1)).Validate())

	bs := NewBulirschStoer(1e-6)
	bs.MaxRows = 1
	assert.True(t, errors.Is(bs.Validate(), dynamo.ErrInvalidInput))

	bs.MaxRows = 0
	assert.NoError(t, bs.Validate())
}

func TestMidpoint_ErrorShrinksWithSubsteps(t *testing.T) {
	x := dynamo.State{1, 0}
	f0 := oscillatorFunc(0, x)
	want := math.Cos(0.5)

	prev := math.Inf(1)
	for _, n := range []int{1, 2, 4, 8, 16} {
		got, err := midpoint(oscillatorFunc, 0, x, f0, 0.5, n)
		require.NoError(t, err)
		e := math.Abs(got[0] - want)
		assert.Less(t, e, prev, "n=%d", n)
		prev = e
	}
}

func TestMidpoint_UsesSubstepTimes(t *testing.T) {
	// dx/dt = t integrates exactly under the midpoint rule.
	f := func(t float64, x dynamo.State) dynamo.State { return dynamo.State{t} }
	x := dynamo.State{0}

	for _, n := range []int{1, 3, 5} {
		got, err := midpoint(f, 1, x, f(1, x), 2, n)
		require.NoError(t, err)
		assert.InDelta(t, 4.0, got[0], 1e-12, "n=%d", n)
	}
}

func TestExtrapolate_CorrectionsDecrease(t *testing.T) {
	x := dynamo.State{1, 0}
	prev := math.Inf(1)
	for rows := 2; rows <= 6; rows++ {
		res, err := extrapolate(oscillatorFunc, 0, x, 1, 1e-300, rows, EuclideanNorm)
		require.NoError(t, err)
		require.False(t, res.converged)
		assert.Less(t, res.err, prev, "rows=%d", rows)
		prev = res.err
	}
}

func TestExtrapolate_NormChoice(t *testing.T) {
	// Only the second component moves, so the first-component norm sees
	// no correction at all.
	f := func(t float64, x dynamo.State) dynamo.State { return dynamo.State{0, math.Cos(t)} }
	x := dynamo.State{0, 0}

	first, err := extrapolate(f, 0, x, 1, 1e-12, 8, FirstComponentNorm)
	require.NoError(t, err)
	assert.True(t, first.converged)
	assert.Equal(t, 2, first.rows)

	full, err := extrapolate(f, 0, x, 1, 1e-12, 8, EuclideanNorm)
	require.NoError(t, err)
	assert.Greater(t, full.rows, 2)
}

func TestNormByName(t *testing.T) {
	eps := dynamo.State{3, -4}

	for name, want := range map[string]float64{"": 5, "euclidean": 5, "max": 4, "first": 3} {
		n, err := NormByName(name)
		require.NoError(t, err, name)
		assert.InDelta(t, want, n(eps), 1e-15, name)
	}

	_, err := NormByName("taxicab")
	assert.True(t, errors.Is(err, dynamo.ErrInvalidInput))
}
