package dynamo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajectory(t *testing.T) {
	x0 := State{1, 0}
	tr := NewTrajectory(0, x0)
	x0[0] = 9

	require.NoError(t, tr.Append(0.5, State{2, 1}))
	require.NoError(t, tr.Append(1.0, State{3, 2}))

	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, 2, tr.Dim())

	t0, first := tr.At(0)
	assert.Equal(t, 0.0, t0)
	assert.Equal(t, State{1, 0}, first, "initial state must be copied")

	tEnd, last := tr.Last()
	assert.Equal(t, 1.0, tEnd)
	assert.Equal(t, State{3, 2}, last)

	assert.Equal(t, []float64{1, 2, 3}, tr.Column(0))
	assert.Equal(t, [][]float64{{1, 2, 3}, {0, 1, 2}}, tr.Unpack())
}

func TestTrajectoryAppendCopiesAndChecksDim(t *testing.T) {
	tr := NewTrajectory(0, State{1})
	x := State{2}
	require.NoError(t, tr.Append(1, x))
	x[0] = 7
	_, last := tr.Last()
	assert.Equal(t, 2.0, last[0])

	err := tr.Append(2, State{1, 2})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	assert.Equal(t, 2, tr.Len())
}

func TestTrajectoryEmpty(t *testing.T) {
	var tr Trajectory
	tEnd, x := tr.Last()
	assert.Equal(t, 0.0, tEnd)
	assert.Nil(t, x)
	assert.Equal(t, 0, tr.Dim())
}

func TestObservers(t *testing.T) {
	var got []string
	obs := Observers{
		ObserverFunc(func(t float64, x State) { got = append(got, fmt.Sprintf("a%g", t)) }),
		ObserverFunc(func(t float64, x State) { got = append(got, fmt.Sprintf("b%g", t)) }),
	}
	obs.OnStep(1, State{0})
	obs.OnStep(2, State{0})
	assert.Equal(t, []string{"a1", "b1", "a2", "b2"}, got)
}

func TestErrors(t *testing.T) {
	stepErr := &StepError{Step: 3, Time: 0.25, State: State{1}, Wrapped: ErrNotConverged}
	assert.True(t, errors.Is(stepErr, ErrNotConverged))
	assert.Contains(t, stepErr.Error(), "step 3")
	assert.Contains(t, stepErr.Error(), "t=0.25")

	depthErr := &DepthError{Time: 1, Interval: 0.5, MaxDepth: 4}
	assert.True(t, errors.Is(depthErr, ErrNotConverged))
	assert.Contains(t, depthErr.Error(), "depth 4")

	wrapped := fmt.Errorf("run: %w", &StepError{Wrapped: depthErr})
	var de *DepthError
	require.True(t, errors.As(wrapped, &de))
	assert.Equal(t, 0.5, de.Interval)
}
