package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrDimensionMismatch indicates operands or states of different lengths.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch")

	// ErrInvalidParams indicates a parameter set that is neither empty nor complete.
	ErrInvalidParams = errors.New("dynamo: invalid parameter set")

	// ErrInvalidInput indicates a non-positive step, duration, accuracy or count.
	ErrInvalidInput = errors.New("dynamo: invalid numeric input")

	// ErrNotConverged indicates an iterative scheme gave up before reaching its target.
	ErrNotConverged = errors.New("dynamo: did not converge")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")
)

// StepError wraps an error with the position in the run where it happened.
type StepError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

// DepthError reports an adaptive bisection that hit its depth bound.
type DepthError struct {
	Time     float64
	Interval float64
	MaxDepth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("dynamo: bisection depth %d exceeded at t=%.6g (interval %.3g)", e.MaxDepth, e.Time, e.Interval)
}

func (e *DepthError) Unwrap() error {
	return ErrNotConverged
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func mismatch(want, got int) error {
	return fmt.Errorf("%w: want %d components, got %d", ErrDimensionMismatch, want, got)
}
