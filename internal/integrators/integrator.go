package integrators

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/odeint/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Stepper is a single-step update rule from (t, x) to (t+dt, x').
type Stepper interface {
	Name() string
	Step(f dynamo.Func, t float64, x dynamo.State, dt float64) (float64, dynamo.State, error)
}

// Integrator is one integration run. Advance moves it forward by one logical
// unit of time and appends the result to the run's trajectory.
type Integrator interface {
	Name() string
	Advance() (float64, dynamo.State, error)
	Done() bool
	Trajectory() *dynamo.Trajectory
}

// Norm aggregates a correction vector into a scalar error magnitude.
type Norm func(eps dynamo.State) float64

// EuclideanNorm measures every component of the correction.
func EuclideanNorm(eps dynamo.State) float64 {
	return eps.Norm()
}

// MaxNorm is the largest absolute component of the correction.
func MaxNorm(eps dynamo.State) float64 {
	if len(eps) == 0 {
		return 0
	}
	return floats.Norm(eps, math.Inf(1))
}

// FirstComponentNorm inspects only eps[0].
func FirstComponentNorm(eps dynamo.State) float64 {
	if len(eps) == 0 {
		return 0
	}
	return math.Abs(eps[0])
}

// NormByName resolves "euclidean", "max" or "first".
func NormByName(name string) (Norm, error) {
	switch name {
	case "", "euclidean":
		return EuclideanNorm, nil
	case "max":
		return MaxNorm, nil
	case "first":
		return FirstComponentNorm, nil
	default:
		return nil, fmt.Errorf("%w: unknown norm %q", dynamo.ErrInvalidInput, name)
	}
}

type options struct {
	observer dynamo.Observer
	logger   *log.Logger
	verbose  bool
	maxSteps int
}

type Option func(*options)

// WithObserver reports every sample, including the initial condition.
func WithObserver(o dynamo.Observer) Option {
	return func(opts *options) { opts.observer = o }
}

func WithLogger(l *log.Logger) Option {
	return func(opts *options) { opts.logger = l }
}

// WithVerbose logs the state after every step at info level.
func WithVerbose(v bool) Option {
	return func(opts *options) { opts.verbose = v }
}

// WithMaxSteps bounds the number of advances; zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(opts *options) { opts.maxSteps = n }
}

// Run advances it until Done and returns its trajectory. Fatal errors return
// a nil trajectory; non-convergence returns the samples recorded so far.
func Run(it Integrator, opts ...Option) (*dynamo.Trajectory, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.verbose && o.logger == nil {
		o.logger = log.Default()
	}

	traj := it.Trajectory()
	if o.observer != nil {
		t0, x0 := traj.Last()
		o.observer.OnStep(t0, x0)
	}

	steps := 0
	for !it.Done() {
		if o.maxSteps > 0 && steps >= o.maxSteps {
			t, x := traj.Last()
			return traj, &dynamo.StepError{
				Step:    steps,
				Time:    t,
				State:   x.Clone(),
				Wrapped: fmt.Errorf("%w: step limit %d reached", dynamo.ErrNotConverged, o.maxSteps),
			}
		}

		t, x, err := it.Advance()
		if err != nil {
			lastT, lastX := traj.Last()
			stepErr := &dynamo.StepError{Step: steps, Time: lastT, State: lastX.Clone(), Wrapped: err}
			if o.logger != nil {
				o.logger.Error("integration failed", "integrator", it.Name(), "step", steps, "t", lastT, "err", err)
			}
			if Recoverable(err) {
				return traj, stepErr
			}
			return nil, stepErr
		}
		steps++

		if o.observer != nil {
			o.observer.OnStep(t, x)
		}
		if o.verbose {
			o.logger.Info("step", "t", t, "x", []float64(x))
		}
	}

	if o.logger != nil {
		o.logger.Debug("integration complete",
			"integrator", it.Name(),
			"samples", traj.Len(),
			"evaluations", traj.Stats.Evaluations,
			"rejected", traj.Stats.Rejected,
		)
	}
	return traj, nil
}

// Recoverable reports whether err leaves a usable partial trajectory.
func Recoverable(err error) bool {
	return errors.Is(err, dynamo.ErrNotConverged) || errors.Is(err, dynamo.ErrStepTooSmall)
}

func checkPositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive, got %g", dynamo.ErrInvalidInput, name, v)
	}
	return nil
}

// record appends an accepted sample and its bookkeeping.
func record(traj *dynamo.Trajectory, t float64, x dynamo.State, dt, errEst float64) error {
	if !x.IsValid() {
		return fmt.Errorf("%w at t=%g", dynamo.ErrInvalidState, t)
	}
	if err := traj.Append(t, x); err != nil {
		return err
	}
	traj.Stats.Accepted++
	traj.Stats.StepSizes = append(traj.Stats.StepSizes, dt)
	traj.Stats.Errors = append(traj.Stats.Errors, errEst)
	return nil
}
