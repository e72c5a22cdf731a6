package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

type validator interface {
	Validate() error
}

// Fixed runs a Stepper for a fixed number of equal steps.
type Fixed struct {
	stepper Stepper
	f       dynamo.Func
	dt      float64
	steps   int
	taken   int
	traj    *dynamo.Trajectory

	// end is set when the last step is shortened to land on it.
	end  float64
	clip bool
}

// NewFixed prepares steps applications of s with step size dt from the
// problem's initial condition.
func NewFixed(s Stepper, prob *dynamo.Problem, dt float64, steps int) (*Fixed, error) {
	if err := checkPositive("dt", dt); err != nil {
		return nil, err
	}
	if steps <= 0 {
		return nil, fmt.Errorf("%w: step count must be positive, got %d", dynamo.ErrInvalidInput, steps)
	}
	if v, ok := s.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	traj := dynamo.NewTrajectory(prob.T0, prob.X0)
	return &Fixed{
		stepper: s,
		f:       dynamo.Counting(prob.F, &traj.Stats.Evaluations),
		dt:      dt,
		steps:   steps,
		traj:    traj,
	}, nil
}

// NewFixedSpan covers exactly duration with steps of size dt. When duration
// is not a whole number of steps the last step is shortened to end at
// t0+duration.
func NewFixedSpan(s Stepper, prob *dynamo.Problem, dt, duration float64) (*Fixed, error) {
	if err := checkPositive("duration", duration); err != nil {
		return nil, err
	}
	if err := checkPositive("dt", dt); err != nil {
		return nil, err
	}
	steps := int(math.Ceil(duration/dt - spanSlack))
	if steps < 1 {
		steps = 1
	}
	r, err := NewFixed(s, prob, dt, steps)
	if err != nil {
		return nil, err
	}
	if last := duration - float64(steps-1)*dt; math.Abs(last-dt) > spanSlack*dt {
		r.end = prob.T0 + duration
		r.clip = true
	}
	return r, nil
}

// spanSlack absorbs rounding in duration/dt, so 1/0.1 is ten steps.
const spanSlack = 1e-9

func (r *Fixed) Name() string { return r.stepper.Name() }

func (r *Fixed) Done() bool { return r.taken >= r.steps }

func (r *Fixed) Trajectory() *dynamo.Trajectory { return r.traj }

func (r *Fixed) Advance() (float64, dynamo.State, error) {
	t, x := r.traj.Last()
	dt := r.dt
	last := r.clip && r.taken == r.steps-1
	if last {
		dt = r.end - t
	}
	tNew, xNew, err := r.stepper.Step(r.f, t, x, dt)
	if err != nil {
		return 0, nil, err
	}
	if last {
		tNew = r.end
	}

	errEst := 0.0
	if e, ok := r.stepper.(interface{ LastError() float64 }); ok {
		errEst = e.LastError()
	}
	if err := record(r.traj, tNew, xNew, dt, errEst); err != nil {
		return 0, nil, err
	}
	r.taken++
	return tNew, xNew, nil
}
