package integrators

import (
	"fmt"
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

const (
	// rk4ErrorScale turns the difference between two half steps and one
	// double step into the RK4 local truncation error.
	rk4ErrorScale = 30.0

	defaultMaxRetries = 60
	// rho^(1/4) is clamped to [minScale, maxScale] per attempt; a zero
	// error estimate grows the step tenfold.
	minScale = 0.1
	maxScale = 10.0
)

type AdaptiveRK4Config struct {
	Duration float64
	Dt0      float64
	// Accuracy is the target error per unit of simulated time.
	Accuracy float64
	// Monitor lists the state indices that enter the error estimate; empty
	// means all of them.
	Monitor []int
	// MaxRetries bounds consecutive rejections of one advance.
	MaxRetries int
}

// AdaptiveRK4 is RK4 with step doubling: two steps of dt are compared with
// one step of 2dt to estimate the local error and steer dt.
type AdaptiveRK4 struct {
	cfg     AdaptiveRK4Config
	rk4     *RK4
	f       dynamo.Func
	dt      float64
	end     float64
	tol     float64
	minStep float64
	traj    *dynamo.Trajectory
}

func NewAdaptiveRK4(prob *dynamo.Problem, cfg AdaptiveRK4Config) (*AdaptiveRK4, error) {
	if err := checkPositive("duration", cfg.Duration); err != nil {
		return nil, err
	}
	if err := checkPositive("dt0", cfg.Dt0); err != nil {
		return nil, err
	}
	if err := checkPositive("accuracy", cfg.Accuracy); err != nil {
		return nil, err
	}
	dim := len(prob.X0)
	if len(cfg.Monitor) == 0 {
		cfg.Monitor = make([]int, dim)
		for i := range cfg.Monitor {
			cfg.Monitor[i] = i
		}
	} else {
		cfg.Monitor = append([]int(nil), cfg.Monitor...)
	}
	for _, idx := range cfg.Monitor {
		if idx < 0 || idx >= dim {
			return nil, fmt.Errorf("%w: monitored index %d outside state of dimension %d", dynamo.ErrInvalidInput, idx, dim)
		}
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	traj := dynamo.NewTrajectory(prob.T0, prob.X0)
	return &AdaptiveRK4{
		cfg:     cfg,
		rk4:     NewRK4(),
		f:       dynamo.Counting(prob.F, &traj.Stats.Evaluations),
		dt:      cfg.Dt0,
		end:     prob.T0 + cfg.Duration,
		tol:     1e-12 * cfg.Duration,
		minStep: 1e-14 * cfg.Duration,
		traj:    traj,
	}, nil
}

func (a *AdaptiveRK4) Name() string { return "rk4-adaptive" }

func (a *AdaptiveRK4) Trajectory() *dynamo.Trajectory { return a.traj }

func (a *AdaptiveRK4) Done() bool {
	t, _ := a.traj.Last()
	return t >= a.end-a.tol
}

// StepSize is the step the next advance will try.
func (a *AdaptiveRK4) StepSize() float64 { return a.dt }

// Advance retries from the current sample until one double step is
// accepted, then records it. rho == 1 counts as accepted.
func (a *AdaptiveRK4) Advance() (float64, dynamo.State, error) {
	t, x := a.traj.Last()

	for attempt := 0; ; attempt++ {
		if attempt >= a.cfg.MaxRetries {
			return 0, nil, fmt.Errorf("%w: %d consecutive rejections at t=%g (dt=%g)", dynamo.ErrStepTooSmall, attempt, t, a.dt)
		}

		dt := a.dt
		clipped := false
		if remaining := a.end - t; 2*dt >= remaining {
			dt = remaining / 2
			clipped = true
		}
		if dt < a.minStep {
			return 0, nil, fmt.Errorf("%w: dt=%g at t=%g", dynamo.ErrStepTooSmall, dt, t)
		}

		tMid, xMid, err := a.rk4.Step(a.f, t, x, dt)
		if err != nil {
			return 0, nil, err
		}
		tA, xA, err := a.rk4.Step(a.f, tMid, xMid, dt)
		if err != nil {
			return 0, nil, err
		}
		_, xB, err := a.rk4.Step(a.f, t, x, 2*dt)
		if err != nil {
			return 0, nil, err
		}

		errEst := a.stepError(xA, xB)
		if math.IsNaN(errEst) || math.IsInf(errEst, 0) {
			return 0, nil, fmt.Errorf("%w: error estimate %g at t=%g", dynamo.ErrInvalidState, errEst, t)
		}

		rho := math.Inf(1)
		if errEst > 0 {
			rho = a.cfg.Accuracy * dt / errEst
		}
		scale := math.Min(maxScale, math.Max(minScale, math.Pow(rho, 0.25)))

		if rho >= 1 {
			if clipped {
				tA = a.end
			} else {
				a.dt = dt * scale
			}
			if err := record(a.traj, tA, xA, dt, errEst); err != nil {
				return 0, nil, err
			}
			return tA, xA, nil
		}

		a.traj.Stats.Rejected++
		a.dt = dt * scale
	}
}

// stepError is the Euclidean norm of (xA - xB)/30 over the monitored indices.
func (a *AdaptiveRK4) stepError(xA, xB dynamo.State) float64 {
	sum := 0.0
	for _, i := range a.cfg.Monitor {
		eps := (xA[i] - xB[i]) / rk4ErrorScale
		sum += eps * eps
	}
	return math.Sqrt(sum)
}
