package integrators

import (
	"fmt"

	"github.com/san-kum/odeint/internal/dynamo"
)

// DefaultMaxDepth bounds interval bisection in the adaptive Bulirsch-Stoer
// run. 64 halvings shrink any interval below float64 resolution.
const DefaultMaxDepth = 64

type AdaptiveBulirschStoerConfig struct {
	// Accuracy is the target error per unit of simulated time.
	Accuracy float64
	// MaxRows is the table size before an interval is split in two.
	MaxRows  int
	MaxDepth int
	Norm     Norm
}

// AdaptiveBulirschStoer integrates a whole span as one Bulirsch-Stoer step
// and bisects every interval whose table fails to converge within MaxRows.
// Unlike the other integrators the initial condition is given to Start,
// not to the constructor.
type AdaptiveBulirschStoer struct {
	name string
	dim  int
	f    dynamo.Func
	cfg  AdaptiveBulirschStoerConfig
}

func NewAdaptiveBulirschStoer(sys dynamo.System, p dynamo.Params, cfg AdaptiveBulirschStoerConfig) (*AdaptiveBulirschStoer, error) {
	if err := checkPositive("accuracy", cfg.Accuracy); err != nil {
		return nil, err
	}
	if cfg.MaxRows == 0 {
		cfg.MaxRows = DefaultBisectionRows
	}
	if cfg.MaxRows < 2 {
		return nil, fmt.Errorf("%w: max rows must be at least 2, got %d", dynamo.ErrInvalidInput, cfg.MaxRows)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth must be positive, got %d", dynamo.ErrInvalidInput, cfg.MaxDepth)
	}
	if cfg.Norm == nil {
		cfg.Norm = EuclideanNorm
	}

	f, err := sys.Bind(p)
	if err != nil {
		return nil, err
	}
	return &AdaptiveBulirschStoer{name: sys.Name, dim: sys.Dim, f: f, cfg: cfg}, nil
}

// Start prepares a run over [init.T0, init.T0+duration].
func (a *AdaptiveBulirschStoer) Start(init dynamo.Initial, duration float64) (*Bisection, error) {
	if err := checkPositive("duration", duration); err != nil {
		return nil, err
	}
	if init.X0 == nil && init.Dim == 0 {
		init.Dim = a.dim
	}
	x0, err := init.Resolve()
	if err != nil {
		return nil, fmt.Errorf("system %s: %w", a.name, err)
	}
	if a.dim != 0 && len(x0) != a.dim {
		return nil, fmt.Errorf("system %s: %w", a.name, dynamo.ErrDimensionMismatch)
	}

	traj := dynamo.NewTrajectory(init.T0, x0)
	return &Bisection{
		f:     dynamo.Counting(a.f, &traj.Stats.Evaluations),
		cfg:   a.cfg,
		stack: []interval{{t: init.T0, dt: duration}},
		traj:  traj,
	}, nil
}

type interval struct {
	t, dt float64
	depth int
}

// Bisection is one adaptive Bulirsch-Stoer run. Pending intervals live on
// an explicit stack, right halves below left halves, so they are visited in
// time order and the current state always sits at the top interval's start.
type Bisection struct {
	f     dynamo.Func
	cfg   AdaptiveBulirschStoerConfig
	stack []interval
	traj  *dynamo.Trajectory
}

func (b *Bisection) Name() string { return "bulirsch-stoer-adaptive" }

func (b *Bisection) Done() bool { return len(b.stack) == 0 }

func (b *Bisection) Trajectory() *dynamo.Trajectory { return b.traj }

// Pending is the number of intervals still to be integrated.
func (b *Bisection) Pending() int { return len(b.stack) }

// Advance splits intervals until one converges and records its end point.
func (b *Bisection) Advance() (float64, dynamo.State, error) {
	for len(b.stack) > 0 {
		iv := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]

		if iv.depth > b.traj.Stats.MaxDepth {
			b.traj.Stats.MaxDepth = iv.depth
		}

		_, x := b.traj.Last()
		res, err := extrapolate(b.f, iv.t, x, iv.dt, b.cfg.Accuracy, b.cfg.MaxRows, b.cfg.Norm)
		if err != nil {
			return 0, nil, err
		}

		if res.converged {
			tNew := iv.t + iv.dt
			if err := record(b.traj, tNew, res.x, iv.dt, res.err); err != nil {
				return 0, nil, err
			}
			return tNew, res.x, nil
		}

		b.traj.Stats.Rejected++
		if iv.depth >= b.cfg.MaxDepth {
			b.stack = append(b.stack, iv)
			return 0, nil, &dynamo.DepthError{Time: iv.t, Interval: iv.dt, MaxDepth: b.cfg.MaxDepth}
		}

		half := iv.dt / 2
		b.stack = append(b.stack,
			interval{t: iv.t + half, dt: half, depth: iv.depth + 1},
			interval{t: iv.t, dt: half, depth: iv.depth + 1},
		)
	}
	return 0, nil, fmt.Errorf("%w: run already complete", dynamo.ErrInvalidInput)
}
