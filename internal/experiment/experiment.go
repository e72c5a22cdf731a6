package experiment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/integrators"
	"github.com/san-kum/odeint/internal/metrics"
	"github.com/san-kum/odeint/internal/physics"
	"golang.org/x/sync/errgroup"
)

// Result is one finished run. Err holds a recoverable integration error;
// Trajectory is then the partial result.
type Result struct {
	ID         string
	Config     *config.Config
	Integrator string
	Trajectory *dynamo.Trajectory
	Metrics    map[string]float64
	Elapsed    time.Duration
	Err        error
}

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	logger   *log.Logger
	verbose  bool
	observer dynamo.Observer
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Experiment{cfg: cfg, registry: registry}
}

func (e *Experiment) WithLogger(l *log.Logger, verbose bool) *Experiment {
	e.logger = l
	e.verbose = verbose
	return e
}

// Observe adds an observer that sees every sample, next to the metrics.
func (e *Experiment) Observe(o dynamo.Observer) *Experiment {
	e.observer = o
	return e
}

// DefaultMetrics returns the metrics collected for cfg: step spacing,
// stability within cfg.Bound and, when the system has one, energy drift.
func DefaultMetrics(cfg *config.Config) metrics.Set {
	bound := cfg.Bound
	if bound == 0 {
		bound = math.Inf(1)
	}
	set := metrics.Set{metrics.NewSteps(), metrics.NewStability(bound)}
	if energy, ok := physics.Energy(cfg.System, Params(cfg.Params)); ok {
		set = append(set, metrics.NewEnergyDrift(energy))
	}
	return set
}

// Driver advances it to completion, reporting every sample to obs. It
// follows integrators.Run: a nil trajectory means a fatal error.
type Driver func(it integrators.Integrator, obs dynamo.Observer) (*dynamo.Trajectory, error)

// Run builds the integrator and drives it to completion. Build errors and
// fatal integration errors are returned; recoverable ones land in Result.Err.
func (e *Experiment) Run() (*Result, error) {
	return e.RunWith(e.drive)
}

func (e *Experiment) drive(it integrators.Integrator, obs dynamo.Observer) (*dynamo.Trajectory, error) {
	opts := []integrators.Option{
		integrators.WithObserver(obs),
		integrators.WithVerbose(e.verbose),
		integrators.WithMaxSteps(e.cfg.MaxSteps),
	}
	if e.logger != nil {
		opts = append(opts, integrators.WithLogger(e.logger))
	}
	return integrators.Run(it, opts...)
}

// RunWith is Run with a caller-supplied driver, such as an interactive view.
func (e *Experiment) RunWith(drive Driver) (*Result, error) {
	it, err := e.registry.Build(e.cfg)
	if err != nil {
		return nil, err
	}

	set := DefaultMetrics(e.cfg)
	observers := dynamo.Observers{set}
	if e.observer != nil {
		observers = append(observers, e.observer)
	}

	start := time.Now()
	traj, runErr := drive(it, observers)
	if traj == nil {
		return nil, runErr
	}

	return &Result{
		ID:         uuid.New().String(),
		Config:     e.cfg,
		Integrator: it.Name(),
		Trajectory: traj,
		Metrics:    set.Values(),
		Elapsed:    time.Since(start),
		Err:        runErr,
	}, nil
}

// Compare runs independent configurations concurrently. Results keep the
// order of cfgs. The first build or fatal error cancels runs not yet started.
func Compare(ctx context.Context, registry *Registry, cfgs []*config.Config, logger *log.Logger) ([]*Result, error) {
	if registry == nil {
		registry = NewRegistry()
	}
	results := make([]*Result, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			exp := New(cfg, registry)
			if logger != nil {
				exp.WithLogger(logger.With("run", i), false)
			}
			res, err := exp.Run()
			if err != nil {
				return fmt.Errorf("run %d (%s/%s): %w", i, cfg.System, cfg.Integrator, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
