package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/integrators"
	"github.com/san-kum/odeint/internal/physics"
)

type Registry struct {
	systems  map[string]func() dynamo.System
	steppers map[string]func(cfg *config.Config) (integrators.Stepper, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		systems:  make(map[string]func() dynamo.System),
		steppers: make(map[string]func(*config.Config) (integrators.Stepper, error)),
	}

	for _, sys := range physics.Catalog() {
		r.Register(sys)
	}

	r.steppers[config.Euler] = func(*config.Config) (integrators.Stepper, error) { return integrators.NewEuler(), nil }
	r.steppers[config.RK4] = func(*config.Config) (integrators.Stepper, error) { return integrators.NewRK4(), nil }
	r.steppers[config.Verlet] = func(*config.Config) (integrators.Stepper, error) { return integrators.NewVerlet(), nil }
	r.steppers[config.Leapfrog] = func(*config.Config) (integrators.Stepper, error) { return integrators.NewLeapfrog(), nil }
	r.steppers[config.BulirschStoer] = func(cfg *config.Config) (integrators.Stepper, error) {
		norm, err := integrators.NormByName(cfg.Norm)
		if err != nil {
			return nil, err
		}
		bs := integrators.NewBulirschStoer(cfg.Accuracy)
		bs.Norm = norm
		if cfg.MaxRows > 0 {
			bs.MaxRows = cfg.MaxRows
		}
		return bs, nil
	}

	return r
}

// Register adds or replaces a system under its own name.
func (r *Registry) Register(sys dynamo.System) {
	r.systems[sys.Name] = func() dynamo.System { return sys }
}

func (r *Registry) GetSystem(name string) (dynamo.System, error) {
	fn, ok := r.systems[name]
	if !ok {
		return dynamo.System{}, fmt.Errorf("unknown system: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListSystems() []string {
	names := make([]string, 0, len(r.systems))
	for name := range r.systems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params turns a config parameter map into a parameter set: an empty map
// selects the system defaults.
func Params(values map[string]float64) dynamo.Params {
	if len(values) == 0 {
		return dynamo.DefaultParams()
	}
	return dynamo.ExplicitParams(values)
}

// Problem binds the configured system, parameters and initial state.
func (r *Registry) Problem(cfg *config.Config) (*dynamo.Problem, error) {
	sys, err := r.GetSystem(cfg.System)
	if err != nil {
		return nil, err
	}
	return dynamo.NewProblem(sys, Params(cfg.Params), dynamo.Initial{T0: cfg.T0, X0: initialState(cfg, sys), Dim: cfg.Dim})
}

// Stepper builds a fresh single-step scheme for a fixed-step integrator name.
func (r *Registry) Stepper(cfg *config.Config) (integrators.Stepper, error) {
	build, ok := r.steppers[cfg.Integrator]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a fixed-step integrator", dynamo.ErrInvalidInput, cfg.Integrator)
	}
	return build(cfg)
}

// Build validates cfg and returns a ready integrator for it.
func (r *Registry) Build(cfg *config.Config) (integrators.Integrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrInvalidInput, err)
	}
	sys, err := r.GetSystem(cfg.System)
	if err != nil {
		return nil, err
	}
	params := Params(cfg.Params)
	init := dynamo.Initial{T0: cfg.T0, X0: initialState(cfg, sys), Dim: cfg.Dim}

	if cfg.Integrator == config.AdaptiveBulirschStoer {
		norm, err := integrators.NormByName(cfg.Norm)
		if err != nil {
			return nil, err
		}
		abs, err := integrators.NewAdaptiveBulirschStoer(sys, params, integrators.AdaptiveBulirschStoerConfig{
			Accuracy: cfg.Accuracy,
			MaxRows:  cfg.MaxRows,
			MaxDepth: cfg.MaxDepth,
			Norm:     norm,
		})
		if err != nil {
			return nil, err
		}
		run, err := abs.Start(init, cfg.Duration)
		if err != nil {
			return nil, err
		}
		return run, nil
	}

	prob, err := r.Problem(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Integrator == config.AdaptiveRK4 {
		run, err := integrators.NewAdaptiveRK4(prob, integrators.AdaptiveRK4Config{
			Duration: cfg.Duration,
			Dt0:      cfg.Dt0,
			Accuracy: cfg.Accuracy,
			Monitor:  cfg.Monitor,
		})
		if err != nil {
			return nil, err
		}
		return run, nil
	}

	stepper, err := r.Stepper(cfg)
	if err != nil {
		return nil, err
	}
	var run *integrators.Fixed
	if cfg.Steps > 0 {
		run, err = integrators.NewFixed(stepper, prob, cfg.Dt, cfg.Steps)
	} else {
		run, err = integrators.NewFixedSpan(stepper, prob, cfg.Dt, cfg.Duration)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// initialState falls back to the system's default state when the config
// names neither a state nor a dimension.
func initialState(cfg *config.Config, sys dynamo.System) dynamo.State {
	if len(cfg.Initial) > 0 {
		return dynamo.State(cfg.Initial).Clone()
	}
	if cfg.Dim == 0 && len(sys.DefaultState) > 0 {
		return sys.DefaultState.Clone()
	}
	return nil
}
