package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Integrator names accepted in run files.
const (
	Euler                 = "euler"
	RK4                   = "rk4"
	BulirschStoer         = "bulirsch-stoer"
	AdaptiveRK4           = "rk4-adaptive"
	AdaptiveBulirschStoer = "bulirsch-stoer-adaptive"
	Verlet                = "verlet"
	Leapfrog              = "leapfrog"
)

var Integrators = []string{Euler, RK4, BulirschStoer, AdaptiveRK4, AdaptiveBulirschStoer, Verlet, Leapfrog}

var Norms = []string{"euclidean", "max", "first"}

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultAccuracy = 1e-6
)

// Config describes one integration run.
type Config struct {
	System     string             `yaml:"system" env:"ODEINT_SYSTEM"`
	Integrator string             `yaml:"integrator" env:"ODEINT_INTEGRATOR"`
	T0         float64            `yaml:"t0" env:"ODEINT_T0"`
	Initial    []float64          `yaml:"initial,omitempty" env:"ODEINT_INITIAL" envSeparator:","`
	Dim        int                `yaml:"dim,omitempty" env:"ODEINT_DIM"`
	Params     map[string]float64 `yaml:"params,omitempty" env:"ODEINT_PARAMS"`

	// Fixed-step runs take Steps steps of Dt, or cover Duration when Steps is 0.
	Dt       float64 `yaml:"dt,omitempty" env:"ODEINT_DT"`
	Steps    int     `yaml:"steps,omitempty" env:"ODEINT_STEPS"`
	Duration float64 `yaml:"duration,omitempty" env:"ODEINT_DURATION"`

	Dt0      float64 `yaml:"dt0,omitempty" env:"ODEINT_DT0"`
	Accuracy float64 `yaml:"accuracy,omitempty" env:"ODEINT_ACCURACY"`
	Monitor  []int   `yaml:"monitor,omitempty" env:"ODEINT_MONITOR" envSeparator:","`
	MaxRows  int     `yaml:"max_rows,omitempty" env:"ODEINT_MAX_ROWS"`
	MaxDepth int     `yaml:"max_depth,omitempty" env:"ODEINT_MAX_DEPTH"`
	Norm     string  `yaml:"norm,omitempty" env:"ODEINT_NORM"`
	MaxSteps int     `yaml:"max_steps,omitempty" env:"ODEINT_MAX_STEPS"`

	// Bound is the half-width of the box the stability metric checks; 0
	// checks only for NaN and Inf.
	Bound float64 `yaml:"bound,omitempty" env:"ODEINT_BOUND"`
}

func DefaultConfig() *Config {
	return &Config{
		System:     "pendulum",
		Integrator: RK4,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Dt0:        DefaultDt,
		Accuracy:   DefaultAccuracy,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets can be edited safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Initial = append([]float64(nil), c.Initial...)
	out.Monitor = append([]int(nil), c.Monitor...)
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

// Fixed reports whether the integrator takes equal steps.
func (c *Config) Fixed() bool {
	switch c.Integrator {
	case Euler, RK4, BulirschStoer, Verlet, Leapfrog:
		return true
	}
	return false
}

// End is the time the run is expected to reach.
func (c *Config) End() float64 {
	if c.Fixed() && c.Steps > 0 {
		return c.T0 + float64(c.Steps)*c.Dt
	}
	return c.T0 + c.Duration
}

// Validate checks names and numeric ranges before any integrator is built.
func (c *Config) Validate() error {
	if c.System == "" {
		return fmt.Errorf("system is required")
	}
	if !contains(Integrators, c.Integrator) {
		return fmt.Errorf("unknown integrator %q (want one of %v)", c.Integrator, Integrators)
	}
	if c.Norm != "" && !contains(Norms, c.Norm) {
		return fmt.Errorf("unknown norm %q (want one of %v)", c.Norm, Norms)
	}
	if c.Dim < 0 {
		return fmt.Errorf("dim must be non-negative, got %d", c.Dim)
	}
	if c.Dim > 0 && len(c.Initial) > 0 && len(c.Initial) != c.Dim {
		return fmt.Errorf("initial state has %d components, dim is %d", len(c.Initial), c.Dim)
	}
	if c.Bound < 0 {
		return fmt.Errorf("bound must be non-negative, got %g", c.Bound)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", c.MaxSteps)
	}

	switch {
	case c.Fixed():
		if err := positive("dt", c.Dt); err != nil {
			return err
		}
		if c.Steps < 0 {
			return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
		}
		if c.Steps == 0 {
			if err := positive("duration", c.Duration); err != nil {
				return err
			}
		}
	case c.Integrator == AdaptiveRK4:
		if err := positive("duration", c.Duration); err != nil {
			return err
		}
		if err := positive("dt0", c.Dt0); err != nil {
			return err
		}
	default:
		if err := positive("duration", c.Duration); err != nil {
			return err
		}
	}

	if c.Integrator == BulirschStoer || c.Integrator == AdaptiveRK4 || c.Integrator == AdaptiveBulirschStoer {
		if err := positive("accuracy", c.Accuracy); err != nil {
			return err
		}
	}
	if c.MaxRows < 0 || c.MaxRows == 1 {
		return fmt.Errorf("max_rows must be 0 (default) or at least 2, got %d", c.MaxRows)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth)
	}
	for _, idx := range c.Monitor {
		if idx < 0 {
			return fmt.Errorf("monitor index %d is negative", idx)
		}
	}
	return nil
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be positive, got %g", name, v)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
