package config

import (
	"math"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"orbit": {
		"comet": {
			System: "orbit", Integrator: AdaptiveBulirschStoer, Duration: 3e9, Accuracy: 1e-7,
			Initial: []float64{4.0e12, 0, 0, 474.0},
		},
		"comet-rk4": {
			System: "orbit", Integrator: AdaptiveRK4, Duration: 3e9, Dt0: 30000, Accuracy: 5e-2,
			Initial: []float64{4.0e12, 0, 0, 474.0}, Monitor: []int{0, 1},
		},
	},
	"lorenz": {
		"attractor": {
			System: "lorenz", Integrator: BulirschStoer, Dt: 0.01, Steps: 10000, Accuracy: 1e-6,
			Initial: []float64{0.01, 0.01, 0.01}, Bound: 60,
		},
		"rk4": {
			System: "lorenz", Integrator: RK4, Dt: 0.01, Duration: 50,
			Initial: []float64{1, 1, 1},
		},
	},
	"pendulum": {
		"small": {
			System: "pendulum", Integrator: RK4, Dt: 0.01, Duration: 20.0,
			Initial: []float64{0.2, 0.0},
		},
		"inverted": {
			System: "pendulum", Integrator: AdaptiveRK4, Duration: 25, Dt0: 0.05, Accuracy: 1e-3,
			Initial: []float64{0.99 * math.Pi, 0.0}, Monitor: []int{0, 1},
		},
	},
	"driven-pendulum": {
		"shaken": {
			System: "driven-pendulum", Integrator: RK4, Dt: 0.0035, Steps: 10000,
			Initial: []float64{0, 0},
		},
	},
	"vanderpol": {
		"relaxation": {
			System: "vanderpol", Integrator: AdaptiveRK4, Duration: 100, Dt0: 0.01, Accuracy: 1e-3,
			Initial: []float64{1, 0}, Monitor: []int{0, 1},
		},
	},
	"lotka-volterra": {
		"predator-prey": {
			System: "lotka-volterra", Integrator: AdaptiveRK4, Duration: 50, Dt0: 0.05, Accuracy: 1e-4,
			Initial: []float64{10, 5}, Monitor: []int{0, 1},
		},
	},
	"brusselator": {
		"unstable": {
			System: "brusselator", Integrator: BulirschStoer, Dt: 0.1, Duration: 50, Accuracy: 1e-8,
			Initial: []float64{0, 0},
		},
	},
	"decay": {
		"unit": {
			System: "decay", Integrator: AdaptiveBulirschStoer, Duration: 10, Accuracy: 1e-10,
			Initial: []float64{1},
		},
	},
	"threebody": {
		"figure-eight": {
			System: "threebody", Integrator: AdaptiveBulirschStoer, Duration: 6.32591398, Accuracy: 1e-10,
		},
	},
	"double-pendulum": {
		"chaos": {
			System: "double-pendulum", Integrator: RK4, Dt: 0.001, Duration: 30,
			Initial: []float64{math.Pi / 2, math.Pi / 2, 0, 0},
		},
	},
	"nbody": {
		"ring": {
			System: "nbody", Integrator: BulirschStoer, Dt: 0.01, Duration: 10, Accuracy: 1e-8,
		},
	},
	"wave": {
		"pluck": {
			System: "wave", Integrator: Verlet, Dt: 0.001, Duration: 4,
		},
	},
	"magnetic-pendulum": {
		"basin": {
			System: "magnetic-pendulum", Integrator: AdaptiveRK4, Duration: 40, Dt0: 0.01, Accuracy: 1e-4,
			Initial: []float64{0.5, 0.3, 0, 0}, Monitor: []int{0, 1},
		},
	},
	"oscillator": {
		"verlet": {
			System: "oscillator", Integrator: Verlet, Dt: 0.05, Duration: 100,
			Initial: []float64{1, 0},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetSystems lists the systems that have presets.
func PresetSystems() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
