package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/integrators"
	"github.com/san-kum/odeint/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oscillatorConfig(integrator string) *config.Config {
	return &config.Config{
		System:     "oscillator",
		Integrator: integrator,
		Initial:    []float64{1, 0},
		Dt:         0.01,
		Duration:   1,
		Dt0:        0.01,
		Accuracy:   1e-8,
	}
}

func TestRegistryListsCatalog(t *testing.T) {
	r := NewRegistry()
	names := r.ListSystems()
	assert.Len(t, names, len(physics.Catalog()))
	assert.Contains(t, names, "orbit")
	assert.Contains(t, names, "lorenz")
	assert.IsIncreasing(t, names)

	_, err := r.GetSystem("nope")
	assert.Error(t, err)
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register(dynamo.System{
		Name: "constant",
		Dim:  1,
		RHS:  func(float64, dynamo.State, dynamo.Params) dynamo.State { return dynamo.State{2} },
	})

	cfg := &config.Config{System: "constant", Integrator: config.Euler, Initial: []float64{0}, Dt: 0.5, Steps: 4}
	it, err := r.Build(cfg)
	require.NoError(t, err)
	traj, err := runToEnd(it)
	require.NoError(t, err)

	_, x := traj.Last()
	assert.InDelta(t, 4.0, x[0], 1e-12)
}

func TestBuildEveryIntegrator(t *testing.T) {
	r := NewRegistry()
	want := cosSin(1)

	for _, name := range config.Integrators {
		t.Run(name, func(t *testing.T) {
			it, err := r.Build(oscillatorConfig(name))
			require.NoError(t, err)
			assert.Equal(t, name, it.Name())

			traj, err := runToEnd(it)
			require.NoError(t, err)

			tEnd, x := traj.Last()
			assert.InDelta(t, 1.0, tEnd, 1e-9)
			assert.InDelta(t, want[0], x[0], 1e-2)
			assert.InDelta(t, want[1], x[1], 1e-2)
		})
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	r := NewRegistry()

	cfg := oscillatorConfig(config.RK4)
	cfg.Dt = -1
	_, err := r.Build(cfg)
	assert.True(t, errors.Is(err, dynamo.ErrInvalidInput))

	cfg = oscillatorConfig(config.RK4)
	cfg.System = "pendulum3d"
	_, err = r.Build(cfg)
	assert.ErrorContains(t, err, "unknown system")

	cfg = oscillatorConfig(config.AdaptiveBulirschStoer)
	cfg.Params = map[string]float64{"mass": 1}
	_, err = r.Build(cfg)
	assert.True(t, errors.Is(err, dynamo.ErrInvalidParams))

	cfg = oscillatorConfig(config.RK4)
	cfg.Initial = []float64{1, 0, 0}
	_, err = r.Build(cfg)
	assert.True(t, errors.Is(err, dynamo.ErrDimensionMismatch))

	cfg = oscillatorConfig(config.AdaptiveRK4)
	cfg.Monitor = []int{5}
	_, err = r.Build(cfg)
	assert.True(t, errors.Is(err, dynamo.ErrInvalidInput))
}

func TestBuildUsesDefaultState(t *testing.T) {
	cfg := &config.Config{System: "lorenz", Integrator: config.RK4, Dt: 0.01, Steps: 1}
	it, err := NewRegistry().Build(cfg)
	require.NoError(t, err)

	_, x0 := it.Trajectory().At(0)
	assert.Equal(t, physics.Lorenz().DefaultState, x0)
}

func TestBuildZeroState(t *testing.T) {
	cfg := &config.Config{System: "decay", Integrator: config.Euler, Dim: 3, Dt: 0.1, Steps: 2}
	it, err := NewRegistry().Build(cfg)
	require.NoError(t, err)

	_, x0 := it.Trajectory().At(0)
	assert.Equal(t, dynamo.State{0, 0, 0}, x0)
}

func TestExperimentRun(t *testing.T) {
	cfg := config.GetPreset("decay", "unit")
	res, err := New(cfg, nil).Run()
	require.NoError(t, err)
	require.NoError(t, res.Err)

	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err)
	assert.Equal(t, config.AdaptiveBulirschStoer, res.Integrator)
	assert.Contains(t, res.Metrics, "mean_step")
	assert.Equal(t, 1.0, res.Metrics["stability"])

	_, x := res.Trajectory.Last()
	assert.InDelta(t, math.Exp(-10), x[0], 1e-8)
}

func TestExperimentEnergyDrift(t *testing.T) {
	cfg := config.GetPreset("oscillator", "verlet")
	res, err := New(cfg, nil).Run()
	require.NoError(t, err)

	require.Contains(t, res.Metrics, "energy_drift")
	assert.Less(t, res.Metrics["energy_drift"], 1e-2, "verlet keeps oscillator energy bounded")
}

func TestExperimentMaxSteps(t *testing.T) {
	cfg := oscillatorConfig(config.RK4)
	cfg.MaxSteps = 3

	var seen int
	res, err := New(cfg, nil).Observe(dynamo.ObserverFunc(func(float64, dynamo.State) { seen++ })).Run()
	require.NoError(t, err)
	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, dynamo.ErrNotConverged))
	assert.Equal(t, 4, res.Trajectory.Len())
	assert.Equal(t, 4, seen)
}

func TestCompare(t *testing.T) {
	cfgs := []*config.Config{
		oscillatorConfig(config.Euler),
		oscillatorConfig(config.RK4),
		oscillatorConfig(config.BulirschStoer),
	}

	results, err := Compare(context.Background(), nil, cfgs, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, res := range results {
		assert.Equal(t, cfgs[i].Integrator, res.Integrator)
	}

	want := cosSin(1)
	errEuler := math.Abs(results[0].Trajectory.States[100][0] - want[0])
	errRK4 := math.Abs(results[1].Trajectory.States[100][0] - want[0])
	assert.Less(t, errRK4, errEuler)
}

func TestCompareStopsOnBuildError(t *testing.T) {
	bad := oscillatorConfig(config.RK4)
	bad.System = "missing"

	_, err := Compare(context.Background(), nil, []*config.Config{oscillatorConfig(config.RK4), bad}, nil)
	assert.ErrorContains(t, err, "run 1")
}

func cosSin(t float64) dynamo.State {
	return dynamo.State{math.Cos(t), -math.Sin(t)}
}

type runner interface {
	Advance() (float64, dynamo.State, error)
	Done() bool
	Trajectory() *dynamo.Trajectory
}

func runToEnd(it runner) (*dynamo.Trajectory, error) {
	for !it.Done() {
		if _, _, err := it.Advance(); err != nil {
			return nil, err
		}
	}
	return it.Trajectory(), nil
}

func TestExperimentRunWith(t *testing.T) {
	calls := 0
	drive := func(it integrators.Integrator, obs dynamo.Observer) (*dynamo.Trajectory, error) {
		calls++
		return integrators.Run(it, integrators.WithObserver(obs), integrators.WithMaxSteps(10))
	}

	res, err := New(oscillatorConfig(config.RK4), nil).RunWith(drive)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, errors.Is(res.Err, dynamo.ErrNotConverged))
	assert.Equal(t, 11, res.Trajectory.Len())
	assert.Contains(t, res.Metrics, "mean_step")
}

func TestExperimentRunWithFatal(t *testing.T) {
	boom := errors.New("boom")
	drive := func(it integrators.Integrator, obs dynamo.Observer) (*dynamo.Trajectory, error) {
		return nil, boom
	}

	res, err := New(oscillatorConfig(config.RK4), nil).RunWith(drive)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
}

func TestEveryPresetBuilds(t *testing.T) {
	r := NewRegistry()
	for _, system := range config.PresetSystems() {
		for _, name := range config.ListPresets(system) {
			_, err := r.Build(config.GetPreset(system, name))
			assert.NoError(t, err, "%s/%s", system, name)
		}
	}
}

func TestFigureEightPresetCloses(t *testing.T) {
	res, err := New(config.GetPreset("threebody", "figure-eight"), nil).Run()
	require.NoError(t, err)
	require.NoError(t, res.Err)

	_, x0 := res.Trajectory.At(0)
	_, x := res.Trajectory.Last()
	for i := range x0 {
		assert.InDelta(t, x0[i], x[i], 1e-4, "component %d", i)
	}
	assert.Less(t, res.Metrics["energy_drift"], 1e-8)
}

func TestRegistryProblemAndStepper(t *testing.T) {
	r := NewRegistry()
	cfg := oscillatorConfig(config.BulirschStoer)
	cfg.Norm = "max"
	cfg.MaxRows = 5

	prob, err := r.Problem(cfg)
	require.NoError(t, err)
	assert.Equal(t, dynamo.State{1, 0}, prob.X0)
	assert.Equal(t, dynamo.State{0, -1}, prob.F(0, prob.X0))

	s, err := r.Stepper(cfg)
	require.NoError(t, err)
	bs, ok := s.(*integrators.BulirschStoer)
	require.True(t, ok)
	assert.Equal(t, 5, bs.MaxRows)

	a, err := r.Stepper(oscillatorConfig(config.RK4))
	require.NoError(t, err)
	b, err := r.Stepper(oscillatorConfig(config.RK4))
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	_, err = r.Stepper(oscillatorConfig(config.AdaptiveRK4))
	assert.True(t, errors.Is(err, dynamo.ErrInvalidInput))
}
