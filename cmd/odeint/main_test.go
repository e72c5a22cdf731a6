package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data", t.TempDir()}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestEverySubcommandParsesHelp(t *testing.T) {
	var root *cobra.Command
	require.NotPanics(t, func() { root = newRootCmd() })

	for _, sub := range root.Commands() {
		t.Run(sub.Name(), func(t *testing.T) {
			_, err := execute(t, sub.Name(), "--help")
			assert.NoError(t, err)
		})
	}
}

func TestBifurcationKeepsParamFlag(t *testing.T) {
	out, err := execute(t, "bifurcation", "oscillator", "-p", "k=2", "--sweep", "k", "--range", "1,4", "--duration", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "k from 1 to 4, 9 peaks of x0")
}

func TestSystemsCommand(t *testing.T) {
	out, err := execute(t, "systems")
	require.NoError(t, err)
	assert.Contains(t, out, "lorenz")
	assert.Contains(t, out, "sigma,rho,beta")
	assert.Contains(t, out, "comet")
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "orbit")
	require.NoError(t, err)
	assert.Contains(t, out, "comet")
	assert.Contains(t, out, "bulirsch-stoer-adaptive")

	out, err = execute(t, "presets", "nope")
	require.NoError(t, err)
	assert.Contains(t, out, "no presets")
}

func TestRunCSV(t *testing.T) {
	out, err := execute(t, "run", "decay", "--initial", "1", "--steps", "10", "--dt", "0.1", "-f", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 12)
	assert.Equal(t, "t,x0", lines[0])
}

func TestRunPresetJSON(t *testing.T) {
	out, err := execute(t, "run", "--preset", "decay/unit", "-f", "json")
	require.NoError(t, err)

	var data struct {
		System     string      `json:"system"`
		Integrator string      `json:"integrator"`
		Times      []float64   `json:"times"`
		States     [][]float64 `json:"states"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &data))
	assert.Equal(t, "decay", data.System)
	assert.Equal(t, "bulirsch-stoer-adaptive", data.Integrator)
	assert.InDelta(t, 10.0, data.Times[len(data.Times)-1], 1e-9)
}

func TestRunFlagsOverridePreset(t *testing.T) {
	out, err := execute(t, "run", "--preset", "decay/unit", "--integrator", "euler", "--steps", "5", "--dt", "0.1", "-f", "csv")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 7)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"run", "--preset", "orbit/nope"}},
		{"unknown system", []string{"run", "nope"}},
		{"unknown integrator", []string{"run", "oscillator", "--integrator", "midpoint"}},
		{"bad param", []string{"run", "oscillator", "-p", "k"}},
		{"bad initial", []string{"run", "oscillator", "--initial", "1,x"}},
		{"unknown format", []string{"run", "oscillator", "--initial", "1,0", "-f", "png"}},
		{"axis out of range", []string{"run", "decay", "--initial", "1", "-f", "phase"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRunSummaryAndPlots(t *testing.T) {
	out, err := execute(t, "run", "oscillator", "--initial", "1,0", "--duration", "6.3")
	require.NoError(t, err)
	assert.Contains(t, out, "oscillator/rk4")
	assert.Contains(t, out, "run id:")

	for _, format := range []string{"plot", "phase", "svg"} {
		out, err := execute(t, "run", "oscillator", "--initial", "1,0", "--duration", "6.3", "-f", format)
		require.NoError(t, err, format)
		assert.NotEmpty(t, out, format)
	}

	out, err = execute(t, "run", "lorenz", "--steps", "500", "-f", "phase", "--z-axis", "2")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	out, err = execute(t, "run", "oscillator", "--integrator", "rk4-adaptive", "--duration", "5", "-f", "steps")
	require.NoError(t, err)
	assert.Contains(t, out, "log10 dt")
}

func TestSavedRuns(t *testing.T) {
	dir := t.TempDir()
	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs(append([]string{"--data", dir}, args...))
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	out := run("list")
	assert.Contains(t, out, "no runs")

	run("run", "oscillator", "--initial", "1,0", "--duration", "3", "--save", "-f", "csv")
	out = run("list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	id := strings.Fields(lines[1])[0]
	assert.Contains(t, lines[1], "oscillator")

	assert.Contains(t, run("plot", id), "x0")
	assert.NotEmpty(t, run("phase", id, "--x-axis", "0", "--y-axis", "1"))
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "oscillator", "euler", "rk4", "verlet", "--initial", "1,0", "--duration", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "euler"))
	assert.True(t, strings.HasPrefix(lines[2], "rk4"))
	assert.True(t, strings.HasPrefix(lines[3], "verlet"))
	assert.Contains(t, lines[0], "ENERGY_DRIFT")
}

func TestCompareRejectsUnknownIntegrator(t *testing.T) {
	_, err := execute(t, "compare", "oscillator", "rk4", "nope", "--initial", "1,0")
	assert.Error(t, err)
}

func TestLyapunovCommand(t *testing.T) {
	out, err := execute(t, "lyapunov", "decay", "--initial", "1", "--steps", "1000", "--dt", "0.01")
	require.NoError(t, err)
	assert.Contains(t, out, "largest lyapunov exponent: -")
	assert.Contains(t, out, "regular")

	out, err = execute(t, "lyapunov", "lorenz", "--steps", "20000", "--transient", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "chaotic")

	_, err = execute(t, "lyapunov", "decay", "--initial", "1", "--integrator", "rk4-adaptive")
	assert.Error(t, err)
}

func TestSpectrumCommand(t *testing.T) {
	out, err := execute(t, "spectrum", "oscillator", "-p", "k=4", "--steps", "2048", "--dt", "0.05", "--top", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "FREQUENCY")
	f, err := strconv.ParseFloat(strings.Fields(lines[1])[0], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Pi, f, 0.01)

	_, err = execute(t, "spectrum", "oscillator", "--steps", "100", "-c", "2")
	assert.Error(t, err)
}

func TestPoincareCommand(t *testing.T) {
	out, err := execute(t, "poincare", "lorenz", "--steps", "5000", "--cross", "2", "--threshold", "27", "--csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "t,x0,x1", lines[0])
	assert.Greater(t, len(lines), 5)

	out, err = execute(t, "poincare", "lorenz", "--steps", "5000", "--cross", "2", "--threshold", "27", "--width", "30", "--height", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "crossings of x2 = 27")
}

func TestBifurcationCommand(t *testing.T) {
	out, err := execute(t, "bifurcation", "oscillator", "--sweep", "k", "--range", "1,4", "--duration", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "k from 1 to 4, 9 peaks of x0")

	_, err = execute(t, "bifurcation", "oscillator", "--range", "1,4")
	assert.Error(t, err)

	_, err = execute(t, "bifurcation", "lorenz", "--sweep", "rho", "--range", "20:30:3")
	assert.Error(t, err, "the other lorenz parameters are missing")
}

func TestSearchCommand(t *testing.T) {
	out, err := execute(t, "search", "oscillator", "--integrator", "euler", "--steps", "1000", "--grid", "k=0.25,1,4")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "ENERGY_DRIFT")
	assert.Contains(t, lines[4], "best: map[k:0.25]")

	_, err = execute(t, "search", "oscillator", "--grid", "k=1", "--metric", "nope")
	assert.Error(t, err)
}
