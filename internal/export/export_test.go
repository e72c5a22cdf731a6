package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrajectory(t *testing.T) *dynamo.Trajectory {
	t.Helper()
	traj := dynamo.NewTrajectory(0, dynamo.State{1, 0})
	require.NoError(t, traj.Append(0.5, dynamo.State{0.5, -0.25}))
	require.NoError(t, traj.Append(1, dynamo.State{0.25, -0.125}))
	traj.Stats.Evaluations = 8
	traj.Stats.Accepted = 2
	traj.Stats.StepSizes = []float64{0.5, 0.5}
	return traj
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := Meta{System: "decay", Integrator: "rk4", Metrics: map[string]float64{"mean_step": 0.5}}
	require.NoError(t, JSON(&buf, meta, sampleTrajectory(t)))

	var got ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	_, err := uuid.Parse(got.ID)
	assert.NoError(t, err, "a run id is generated when missing")
	assert.Equal(t, "decay", got.System)
	assert.Equal(t, 3, got.Samples)
	assert.Equal(t, 8, got.Evaluations)
	assert.Equal(t, []float64{0, 0.5, 1}, got.Times)
	assert.Equal(t, []float64{0.25, -0.125}, got.States[2])
	assert.Equal(t, 0.5, got.Metrics["mean_step"])
}

func TestJSONKeepsID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, Meta{ID: "run-1"}, sampleTrajectory(t)))
	assert.Contains(t, buf.String(), `"id": "run-1"`)
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sampleTrajectory(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"t", "x0", "x1"}, rows[0])
	assert.Equal(t, []string{"0.5", "0.5", "-0.25"}, rows[2])
}

func TestCSVColumnNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sampleTrajectory(t), "theta", "omega"))
	assert.True(t, strings.HasPrefix(buf.String(), "t,theta,omega\n"))

	err := CSV(&bytes.Buffer{}, sampleTrajectory(t), "theta")
	assert.True(t, errors.Is(err, dynamo.ErrDimensionMismatch))
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, sampleTrajectory(t), 0, 1, 200, 100))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<polyline")
	assert.Equal(t, 3, strings.Count(out, ","), "one coordinate pair per sample")
	// (1, 0) is the right-most and top-most point.
	assert.Contains(t, out, "190.00,10.00")
}

func TestSVGTimeAxis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, sampleTrajectory(t), -1, 0, 100, 100))
	assert.Contains(t, buf.String(), "10.00,10.00", "t=0 is left, x=1 is top")
}

func TestSVGRejectsColumns(t *testing.T) {
	err := SVG(&bytes.Buffer{}, sampleTrajectory(t), 0, 2, 100, 100)
	assert.True(t, errors.Is(err, dynamo.ErrInvalidInput))
}
