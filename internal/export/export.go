package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/san-kum/odeint/internal/dynamo"
)

// Meta describes the run a trajectory came from.
type Meta struct {
	ID         string             `json:"id"`
	System     string             `json:"system"`
	Integrator string             `json:"integrator"`
	Params     map[string]float64 `json:"params,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	Error      string             `json:"error,omitempty"`
}

type ExportData struct {
	Meta
	Samples     int         `json:"samples"`
	Evaluations int         `json:"evaluations"`
	Accepted    int         `json:"accepted"`
	Rejected    int         `json:"rejected"`
	MaxDepth    int         `json:"max_depth,omitempty"`
	Times       []float64   `json:"times"`
	States      [][]float64 `json:"states"`
	StepSizes   []float64   `json:"step_sizes,omitempty"`
}

// EnsureID gives meta a fresh run identifier if it has none.
func (m *Meta) EnsureID() {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
}

func JSON(w io.Writer, meta Meta, traj *dynamo.Trajectory) error {
	meta.EnsureID()
	data := ExportData{
		Meta:        meta,
		Samples:     traj.Len(),
		Evaluations: traj.Stats.Evaluations,
		Accepted:    traj.Stats.Accepted,
		Rejected:    traj.Stats.Rejected,
		MaxDepth:    traj.Stats.MaxDepth,
		Times:       traj.Times,
		States:      make([][]float64, len(traj.States)),
		StepSizes:   traj.Stats.StepSizes,
	}
	for i, s := range traj.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// CSV writes one row per sample: t, x0, x1, ... The header names the
// components x0..xN-1 unless columns are given.
func CSV(w io.Writer, traj *dynamo.Trajectory, columns ...string) error {
	dim := traj.Dim()
	if len(columns) != 0 && len(columns) != dim {
		return fmt.Errorf("%w: %d column names for %d components", dynamo.ErrDimensionMismatch, len(columns), dim)
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, dim+1)
	header = append(header, "t")
	for i := 0; i < dim; i++ {
		if len(columns) != 0 {
			header = append(header, columns[i])
		} else {
			header = append(header, "x"+strconv.Itoa(i))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, dim+1)
	for i, t := range traj.Times {
		row[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, v := range traj.States[i] {
			row[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
