package analysis

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/experiment"
)

// BifurcationPoint holds the local maxima of one component for a given
// parameter value.
type BifurcationPoint struct {
	Param float64
	Peaks []float64
}

// Bifurcation runs base once per value of param and records the peaks of
// component col reached after the transient. base.Params must name every
// other parameter of the system, or be empty for a one-parameter system.
// The runs are independent and executed concurrently.
func Bifurcation(ctx context.Context, registry *experiment.Registry, base *config.Config, param string, values []float64, col int, transient float64, logger *log.Logger) ([]BifurcationPoint, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no parameter values", dynamo.ErrInvalidInput)
	}
	cfgs := make([]*config.Config, len(values))
	for i, v := range values {
		cfg := base.Clone()
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		cfg.Params[param] = v
		cfgs[i] = cfg
	}

	results, err := experiment.Compare(ctx, registry, cfgs, logger)
	if err != nil {
		return nil, err
	}

	out := make([]BifurcationPoint, len(results))
	for i, res := range results {
		if res.Err != nil {
			return nil, fmt.Errorf("%s=%g: %w", param, values[i], res.Err)
		}
		peaks, err := Peaks(res.Trajectory, col, base.T0+transient)
		if err != nil {
			return nil, err
		}
		out[i] = BifurcationPoint{Param: values[i], Peaks: peaks}
	}
	return out, nil
}

// Peaks returns the strict local maxima of component col at or after from.
func Peaks(traj *dynamo.Trajectory, col int, from float64) ([]float64, error) {
	if col < 0 || col >= traj.Dim() {
		return nil, fmt.Errorf("%w: column %d of a %d-dimensional state", dynamo.ErrInvalidInput, col, traj.Dim())
	}
	var peaks []float64
	for i := 1; i+1 < traj.Len(); i++ {
		if traj.Times[i] < from {
			continue
		}
		prev, cur, next := traj.States[i-1][col], traj.States[i][col], traj.States[i+1][col]
		if cur > prev && cur >= next {
			peaks = append(peaks, cur)
		}
	}
	return peaks, nil
}
