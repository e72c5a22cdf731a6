// Package optim searches system parameters for the run that minimizes a
// metric.
package optim

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/san-kum/odeint/internal/config"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/experiment"
)

// Axis is one swept parameter.
type Axis struct {
	Name   string
	Values []float64
}

// ParseAxis reads "name=lo:hi:n" or "name=a,b,c".
func ParseAxis(s string) (Axis, error) {
	name, raw, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Axis{}, fmt.Errorf("axis %q: want name=lo:hi:n", s)
	}
	values, err := config.ParseRange(raw)
	if err != nil {
		return Axis{}, fmt.Errorf("axis %s: %w", name, err)
	}
	return Axis{Name: name, Values: values}, nil
}

type GridSearch struct {
	axes []Axis
}

func NewGridSearch(axes ...Axis) *GridSearch {
	return &GridSearch{axes: axes}
}

// Points is the cartesian product of the axes, first axis slowest.
func (g *GridSearch) Points() []map[string]float64 {
	var out []map[string]float64
	g.collect(0, map[string]float64{}, &out)
	return out
}

func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.axes) {
		*out = append(*out, current)
		return
	}
	axis := g.axes[depth]
	for _, v := range axis.Values {
		next := make(map[string]float64, len(current)+1)
		for k, cv := range current {
			next[k] = cv
		}
		next[axis.Name] = v
		g.collect(depth+1, next, out)
	}
}

// Outcome is one evaluated grid point. Value is NaN when the run failed or
// did not report the metric.
type Outcome struct {
	Params map[string]float64
	Value  float64
	Result *experiment.Result
}

// Search runs base once per grid point, with the point's values laid over
// base.Params, and returns the outcome with the smallest metric together
// with every outcome in grid order.
func (g *GridSearch) Search(ctx context.Context, registry *experiment.Registry, base *config.Config, metric string, logger *log.Logger) (Outcome, []Outcome, error) {
	seen := map[string]bool{}
	for _, axis := range g.axes {
		if len(axis.Values) == 0 {
			return Outcome{}, nil, fmt.Errorf("%w: axis %s has no values", dynamo.ErrInvalidInput, axis.Name)
		}
		if seen[axis.Name] {
			return Outcome{}, nil, fmt.Errorf("%w: axis %s given twice", dynamo.ErrInvalidInput, axis.Name)
		}
		seen[axis.Name] = true
	}

	points := g.Points()
	cfgs := make([]*config.Config, len(points))
	for i, pt := range points {
		cfg := base.Clone()
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		for k, v := range pt {
			cfg.Params[k] = v
		}
		cfgs[i] = cfg
	}

	results, err := experiment.Compare(ctx, registry, cfgs, logger)
	if err != nil {
		return Outcome{}, nil, err
	}

	all := make([]Outcome, len(results))
	best := -1
	for i, res := range results {
		v, ok := res.Metrics[metric]
		if !ok && i == 0 {
			return Outcome{}, nil, fmt.Errorf("%w: run does not report metric %q", dynamo.ErrInvalidInput, metric)
		}
		if !ok || res.Err != nil {
			v = math.NaN()
		}
		all[i] = Outcome{Params: points[i], Value: v, Result: res}
		if logger != nil {
			logger.Debug("grid point", "params", points[i], metric, v)
		}
		if !math.IsNaN(v) && (best < 0 || v < all[best].Value) {
			best = i
		}
	}
	if best < 0 {
		return Outcome{}, all, fmt.Errorf("%w: no grid point produced %s", dynamo.ErrNotConverged, metric)
	}
	return all[best], all, nil
}
