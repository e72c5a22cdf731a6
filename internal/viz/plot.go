package viz

import (
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/odeint/internal/dynamo"
)

// PlotColumn charts state component col against sample index. An empty
// string means there was nothing finite to draw.
func PlotColumn(traj *dynamo.Trajectory, col, width, height int) string {
	data := plottable(series(traj, col))
	if data == nil {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(columnCaption(col)),
	)
}

// PlotColumns overlays several components on one chart.
func PlotColumns(traj *dynamo.Trajectory, cols []int, width, height int) string {
	lines := make([][]float64, 0, len(cols))
	for _, c := range cols {
		if data := plottable(series(traj, c)); data != nil {
			lines = append(lines, data)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	colors := []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Green}
	return asciigraph.PlotMany(lines,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.SeriesColors(colors[:min(len(lines), len(colors))]...),
	)
}

// PlotStepSizes charts log10 of every accepted step size.
func PlotStepSizes(traj *dynamo.Trajectory, width, height int) string {
	logs := make([]float64, len(traj.Stats.StepSizes))
	for i, dt := range traj.Stats.StepSizes {
		logs[i] = math.Log10(dt)
	}
	data := plottable(logs)
	if data == nil {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("log10 dt"),
	)
}

// series is state component col, or the sample times when col is negative.
func series(traj *dynamo.Trajectory, col int) []float64 {
	if col < 0 {
		return traj.Times
	}
	return traj.Column(col)
}

func columnCaption(col int) string {
	if col < 0 {
		return "t"
	}
	return "x" + strconv.Itoa(col)
}

// plottable replaces infinities with NaN, which asciigraph leaves blank.
// It returns nil when no value is finite.
func plottable(v []float64) []float64 {
	out := make([]float64, len(v))
	seen := false
	for i, x := range v {
		if finite(x) {
			out[i] = x
			seen = true
		} else {
			out[i] = math.NaN()
		}
	}
	if !seen {
		return nil
	}
	return out
}
