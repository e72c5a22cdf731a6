package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/odeint/internal/dynamo"
)

// SVG draws component yCol against component xCol as a polyline. A column
// of -1 selects time.
func SVG(w io.Writer, traj *dynamo.Trajectory, xCol, yCol int, width, height float64) error {
	dim := traj.Dim()
	if xCol < -1 || xCol >= dim || yCol < -1 || yCol >= dim {
		return fmt.Errorf("%w: columns %d, %d outside state of dimension %d", dynamo.ErrInvalidInput, xCol, yCol, dim)
	}
	xs, ys := column(traj, xCol), column(traj, yCol)
	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)

	const margin = 10.0
	scaleX := (width - 2*margin) / (maxX - minX)
	scaleY := (height - 2*margin) / (maxY - minY)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<polyline fill="none" stroke="#00ff00" stroke-width="1" points="`, width, height, width, height))

	first := true
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		px := margin + (xs[i]-minX)*scaleX
		py := height - margin - (ys[i]-minY)*scaleY
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", px, py))
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func column(traj *dynamo.Trajectory, j int) []float64 {
	if j < 0 {
		return traj.Times
	}
	return traj.Column(j)
}

// bounds returns a non-empty range covering the finite values of v.
func bounds(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if !finite(x) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi == lo {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
