package analysis

import (
	"fmt"

	"github.com/san-kum/odeint/internal/dynamo"
)

type Point struct {
	T, X, Y float64
}

// PoincareSection records where component crossCol rises through threshold.
// Each crossing is linearly interpolated between the samples around it and
// reported as components xCol and yCol.
func PoincareSection(traj *dynamo.Trajectory, crossCol int, threshold float64, xCol, yCol int) ([]Point, error) {
	dim := traj.Dim()
	for _, c := range []int{crossCol, xCol, yCol} {
		if c < 0 || c >= dim {
			return nil, fmt.Errorf("%w: column %d of a %d-dimensional state", dynamo.ErrInvalidInput, c, dim)
		}
	}

	var points []Point
	for i := 1; i < traj.Len(); i++ {
		prev, cur := traj.States[i-1], traj.States[i]
		if !(prev[crossCol] < threshold && cur[crossCol] >= threshold) {
			continue
		}
		frac := (threshold - prev[crossCol]) / (cur[crossCol] - prev[crossCol])
		lerp := func(a, b float64) float64 { return a + frac*(b-a) }
		points = append(points, Point{
			T: lerp(traj.Times[i-1], traj.Times[i]),
			X: lerp(prev[xCol], cur[xCol]),
			Y: lerp(prev[yCol], cur[yCol]),
		})
	}
	return points, nil
}
