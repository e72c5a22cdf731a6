package metrics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Steps measures the spacing of samples in time. Value is the mean step.
type Steps struct {
	name     string
	samples  int
	first    float64
	last     float64
	smallest float64
	largest  float64
}

func NewSteps() *Steps {
	return &Steps{name: "mean_step"}
}

func (s *Steps) Name() string { return s.name }

func (s *Steps) OnStep(t float64, _ dynamo.State) {
	if s.samples == 0 {
		s.first = t
		s.smallest = math.Inf(1)
	} else {
		dt := t - s.last
		s.smallest = math.Min(s.smallest, dt)
		s.largest = math.Max(s.largest, dt)
	}
	s.last = t
	s.samples++
}

func (s *Steps) Value() float64 {
	if s.samples < 2 {
		return 0
	}
	return (s.last - s.first) / float64(s.samples-1)
}

// Count is the number of steps, not counting the initial sample.
func (s *Steps) Count() int {
	if s.samples == 0 {
		return 0
	}
	return s.samples - 1
}

func (s *Steps) Smallest() float64 {
	if s.samples < 2 {
		return 0
	}
	return s.smallest
}

func (s *Steps) Largest() float64 { return s.largest }

func (s *Steps) Reset() {
	*s = Steps{name: s.name}
}
