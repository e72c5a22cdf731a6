package metrics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// Stability counts samples that leave a box of half-width threshold around
// the origin or contain NaN/Inf. Value is the fraction of samples inside.
type Stability struct {
	name       string
	threshold  float64
	violations int
	nonFinite  int
	samples    int
	peak       dynamo.State
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) OnStep(t float64, x dynamo.State) {
	s.samples++
	if s.peak == nil {
		s.peak = make(dynamo.State, len(x))
	}
	if !x.IsValid() {
		s.nonFinite++
		s.violations++
		return
	}

	outside := false
	for i, val := range x {
		if i < len(s.peak) {
			s.peak[i] = math.Max(s.peak[i], math.Abs(val))
		}
		if math.Abs(val) > s.threshold {
			outside = true
		}
	}
	if outside {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

// Peak is the largest absolute value seen per component.
func (s *Stability) Peak() dynamo.State { return s.peak.Clone() }

// NonFinite is the number of samples with NaN or Inf components.
func (s *Stability) NonFinite() int { return s.nonFinite }

func (s *Stability) Reset() {
	s.violations = 0
	s.nonFinite = 0
	s.samples = 0
	s.peak = nil
}
