package metrics

import (
	"math"

	"github.com/san-kum/odeint/internal/dynamo"
)

// EnergyDrift tracks the largest relative departure of an energy function
// from its value at the first sample.
type EnergyDrift struct {
	name          string
	energy        func(dynamo.State) float64
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(energy func(dynamo.State) float64) *EnergyDrift {
	return &EnergyDrift{
		name:   "energy_drift",
		energy: energy,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) OnStep(t float64, x dynamo.State) {
	energy := e.energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	} else {
		e.maxDrift = math.Max(e.maxDrift, math.Abs(energy))
	}
}

// Value is the maximum relative drift seen so far. When the initial energy
// is zero the drift is absolute.
func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Initial() float64 { return e.initialEnergy }

func (e *EnergyDrift) Current() float64 { return e.currentEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
