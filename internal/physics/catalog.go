package physics

import "github.com/san-kum/odeint/internal/dynamo"

// Catalog returns every model in this package.
func Catalog() []dynamo.System {
	return []dynamo.System{
		Decay(),
		HarmonicOscillator(),
		Lorenz(),
		Rossler(),
		Orbit(),
		VanDerPol(),
		LotkaVolterra(),
		Brusselator(),
		NonlinearPendulum(),
		DrivenPendulum(),
		Duffing(),
		DoubleWell(),
		DoublePendulum(),
		CoupledPendulums(),
		MagneticPendulum(),
		MassChain(),
		Wave(),
		Gyroscope(),
		NBody(),
		ThreeBody(),
	}
}

// Energy returns the energy (or other first integral) of the named model
// under p. Models without one report false.
func Energy(name string, p dynamo.Params) (func(dynamo.State) float64, bool) {
	switch name {
	case "oscillator":
		return OscillatorEnergy(p), true
	case "orbit":
		return OrbitEnergy(p), true
	case "pendulum", "driven-pendulum":
		return PendulumEnergy(p), true
	case "lotka-volterra":
		return LotkaVolterraInvariant(p), true
	case "duffing":
		return DuffingEnergy(p), true
	case "doublewell":
		return DoubleWellEnergy(p), true
	case "double-pendulum":
		return DoublePendulumEnergy(p), true
	case "coupled-pendulums":
		return CoupledPendulumsEnergy(p), true
	case "mass-chain":
		return MassChainEnergy(p), true
	case "wave":
		return WaveEnergy(p), true
	case "gyroscope":
		return GyroscopeEnergy(p), true
	case "nbody":
		return NBodyEnergy(p), true
	case "threebody":
		return ThreeBodyEnergy(p), true
	}
	return nil, false
}
