// Package physics provides the right-hand sides integrated by odeint.
//
// Every model is a [dynamo.System] constructor. A model accepts either the
// default parameter set, in which case it uses the constants declared here,
// or an explicit set naming every one of its parameters:
//
//   - [Decay]: dx/dt = -k x, any dimension
//   - [HarmonicOscillator]: unit mass on a spring
//   - [Orbit]: one light body around the Sun
//   - [Lorenz], [Rossler]: chaotic attractors
//   - [VanDerPol], [Duffing], [DoubleWell]: nonlinear oscillators
//   - [LotkaVolterra], [Brusselator]: population and reaction kinetics
//   - [NonlinearPendulum], [DrivenPendulum], [DoublePendulum],
//     [CoupledPendulums]
//   - [MagneticPendulum]: damped bob over three magnets
//   - [MassChain], [Wave]: lattices of any length
//   - [Gyroscope]: heavy symmetric top
//   - [NBody], [ThreeBody]: planar gravity
//
// # Energy Conservation
//
// Conservative models export their energy so runs can monitor drift:
//
//	energy, ok := physics.Energy("orbit", dynamo.DefaultParams())
//	if ok {
//	    e0 := energy(x0)
//	}
package physics
