// Package dynamo provides the primitives shared by every integrator.
//
// The package defines the data the integration engine operates on:
//
//   - [State]: fixed-dimension vector with non-aliasing arithmetic
//   - [Params]: the parameter set bound to an RHS, default or explicit
//   - [System]: an RHS together with the parameters it accepts
//   - [Problem]: a bound RHS plus a validated initial condition
//   - [Trajectory]: the append-only sequence of (t, X) samples of one run
//
// # Example
//
//	prob, err := dynamo.NewProblem(physics.Lorenz(), dynamo.DefaultParams(),
//	    dynamo.Initial{X0: dynamo.State{0.01, 0.01, 0.01}})
//	run, err := integrators.NewFixed(integrators.NewRK4(), prob, 0.01, 10000)
//	traj, err := integrators.Run(run)
//	x, y, z := traj.Column(0), traj.Column(1), traj.Column(2)
//
// # Errors
//
// Dimension, parameter and numeric-input errors wrap the sentinels in this
// package and can be tested with errors.Is.
package dynamo
