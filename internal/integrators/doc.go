// Package integrators implements the ODE step algorithms and the runs that
// drive them.
//
// Steppers are single-step rules sharing the [Stepper] interface:
//
//   - [Euler]: first order
//   - [RK4]: classical fourth-order Runge-Kutta
//   - [BulirschStoer]: modified midpoint plus Richardson extrapolation
//   - [Verlet], [Leapfrog]: symplectic rules for [positions, velocities] states
//
// Runs implement [Integrator] and own their trajectory:
//
//   - [Fixed]: any Stepper for a fixed number of equal steps
//   - [AdaptiveRK4]: step doubling with error-driven step size
//   - [Bisection]: adaptive Bulirsch-Stoer by recursive interval bisection,
//     started from [AdaptiveBulirschStoer.Start]
//
// [Run] drives any Integrator to completion:
//
//	run, err := integrators.NewFixed(integrators.NewRK4(), prob, 0.01, 100)
//	if err != nil {
//	    return err
//	}
//	traj, err := integrators.Run(run, integrators.WithObserver(obs))
//
// Everything here is single-threaded. The RHS must be pure: the adaptive
// schemes evaluate it many times per accepted step.
package integrators
