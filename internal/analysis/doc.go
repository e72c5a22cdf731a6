// Package analysis characterizes trajectories and the systems behind them.
//
//   - [LyapunovExponent]: largest Lyapunov exponent by renormalized separation
//   - [PowerSpectrum] and [DominantFrequency]: spectra of uniformly sampled runs
//   - [PoincareSection]: interpolated crossings of a threshold
//   - [Bifurcation]: peaks of one component across a parameter sweep
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(prob, integrators.NewRK4(), integrators.NewRK4(), analysis.LyapunovConfig{Dt: 0.01, Steps: 20000})
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
