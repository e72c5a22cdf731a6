// Package viz renders trajectories in the terminal.
//
//   - [PlotColumn], [PlotColumns] and [PlotStepSizes]: asciigraph line charts
//   - [Canvas]: Braille-based pixel canvas behind [PhasePortrait] and [Portrait3D]
//   - [Summary]: lipgloss panel describing a finished run
//   - [Live]: Bubble Tea model that drives an integrator and shows its progress
//
// # Key Bindings
//
//	Q / Esc - Stop the live run and keep the samples so far
package viz
