// Package analysis inspects recorded n-body trajectories.
//
//   - [LyapunovExponent]: finite-time divergence of a perturbed twin run
//   - [DominantPeriod]: strongest oscillation period of a series via [FFT]
//   - [OrbitPortrait]: one body's path in a position or phase plane
//   - [SeparationSeries]: pair distance over time
//
// # Chaos Detection
//
// A positive exponent indicates sensitive dependence on initial conditions:
//
//	lambda, err := analysis.LyapunovExponent(ctx, cfg, 2000, 1e-6)
//	if err == nil && lambda > 0 {
//	    // trajectories diverge
//	}
package analysis
