// Package analysis estimates a folding period from a light curve.
//
// The series is resampled onto its own cadence grid, zero padded and
// transformed with an FFT. [DominantPeriod] reports the period of the
// strongest bin in a caller supplied range:
//
//	p, err := analysis.DominantPeriod(series, 0.5, 20)
//
// The result is a starting point for river plots, not a fitted period.
package analysis
