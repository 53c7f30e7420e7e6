// Package river folds periodic light curves into river plots.
//
// A river plot stacks a light curve cycle by cycle: each column of the grid
// is one period of flux, so phase-coherent features line up as vertical
// "rivers" and drift shows up as a slope.
//
//	s, _ := lightcurve.New(time, flux)
//	f, err := river.FoldSeries(s, 0.4631)
//	if errors.Is(err, river.ErrOversizedCycle) {
//	    // period or cadence does not match the data
//	}
//
// # Incomplete cycles
//
// With S samples per cycle, a cycle holding fewer than S-5 samples is left
// at zero, one holding S-5 to S-1 is zero-padded, and one holding S to S+4
// is truncated to S. Anything larger fails with [ErrOversizedCycle].
//
// # Plotting
//
// [Plot] folds, then hands the transposed grid to a render.Renderer and
// writes {outdir}/{title}_river_{cmap}{window}.png. A title is required.
package river
