// Package lightcurve holds photometric time series and the small amount of
// statistics the river folder needs.
//
// A [Series] is a pair of equal-length slices: observation times in days,
// sorted ascending, and pre-normalized flux. Statistics ignore NaN values the
// way a light-curve pipeline expects:
//
//   - [Median]: midpoint median of the non-NaN values
//   - [Std]: population standard deviation of the non-NaN values
//   - [Series.Cadence]: median spacing between consecutive times
//
// # Loading
//
// [ReadCSV] and [LoadCSV] read a two-column (time, flux) table, with or
// without a header row.
package lightcurve
