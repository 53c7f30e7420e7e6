package lightcurve

import "errors"

// Validation errors for time series input.
var (
	// ErrEmpty indicates a series with no samples.
	ErrEmpty = errors.New("lightcurve: empty time series")

	// ErrLengthMismatch indicates time and flux slices of different length.
	ErrLengthMismatch = errors.New("lightcurve: time and flux lengths differ")

	// ErrUnsorted indicates times that decrease somewhere in the series.
	ErrUnsorted = errors.New("lightcurve: times not sorted ascending")

	// ErrNonFinite indicates a NaN or Inf time stamp.
	ErrNonFinite = errors.New("lightcurve: non-finite time value")
)
