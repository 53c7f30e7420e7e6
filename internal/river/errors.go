package river

import (
	"errors"
	"fmt"
)

// Domain errors for folding and plotting.
var (
	// ErrOversizedCycle indicates a cycle holding more samples than the
	// cadence allows. It points at a period, cadence or time array that does
	// not match the data.
	ErrOversizedCycle = errors.New("river: unexpected oversized cycle")

	// ErrMissingTitle indicates a plot request without a title, which the
	// output file name is built from.
	ErrMissingTitle = errors.New("river: missing required label (title)")

	// ErrInvalidPeriod indicates a non-positive period, one not smaller than
	// the series span, one shorter than a single cadence, or one that would
	// need a grid past the allocation limit.
	ErrInvalidPeriod = errors.New("river: invalid period")

	// ErrInvalidCadence indicates a series whose median sample spacing is
	// not positive.
	ErrInvalidCadence = errors.New("river: invalid cadence")

	// ErrInvalidWindow indicates a cycle window with min >= max.
	ErrInvalidWindow = errors.New("river: invalid cycle window")
)

// CycleError wraps an error with the cycle it occurred in.
type CycleError struct {
	Cycle           int
	Count           int
	SamplesPerCycle int
	Wrapped         error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: cycle %d has %d samples, expected %d",
		e.Wrapped.Error(), e.Cycle, e.Count, e.SamplesPerCycle)
}

func (e *CycleError) Unwrap() error {
	return e.Wrapped
}
