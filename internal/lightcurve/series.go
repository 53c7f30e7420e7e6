package lightcurve

import (
	"fmt"
	"math"
)

// Series is a photometric time series: times in days, sorted ascending, and
// the matching flux values.
type Series struct {
	Time []float64
	Flux []float64
}

// New copies time and flux into a validated Series.
func New(time, flux []float64) (*Series, error) {
	s := &Series{
		Time: append([]float64(nil), time...),
		Flux: append([]float64(nil), flux...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the series invariants: non-empty, equal lengths, finite
// and non-decreasing times.
func (s *Series) Validate() error {
	if len(s.Time) == 0 {
		return ErrEmpty
	}
	if len(s.Time) != len(s.Flux) {
		return fmt.Errorf("%w: %d times, %d flux values", ErrLengthMismatch, len(s.Time), len(s.Flux))
	}
	for i, t := range s.Time {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
		if i > 0 && t < s.Time[i-1] {
			return fmt.Errorf("%w: t[%d]=%g < t[%d]=%g", ErrUnsorted, i, t, i-1, s.Time[i-1])
		}
	}
	return nil
}

func (s *Series) Len() int {
	return len(s.Time)
}

// T0 is the earliest observation time.
func (s *Series) T0() float64 {
	if len(s.Time) == 0 {
		return math.NaN()
	}
	return s.Time[0]
}

// Span is the time covered by the series, last minus first observation.
func (s *Series) Span() float64 {
	if len(s.Time) == 0 {
		return 0
	}
	return s.Time[len(s.Time)-1] - s.Time[0]
}

// Cadence is the median spacing between consecutive observations. A series
// with fewer than two samples has no cadence and returns NaN.
func (s *Series) Cadence() float64 {
	return Median(Diff(s.Time))
}

// Normalized returns a copy of the flux with its median subtracted. The
// series itself is left untouched.
func (s *Series) Normalized() []float64 {
	med := Median(s.Flux)
	out := make([]float64, len(s.Flux))
	for i, f := range s.Flux {
		out[i] = f - med
	}
	return out
}
