package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/river/internal/lightcurve"
)

var (
	ErrNoPeak    = errors.New("analysis: no spectral peak in period range")
	ErrBadRange  = errors.New("analysis: invalid period range")
	ErrTooShort  = errors.New("analysis: series too short for a spectrum")
	ErrNoCadence = errors.New("analysis: series has no positive cadence")
)

// oversample pads the resampled series to at least this many times its
// length so neighbouring frequency bins are close enough to resolve a period.
const oversample = 4

// Bin is one frequency bin of a periodogram.
type Bin struct {
	Frequency float64
	Period    float64
	Power     float64
}

// PowerSpectrum returns |X[k]|^2 for the non-negative frequencies of a real
// signal.
func PowerSpectrum(data []float64) []float64 {
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2+1)
	for i := range ps {
		a := cmplx.Abs(spectrum[i])
		ps[i] = a * a
	}
	return ps
}

// Resample puts the median subtracted flux of s on a uniform grid spaced by
// the series cadence, interpolating linearly. Grid points that fall inside a
// gap wider than two cadences, or next to a NaN flux, are zero.
func Resample(s *lightcurve.Series) ([]float64, float64, error) {
	cadence := s.Cadence()
	if !(cadence > 0) {
		return nil, 0, ErrNoCadence
	}
	flux := s.Normalized()
	t0 := s.T0()
	n := int(math.Floor(s.Span()/cadence)) + 1
	if n < 4 {
		return nil, 0, ErrTooShort
	}

	out := make([]float64, n)
	for k := range out {
		tg := t0 + float64(k)*cadence
		j := sort.SearchFloat64s(s.Time, tg)
		switch {
		case j < len(s.Time) && s.Time[j] == tg:
			out[k] = finiteOrZero(flux[j])
		case j == 0 || j == len(s.Time):
		default:
			ta, tb := s.Time[j-1], s.Time[j]
			if tb-ta > 2*cadence {
				continue
			}
			fa, fb := flux[j-1], flux[j]
			if math.IsNaN(fa) || math.IsNaN(fb) {
				continue
			}
			out[k] = fa + (fb-fa)*(tg-ta)/(tb-ta)
		}
	}
	return out, cadence, nil
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Periodogram resamples s, zero pads it to a power of two and returns the
// power of every positive frequency bin, lowest frequency first.
func Periodogram(s *lightcurve.Series) ([]Bin, error) {
	data, cadence, err := Resample(s)
	if err != nil {
		return nil, err
	}

	n := 1
	for n < oversample*len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	ps := PowerSpectrum(padded)
	bins := make([]Bin, 0, len(ps)-1)
	for k := 1; k < len(ps); k++ {
		freq := float64(k) / (float64(n) * cadence)
		bins = append(bins, Bin{Frequency: freq, Period: 1 / freq, Power: ps[k]})
	}
	return bins, nil
}

// DominantPeriod returns the period of the strongest periodogram bin whose
// period lies in [minPeriod, maxPeriod]. A non-positive maxPeriod means the
// series span.
func DominantPeriod(s *lightcurve.Series, minPeriod, maxPeriod float64) (float64, error) {
	if maxPeriod <= 0 {
		maxPeriod = s.Span()
	}
	if minPeriod < 0 || minPeriod >= maxPeriod || math.IsNaN(minPeriod) || math.IsNaN(maxPeriod) {
		return 0, ErrBadRange
	}

	bins, err := Periodogram(s)
	if err != nil {
		return 0, err
	}

	best := -1
	for i, b := range bins {
		if b.Period < minPeriod || b.Period > maxPeriod {
			continue
		}
		if best < 0 || b.Power > bins[best].Power {
			best = i
		}
	}
	if best < 0 || bins[best].Power == 0 {
		return 0, ErrNoPeak
	}
	return bins[best].Period, nil
}
