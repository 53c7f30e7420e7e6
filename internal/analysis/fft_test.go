package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/river/internal/lightcurve"
)

func sine(t *testing.T, period, cadence, span float64) *lightcurve.Series {
	t.Helper()
	n := int(span/cadence) + 1
	time := make([]float64, n)
	flux := make([]float64, n)
	for i := range time {
		time[i] = float64(i) * cadence
		flux[i] = math.Sin(2 * math.Pi * time[i] / period)
	}
	s, err := lightcurve.New(time, flux)
	require.NoError(t, err)
	return s
}

func TestPowerSpectrum(t *testing.T) {
	data := make([]float64, 16)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 4 * float64(i) / 16)
	}
	ps := PowerSpectrum(data)
	require.Len(t, ps, 9)

	peak := 0
	for i := range ps {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	assert.Equal(t, 4, peak)
	assert.InDelta(t, 64.0, ps[4], 1e-9)
}

func TestDominantPeriod(t *testing.T) {
	s := sine(t, 2, 0.05, 40)

	p, err := DominantPeriod(s, 0.5, 10)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p, 0.1)

	p, err = DominantPeriod(s, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, p, 0.1)
}

func TestDominantPeriodWithGap(t *testing.T) {
	full := sine(t, 3, 0.1, 60)
	var time, flux []float64
	for i, tm := range full.Time {
		if tm > 20 && tm < 25 {
			continue
		}
		time = append(time, tm)
		flux = append(flux, full.Flux[i])
	}
	s, err := lightcurve.New(time, flux)
	require.NoError(t, err)

	p, err := DominantPeriod(s, 1, 10)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, p, 0.15)
}

func TestResampleZeroesGapsAndNaN(t *testing.T) {
	s, err := lightcurve.New(
		[]float64{0, 1, 2, 3, 7, 8},
		[]float64{1, 2, math.NaN(), 4, 5, 6},
	)
	require.NoError(t, err)

	out, cadence, err := Resample(s)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cadence)
	require.Len(t, out, 9)

	med := lightcurve.Median(s.Flux)
	assert.Equal(t, 1-med, out[0])
	assert.Equal(t, 0.0, out[2], "NaN flux")
	for k := 4; k <= 6; k++ {
		assert.Equal(t, 0.0, out[k], "gap at t=%d", k)
	}
	assert.Equal(t, 6-med, out[8])
}

func TestDominantPeriodErrors(t *testing.T) {
	s := sine(t, 2, 0.05, 40)

	_, err := DominantPeriod(s, 5, 2)
	assert.ErrorIs(t, err, ErrBadRange)

	_, err = DominantPeriod(s, math.NaN(), 2)
	assert.ErrorIs(t, err, ErrBadRange)

	short, err := lightcurve.New([]float64{0, 1, 2}, []float64{1, 2, 3})
	require.NoError(t, err)
	_, err = DominantPeriod(short, 0, 0)
	assert.ErrorIs(t, err, ErrTooShort)

	flat, err := lightcurve.New([]float64{0, 1, 2, 3, 4, 5, 6, 7}, make([]float64, 8))
	require.NoError(t, err)
	_, err = DominantPeriod(flat, 0, 0)
	assert.ErrorIs(t, err, ErrNoPeak)
}
