package lightcurve

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DropNaN returns the values of x that are not NaN. Infinities are kept.
func DropNaN(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Median returns the median of the non-NaN values of x, averaging the two
// middle values for an even count. It returns NaN when every value is NaN.
func Median(x []float64) float64 {
	vals := DropNaN(x)
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

// Std returns the population standard deviation of the non-NaN values of x.
// Any infinity makes it NaN.
func Std(x []float64) float64 {
	vals := DropNaN(x)
	if len(vals) == 0 {
		return math.NaN()
	}
	_, std := stat.PopMeanStdDev(vals, nil)
	return std
}

// Diff returns the consecutive differences x[i+1]-x[i].
func Diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	d := make([]float64, len(x)-1)
	for i := range d {
		d[i] = x[i+1] - x[i]
	}
	return d
}
