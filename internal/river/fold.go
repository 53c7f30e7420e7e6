package river

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/river/internal/lightcurve"
)

// maxGridCells bounds the grid a fold may allocate, 512 MiB of float64.
const maxGridCells = 1 << 26

// Fold is a light curve folded by a period and stacked cycle by cycle.
//
// Grid has one row per phase sample and one column per cycle, from CycleMin
// up to but excluding CycleMax. The last cycle, CycleMax itself, is never
// folded.
type Fold struct {
	Grid *mat.Dense

	Period          float64
	Cadence         float64
	SamplesPerCycle int
	T0              float64
	CycleMin        int
	CycleMax        int

	// Phase holds the x-axis ticks, 0 up to period in steps of cadence.
	Phase []float64
	// Cycles holds the y-axis ticks, one cycle number per column.
	Cycles []int

	VMin float64
	VMax float64

	// Counts and Policies record, per column, how many samples fell in the
	// cycle and how they were placed.
	Counts   []int
	Policies []FillPolicy
}

// FoldSeries folds s by period. The series flux is median-subtracted on a
// copy before binning.
func FoldSeries(s *lightcurve.Series, period float64) (*Fold, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !(period > 0) || math.IsInf(period, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidPeriod, period)
	}
	if span := s.Span(); period >= span {
		return nil, fmt.Errorf("%w: period %g not smaller than span %g", ErrInvalidPeriod, period, span)
	}

	cadence := s.Cadence()
	if !(cadence > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidCadence, cadence)
	}
	spc := int(math.Floor(period / cadence))
	if spc < 1 {
		return nil, fmt.Errorf("%w: period %g shorter than cadence %g", ErrInvalidPeriod, period, cadence)
	}

	time := s.Time
	flux := s.Normalized()
	t0 := s.T0()

	cycleMin, cycleMax := math.MaxInt, math.MinInt
	for _, t := range time {
		c := int(math.Floor((t - t0) / period))
		cycleMin = min(cycleMin, c)
		cycleMax = max(cycleMax, c)
	}
	cols := cycleMax - cycleMin
	if float64(spc)*float64(cols) > maxGridCells {
		return nil, fmt.Errorf("%w: %d cycles of %d samples exceed the %d cell grid limit",
			ErrInvalidPeriod, cols, spc, maxGridCells)
	}

	f := &Fold{
		Grid:            mat.NewDense(spc, cols, nil),
		Period:          period,
		Cadence:         cadence,
		SamplesPerCycle: spc,
		T0:              t0,
		CycleMin:        cycleMin,
		CycleMax:        cycleMax,
		Phase:           arange(0, period, cadence),
		Cycles:          make([]int, cols),
		Counts:          make([]int, cols),
		Policies:        make([]FillPolicy, cols),
	}

	for i := cycleMin; i < cycleMax; i++ {
		begin := t0 + period*float64(i)
		end := t0 + period*float64(i+1)

		// times are sorted, so (begin, end] is a contiguous run
		lo := sort.Search(len(time), func(k int) bool { return time[k] > begin })
		hi := sort.Search(len(time), func(k int) bool { return time[k] > end })
		sel := flux[lo:hi]
		n := len(sel)

		col := i - cycleMin
		f.Cycles[col] = i
		f.Counts[col] = n

		policy, err := Classify(n, spc)
		if err != nil {
			return nil, &CycleError{Cycle: i, Count: n, SamplesPerCycle: spc, Wrapped: err}
		}
		f.Policies[col] = policy

		switch policy {
		case PolicyPadded:
			for r := 0; r < n; r++ {
				f.Grid.Set(r, col, sel[r])
			}
		case PolicyTruncated:
			for r := 0; r < spc; r++ {
				f.Grid.Set(r, col, sel[r])
			}
		}
	}

	med := lightcurve.Median(flux)
	std := lightcurve.Std(flux)
	f.VMin = med - 5*std
	f.VMax = med + 5*std

	return f, nil
}

// Transposed returns the grid with cycles as rows and phase samples as
// columns, the orientation a heatmap renderer draws.
func (f *Fold) Transposed() mat.Matrix {
	return f.Grid.T()
}

// Column returns a copy of the grid column for cycle number c.
func (f *Fold) Column(c int) ([]float64, bool) {
	col := c - f.CycleMin
	if col < 0 || col >= len(f.Cycles) {
		return nil, false
	}
	return mat.Col(nil, col, f.Grid), true
}

// NumCycles is the number of grid columns.
func (f *Fold) NumCycles() int {
	return len(f.Cycles)
}

// arange returns start, start+step, ... up to but excluding stop.
func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
