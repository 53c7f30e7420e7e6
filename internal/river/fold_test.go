package river_test

import (
	"errors"
	"math"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/river/internal/lightcurve"
	"github.com/san-kum/river/internal/river"
)

// seq returns lo, lo+1, ..., hi.
func seq(lo, hi int) []float64 {
	out := make([]float64, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, float64(i))
	}
	return out
}

// without drops the listed values from xs.
func without(xs []float64, drop ...float64) []float64 {
	out := make([]float64, 0, len(xs))
outer:
	for _, x := range xs {
		for _, d := range drop {
			if x == d {
				continue outer
			}
		}
		out = append(out, x)
	}
	return out
}

// withExtra adds values to xs and keeps the result sorted.
func withExtra(xs []float64, extra ...float64) []float64 {
	out := append(append([]float64(nil), xs...), extra...)
	sort.Float64s(out)
	return out
}

// fluxIsTime builds a series whose flux equals its time, so a grid cell can
// be traced back to the sample it came from.
func fluxIsTime(times []float64) *lightcurve.Series {
	s, err := lightcurve.New(times, times)
	Expect(err).NotTo(HaveOccurred())
	return s
}

// selectCycle returns the times in (lo, hi].
func selectCycle(times []float64, lo, hi float64) []float64 {
	var out []float64
	for _, t := range times {
		if t > lo && t <= hi {
			out = append(out, t)
		}
	}
	return out
}

var _ = Describe("FoldSeries", func() {
	Context("with eight daily samples and a four day period", func() {
		var f *river.Fold

		BeforeEach(func() {
			s, err := lightcurve.New(seq(0, 7), []float64{1, 2, 3, 4, 5, 6, 7, 8})
			Expect(err).NotTo(HaveOccurred())
			f, err = river.FoldSeries(s, 4)
			Expect(err).NotTo(HaveOccurred())
		})

		It("derives cadence and samples per cycle", func() {
			Expect(f.Cadence).To(Equal(1.0))
			Expect(f.SamplesPerCycle).To(Equal(4))
		})

		It("allocates a single column and never folds the last cycle", func() {
			rows, cols := f.Grid.Dims()
			Expect(rows).To(Equal(4))
			Expect(cols).To(Equal(1))
			Expect(f.CycleMin).To(Equal(0))
			Expect(f.CycleMax).To(Equal(1))
			Expect(f.Cycles).To(Equal([]int{0}))
		})

		It("fills the column from the samples in (t0, t0+period]", func() {
			// median of 1..8 is 4.5; samples at t=1..4 carry flux 2..5
			col, ok := f.Column(0)
			Expect(ok).To(BeTrue())
			Expect(col).To(Equal([]float64{-2.5, -1.5, -0.5, 0.5}))
			Expect(f.Policies).To(Equal([]river.FillPolicy{river.PolicyTruncated}))
			Expect(f.Counts).To(Equal([]int{4}))
		})

		It("returns phase ticks from 0 to the period in cadence steps", func() {
			Expect(f.Phase).To(Equal([]float64{0, 1, 2, 3}))
		})

		It("transposes the grid for rendering", func() {
			rows, cols := f.Transposed().Dims()
			Expect(rows).To(Equal(1))
			Expect(cols).To(Equal(4))
		})
	})

	Context("with a regular series spanning K whole periods", func() {
		const k = 5
		times := seq(0, 4*k-1)

		It("populates K-1 columns, each one period of flux in order", func() {
			f, err := river.FoldSeries(fluxIsTime(times), 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.NumCycles()).To(Equal(k - 1))

			med := lightcurve.Median(times)
			for c := 0; c < k-1; c++ {
				col, ok := f.Column(c)
				Expect(ok).To(BeTrue())
				for r, t := range selectCycle(times, float64(4*c), float64(4*c+4)) {
					Expect(col[r]).To(Equal(t-med), "cycle %d row %d", c, r)
				}
			}
		})
	})

	Context("with a gap longer than a cycle", func() {
		times := append(seq(0, 9), seq(30, 39)...)
		var f *river.Fold

		BeforeEach(func() {
			var err error
			f, err = river.FoldSeries(fluxIsTime(times), 10)
			Expect(err).NotTo(HaveOccurred())
		})

		It("leaves cycles with too few samples at zero", func() {
			Expect(f.NumCycles()).To(Equal(3))
			for _, c := range []int{1, 2} {
				col, _ := f.Column(c)
				Expect(col).To(Equal(make([]float64, 10)), "cycle %d", c)
			}
			Expect(f.Counts).To(Equal([]int{9, 0, 1}))
			Expect(f.Policies).To(Equal([]river.FillPolicy{
				river.PolicyPadded, river.PolicyEmpty, river.PolicyEmpty,
			}))
		})
	})

	Context("with a cycle three samples short", func() {
		times := without(seq(0, 40), 12, 15, 18)

		It("copies the samples and zero-pads the tail", func() {
			f, err := river.FoldSeries(fluxIsTime(times), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.SamplesPerCycle).To(Equal(10))

			med := lightcurve.Median(times)
			sel := selectCycle(times, 10, 20)
			Expect(sel).To(HaveLen(7))

			col, _ := f.Column(1)
			for r := 0; r < 7; r++ {
				Expect(col[r]).To(Equal(sel[r] - med))
			}
			Expect(col[7:]).To(Equal([]float64{0, 0, 0}))
			Expect(f.Policies[1]).To(Equal(river.PolicyPadded))
		})
	})

	Context("with a cycle three samples long", func() {
		times := withExtra(seq(0, 40), 10.5, 11.5, 12.5)

		It("keeps the first S samples and drops the rest", func() {
			f, err := river.FoldSeries(fluxIsTime(times), 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.Cadence).To(Equal(1.0))

			med := lightcurve.Median(times)
			sel := selectCycle(times, 10, 20)
			Expect(sel).To(HaveLen(13))

			col, _ := f.Column(1)
			Expect(col).To(HaveLen(10))
			for r := range col {
				Expect(col[r]).To(Equal(sel[r] - med))
			}
			Expect(f.Counts[1]).To(Equal(13))
			Expect(f.Policies[1]).To(Equal(river.PolicyTruncated))
		})
	})

	Context("with a cycle ten samples long", func() {
		times := withExtra(seq(0, 40), 10.1, 10.2, 10.3, 10.4, 10.5, 10.6, 10.7, 10.8, 10.9, 11.5)

		It("fails with an oversized cycle error", func() {
			f, err := river.FoldSeries(fluxIsTime(times), 10)
			Expect(f).To(BeNil())
			Expect(err).To(MatchError(river.ErrOversizedCycle))

			var ce *river.CycleError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Cycle).To(Equal(1))
			Expect(ce.Count).To(Equal(20))
			Expect(ce.SamplesPerCycle).To(Equal(10))
		})
	})

	Describe("display bounds", func() {
		It("spans five standard deviations around the median flux", func() {
			times := seq(0, 19)
			flux := make([]float64, len(times))
			for i := range flux {
				flux[i] = 100 + math.Sin(float64(i))
			}
			s, err := lightcurve.New(times, flux)
			Expect(err).NotTo(HaveOccurred())

			f, err := river.FoldSeries(s, 4)
			Expect(err).NotTo(HaveOccurred())

			norm := s.Normalized()
			med := lightcurve.Median(norm)
			std := lightcurve.Std(norm)
			Expect(f.VMin).To(BeNumerically("~", med-5*std, 1e-12))
			Expect(f.VMax).To(BeNumerically("~", med+5*std, 1e-12))
			Expect(s.Flux[0]).To(Equal(100.0), "caller flux is not modified")
		})

		It("is not finite when a flux sample is infinite", func() {
			times := seq(0, 19)
			flux := make([]float64, len(times))
			flux[7] = math.Inf(1)
			s, err := lightcurve.New(times, flux)
			Expect(err).NotTo(HaveOccurred())

			f, err := river.FoldSeries(s, 4)
			Expect(err).NotTo(HaveOccurred())
			Expect(math.IsNaN(f.VMin)).To(BeTrue())
			Expect(math.IsNaN(f.VMax)).To(BeTrue())
		})
	})

	DescribeTable("rejects unusable periods",
		func(times []float64, period float64, want error) {
			_, err := river.FoldSeries(fluxIsTime(times), period)
			Expect(err).To(MatchError(want))
		},
		Entry("zero", seq(0, 10), 0.0, river.ErrInvalidPeriod),
		Entry("negative", seq(0, 10), -1.0, river.ErrInvalidPeriod),
		Entry("NaN", seq(0, 10), math.NaN(), river.ErrInvalidPeriod),
		Entry("infinite", seq(0, 10), math.Inf(1), river.ErrInvalidPeriod),
		Entry("equal to span", seq(0, 10), 10.0, river.ErrInvalidPeriod),
		Entry("shorter than cadence", seq(0, 10), 0.5, river.ErrInvalidPeriod),
		Entry("repeated times", []float64{0, 0, 0, 1}, 0.5, river.ErrInvalidCadence),
		Entry("grid too large after a long gap", withExtra(seq(0, 9), 1e9), 1.0, river.ErrInvalidPeriod),
	)

	It("reports series validation errors", func() {
		_, err := river.FoldSeries(&lightcurve.Series{}, 1)
		Expect(err).To(MatchError(lightcurve.ErrEmpty))
	})
})
