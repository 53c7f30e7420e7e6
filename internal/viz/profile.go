package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/river/internal/river"
)

// PhaseProfile averages the fold over its cycles, one value per phase
// sample. Only rows that hold data count: empty cycles and zero padding are
// skipped. Returns ErrNoCycles when every cycle is empty.
func PhaseProfile(f *river.Fold) ([]float64, error) {
	spc := f.SamplesPerCycle
	sum := make([]float64, spc)
	n := make([]int, spc)

	populated := 0
	for col, policy := range f.Policies {
		if policy == river.PolicyEmpty {
			continue
		}
		populated++
		filled := min(f.Counts[col], spc)
		for r := 0; r < filled; r++ {
			sum[r] += f.Grid.At(r, col)
			n[r]++
		}
	}
	if populated == 0 {
		return nil, ErrNoCycles
	}

	for r := range sum {
		if n[r] > 0 {
			sum[r] /= float64(n[r])
		}
	}
	return sum, nil
}

// Profile plots the phase profile as an ASCII chart.
func Profile(f *river.Fold, width, height int) (string, error) {
	prof, err := PhaseProfile(f)
	if err != nil {
		return "", err
	}
	caption := fmt.Sprintf("mean flux vs phase, period %.4g d, %d cycles", f.Period, f.NumCycles())
	return asciigraph.Plot(prof,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
