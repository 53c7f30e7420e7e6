package render

import "gonum.org/v1/gonum/mat"

// gridXYZ adapts a figure to plotter.GridXYZ. Plotter columns are matrix
// columns (phase), plotter rows are matrix rows (cycles).
type gridXYZ struct {
	m mat.Matrix
	x []float64
	y []float64
}

func (g gridXYZ) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g gridXYZ) Z(c, r int) float64 {
	return g.m.At(r, c)
}

func (g gridXYZ) X(c int) float64 {
	return tick(g.x, c)
}

func (g gridXYZ) Y(r int) float64 {
	return tick(g.y, r)
}

// tick returns ticks[i], extrapolating with the first step when the tick
// slice is shorter than the grid.
func tick(ticks []float64, i int) float64 {
	if i < len(ticks) {
		return ticks[i]
	}
	switch len(ticks) {
	case 0:
		return float64(i)
	case 1:
		return ticks[0] + float64(i)
	}
	step := ticks[1] - ticks[0]
	return ticks[0] + float64(i)*step
}
