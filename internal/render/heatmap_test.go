package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"
)

func testFigure() *Figure {
	// 3 cycles x 4 phase samples
	grid := mat.NewDense(3, 4, []float64{
		-1, 0, 1, 0,
		-0.5, 0, 0.5, 0,
		0, 0, 0, 0,
	})
	return &Figure{
		Grid:   grid,
		X:      []float64{0, 0.25, 0.5, 0.75},
		Y:      []float64{0, 1, 2},
		Cmap:   DefaultColormap,
		VMin:   -1,
		VMax:   1,
		Title:  "TIC 1",
		XLabel: "Time [days]",
		YLabel: "Cycle number",
	}
}

func TestHeatmapRenderPNG(t *testing.T) {
	h := NewHeatmap(Size{Width: 4 * vg.Inch, Height: 10 * vg.Inch, DPI: 50})

	var buf bytes.Buffer
	require.NoError(t, h.Render(&buf, testFigure()))

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
}

func TestHeatmapRenderWindowAndDegenerateRange(t *testing.T) {
	fig := testFigure()
	fig.YLim = &[2]float64{1, 2}
	fig.VMin, fig.VMax = 0, 0

	var buf bytes.Buffer
	require.NoError(t, NewHeatmap(DefaultSize).Render(&buf, fig))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestHeatmapRenderErrors(t *testing.T) {
	h := NewHeatmap(DefaultSize)
	var buf bytes.Buffer

	assert.ErrorIs(t, h.Render(&buf, nil), ErrEmptyFigure)

	fig := testFigure()
	fig.Cmap = "nope"
	assert.ErrorIs(t, h.Render(&buf, fig), ErrUnknownColormap)
	assert.Zero(t, buf.Len())
}

func TestDisplayRange(t *testing.T) {
	lo, hi := displayRange(-2, 3)
	assert.Equal(t, [2]float64{-2, 3}, [2]float64{lo, hi})

	lo, hi = displayRange(1, 1)
	assert.Equal(t, [2]float64{0.5, 1.5}, [2]float64{lo, hi})
}

func TestGridTicks(t *testing.T) {
	g := gridXYZ{
		m: mat.NewDense(2, 5, nil),
		x: []float64{0, 0.5, 1},
		y: []float64{7, 8},
	}
	c, r := g.Dims()
	assert.Equal(t, 5, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 1.0, g.X(2))
	assert.Equal(t, 2.0, g.X(4), "extrapolates past the last tick")
	assert.Equal(t, 8.0, g.Y(1))
}
