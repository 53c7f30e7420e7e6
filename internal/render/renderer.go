package render

import (
	"errors"
	"io"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrEmptyFigure indicates a figure whose grid has no cells.
	ErrEmptyFigure = errors.New("render: empty figure")

	// ErrUnknownColormap indicates a colormap name that is not registered.
	ErrUnknownColormap = errors.New("render: unknown colormap")
)

// Figure is everything a renderer needs to draw a river heatmap.
type Figure struct {
	// Grid has one row per cycle and one column per phase sample.
	Grid mat.Matrix
	// X holds phase ticks for the grid columns, Y cycle numbers for the rows.
	X []float64
	Y []float64

	Cmap       string
	VMin, VMax float64

	Title  string
	XLabel string
	YLabel string

	// YLim overrides the y-axis range when set.
	YLim *[2]float64
}

// Renderer draws a figure and writes the encoded image to w.
type Renderer interface {
	Render(w io.Writer, fig *Figure) error
}

// Size is the physical size of a rendered figure.
type Size struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// DefaultSize is a tall 4x10 inch figure, one cycle stacked above another.
var DefaultSize = Size{Width: 4 * vg.Inch, Height: 10 * vg.Inch, DPI: 150}
