package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	defaultLevels        = 255
	defaultColorbarWidth = 0.9 * vg.Inch
)

// Heatmap renders figures as PNG heatmaps with a colorbar on the right.
type Heatmap struct {
	Size          Size
	ColorbarWidth vg.Length
	// Levels is the number of discrete colors drawn.
	Levels int
}

func NewHeatmap(size Size) *Heatmap {
	return &Heatmap{
		Size:          size,
		ColorbarWidth: defaultColorbarWidth,
		Levels:        defaultLevels,
	}
}

// Render draws fig and writes it to w as PNG.
func (h *Heatmap) Render(w io.Writer, fig *Figure) error {
	if fig == nil || fig.Grid == nil {
		return ErrEmptyFigure
	}
	if r, c := fig.Grid.Dims(); r == 0 || c == 0 {
		return ErrEmptyFigure
	}

	vmin, vmax := displayRange(fig.VMin, fig.VMax)
	cm, err := LookupColormap(fig.Cmap)
	if err != nil {
		return err
	}
	cm.SetMin(vmin)
	cm.SetMax(vmax)

	levels := h.Levels
	if levels < 2 {
		levels = defaultLevels
	}
	pal := cm.Palette(levels)
	colors := pal.Colors()

	hm := plotter.NewHeatMap(gridXYZ{m: fig.Grid, x: fig.X, y: fig.Y}, pal)
	hm.Min, hm.Max = vmin, vmax
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	hm.NaN = color.Transparent

	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	p.Add(hm)
	p.Y.Tick.Marker = integerTicks
	if fig.YLim != nil {
		p.Y.Min, p.Y.Max = fig.YLim[0], fig.YLim[1]
	}

	cb := plot.New()
	cb.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: levels})
	cb.HideX()
	cb.Y.Padding = 0

	size := h.Size
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	if size.DPI <= 0 {
		size.DPI = DefaultSize.DPI
	}
	barWidth := h.ColorbarWidth
	if barWidth <= 0 || barWidth >= size.Width {
		barWidth = defaultColorbarWidth
	}

	img := vgimg.NewWith(vgimg.UseWH(size.Width, size.Height), vgimg.UseDPI(size.DPI))
	dc := draw.New(img)
	p.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	cb.Draw(draw.Crop(dc, size.Width-barWidth, 0, 0, 0))

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

// displayRange widens a degenerate (vmin, vmax) so the colormap has a span.
func displayRange(vmin, vmax float64) (float64, float64) {
	if math.IsNaN(vmin) || math.IsNaN(vmax) || math.IsInf(vmin, 0) || math.IsInf(vmax, 0) {
		return -1, 1
	}
	if vmax <= vmin {
		return vmin - 0.5, vmax + 0.5
	}
	return vmin, vmax
}

// integerTicks keeps only whole-number major ticks: cycle numbers.
var integerTicks = plot.TickerFunc(func(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(min, max) {
		if t.IsMinor() {
			ticks = append(ticks, t)
			continue
		}
		if t.Value != math.Trunc(t.Value) {
			continue
		}
		t.Label = strconv.Itoa(int(t.Value))
		ticks = append(ticks, t)
	}
	return ticks
})
