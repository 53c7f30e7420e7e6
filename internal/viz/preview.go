package viz

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette"

	"github.com/san-kum/river/internal/render"
	"github.com/san-kum/river/internal/river"
)

const (
	DefaultPreviewWidth = 60
	cell                = "█"
)

// ErrNoCycles indicates a fold, or a window over it, with nothing to draw.
var ErrNoCycles = errors.New("viz: no cycles to draw")

type PreviewOptions struct {
	// Width is the number of phase cells per row, capped at the samples per
	// cycle.
	Width  int
	Cmap   string
	Window *river.Window
}

// heatPainter colors grid values with a colormap scaled to the fold's
// display bounds.
type heatPainter struct {
	cm    palette.ColorMap
	cache map[string]lipgloss.Style
}

func newHeatPainter(f *river.Fold, cmap string) (*heatPainter, error) {
	cm, err := render.LookupColormap(cmap)
	if err != nil {
		return nil, err
	}
	lo, hi := f.VMin, f.VMax
	if !(hi > lo) {
		lo, hi = lo-0.5, hi+0.5
	}
	cm.SetMin(lo)
	cm.SetMax(hi)
	return &heatPainter{cm: cm, cache: make(map[string]lipgloss.Style)}, nil
}

func (p *heatPainter) paint(v float64) string {
	hex, ok := hexOf(render.ColorAt(p.cm, v))
	if !ok {
		return " "
	}
	st, ok := p.cache[hex]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
		p.cache[hex] = st
	}
	return st.Render(cell)
}

// row draws grid column col as width cells.
func (p *heatPainter) row(f *river.Fold, col, width int) string {
	var sb strings.Builder
	for j := 0; j < width; j++ {
		r := j * f.SamplesPerCycle / width
		sb.WriteString(p.paint(f.Grid.At(r, col)))
	}
	return sb.String()
}

// colorbar draws width cells running from vmin to vmax.
func (p *heatPainter) colorbar(width int) string {
	var sb strings.Builder
	lo, hi := p.cm.Min(), p.cm.Max()
	for j := 0; j < width; j++ {
		v := lo
		if width > 1 {
			v = lo + (hi-lo)*float64(j)/float64(width-1)
		}
		sb.WriteString(p.paint(v))
	}
	return fmt.Sprintf("%9.3g %s %-9.3g", lo, sb.String(), hi)
}

func hexOf(c color.Color) (string, bool) {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "", false
	}
	return cc.Hex(), true
}

// Preview draws the fold as colored rows, one per cycle, highest cycle on
// top as in the rendered plot.
func Preview(f *river.Fold, opts PreviewOptions) (string, error) {
	width := previewWidth(f, opts.Width)
	p, err := newHeatPainter(f, opts.Cmap)
	if err != nil {
		return "", err
	}

	var lines []string
	for col := f.NumCycles() - 1; col >= 0; col-- {
		c := f.Cycles[col]
		if !opts.Window.Contains(c) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%6d │%s", c, p.row(f, col, width)))
	}
	if len(lines) == 0 {
		return "", ErrNoCycles
	}

	lines = append(lines,
		"       └"+strings.Repeat("─", width),
		fmt.Sprintf("        0%*s", width-1, fmt.Sprintf("%.4g d", f.Period)),
		p.colorbar(min(width, 30)),
	)
	return strings.Join(lines, "\n"), nil
}

func previewWidth(f *river.Fold, want int) int {
	if want <= 0 {
		want = DefaultPreviewWidth
	}
	return min(want, f.SamplesPerCycle)
}
