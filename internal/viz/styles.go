package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	help     lipgloss.Style
	selected lipgloss.Style
	panel    lipgloss.Style
	graph    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		selected: lipgloss.NewStyle().Foreground(t.Highlight).Bold(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2),
		graph: lipgloss.NewStyle().Foreground(t.Secondary),
	}
}

// SparklineChart renders values as a row of block characters, sampled to fit
// width.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
