package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/river/internal/river"
)

const (
	defaultVisibleRows = 20
	minVisibleRows     = 5
	// rows taken by the header and help around the heat rows
	browserChrome = 8
	// columns taken by the stats panel next to the heat rows
	statsWidth = 48
)

// Browser is a bubbletea model for scrolling through the cycles of a fold.
type Browser struct {
	fold    *river.Fold
	painter *heatPainter
	theme   Theme
	styles  styles

	cursor int // selected grid column
	top    int // first visible grid column
	rows   int
	width  int
}

// NewBrowser builds a browser over f drawn with the named colormap.
func NewBrowser(f *river.Fold, cmap string) (Browser, error) {
	if f.NumCycles() == 0 {
		return Browser{}, ErrNoCycles
	}
	p, err := newHeatPainter(f, cmap)
	if err != nil {
		return Browser{}, err
	}
	return Browser{
		fold:    f,
		painter: p,
		theme:   ThemeNight,
		styles:  newStyles(ThemeNight),
		rows:    defaultVisibleRows,
		width:   previewWidth(f, DefaultPreviewWidth),
	}, nil
}

// Selected returns the cycle number under the cursor.
func (m Browser) Selected() int {
	return m.fold.Cycles[m.cursor]
}

func (m Browser) Init() tea.Cmd {
	return nil
}

// Update handles key presses and terminal resizes.
func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup", "[":
			m.move(-m.rows)
		case "pgdown", "]":
			m.move(m.rows)
		case "home", "g":
			m.move(-m.cursor)
		case "end", "G":
			m.move(m.fold.NumCycles())
		case "t":
			m.theme = nextTheme(m.theme)
			m.styles = newStyles(m.theme)
		}
	case tea.WindowSizeMsg:
		m.rows = max(msg.Height-browserChrome, minVisibleRows)
		m.width = previewWidth(m.fold, msg.Width-statsWidth-10)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta columns and scrolls to keep it visible.
func (m *Browser) move(delta int) {
	last := m.fold.NumCycles() - 1
	m.cursor = max(0, min(m.cursor+delta, last))
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+m.rows {
		m.top = m.cursor - m.rows + 1
	}
}

// View renders the heat rows on the left and the selected cycle on the right.
func (m Browser) View() string {
	f := m.fold
	st := m.styles

	var rows strings.Builder
	end := min(m.top+m.rows, f.NumCycles())
	for col := m.top; col < end; col++ {
		label := fmt.Sprintf("%6d", f.Cycles[col])
		marker := "  "
		if col == m.cursor {
			label = st.selected.Render(label)
			marker = st.selected.Render("▶ ")
		}
		rows.WriteString(marker + label + " │" + m.painter.row(f, col, max(m.width, 1)) + "\n")
	}

	var s strings.Builder
	s.WriteString(st.header.Render(fmt.Sprintf("CYCLE %d", m.Selected())) + "\n")
	s.WriteString(st.label.Render("Samples") + st.value.Render(fmt.Sprintf("%d / %d", f.Counts[m.cursor], f.SamplesPerCycle)) + "\n")
	s.WriteString(st.label.Render("Fill") + st.value.Render(f.Policies[m.cursor].String()) + "\n")
	s.WriteString(st.label.Render("Period") + st.value.Render(fmt.Sprintf("%.6g d", f.Period)) + "\n")
	s.WriteString(st.label.Render("Cadence") + st.value.Render(fmt.Sprintf("%.4g d", f.Cadence)) + "\n")
	if col, ok := f.Column(m.Selected()); ok && len(col) > 1 {
		chart := asciigraph.Plot(col, asciigraph.Height(6), asciigraph.Width(statsWidth-12), asciigraph.Caption("flux"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}
	counts := make([]float64, len(f.Counts))
	for i, c := range f.Counts {
		counts[i] = float64(c)
	}
	s.WriteString(st.label.Render("Counts") + SparklineChart(counts, statsWidth-16) + "\n")

	header := st.header.Render(fmt.Sprintf("RIVER  P=%.6g d  S=%d  cycles %d..%d",
		f.Period, f.SamplesPerCycle, f.CycleMin, f.CycleMax-1))
	body := lipgloss.JoinHorizontal(lipgloss.Top, rows.String(), st.panel.Render(s.String()))
	help := st.help.Render("↑↓/jk:select  [ ]:page  g/G:first/last  t:theme  q:quit")
	return header + "\n" + body + "\n" + help
}
