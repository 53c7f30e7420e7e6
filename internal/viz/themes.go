package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the chrome colors of the cycle browser. Heat cells always
// use the plot colormap.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:      "night",
		Primary:   lipgloss.Color("#6baed6"),
		Secondary: lipgloss.Color("#c6dbef"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4a5a6a"),
		Highlight: lipgloss.Color("#ffd700"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Highlight: lipgloss.Color("#0088ff"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Highlight: lipgloss.Color("#ff9ff3"),
	}

	Themes = []Theme{ThemeNight, ThemeMinimal, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to the night theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the theme after t in Themes, wrapping around.
func nextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}
