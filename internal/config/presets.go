package config

import "sort"

// Presets are named figure layouts.
var Presets = map[string]FigureConfig{
	"tall":   {Width: 4, Height: 10, DPI: 150, ColorbarWidth: 0.9},
	"wide":   {Width: 12, Height: 5, DPI: 150, ColorbarWidth: 1},
	"square": {Width: 7, Height: 7, DPI: 150, ColorbarWidth: 1},
	"poster": {Width: 8, Height: 20, DPI: 300, ColorbarWidth: 1.2},
}

func GetPreset(name string) *FigureConfig {
	fig, ok := Presets[name]
	if !ok {
		return nil
	}
	return &fig
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset replaces the figure section with the named preset.
func (c *Config) ApplyPreset(name string) bool {
	fig := GetPreset(name)
	if fig == nil {
		return false
	}
	c.Figure = *fig
	return true
}
