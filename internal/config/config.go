package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/river/internal/lightcurve"
	"github.com/san-kum/river/internal/render"
	"github.com/san-kum/river/internal/river"
)

const (
	DefaultOutDir        = "."
	DefaultDataDir       = "./runs"
	DefaultWidth         = 4.0
	DefaultHeight        = 10.0
	DefaultDPI           = 150
	DefaultColorbarWidth = 0.9
	DefaultLogLevel      = "info"
	DefaultEnvironment   = "development"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Period      float64       `yaml:"period,omitempty"`
	Title       string        `yaml:"title,omitempty"`
	OutDir      string        `yaml:"outdir"`
	Cmap        string        `yaml:"cmap"`
	CycleWindow *WindowConfig `yaml:"cycle_window,omitempty"`
	Figure      FigureConfig  `yaml:"figure"`
	Input       InputConfig   `yaml:"input"`
	DataDir     string        `yaml:"data_dir"`
	LogLevel    string        `yaml:"log_level"`
	Environment string        `yaml:"environment"`
}

type WindowConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// FigureConfig sizes are in inches.
type FigureConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	DPI           int     `yaml:"dpi"`
	ColorbarWidth float64 `yaml:"colorbar_width"`
}

type InputConfig struct {
	TimeColumn string `yaml:"time_column"`
	FluxColumn string `yaml:"flux_column"`
}

func DefaultConfig() *Config {
	return &Config{
		OutDir: DefaultOutDir,
		Cmap:   render.DefaultColormap,
		Figure: FigureConfig{
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			DPI:           DefaultDPI,
			ColorbarWidth: DefaultColorbarWidth,
		},
		Input: InputConfig{
			TimeColumn: lightcurve.DefaultTimeColumn,
			FluxColumn: lightcurve.DefaultFluxColumn,
		},
		DataDir:     DefaultDataDir,
		LogLevel:    DefaultLogLevel,
		Environment: DefaultEnvironment,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the fields present in the YAML file at path onto cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Period < 0 {
		return fmt.Errorf("%w: period %g", ErrInvalidConfig, c.Period)
	}
	if c.Figure.Width <= 0 || c.Figure.Height <= 0 {
		return fmt.Errorf("%w: figure %gx%g", ErrInvalidConfig, c.Figure.Width, c.Figure.Height)
	}
	if c.Figure.DPI <= 0 {
		return fmt.Errorf("%w: dpi %d", ErrInvalidConfig, c.Figure.DPI)
	}
	if c.Figure.ColorbarWidth < 0 || c.Figure.ColorbarWidth >= c.Figure.Width {
		return fmt.Errorf("%w: colorbar width %g", ErrInvalidConfig, c.Figure.ColorbarWidth)
	}
	if _, err := render.LookupColormap(c.Cmap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if w := c.Window(); w != nil {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Window returns the configured cycle window, nil when unset.
func (c *Config) Window() *river.Window {
	if c.CycleWindow == nil {
		return nil
	}
	return &river.Window{Min: c.CycleWindow.Min, Max: c.CycleWindow.Max}
}

func (c *Config) CSVOptions() lightcurve.CSVOptions {
	return lightcurve.CSVOptions{
		TimeColumn: c.Input.TimeColumn,
		FluxColumn: c.Input.FluxColumn,
	}
}

// Heatmap builds the PNG renderer for the configured figure.
func (c *Config) Heatmap() *render.Heatmap {
	h := render.NewHeatmap(render.Size{
		Width:  vg.Length(c.Figure.Width) * vg.Inch,
		Height: vg.Length(c.Figure.Height) * vg.Inch,
		DPI:    c.Figure.DPI,
	})
	h.ColorbarWidth = vg.Length(c.Figure.ColorbarWidth) * vg.Inch
	return h
}
