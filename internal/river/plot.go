package river

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/river/internal/lightcurve"
	"github.com/san-kum/river/internal/render"
)

const (
	XLabel = "Time [days]"
	YLabel = "Cycle number"
)

// Options control how a fold is rendered and where the image goes.
type Options struct {
	OutDir string
	// Title labels the plot and names the output file. It is required.
	Title string
	// Cmap names the colormap; empty means render.DefaultColormap.
	Cmap string
	// Window, when set, limits the cycle axis of the plot.
	Window *Window

	Logger *logrus.Entry
}

// Figure builds the renderer input for f.
func (f *Fold) Figure(opts Options) *render.Figure {
	y := make([]float64, len(f.Cycles))
	for i, c := range f.Cycles {
		y[i] = float64(c)
	}
	fig := &render.Figure{
		Grid:   f.Transposed(),
		X:      f.Phase,
		Y:      y,
		Cmap:   cmapName(opts.Cmap),
		VMin:   f.VMin,
		VMax:   f.VMax,
		Title:  opts.Title,
		XLabel: XLabel,
		YLabel: YLabel,
	}
	if opts.Window != nil {
		fig.YLim = &[2]float64{float64(opts.Window.Min), float64(opts.Window.Max)}
	}
	return fig
}

// Plot folds s by period and renders the river plot to
// {OutDir}/{Title}_river_{Cmap}{window suffix}.png. It returns the written
// path and the fold. Nothing is written unless every step succeeds.
func Plot(s *lightcurve.Series, period float64, opts Options, r render.Renderer) (string, *Fold, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	f, err := FoldSeries(s, period)
	if err != nil {
		return "", nil, err
	}
	log.WithFields(logrus.Fields{
		"period":            f.Period,
		"cadence":           f.Cadence,
		"samples_per_cycle": f.SamplesPerCycle,
		"cycles":            f.NumCycles(),
	}).Debug("folded light curve")

	if opts.Window != nil {
		if err := opts.Window.Validate(); err != nil {
			return "", f, err
		}
	}

	cmap := cmapName(opts.Cmap)
	path, err := OutputPath(opts.OutDir, opts.Title, cmap, opts.Window)
	if err != nil {
		return "", f, err
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, f.Figure(opts)); err != nil {
		return "", f, fmt.Errorf("river: render %s: %w", path, err)
	}

	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
			return "", f, err
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", f, err
	}

	log.WithField("path", path).Info("wrote river plot")
	return path, f, nil
}

func cmapName(name string) string {
	if name == "" {
		return render.DefaultColormap
	}
	return name
}
