package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/river/internal/analysis"
	"github.com/san-kum/river/internal/batch"
	"github.com/san-kum/river/internal/config"
	"github.com/san-kum/river/internal/lightcurve"
	"github.com/san-kum/river/internal/logger"
	"github.com/san-kum/river/internal/river"
	"github.com/san-kum/river/internal/storage"
	"github.com/san-kum/river/internal/viz"
)

var errNoPeriod = errors.New("a period is required: pass --period or set it in the config file")

func (c *cli) load(path string) (*lightcurve.Series, error) {
	s, err := lightcurve.LoadCSV(path, c.cfg.CSVOptions())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	c.log().WithFields(logrus.Fields{
		"file":    path,
		"samples": s.Len(),
		"span":    s.Span(),
	}).Debug("loaded light curve")
	return s, nil
}

func (c *cli) fold(path string) (*lightcurve.Series, *river.Fold, error) {
	if c.cfg.Period <= 0 {
		return nil, nil, errNoPeriod
	}
	s, err := c.load(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := river.FoldSeries(s, c.cfg.Period)
	if err != nil {
		return nil, nil, err
	}
	return s, f, nil
}

func (c *cli) log() *logrus.Entry {
	return logger.For("cli")
}

func (c *cli) saveRun(meta storage.RunMetadata, f *river.Fold) error {
	st := storage.New(c.cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, f)
	if err != nil {
		return err
	}
	c.log().WithField("run", runID).Info("saved run")
	return nil
}

func (c *cli) metadata(source, output string) storage.RunMetadata {
	return storage.RunMetadata{
		Title:  c.cfg.Title,
		Source: source,
		Cmap:   c.cfg.Cmap,
		Window: c.cfg.Window(),
		Output: output,
	}
}

func (c *cli) runPlot(cmd *cobra.Command, args []string) error {
	if c.cfg.Period <= 0 {
		return errNoPeriod
	}
	s, err := c.load(args[0])
	if err != nil {
		return err
	}

	out, f, err := river.Plot(s, c.cfg.Period, river.Options{
		OutDir: c.cfg.OutDir,
		Title:  c.cfg.Title,
		Cmap:   c.cfg.Cmap,
		Window: c.cfg.Window(),
		Logger: logger.For("river"),
	}, c.cfg.Heatmap())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if c.save {
		return c.saveRun(c.metadata(args[0], out), f)
	}
	return nil
}

func (c *cli) runFold(cmd *cobra.Command, args []string) error {
	_, f, err := c.fold(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "period %g d, cadence %g d, %d samples per cycle, cycles %d..%d\n\n",
		f.Period, f.Cadence, f.SamplesPerCycle, f.CycleMin, f.CycleMax-1)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CYCLE\tSAMPLES\tFILL")
	for i, cyc := range f.Cycles {
		fmt.Fprintf(w, "%d\t%d\t%s\n", cyc, f.Counts[i], f.Policies[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if c.save {
		return c.saveRun(c.metadata(args[0], ""), f)
	}
	return nil
}

func (c *cli) runProfile(cmd *cobra.Command, args []string) error {
	_, f, err := c.fold(args[0])
	if err != nil {
		return err
	}
	chart, err := viz.Profile(f, c.width, c.height)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), chart)
	return nil
}

func (c *cli) runPreview(cmd *cobra.Command, args []string) error {
	_, f, err := c.fold(args[0])
	if err != nil {
		return err
	}
	out, err := viz.Preview(f, viz.PreviewOptions{
		Width:  c.width,
		Cmap:   c.cfg.Cmap,
		Window: c.cfg.Window(),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func (c *cli) runBrowse(cmd *cobra.Command, args []string) error {
	_, f, err := c.fold(args[0])
	if err != nil {
		return err
	}
	m, err := viz.NewBrowser(f, c.cfg.Cmap)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (c *cli) runPeriod(cmd *cobra.Command, args []string) error {
	s, err := c.load(args[0])
	if err != nil {
		return err
	}
	p, err := analysis.DominantPeriod(s, c.minPeriod, c.maxPeriod)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "dominant period: %.6g d\n", p)
	return nil
}

func (c *cli) listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(c.cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTIME\tPERIOD\tCYCLES\tOUTPUT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.6g\t%d\t%s\n",
			run.ID,
			run.Title,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Period,
			run.CycleMax-run.CycleMin,
			run.Output,
		)
	}
	return w.Flush()
}

func (c *cli) exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(c.cfg.DataDir)

	switch c.format {
	case "csv":
		file, err := os.Open(st.GridPath(runID))
		if err != nil {
			return err
		}
		defer file.Close()
		_, err = io.Copy(cmd.OutOrStdout(), file)
		return err
	case "json":
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		g, err := st.LoadGrid(runID)
		if err != nil {
			return err
		}
		return storage.ExportJSON(cmd.OutOrStdout(), meta, g)
	default:
		return fmt.Errorf("unknown export format %q", c.format)
	}
}

func (c *cli) listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSIZE\tDPI\tCOLORBAR")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%gx%g in\t%d\t%g in\n", name, p.Width, p.Height, p.DPI, p.ColorbarWidth)
	}
	return w.Flush()
}

// jobDefaults fills batch jobs from the resolved configuration.
func (c *cli) jobDefaults() batch.Job {
	return batch.Job{
		Period:     c.cfg.Period,
		Title:      c.cfg.Title,
		OutDir:     c.cfg.OutDir,
		Cmap:       c.cfg.Cmap,
		Window:     c.cfg.Window().String(),
		TimeColumn: c.cfg.Input.TimeColumn,
		FluxColumn: c.cfg.Input.FluxColumn,
	}
}

func (c *cli) runScenario(cmd *cobra.Command, sc *batch.Scenario) error {
	results, err := batch.Run(cmd.Context(), sc, c.cfg.Heatmap(), logger.For("batch"), c.workers)

	out := cmd.OutOrStdout()
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		fmt.Fprintln(out, res.Output)
		if !c.save && !res.Job.Save {
			continue
		}
		var w *river.Window
		if res.Job.Window != "" {
			pw, perr := river.ParseWindow(res.Job.Window)
			if perr != nil {
				err = errors.Join(err, fmt.Errorf("%s: %w", res.Job.Title, perr))
				continue
			}
			w = pw
		}
		meta := storage.RunMetadata{
			Title:  res.Job.Title,
			Source: res.Job.Input,
			Cmap:   res.Job.Cmap,
			Window: w,
			Output: res.Output,
		}
		if serr := c.saveRun(meta, res.Fold); serr != nil {
			err = errors.Join(err, serr)
		}
	}
	return err
}

func (c *cli) runBatch(cmd *cobra.Command, args []string) error {
	sc, err := batch.LoadScenario(args[0])
	if err != nil {
		return err
	}
	sc.ApplyDefaults(c.jobDefaults())
	c.log().WithFields(logrus.Fields{
		"scenario": sc.Name,
		"jobs":     len(sc.Jobs),
	}).Info("running batch")
	return c.runScenario(cmd, sc)
}

func (c *cli) runSweep(cmd *cobra.Command, args []string) error {
	base := c.jobDefaults()
	base.Input = args[0]
	sc, err := batch.Sweep{
		Base:  base,
		Min:   c.minPeriod,
		Max:   c.maxPeriod,
		Steps: c.steps,
	}.Scenario()
	if err != nil {
		return err
	}
	return c.runScenario(cmd, sc)
}
