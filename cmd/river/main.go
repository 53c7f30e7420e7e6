package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/river/internal/config"
	"github.com/san-kum/river/internal/logger"
	"github.com/san-kum/river/internal/river"
)

// cli carries the parsed flags and the resolved configuration of one
// invocation.
type cli struct {
	configFile string
	dataDir    string
	logLevel   string

	period  float64
	title   string
	outDir  string
	cmap    string
	window  string
	preset  string
	timeCol string
	fluxCol string
	save    bool

	minPeriod float64
	maxPeriod float64
	width     int
	height    int
	format    string
	steps     int
	workers   int

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Log.Error(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "river",
		Short:         "river plots for periodic light curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.resolve(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.dataDir, "data", "", "run store directory (default ./runs)")
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	plotCmd := &cobra.Command{
		Use:   "plot [csv]",
		Short: "fold a light curve and render a river plot PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runPlot,
	}
	c.foldFlags(plotCmd)
	c.displayFlags(plotCmd)
	plotCmd.Flags().StringVar(&c.outDir, "outdir", "", "output directory")
	plotCmd.Flags().StringVar(&c.title, "title", "", "plot title, also the file name prefix")
	plotCmd.Flags().StringVar(&c.preset, "preset", "", "figure preset (see presets)")
	plotCmd.Flags().BoolVar(&c.save, "save", false, "save the fold to the run store")

	foldCmd := &cobra.Command{
		Use:   "fold [csv]",
		Short: "fold a light curve and print per-cycle fill",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runFold,
	}
	c.foldFlags(foldCmd)
	foldCmd.Flags().StringVar(&c.title, "title", "", "run title when saving")
	foldCmd.Flags().BoolVar(&c.save, "save", false, "save the fold to the run store")

	profileCmd := &cobra.Command{
		Use:   "profile [csv]",
		Short: "mean flux per phase bin",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runProfile,
	}
	c.foldFlags(profileCmd)
	profileCmd.Flags().IntVar(&c.width, "width", 80, "chart width")
	profileCmd.Flags().IntVar(&c.height, "height", 15, "chart height")

	previewCmd := &cobra.Command{
		Use:   "preview [csv]",
		Short: "river plot in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runPreview,
	}
	c.foldFlags(previewCmd)
	c.displayFlags(previewCmd)
	previewCmd.Flags().IntVar(&c.width, "width", 0, "cells per cycle (default 60)")

	browseCmd := &cobra.Command{
		Use:   "browse [csv]",
		Short: "scroll through cycles interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runBrowse,
	}
	c.foldFlags(browseCmd)
	browseCmd.Flags().StringVar(&c.cmap, "cmap", "", "colormap name")

	periodCmd := &cobra.Command{
		Use:   "period [csv]",
		Short: "dominant period from an FFT periodogram",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runPeriod,
	}
	c.columnFlags(periodCmd)
	periodCmd.Flags().Float64Var(&c.minPeriod, "min", 0, "shortest period to consider")
	periodCmd.Flags().Float64Var(&c.maxPeriod, "max", 0, "longest period to consider (default: span)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  c.listRuns,
	}

	exportCmd := &cobra.Command{
		Use:     "export-csv [run_id]",
		Aliases: []string{"export"},
		Short:   "print a saved grid",
		Args:    cobra.ExactArgs(1),
		RunE:    c.exportRun,
	}
	exportCmd.Flags().StringVar(&c.format, "format", "csv", "output format: csv or json")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list figure presets",
		Args:  cobra.NoArgs,
		RunE:  c.listPresets,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render every plot listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runBatch,
	}
	batchCmd.Flags().StringVar(&c.outDir, "outdir", "", "output directory for jobs that set none")
	batchCmd.Flags().StringVar(&c.preset, "preset", "", "figure preset (see presets)")
	batchCmd.Flags().IntVar(&c.workers, "workers", runtime.NumCPU(), "plots rendered in parallel")
	batchCmd.Flags().BoolVar(&c.save, "save", false, "save every fold to the run store")

	sweepCmd := &cobra.Command{
		Use:   "sweep [csv]",
		Short: "render one river plot per trial period",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runSweep,
	}
	c.columnFlags(sweepCmd)
	c.displayFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&c.outDir, "outdir", "", "output directory")
	sweepCmd.Flags().StringVar(&c.title, "title", "", "plot title, suffixed with the trial period")
	sweepCmd.Flags().StringVar(&c.preset, "preset", "", "figure preset (see presets)")
	sweepCmd.Flags().Float64Var(&c.minPeriod, "min", 0, "first trial period")
	sweepCmd.Flags().Float64Var(&c.maxPeriod, "max", 0, "last trial period")
	sweepCmd.Flags().IntVar(&c.steps, "steps", 5, "number of trial periods")
	sweepCmd.Flags().IntVar(&c.workers, "workers", runtime.NumCPU(), "plots rendered in parallel")

	rootCmd.AddCommand(plotCmd, foldCmd, profileCmd, previewCmd, browseCmd, periodCmd, listCmd, exportCmd, presetsCmd, batchCmd, sweepCmd)
	return rootCmd
}

func (c *cli) columnFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.timeCol, "time-col", "", "time column name (default time)")
	cmd.Flags().StringVar(&c.fluxCol, "flux-col", "", "flux column name (default flux)")
}

func (c *cli) foldFlags(cmd *cobra.Command) {
	c.columnFlags(cmd)
	cmd.Flags().Float64Var(&c.period, "period", 0, "folding period in days")
}

func (c *cli) displayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.cmap, "cmap", "", "colormap name (default Blues_r)")
	cmd.Flags().StringVar(&c.window, "window", "", "cycle window min,max")
}

// resolve builds the configuration: defaults, config file, environment, then
// flags the user set explicitly.
func (c *cli) resolve(cmd *cobra.Command) error {
	cfg, err := config.Resolve(c.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = c.dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	logger.Init(cfg.LogLevel, cfg.Environment)

	if flags.Changed("preset") && !cfg.ApplyPreset(c.preset) {
		return fmt.Errorf("unknown preset %q (have %s)", c.preset, strings.Join(config.ListPresets(), ", "))
	}
	if flags.Changed("period") {
		cfg.Period = c.period
	}
	if flags.Changed("title") {
		cfg.Title = c.title
	}
	if flags.Changed("outdir") {
		cfg.OutDir = c.outDir
	}
	if flags.Changed("cmap") {
		cfg.Cmap = c.cmap
	}
	if flags.Changed("window") {
		w, err := river.ParseWindow(c.window)
		if err != nil {
			return err
		}
		cfg.CycleWindow = &config.WindowConfig{Min: w.Min, Max: w.Max}
	}
	if flags.Changed("time-col") {
		cfg.Input.TimeColumn = c.timeCol
	}
	if flags.Changed("flux-col") {
		cfg.Input.FluxColumn = c.fluxCol
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}
