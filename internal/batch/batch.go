package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/river/internal/lightcurve"
	"github.com/san-kum/river/internal/render"
	"github.com/san-kum/river/internal/river"
)

var (
	ErrNoJobs   = errors.New("batch: scenario has no jobs")
	ErrBadSweep = errors.New("batch: invalid period sweep")
)

// Scenario is a list of river plots rendered in one go. Empty job fields
// fall back to Defaults.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Defaults    Job    `yaml:"defaults"`
	Jobs        []Job  `yaml:"jobs"`
}

type Job struct {
	Input      string  `yaml:"input"`
	Period     float64 `yaml:"period"`
	Title      string  `yaml:"title"`
	OutDir     string  `yaml:"outdir"`
	Cmap       string  `yaml:"cmap"`
	Window     string  `yaml:"window"`
	TimeColumn string  `yaml:"time_column"`
	FluxColumn string  `yaml:"flux_column"`
	Save       bool    `yaml:"save"`
}

type Result struct {
	Job    Job
	Output string
	Fold   *river.Fold
	Err    error
}

// LoadScenario reads a scenario file. Relative inputs resolve against the
// scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}
	if len(sc.Jobs) == 0 {
		return nil, ErrNoJobs
	}

	sc.ApplyDefaults(sc.Defaults)
	base := filepath.Dir(path)
	for i := range sc.Jobs {
		if in := sc.Jobs[i].Input; in != "" && !filepath.IsAbs(in) {
			sc.Jobs[i].Input = filepath.Join(base, in)
		}
	}
	return &sc, nil
}

// ApplyDefaults fills the empty fields of every job from d.
func (sc *Scenario) ApplyDefaults(d Job) {
	for i := range sc.Jobs {
		sc.Jobs[i] = sc.Jobs[i].withDefaults(d)
	}
}

func (j Job) withDefaults(d Job) Job {
	if j.Input == "" {
		j.Input = d.Input
	}
	if j.Period == 0 {
		j.Period = d.Period
	}
	if j.Title == "" {
		j.Title = d.Title
	}
	if j.OutDir == "" {
		j.OutDir = d.OutDir
	}
	if j.Cmap == "" {
		j.Cmap = d.Cmap
	}
	if j.Window == "" {
		j.Window = d.Window
	}
	if j.TimeColumn == "" {
		j.TimeColumn = d.TimeColumn
	}
	if j.FluxColumn == "" {
		j.FluxColumn = d.FluxColumn
	}
	j.Save = j.Save || d.Save
	return j
}

// RunJob loads, folds and renders one job.
func RunJob(job Job, r render.Renderer, log *logrus.Entry) Result {
	res := Result{Job: job}

	var w *river.Window
	if job.Window != "" {
		w, res.Err = river.ParseWindow(job.Window)
		if res.Err != nil {
			return res
		}
	}

	s, err := lightcurve.LoadCSV(job.Input, lightcurve.CSVOptions{
		TimeColumn: job.TimeColumn,
		FluxColumn: job.FluxColumn,
	})
	if err != nil {
		res.Err = err
		return res
	}

	res.Output, res.Fold, res.Err = river.Plot(s, job.Period, river.Options{
		OutDir: job.OutDir,
		Title:  job.Title,
		Cmap:   job.Cmap,
		Window: w,
		Logger: log,
	}, r)
	return res
}

// Run renders every job of the scenario with up to workers jobs in flight.
// Every job runs even when others fail; the returned error joins the
// failures. A cancelled context stops jobs that have not started yet.
func Run(ctx context.Context, sc *Scenario, r render.Renderer, log *logrus.Entry, workers int) ([]Result, error) {
	if len(sc.Jobs) == 0 {
		return nil, ErrNoJobs
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	workers = max(1, min(workers, len(sc.Jobs)))

	results := make([]Result, len(sc.Jobs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = RunJob(sc.Jobs[i], r, log.WithField("job", i+1))
			}
		}()
	}

	for i := range sc.Jobs {
		if !send(ctx, jobs, i) {
			for k := i; k < len(sc.Jobs); k++ {
				results[k] = Result{Job: sc.Jobs[k], Err: ctx.Err()}
			}
			break
		}
	}
	close(jobs)
	wg.Wait()

	var errs []error
	for i, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("job %d (%s): %w", i+1, res.Job.Title, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

func send(ctx context.Context, jobs chan<- int, i int) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case jobs <- i:
		return true
	}
}
