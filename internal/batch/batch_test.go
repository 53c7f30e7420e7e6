package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/river/internal/render"
	"github.com/san-kum/river/internal/river"
)

type fakePNG struct{}

func (fakePNG) Render(w io.Writer, fig *render.Figure) error {
	_, err := w.Write([]byte("png"))
	return err
}

func writeCurve(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("t,f\n")
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "%d,%d\n", i, i%8)
	}
	path := filepath.Join(dir, "lc.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: nightly
defaults:
  input: lc.csv
  period: 8
  cmap: Greys
  time_column: t
  flux_column: f
jobs:
  - title: a
  - title: b
    period: 4
    input: /data/other.csv
    window: "1,2"
`), 0644))

	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "nightly", sc.Name)
	require.Len(t, sc.Jobs, 2)

	assert.Equal(t, Job{
		Input: filepath.Join(dir, "lc.csv"), Period: 8, Title: "a", Cmap: "Greys",
		TimeColumn: "t", FluxColumn: "f",
	}, sc.Jobs[0])
	assert.Equal(t, "/data/other.csv", sc.Jobs[1].Input)
	assert.Equal(t, 4.0, sc.Jobs[1].Period)
	assert.Equal(t, "1,2", sc.Jobs[1].Window)
}

func TestLoadScenarioErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("name: nothing\n"), 0644))
	_, err := LoadScenario(empty)
	assert.ErrorIs(t, err, ErrNoJobs)

	_, err = LoadScenario(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	csv := writeCurve(t, dir)
	base := Job{Input: csv, Period: 8, OutDir: dir, TimeColumn: "t", FluxColumn: "f"}

	sc := &Scenario{Jobs: []Job{base, base, base}}
	sc.Jobs[0].Title = "one"
	sc.Jobs[2].Title = "three"
	sc.Jobs[2].Window = "0,2"

	results, err := Run(context.Background(), sc, fakePNG{}, nil, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, river.ErrMissingTitle)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, filepath.Join(dir, "one_river_Blues_r.png"), results[0].Output)
	assert.Equal(t, 4, results[0].Fold.NumCycles())

	assert.ErrorIs(t, results[1].Err, river.ErrMissingTitle)

	assert.NoError(t, results[2].Err)
	assert.FileExists(t, filepath.Join(dir, "three_river_Blues_r_0_2.png"))
}

func TestRunBadWindow(t *testing.T) {
	dir := t.TempDir()
	sc := &Scenario{Jobs: []Job{{Input: writeCurve(t, dir), Period: 8, Title: "x", OutDir: dir, Window: "2"}}}

	results, err := Run(context.Background(), sc, fakePNG{}, nil, 1)
	assert.ErrorIs(t, err, river.ErrInvalidWindow)
	assert.Empty(t, results[0].Output)
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	job := Job{Input: writeCurve(t, dir), Period: 8, Title: "x", OutDir: dir, TimeColumn: "t", FluxColumn: "f"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, &Scenario{Jobs: []Job{job, job}}, fakePNG{}, nil, 4)
	assert.ErrorIs(t, err, context.Canceled)
	for _, res := range results {
		assert.ErrorIs(t, res.Err, context.Canceled)
	}
	assert.NoFileExists(t, filepath.Join(dir, "x_river_Blues_r.png"))
}

func TestRunNoJobs(t *testing.T) {
	_, err := Run(context.Background(), &Scenario{}, fakePNG{}, nil, 1)
	assert.ErrorIs(t, err, ErrNoJobs)
}

func TestSweep(t *testing.T) {
	sc, err := Sweep{Base: Job{Title: "star"}, Min: 7, Max: 9, Steps: 3}.Scenario()
	require.NoError(t, err)
	require.Len(t, sc.Jobs, 3)
	assert.Equal(t, []float64{7, 8, 9}, []float64{sc.Jobs[0].Period, sc.Jobs[1].Period, sc.Jobs[2].Period})
	assert.Equal(t, "star_P8.0000", sc.Jobs[1].Title)

	single, err := Sweep{Min: 3, Max: 3, Steps: 1}.Scenario()
	require.NoError(t, err)
	assert.Equal(t, 3.0, single.Jobs[0].Period)
	assert.Empty(t, single.Jobs[0].Title)

	for _, bad := range []Sweep{
		{Min: 0, Max: 1, Steps: 2},
		{Min: 2, Max: 1, Steps: 2},
		{Min: 1, Max: 1, Steps: 2},
		{Min: 1, Max: 2, Steps: 0},
	} {
		_, err := bad.Scenario()
		assert.ErrorIs(t, err, ErrBadSweep)
	}
}
