package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/river/internal/river"
)

const (
	metadataFile = "metadata.json"
	gridFile     = "grid.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one saved fold. The caller fills Title, Source, Cmap,
// Window and Output; Save fills the rest from the fold.
type RunMetadata struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Timestamp       time.Time     `json:"timestamp"`
	Source          string        `json:"source,omitempty"`
	Period          float64       `json:"period"`
	Cadence         float64       `json:"cadence"`
	T0              float64       `json:"t0"`
	SamplesPerCycle int           `json:"samples_per_cycle"`
	CycleMin        int           `json:"cycle_min"`
	CycleMax        int           `json:"cycle_max"`
	VMin            Float         `json:"vmin"`
	VMax            Float         `json:"vmax"`
	Cmap            string        `json:"cmap,omitempty"`
	Window          *river.Window `json:"window,omitempty"`
	Output          string        `json:"output,omitempty"`
	Counts          []int         `json:"counts"`
	Policies        []string      `json:"policies"`
}

// Save writes the run directory with its metadata and grid. Both files are
// encoded before anything touches the disk, and a failed write removes the
// directory again.
func (s *Store) Save(meta RunMetadata, f *river.Fold) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	runID := fmt.Sprintf("%s_%s", slug(meta.Title), strings.ReplaceAll(id.String(), "-", "")[:16])

	var grid bytes.Buffer
	if err := WriteGridCSV(&grid, f); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	describe(&meta, f)
	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, append(metaData, '\n'), grid.Bytes()); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta, grid []byte) error {
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), meta, 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runDir, gridFile), grid, 0644)
}

func describe(meta *RunMetadata, f *river.Fold) {
	meta.Period = f.Period
	meta.Cadence = f.Cadence
	meta.T0 = f.T0
	meta.SamplesPerCycle = f.SamplesPerCycle
	meta.CycleMin = f.CycleMin
	meta.CycleMax = f.CycleMax
	meta.VMin = Float(f.VMin)
	meta.VMax = Float(f.VMax)
	meta.Counts = f.Counts
	meta.Policies = make([]string, len(f.Policies))
	for i, p := range f.Policies {
		meta.Policies[i] = p.String()
	}
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadGrid reads a saved grid back as phase ticks, cycle numbers and the
// samples-per-cycle x cycles matrix.
func (s *Store) LoadGrid(runID string) (*Grid, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, gridFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadGridCSV(file)
}

// GridPath is where the grid CSV of a run lives.
func (s *Store) GridPath(runID string) string {
	return filepath.Join(s.baseDir, runID, gridFile)
}

func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "fold"
	}
	return out
}

// Grid is a fold grid read back from CSV.
type Grid struct {
	Phase  []float64
	Cycles []int
	Data   *mat.Dense
}
