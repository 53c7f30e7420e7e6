package lightcurve

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultTimeColumn = "time"
	DefaultFluxColumn = "flux"
)

// CSVOptions selects the time and flux columns of a table. Column names only
// apply when the first row is a header; headerless tables use the first two
// columns.
type CSVOptions struct {
	TimeColumn string
	FluxColumn string
}

// LoadCSV reads a series from the CSV file at path.
func LoadCSV(path string, opts CSVOptions) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := ReadCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ReadCSV reads a series from r. Rows whose time does not parse are skipped;
// a flux that does not parse is kept as NaN.
func ReadCSV(r io.Reader, opts CSVOptions) (*Series, error) {
	if opts.TimeColumn == "" {
		opts.TimeColumn = DefaultTimeColumn
	}
	if opts.FluxColumn == "" {
		opts.FluxColumn = DefaultFluxColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	timeIdx, fluxIdx := 0, 1
	start := 0
	if isHeader(records[0]) {
		timeIdx = columnIndex(records[0], opts.TimeColumn)
		fluxIdx = columnIndex(records[0], opts.FluxColumn)
		if timeIdx < 0 {
			return nil, fmt.Errorf("lightcurve: column %q not found", opts.TimeColumn)
		}
		if fluxIdx < 0 {
			return nil, fmt.Errorf("lightcurve: column %q not found", opts.FluxColumn)
		}
		start = 1
	}

	s := &Series{
		Time: make([]float64, 0, len(records)-start),
		Flux: make([]float64, 0, len(records)-start),
	}
	for _, record := range records[start:] {
		if timeIdx >= len(record) {
			continue
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(record[timeIdx]), 64)
		if err != nil {
			continue
		}
		f := math.NaN()
		if fluxIdx < len(record) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(record[fluxIdx]), 64); err == nil {
				f = v
			}
		}
		s.Time = append(s.Time, t)
		s.Flux = append(s.Flux, f)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	return err != nil
}

func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}
