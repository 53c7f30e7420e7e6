package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/river/internal/river"
)

var ErrBadGrid = errors.New("storage: malformed grid csv")

// WriteGridCSV writes one row per phase sample and one column per cycle,
// headed "phase,c<N>,...".
func WriteGridCSV(w io.Writer, f *river.Fold) error {
	if f == nil || f.Grid == nil {
		return fmt.Errorf("%w: no grid", ErrBadGrid)
	}
	rows, cols := f.Grid.Dims()
	if len(f.Cycles) != cols {
		return fmt.Errorf("%w: %d cycle labels for %d columns", ErrBadGrid, len(f.Cycles), cols)
	}
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(f.Cycles)+1)
	header = append(header, "phase")
	for _, c := range f.Cycles {
		header = append(header, fmt.Sprintf("c%d", c))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for r := 0; r < rows; r++ {
		phase := float64(r) * f.Cadence
		if r < len(f.Phase) {
			phase = f.Phase[r]
		}
		row := make([]string, 0, cols+1)
		row = append(row, strconv.FormatFloat(phase, 'f', 6, 64))
		for c := 0; c < cols; c++ {
			row = append(row, strconv.FormatFloat(f.Grid.At(r, c), 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadGridCSV(r io.Reader) (*Grid, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGrid, err)
	}
	if len(records) == 0 || len(records[0]) == 0 || records[0][0] != "phase" {
		return nil, fmt.Errorf("%w: missing header", ErrBadGrid)
	}

	header := records[0][1:]
	g := &Grid{Cycles: make([]int, len(header))}
	for i, h := range header {
		c, err := strconv.Atoi(strings.TrimPrefix(h, "c"))
		if err != nil {
			return nil, fmt.Errorf("%w: column %q", ErrBadGrid, h)
		}
		g.Cycles[i] = c
	}

	body := records[1:]
	if len(body) == 0 || len(header) == 0 {
		return g, nil
	}
	g.Phase = make([]float64, len(body))
	g.Data = mat.NewDense(len(body), len(header), nil)
	for r, rec := range body {
		for c, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrBadGrid, r+1, err)
			}
			if c == 0 {
				g.Phase[r] = v
			} else {
				g.Data.Set(r, c-1, v)
			}
		}
	}
	return g, nil
}
