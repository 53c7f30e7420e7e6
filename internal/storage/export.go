package storage

import (
	"encoding/json"
	"io"

	"gonum.org/v1/gonum/mat"
)

type ExportData struct {
	RunMetadata
	Phase   []float64 `json:"phase"`
	Cycles  []int     `json:"cycles"`
	Columns []Column  `json:"columns"`
}

// ExportJSON writes a run and its grid, one array per cycle column.
func ExportJSON(w io.Writer, meta *RunMetadata, g *Grid) error {
	data := ExportData{
		RunMetadata: *meta,
		Phase:       g.Phase,
		Cycles:      g.Cycles,
		Columns:     make([]Column, len(g.Cycles)),
	}
	if g.Data != nil {
		for c := range data.Columns {
			data.Columns[c] = mat.Col(nil, c, g.Data)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
