package storage

import (
	"bytes"
	"encoding/json"
	"math"
)

var jsonNull = []byte("null")

// Float is a float64 that encodes NaN and infinities as JSON null and reads
// null back as NaN.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return jsonNull, nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, jsonNull) {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Column is one grid column. Non-finite cells encode as null.
type Column []float64

func (c Column) MarshalJSON() ([]byte, error) {
	out := make([]Float, len(c))
	for i, v := range c {
		out[i] = Float(v)
	}
	return json.Marshal(out)
}

func (c *Column) UnmarshalJSON(b []byte) error {
	var in []Float
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*c = make(Column, len(in))
	for i, v := range in {
		(*c)[i] = float64(v)
	}
	return nil
}
