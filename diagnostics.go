/*
Copyright © 2026 the Lavaflow authors.
This file is part of Lavaflow.

Lavaflow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Lavaflow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Lavaflow.  If not, see <http://www.gnu.org/licenses/>.
*/

package lavaflow

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample is one recorded value of a diagnostic variable, keyed by the
// down-flow position it was recorded at.
type Sample struct {
	Position float64
	Value    float64
}

// Diagnostics is an append-only sink for every intermediate quantity a
// run produces. Each run owns exactly one Diagnostics; the integrator
// and the flux models it invokes are its only writers, so no locking is
// needed under the single-threaded run model. Variables keep the order
// in which they were first recorded.
type Diagnostics struct {
	names  []string
	series map[string][]Sample
}

// NewDiagnostics creates an empty diagnostics sink for a single run.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{series: make(map[string][]Sample)}
}

// Record appends a value for the named variable at the given position.
func (d *Diagnostics) Record(name string, position, value float64) {
	if _, ok := d.series[name]; !ok {
		d.names = append(d.names, name)
	}
	d.series[name] = append(d.series[name], Sample{Position: position, Value: value})
}

// Names returns the recorded variable names in first-recorded order.
func (d *Diagnostics) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Series returns the recorded samples for the named variable, in
// recording order, or nil if the variable was never recorded.
func (d *Diagnostics) Series(name string) []Sample {
	s, ok := d.series[name]
	if !ok {
		return nil
	}
	out := make([]Sample, len(s))
	copy(out, s)
	return out
}

// Values returns just the values of the named variable, in recording
// order.
func (d *Diagnostics) Values(name string) []float64 {
	s := d.series[name]
	out := make([]float64, len(s))
	for i, smp := range s {
		out[i] = smp.Value
	}
	return out
}

// Positions returns the positions the named variable was recorded at, in
// recording order.
func (d *Diagnostics) Positions(name string) []float64 {
	s := d.series[name]
	out := make([]float64, len(s))
	for i, smp := range s {
		out[i] = smp.Position
	}
	return out
}

// Len returns the number of samples recorded for the named variable.
func (d *Diagnostics) Len(name string) int { return len(d.series[name]) }

// VariableSummary holds summary statistics for one diagnostic variable.
type VariableSummary struct {
	Name           string
	N              int
	Min, Max, Mean float64
}

// Summary returns summary statistics for the named variable. It returns
// an error if the variable was never recorded.
func (d *Diagnostics) Summary(name string) (VariableSummary, error) {
	v := d.Values(name)
	if len(v) == 0 {
		return VariableSummary{}, fmt.Errorf("lavaflow: no diagnostics recorded for variable %s", name)
	}
	return VariableSummary{
		Name: name,
		N:    len(v),
		Min:  floats.Min(v),
		Max:  floats.Max(v),
		Mean: stat.Mean(v, nil),
	}, nil
}

// WriteCSV writes every recorded sample as (variable, position, value)
// rows in recording order. units maps variable names to unit strings for
// the header; variables missing from the map get a bare name.
func (d *Diagnostics) WriteCSV(w io.Writer, units map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"variable", "position (m)", "value"}); err != nil {
		return fmt.Errorf("lavaflow: writing diagnostics header: %v", err)
	}
	for _, name := range d.names {
		label := name
		if u, ok := units[name]; ok && u != "" {
			label = name + " (" + u + ")"
		}
		for _, smp := range d.series[name] {
			err := cw.Write([]string{
				label,
				strconv.FormatFloat(smp.Position, 'g', -1, 64),
				strconv.FormatFloat(smp.Value, 'g', -1, 64),
			})
			if err != nil {
				return fmt.Errorf("lavaflow: writing diagnostics for %s: %v", name, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
