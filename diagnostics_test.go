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
	"bytes"
	"reflect"
	"testing"
)

func TestDiagnosticsRecordOrder(t *testing.T) {
	d := NewDiagnostics()
	d.Record("core_temperature", 0, 1400)
	d.Record("mean_velocity", 0, 2)
	d.Record("core_temperature", 1, 1399.5)
	d.Record("mean_velocity", 1, 1.9)

	want := []string{"core_temperature", "mean_velocity"}
	if got := d.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("names = %v; want %v", got, want)
	}
	if n := d.Len("core_temperature"); n != 2 {
		t.Errorf("core_temperature has %d samples; want 2", n)
	}
	wantSeries := []Sample{{Position: 0, Value: 1400}, {Position: 1, Value: 1399.5}}
	if got := d.Series("core_temperature"); !reflect.DeepEqual(got, wantSeries) {
		t.Errorf("series = %v; want %v", got, wantSeries)
	}
	if got := d.Series("never_recorded"); got != nil {
		t.Errorf("series for an unrecorded variable = %v; want nil", got)
	}
	wantValues := []float64{2, 1.9}
	if got := d.Values("mean_velocity"); !reflect.DeepEqual(got, wantValues) {
		t.Errorf("values = %v; want %v", got, wantValues)
	}
	wantPositions := []float64{0, 1}
	if got := d.Positions("mean_velocity"); !reflect.DeepEqual(got, wantPositions) {
		t.Errorf("positions = %v; want %v", got, wantPositions)
	}
}

func TestDiagnosticsSeriesIsACopy(t *testing.T) {
	d := NewDiagnostics()
	d.Record("slope", 0, 0.1)
	s := d.Series("slope")
	s[0].Value = 99
	if got := d.Series("slope")[0].Value; got != 0.1 {
		t.Errorf("mutating a returned series changed the sink: got %g; want 0.1", got)
	}
}

func TestDiagnosticsSummary(t *testing.T) {
	const tolerance = 1.e-12

	d := NewDiagnostics()
	for i, v := range []float64{2, 4, 6} {
		d.Record("mean_velocity", float64(i), v)
	}
	sum, err := d.Summary("mean_velocity")
	if err != nil {
		t.Fatal(err)
	}
	if sum.N != 3 {
		t.Errorf("N = %d; want 3", sum.N)
	}
	if different(sum.Min, 2, tolerance) || different(sum.Max, 6, tolerance) || different(sum.Mean, 4, tolerance) {
		t.Errorf("min, max, mean = %g, %g, %g; want 2, 6, 4", sum.Min, sum.Max, sum.Mean)
	}

	if _, err := d.Summary("never_recorded"); err == nil {
		t.Error("a summary of an unrecorded variable must fail")
	}
}

func TestDiagnosticsWriteCSV(t *testing.T) {
	d := NewDiagnostics()
	d.Record("core_temperature", 0, 1400)
	d.Record("mean_velocity", 0, 2)
	d.Record("core_temperature", 1, 1399.5)

	var buf bytes.Buffer
	err := d.WriteCSV(&buf, map[string]string{"core_temperature": "K"})
	if err != nil {
		t.Fatal(err)
	}
	want := "variable,position (m),value\n" +
		"core_temperature (K),0,1400\n" +
		"core_temperature (K),1,1399.5\n" +
		"mean_velocity,0,2\n"
	if got := buf.String(); got != want {
		t.Errorf("CSV output:\n%s\nwant:\n%s", got, want)
	}
}
