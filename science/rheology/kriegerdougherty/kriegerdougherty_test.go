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

package kriegerdougherty

import (
	"math"
	"testing"

	"github.com/spatialmodel/lavaflow"
)

const tolerance = 1.e-10

func different(a, b float64) bool {
	return 2*math.Abs(a-b)/math.Abs(a+b) > tolerance
}

func TestRelativeViscosity(t *testing.T) {
	m, err := New(0.641, 3.27)
	if err != nil {
		t.Fatal(err)
	}

	if got := m.RelativeViscosity(&lavaflow.FlowState{CrystalFraction: 0}); different(got, 1) {
		t.Errorf("relative viscosity of a pure melt = %g; want 1", got)
	}

	got := m.RelativeViscosity(&lavaflow.FlowState{CrystalFraction: 0.3})
	want := math.Pow(1-0.3/0.641, -3.27*0.641)
	if different(got, want) {
		t.Errorf("relative viscosity at φ = 0.3 = %g; want %g", got, want)
	}
	if got < 1 {
		t.Errorf("relative viscosity at φ = 0.3 = %g is below the pure-melt value", got)
	}
}

// At and beyond the maximum packing the suspension jams: the result is
// +Inf, never NaN and never an error.
func TestJamming(t *testing.T) {
	m, err := New(0.641, 3.27)
	if err != nil {
		t.Fatal(err)
	}
	for _, phi := range []float64{0.641, 0.65, 0.9, 1} {
		got := m.RelativeViscosity(&lavaflow.FlowState{CrystalFraction: phi})
		if !math.IsInf(got, 1) {
			t.Errorf("relative viscosity at φ = %g = %g; want +Inf", phi, got)
		}
	}
	// Just below the packing fraction the result is still finite.
	got := m.RelativeViscosity(&lavaflow.FlowState{CrystalFraction: 0.6409})
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("relative viscosity just below packing = %g; want finite", got)
	}
}

func TestNewValidation(t *testing.T) {
	for _, c := range []struct {
		maxPacking, einsteinCoef float64
	}{
		{0, 3.27},
		{-0.5, 3.27},
		{1.1, 3.27},
		{0.641, 0},
		{0.641, -1},
	} {
		if _, err := New(c.maxPacking, c.einsteinCoef); err == nil {
			t.Errorf("New(%g, %g) must fail", c.maxPacking, c.einsteinCoef)
		}
	}
	if _, err := New(1, 3.27); err != nil {
		t.Errorf("a packing fraction of exactly 1 is allowed: %v", err)
	}
}
