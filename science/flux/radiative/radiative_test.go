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

package radiative

import (
	"math"
	"testing"

	"github.com/spatialmodel/lavaflow"
)

const tolerance = 1.e-10

func different(a, b float64) bool {
	return 2*math.Abs(a-b)/math.Abs(a+b) > tolerance
}

type testAir struct{ temperature float64 }

func (a *testAir) Temperature() float64                       { return a.temperature }
func (a *testAir) ConvectiveHeatTransferCoefficient() float64 { return 70 }

type testLava struct{ moltenTemp float64 }

func (l *testLava) MeanVelocity(s *lavaflow.FlowState, terrain lavaflow.TerrainCondition) float64 {
	return 1
}
func (l *testLava) BulkDensity(s *lavaflow.FlowState) float64       { return 2500 }
func (l *testLava) BulkViscosity(s *lavaflow.FlowState) float64     { return 1000 }
func (l *testLava) LatentHeatOfCrystallization() float64            { return 3.5e5 }
func (l *testLava) EruptionTemperature() float64                    { return l.moltenTemp }
func (l *testLava) MoltenTemperature(s *lavaflow.FlowState) float64 { return l.moltenTemp }

type testCrust struct{ temperature float64 }

func (c *testCrust) CrustTemperature(s *lavaflow.FlowState) float64 { return c.temperature }

type testCover struct{ fraction float64 }

func (c *testCover) EffectiveCoverFraction(s *lavaflow.FlowState) float64 { return c.fraction }

func TestFlux(t *testing.T) {
	log := lavaflow.NewDiagnostics()
	f, err := New(0.95, &testAir{temperature: 293.15},
		&testLava{moltenTemp: 1373}, &testCrust{temperature: 773}, &testCover{fraction: 0.9}, log)
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.Flux(&lavaflow.FlowState{Position: 10}, 5, 3)
	if err != nil {
		t.Fatal(err)
	}
	te4 := 0.9*math.Pow(773, 4) + 0.1*math.Pow(1373, 4)
	want := 5.670374419e-8 * 0.95 * (te4 - math.Pow(293.15, 4)) * 5
	if different(got, want) {
		t.Errorf("radiative flux = %g W/m; want %g", got, want)
	}
	if got <= 0 {
		t.Errorf("radiative flux over cold air = %g W/m; want a positive heat loss", got)
	}

	series := log.Series("effective_radiation_temperature")
	if len(series) != 1 || series[0].Position != 10 {
		t.Fatalf("effective_radiation_temperature samples = %v; want one sample at position 10", series)
	}
	if gotTe := series[0].Value; different(gotTe, math.Pow(te4, 0.25)) {
		t.Errorf("effective radiation temperature = %g K; want %g", gotTe, math.Pow(te4, 0.25))
	}
}

func TestNonPhysicalInputs(t *testing.T) {
	log := lavaflow.NewDiagnostics()
	air := &testAir{temperature: 293.15}

	for _, frac := range []float64{-0.1, 1.5} {
		f, err := New(0.95, air, &testLava{moltenTemp: 1373}, &testCrust{temperature: 773},
			&testCover{fraction: frac}, log)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Flux(new(lavaflow.FlowState), 5, 3); err == nil {
			t.Errorf("cover fraction %g must be a fatal error", frac)
		}
	}

	f, err := New(0.95, air, &testLava{moltenTemp: -1}, &testCrust{temperature: 773},
		&testCover{fraction: 0.9}, log)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Flux(new(lavaflow.FlowState), 5, 3); err == nil {
		t.Error("a non-positive molten temperature must be a fatal error")
	}
}

func TestNewValidation(t *testing.T) {
	log := lavaflow.NewDiagnostics()
	air := &testAir{temperature: 293.15}
	lavaMat := &testLava{moltenTemp: 1373}
	crustMod := &testCrust{temperature: 773}
	coverMod := &testCover{fraction: 0.9}

	for _, emissivity := range []float64{0, -0.5, 1.1} {
		if _, err := New(emissivity, air, lavaMat, crustMod, coverMod, log); err == nil {
			t.Errorf("emissivity %g must be rejected", emissivity)
		}
	}
	if _, err := New(1, air, lavaMat, crustMod, coverMod, log); err != nil {
		t.Errorf("an emissivity of exactly 1 is allowed: %v", err)
	}
	if _, err := New(0.95, air, nil, crustMod, coverMod, log); err == nil {
		t.Error("a nil lava material must be rejected")
	}
}
