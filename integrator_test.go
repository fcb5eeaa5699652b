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
	"math"
	"strings"
	"testing"
)

// testTerrain is a uniform channel for integrator tests.
type testTerrain struct {
	width, depth, slope, maxLength float64
}

func (t *testTerrain) ChannelWidth(position float64) float64 { return t.width }
func (t *testTerrain) ChannelDepth(position float64) float64 { return t.depth }
func (t *testTerrain) ChannelSlope(position float64) float64 { return t.slope }
func (t *testTerrain) MaxChannelLength() float64             { return t.maxLength }

// testLava returns a scripted sequence of mean velocities; the last
// value repeats once the script runs out.
type testLava struct {
	velocities []float64
	step       int
	density    float64
	latentHeat float64
	eruptTemp  float64
	viscosity  float64
}

func (l *testLava) MeanVelocity(s *FlowState, terrain TerrainCondition) float64 {
	i := l.step
	if i >= len(l.velocities) {
		i = len(l.velocities) - 1
	}
	l.step++
	return l.velocities[i]
}
func (l *testLava) BulkDensity(s *FlowState) float64       { return l.density }
func (l *testLava) BulkViscosity(s *FlowState) float64     { return l.viscosity }
func (l *testLava) LatentHeatOfCrystallization() float64   { return l.latentHeat }
func (l *testLava) EruptionTemperature() float64           { return l.eruptTemp }
func (l *testLava) MoltenTemperature(s *FlowState) float64 { return s.CoreTemperature }

// testCryst is a constant-rate crystallization model.
type testCryst struct {
	rate    float64
	solidus float64
	phiInit float64
}

func (c *testCryst) Rate(s *FlowState) (float64, error)          { return c.rate, nil }
func (c *testCryst) SolidTemperature() float64                   { return c.solidus }
func (c *testCryst) CrystalFraction(temperature float64) float64 { return c.phiInit }

// constantFlux loses heat at a fixed rate per unit width.
type constantFlux struct {
	perWidth float64 // [W/m²] applied over the channel width
}

func (f *constantFlux) Flux(s *FlowState, channelWidth, channelDepth float64) (float64, error) {
	return f.perWidth * channelWidth, nil
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance {
		return true
	}
	return false
}

func newTestIntegrator(t *testing.T, lava *testLava, terrain *testTerrain,
	cryst *testCryst, flux FluxModel, dx float64) (*Integrator, *FlowState) {
	t.Helper()
	budget, err := NewHeatBudget(flux)
	if err != nil {
		t.Fatal(err)
	}
	in, err := NewIntegrator(dx, lava, terrain, budget, cryst, NewDiagnostics())
	if err != nil {
		t.Fatal(err)
	}
	s := new(FlowState)
	if err := in.InitializeState(s); err != nil {
		t.Fatal(err)
	}
	return in, s
}

func TestEffusionRateClosure(t *testing.T) {
	const tolerance = 1.e-8

	lava := &testLava{
		velocities: []float64{2, 1.5},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e4}, 1)

	if err := in.SingleStep(s); err != nil {
		t.Fatal(err)
	}
	if different(in.EffusionRate(), 30, tolerance) {
		t.Errorf("effusion rate after step 1 = %g m³/s; want 30", in.EffusionRate())
	}
	widths := in.log.Values("channel_width")
	if different(widths[0], 5, tolerance) {
		t.Errorf("channel width at step 1 = %g m; want 5", widths[0])
	}

	if err := in.SingleStep(s); err != nil {
		t.Fatal(err)
	}
	widths = in.log.Values("channel_width")
	if different(widths[1], 30./(1.5*3.), tolerance) {
		t.Errorf("channel width at step 2 = %g m; want %g", widths[1], 30./(1.5*3.))
	}
	if different(in.EffusionRate(), 30, tolerance) {
		t.Errorf("effusion rate was recomputed: %g m³/s; want 30", in.EffusionRate())
	}
}

func TestMassConservation(t *testing.T) {
	const tolerance = 1.e-12

	lava := &testLava{
		velocities: []float64{2, 1.8, 1.6, 1.4, 1.2, 1.0},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e4}, 1)

	for i := 0; i < 6; i++ {
		if err := in.SingleStep(s); err != nil {
			t.Fatal(err)
		}
	}
	widths := in.log.Values("channel_width")
	depths := in.log.Values("channel_depth")
	velocities := in.log.Values("mean_velocity")
	for i := range widths {
		q := widths[i] * depths[i] * velocities[i]
		if different(q, in.EffusionRate(), tolerance) {
			t.Errorf("step %d: width×depth×velocity = %g m³/s; want effusion rate %g",
				i, q, in.EffusionRate())
		}
	}
}

func TestMonotonicity(t *testing.T) {
	lava := &testLava{
		velocities: []float64{2},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e4}, 1)

	prev := s.Clone()
	for !in.HasFinished() {
		if err := in.SingleStep(s); err != nil {
			t.Fatal(err)
		}
		if s.CoreTemperature > prev.CoreTemperature {
			t.Fatalf("core temperature rose from %g K to %g K at position %g m",
				prev.CoreTemperature, s.CoreTemperature, prev.Position)
		}
		if s.CrystalFraction < prev.CrystalFraction {
			t.Fatalf("crystal fraction fell from %g to %g at position %g m",
				prev.CrystalFraction, s.CrystalFraction, prev.Position)
		}
		if s.Position < prev.Position {
			t.Fatalf("position moved backwards from %g m to %g m", prev.Position, s.Position)
		}
		if s.Time < prev.Time {
			t.Fatalf("time moved backwards from %g s to %g s", prev.Time, s.Time)
		}
		prev = s.Clone()
	}
	if in.Termination() == TerminationNone {
		t.Error("run ended without a termination reason")
	}
}

// A strictly cooling run must finish in a finite number of steps.
func TestTerminationCompleteness(t *testing.T) {
	lava := &testLava{
		velocities: []float64{2},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e12}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e4}, 1)

	const stepLimit = 10000000
	for i := 0; !in.HasFinished(); i++ {
		if i >= stepLimit {
			t.Fatalf("run did not terminate within %d steps", stepLimit)
		}
		if err := in.SingleStep(s); err != nil {
			t.Fatal(err)
		}
	}
}

func TestZeroCrystallizationRateIsFatal(t *testing.T) {
	lava := &testLava{
		velocities: []float64{2},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0, solidus: 1223, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e4}, 1)

	before := s.Clone()
	err := in.SingleStep(s)
	if err == nil {
		t.Fatal("a zero crystallization rate must be a fatal error, not an infinite step")
	}
	if !strings.Contains(err.Error(), "degenerate") {
		t.Errorf("unexpected error: %v", err)
	}
	if *s != *before {
		t.Errorf("state was modified by a failed step: %+v; want %+v", s, before)
	}
	if in.HasFinished() {
		t.Error("a failed step must not mark the run as finished")
	}
	if n := len(in.log.Names()); n != 0 {
		t.Errorf("a failed step logged %d variables; want 0", n)
	}
}

func TestStalledFlowShortCircuits(t *testing.T) {
	lava := &testLava{
		velocities: []float64{0},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e4}, 1)

	before := s.Clone()
	if err := in.SingleStep(s); err != nil {
		t.Fatal(err)
	}
	if !in.HasFinished() || in.Termination() != TerminationStalled {
		t.Errorf("termination = %v; want %v", in.Termination(), TerminationStalled)
	}
	if *s != *before {
		t.Errorf("a stalled step modified the state: %+v; want %+v", s, before)
	}
	if n := len(in.log.Names()); n != 0 {
		t.Errorf("a stalled step logged %d variables; want 0", n)
	}
	if err := in.SingleStep(s); err == nil {
		t.Error("stepping a finished run must fail")
	}
}

func TestSolidusTermination(t *testing.T) {
	lava := &testLava{
		velocities: []float64{2},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0.005, solidus: 1399.9, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e6}, 1)

	if err := in.Run(s, 0); err != nil {
		t.Fatal(err)
	}
	if in.Termination() != TerminationSolidus {
		t.Errorf("termination = %v; want %v", in.Termination(), TerminationSolidus)
	}
	if s.CoreTemperature > cryst.solidus {
		t.Errorf("final core temperature %g K is above the solidus %g K", s.CoreTemperature, cryst.solidus)
	}
}

func TestMaxPackingTermination(t *testing.T) {
	lava := &testLava{
		velocities: []float64{2},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	// A large dφ/dT so the packing bound is hit well before the solidus.
	cryst := &testCryst{rate: 0.5, solidus: 300, phiInit: 0.5}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e5}, 1)

	if err := in.Run(s, 0); err != nil {
		t.Fatal(err)
	}
	if in.Termination() != TerminationMaxPacking {
		t.Errorf("termination = %v; want %v", in.Termination(), TerminationMaxPacking)
	}
	if s.CrystalFraction < in.MaxPackingFraction {
		t.Errorf("final crystal fraction %g is below the packing bound %g",
			s.CrystalFraction, in.MaxPackingFraction)
	}
}

// A position update past the end of the channel terminates the run after
// the commit; the overshoot is retained, not clamped to the boundary.
func TestChannelEndOvershootRetained(t *testing.T) {
	lava := &testLava{
		velocities: []float64{2},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 2.5}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e4}, 1)

	if err := in.Run(s, 0); err != nil {
		t.Fatal(err)
	}
	if in.Termination() != TerminationChannelEnd {
		t.Errorf("termination = %v; want %v", in.Termination(), TerminationChannelEnd)
	}
	if s.Position != 3 {
		t.Errorf("final position = %g m; want the overshoot value 3 retained", s.Position)
	}
	if in.Iteration() != 3 {
		t.Errorf("iterations = %d; want 3", in.Iteration())
	}
}

func TestRunStepCap(t *testing.T) {
	lava := &testLava{
		velocities: []float64{2},
		density:    2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000,
	}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.1}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 10}, 1)

	if err := in.Run(s, 7); err != nil {
		t.Fatal(err)
	}
	if in.HasFinished() {
		t.Error("the step cap must pause the run, not terminate it")
	}
	if in.Iteration() != 7 {
		t.Errorf("iterations = %d; want 7", in.Iteration())
	}
}

func TestNewIntegratorValidation(t *testing.T) {
	lava := &testLava{velocities: []float64{2}, density: 2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.1}
	budget, err := NewHeatBudget(&constantFlux{perWidth: 1e4})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewIntegrator(0, lava, terrain, budget, cryst, NewDiagnostics()); err == nil {
		t.Error("a zero step size must be rejected")
	}
	if _, err := NewIntegrator(-1, lava, terrain, budget, cryst, NewDiagnostics()); err == nil {
		t.Error("a negative step size must be rejected")
	}
	if _, err := NewIntegrator(1, nil, terrain, budget, cryst, NewDiagnostics()); err == nil {
		t.Error("a nil lava material must be rejected")
	}
	if _, err := NewIntegrator(1, lava, terrain, budget, cryst, nil); err == nil {
		t.Error("a nil diagnostics sink must be rejected")
	}
}

func TestInitializeState(t *testing.T) {
	lava := &testLava{velocities: []float64{2}, density: 2500, latentHeat: 3.5e5, eruptTemp: 1400, viscosity: 1000}
	terrain := &testTerrain{width: 5, depth: 3, slope: 0.1, maxLength: 1e6}
	cryst := &testCryst{rate: 0.005, solidus: 1223, phiInit: 0.15}
	in, s := newTestIntegrator(t, lava, terrain, cryst, &constantFlux{perWidth: 1e4}, 1)

	if s.CoreTemperature != 1400 {
		t.Errorf("initial core temperature = %g K; want 1400", s.CoreTemperature)
	}
	if s.CrystalFraction != 0.15 {
		t.Errorf("initial crystal fraction = %g; want 0.15", s.CrystalFraction)
	}

	cryst.phiInit = 1.5
	if err := in.InitializeState(new(FlowState)); err == nil {
		t.Error("an equilibrium crystal fraction outside [0,1) must be rejected")
	}
}
