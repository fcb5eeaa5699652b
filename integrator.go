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
	"fmt"
	"math"
)

// DefaultMaxPackingFraction is the crystal fraction at which a run stops
// because the flow has reached maximum packing. It is a termination
// bound of the integrator, set independently of any viscosity model's
// own packing fraction.
const DefaultMaxPackingFraction = 0.52

// Termination identifies why a run stopped. All four reasons are normal
// physical outcomes, not errors.
type Termination int

const (
	// TerminationNone means the run is still going.
	TerminationNone Termination = iota
	// TerminationStalled means the mean velocity dropped to zero or below.
	TerminationStalled
	// TerminationSolidus means the core cooled to the solidus temperature.
	TerminationSolidus
	// TerminationMaxPacking means the crystal fraction reached the
	// maximum packing bound.
	TerminationMaxPacking
	// TerminationChannelEnd means the flow front passed the end of the
	// terrain description.
	TerminationChannelEnd
)

func (t Termination) String() string {
	switch t {
	case TerminationNone:
		return "running"
	case TerminationStalled:
		return "flow stalled"
	case TerminationSolidus:
		return "solidus reached"
	case TerminationMaxPacking:
		return "maximum packing reached"
	case TerminationChannelEnd:
		return "end of channel reached"
	default:
		return fmt.Sprintf("unknown termination (%d)", int(t))
	}
}

// Integrator advances a FlowState down the channel by fixed spatial
// steps, solving the coupled cooling–crystallization balance
//
//	dT/dx = −q / (Q ρ L dφ/dT),   dφ/dx = −dT/dx · dφ/dT
//
// with a first-order explicit update, where q is the net heat loss per
// unit flow length, Q the effusion rate, ρ the bulk density, L the
// latent heat of crystallization, and dφ/dT the crystallization rate.
type Integrator struct {
	// Dx is the spatial step [m].
	Dx float64

	// MaxPackingFraction is the crystal fraction at which the run
	// terminates. NewIntegrator sets it to DefaultMaxPackingFraction.
	MaxPackingFraction float64

	lava            LavaMaterial
	terrain         TerrainCondition
	budget          *HeatBudget
	crystallization CrystallizationModel
	log             *Diagnostics

	iteration    int
	effusionRate float64 // fixed at the first step [m³/s]
	finished     bool
	termination  Termination
}

// NewIntegrator creates an integrator with step size dx over the given
// sub-models. log receives every intermediate quantity of every step and
// must be the same sink the flux models write to.
func NewIntegrator(dx float64, lava LavaMaterial, terrain TerrainCondition,
	budget *HeatBudget, crystallization CrystallizationModel, log *Diagnostics) (*Integrator, error) {
	if !(dx > 0) {
		return nil, fmt.Errorf("lavaflow: step size must be positive but is %g m", dx)
	}
	if lava == nil || terrain == nil || budget == nil || crystallization == nil || log == nil {
		return nil, fmt.Errorf("lavaflow: an integrator requires lava, terrain, budget, " +
			"crystallization and diagnostics to all be non-nil")
	}
	return &Integrator{
		Dx:                 dx,
		MaxPackingFraction: DefaultMaxPackingFraction,
		lava:               lava,
		terrain:            terrain,
		budget:             budget,
		crystallization:    crystallization,
		log:                log,
	}, nil
}

// InitializeState seeds the state with the lava eruption temperature and
// the equilibrium crystal fraction at that temperature. Position and
// time are left as loaded from the initial-condition source.
func (in *Integrator) InitializeState(s *FlowState) error {
	t := in.lava.EruptionTemperature()
	if !(t > 0) {
		return fmt.Errorf("lavaflow: eruption temperature must be positive but is %g K", t)
	}
	phi := in.crystallization.CrystalFraction(t)
	if phi < 0 || phi >= 1 {
		return fmt.Errorf("lavaflow: equilibrium crystal fraction at eruption temperature "+
			"%g K is %g, outside [0,1)", t, phi)
	}
	s.CoreTemperature = t
	s.CrystalFraction = phi
	return nil
}

// HasFinished reports whether a termination predicate has been met.
func (in *Integrator) HasFinished() bool { return in.finished }

// Termination returns why the run stopped, or TerminationNone while it
// is still running.
func (in *Integrator) Termination() Termination { return in.termination }

// EffusionRate returns the volumetric flow rate [m³/s] fixed at the
// first step, or 0 before any step has run.
func (in *Integrator) EffusionRate() float64 { return in.effusionRate }

// Iteration returns the number of committed steps.
func (in *Integrator) Iteration() int { return in.iteration }

// SingleStep advances the state by one spatial increment Dx. The state
// is committed only when the whole step succeeds: on error the state,
// the iteration counter, and previously logged steps are untouched.
func (in *Integrator) SingleStep(s *FlowState) error {
	if in.finished {
		return fmt.Errorf("lavaflow: single step requested after the run terminated (%v)", in.termination)
	}

	vMean := in.lava.MeanVelocity(s, in.terrain)
	if math.IsNaN(vMean) || math.IsInf(vMean, 0) {
		return fmt.Errorf("lavaflow: non-finite mean velocity %g m/s at position %g m", vMean, s.Position)
	}
	if vMean <= 0 {
		// The flow has stalled (a jammed rheology surfaces here as a
		// zero velocity). Nothing else is computed or logged for this
		// step.
		in.finish(TerminationStalled)
		return nil
	}

	channelDepth := in.terrain.ChannelDepth(s.Position)

	// The effusion rate is fixed once, from the initial velocity and
	// channel cross-section.
	if in.iteration == 0 {
		channelWidth := in.terrain.ChannelWidth(s.Position)
		in.effusionRate = vMean * channelWidth * channelDepth
	}

	// Mass conservation: the effusion rate and channel depth are held,
	// so the width adjusts to the current velocity.
	channelWidth := in.effusionRate / (vMean * channelDepth)

	channelSlope := in.terrain.ChannelSlope(s.Position)

	q, err := in.budget.Compute(s, channelWidth, channelDepth)
	if err != nil {
		return err
	}
	rhs := -q

	dphiDtemp, err := in.crystallization.Rate(s)
	if err != nil {
		return err
	}

	bulkDensity := in.lava.BulkDensity(s)
	latentHeat := in.lava.LatentHeatOfCrystallization()

	denom := in.effusionRate * bulkDensity * latentHeat * dphiDtemp
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return fmt.Errorf("lavaflow: degenerate heat balance at position %g m: "+
			"effusion rate %g m³/s × bulk density %g kg/m³ × latent heat %g J/kg × "+
			"crystallization rate %g 1/K is not usable as a denominator",
			s.Position, in.effusionRate, bulkDensity, latentHeat, dphiDtemp)
	}
	dtempDx := rhs / denom
	if math.IsNaN(dtempDx) || math.IsInf(dtempDx, 0) {
		return fmt.Errorf("lavaflow: non-finite cooling rate %g K/m at position %g m", dtempDx, s.Position)
	}
	dphiDx := dtempDx * -dphiDtemp

	newPhi := s.CrystalFraction + dphiDx*in.Dx
	newTemp := s.CoreTemperature + dtempDx*in.Dx

	// Everything is keyed by the pre-update position so that one
	// position indexes one consistent set of step quantities.
	in.log.Record("channel_width", s.Position, channelWidth)
	in.log.Record("crystal_fraction", s.Position, s.CrystalFraction)
	in.log.Record("core_temperature", s.Position, s.CoreTemperature)
	in.log.Record("viscosity", s.Position, in.lava.BulkViscosity(s))
	in.log.Record("mean_velocity", s.Position, vMean)
	in.log.Record("dphi_dx", s.Position, dphiDx)
	in.log.Record("dtemp_dx", s.Position, dtempDx)
	in.log.Record("dphi_dtemp", s.Position, dphiDtemp)
	in.log.Record("current_time", s.Position, s.Time)
	in.log.Record("slope", s.Position, channelSlope)
	in.log.Record("effusion_rate", s.Position, in.effusionRate)
	in.log.Record("channel_depth", s.Position, channelDepth)

	s.CrystalFraction = newPhi
	s.CoreTemperature = newTemp
	s.Position += in.Dx
	s.Time += in.Dx / vMean
	in.iteration++

	switch {
	case newTemp <= in.crystallization.SolidTemperature():
		in.finish(TerminationSolidus)
	case newPhi >= in.MaxPackingFraction:
		in.finish(TerminationMaxPacking)
	case s.Position >= in.terrain.MaxChannelLength():
		in.finish(TerminationChannelEnd)
	}
	return nil
}

// Run steps the state until a termination predicate holds. If maxSteps
// is positive, the run also stops after that many committed steps. The
// state and the diagnostics log keep their last committed values even
// when an error aborts the run.
func (in *Integrator) Run(s *FlowState, maxSteps int) error {
	for !in.finished {
		if maxSteps > 0 && in.iteration >= maxSteps {
			return nil
		}
		if err := in.SingleStep(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Integrator) finish(t Termination) {
	in.finished = true
	in.termination = t
}
