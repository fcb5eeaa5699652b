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

// Package material holds the physical property models of the lava and
// the atmosphere above it.
package material

import (
	"fmt"
	"math"

	"github.com/spatialmodel/lavaflow"
)

const gravity = 9.81 // [m/s²]

// LavaConfig holds the configured physical constants of a lava.
type LavaConfig struct {
	// EruptionTemperature is the core temperature at the vent [K].
	EruptionTemperature float64

	// DenseRockDensity is the vesicle-free density [kg/m³].
	DenseRockDensity float64

	// VesicleFraction is the volume fraction of gas bubbles, in [0,1).
	VesicleFraction float64

	// LatentHeat is the latent heat of crystallization [J/kg].
	LatentHeat float64
}

// Lava is the flowing material: its configured constants plus the melt
// and crystal-cargo viscosity laws. It satisfies lavaflow.LavaMaterial.
type Lava struct {
	cfg      LavaConfig
	melt     lavaflow.MeltViscosityModel
	relative lavaflow.RelativeViscosityModel
}

// NewLava creates a Lava from its configuration and viscosity models.
func NewLava(cfg LavaConfig, melt lavaflow.MeltViscosityModel,
	relative lavaflow.RelativeViscosityModel) (*Lava, error) {
	if !(cfg.EruptionTemperature > 0) {
		return nil, fmt.Errorf("material: eruption temperature must be positive but is %g K", cfg.EruptionTemperature)
	}
	if !(cfg.DenseRockDensity > 0) {
		return nil, fmt.Errorf("material: dense-rock density must be positive but is %g kg/m³", cfg.DenseRockDensity)
	}
	if cfg.VesicleFraction < 0 || cfg.VesicleFraction >= 1 {
		return nil, fmt.Errorf("material: vesicle fraction must be in [0,1) but is %g", cfg.VesicleFraction)
	}
	if !(cfg.LatentHeat > 0) {
		return nil, fmt.Errorf("material: latent heat of crystallization must be positive but is %g J/kg", cfg.LatentHeat)
	}
	if melt == nil || relative == nil {
		return nil, fmt.Errorf("material: melt and relative viscosity models must be non-nil")
	}
	return &Lava{cfg: cfg, melt: melt, relative: relative}, nil
}

// BulkDensity returns the vesicle-corrected density [kg/m³].
func (l *Lava) BulkDensity(s *lavaflow.FlowState) float64 {
	return l.cfg.DenseRockDensity * (1. - l.cfg.VesicleFraction)
}

// BulkViscosity returns the melt viscosity at the core temperature
// scaled by the crystal cargo [Pa·s]. At maximum packing the relative
// term diverges and the result is +Inf.
func (l *Lava) BulkViscosity(s *lavaflow.FlowState) float64 {
	return l.melt.MeltViscosity(s.CoreTemperature) * l.relative.RelativeViscosity(s)
}

// MeanVelocity returns the mean channel velocity [m/s] from the Jeffreys
// equation for laminar channel flow,
//
//	v = ρ g h² sinθ / (3 η).
//
// A jammed (non-finite) bulk viscosity gives v = 0: the integrator reads
// that as a stalled flow.
func (l *Lava) MeanVelocity(s *lavaflow.FlowState, terrain lavaflow.TerrainCondition) float64 {
	eta := l.BulkViscosity(s)
	if math.IsInf(eta, 1) {
		return 0
	}
	h := terrain.ChannelDepth(s.Position)
	theta := terrain.ChannelSlope(s.Position)
	return l.BulkDensity(s) * gravity * h * h * math.Sin(theta) / (3. * eta)
}

// LatentHeatOfCrystallization returns the latent heat [J/kg].
func (l *Lava) LatentHeatOfCrystallization() float64 { return l.cfg.LatentHeat }

// EruptionTemperature returns the vent temperature [K].
func (l *Lava) EruptionTemperature() float64 { return l.cfg.EruptionTemperature }

// MoltenTemperature returns the temperature [K] of exposed melt at the
// surface, taken equal to the core temperature.
func (l *Lava) MoltenTemperature(s *lavaflow.FlowState) float64 {
	return s.CoreTemperature
}
