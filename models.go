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

// FluxModel is an interface for surface heat-loss mechanisms. Concrete
// variants live under science/flux. Each returns one signed term of the
// heat budget in watts per meter of flow length; positive values are
// losses from the flow.
type FluxModel interface {
	// Flux computes this mechanism's heat-loss rate per unit flow
	// length [W/m] at the given state and channel geometry. It returns
	// an error if the sub-models it consults produce non-physical
	// values (cover fraction outside [0,1], temperatures at or below
	// 0 K); such values must never be clamped silently.
	Flux(s *FlowState, channelWidth, channelDepth float64) (float64, error)
}

// ConvectiveFluxModel is a FluxModel that exposes the effective surface
// temperature it convects or radiates at, blended between crust and
// exposed melt.
type ConvectiveFluxModel interface {
	FluxModel

	// CharacteristicSurfaceTemperature returns the effective surface
	// temperature [K] seen by the atmosphere.
	CharacteristicSurfaceTemperature(s *FlowState) (float64, error)
}

// CrystallizationModel is an interface for models of crystallinity as a
// function of core temperature.
type CrystallizationModel interface {
	// Rate returns dφ/dT, the crystal fraction gained per kelvin of
	// cooling [1/K]. It is always ≥ 0.
	Rate(s *FlowState) (float64, error)

	// SolidTemperature returns the solidus temperature [K], below
	// which the flow is considered solid.
	SolidTemperature() float64

	// CrystalFraction returns the equilibrium crystal fraction at the
	// given temperature [K]. It is used to seed the initial state
	// consistently with the eruption temperature.
	CrystalFraction(temperature float64) float64
}

// RelativeViscosityModel is an interface for models of the dimensionless
// viscosity increase caused by the suspended crystal cargo. Concrete
// variants live under science/rheology.
type RelativeViscosityModel interface {
	// RelativeViscosity returns the multiplier (≥ 1) on the melt
	// viscosity at the state's crystal fraction. A non-finite result
	// signals the jamming transition at maximum packing and is a
	// normal terminal condition, not an error.
	RelativeViscosity(s *FlowState) float64
}

// MeltViscosityModel is an interface for models of the crystal-free melt
// viscosity as a function of temperature.
type MeltViscosityModel interface {
	// MeltViscosity returns the melt viscosity [Pa·s] at the given
	// temperature [K].
	MeltViscosity(temperature float64) float64
}

// CrustTemperatureModel estimates the temperature of the solidified
// surface crust from the current state.
type CrustTemperatureModel interface {
	CrustTemperature(s *FlowState) float64
}

// EffectiveCoverModel estimates the fraction of the flow surface covered
// by solidified crust, between 0 (all incandescent melt) and 1 (fully
// crusted over).
type EffectiveCoverModel interface {
	EffectiveCoverFraction(s *FlowState) float64
}

// TerrainCondition describes the channel geometry as a function of the
// down-flow distance from the vent.
type TerrainCondition interface {
	// ChannelWidth returns the channel width [m] at the given position.
	ChannelWidth(position float64) float64

	// ChannelDepth returns the channel depth [m] at the given position.
	ChannelDepth(position float64) float64

	// ChannelSlope returns the channel slope [rad] at the given position.
	ChannelSlope(position float64) float64

	// MaxChannelLength returns the distance [m] past which the terrain
	// description ends and the run must stop.
	MaxChannelLength() float64
}

// LavaMaterial describes the physical properties of the flowing lava.
type LavaMaterial interface {
	// MeanVelocity returns the mean down-channel velocity [m/s] of the
	// flow at the given state and terrain.
	MeanVelocity(s *FlowState, terrain TerrainCondition) float64

	// BulkDensity returns the vesicle-corrected density [kg/m³].
	BulkDensity(s *FlowState) float64

	// BulkViscosity returns the melt viscosity scaled by the crystal
	// cargo [Pa·s].
	BulkViscosity(s *FlowState) float64

	// LatentHeatOfCrystallization returns the latent heat released per
	// unit mass of crystallization [J/kg].
	LatentHeatOfCrystallization() float64

	// EruptionTemperature returns the temperature of the lava at the
	// vent [K].
	EruptionTemperature() float64

	// MoltenTemperature returns the temperature [K] of exposed molten
	// material at the flow surface.
	MoltenTemperature(s *FlowState) float64
}

// AirMaterial describes the atmosphere above the flow.
type AirMaterial interface {
	// Temperature returns the ambient air temperature [K].
	Temperature() float64

	// ConvectiveHeatTransferCoefficient returns h_c [W/(m²·K)].
	ConvectiveHeatTransferCoefficient() float64
}
