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

package material

import (
	"fmt"

	"github.com/ctessum/unit"
)

// AirConfig holds the configured properties of the atmosphere.
type AirConfig struct {
	// Temperature is the ambient air temperature [K].
	Temperature float64

	// Density is the air density [kg/m³].
	Density float64

	// SpecificHeat is the air specific heat capacity [J/(kg·K)].
	SpecificHeat float64

	// WindSpeed is the wind speed over the flow [m/s].
	WindSpeed float64

	// FrictionCoefficient is the dimensionless surface friction
	// coefficient C_H.
	FrictionCoefficient float64
}

// Air is the atmosphere above the flow. It satisfies
// lavaflow.AirMaterial. The convective heat-transfer coefficient
// h_c = C_H·ρ·c_p·U (Keszthelyi & Denlinger 1996) is composed and
// dimension-checked once at construction.
type Air struct {
	cfg AirConfig
	hc  float64 // [W/(m²·K)]
}

// joulePerKilogramKelvin is specific heat capacity [m² s⁻² K⁻¹].
var joulePerKilogramKelvin = unit.Dimensions{
	unit.LengthDim:      2,
	unit.TimeDim:        -2,
	unit.TemperatureDim: -1,
}

// wattPerMeter2Kelvin is a heat-transfer coefficient [kg s⁻³ K⁻¹].
var wattPerMeter2Kelvin = unit.Dimensions{
	unit.MassDim:        1,
	unit.TimeDim:        -3,
	unit.TemperatureDim: -1,
}

// NewAir creates an Air from its configuration.
func NewAir(cfg AirConfig) (*Air, error) {
	if !(cfg.Temperature > 0) {
		return nil, fmt.Errorf("material: air temperature must be positive but is %g K", cfg.Temperature)
	}
	if !(cfg.Density > 0) {
		return nil, fmt.Errorf("material: air density must be positive but is %g kg/m³", cfg.Density)
	}
	if !(cfg.SpecificHeat > 0) {
		return nil, fmt.Errorf("material: air specific heat must be positive but is %g J/(kg·K)", cfg.SpecificHeat)
	}
	if cfg.WindSpeed < 0 {
		return nil, fmt.Errorf("material: wind speed must be non-negative but is %g m/s", cfg.WindSpeed)
	}
	if !(cfg.FrictionCoefficient > 0) {
		return nil, fmt.Errorf("material: friction coefficient must be positive but is %g", cfg.FrictionCoefficient)
	}

	hc := unit.Mul(
		unit.New(cfg.FrictionCoefficient, unit.Dimless),
		unit.New(cfg.Density, unit.KilogramPerMeter3),
		unit.New(cfg.SpecificHeat, joulePerKilogramKelvin),
		unit.New(cfg.WindSpeed, unit.MeterPerSecond),
	)
	if err := hc.Check(wattPerMeter2Kelvin); err != nil {
		return nil, fmt.Errorf("material: convective heat-transfer coefficient has wrong dimensions: %v", err)
	}
	return &Air{cfg: cfg, hc: hc.Value()}, nil
}

// Temperature returns the ambient air temperature [K].
func (a *Air) Temperature() float64 { return a.cfg.Temperature }

// ConvectiveHeatTransferCoefficient returns h_c [W/(m²·K)].
func (a *Air) ConvectiveHeatTransferCoefficient() float64 { return a.hc }
