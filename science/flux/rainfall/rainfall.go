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

// Package rainfall implements heat loss to rain falling on the flow
// surface: each unit of water is heated from ambient to boiling and then
// vaporized.
package rainfall

import (
	"fmt"

	"github.com/spatialmodel/lavaflow"
)

const (
	waterDensity       = 1000.   // [kg/m³]
	waterSpecificHeat  = 4187.   // [J/(kg·K)]
	waterBoilingPoint  = 373.15  // [K]
	waterLatentHeatVap = 2.264e6 // [J/kg]
)

// Flux is the rainfall heat-loss mechanism. It satisfies
// lavaflow.FluxModel.
type Flux struct {
	rate float64 // rainfall rate [m/s]
	air  lavaflow.AirMaterial
}

// New creates a rainfall flux with the given rainfall rate [m/s]
// (≥ 0; zero disables the mechanism without removing it from a budget).
func New(rate float64, air lavaflow.AirMaterial) (*Flux, error) {
	if rate < 0 {
		return nil, fmt.Errorf("rainfall: rainfall rate must be non-negative but is %g m/s", rate)
	}
	if air == nil {
		return nil, fmt.Errorf("rainfall: air material must be non-nil")
	}
	return &Flux{rate: rate, air: air}, nil
}

// Flux returns the rainfall heat loss per unit flow length [W/m],
// ρw·rate·(cw·(Tboil−Tair)+Lvap)·width.
func (f *Flux) Flux(s *lavaflow.FlowState, channelWidth, channelDepth float64) (float64, error) {
	heatPerKg := waterSpecificHeat*(waterBoilingPoint-f.air.Temperature()) + waterLatentHeatVap
	return waterDensity * f.rate * heatPerKg * channelWidth, nil
}
