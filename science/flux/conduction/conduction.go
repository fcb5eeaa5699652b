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

// Package conduction implements heat loss by conduction through the
// basal crust into the channel bed.
package conduction

import (
	"fmt"

	"github.com/spatialmodel/lavaflow"
)

// Flux is the basal-conduction heat-loss mechanism. It satisfies
// lavaflow.FluxModel.
type Flux struct {
	conductivity  float64 // [W/(m·K)]
	baseTemp      float64 // [K]
	basalFraction float64 // basal crust thickness as a fraction of channel depth
}

// New creates a conduction flux. conductivity [W/(m·K)] must be
// positive, baseTemp [K] positive, and basalFraction in (0,1): the
// conduction path length is basalFraction × channel depth.
func New(conductivity, baseTemp, basalFraction float64) (*Flux, error) {
	if !(conductivity > 0) {
		return nil, fmt.Errorf("conduction: thermal conductivity must be positive but is %g W/(m·K)", conductivity)
	}
	if !(baseTemp > 0) {
		return nil, fmt.Errorf("conduction: base temperature must be positive but is %g K", baseTemp)
	}
	if !(basalFraction > 0) || basalFraction >= 1 {
		return nil, fmt.Errorf("conduction: basal crust fraction must be in (0,1) but is %g", basalFraction)
	}
	return &Flux{conductivity: conductivity, baseTemp: baseTemp, basalFraction: basalFraction}, nil
}

// Flux returns the conductive heat loss per unit flow length [W/m],
// k·(Tcore−Tbase)/(basalFraction·depth)·width.
func (f *Flux) Flux(s *lavaflow.FlowState, channelWidth, channelDepth float64) (float64, error) {
	if !(channelDepth > 0) {
		return 0, fmt.Errorf("conduction: channel depth must be positive but is %g m at position %g m",
			channelDepth, s.Position)
	}
	return f.conductivity * (s.CoreTemperature - f.baseTemp) /
		(f.basalFraction * channelDepth) * channelWidth, nil
}
