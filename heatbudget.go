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

// HeatBudget sums the active flux mechanisms into one net heat-loss rate
// per unit flow length [W/m]. The integrator depends only on the summed
// budget; it never sees individual mechanisms.
type HeatBudget struct {
	fluxes []FluxModel
}

// NewHeatBudget creates a budget over the given flux mechanisms. At
// least one mechanism is required.
func NewHeatBudget(fluxes ...FluxModel) (*HeatBudget, error) {
	if len(fluxes) == 0 {
		return nil, fmt.Errorf("lavaflow: a heat budget requires at least one flux model")
	}
	for i, f := range fluxes {
		if f == nil {
			return nil, fmt.Errorf("lavaflow: heat budget flux model %d is nil", i)
		}
	}
	return &HeatBudget{fluxes: fluxes}, nil
}

// Compute returns the net heat-loss rate per unit flow length [W/m] at
// the given state and channel geometry. A non-finite term from any
// mechanism is a fatal numerical error: it cannot be attributed to a
// recognized physical termination, so it must not flow into the ODE.
func (b *HeatBudget) Compute(s *FlowState, channelWidth, channelDepth float64) (float64, error) {
	var total float64
	for _, f := range b.fluxes {
		q, err := f.Flux(s, channelWidth, channelDepth)
		if err != nil {
			return 0, err
		}
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return 0, fmt.Errorf("lavaflow: %T produced a non-finite flux (%g W/m) at position %g m",
				f, q, s.Position)
		}
		total += q
	}
	return total, nil
}
