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

// Package radiative implements thermal radiation from the flow surface.
package radiative

import (
	"fmt"
	"math"

	"github.com/spatialmodel/lavaflow"
)

// stefanBoltzmann is the Stefan–Boltzmann constant [W/(m²·K⁴)].
const stefanBoltzmann = 5.670374419e-8

// Flux is the radiative heat-loss mechanism. It satisfies
// lavaflow.FluxModel.
type Flux struct {
	emissivity float64
	air        lavaflow.AirMaterial
	lava       lavaflow.LavaMaterial
	crust      lavaflow.CrustTemperatureModel
	cover      lavaflow.EffectiveCoverModel
	log        *lavaflow.Diagnostics
}

// New creates a radiative flux with the given surface emissivity
// (0 < ε ≤ 1).
func New(emissivity float64, air lavaflow.AirMaterial, lava lavaflow.LavaMaterial,
	crust lavaflow.CrustTemperatureModel, cover lavaflow.EffectiveCoverModel,
	log *lavaflow.Diagnostics) (*Flux, error) {
	if !(emissivity > 0) || emissivity > 1 {
		return nil, fmt.Errorf("radiative: emissivity must be in (0,1] but is %g", emissivity)
	}
	if air == nil || lava == nil || crust == nil || cover == nil || log == nil {
		return nil, fmt.Errorf("radiative: air, lava, crust, cover and diagnostics must all be non-nil")
	}
	return &Flux{emissivity: emissivity, air: air, lava: lava, crust: crust, cover: cover, log: log}, nil
}

// Flux returns the radiative heat loss per unit flow length [W/m],
//
//	q = σ·ε·(Te⁴ − Tair⁴)·width,  Te⁴ = f·Tcrust⁴ + (1−f)·Tmolten⁴,
//
// blending crust and exposed melt by their fourth-power radiances.
func (f *Flux) Flux(s *lavaflow.FlowState, channelWidth, channelDepth float64) (float64, error) {
	crustTemp := f.crust.CrustTemperature(s)
	coverFrac := f.cover.EffectiveCoverFraction(s)
	moltenTemp := f.lava.MoltenTemperature(s)

	if coverFrac < 0 || coverFrac > 1 {
		return 0, fmt.Errorf("radiative: effective cover fraction %g at position %g m is outside [0,1]",
			coverFrac, s.Position)
	}
	if crustTemp <= 0 || moltenTemp <= 0 {
		return 0, fmt.Errorf("radiative: non-physical surface temperatures at position %g m: "+
			"crust %g K, molten %g K", s.Position, crustTemp, moltenTemp)
	}

	te4 := coverFrac*math.Pow(crustTemp, 4.) + (1.-coverFrac)*math.Pow(moltenTemp, 4.)
	f.log.Record("effective_radiation_temperature", s.Position, math.Pow(te4, 0.25))

	tAir := f.air.Temperature()
	return stefanBoltzmann * f.emissivity * (te4 - math.Pow(tAir, 4.)) * channelWidth, nil
}
