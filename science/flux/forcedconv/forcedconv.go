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

// Package forcedconv implements heat loss to wind-forced convection over
// the flow surface, after Harris & Rowland (2001). The convective heat
// transfer coefficient comes from the air material and may itself be
// built from wind speed, air density, and specific heat (Keszthelyi &
// Denlinger 1996).
package forcedconv

import (
	"fmt"
	"math"

	"github.com/spatialmodel/lavaflow"
)

// Flux is the forced-convection heat-loss mechanism. It satisfies
// lavaflow.ConvectiveFluxModel.
type Flux struct {
	air   lavaflow.AirMaterial
	lava  lavaflow.LavaMaterial
	crust lavaflow.CrustTemperatureModel
	cover lavaflow.EffectiveCoverModel
	log   *lavaflow.Diagnostics
}

// New creates a forced-convection flux. log must be the run's
// diagnostics sink; the blended surface temperature, crust temperature,
// and cover fraction are recorded there at every evaluation, as they are
// the only way to audit the mechanism's internal state after a run.
func New(air lavaflow.AirMaterial, lava lavaflow.LavaMaterial,
	crust lavaflow.CrustTemperatureModel, cover lavaflow.EffectiveCoverModel,
	log *lavaflow.Diagnostics) (*Flux, error) {
	if air == nil || lava == nil || crust == nil || cover == nil || log == nil {
		return nil, fmt.Errorf("forcedconv: air, lava, crust, cover and diagnostics must all be non-nil")
	}
	return &Flux{air: air, lava: lava, crust: crust, cover: cover, log: log}, nil
}

// CharacteristicSurfaceTemperature returns the effective convecting
// surface temperature [K],
//
//	Tconv = (f·Tcrust^1.333 + (1−f)·Tmolten^1.333)^0.75,
//
// blending crust and exposed melt by their convective efficiencies
// rather than by a plain area average.
func (f *Flux) CharacteristicSurfaceTemperature(s *lavaflow.FlowState) (float64, error) {
	crustTemp := f.crust.CrustTemperature(s)
	coverFrac := f.cover.EffectiveCoverFraction(s)
	moltenTemp := f.lava.MoltenTemperature(s)

	if coverFrac < 0 || coverFrac > 1 {
		return 0, fmt.Errorf("forcedconv: effective cover fraction %g at position %g m is outside [0,1]",
			coverFrac, s.Position)
	}
	if crustTemp <= 0 || moltenTemp <= 0 {
		return 0, fmt.Errorf("forcedconv: non-physical surface temperatures at position %g m: "+
			"crust %g K, molten %g K", s.Position, crustTemp, moltenTemp)
	}

	tConv := math.Pow(coverFrac*math.Pow(crustTemp, 1.333)+
		(1.-coverFrac)*math.Pow(moltenTemp, 1.333), 0.75)

	f.log.Record("characteristic_surface_temperature", s.Position, tConv)
	f.log.Record("crust_temperature", s.Position, crustTemp)
	f.log.Record("effective_cover_fraction", s.Position, coverFrac)

	return tConv, nil
}

// Flux returns the forced-convection heat loss per unit flow length
// [W/m], h_c·(Tconv−Tair)·width.
func (f *Flux) Flux(s *lavaflow.FlowState, channelWidth, channelDepth float64) (float64, error) {
	tConv, err := f.CharacteristicSurfaceTemperature(s)
	if err != nil {
		return 0, err
	}
	hc := f.air.ConvectiveHeatTransferCoefficient()
	return hc * (tConv - f.air.Temperature()) * channelWidth, nil
}
