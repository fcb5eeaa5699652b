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

// Package lavaflow implements a one-dimensional thermo-rheological model
// of a channelized lava flow. It integrates the cooling, crystallization,
// and deceleration of the flow core along the channel by single explicit
// spatial steps, coupling a surface heat-loss budget, a crystallization
// rate model, and a crystal-cargo rheology under a mass-conservation
// closure of the channel geometry.
package lavaflow

// FlowState holds the evolving condition of the flow core. One FlowState
// is created per simulation run and is mutated exactly once per
// integration step; it is never shared between runs.
type FlowState struct {
	Position        float64 `desc:"Distance from the vent along the channel" units:"m"`
	Time            float64 `desc:"Elapsed time since eruption" units:"s"`
	CoreTemperature float64 `desc:"Bulk temperature of the flowing core" units:"K"`
	CrystalFraction float64 `desc:"Volume fraction of crystallized material" units:"fraction"`
}

// Clone returns a copy of the state. Sub-models receive the live state by
// pointer and must not retain it; Clone is for callers that want a
// snapshot across step boundaries.
func (s *FlowState) Clone() *FlowState {
	s2 := *s
	return &s2
}
