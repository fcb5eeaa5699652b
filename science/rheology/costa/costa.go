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

// Package costa implements the Costa et al. relative-viscosity model,
// which stays finite above the maximum packing fraction and depends on
// the strain-rate regime the flow is in. The empirical constants for
// each regime are for the needle-like B particles of Cimarelli et al.
// (2011).
package costa

import (
	"fmt"
	"math"

	"github.com/spatialmodel/lavaflow"
)

// erfArgMax caps the argument of the error function. Erf saturates to 1
// long before this, so the cap only guards the evaluation against
// overflow as φ approaches its maximum.
const erfArgMax = 25.

// regime holds the empirical constants for one strain-rate regime.
type regime struct {
	delta, gamma, phiStar, epsilon float64
}

// The two supported strain-rate regimes. No other strain rate has fitted
// constants, so anything else is a configuration error.
var regimes = map[float64]regime{
	1.0:    {delta: 4.45, gamma: 8.55, phiStar: 0.28, epsilon: 0.001},
	1.0e-4: {delta: 7.5, gamma: 5.5, phiStar: 0.26, epsilon: 0.0002},
}

// Model computes the relative viscosity of the crystal-bearing melt
// after Costa et al. It satisfies lavaflow.RelativeViscosityModel.
type Model struct {
	strainRate float64
	r          regime
}

// New creates a Model for the given strain rate [1/s], which must be
// exactly 1.0 or 1.0e-4.
func New(strainRate float64) (*Model, error) {
	r, ok := regimes[strainRate]
	if !ok {
		return nil, fmt.Errorf("costa: unsupported strain rate %g 1/s; valid values are 1.0 and 1.0e-4", strainRate)
	}
	return &Model{strainRate: strainRate, r: r}, nil
}

// StrainRate returns the configured strain rate [1/s].
func (m *Model) StrainRate() float64 { return m.strainRate }

// RelativeViscosity returns the viscosity multiplier at the state's
// crystal fraction:
//
//	f  = (1−ε)·erf(min(25, √π/(2(1−ε)) · φ/φ* · (1+(φ/φ*)^γ)))
//	ηr = (1+(φ/φ*)^δ) / (1−f)^(2.5·φ*)
func (m *Model) RelativeViscosity(s *lavaflow.FlowState) float64 {
	phi := s.CrystalFraction
	r := m.r
	arg := math.Sqrt(math.Pi) / (2. * (1. - r.epsilon)) * (phi / r.phiStar) *
		(1. + math.Pow(phi/r.phiStar, r.gamma))
	f := (1. - r.epsilon) * math.Erf(math.Min(erfArgMax, arg))
	return (1. + math.Pow(phi/r.phiStar, r.delta)) / math.Pow(1.-f, 2.5*r.phiStar)
}
