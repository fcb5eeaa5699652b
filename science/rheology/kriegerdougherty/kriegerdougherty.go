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

// Package kriegerdougherty implements the Krieger–Dougherty (1959)
// relative-viscosity model for suspensions of rigid particles.
package kriegerdougherty

import (
	"fmt"
	"math"

	"github.com/spatialmodel/lavaflow"
)

// Model computes the relative viscosity (1−φ/φmax)^(−B·φmax). It
// satisfies lavaflow.RelativeViscosityModel.
type Model struct {
	maxPacking   float64
	einsteinCoef float64
}

// New creates a Model with the given maximum packing fraction φmax
// (0 < φmax ≤ 1) and Einstein coefficient B (> 0). Common values are
// φmax = 0.641 and B = 3.27.
func New(maxPacking, einsteinCoef float64) (*Model, error) {
	if !(maxPacking > 0) || maxPacking > 1 {
		return nil, fmt.Errorf("kriegerdougherty: maximum packing fraction must be in (0,1] but is %g", maxPacking)
	}
	if !(einsteinCoef > 0) {
		return nil, fmt.Errorf("kriegerdougherty: Einstein coefficient must be positive but is %g", einsteinCoef)
	}
	return &Model{maxPacking: maxPacking, einsteinCoef: einsteinCoef}, nil
}

// RelativeViscosity returns the viscosity multiplier at the state's
// crystal fraction. At and beyond the maximum packing fraction it
// returns +Inf: the suspension jams and the flow stops. Callers treat
// that as a normal terminal condition, not an error.
func (m *Model) RelativeViscosity(s *lavaflow.FlowState) float64 {
	phi := s.CrystalFraction
	if phi >= m.maxPacking {
		return math.Inf(1)
	}
	return math.Pow(1.-phi/m.maxPacking, -m.einsteinCoef*m.maxPacking)
}
