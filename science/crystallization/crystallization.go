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

// Package crystallization contains models of crystallinity as a function
// of core temperature.
package crystallization

import (
	"fmt"

	"github.com/spatialmodel/lavaflow"
)

// Linear assumes the equilibrium crystal fraction grows linearly from 0
// at the liquidus to a final crystallinity at the solidus, giving a
// constant crystallization rate dφ/dT. It satisfies
// lavaflow.CrystallizationModel.
type Linear struct {
	liquidus float64
	solidus  float64
	phiSolid float64
}

// NewLinear creates a Linear model. liquidus and solidus are in kelvin
// with liquidus > solidus > 0; phiSolid is the crystal fraction at the
// solidus, in (0,1].
func NewLinear(liquidus, solidus, phiSolid float64) (*Linear, error) {
	if !(solidus > 0) {
		return nil, fmt.Errorf("crystallization: solidus temperature must be positive but is %g K", solidus)
	}
	if liquidus <= solidus {
		return nil, fmt.Errorf("crystallization: liquidus temperature (%g K) must exceed the solidus (%g K)",
			liquidus, solidus)
	}
	if !(phiSolid > 0) || phiSolid > 1 {
		return nil, fmt.Errorf("crystallization: crystal fraction at the solidus must be in (0,1] but is %g", phiSolid)
	}
	return &Linear{liquidus: liquidus, solidus: solidus, phiSolid: phiSolid}, nil
}

// Rate returns the constant crystallization rate dφ/dT [1/K].
func (l *Linear) Rate(s *lavaflow.FlowState) (float64, error) {
	return l.phiSolid / (l.liquidus - l.solidus), nil
}

// SolidTemperature returns the solidus temperature [K].
func (l *Linear) SolidTemperature() float64 { return l.solidus }

// CrystalFraction returns the equilibrium crystal fraction at the given
// temperature [K], clamped to [0, phiSolid] outside the
// liquidus–solidus interval.
func (l *Linear) CrystalFraction(temperature float64) float64 {
	switch {
	case temperature >= l.liquidus:
		return 0
	case temperature <= l.solidus:
		return l.phiSolid
	default:
		return l.phiSolid * (l.liquidus - temperature) / (l.liquidus - l.solidus)
	}
}
