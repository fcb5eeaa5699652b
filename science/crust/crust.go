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

// Package crust contains models of the temperature of the solidified
// surface crust.
package crust

import (
	"fmt"
	"math"

	"github.com/spatialmodel/lavaflow"
)

// Constant is a fixed crust temperature. It satisfies
// lavaflow.CrustTemperatureModel.
type Constant struct {
	temperature float64
}

// NewConstant creates a Constant crust-temperature model. temperature is
// in kelvin and must be positive.
func NewConstant(temperature float64) (*Constant, error) {
	if !(temperature > 0) {
		return nil, fmt.Errorf("crust: crust temperature must be positive but is %g K", temperature)
	}
	return &Constant{temperature: temperature}, nil
}

// CrustTemperature returns the configured temperature [K].
func (c *Constant) CrustTemperature(s *lavaflow.FlowState) float64 { return c.temperature }

// Hon estimates the crust temperature from the surface age using the
// cooling curve of Hon et al. (1994),
//
//	T [°C] = 303 − 140·log10(t [h]).
//
// It satisfies lavaflow.CrustTemperatureModel.
type Hon struct{}

// CrustTemperature returns the crust temperature [K] at the state's
// elapsed time. Very young surfaces are capped at the t = 1 s value so
// the logarithm stays bounded near the vent.
func (Hon) CrustTemperature(s *lavaflow.FlowState) float64 {
	t := math.Max(s.Time, 1.) / 3600. // hours
	return 273.15 + 303. - 140.*math.Log10(t)
}
