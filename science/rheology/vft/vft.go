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

// Package vft implements the Vogel–Fulcher–Tammann parameterization of
// the crystal-free melt viscosity,
//
//	log10 η = A + B/(T − C)
//
// with T in kelvin and η in Pa·s.
package vft

import (
	"fmt"
	"math"
)

// Model is a VFT melt-viscosity law. It satisfies
// lavaflow.MeltViscosityModel.
type Model struct {
	a, b, c float64
}

// New creates a Model from the three VFT coefficients. B must be
// positive so that viscosity increases on cooling; C [K] must be
// non-negative and below any temperature the model will be evaluated at.
func New(a, b, c float64) (*Model, error) {
	if !(b > 0) {
		return nil, fmt.Errorf("vft: coefficient B must be positive but is %g", b)
	}
	if c < 0 {
		return nil, fmt.Errorf("vft: coefficient C must be non-negative but is %g K", c)
	}
	return &Model{a: a, b: b, c: c}, nil
}

// MeltViscosity returns the melt viscosity [Pa·s] at the given
// temperature [K].
func (m *Model) MeltViscosity(temperature float64) float64 {
	return math.Pow(10., m.a+m.b/(temperature-m.c))
}
