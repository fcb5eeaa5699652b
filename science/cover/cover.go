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

// Package cover contains models of the effective crust cover fraction,
// the share of the flow surface that is solidified crust rather than
// exposed melt.
package cover

import (
	"fmt"
	"math"

	"github.com/spatialmodel/lavaflow"
)

// Constant is a fixed cover fraction. It satisfies
// lavaflow.EffectiveCoverModel.
type Constant struct {
	fraction float64
}

// NewConstant creates a Constant cover model. fraction must be in [0,1].
func NewConstant(fraction float64) (*Constant, error) {
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("cover: cover fraction must be in [0,1] but is %g", fraction)
	}
	return &Constant{fraction: fraction}, nil
}

// EffectiveCoverFraction returns the configured fraction.
func (c *Constant) EffectiveCoverFraction(s *lavaflow.FlowState) float64 { return c.fraction }

// Decay models crust coverage growing as the flow ages: fast-moving
// young lava near the vent is mostly incandescent, while the surface of
// a slow distal flow is nearly all crust. The cover fraction is
//
//	f = 1 − (1−f0)·exp(−t/τ)
//
// where f0 is the cover at the vent and τ a crust-growth time scale.
// It satisfies lavaflow.EffectiveCoverModel.
type Decay struct {
	initial   float64
	timeScale float64
}

// NewDecay creates a Decay cover model. initial must be in [0,1] and
// timeScale [s] positive.
func NewDecay(initial, timeScale float64) (*Decay, error) {
	if initial < 0 || initial > 1 {
		return nil, fmt.Errorf("cover: initial cover fraction must be in [0,1] but is %g", initial)
	}
	if !(timeScale > 0) {
		return nil, fmt.Errorf("cover: crust-growth time scale must be positive but is %g s", timeScale)
	}
	return &Decay{initial: initial, timeScale: timeScale}, nil
}

// EffectiveCoverFraction returns the cover fraction at the state's
// elapsed time.
func (d *Decay) EffectiveCoverFraction(s *lavaflow.FlowState) float64 {
	return 1. - (1.-d.initial)*math.Exp(-s.Time/d.timeScale)
}
