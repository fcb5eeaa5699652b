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

// Package terrain describes channel geometry as a function of down-flow
// distance, either as uniform values or interpolated from a measured
// profile.
package terrain

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
)

// Constant is a uniform channel: the same width, depth, and slope
// everywhere out to a maximum length. It satisfies
// lavaflow.TerrainCondition.
type Constant struct {
	Width     float64 // [m]
	Depth     float64 // [m]
	Slope     float64 // [rad]
	MaxLength float64 // [m]
}

// NewConstant creates a uniform channel description. Width, depth, and
// maxLength [m] must be positive; slope [rad] must be in (0, π/2).
func NewConstant(width, depth, slope, maxLength float64) (*Constant, error) {
	if !(width > 0) || !(depth > 0) || !(maxLength > 0) {
		return nil, fmt.Errorf("terrain: width (%g m), depth (%g m) and max length (%g m) must all be positive",
			width, depth, maxLength)
	}
	if !(slope > 0) || slope >= math.Pi/2 {
		return nil, fmt.Errorf("terrain: slope must be in (0, π/2) rad but is %g", slope)
	}
	return &Constant{Width: width, Depth: depth, Slope: slope, MaxLength: maxLength}, nil
}

// ChannelWidth returns the channel width [m].
func (c *Constant) ChannelWidth(position float64) float64 { return c.Width }

// ChannelDepth returns the channel depth [m].
func (c *Constant) ChannelDepth(position float64) float64 { return c.Depth }

// ChannelSlope returns the channel slope [rad].
func (c *Constant) ChannelSlope(position float64) float64 { return c.Slope }

// MaxChannelLength returns the channel length [m].
func (c *Constant) MaxChannelLength() float64 { return c.MaxLength }

// point is one surveyed station of a channel profile.
type point struct {
	distance float64 // [m]
	slope    float64 // [rad]
	width    float64 // [m]
	depth    float64 // [m]
}

// Profile interpolates channel geometry linearly between surveyed
// stations along the channel. It satisfies lavaflow.TerrainCondition.
type Profile struct {
	points []point
}

// NewProfile creates a Profile from parallel slices of station distance
// [m], slope [rad], width [m], and depth [m]. At least two stations are
// required and distances must be strictly increasing from zero or more.
func NewProfile(distance, slope, width, depth []float64) (*Profile, error) {
	n := len(distance)
	if n < 2 {
		return nil, fmt.Errorf("terrain: a profile requires at least 2 stations but has %d", n)
	}
	if len(slope) != n || len(width) != n || len(depth) != n {
		return nil, fmt.Errorf("terrain: profile columns have mismatched lengths: "+
			"%d distances, %d slopes, %d widths, %d depths", n, len(slope), len(width), len(depth))
	}
	pts := make([]point, n)
	for i := 0; i < n; i++ {
		if i > 0 && distance[i] <= distance[i-1] {
			return nil, fmt.Errorf("terrain: profile distances must be strictly increasing "+
				"but station %d (%g m) does not follow %g m", i, distance[i], distance[i-1])
		}
		if !(width[i] > 0) || !(depth[i] > 0) {
			return nil, fmt.Errorf("terrain: station %d has non-positive width (%g m) or depth (%g m)",
				i, width[i], depth[i])
		}
		pts[i] = point{distance: distance[i], slope: slope[i], width: width[i], depth: depth[i]}
	}
	return &Profile{points: pts}, nil
}

// ReadProfile loads a Profile from a CSV file with a header row and
// columns distance [m], slope [degrees], width [m], depth [m].
func ReadProfile(filename string) (*Profile, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("terrain: opening profile file: %v", err)
	}
	defer f.Close()
	return readProfile(f, filename)
}

func readProfile(f io.Reader, filename string) (*Profile, error) {
	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("terrain: reading profile file %s: %v", filename, err)
	}
	if len(rows) < 3 { // header + 2 stations
		return nil, fmt.Errorf("terrain: profile file %s needs a header and at least 2 stations", filename)
	}
	var distance, slope, width, depth []float64
	for i, row := range rows[1:] {
		if len(row) != 4 {
			return nil, fmt.Errorf("terrain: profile file %s row %d has %d columns; want 4 "+
				"(distance, slope, width, depth)", filename, i+2, len(row))
		}
		vals := make([]float64, 4)
		for j, cell := range row {
			vals[j], err = strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("terrain: profile file %s row %d column %d: %v", filename, i+2, j+1, err)
			}
		}
		distance = append(distance, vals[0])
		slope = append(slope, vals[1]*math.Pi/180.)
		width = append(width, vals[2])
		depth = append(depth, vals[3])
	}
	return NewProfile(distance, slope, width, depth)
}

// interpolate returns the linear interpolation of f between the stations
// bracketing the position; positions outside the profile take the end
// values.
func (p *Profile) interpolate(position float64, f func(point) float64) float64 {
	pts := p.points
	if position <= pts[0].distance {
		return f(pts[0])
	}
	if position >= pts[len(pts)-1].distance {
		return f(pts[len(pts)-1])
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].distance >= position })
	lo, hi := pts[i-1], pts[i]
	frac := (position - lo.distance) / (hi.distance - lo.distance)
	return f(lo) + frac*(f(hi)-f(lo))
}

// ChannelWidth returns the interpolated channel width [m].
func (p *Profile) ChannelWidth(position float64) float64 {
	return p.interpolate(position, func(pt point) float64 { return pt.width })
}

// ChannelDepth returns the interpolated channel depth [m].
func (p *Profile) ChannelDepth(position float64) float64 {
	return p.interpolate(position, func(pt point) float64 { return pt.depth })
}

// ChannelSlope returns the interpolated channel slope [rad].
func (p *Profile) ChannelSlope(position float64) float64 {
	return p.interpolate(position, func(pt point) float64 { return pt.slope })
}

// MaxChannelLength returns the distance of the last surveyed station [m].
func (p *Profile) MaxChannelLength() float64 {
	return p.points[len(p.points)-1].distance
}
