// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cavern implements the discretized cavern wall profile and the
// insoluble sediment bed
package cavern

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// volume conversion constants
const (
	CuFtPerBbl = 5.614583333333333 // cubic feet per US barrel
	BblPerCuFt = 1.0 / CuFtPerBbl  // US barrels per cubic foot
)

// Geometry holds the ordered (elevation, radius) discretization of the
// cavern wall. Elevations are in feet, strictly increasing from floor to
// roof; radii are in feet and non-negative. Volumes are in barrels.
type Geometry struct {
	Elev []float64 // [n] node elevations
	R    []float64 // [n] node radii
}

// NewGeometry returns a geometry after validating the node profile
func NewGeometry(elev, r []float64) (o *Geometry, err error) {
	if len(elev) < 2 {
		return nil, chk.Err("geometry needs at least 2 nodes; got %d", len(elev))
	}
	if len(elev) != len(r) {
		return nil, chk.Err("geometry has %d elevations but %d radii", len(elev), len(r))
	}
	for i := 1; i < len(elev); i++ {
		if elev[i] <= elev[i-1] {
			return nil, chk.Err("node elevations must be strictly increasing; node %d: %g <= %g", i, elev[i], elev[i-1])
		}
	}
	for i, radius := range r {
		if radius < 0 {
			return nil, chk.Err("node %d has negative radius %g", i, radius)
		}
	}
	o = new(Geometry)
	o.Elev = make([]float64, len(elev))
	o.R = make([]float64, len(r))
	copy(o.Elev, elev)
	copy(o.R, r)
	return
}

// Clone returns a deep copy
func (o *Geometry) Clone() *Geometry {
	g := new(Geometry)
	g.Elev = make([]float64, len(o.Elev))
	g.R = make([]float64, len(o.R))
	copy(g.Elev, o.Elev)
	copy(g.R, o.R)
	return g
}

// N returns the number of nodes
func (o *Geometry) N() int {
	return len(o.Elev)
}

// Floor and Roof return the bottom and top reference elevations
func (o *Geometry) Floor() float64 { return o.Elev[0] }
func (o *Geometry) Roof() float64  { return o.Elev[len(o.Elev)-1] }

// ApplyRadialGrowth increases the radius of node i by dr. Growth is
// one-directional: dr must be non-negative.
func (o *Geometry) ApplyRadialGrowth(i int, dr float64) error {
	if i < 0 || i >= len(o.R) {
		return chk.Err("node index %d out of range [0,%d)", i, len(o.R))
	}
	if dr < 0 {
		return chk.Err("radial growth at node %d is negative: %g", i, dr)
	}
	o.R[i] += dr
	return nil
}

// Volume integrates the cross-sectional area over the whole profile [bbl]
func (o *Geometry) Volume() float64 {
	v := 0.0
	for i := 1; i < len(o.Elev); i++ {
		v += frustum(o.R[i-1], o.R[i], o.Elev[i]-o.Elev[i-1])
	}
	return v * BblPerCuFt
}

// VolumeBelow integrates the cross-sectional area from the floor up to
// elevation z [bbl]
func (o *Geometry) VolumeBelow(z float64) float64 {
	if z <= o.Floor() {
		return 0
	}
	v := 0.0
	for i := 1; i < len(o.Elev); i++ {
		if z >= o.Elev[i] {
			v += frustum(o.R[i-1], o.R[i], o.Elev[i]-o.Elev[i-1])
			continue
		}
		rz := o.RadiusAt(z)
		v += frustum(o.R[i-1], rz, z-o.Elev[i-1])
		break
	}
	return v * BblPerCuFt
}

// VolumeAbove integrates the cross-sectional area from elevation z up to
// the roof [bbl]
func (o *Geometry) VolumeAbove(z float64) float64 {
	return o.Volume() - o.VolumeBelow(z)
}

// ElevAtVolume returns the elevation z such that VolumeBelow(z) = v.
// Volumes beyond the profile clamp to the floor or roof elevation.
func (o *Geometry) ElevAtVolume(v float64) float64 {
	if v <= 0 {
		return o.Floor()
	}
	acc := 0.0
	for i := 1; i < len(o.Elev); i++ {
		band := frustum(o.R[i-1], o.R[i], o.Elev[i]-o.Elev[i-1]) * BblPerCuFt
		if acc+band < v {
			acc += band
			continue
		}
		// bisect within the band; the frustum volume is cubic in z
		zlo, zhi := o.Elev[i-1], o.Elev[i]
		want := v - acc
		for it := 0; it < 60; it++ {
			zm := 0.5 * (zlo + zhi)
			vm := frustum(o.R[i-1], o.RadiusAt(zm), zm-o.Elev[i-1]) * BblPerCuFt
			if vm < want {
				zlo = zm
			} else {
				zhi = zm
			}
		}
		return 0.5 * (zlo + zhi)
	}
	return o.Roof()
}

// ElevAtVolumeFromTop returns the elevation z such that VolumeAbove(z) = v
func (o *Geometry) ElevAtVolumeFromTop(v float64) float64 {
	return o.ElevAtVolume(o.Volume() - v)
}

// RadiusAt interpolates the wall radius at an arbitrary elevation.
// Elevations outside the profile clamp to the end radii.
func (o *Geometry) RadiusAt(z float64) float64 {
	if z <= o.Floor() {
		return o.R[0]
	}
	n := len(o.Elev)
	if z >= o.Roof() {
		return o.R[n-1]
	}
	for i := 1; i < n; i++ {
		if z <= o.Elev[i] {
			s := (z - o.Elev[i-1]) / (o.Elev[i] - o.Elev[i-1])
			return o.R[i-1] + s*(o.R[i]-o.R[i-1])
		}
	}
	return o.R[n-1]
}

// BandHeight returns the height of the half-bands owned by node i
func (o *Geometry) BandHeight(i int) float64 {
	n := len(o.Elev)
	h := 0.0
	if i > 0 {
		h += 0.5 * (o.Elev[i] - o.Elev[i-1])
	}
	if i < n-1 {
		h += 0.5 * (o.Elev[i+1] - o.Elev[i])
	}
	return h
}

// BandVolume returns the brine volume attributed to node i: the volume of
// its half-bands, approximated with the node's own radius [bbl]
func (o *Geometry) BandVolume(i int) float64 {
	return math.Pi * o.R[i] * o.R[i] * o.BandHeight(i) * BblPerCuFt
}

// NearestNode returns the index of the node closest to elevation z
func (o *Geometry) NearestNode(z float64) int {
	best, dbest := 0, math.Abs(o.Elev[0]-z)
	for i := 1; i < len(o.Elev); i++ {
		if d := math.Abs(o.Elev[i] - z); d < dbest {
			best, dbest = i, d
		}
	}
	return best
}

// frustum returns the volume of a conical frustum [ft³]
func frustum(r1, r2, h float64) float64 {
	return math.Pi * h * (r1*r1 + r1*r2 + r2*r2) / 3.0
}
