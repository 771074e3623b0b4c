// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package brine implements the empirical correlations for NaCl brine:
// a solubility (specific gravity) grid, the wall recession-rate law and
// the density-to-weight-percent law
package brine

import (
	"math"

	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/interp"
)

// RangeError indicates a lookup outside the calibrated domain
type RangeError struct {
	Quantity string  // name of the offending input
	Value    float64 // value requested
	Lo, Hi   float64 // calibrated domain
}

// Error returns the error message
func (e *RangeError) Error() string {
	return io.Sf("brine: %s = %g outside calibrated domain [%g, %g]", e.Quantity, e.Value, e.Lo, e.Hi)
}

// Model provides the empirical lookups. All tables are fixed after New;
// a Model is safe for shared read-only use across a whole run.
type Model struct {

	// configuration
	Strict bool // out-of-domain lookups are fatal instead of clamped

	// derived
	sgMaxF    interp.PiecewiseLinear // saturation sg along temperature axis
	wtPctMaxF interp.PiecewiseLinear // saturation wt% along temperature axis

	// diagnostics
	nclamp int // number of clamped lookups so far
}

// New returns a brine model. strict selects the out-of-domain policy:
// clamp-and-count (false) or fatal RangeError (true).
func New(strict bool) (o *Model, err error) {
	o = new(Model)
	o.Strict = strict
	err = o.sgMaxF.Fit(tempAxis[:], sgMaxTab[:])
	if err != nil {
		return nil, err
	}
	err = o.wtPctMaxF.Fit(tempAxis[:], wtPctMaxTab[:])
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Clamps returns the number of out-of-domain lookups that were clamped
func (o *Model) Clamps() int {
	return o.nclamp
}

// Solubility returns the specific gravity of brine at the given weight
// percent [%] and temperature [°C] by bilinear interpolation on the grid
func (o *Model) Solubility(wtPct, tempC float64) (sg float64, err error) {
	wtPct, err = o.domain("weight percent", wtPct, wtPctAxis[0], wtPctAxis[len(wtPctAxis)-1])
	if err != nil {
		return
	}
	tempC, err = o.domain("temperature", tempC, tempAxis[0], tempAxis[len(tempAxis)-1])
	if err != nil {
		return
	}
	i := bracket(wtPctAxis[:], wtPct)
	j := bracket(tempAxis[:], tempC)
	s := (wtPct - wtPctAxis[i]) / (wtPctAxis[i+1] - wtPctAxis[i])
	t := (tempC - tempAxis[j]) / (tempAxis[j+1] - tempAxis[j])
	sg = (1-s)*(1-t)*sgGrid[i][j] + s*(1-t)*sgGrid[i+1][j] + (1-s)*t*sgGrid[i][j+1] + s*t*sgGrid[i+1][j+1]
	return
}

// RecessionRate returns the wall recession rate [ft/h] for a local
// undersaturation ξ ∈ [0,1] and temperature [°C]
func (o *Model) RecessionRate(undersat, tempC float64) (rate float64, err error) {
	undersat, err = o.domain("undersaturation", undersat, 0, 1)
	if err != nil {
		return
	}
	tempC, err = o.domain("temperature", tempC, tempAxis[0], tempAxis[len(tempAxis)-1])
	if err != nil {
		return
	}
	a := &rateCoef
	p := undersat * (a[0] + undersat*(a[1]+undersat*a[2]))
	rate = p * math.Exp(a[3]+tempC*(a[4]+tempC*a[5]))
	return
}

// WtPctFromSg returns the weight percent [%] of NaCl in brine with the
// given specific gravity
func (o *Model) WtPctFromSg(sg float64) (wtPct float64, err error) {
	sg, err = o.domain("specific gravity", sg, 0.998, 1.208)
	if err != nil {
		return
	}
	c := &wtPctCoef
	wtPct = c[0] + sg*(c[1]+sg*c[2])
	if wtPct < 0 {
		wtPct = 0
	}
	return
}

// SgMax returns the saturated brine specific gravity at temperature [°C]
func (o *Model) SgMax(tempC float64) (sg float64, err error) {
	tempC, err = o.domain("temperature", tempC, tempAxis[0], tempAxis[len(tempAxis)-1])
	if err != nil {
		return
	}
	return o.sgMaxF.Predict(tempC), nil
}

// WtPctMax returns the saturation weight percent [%] at temperature [°C]
func (o *Model) WtPctMax(tempC float64) (wtPct float64, err error) {
	tempC, err = o.domain("temperature", tempC, tempAxis[0], tempAxis[len(tempAxis)-1])
	if err != nil {
		return
	}
	return o.wtPctMaxF.Predict(tempC), nil
}

// Undersaturation returns ξ = (sgMax − sg)/(sgMax − 1), clipped to [0,1]
func (o *Model) Undersaturation(sg, tempC float64) (xi float64, err error) {
	sgmax, err := o.SgMax(tempC)
	if err != nil {
		return
	}
	xi = (sgmax - sg) / (sgmax - 1.0)
	if xi < 0 {
		xi = 0
	}
	if xi > 1 {
		xi = 1
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// domain enforces the out-of-domain policy for one input
func (o *Model) domain(name string, v, lo, hi float64) (float64, error) {
	if v >= lo && v <= hi {
		return v, nil
	}
	if o.Strict {
		return v, &RangeError{Quantity: name, Value: v, Lo: lo, Hi: hi}
	}
	o.nclamp++
	if v < lo {
		return lo, nil
	}
	return hi, nil
}

// bracket returns i such that axis[i] <= v <= axis[i+1], with i in [0, n-2]
func bracket(axis []float64, v float64) int {
	n := len(axis)
	for i := 1; i < n-1; i++ {
		if v < axis[i] {
			return i - 1
		}
	}
	return n - 2
}
