// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math/big"

	"github.com/cpmech/gosl/chk"
)

// Unit conversion tables. Factors are exact rationals so that chained
// conversions do not drift; they are converted to float64 once, at the
// single multiplication that normalizes an input value. The tables are
// immutable after init and hold the complete set of accepted codes.
//
// Internal units: casing diameters in inches, depths and radii in feet,
// flowrates in bbl/h, durations in hours.
type UnitTable struct {
	Base    string              // internal unit code
	factors map[string]*big.Rat // code => factor to Base
}

// unit code tables
var (
	SmallLengthUnits *UnitTable // casing diameters => inches
	LargeLengthUnits *UnitTable // depths and radii => feet
	FlowUnits        *UnitTable // flowrates => bbl/h
	DurationUnits    *UnitTable // durations => hours
)

func init() {
	SmallLengthUnits = newUnitTable("[in_i]", map[string]*big.Rat{
		"[in_i]": big.NewRat(1, 1),
		"[ft_i]": big.NewRat(12, 1),
		"mm":     big.NewRat(10, 254),
		"cm":     big.NewRat(100, 254),
	})
	LargeLengthUnits = newUnitTable("[ft_i]", map[string]*big.Rat{
		"[ft_i]":  big.NewRat(1, 1),
		"[ft_us]": big.NewRat(1_000_000, 999_998),
		"m":       big.NewRat(10_000, 3_048),
	})
	FlowUnits = newUnitTable("[bbl_us]/h", map[string]*big.Rat{
		"[bbl_us]/h":   big.NewRat(1, 1),
		"[bbl_us]/d":   big.NewRat(1, 24),
		"[bbl_us]/min": big.NewRat(60, 1),
		"m3/h":         big.NewRat(1_000_000_000_000, 158_987_294_928),
		"m3/d":         big.NewRat(1_000_000_000_000, 3_815_695_078_272),
		"m3/min":       big.NewRat(60_000_000_000_000, 158_987_294_928),
	})
	DurationUnits = newUnitTable("h", map[string]*big.Rat{
		"h":    big.NewRat(1, 1),
		"s":    big.NewRat(1, 3_600),
		"min":  big.NewRat(1, 60),
		"d":    big.NewRat(24, 1),
		"wk":   big.NewRat(168, 1),
		"mo_j": big.NewRat(1461, 2),
		"a_j":  big.NewRat(8766, 1),
	})
}

// newUnitTable validates and freezes one code table
func newUnitTable(base string, factors map[string]*big.Rat) *UnitTable {
	f, ok := factors[base]
	if !ok {
		chk.Panic("unit table is missing its base code %q", base)
	}
	if f.Cmp(big.NewRat(1, 1)) != 0 {
		chk.Panic("base code %q must have factor 1", base)
	}
	for code, fac := range factors {
		if fac.Sign() <= 0 {
			chk.Panic("unit code %q has non-positive factor", code)
		}
	}
	return &UnitTable{Base: base, factors: factors}
}

// Convert normalizes v from the unit named by code into the table's
// internal unit. An empty code means the value is already internal.
func (o *UnitTable) Convert(v float64, code string) (float64, error) {
	if code == "" || code == o.Base {
		return v, nil
	}
	f, ok := o.factors[code]
	if !ok {
		return 0, chk.Err("unknown unit code %q (internal unit is %q)", code, o.Base)
	}
	fv, _ := f.Float64()
	return v * fv, nil
}

// Codes reports whether a code is accepted by the table
func (o *UnitTable) Accepts(code string) bool {
	if code == "" || code == o.Base {
		return true
	}
	_, ok := o.factors[code]
	return ok
}
