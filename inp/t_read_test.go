// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const tomlScenario = `
title = "leach test"
temp_c = 23.0
insol_frac = 0.05
initial_sg = 1.003
initial_insol_vol = 100.0
obi_elev = -35.0
casing_elev = -30.0
casing_diam = 9.625

[units]
length = "m"
flow = "m3/h"
duration = "d"

[geometry]
elev = [-100.0, -50.0, -30.48]
radius = [10.0, 12.0, 12.0]

[settings]
dt = 0.5
mb_tol = 1.0e-3

[[stages]]
title = "first leach"
kind = "constant"
hours = 10.0
rate = 20.0
inj_elev = -90.0
prod_elev = -40.0
`

func Test_read01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read01. toml scenario with unit normalization")

	dir := tst.TempDir()
	path := filepath.Join(dir, "leach.toml")
	err := os.WriteFile(path, []byte(tomlScenario), 0644)
	if err != nil {
		tst.Errorf("cannot write fixture: %v", err)
		return
	}

	scn, err := ReadScenario(path)
	if err != nil {
		tst.Errorf("ReadScenario failed: %v", err)
		return
	}
	chk.String(tst, scn.Key, "leach")
	chk.String(tst, scn.Title, "leach test")
	chk.IntAssert(len(scn.Stages), 1)

	// meters => feet (exact factor 10000/3048)
	chk.Float64(tst, "roof elevation", 1e-12, scn.Geometry.Elev[2], -100.0)
	chk.Float64(tst, "floor radius", 1e-12, scn.Geometry.Radius[0], 10.0*10000.0/3048.0)

	// m3/h => bbl/h (exact factor 1e12/158987294928)
	chk.Float64(tst, "rate", 1e-12, scn.Stages[0].Rate, 20.0*1e12/158987294928.0)

	// days => hours
	chk.Float64(tst, "duration", 1e-12, scn.Stages[0].Hours, 240.0)
	chk.Float64(tst, "stage dt", 1e-12, scn.Stages[0].Control.Dt, 12.0)

	// defaults
	chk.Float64(tst, "injection sg default", 1e-15, scn.Stages[0].InjSg, 1.0)
	chk.Float64(tst, "packing default", 1e-15, scn.Packing, 0.6)
	chk.IntAssert(scn.Settings.MbMaxViol, 5)

	// unit declarations are consumed by normalization
	chk.String(tst, scn.Units.Length, "")

	// write-back round trip of the normalized scenario
	out := filepath.Join(dir, "leach-normalized.toml")
	err = WriteScenario(out, scn)
	if err != nil {
		tst.Errorf("WriteScenario failed: %v", err)
		return
	}
	again, err := ReadScenario(out)
	if err != nil {
		tst.Errorf("ReadScenario of written file failed: %v", err)
		return
	}
	chk.Float64(tst, "round-trip rate", 1e-12, again.Stages[0].Rate, scn.Stages[0].Rate)
	chk.Float64(tst, "round-trip elevation", 1e-12, again.Geometry.Elev[0], scn.Geometry.Elev[0])
}

func Test_units01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("units01. exact rational factors")

	// chained large-length conversions stay exact
	v, err := LargeLengthUnits.Convert(3048.0, "m")
	if err != nil {
		tst.Errorf("Convert failed: %v", err)
		return
	}
	chk.Float64(tst, "3048 m", 1e-12, v, 10000.0)

	// survey foot
	v, err = LargeLengthUnits.Convert(999998.0, "[ft_us]")
	if err != nil {
		tst.Errorf("Convert failed: %v", err)
		return
	}
	chk.Float64(tst, "survey feet", 1e-9, v, 1000000.0)

	// flow: bbl/d to bbl/h
	v, err = FlowUnits.Convert(24.0, "[bbl_us]/d")
	if err != nil {
		tst.Errorf("Convert failed: %v", err)
		return
	}
	chk.Float64(tst, "bbl per day", 1e-15, v, 1.0)

	// base and empty codes are identity
	v, err = DurationUnits.Convert(7.0, "")
	if err != nil {
		tst.Errorf("Convert failed: %v", err)
		return
	}
	chk.Float64(tst, "empty code", 1e-15, v, 7.0)

	// unknown codes fail
	if _, err = DurationUnits.Convert(1.0, "fortnight"); err == nil {
		tst.Errorf("unknown unit code must fail")
		return
	}
	if !DurationUnits.Accepts("wk") || DurationUnits.Accepts("fortnight") {
		tst.Errorf("Accepts gives wrong answers")
		return
	}
}

func Test_validate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("validate01. configuration errors surface before stepping")

	base := func() *Scenario {
		o := &Scenario{
			Title:     "bad",
			InitialSg: 1.0,
			ObiElev:   -10,
			Geometry: GeometryData{
				Elev:   []float64{-100, -50, 0},
				Radius: []float64{10, 10, 10},
			},
			Stages: []*Stage{{
				Kind:     StageConstant,
				Hours:    10,
				Rate:     50,
				InjElev:  -90,
				ProdElev: -20,
			}},
		}
		o.Settings.SetDefault()
		return o
	}

	// the base scenario is fine
	if err := base().PostProcess(); err != nil {
		tst.Errorf("base scenario must validate: %v", err)
		return
	}

	// negative duration
	o := base()
	o.Stages[0].Hours = -1
	if err := o.PostProcess(); err == nil {
		tst.Errorf("negative duration must fail")
		return
	}

	// negative rate
	o = base()
	o.Stages[0].Rate = -5
	if err := o.PostProcess(); err == nil {
		tst.Errorf("negative rate must fail")
		return
	}

	// conflicting injection and production depths
	o = base()
	o.Stages[0].ProdElev = o.Stages[0].InjElev
	if err := o.PostProcess(); err == nil {
		tst.Errorf("conflicting well depths must fail")
		return
	}

	// injection point outside the cavern
	o = base()
	o.Stages[0].InjElev = -500
	if err := o.PostProcess(); err == nil {
		tst.Errorf("injection point outside the cavern must fail")
		return
	}

	// rate table must be consistent
	o = base()
	o.Stages[0].Kind = StageTable
	o.Stages[0].RateTimes = []float64{0, 5, 5}
	o.Stages[0].RateVals = []float64{10, 20, 30}
	if err := o.PostProcess(); err == nil {
		tst.Errorf("non-increasing rate table times must fail")
		return
	}

	// no stages
	o = base()
	o.Stages = nil
	if err := o.PostProcess(); err == nil {
		tst.Errorf("empty schedule must fail")
		return
	}

	// bad insoluble fraction
	o = base()
	o.InsolFrac = 1.5
	if err := o.PostProcess(); err == nil {
		tst.Errorf("insoluble fraction above 1 must fail")
		return
	}
}

func Test_defaults01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("defaults01. partial settings keep the fields that were set")

	o := &Scenario{
		Title:     "partial",
		InitialSg: 1.0,
		ObiElev:   -10,
		Geometry: GeometryData{
			Elev:   []float64{-100, -50, 0},
			Radius: []float64{10, 10, 10},
		},
		Stages: []*Stage{{
			Kind:     StageConstant,
			Hours:    10,
			Rate:     50,
			InjElev:  -90,
			ProdElev: -20,
		}},
	}
	o.Settings.MbTol = 5e-2
	o.Settings.MaxCuts = 3

	if err := o.PostProcess(); err != nil {
		tst.Errorf("PostProcess failed: %v", err)
		return
	}
	chk.Float64(tst, "Dt", 1e-15, o.Settings.Dt, 1.0)
	chk.Float64(tst, "MbTol", 1e-15, o.Settings.MbTol, 5e-2)
	chk.IntAssert(o.Settings.MbMaxViol, 5)
	chk.IntAssert(o.Settings.MaxCuts, 3)
	chk.IntAssert(o.Settings.MaxSub, 10000)
	chk.Float64(tst, "stage dt", 1e-15, o.Stages[0].Control.Dt, 1.0)
}
