// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the scenario input data read from .toml or .json
// files, including unit normalization and validation
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/pelletier/go-toml/v2"
)

// stage kinds
const (
	StageConstant = "constant" // constant injection rate
	StageTable    = "table"    // tabulated time-varying injection rate
	StageShutIn   = "shutin"   // no circulation
)

// Units declares the unit codes used by the scenario file. Empty codes
// mean the values are already in internal units.
type Units struct {
	Length   string `json:"length" toml:"length"`     // depths and radii; internal: [ft_i]
	Diameter string `json:"diameter" toml:"diameter"` // casing diameters; internal: [in_i]
	Flow     string `json:"flow" toml:"flow"`         // flowrates; internal: [bbl_us]/h
	Duration string `json:"duration" toml:"duration"` // durations; internal: h
}

// GeometryData holds the initial cavern wall profile
type GeometryData struct {
	Elev   []float64 `json:"elev" toml:"elev"`     // node elevations, floor to roof
	Radius []float64 `json:"radius" toml:"radius"` // node radii
}

// TimeControl holds data for defining the stage time stepping
type TimeControl struct {
	Dt float64 `json:"dt" toml:"dt"` // time step size; 0 => use Settings.Dt
}

// Stage holds one stage of the leaching schedule
type Stage struct {

	// main
	Title string  `json:"title" toml:"title"` // description of stage
	Kind  string  `json:"kind" toml:"kind"`   // constant, table or shutin
	Hours float64 `json:"hours" toml:"hours"` // stage duration

	// rates
	Rate      float64   `json:"rate" toml:"rate"`             // injection rate (constant stages)
	RateTimes []float64 `json:"rate_times" toml:"rate_times"` // table abscissae, in-stage time
	RateVals  []float64 `json:"rate_vals" toml:"rate_vals"`   // table ordinates
	FillRate  float64   `json:"fill_rate" toml:"fill_rate"`   // oil blanket fill rate

	// well configuration
	InjElev  float64 `json:"inj_elev" toml:"inj_elev"`   // injection point elevation
	ProdElev float64 `json:"prod_elev" toml:"prod_elev"` // production point elevation
	InjSg    float64 `json:"inj_sg" toml:"inj_sg"`       // injected water specific gravity; 0 => 1.0

	// termination
	TargetVolume float64 `json:"target_volume" toml:"target_volume"` // stop once the cavern reaches this volume; 0 => duration only

	// timecontrol
	Control TimeControl `json:"control" toml:"control"`
}

// Settings holds solver data
type Settings struct {
	Dt        float64 `json:"dt" toml:"dt"`                   // default time step size
	MbTol     float64 `json:"mb_tol" toml:"mb_tol"`           // mass-balance relative tolerance per step
	MbMaxViol int     `json:"mb_max_viol" toml:"mb_max_viol"` // consecutive violations before the run aborts
	MaxCuts   int     `json:"max_cuts" toml:"max_cuts"`       // step-halving attempts before divergence
	MaxSub    int     `json:"max_sub" toml:"max_sub"`         // mixing substeps allowed per step
	Strict    bool    `json:"strict" toml:"strict"`           // correlation lookups outside the domain are fatal
}

// SetDefault sets default values
func (o *Settings) SetDefault() {
	o.Dt = 1.0
	o.MbTol = 1e-3
	o.MbMaxViol = 5
	o.MaxCuts = 20
	o.MaxSub = 10000
}

// Scenario holds all simulation input data
type Scenario struct {

	// global information
	Title    string `json:"title" toml:"title"`
	Comments string `json:"comments" toml:"comments"`

	// problem definition
	TempC           float64 `json:"temp_c" toml:"temp_c"`                       // cavern temperature; 0 => 23
	InsolFrac       float64 `json:"insol_frac" toml:"insol_frac"`               // insoluble volume fraction of the wall
	Packing         float64 `json:"packing" toml:"packing"`                     // sediment bed solid fraction; 0 => 0.6
	InitialSg       float64 `json:"initial_sg" toml:"initial_sg"`               // initial brine specific gravity; 0 => 1.0
	InitialInsolVol float64 `json:"initial_insol_vol" toml:"initial_insol_vol"` // initial sediment solid volume
	ObiElev         float64 `json:"obi_elev" toml:"obi_elev"`                   // initial oil-brine interface elevation
	CasingElev      float64 `json:"casing_elev" toml:"casing_elev"`             // fixed casing shoe elevation
	CasingDiam      float64 `json:"casing_diam" toml:"casing_diam"`             // casing inner diameter [in]

	// input blocks
	Units    Units        `json:"units" toml:"units"`
	Geometry GeometryData `json:"geometry" toml:"geometry"`
	Settings Settings     `json:"settings" toml:"settings"`
	Stages   []*Stage     `json:"stages" toml:"stages"`

	// derived
	Key string `json:"-" toml:"-"` // scenario key from the file name
}

// ReadScenario reads all scenario data from a .toml or .json file and
// normalizes it into internal units
func ReadScenario(path string) (o *Scenario, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read scenario file %q: %v", path, err)
	}
	o = new(Scenario)
	o.Settings.SetDefault()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, o)
	case ".json":
		err = json.Unmarshal(b, o)
	default:
		return nil, chk.Err("scenario file %q must end in .toml or .json", path)
	}
	if err != nil {
		return nil, chk.Err("cannot unmarshal scenario file %q: %v", path, err)
	}
	fn := filepath.Base(path)
	o.Key = strings.TrimSuffix(fn, filepath.Ext(fn))
	err = o.PostProcess()
	if err != nil {
		return nil, err
	}
	return o, nil
}

// WriteScenario writes a normalized scenario to a .toml file
func WriteScenario(path string, o *Scenario) error {
	b, err := toml.Marshal(o)
	if err != nil {
		return chk.Err("cannot marshal scenario: %v", err)
	}
	return os.WriteFile(path, b, 0644)
}

// PostProcess fills defaults, converts all values into internal units and
// validates the scenario. It must run once before a simulation is built.
func (o *Scenario) PostProcess() (err error) {

	// defaults
	if o.TempC == 0 {
		o.TempC = 23.0
	}
	if o.Packing == 0 {
		o.Packing = 0.6
	}
	if o.InitialSg == 0 {
		o.InitialSg = 1.0
	}
	if o.Settings.Dt == 0 {
		o.Settings.Dt = 1.0
	}
	if o.Settings.MbTol == 0 {
		o.Settings.MbTol = 1e-3
	}
	if o.Settings.MbMaxViol == 0 {
		o.Settings.MbMaxViol = 5
	}
	if o.Settings.MaxCuts == 0 {
		o.Settings.MaxCuts = 20
	}
	if o.Settings.MaxSub == 0 {
		o.Settings.MaxSub = 10000
	}
	for _, stg := range o.Stages {
		if stg.InjSg == 0 {
			stg.InjSg = 1.0
		}
		if stg.Control.Dt == 0 {
			stg.Control.Dt = o.Settings.Dt
		}
	}

	// unit normalization
	err = o.normalize()
	if err != nil {
		return
	}

	// validation
	return o.Validate()
}

// normalize converts every dimensioned field into internal units and
// clears the unit declarations so the conversion cannot be applied twice
func (o *Scenario) normalize() (err error) {
	length := func(v float64) (float64, error) { return LargeLengthUnits.Convert(v, o.Units.Length) }
	flow := func(v float64) (float64, error) { return FlowUnits.Convert(v, o.Units.Flow) }
	duration := func(v float64) (float64, error) { return DurationUnits.Convert(v, o.Units.Duration) }

	if o.ObiElev, err = length(o.ObiElev); err != nil {
		return
	}
	if o.CasingElev, err = length(o.CasingElev); err != nil {
		return
	}
	if o.CasingDiam, err = SmallLengthUnits.Convert(o.CasingDiam, o.Units.Diameter); err != nil {
		return
	}
	for i := range o.Geometry.Elev {
		if o.Geometry.Elev[i], err = length(o.Geometry.Elev[i]); err != nil {
			return
		}
	}
	for i := range o.Geometry.Radius {
		if o.Geometry.Radius[i], err = length(o.Geometry.Radius[i]); err != nil {
			return
		}
	}
	for _, stg := range o.Stages {
		if stg.Hours, err = duration(stg.Hours); err != nil {
			return
		}
		if stg.Rate, err = flow(stg.Rate); err != nil {
			return
		}
		if stg.FillRate, err = flow(stg.FillRate); err != nil {
			return
		}
		if stg.InjElev, err = length(stg.InjElev); err != nil {
			return
		}
		if stg.ProdElev, err = length(stg.ProdElev); err != nil {
			return
		}
		if stg.Control.Dt, err = duration(stg.Control.Dt); err != nil {
			return
		}
		for i := range stg.RateTimes {
			if stg.RateTimes[i], err = duration(stg.RateTimes[i]); err != nil {
				return
			}
		}
		for i := range stg.RateVals {
			if stg.RateVals[i], err = flow(stg.RateVals[i]); err != nil {
				return
			}
		}
	}
	o.Units = Units{}
	return
}

// Validate checks the scenario before any stepping begins
func (o *Scenario) Validate() error {
	n := len(o.Geometry.Elev)
	if n < 2 {
		return chk.Err("geometry needs at least 2 nodes; got %d", n)
	}
	if len(o.Geometry.Radius) != n {
		return chk.Err("geometry has %d elevations but %d radii", n, len(o.Geometry.Radius))
	}
	for i := 1; i < n; i++ {
		if o.Geometry.Elev[i] <= o.Geometry.Elev[i-1] {
			return chk.Err("geometry elevations must be strictly increasing at node %d", i)
		}
	}
	for i, r := range o.Geometry.Radius {
		if r < 0 {
			return chk.Err("geometry radius at node %d is negative: %g", i, r)
		}
	}
	floor, roof := o.Geometry.Elev[0], o.Geometry.Elev[n-1]
	if o.InsolFrac < 0 || o.InsolFrac >= 1 {
		return chk.Err("insoluble fraction %g outside [0,1)", o.InsolFrac)
	}
	if o.Packing <= 0 || o.Packing > 1 {
		return chk.Err("packing fraction %g outside (0,1]", o.Packing)
	}
	if o.InitialSg < 0.9 {
		return chk.Err("initial brine specific gravity %g is not physical", o.InitialSg)
	}
	if o.InitialInsolVol < 0 {
		return chk.Err("initial insoluble volume is negative: %g", o.InitialInsolVol)
	}
	if o.ObiElev < floor || o.ObiElev > roof {
		return chk.Err("oil-brine interface elevation %g outside the cavern [%g,%g]", o.ObiElev, floor, roof)
	}
	if o.Settings.MbTol <= 0 {
		return chk.Err("mass-balance tolerance must be positive; got %g", o.Settings.MbTol)
	}
	if o.Settings.MbMaxViol < 1 {
		return chk.Err("mass-balance violation threshold must be at least 1; got %d", o.Settings.MbMaxViol)
	}
	if len(o.Stages) < 1 {
		return chk.Err("scenario has no stages")
	}
	for i, stg := range o.Stages {
		if err := stg.validate(floor, roof); err != nil {
			return chk.Err("stage %d (%q): %v", i, stg.Title, err)
		}
	}
	return nil
}

// validate checks one stage
func (o *Stage) validate(floor, roof float64) error {
	switch o.Kind {
	case StageConstant:
		if o.Rate < 0 {
			return chk.Err("injection rate is negative: %g", o.Rate)
		}
	case StageTable:
		if len(o.RateTimes) < 2 || len(o.RateTimes) != len(o.RateVals) {
			return chk.Err("rate table needs matching time and value columns with at least 2 rows")
		}
		for i := 1; i < len(o.RateTimes); i++ {
			if o.RateTimes[i] <= o.RateTimes[i-1] {
				return chk.Err("rate table times must be strictly increasing at row %d", i)
			}
		}
		for i, q := range o.RateVals {
			if q < 0 {
				return chk.Err("rate table value at row %d is negative: %g", i, q)
			}
		}
	case StageShutIn:
		// no circulation to check
	default:
		return chk.Err("unknown stage kind %q", o.Kind)
	}
	if o.Hours < 0 {
		return chk.Err("duration is negative: %g", o.Hours)
	}
	if o.FillRate < 0 {
		return chk.Err("fill rate is negative: %g", o.FillRate)
	}
	if o.TargetVolume < 0 {
		return chk.Err("target volume is negative: %g", o.TargetVolume)
	}
	if o.Kind != StageShutIn {
		if o.InjElev < floor || o.InjElev > roof {
			return chk.Err("injection elevation %g outside the cavern [%g,%g]", o.InjElev, floor, roof)
		}
		if o.ProdElev < floor || o.ProdElev > roof {
			return chk.Err("production elevation %g outside the cavern [%g,%g]", o.ProdElev, floor, roof)
		}
		if o.InjElev == o.ProdElev {
			return chk.Err("injection and production elevations conflict at %g", o.InjElev)
		}
		if o.InjSg < 0.95 || o.InjSg > 1.2 {
			return chk.Err("injected water specific gravity %g outside [0.95,1.2]", o.InjSg)
		}
	}
	if o.Control.Dt <= 0 {
		return chk.Err("time step must be positive; got %g", o.Control.Dt)
	}
	return nil
}
