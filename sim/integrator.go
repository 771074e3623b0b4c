// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"errors"
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/dbhart/sansmic/cavern"
	"github.com/dbhart/sansmic/inp"
	"github.com/dbhart/sansmic/mdl/brine"
	"gonum.org/v1/gonum/interp"
)

// errCourant signals that the advected volume in one step exceeds the
// sub-cycling capacity of the cell chain; the caller halves the step.
var errCourant = errors.New("advected volume exceeds cell sub-cycling capacity")

// integrator advances the state through one stage, step by step
type integrator struct {
	mdl       *brine.Model
	set       *inp.Settings
	insolFrac float64 // insoluble volume fraction of the leached wall
}

// stepDelta is a fully computed, not yet applied step. compute fills it
// from a read-only view of the state; apply commits it.
type stepDelta struct {
	dt       float64   // step length [h]
	qinj     float64   // injection rate during the step [bbl/h]
	vin      float64   // injected raw water [bbl]
	vfill    float64   // injected blanket oil [bbl]
	dR       []float64 // radial growth per node [ft]
	sgNew    []float64 // post-step brine concentration per node
	dCav     float64   // exact cavern volume growth [bbl]
	dBedSol  float64   // settled insoluble solids [bbl]
	dBedBulk float64   // bed bulk growth incl. porosity [bbl]
	sApprox  float64   // salt volume leached off the wall [bbl]
	sEff     float64   // salt volume absorbed by the brine [bbl]
	produced float64   // brine pushed out of the production string [bbl]
	vented   float64   // brine displaced during shut-in [bbl]
	ullage   float64   // post-step unfilled void [bbl]
	sgOut    float64   // effluent concentration at the production point
	injected float64   // ledger inflow term [bbl]
	dCavArg  float64   // ledger cavern growth term [bbl]
	dInsArg  float64   // ledger insoluble term [bbl]
	relResid float64   // relative continuity residual
	errEst   float64   // residual plus volume attribution defect, relative
}

func newIntegrator(m *brine.Model, set *inp.Settings, insolFrac float64) *integrator {
	return &integrator{mdl: m, set: set, insolFrac: insolFrac}
}

// rateFunc builds the injection rate lookup for one stage. Table stages
// interpolate linearly and hold the end values outside the table range.
func rateFunc(stg *inp.Stage) (func(tIn float64) float64, error) {
	switch stg.Kind {
	case inp.StageShutIn:
		return func(float64) float64 { return 0 }, nil
	case inp.StageConstant:
		q := stg.Rate
		return func(float64) float64 { return q }, nil
	case inp.StageTable:
		var pl interp.PiecewiseLinear
		if err := pl.Fit(stg.RateTimes, stg.RateVals); err != nil {
			return nil, err
		}
		lo, hi := stg.RateTimes[0], stg.RateTimes[len(stg.RateTimes)-1]
		return func(tIn float64) float64 {
			if tIn < lo {
				tIn = lo
			}
			if tIn > hi {
				tIn = hi
			}
			return pl.Predict(tIn)
		}, nil
	}
	return nil, errors.New("unknown stage kind " + stg.Kind)
}

// compute evaluates one candidate step of length dt starting at stage
// time tIn. The state is not modified.
func (o *integrator) compute(st *State, stg *inp.Stage, rate func(float64) float64, tIn, dt float64) (*stepDelta, error) {

	d := &stepDelta{dt: dt}
	d.qinj = rate(tIn)
	d.vin = d.qinj * dt
	d.vfill = stg.FillRate * dt

	n := st.Geo.N()
	d.dR = make([]float64, n)
	d.sgNew = make([]float64, n)
	copy(d.sgNew, st.Sg)

	// dissolution over the active band between the bed top and the OBI
	zlo, zhi := st.Bed.Ztop, st.Zobi
	sumDV := 0.0
	for i := 0; i < n; i++ {
		z := st.Geo.Elev[i]
		if z < zlo || z > zhi {
			continue
		}
		xi, err := o.mdl.Undersaturation(st.Sg[i], st.TempC)
		if err != nil {
			return nil, err
		}
		r, err := o.mdl.RecessionRate(xi, st.TempC)
		if err != nil {
			return nil, err
		}
		if r <= 0 {
			continue
		}
		dr := r * dt
		d.dR[i] = dr
		ri := st.Geo.R[i]
		h := st.Geo.BandHeight(i)
		dv := math.Pi * ((ri+dr)*(ri+dr) - ri*ri) * h * cavern.BblPerCuFt
		sumDV += dv

		// the insoluble fraction settles as solids, the rest is salt
		salt := dv * (1 - o.insolFrac)
		d.dBedSol += dv * o.insolFrac
		d.sApprox += salt

		// saturation clamp: salt that the cell cannot absorb is a defect.
		// cells with zero volume hold no brine to concentrate.
		vc := st.Geo.BandVolume(i)
		sgMax, err := o.mdl.SgMax(st.TempC)
		if err != nil {
			return nil, err
		}
		if vc > 0 {
			sgNew := d.sgNew[i] + salt*(brine.SgNaClSolid-d.sgNew[i])/vc
			if sgNew > sgMax {
				over := (sgNew - sgMax) * vc / (brine.SgNaClSolid - sgMax)
				salt -= over
				sgNew = sgMax
			}
			if sgNew < 1.0 {
				sgNew = 1.0
			}
			d.sgNew[i] = sgNew
		}
		d.sEff += salt
	}

	// exact cavern growth from the grown wall profile
	v0 := st.Geo.Volume()
	g := st.Geo.Clone()
	for i, dr := range d.dR {
		if dr > 0 {
			if err := g.ApplyRadialGrowth(i, dr); err != nil {
				return nil, err
			}
		}
	}
	d.dCav = g.Volume() - v0
	d.dBedBulk = d.dBedSol / st.Bed.Packing

	// advective transport from the injection point to the production point
	if d.vin > 0 && stg.Kind != inp.StageShutIn {
		if err := o.advect(st, stg, d); err != nil {
			return nil, err
		}
	} else {
		d.sgOut = st.SgAverage()
	}

	// void continuity: whatever liquid does not fit in the new void leaves
	dVoid := d.dCav - d.dBedBulk
	liquidIn := d.vin + d.sEff
	outRaw := liquidIn - dVoid + d.vfill - st.Ullage
	if outRaw < 0 {
		d.ullage = -outRaw
	} else if stg.Kind == inp.StageShutIn {
		d.vented = outRaw
	} else {
		d.produced = outRaw
	}

	// ledger terms and the a-priori residual used for step acceptance
	du := d.ullage - st.Ullage
	d.injected = d.vin + d.vfill + d.sApprox
	d.dCavArg = d.dCav - du
	d.dInsArg = -d.dBedBulk
	resid := d.injected - d.produced - d.dCavArg - d.dInsArg - d.vented
	den := math.Max(math.Abs(d.injected), 1e-12)
	d.relResid = math.Abs(resid) / den
	d.errEst = (math.Abs(resid) + math.Abs(sumDV-d.dCav)) / den

	for _, sg := range d.sgNew {
		if math.IsNaN(sg) || math.IsInf(sg, 0) {
			return nil, errors.New("non-finite brine concentration")
		}
	}
	return d, nil
}

// advect runs the sub-cycled mixing-cell chain between the injection and
// production nodes and records the mean effluent concentration.
func (o *integrator) advect(st *State, stg *inp.Stage, d *stepDelta) error {
	ninj := st.Geo.NearestNode(stg.InjElev)
	nprod := st.Geo.NearestNode(stg.ProdElev)
	dir := 1
	if nprod < ninj {
		dir = -1
	}

	// smallest non-empty cell limits the per-sub-cycle slug
	vmin := math.Inf(1)
	for i := ninj; ; i += dir {
		if v := st.Geo.BandVolume(i); v > 0 && v < vmin {
			vmin = v
		}
		if i == nprod {
			break
		}
	}
	nsub := 1
	if !math.IsInf(vmin, 1) {
		nsub = int(math.Ceil(d.vin / (0.5 * vmin)))
		if nsub < 1 {
			nsub = 1
		}
		if nsub > o.set.MaxSub {
			return errCourant
		}
	}

	// empty cells hold no brine and pass the stream through unchanged
	dv := d.vin / float64(nsub)
	outAcc := 0.0
	for k := 0; k < nsub; k++ {
		if vc := st.Geo.BandVolume(ninj); vc > 0 {
			d.sgNew[ninj] += dv * (stg.InjSg - d.sgNew[ninj]) / vc
		} else {
			d.sgNew[ninj] = stg.InjSg
		}
		if ninj != nprod {
			for i := ninj + dir; ; i += dir {
				if vc := st.Geo.BandVolume(i); vc > 0 {
					d.sgNew[i] += dv * (d.sgNew[i-dir] - d.sgNew[i]) / vc
				} else {
					d.sgNew[i] = d.sgNew[i-dir]
				}
				if i == nprod {
					break
				}
			}
		}
		outAcc += d.sgNew[nprod] * dv
	}
	d.sgOut = outAcc / d.vin
	return nil
}

// apply commits a computed step to the state
func (o *integrator) apply(st *State, d *stepDelta) {
	for i, dr := range d.dR {
		if dr > 0 {
			st.Geo.ApplyRadialGrowth(i, dr)
		}
	}
	if d.dBedSol > 0 {
		st.Bed.Accumulate(d.dBedSol, st.Geo)
	}
	copy(st.Sg, d.sgNew)
	st.Voil += d.vfill
	st.Ullage = d.ullage
	st.Zobi = st.Geo.ElevAtVolumeFromTop(st.Voil + st.Ullage)
	st.T += d.dt
}

// runStage advances the state through one stage. The returned error, if
// any, is always a *Error with the failure kind set.
func (o *integrator) runStage(ctx context.Context, st *State, stg *inp.Stage, idx int, led *Ledger, rec *Recorder) error {

	rate, err := rateFunc(stg)
	if err != nil {
		return newErr(KindConfiguration, idx, "%v", err)
	}

	remaining := stg.Hours
	for remaining > 1e-12 {

		if err := ctx.Err(); err != nil {
			return newErr(KindCanceled, idx, "%v", err)
		}

		// the stage ends as soon as the target is reached; a target already
		// satisfied at the step head completes the stage without stepping
		if stg.TargetVolume > 0 && st.Geo.Volume() >= stg.TargetVolume {
			break
		}

		dt := stg.Control.Dt
		if dt > remaining {
			dt = remaining
		}
		tIn := stg.Hours - remaining

		// trial step with halving on divergence
		var d *stepDelta
		var lastErr error
		cuts := 0
		for {
			dd, cerr := o.compute(st, stg, rate, tIn, dt)
			if cerr != nil {
				var rng *brine.RangeError
				if errors.As(cerr, &rng) {
					return newErr(KindCorrelationRange, idx, "%v", cerr)
				}
				lastErr = cerr
			} else if dd.relResid <= 10*o.set.MbTol {
				d = dd
				break
			} else {
				lastErr = errors.New(io.Sf("continuity residual %g out of tolerance", dd.relResid))
			}
			cuts++
			if cuts > o.set.MaxCuts {
				return newErr(KindNumericalDivergence, idx,
					"step stays invalid at dt=%g after %d cuts: %v", dt, cuts-1, lastErr)
			}
			dt /= 2
		}

		// target-volume crossing: shorten the step to land on the target
		crossed := false
		if stg.TargetVolume > 0 && d.dCav > 0 {
			v0 := st.Geo.Volume()
			if v0+d.dCav >= stg.TargetVolume {
				crossed = true
				frac := (stg.TargetVolume - v0) / d.dCav
				if frac > 0 && frac < 1 {
					dd, cerr := o.compute(st, stg, rate, tIn, dt*frac)
					if cerr != nil {
						return newErr(KindNumericalDivergence, idx, "%v", cerr)
					}
					d = dd
				}
			}
		}

		o.apply(st, d)
		_, _, fatal := led.RecordStep(d.injected, d.produced, d.dCavArg, d.dInsArg, d.vented)
		led.Accumulate(d.vin, d.produced, d.vented, d.vfill)

		rec.Append(&Record{
			T:      st.T,
			Vcav:   st.Geo.Volume(),
			ErrEst: d.errEst,
			SgOut:  d.sgOut,
			SgAve:  st.SgAverage(),
			Vinsol: st.Bed.Vol,
			Zinsol: st.Bed.Ztop,
			Zobi:   st.Zobi,
			Vvent:  led.Vvent,
			Qinj:   d.qinj,
			Qfill:  stg.FillRate,
			Vinj:   led.Vinj,
			Vfill:  led.Vfill,
			Stage:  idx,
		})

		if fatal {
			return newErr(KindMassBalance, idx,
				"continuity violated in %d consecutive steps", o.set.MbMaxViol)
		}
		remaining -= d.dt
		if crossed {
			break
		}
	}

	rec.MarkBoundary()
	return nil
}
