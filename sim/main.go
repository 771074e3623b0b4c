// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim runs solution-mining scenarios: it advances a cavern
// state through the staged injection schedule, keeps the volume ledger
// and produces the step-by-step results table.
package sim

import (
	"context"
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/dbhart/sansmic/cavern"
	"github.com/dbhart/sansmic/inp"
	"github.com/dbhart/sansmic/mdl/brine"
)

// Main holds a scenario run
type Main struct {

	// input
	Scn *inp.Scenario // the scenario definition
	Mdl *brine.Model  // brine property correlations

	// run components
	State  *State
	Sched  *Scheduler
	Ledger *Ledger
	Rec    *Recorder
	intg   *integrator

	// outcome
	Status      Status // pending, complete or aborted
	FailedStage int    // index of the aborted stage, -1 otherwise

	// options
	ShowMsg bool

	closed bool
}

// New prepares a scenario run. The scenario must have been read through
// inp.ReadScenario or post-processed by the caller; it is re-validated
// here so that programmatically built scenarios fail early too.
func New(scn *inp.Scenario, sink Sink, verbose bool) (o *Main, err error) {

	if err = scn.Validate(); err != nil {
		return nil, newErr(KindConfiguration, -1, "%v", err)
	}

	geo, err := cavern.NewGeometry(scn.Geometry.Elev, scn.Geometry.Radius)
	if err != nil {
		return nil, newErr(KindConfiguration, -1, "%v", err)
	}
	bed, err := cavern.NewInsoluble(scn.InitialInsolVol, scn.Packing, geo)
	if err != nil {
		return nil, newErr(KindConfiguration, -1, "%v", err)
	}
	mdl, err := brine.New(scn.Settings.Strict)
	if err != nil {
		return nil, newErr(KindConfiguration, -1, "%v", err)
	}

	sg := make([]float64, geo.N())
	for i := range sg {
		sg[i] = scn.InitialSg
	}

	o = &Main{
		Scn: scn,
		Mdl: mdl,
		State: &State{
			Geo:   geo,
			Sg:    sg,
			Bed:   bed,
			Voil:  geo.VolumeAbove(scn.ObiElev),
			Zobi:  scn.ObiElev,
			TempC: scn.TempC,
		},
		Sched:       NewScheduler(len(scn.Stages)),
		Ledger:      NewLedger(scn.Settings.MbTol, scn.Settings.MbMaxViol),
		Rec:         NewRecorder(sink),
		Status:      StatusPending,
		FailedStage: -1,
		ShowMsg:     verbose,
	}
	o.intg = newIntegrator(mdl, &scn.Settings, scn.InsolFrac)
	return o, nil
}

// Run executes all stages in order. A stage failure aborts the run but
// the records accumulated so far remain available.
func (o *Main) Run(ctx context.Context) (err error) {

	cputime := time.Now()
	defer func() { o.onexit(cputime, err) }()

	// initial snapshot at t=0
	o.Rec.Append(&Record{
		T:      0,
		Vcav:   o.State.Geo.Volume(),
		SgOut:  o.State.SgAverage(),
		SgAve:  o.State.SgAverage(),
		Vinsol: o.State.Bed.Vol,
		Zinsol: o.State.Bed.Ztop,
		Zobi:   o.State.Zobi,
		Stage:  -1,
	})

	for {
		idx := o.Sched.Next()
		if idx < 0 {
			break
		}
		stg := o.Scn.Stages[idx]
		if o.ShowMsg {
			io.Pf("> running stage %d: %q (%s, %g h)\n", idx, stg.Title, stg.Kind, stg.Hours)
		}
		if err = o.intg.runStage(ctx, o.State, stg, idx, o.Ledger, o.Rec); err != nil {
			o.Sched.Abort()
			o.Status = StatusAborted
			o.FailedStage = idx
			return err
		}
		o.Sched.Complete()
		if ferr := o.Rec.Flush(); ferr != nil {
			o.Status = StatusAborted
			o.FailedStage = idx
			err = newErr(KindConfiguration, idx, "flushing records: %v", ferr)
			return err
		}
	}

	o.Status = StatusComplete
	return nil
}

// Records returns all step records appended so far
func (o *Main) Records() []*Record {
	return o.Rec.Records()
}

// Close flushes buffered records. It is safe to call more than once.
func (o *Main) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	return o.Rec.Flush()
}

// onexit prints the run summary
func (o *Main) onexit(cputime time.Time, err error) {
	if !o.ShowMsg {
		return
	}
	if err != nil {
		io.Pfred("run aborted: %v\n", err)
	}
	io.Pf("\nfinal t      = %v h\n", o.State.T)
	io.Pf("cavern vol   = %v bbl\n", o.State.Geo.Volume())
	io.Pf("injected     = %v bbl\n", o.Ledger.Vinj)
	io.Pf("produced     = %v bbl\n", o.Ledger.Vprod)
	io.Pf("cpu time     = %v\n", time.Since(cputime))
}
