// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

// Record is one immutable snapshot of the simulation output. Volumes are
// in barrels, flowrates in bbl/h, elevations in feet and time in hours.
type Record struct {
	T        float64 // elapsed time
	Vcav     float64 // cavern volume
	ErrEst   float64 // relative step residual estimate
	SgOut    float64 // outlet brine specific gravity
	SgAve    float64 // volume-averaged brine specific gravity
	Vinsol   float64 // insoluble solid volume
	Zinsol   float64 // insoluble bed top elevation
	Zobi     float64 // oil-brine interface elevation
	Vvent    float64 // cumulative vented volume
	Qinj     float64 // injection flowrate
	Qfill    float64 // blanket fill flowrate
	Vinj     float64 // cumulative injected volume
	Vfill    float64 // cumulative fill volume
	Stage    int     // index of the stage that produced the record
	Boundary bool    // the record closes a stage
}

// Sink consumes flushed batches of records. It lives outside the stepping
// loop: the recorder only hands it records that are final.
type Sink interface {
	Flush(recs []*Record) error
}

// Recorder captures the append-only output sequence of a run
type Recorder struct {
	recs    []*Record
	sink    Sink
	flushed int // number of records already handed to the sink
}

// NewRecorder returns a recorder; sink may be nil
func NewRecorder(sink Sink) *Recorder {
	return &Recorder{sink: sink}
}

// Append adds one record to the sequence
func (o *Recorder) Append(r *Record) {
	o.recs = append(o.recs, r)
}

// MarkBoundary flags the most recent record as a stage boundary
func (o *Recorder) MarkBoundary() {
	if n := len(o.recs); n > 0 {
		o.recs[n-1].Boundary = true
	}
}

// Records returns the full ordered sequence
func (o *Recorder) Records() []*Record {
	return o.recs
}

// Last returns the most recent record, or nil
func (o *Recorder) Last() *Record {
	if n := len(o.recs); n > 0 {
		return o.recs[n-1]
	}
	return nil
}

// Flush hands records not yet seen by the sink over to it
func (o *Recorder) Flush() error {
	if o.sink == nil || o.flushed == len(o.recs) {
		return nil
	}
	batch := o.recs[o.flushed:]
	if err := o.sink.Flush(batch); err != nil {
		return err
	}
	o.flushed = len(o.recs)
	return nil
}
