// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_sched01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sched01. stage life cycle")

	s := NewScheduler(3)
	chk.IntAssert(int(s.State(0)), int(StagePending))

	// full pass
	chk.IntAssert(s.Next(), 0)
	chk.IntAssert(int(s.State(0)), int(StageActive))
	s.Complete()
	chk.IntAssert(s.Next(), 1)
	s.Complete()
	chk.IntAssert(s.Next(), 2)
	s.Complete()
	chk.IntAssert(s.Next(), -1)
	if !s.Completed() {
		tst.Errorf("schedule should be completed")
	}
	if s.Aborted() {
		tst.Errorf("schedule should not be aborted")
	}

	// abort terminates the schedule
	s = NewScheduler(3)
	chk.IntAssert(s.Next(), 0)
	s.Complete()
	chk.IntAssert(s.Next(), 1)
	s.Abort()
	chk.IntAssert(s.Next(), -1)
	chk.IntAssert(int(s.State(1)), int(StageAborted))
	chk.IntAssert(int(s.State(2)), int(StagePending))
	if s.Completed() {
		tst.Errorf("aborted schedule cannot be completed")
	}
	if !s.Aborted() {
		tst.Errorf("schedule should be aborted")
	}
}

func Test_ledger01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ledger01. residuals and escalation")

	led := NewLedger(1e-3, 3)

	// balanced step: injected = produced + dCav + dInsol + vented
	resid, violated, fatal := led.RecordStep(100, 60, 45, -5, 0)
	chk.Float64(tst, "balanced residual", 1e-12, resid, 0)
	if violated || fatal {
		tst.Errorf("balanced step must not violate")
	}

	// three consecutive violations escalate
	for i := 0; i < 2; i++ {
		_, violated, fatal = led.RecordStep(100, 60, 45, -5, 10)
		if !violated || fatal {
			tst.Errorf("violation %d should not be fatal yet", i+1)
		}
	}
	_, violated, fatal = led.RecordStep(100, 60, 45, -5, 10)
	if !violated || !fatal {
		tst.Errorf("third consecutive violation must be fatal")
	}
	chk.IntAssert(led.Violations, 3)

	// a clean step resets the consecutive counter
	led = NewLedger(1e-3, 3)
	led.RecordStep(100, 60, 45, -5, 10)
	led.RecordStep(100, 60, 45, -5, 10)
	led.RecordStep(100, 60, 45, -5, 0) // clean
	_, violated, fatal = led.RecordStep(100, 60, 45, -5, 10)
	if !violated || fatal {
		tst.Errorf("counter must restart after a clean step")
	}
	chk.IntAssert(led.Violations, 3)

	// cumulative totals
	led.Accumulate(500, 480, 0, 20)
	led.Accumulate(500, 470, 10, 20)
	chk.Float64(tst, "Vinj", 1e-12, led.Vinj, 1000)
	chk.Float64(tst, "Vprod", 1e-12, led.Vprod, 950)
	chk.Float64(tst, "Vvent", 1e-12, led.Vvent, 10)
	chk.Float64(tst, "Vfill", 1e-12, led.Vfill, 40)
}

func Test_rec01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rec01. recorder boundaries and flushing")

	rec := NewRecorder(nil)
	if rec.Last() != nil {
		tst.Errorf("empty recorder has no last record")
	}
	rec.MarkBoundary() // no-op on empty sequence

	rec.Append(&Record{T: 1})
	rec.Append(&Record{T: 2})
	rec.MarkBoundary()
	rec.MarkBoundary() // idempotent
	chk.IntAssert(len(rec.Records()), 2)
	if rec.Records()[0].Boundary {
		tst.Errorf("only the last record is a boundary")
	}
	if !rec.Last().Boundary {
		tst.Errorf("last record must be a boundary")
	}
	if err := rec.Flush(); err != nil { // nil sink
		tst.Errorf("flush with nil sink failed: %v", err)
	}
}
