// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "math"

// Ledger keeps the running fluid-balance totals and checks the per-step
// closure residual. A violated step is a diagnostic, not a failure;
// MbMaxViol consecutive violations indicate divergence and become fatal.
type Ledger struct {

	// configuration
	Tol       float64 // relative residual tolerance per step
	MbMaxViol int     // consecutive violations before fatal

	// cumulative totals [bbl]
	Vinj  float64 // water injected
	Vprod float64 // brine produced
	Vvent float64 // brine vented
	Vfill float64 // blanket oil filled

	// diagnostics
	Violations int // total number of violated steps
	consec     int // current run of consecutive violations
}

// NewLedger returns a ledger with the given tolerance and escalation count
func NewLedger(tol float64, mbMaxViol int) *Ledger {
	return &Ledger{Tol: tol, MbMaxViol: mbMaxViol}
}

// RecordStep updates the closure bookkeeping for one step and returns the
// step residual. injected aggregates every volume entering the liquid
// inventory (water, blanket fill and dissolved salt); dCav is the cavern
// void growth net of ullage; dInsol is the liquid-storage change due to
// the sediment bed (negative while the bed grows). fatal reports that the
// consecutive-violation threshold has been crossed.
func (o *Ledger) RecordStep(injected, produced, dCav, dInsol, vented float64) (resid float64, violated, fatal bool) {
	resid = injected - produced - dCav - dInsol - vented
	rel := math.Abs(resid) / math.Max(math.Abs(injected), 1e-12)
	if rel > o.Tol {
		o.Violations++
		o.consec++
		violated = true
		if o.consec >= o.MbMaxViol {
			fatal = true
		}
		return
	}
	o.consec = 0
	return
}

// Accumulate adds one step's stream volumes to the cumulative totals
func (o *Ledger) Accumulate(injected, produced, vented, filled float64) {
	o.Vinj += injected
	o.Vprod += produced
	o.Vvent += vented
	o.Vfill += filled
}
