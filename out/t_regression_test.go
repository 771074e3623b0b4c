// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"context"
	"flag"
	"os"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/dbhart/sansmic/inp"
	"github.com/dbhart/sansmic/sim"
)

var update = flag.Bool("update", false, "regenerate the golden baseline table")

func Test_golden01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("golden01. baseline scenario regression")

	scn, err := inp.ReadScenario("../data/baseline.toml")
	if err != nil {
		tst.Fatalf("reading baseline scenario: %v", err)
	}
	m, err := sim.New(scn, nil, false)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if err := m.Run(context.Background()); err != nil {
		tst.Fatalf("Run failed: %v", err)
	}
	recs := m.Records()
	if len(recs) < 2 {
		tst.Fatalf("baseline run produced no steps")
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].T <= recs[i-1].T {
			tst.Fatalf("time must be strictly increasing at record %d", i)
		}
	}

	// regeneration happens only on explicit request; a missing golden
	// table is an error, never a reason to write one
	golden := "../data/baseline.tst"
	if *update {
		if err := Save(golden, scn.Title, recs); err != nil {
			tst.Fatalf("writing golden table: %v", err)
		}
		io.Pf("golden table regenerated: %s (%d records)\n", golden, len(recs))
		return
	}
	if _, serr := os.Stat(golden); os.IsNotExist(serr) {
		tst.Fatalf("golden table %s is missing; regenerate it with: go test -run golden -update", golden)
	}

	want, err := Read(golden)
	if err != nil {
		tst.Fatalf("reading golden table: %v", err)
	}
	chk.IntAssert(len(want), len(recs))
	for i, r := range recs {
		got := row(r)
		for j := range got {
			tol := 1e-6 * (1 + absf(want[i][j]))
			chk.Float64(tst, io.Sf("row %d %s", i, TstColumns[j]), tol, got[j], want[i][j])
		}
	}
}
