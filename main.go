// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/dbhart/sansmic/inp"
	"github.com/dbhart/sansmic/out"
	"github.com/dbhart/sansmic/sim"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// read input parameters
	fnamepath, fnkey := io.ArgToFilename(0, "", ".toml", true)
	verbose := io.ArgToBool(1, true)
	outpath := io.ArgToString(2, fnkey+".tst")

	// message
	if verbose {
		io.PfWhite("\nSansmic -- Solution Mining Stepping Simulator\n")
		io.Pf("Copyright 2025 The Sansmic Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"scenario path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"results path", "outpath", outpath,
		))
	}

	// scenario
	scn, err := inp.ReadScenario(fnamepath)
	if err != nil {
		chk.Panic("reading scenario failed:\n%v", err)
	}

	// results file
	sink, err := out.Create(outpath, scn.Title)
	if err != nil {
		chk.Panic("creating results file failed:\n%v", err)
	}
	defer sink.Close()

	// interrupts abort between steps, keeping results written so far
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// run simulation
	m, err := sim.New(scn, sink, verbose)
	if err != nil {
		chk.Panic("setting up the run failed:\n%v", err)
	}
	defer m.Close()
	if err := m.Run(ctx); err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
	if verbose {
		io.Pf("results written to %s\n", outpath)
	}
}
