// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out writes simulation results as whitespace-delimited TST
// tables and reads them back for regression comparisons.
package out

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/dbhart/sansmic/sim"
)

// TstColumns lists the table columns in output order. Time is reported
// in days; volumes in barrels, flowrates in bbl/h, elevations in feet.
var TstColumns = []string{
	"t_d", "V_cav", "err_ode", "sg_out", "sg_ave", "V_insol", "z_insol",
	"z_obi", "V_vented", "Q_inj", "V_inj", "Q_fill", "V_fill",
}

// row returns the column values of one record
func row(r *sim.Record) []float64 {
	return []float64{
		r.T / 24.0, r.Vcav, r.ErrEst, r.SgOut, r.SgAve, r.Vinsol, r.Zinsol,
		r.Zobi, r.Vvent, r.Qinj, r.Vinj, r.Qfill, r.Vfill,
	}
}

// header renders the title and column header lines
func header(title string) *bytes.Buffer {
	b := new(bytes.Buffer)
	if title != "" {
		io.Ff(b, "# %s\n", title)
	}
	for i, c := range TstColumns {
		if i == 0 {
			io.Ff(b, "#%13s", c)
		} else {
			io.Ff(b, " %13s", c)
		}
	}
	io.Ff(b, "\n")
	return b
}

// render appends record rows to a buffer
func render(b *bytes.Buffer, recs []*sim.Record) {
	for _, r := range recs {
		for i, v := range row(r) {
			if i > 0 {
				io.Ff(b, " ")
			}
			io.Ff(b, "%13.6e", v)
		}
		io.Ff(b, "\n")
	}
}

// File streams records into a TST table on disk. It satisfies sim.Sink,
// so the stepping loop can hand it records stage by stage.
type File struct {
	f *os.File
	n int // records written
}

// Create opens a TST file and writes its header
func Create(path, title string) (o *File, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err = f.Write(header(title).Bytes()); err != nil {
		f.Close()
		return nil, err
	}
	return &File{f: f}, nil
}

// Flush appends one batch of records
func (o *File) Flush(recs []*sim.Record) error {
	b := new(bytes.Buffer)
	render(b, recs)
	if _, err := o.f.Write(b.Bytes()); err != nil {
		return err
	}
	o.n += len(recs)
	return nil
}

// Close closes the file
func (o *File) Close() error {
	return o.f.Close()
}

// Save writes a complete record sequence as one TST file
func Save(path, title string, recs []*sim.Record) error {
	b := header(title)
	render(b, recs)
	return os.WriteFile(path, b.Bytes(), 0644)
}

// Read loads a TST table. Comment lines starting with '#' are skipped;
// every data row must have exactly one value per column.
func Read(path string) (rows [][]float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	scn := bufio.NewScanner(f)
	lineno := 0
	for scn.Scan() {
		lineno++
		line := strings.TrimSpace(scn.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != len(TstColumns) {
			return nil, chk.Err("%s:%d: got %d values; want %d", path, lineno, len(fields), len(TstColumns))
		}
		vals := make([]float64, len(fields))
		for i, s := range fields {
			if vals[i], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, chk.Err("%s:%d: column %s: %v", path, lineno, TstColumns[i], err)
			}
		}
		rows = append(rows, vals)
	}
	if err = scn.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
