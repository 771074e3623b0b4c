// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cavern

import "github.com/cpmech/gosl/chk"

// Insoluble tracks the sediment bed at the cavern floor. Solid volume only
// ever grows; the bed-top elevation is derived from the bulk volume, which
// accounts for the packing fraction of the settled material.
type Insoluble struct {
	Vol     float64 // solid sediment volume [bbl]
	Packing float64 // solid fraction of the settled bed, in (0,1]
	Ztop    float64 // bed top elevation [ft]
}

// NewInsoluble returns a sediment bed tracker with the given initial solid
// volume, computing the initial bed-top elevation from the geometry
func NewInsoluble(vol, packing float64, g *Geometry) (o *Insoluble, err error) {
	if vol < 0 {
		return nil, chk.Err("initial insoluble volume is negative: %g", vol)
	}
	if packing <= 0 || packing > 1 {
		return nil, chk.Err("packing fraction %g outside (0,1]", packing)
	}
	o = &Insoluble{Vol: vol, Packing: packing}
	o.Ztop = g.ElevAtVolume(o.BulkVolume())
	return
}

// BulkVolume returns the bed bulk volume: solid volume plus pore space [bbl]
func (o *Insoluble) BulkVolume() float64 {
	return o.Vol / o.Packing
}

// Accumulate grows the solid sediment volume by dv and recomputes the
// bed-top elevation. Sediment is never removed: dv must be non-negative.
func (o *Insoluble) Accumulate(dv float64, g *Geometry) error {
	if dv < 0 {
		return chk.Err("insoluble accumulation is negative: %g", dv)
	}
	o.Vol += dv
	o.Ztop = g.ElevAtVolume(o.BulkVolume())
	return nil
}
