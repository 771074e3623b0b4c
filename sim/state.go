// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/dbhart/sansmic/cavern"

// State is the live simulation state. Exactly one instance exists per run
// and only the step integrator mutates it; records hold copied values.
type State struct {
	T      float64           // elapsed time [h]
	Geo    *cavern.Geometry  // cavern wall profile
	Sg     []float64         // brine specific gravity per geometry node
	Bed    *cavern.Insoluble // sediment bed
	Voil   float64           // blanket oil volume [bbl]
	Ullage float64           // unfilled void volume [bbl]
	Zobi   float64           // oil-brine interface elevation [ft]
	TempC  float64           // cavern temperature [°C]
}

// SgAverage returns the volume-weighted average brine specific gravity
func (o *State) SgAverage() float64 {
	num, den := 0.0, 0.0
	for i, sg := range o.Sg {
		v := o.Geo.BandVolume(i)
		num += sg * v
		den += v
	}
	if den == 0 {
		return 0
	}
	return num / den
}
