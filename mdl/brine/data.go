// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brine

// SgNaClSolid is the specific gravity of solid halite
const SgNaClSolid = 2.16

// calibration data for the empirical correlations. rateCoef feeds the wall
// recession law r(ξ,T) = (a0·ξ + a1·ξ² + a2·ξ³)·exp(a3 + a4·T + a5·T²)
// [ft/h] with ξ the local undersaturation and T in °C. wtPctCoef feeds the
// density-to-weight-percent law w(sg) = c0 + c1·sg + c2·sg² [%].
var (

	// recession-rate law coefficients
	rateCoef = [6]float64{2.54e-2, 1.08e-2, -4.60e-3, -3.79e-1, 1.74e-2, -4.00e-5}

	// weight-percent law coefficients
	wtPctCoef = [3]float64{-199.023, 256.705, -57.427}

	// axes of the specific-gravity grid
	wtPctAxis = [15]float64{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 25, 26}
	tempAxis  = [10]float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}

	// specific gravity of NaCl brine indexed by (weight percent, temperature)
	sgGrid = [15][10]float64{
		{0.99980, 0.99970, 0.99820, 0.99570, 0.99220, 0.98800, 0.98320, 0.97780, 0.97180, 0.96530},
		{1.01390, 1.01380, 1.01230, 1.00980, 1.00630, 1.00210, 0.99730, 0.99190, 0.98590, 0.97940},
		{1.02820, 1.02810, 1.02660, 1.02410, 1.02060, 1.01640, 1.01160, 1.00620, 1.00020, 0.99370},
		{1.04271, 1.04261, 1.04111, 1.03861, 1.03511, 1.03091, 1.02611, 1.02071, 1.01471, 1.00821},
		{1.05741, 1.05731, 1.05581, 1.05331, 1.04981, 1.04561, 1.04081, 1.03541, 1.02941, 1.02291},
		{1.07232, 1.07222, 1.07072, 1.06822, 1.06472, 1.06052, 1.05572, 1.05032, 1.04432, 1.03782},
		{1.08743, 1.08733, 1.08583, 1.08333, 1.07983, 1.07563, 1.07083, 1.06543, 1.05943, 1.05293},
		{1.10274, 1.10264, 1.10114, 1.09864, 1.09514, 1.09094, 1.08614, 1.08074, 1.07474, 1.06824},
		{1.11825, 1.11815, 1.11665, 1.11415, 1.11065, 1.10645, 1.10165, 1.09625, 1.09025, 1.08375},
		{1.13396, 1.13386, 1.13236, 1.12986, 1.12636, 1.12216, 1.11736, 1.11196, 1.10596, 1.09946},
		{1.14988, 1.14978, 1.14828, 1.14578, 1.14228, 1.13808, 1.13328, 1.12788, 1.12188, 1.11538},
		{1.16600, 1.16590, 1.16440, 1.16190, 1.15840, 1.15420, 1.14940, 1.14400, 1.13800, 1.13150},
		{1.18232, 1.18222, 1.18072, 1.17822, 1.17472, 1.17052, 1.16572, 1.16032, 1.15432, 1.14782},
		{1.19055, 1.19045, 1.18895, 1.18645, 1.18295, 1.17875, 1.17395, 1.16855, 1.16255, 1.15605},
		{1.19884, 1.19874, 1.19724, 1.19474, 1.19124, 1.18704, 1.18224, 1.17684, 1.17084, 1.16434},
	}

	// saturation weight percent and specific gravity along the temperature axis
	wtPctMaxTab = [10]float64{26.28, 26.32, 26.38, 26.52, 26.67, 26.84, 27.03, 27.25, 27.50, 27.76}
	sgMaxTab    = [10]float64{1.2012, 1.2014, 1.2004, 1.1991, 1.1968, 1.1940, 1.1908, 1.1873, 1.1834, 1.1790}
)
