// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/cpmech/gosl/io"

// Kind classifies simulation failures
type Kind int

const (
	KindNone                Kind = iota
	KindConfiguration            // invalid scenario; raised before any stepping
	KindCorrelationRange         // lookup outside the calibrated domain in strict mode
	KindMassBalance              // repeated mass-balance violations
	KindNumericalDivergence      // step stays invalid after shortening attempts
	KindCanceled                 // caller requested cancellation between steps
)

// String returns the name of the error kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfiguration:
		return "configuration"
	case KindCorrelationRange:
		return "correlation-range"
	case KindMassBalance:
		return "mass-balance"
	case KindNumericalDivergence:
		return "numerical-divergence"
	case KindCanceled:
		return "canceled"
	}
	return io.Sf("kind(%d)", int(k))
}

// Error is a classified simulation failure, carrying the index of the
// stage that failed (-1 when no stage was active)
type Error struct {
	Kind  Kind
	Stage int
	Msg   string
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Stage < 0 {
		return io.Sf("%s error: %s", e.Kind, e.Msg)
	}
	return io.Sf("%s error in stage %d: %s", e.Kind, e.Stage, e.Msg)
}

// newErr returns a classified error
func newErr(kind Kind, stage int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Stage: stage, Msg: io.Sf(format, args...)}
}

// Status is the terminal state of a run
type Status int

const (
	StatusPending  Status = iota // not yet run
	StatusComplete               // every stage completed
	StatusAborted                // a stage aborted; downstream stages skipped
)

// String returns the name of the run status
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusAborted:
		return "aborted"
	}
	return io.Sf("status(%d)", int(s))
}
