// Copyright 2025 The Sansmic Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "github.com/cpmech/gosl/chk"

// StageState is the life-cycle state of one scheduled stage
type StageState int

const (
	StagePending   StageState = iota // not yet started
	StageActive                      // currently stepping
	StageCompleted                   // stop condition satisfied
	StageAborted                     // fatal error while stepping
)

// String returns the name of the stage state
func (s StageState) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageActive:
		return "active"
	case StageCompleted:
		return "completed"
	case StageAborted:
		return "aborted"
	}
	return "unknown"
}

// Scheduler sequences the stages of a schedule. Stages run in insertion
// order; an aborted stage leaves all downstream stages pending.
type Scheduler struct {
	states []StageState
	active int // index of the active stage, -1 when none
}

// NewScheduler returns a scheduler for n stages
func NewScheduler(n int) *Scheduler {
	return &Scheduler{states: make([]StageState, n), active: -1}
}

// Next activates the next pending stage and returns its index, or -1 when
// every stage has finished or the schedule is aborted
func (o *Scheduler) Next() int {
	if o.active >= 0 {
		chk.Panic("cannot activate a stage while stage %d is active", o.active)
	}
	for i, s := range o.states {
		switch s {
		case StageAborted:
			return -1
		case StagePending:
			o.states[i] = StageActive
			o.active = i
			return i
		}
	}
	return -1
}

// Complete marks the active stage as completed
func (o *Scheduler) Complete() {
	if o.active < 0 {
		chk.Panic("no stage is active")
	}
	o.states[o.active] = StageCompleted
	o.active = -1
}

// Abort marks the active stage as aborted, terminating the schedule
func (o *Scheduler) Abort() {
	if o.active < 0 {
		chk.Panic("no stage is active")
	}
	o.states[o.active] = StageAborted
	o.active = -1
}

// State returns the state of stage i
func (o *Scheduler) State(i int) StageState {
	return o.states[i]
}

// Completed reports whether every stage completed
func (o *Scheduler) Completed() bool {
	for _, s := range o.states {
		if s != StageCompleted {
			return false
		}
	}
	return true
}

// Aborted reports whether any stage aborted
func (o *Scheduler) Aborted() bool {
	for _, s := range o.states {
		if s == StageAborted {
			return true
		}
	}
	return false
}
