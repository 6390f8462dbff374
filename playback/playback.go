// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package playback provides a generic record and playback component that lets
a simulation be scrubbed backward and forward through its recorded history.

The simulation supplies a Target that advances itself, takes a snapshot of
its state, and restores a snapshot.  The Recorder only manages the mode,
the time cursor and the history of snapshots.
*/
package playback

import (
	"fmt"
	"sort"

	"cogentcore.org/core/math32/minmax"
)

// Modes are the mutually exclusive modes of a Recorder
type Modes int32

const (
	// Live advances the target without recording
	Live Modes = iota

	// Record advances the target and records a snapshot at each step
	Record

	// Playback does not advance the target: the time is moved through the
	// history and the nearest snapshot is restored
	Playback

	ModesN
)

func (md Modes) String() string {
	switch md {
	case Live:
		return "Live"
	case Record:
		return "Record"
	case Playback:
		return "Playback"
	}
	return fmt.Sprintf("Modes(%d)", int32(md))
}

// Target is a simulation that can be recorded and played back
type Target[S any] interface {

	// StepInTime advances the simulation by dt
	StepInTime(dt float64)

	// Snapshot returns a self-contained copy of the present state
	Snapshot() S

	// Restore makes the present state match a snapshot
	Restore(st S)
}

// DataPoint is one recorded snapshot
type DataPoint[S any] struct {
	Time  float64
	State S
}

// Recorder manages mode, time and recorded history for a Target
type Recorder[S any] struct {

	// present mode
	Mode Modes

	// time cursor, sec
	Time float64

	// false when paused, or when playback has reached the end
	Playing bool

	// true if the last time change in playback moved backward
	Backward bool

	// maximum number of snapshots kept
	MaxRecordPoints int

	// recorded snapshots in time order
	History []DataPoint[S]

	// simulation being recorded
	Target Target[S] `view:"-"`

	// called after the mode changes, with the previous and new modes
	OnModeChange func(prev, cur Modes) `view:"-"`
}

// NewRecorder returns a Live, playing recorder for the target
func NewRecorder[S any](tg Target[S], maxPts int) *Recorder[S] {
	return &Recorder[S]{Target: tg, MaxRecordPoints: maxPts, Playing: true}
}

// Reset clears the history and returns to Live mode, playing
func (rc *Recorder[S]) Reset() {
	rc.ClearHistory()
	rc.Playing = true
	rc.Backward = false
	rc.SetMode(Live)
}

// IsFull returns true when no more snapshots will be recorded
func (rc *Recorder[S]) IsFull() bool {
	return len(rc.History) >= rc.MaxRecordPoints
}

// IsRecording returns true in Record mode
func (rc *Recorder[S]) IsRecording() bool { return rc.Mode == Record }

// IsPlayback returns true in Playback mode
func (rc *Recorder[S]) IsPlayback() bool { return rc.Mode == Playback }

// IsLive returns true in Live mode
func (rc *Recorder[S]) IsLive() bool { return rc.Mode == Live }

// StepInTime advances according to the mode.  dt can be negative in
// Playback mode, to play backward.  Nothing happens when not playing.
func (rc *Recorder[S]) StepInTime(dt float64) {
	if !rc.Playing {
		return
	}
	switch rc.Mode {
	case Live:
		if dt <= 0 {
			return
		}
		rc.Time += dt
		rc.Target.StepInTime(dt)
	case Record:
		if dt <= 0 {
			return
		}
		rc.Time += dt
		rc.Target.StepInTime(dt)
		if !rc.IsFull() {
			rc.addPoint()
		}
	case Playback:
		if len(rc.History) == 0 {
			return
		}
		rng := rc.TimeRange()
		switch {
		case dt > 0:
			if rc.Time < rng.Max {
				rc.SetTime(min(rc.Time+dt, rng.Max))
			} else {
				rc.Playing = false
			}
		case dt < 0:
			if rc.Time > rng.Min {
				rc.SetTime(max(rc.Time+dt, rng.Min))
			}
		}
	}
}

// addPoint appends a snapshot at the present time.  It is a bug for the
// time to be at or before the last recorded one.
func (rc *Recorder[S]) addPoint() {
	if n := len(rc.History); n > 0 && rc.Time <= rc.History[n-1].Time {
		panic(fmt.Sprintf("playback.Recorder: snapshot at %g is not after the last one at %g", rc.Time, rc.History[n-1].Time))
	}
	rc.History = append(rc.History, DataPoint[S]{Time: rc.Time, State: rc.Target.Snapshot()})
}

// SetTime moves the time cursor.  In Playback mode the nearest snapshot is
// restored, and in Record mode the history from t on is dropped.
func (rc *Recorder[S]) SetTime(t float64) {
	rc.Backward = t < rc.Time
	rc.Time = t
	if rc.Mode == Record {
		rc.ClearRemainder()
		return
	}
	if rc.Mode != Playback || len(rc.History) == 0 {
		return
	}
	rc.Target.Restore(rc.History[rc.NearestIndex(t)].State)
}

// NearestIndex returns the index of the snapshot closest in time to t,
// taking the earlier one on a tie.  Returns -1 if there is no history.
func (rc *Recorder[S]) NearestIndex(t float64) int {
	n := len(rc.History)
	if n == 0 {
		return -1
	}
	i := sort.Search(n, func(i int) bool { return rc.History[i].Time >= t })
	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	}
	if t-rc.History[i-1].Time <= rc.History[i].Time-t {
		return i - 1
	}
	return i
}

// TimeRange returns the range of recorded times
func (rc *Recorder[S]) TimeRange() minmax.F64 {
	var rng minmax.F64
	if len(rc.History) == 0 {
		return rng
	}
	rng.Set(rc.History[0].Time, rc.History[len(rc.History)-1].Time)
	return rng
}

// SetMode switches mode.  Entering Record discards any recorded future from
// the present time on, which is there after scrubbing back in Playback,
// whether or not Live came in between.  Record is always playing.
func (rc *Recorder[S]) SetMode(md Modes) {
	prev := rc.Mode
	if md == Record {
		rc.ClearRemainder()
		rc.Playing = true
	}
	rc.Mode = md
	if prev != md && rc.OnModeChange != nil {
		rc.OnModeChange(prev, md)
	}
}

// SetLive switches to Live mode
func (rc *Recorder[S]) SetLive() { rc.SetMode(Live) }

// SetRecord switches to Record mode
func (rc *Recorder[S]) SetRecord() { rc.SetMode(Record) }

// SetPlayback switches to Playback mode
func (rc *Recorder[S]) SetPlayback() { rc.SetMode(Playback) }

// ClearRemainder removes all snapshots at or after the present time
func (rc *Recorder[S]) ClearRemainder() {
	i := sort.Search(len(rc.History), func(i int) bool { return rc.History[i].Time >= rc.Time })
	clear(rc.History[i:])
	rc.History = rc.History[:i]
}

// ClearHistory removes all snapshots and sets the time back to 0
func (rc *Recorder[S]) ClearHistory() {
	rc.History = nil
	rc.Time = 0
}

// Rewind moves to the earliest recorded time
func (rc *Recorder[S]) Rewind() {
	if len(rc.History) == 0 {
		return
	}
	rc.SetTime(rc.History[0].Time)
}
