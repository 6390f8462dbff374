// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package delay provides a fixed-capacity ring buffer of values tagged with the
duration of the step that produced them, which answers the question
"what was this value approximately T seconds ago".
*/
package delay

import "math"

// DiffResolution is the tolerance used when deciding whether two
// step durations are the same.
const DiffResolution = 1e-12

// Entry is one recorded value and the duration of the step it was recorded for.
type Entry struct {
	Value float64
	Step  float64
}

// Buffer is a circular buffer of Entry values.  Capacity is fixed at
// construction from the maximum delay and the minimum expected step.
// Once it has wrapped, the oldest entry is overwritten by each new one.
type Buffer struct {

	// entries in ring order
	Entries []Entry

	// index where the next value will be written
	Head int

	// index of the oldest value
	Tail int

	// true until the buffer has wrapped around once
	Filling bool

	// true if every stored step duration is the same
	AllStepsEqual bool

	// most recent step duration, -1 if none
	PrevStep float64

	// number of consecutive adds at PrevStep
	CountAtStep int
}

// NewBuffer returns a buffer able to hold maxDelay worth of values
// recorded at steps no smaller than minStep.
func NewBuffer(maxDelay, minStep float64) *Buffer {
	n := int(math.Ceil(maxDelay / minStep))
	if n < 1 {
		n = 1
	}
	db := &Buffer{Entries: make([]Entry, n)}
	db.Clear()
	return db
}

// Cap returns the fixed number of entries the buffer holds.
func (db *Buffer) Cap() int {
	return len(db.Entries)
}

// Len returns the number of entries currently stored.
func (db *Buffer) Len() int {
	if !db.Filling {
		return len(db.Entries)
	}
	return db.Head
}

// Clear resets to an empty, filling state.
func (db *Buffer) Clear() {
	db.Head = 0
	db.Tail = 0
	db.Filling = true
	db.AllStepsEqual = true
	db.PrevStep = -1
	db.CountAtStep = 0
}

// AddValue appends a value recorded over a step of the given duration,
// overwriting the oldest entry once full.
func (db *Buffer) AddValue(val, step float64) {
	n := len(db.Entries)
	db.Entries[db.Head] = Entry{Value: val, Step: step}
	db.Head = (db.Head + 1) % n
	if db.Filling && db.Head == 0 {
		db.Filling = false
	}
	if !db.Filling {
		// once full, the oldest entry is the next one to be overwritten
		db.Tail = db.Head
	}
	if db.PrevStep < 0 || math.Abs(step-db.PrevStep) > DiffResolution {
		db.PrevStep = step
		db.CountAtStep = 1
	} else if db.CountAtStep < n {
		db.CountAtStep++
	}
	db.AllStepsEqual = db.CountAtStep >= db.Len()
}

// IsEmpty returns true if nothing has been added since the last Clear.
func (db *Buffer) IsEmpty() bool {
	return db.Filling && db.Head == db.Tail
}

// DelayedValue returns the value recorded approximately delay seconds ago.
// The most recent entry counts as one step of delay, as the buffer never
// holds an undelayed value.  If not enough history exists, the oldest value
// is returned.  An empty buffer returns 0.  No interpolation is done.
func (db *Buffer) DelayedValue(delay float64) float64 {
	if db.IsEmpty() {
		return 0
	}
	n := len(db.Entries)
	if db.AllStepsEqual {
		off := int(math.Round(delay / db.PrevStep))
		if off < 1 {
			off = 1
		}
		if (db.Filling && off > db.Head) || off > n {
			return db.Entries[db.Tail].Value
		}
		idx := db.Head - off
		if idx < 0 {
			idx += n
		}
		return db.Entries[idx].Value
	}
	idx := db.Head - 1
	if idx < 0 {
		idx = n - 1
	}
	acc := 0.0
	for {
		acc += db.Entries[idx].Step
		if acc >= delay || idx == db.Tail {
			break
		}
		idx--
		if idx < 0 {
			idx = n - 1
		}
	}
	return db.Entries[idx].Value
}
