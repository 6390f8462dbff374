// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart holds the membrane potential trace shown on the
// potential chart: a fixed time span of (time, value) points.
package chart

import (
	"fmt"

	"cogentcore.org/core/math32/minmax"
)

// Point is one chart point
type Point struct {

	// time, msec since the start of the trace
	Time float32

	// membrane potential, mV
	Value float32
}

// Trace is a time-ordered series of points over a fixed span
type Trace struct {

	// time span covered by the chart, msec
	Span float32 `def:"25"`

	// points in time order
	Points []Point

	// range of values seen
	Range minmax.F32
}

// NewTrace returns an empty trace covering span msec
func NewTrace(span float32) *Trace {
	tr := &Trace{Span: span}
	tr.Clear()
	return tr
}

// Clear removes all points
func (tr *Trace) Clear() {
	tr.Points = tr.Points[:0]
	tr.Range.SetInfinity()
}

// IsFull returns true once the span has been covered
func (tr *Trace) IsFull() bool {
	n := len(tr.Points)
	return n > 0 && tr.Points[n-1].Time-tr.Points[0].Time >= tr.Span
}

// AddPoint adds a point, returning false if the span is already covered.
// It is a bug to add a point earlier than the first one.
func (tr *Trace) AddPoint(tm, val float32) bool {
	if len(tr.Points) > 0 && tm < tr.Points[0].Time {
		panic(fmt.Sprintf("chart.Trace: point at %g is before the first point at %g", tm, tr.Points[0].Time))
	}
	if tr.IsFull() {
		return false
	}
	tr.Points = append(tr.Points, Point{Time: tm, Value: val})
	tr.fit(val)
	return true
}

// TruncateAfter removes all points later than tm, used when the trace is
// restored to an earlier time.
func (tr *Trace) TruncateAfter(tm float32) {
	i := len(tr.Points)
	for i > 0 && tr.Points[i-1].Time > tm {
		i--
	}
	tr.Points = tr.Points[:i]
	tr.Range.SetInfinity()
	for _, pt := range tr.Points {
		tr.fit(pt.Value)
	}
}

// fit expands the range to include val
func (tr *Trace) fit(val float32) {
	tr.Range.Min = min(tr.Range.Min, val)
	tr.Range.Max = max(tr.Range.Max, val)
}
