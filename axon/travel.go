// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axon

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

// Events are bit flags for what happened during a step
type Events int32

const (
	// CrossSectionReached is when the action potential arrives at the cross section
	CrossSectionReached Events = 1 << iota

	// LingeringCompleted is when the action potential is done
	LingeringCompleted
)

// Has returns true if all of the given events are set
func (ev Events) Has(e Events) bool {
	return ev&e == e
}

// ShapeModes are the kinds of traveling action potential shape
type ShapeModes int32

const (
	// CurveShape is a ring across the body, while traveling
	CurveShape ShapeModes = iota

	// CircleShape is a circle around the cross section, while lingering
	CircleShape
)

func (sm ShapeModes) String() string {
	if sm == CircleShape {
		return "CircleShape"
	}
	return "CurveShape"
}

// Shape describes how to draw the action potential
type Shape struct {
	Mode ShapeModes

	// curve across the body (CurveShape)
	Curve Curve

	// circle center (CircleShape)
	Center math32.Vector2

	// circle radius (CircleShape)
	Radius float32
}

// APState is the restorable state of a traveling action potential
type APState struct {
	TravelRemaining float64
	LingerRemaining float64
}

// TravelingAP is an action potential moving along the axon body
type TravelingAP struct {

	// time left until reaching the cross section
	TravelRemaining float64

	// time left lingering once there
	LingerRemaining float64

	// present shape
	Shape Shape
}

// Lingering returns true once the cross section has been reached
func (ta *TravelingAP) Lingering() bool {
	return ta.TravelRemaining <= 0
}

// StepInTime advances the action potential by dt
func (ta *TravelingAP) StepInTime(am *Membrane, dt float64) Events {
	var ev Events
	if !ta.Lingering() {
		ta.TravelRemaining -= dt
		if ta.TravelRemaining <= 0 {
			ta.TravelRemaining = 0
			ev |= CrossSectionReached
		}
	} else {
		ta.LingerRemaining -= dt
		if ta.LingerRemaining <= 0 {
			ta.LingerRemaining = 0
			ev |= LingeringCompleted
		}
	}
	ta.UpdateShape(am)
	return ev
}

// UpdateShape recomputes the shape from the remaining times
func (ta *TravelingAP) UpdateShape(am *Membrane) {
	ap := &am.Params
	if ta.Lingering() {
		lp := float32(1 - ta.LingerRemaining/ap.LingerTime)
		ta.Shape = Shape{Mode: CircleShape,
			Radius: (ap.Diameter + ap.LingerGrowth*ap.Diameter*math32.Sin(math32.Pi*lp)) / 2}
		return
	}
	p := math32.Min(math32.Max(float32(1-ta.TravelRemaining/ap.TravelTime), 0), 1)
	e1 := errors.Log1(EvaluateCurve(am.Edge1, p))
	e2 := errors.Log1(EvaluateCurve(am.Edge2, p))
	d := e2.Sub(e1)
	span := d.Length()
	dir := d.Normal()
	// across the body, on the side facing the cross section
	n := math32.Vec2(-dir.Y, dir.X)
	if n.Dot(ap.VanishingPt) > 0 {
		n = n.MulScalar(-1)
	}
	bulge := span * (ap.BulgeStart + (ap.BulgeEnd-ap.BulgeStart)*math32.Pow(p, ap.BulgeExp))
	inset := span * ap.Inset * math32.Pow(p, ap.InsetExp)
	ta.Shape = Shape{Mode: CurveShape, Curve: Curve{
		Start: e1,
		Ctrl1: e1.Add(dir.MulScalar(inset)).Add(n.MulScalar(bulge)),
		Ctrl2: e2.Sub(dir.MulScalar(inset)).Add(n.MulScalar(bulge)),
		End:   e2,
	}}
}
