// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package axon provides the geometry of the axon body and the traveling action
potential that moves along it toward the simulated cross section.

The cross section is a circle centered at the origin.  The body of the axon
recedes from it toward a vanishing point, and its two visible edges are
given by two fixed reference curves.  A traveling action potential is drawn
as a ring across the body whose endpoints slide along those curves.
*/
package axon

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Params are the membrane geometry and action potential timing parameters
type Params struct {

	// diameter of the cross section, nm
	Diameter float32 `def:"150"`

	// thickness of the membrane, nm
	Thickness float32 `def:"4"`

	// length of the visible axon body, as a multiple of Diameter
	BodyLength float32 `def:"1.5"`

	// direction from the cross section to the vanishing point, radians
	Tilt float32 `def:"0.7854"`

	// angle on either side of Tilt at which the body edges meet the cross section, radians
	EdgeAngle float32 `def:"1.4137"`

	// time for the action potential to travel down the body to the cross section, sec
	TravelTime float64 `def:"0.002"`

	// time the action potential lingers at the cross section, sec
	LingerTime float64 `def:"0.0005"`

	// fraction of the diameter by which the lingering circle grows at its largest
	LingerGrowth float32 `def:"0.1"`

	// control point bulge across the body at the start and end of travel,
	// as a fraction of the ring span
	BulgeStart float32 `def:"0.15"`
	BulgeEnd   float32 `def:"0.6"`

	// maximum control point inset along the ring, as a fraction of its span
	Inset float32 `def:"0.25"`

	// exponent on travel progress for the bulge
	BulgeExp float32 `def:"1.8"`

	// exponent on travel progress for the inset
	InsetExp float32 `def:"0.8"`

	// point the body recedes to
	VanishingPt math32.Vector2 `view:"-"`
}

func (ap *Params) Defaults() {
	ap.Diameter = 150
	ap.Thickness = 4
	ap.BodyLength = 1.5
	ap.Tilt = math32.Pi / 4
	ap.EdgeAngle = 0.45 * math32.Pi
	ap.TravelTime = 0.002
	ap.LingerTime = 0.0005
	ap.LingerGrowth = 0.1
	ap.BulgeStart = 0.15
	ap.BulgeEnd = 0.6
	ap.Inset = 0.25
	ap.BulgeExp = 1.8
	ap.InsetExp = 0.8
	ap.Update()
}

func (ap *Params) Update() {
	ln := ap.Diameter * ap.BodyLength
	ap.VanishingPt = math32.Vec2(ln*math32.Cos(ap.Tilt), ln*math32.Sin(ap.Tilt))
}

// Curve is a cubic bezier curve
type Curve struct {
	Start, Ctrl1, Ctrl2, End math32.Vector2
}

// EvaluateCurve returns the point at proportion t along the curve,
// which must be in [0,1].
func EvaluateCurve(c Curve, t float32) (math32.Vector2, error) {
	if t < 0 || t > 1 {
		return math32.Vector2{}, fmt.Errorf("axon.EvaluateCurve: proportion %g out of range [0,1]", t)
	}
	u := 1 - t
	p := c.Start.MulScalar(u * u * u)
	p = p.Add(c.Ctrl1.MulScalar(3 * u * u * t))
	p = p.Add(c.Ctrl2.MulScalar(3 * u * t * t))
	p = p.Add(c.End.MulScalar(t * t * t))
	return p, nil
}

// Membrane is the axon body and cross section, with at most one
// traveling action potential.
type Membrane struct {
	Params Params

	// edge of the body on the counter-clockwise side of the tilt
	Edge1 Curve

	// edge of the body on the clockwise side of the tilt
	Edge2 Curve

	// action potential in flight, nil if none
	AP *TravelingAP
}

// NewMembrane returns a membrane with default parameters
func NewMembrane() *Membrane {
	am := &Membrane{}
	am.Params.Defaults()
	am.Config()
	return am
}

// Config computes the body edge curves from the params
func (am *Membrane) Config() {
	ap := &am.Params
	ap.Update()
	am.Edge1 = am.edgeCurve(ap.Tilt + ap.EdgeAngle)
	am.Edge2 = am.edgeCurve(ap.Tilt - ap.EdgeAngle)
}

// edgeCurve runs from the vanishing point to where the body edge meets the
// cross section at the given angle, bowing slightly outward.
func (am *Membrane) edgeCurve(ang float32) Curve {
	ap := &am.Params
	rad := ap.Diameter/2 + ap.Thickness/2
	end := math32.Vec2(rad*math32.Cos(ang), rad*math32.Sin(ang))
	start := ap.VanishingPt
	d := end.Sub(start)
	out := end.Normal().MulScalar(d.Length() * 0.05)
	return Curve{
		Start: start,
		Ctrl1: start.Add(d.MulScalar(1.0 / 3)).Add(out),
		Ctrl2: start.Add(d.MulScalar(2.0 / 3)).Add(out),
		End:   end,
	}
}

// Reset removes any action potential in flight
func (am *Membrane) Reset() {
	am.AP = nil
}

// InitiateTravelingAP starts an action potential at the far end of the body.
// It is a bug to call this while one is in flight.
func (am *Membrane) InitiateTravelingAP() {
	if am.AP != nil {
		panic("axon.Membrane: traveling action potential already in flight")
	}
	am.AP = &TravelingAP{TravelRemaining: am.Params.TravelTime, LingerRemaining: am.Params.LingerTime}
	am.AP.UpdateShape(am)
}

// InFlight returns true while an action potential is traveling or lingering
func (am *Membrane) InFlight() bool {
	return am.AP != nil
}

// StepInTime advances the action potential, if any, returning the
// events that happened during the step.
func (am *Membrane) StepInTime(dt float64) Events {
	if am.AP == nil || dt <= 0 {
		return 0
	}
	ev := am.AP.StepInTime(am, dt)
	if ev.Has(LingeringCompleted) {
		am.AP = nil
	}
	return ev
}

// State returns the restorable state of the action potential, nil if none
func (am *Membrane) State() *APState {
	if am.AP == nil {
		return nil
	}
	return &APState{TravelRemaining: am.AP.TravelRemaining, LingerRemaining: am.AP.LingerRemaining}
}

// SetState restores a state returned by State
func (am *Membrane) SetState(st *APState) {
	if st == nil {
		am.AP = nil
		return
	}
	am.AP = &TravelingAP{TravelRemaining: st.TravelRemaining, LingerRemaining: st.LingerRemaining}
	am.AP.UpdateShape(am)
}
