// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import "math"

// ConcParams are the nominal concentrations and the rates at which the
// readouts drift during and after an action potential.
type ConcParams struct {

	// nominal resting concentrations, mM
	NaOut float64 `def:"145"`
	NaIn  float64 `def:"10"`
	KOut  float64 `def:"4"`
	KIn   float64 `def:"140"`

	// rates of change per unit activation per msec while channels are active
	NaOutRate float64 `def:"7"`
	NaInRate  float64 `def:"0.4"`
	KOutRate  float64 `def:"0.05"`
	KInRate   float64 `def:"2"`

	// rate of return to nominal, per sec
	RestoreRate float64 `def:"1000"`

	// differences from nominal below this are snapped to nominal
	SnapThr float64 `def:"1e-6"`

	// delay on the activation readings driving the change, sec
	Delay float64 `def:"0.0001"`
}

func (cp *ConcParams) Defaults() {
	cp.NaOut = 145
	cp.NaIn = 10
	cp.KOut = 4
	cp.KIn = 140
	cp.NaOutRate = 7
	cp.NaInRate = 0.4
	cp.KOutRate = 0.05
	cp.KInRate = 2
	cp.RestoreRate = 1000
	cp.SnapThr = 1e-6
	cp.Delay = 0.0001
}

func (cp *ConcParams) Update() {
}

// Concentrations are the readouts of the ion concentrations on each side of the membrane, mM
type Concentrations struct {
	NaOut float64
	NaIn  float64
	KOut  float64
	KIn   float64
}

// SetNominal sets all to their resting values
func (cc *Concentrations) SetNominal(cp *ConcParams) {
	cc.NaOut = cp.NaOut
	cc.NaIn = cp.NaIn
	cc.KOut = cp.KOut
	cc.KIn = cp.KIn
}

// restore moves val toward nom, returning nom once close enough
func restore(val, nom, f, thr float64) float64 {
	val += (nom - val) * f
	if math.Abs(val-nom) < thr {
		return nom
	}
	return val
}

// Update drifts the readouts.  Sodium flows in while m3h is active, and
// potassium out while n4 is.  Otherwise each returns to nominal.
func (cc *Concentrations) Update(cp *ConcParams, m3h, n4, dt float64) {
	dtMs := dt * 1000
	f := math.Min(cp.RestoreRate*dt, 1)
	if m3h > 0 {
		cc.NaIn += m3h * cp.NaInRate * dtMs
		cc.NaOut -= m3h * cp.NaOutRate * dtMs
	} else {
		cc.NaIn = restore(cc.NaIn, cp.NaIn, f, cp.SnapThr)
		cc.NaOut = restore(cc.NaOut, cp.NaOut, f, cp.SnapThr)
	}
	if n4 > 0 {
		cc.KIn -= n4 * cp.KInRate * dtMs
		cc.KOut += n4 * cp.KOutRate * dtMs
	} else {
		cc.KIn = restore(cc.KIn, cp.KIn, f, cp.SnapThr)
		cc.KOut = restore(cc.KOut, cp.KOut, f, cp.SnapThr)
	}
}
