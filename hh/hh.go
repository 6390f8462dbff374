// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hh provides a modified Hodgkin-Huxley conductance model of a patch of
axon membrane, integrated with a fixed internal step that is decoupled from
the (variable) step of the caller.

Internally the model uses the classic Hodgkin-Huxley conventions: voltage in mV
relative to rest with the sign inverted, time in msec.  Externally the membrane
voltage is reported in volts with the usual sign convention, and time is in
seconds of simulation time.

The sodium and potassium activation products (m3h and n4), which drive both
the currents and the openness of the gated channels, are not computed from the
gating variables but from fixed gaussian pulses in the time since the last
stimulus, which gives a consistent, visually clean action potential.
*/
package hh

import (
	"math"

	"github.com/emer/membrane/delay"
)

// Params are the Hodgkin-Huxley model parameters
type Params struct {

	// fixed internal integration step, in msec
	StepMs float64 `def:"0.005"`

	// resting membrane potential, in mV (positive, subtracted in conversion)
	RestingV float64 `def:"65"`

	// membrane capacitance
	Cm float64 `def:"1"`

	// sodium reversal potential offset, internal convention
	Vna float64 `def:"-115"`

	// potassium reversal potential offset, internal convention
	Vk float64 `def:"12"`

	// leak reversal potential offset, internal convention
	Vl float64 `def:"0"`

	// maximal sodium conductance
	Gna float64 `def:"120"`

	// maximal potassium conductance
	Gk float64 `def:"36"`

	// leak conductance
	Gl float64 `def:"0.3"`

	// depolarizing offset added by Stimulate, in volts
	StimV float64 `def:"0.015"`

	// activation products below this are set to 0
	SnapThr float64 `def:"1e-5"`

	// m3h pulse amplitude
	M3hAmp float64 `def:"0.3"`

	// m3h pulse center, msec since action potential
	M3hCenter float64 `def:"1"`

	// m3h pulse width
	M3hWidth float64 `def:"0.2"`

	// n4 pulse amplitude
	N4Amp float64 `def:"0.55"`

	// n4 pulse center, msec since action potential
	N4Center float64 `def:"1.75"`

	// n4 pulse width
	N4Width float64 `def:"0.55"`

	// maximum delay available from the delayed activation readings, in seconds
	MaxDelay float64 `def:"0.001"`

	// smallest caller step expected, in seconds -- sizes the delay buffers
	MinStep float64 `def:"1.6667e-6"`
}

func (hp *Params) Defaults() {
	hp.StepMs = 0.005
	hp.RestingV = 65
	hp.Cm = 1
	hp.Vna = -115
	hp.Vk = 12
	hp.Vl = 0
	hp.Gna = 120
	hp.Gk = 36
	hp.Gl = 0.3
	hp.StimV = 0.015
	hp.SnapThr = 1e-5
	hp.M3hAmp = 0.3
	hp.M3hCenter = 1
	hp.M3hWidth = 0.2
	hp.N4Amp = 0.55
	hp.N4Center = 1.75
	hp.N4Width = 0.55
	hp.MaxDelay = 0.001
	hp.MinStep = 1.0 / 60 / 1000 / 10
}

// M3hFromTime returns the sodium activation product as a function of
// msec since the last action potential.
func (hp *Params) M3hFromTime(tsap float64) float64 {
	m3h := hp.M3hAmp * math.Exp(-1/hp.M3hWidth*math.Pow(tsap-hp.M3hCenter, 2))
	if m3h < hp.SnapThr {
		return 0
	}
	return m3h
}

// N4FromTime returns the potassium activation product as a function of
// msec since the last action potential.
func (hp *Params) N4FromTime(tsap float64) float64 {
	n4 := hp.N4Amp * math.Exp(-1/hp.N4Width*math.Pow(tsap-hp.N4Center, 2))
	if n4 < hp.SnapThr {
		return 0
	}
	return n4
}

// State is the restorable state of the model.  The delay buffers are
// shared by reference and must not be modified by the holder.
type State struct {
	M, H, N     float64
	V           float64
	TimeSinceAP float64
	M3hDelay    *delay.Buffer
	N4Delay     *delay.Buffer
}

// Model is the Hodgkin-Huxley integrator
type Model struct {
	Params Params

	// membrane potential, internal convention (mV from rest, inverted sign)
	V float64

	// gating variables
	M, H, N float64

	// rate constants, recomputed from V every step
	Am, Bm, Ah, Bh, An, Bn float64

	// sodium activation product (proxy for sodium channel opening)
	M3h float64

	// potassium activation product (proxy for potassium channel opening)
	N4 float64

	// ionic currents, internal convention
	NaI, KI, LeakI float64

	// elapsed simulated time, in msec
	ElapsedMs float64

	// msec since the last stimulus, +Inf if none
	TimeSinceAP float64

	// accumulated fraction of an internal step not yet integrated, in msec
	Remainder float64

	m3hDelay *delay.Buffer
	n4Delay  *delay.Buffer
}

// NewModel returns a new model at rest with default parameters
func NewModel() *Model {
	hm := &Model{}
	hm.Params.Defaults()
	hm.Reset()
	return hm
}

// Reset restores the steady state values at the resting potential
// and clears the delay buffers, reallocating them if the delay params changed.
func (hm *Model) Reset() {
	hp := &hm.Params
	if hm.m3hDelay == nil || hm.m3hDelay.Cap() != delayCap(hp) {
		hm.m3hDelay = delay.NewBuffer(hp.MaxDelay, hp.MinStep)
		hm.n4Delay = delay.NewBuffer(hp.MaxDelay, hp.MinStep)
	}
	hm.m3hDelay.Clear()
	hm.n4Delay.Clear()
	hm.V = 0
	hm.rates()
	hm.N = hm.An / (hm.An + hm.Bn)
	hm.M = hm.Am / (hm.Am + hm.Bm)
	hm.H = hm.Ah / (hm.Ah + hm.Bh)
	hm.TimeSinceAP = math.Inf(1)
	hm.ElapsedMs = 0
	hm.Remainder = 0
	hm.activation()
	hm.currents()
}

func delayCap(hp *Params) int {
	n := int(math.Ceil(hp.MaxDelay / hp.MinStep))
	if n < 1 {
		n = 1
	}
	return n
}

// rateFrac computes a*x / (exp(x/10) - 1), using the limit at x == 0
func rateFrac(a, x float64) float64 {
	if math.Abs(x) < 1e-7 {
		return a * 10
	}
	return a * x / (math.Exp(x/10) - 1)
}

// rates updates the rate constants from the current voltage
func (hm *Model) rates() {
	v := hm.V
	hm.Bh = 1 / (math.Exp((v+30)/10) + 1)
	hm.Ah = 0.07 * math.Exp(v/20)
	hm.Bm = 4 * math.Exp(v/18)
	hm.Am = rateFrac(0.1, v+25)
	hm.Bn = 0.125 * math.Exp(v/80)
	hm.An = rateFrac(0.01, v+10)
}

// activation recomputes m3h and n4 from the time since the last stimulus
func (hm *Model) activation() {
	hm.M3h = hm.Params.M3hFromTime(hm.TimeSinceAP)
	hm.N4 = hm.Params.N4FromTime(hm.TimeSinceAP)
}

// currents recomputes the ionic currents from the activation products and V
func (hm *Model) currents() {
	hp := &hm.Params
	hm.NaI = hp.Gna * hm.M3h * (hm.V - hp.Vna)
	hm.KI = hp.Gk * hm.N4 * (hm.V - hp.Vk)
	hm.LeakI = hp.Gl * (hm.V - hp.Vl)
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// StepInTime advances the model by dt seconds.  The integration always uses
// the fixed internal step: the part of dt that does not fill a whole step
// is carried over, and an extra step is taken whenever the carried amount
// reaches a full step.  dt <= 0 does nothing.
func (hm *Model) StepInTime(dt float64) {
	if dt <= 0 {
		return
	}
	hp := &hm.Params
	step := hp.StepMs
	dtMs := dt * 1000
	iters := int(math.Floor(dtMs / step))
	hm.Remainder += math.Mod(dtMs, step)
	if hm.Remainder >= step {
		iters++
		hm.Remainder -= step
	}
	for i := 0; i < iters; i++ {
		hm.SubStep()
	}
	hm.m3hDelay.AddValue(hm.M3h, dt)
	hm.n4Delay.AddValue(hm.N4, dt)
}

// SubStep integrates one fixed internal step.
func (hm *Model) SubStep() {
	hp := &hm.Params
	step := hp.StepMs
	hm.rates()
	hm.H = clamp01(hm.H + (hm.Ah*(1-hm.H)-hm.Bh*hm.H)*step)
	hm.M = clamp01(hm.M + (hm.Am*(1-hm.M)-hm.Bm*hm.M)*step)
	hm.N = clamp01(hm.N + (hm.An*(1-hm.N)-hm.Bn*hm.N)*step)
	hm.activation()
	hm.currents()
	hm.V += -step * (hm.KI + hm.NaI + hm.LeakI) / hp.Cm
	hm.ElapsedMs += step
	if !math.IsInf(hm.TimeSinceAP, 1) {
		hm.TimeSinceAP += step
	}
}

// Stimulate depolarizes the membrane by a fixed amount and
// marks the start of a new action potential.
func (hm *Model) Stimulate() {
	hm.SetMembraneVoltage(hm.MembraneVoltage() + hm.Params.StimV)
	hm.TimeSinceAP = 0
}

// MembraneVoltage returns the membrane potential in volts, external convention.
func (hm *Model) MembraneVoltage() float64 {
	return (-hm.V - hm.Params.RestingV) / 1000
}

// SetMembraneVoltage sets the membrane potential from volts, external convention.
func (hm *Model) SetMembraneVoltage(volts float64) {
	hm.V = -1000*volts - hm.Params.RestingV
}

// DelayedM3h returns m3h as it was delay seconds ago, or the current value
// if delay <= 0.
func (hm *Model) DelayedM3h(delay float64) float64 {
	if delay <= 0 {
		return hm.M3h
	}
	return hm.m3hDelay.DelayedValue(delay)
}

// DelayedN4 returns n4 as it was delay seconds ago, or the current value
// if delay <= 0.
func (hm *Model) DelayedN4(delay float64) float64 {
	if delay <= 0 {
		return hm.N4
	}
	return hm.n4Delay.DelayedValue(delay)
}

// SodiumCurrent returns the sodium current, external sign convention
// (positive flowing into the cell).
func (hm *Model) SodiumCurrent() float64 { return -hm.NaI }

// PotassiumCurrent returns the potassium current, external sign convention.
func (hm *Model) PotassiumCurrent() float64 { return -hm.KI }

// LeakCurrent returns the leak current, external sign convention.
func (hm *Model) LeakCurrent() float64 { return -hm.LeakI }

// State returns the restorable state.  The delay buffers are returned by
// reference: the model replaces them with fresh copies before the next
// write, so a captured State is never changed afterward.
func (hm *Model) State() State {
	st := State{M: hm.M, H: hm.H, N: hm.N, V: hm.V, TimeSinceAP: hm.TimeSinceAP,
		M3hDelay: hm.m3hDelay, N4Delay: hm.n4Delay}
	hm.m3hDelay = cloneBuffer(hm.m3hDelay)
	hm.n4Delay = cloneBuffer(hm.n4Delay)
	return st
}

// SetState restores a state returned by State.  The buffers are copied, so
// the state can be restored again later.
func (hm *Model) SetState(st State) {
	hm.M, hm.H, hm.N = st.M, st.H, st.N
	hm.V = st.V
	hm.TimeSinceAP = st.TimeSinceAP
	if st.M3hDelay != nil {
		hm.m3hDelay = cloneBuffer(st.M3hDelay)
	}
	if st.N4Delay != nil {
		hm.n4Delay = cloneBuffer(st.N4Delay)
	}
	hm.rates()
	hm.activation()
	hm.currents()
}

func cloneBuffer(db *delay.Buffer) *delay.Buffer {
	nb := *db
	nb.Entries = make([]delay.Entry, len(db.Entries))
	copy(nb.Entries, db.Entries)
	return &nb
}
