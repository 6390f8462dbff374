// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package neuron provides the model of a neuron's axon membrane cross section:
the Hodgkin-Huxley integrator, the traveling action potential, the membrane
channels and the ions moving through and around them, with record and
playback of the whole thing.

The model is single threaded and driven by one call to StepInTime per frame,
which advances everything in a fixed order and returns the set of Changes
that a view needs to redraw.
*/
package neuron

import (
	"fmt"
	"math"
	"strings"
	"unsafe"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
	"github.com/c2h5oh/datasize"
	"github.com/emer/membrane/axon"
	"github.com/emer/membrane/chans"
	"github.com/emer/membrane/chart"
	"github.com/emer/membrane/hh"
	"github.com/emer/membrane/ions"
	"github.com/emer/membrane/playback"
)

// Changes are bit flags for what changed during a call into the model
type Changes int32

const (
	// ParticlesMoved is when any particle moved, appeared or disappeared
	ParticlesMoved Changes = 1 << iota

	// ChannelsChanged is when any channel openness or inactivation changed
	ChannelsChanged

	// StimulusInitiated is when a stimulus pulse was started
	StimulusInitiated

	// PotentialChanged is when the exposed membrane potential changed
	PotentialChanged
)

// Has returns true if all the given changes are set
func (cg Changes) Has(c Changes) bool {
	return cg&c == c
}

// Model is the neuron membrane model
type Model struct {
	Params    Params
	IonParams ions.Params

	// Hodgkin-Huxley integrator
	HH *hh.Model

	// axon body with the traveling action potential
	Axon *axon.Membrane

	// all the channels around the cross section
	Channels []*chans.Channel

	// bulk particles, present when all ions are simulated
	Background []*ions.Particle

	// particles moving through channels
	Transient []*ions.Particle

	// particles shown during playback, restored from snapshots
	PlaybackParticles []*ions.Particle

	// concentration readouts
	Conc Concentrations

	// membrane potential as shown, volts.  Only updated on changes
	// larger than Params.PotentialThr.
	Potential float64

	// true when a new stimulus is not allowed
	Lockout bool

	// true when the bulk particles are simulated, not just those crossing the membrane
	AllIonsSimulated bool

	// view toggles, with no effect on the simulation
	PotentialChartVisible bool
	ChargesVisible        bool
	ConcentrationsVisible bool

	// membrane potential chart since the last stimulus
	Trace *chart.Trace

	// record and playback of the model
	Rec *playback.Recorder[*Snapshot]

	// total simulated time, sec
	SimTime float64

	// simulated time at which the last action potential reached the cross section, sec
	StimTime float64

	changes Changes
	rand    randx.Rand

	// mementos the playback particles were last restored from
	playbackMms []ions.Memento
}

// NewModel returns a model with default parameters, at rest
func NewModel() *Model {
	nm := &Model{}
	nm.Params.Defaults()
	nm.IonParams.Defaults()
	nm.Config()
	return nm
}

// Config builds the model from the params.  Call after changing params
// that affect structure.
func (nm *Model) Config() {
	nm.Params.Update()
	nm.IonParams.Update()
	nm.rand = randx.NewSysRand(nm.Params.Seed)
	nm.HH = hh.NewModel()
	nm.HH.Params.MinStep = MinTickDt
	nm.Axon = axon.NewMembrane()
	nm.Trace = chart.NewTrace(nm.Params.ChartSpan)
	nm.Rec = playback.NewRecorder[*Snapshot]((*recTarget)(nm), nm.Params.MaxRecordPoints)
	nm.Rec.OnModeChange = nm.modeChanged
	nm.configChannels()
	nm.Reset()
}

// Reset returns everything to the initial resting state, clearing the history
func (nm *Model) Reset() {
	nm.Rec.Reset()
	nm.HH.Reset()
	nm.Axon.Reset()
	for _, ch := range nm.Channels {
		ch.Reset()
	}
	nm.Background = nil
	nm.Transient = nil
	nm.PlaybackParticles = nil
	nm.playbackMms = nil
	if nm.AllIonsSimulated {
		nm.seedBulk()
	}
	nm.Conc.SetNominal(&nm.Params.Conc)
	nm.Potential = nm.HH.MembraneVoltage()
	nm.Trace.Clear()
	nm.SimTime = 0
	nm.StimTime = 0
	nm.Lockout = false
	nm.changes = ParticlesMoved | ChannelsChanged | PotentialChanged
}

// configChannels places the channels evenly around the cross section.
// One of each type goes first, then the type furthest behind its share
// of the total goes next, so the types are spread evenly.
func (nm *Model) configChannels() {
	np := &nm.Params
	types := []chans.ChannelTypes{chans.SodiumLeak, chans.PotassiumGated, chans.SodiumGated, chans.PotassiumLeak}
	want := make([]int, len(types))
	for ti, ct := range types {
		want[ti] = np.Chans.Of(ct)
	}
	placed := make([]int, len(types))
	n := np.NChannels()
	nm.Channels = make([]*chans.Channel, 0, n)
	next := func() int {
		for ti := range types {
			if placed[ti] == 0 && want[ti] > 0 {
				return ti
			}
		}
		best := -1
		bu := 0.0
		for ti := range types {
			if placed[ti] >= want[ti] {
				continue
			}
			u := float64(want[ti]-placed[ti]) / float64(want[ti])
			if best < 0 || u > bu {
				best, bu = ti, u
			}
		}
		return best
	}
	rad := nm.Axon.Params.Diameter / 2
	spc := 2 * math32.Pi / float32(n)
	for i := 0; i < n; i++ {
		ti := next()
		placed[ti]++
		ang := np.StartAngle + float32(i)*spc
		ch := chans.NewChannel(types[ti], i, nm.HH, nm, np.Seed+int64(i)+1)
		ch.SetPosition(math32.Vec2(rad*math32.Cos(ang), rad*math32.Sin(ang)), ang)
		nm.Channels = append(nm.Channels, ch)
	}
}

// StepInTime is the per-frame entry point.  It advances according to the
// recorder mode, and returns what changed.
func (nm *Model) StepInTime(dt float64) Changes {
	nm.Rec.StepInTime(dt)
	nm.updateLockout()
	cg := nm.changes
	nm.changes = 0
	return cg
}

// SetTime moves the playback time, restoring the nearest snapshot in Playback mode
func (nm *Model) SetTime(t float64) Changes {
	nm.Rec.SetTime(t)
	nm.updateLockout()
	cg := nm.changes
	nm.changes = 0
	return cg
}

// SetModeLive switches to advancing without recording
func (nm *Model) SetModeLive() { nm.Rec.SetLive() }

// SetModeRecord switches to recording
func (nm *Model) SetModeRecord() { nm.Rec.SetRecord() }

// SetModePlayback switches to playing back the recorded history
func (nm *Model) SetModePlayback() { nm.Rec.SetPlayback() }

// advance is one tick of the simulation, in a fixed order
func (nm *Model) advance(dt float64) {
	nm.SimTime += dt
	ev := nm.Axon.StepInTime(dt)
	if ev.Has(axon.CrossSectionReached) {
		nm.HH.Stimulate()
		nm.StimTime = nm.SimTime
		nm.Trace.Clear()
	}
	nm.HH.StepInTime(dt)
	nm.updatePotential()
	nm.updateLockout()
	chg := false
	for _, ch := range nm.Channels {
		if ch.StepInTime(dt) {
			chg = true
		}
	}
	if chg {
		nm.changes |= ChannelsChanged
	}
	nm.Transient = nm.stepParticles(nm.Transient, dt)
	nm.Background = nm.stepParticles(nm.Background, dt)
	cp := &nm.Params.Conc
	nm.Conc.Update(cp, nm.HH.DelayedM3h(cp.Delay), nm.HH.DelayedN4(cp.Delay), dt)
	nm.updateTrace()
}

// stepParticles steps the particles and drops those that are done
func (nm *Model) stepParticles(pts []*ions.Particle, dt float64) []*ions.Particle {
	if len(pts) == 0 {
		return pts
	}
	nm.changes |= ParticlesMoved
	j := 0
	for _, pt := range pts {
		pt.StepInTime(&nm.IonParams, dt)
		if pt.Alive {
			pts[j] = pt
			j++
		}
	}
	clear(pts[j:])
	return pts[:j]
}

// updatePotential updates the exposed potential when it has changed by more than the noise threshold
func (nm *Model) updatePotential() {
	v := nm.HH.MembraneVoltage()
	if math.Abs(v-nm.Potential)*1000 > nm.Params.PotentialThr {
		nm.Potential = v
		nm.changes |= PotentialChanged
	}
}

// updateTrace adds the present potential to the chart after a stimulus
func (nm *Model) updateTrace() {
	if nm.StimTime <= 0 || nm.Trace.IsFull() {
		return
	}
	nm.Trace.AddPoint(float32((nm.SimTime-nm.StimTime)*1000), float32(nm.HH.MembraneVoltage()*1000))
}

// updateLockout recomputes whether a stimulus is allowed
func (nm *Model) updateLockout() {
	np := &nm.Params
	hm := nm.HH
	nm.Lockout = nm.Axon.InFlight() ||
		math.Abs(hm.SodiumCurrent()) > np.LockNaThr ||
		math.Abs(hm.PotassiumCurrent()) > np.LockKThr ||
		math.Abs(hm.LeakCurrent()) > np.LockLeakThr ||
		(nm.Rec.IsPlayback() && nm.Rec.Backward)
}

// InitiateStimulusPulse starts an action potential down the axon, returning
// false and doing nothing if locked out.  In Playback mode, recording
// resumes from the present time.
func (nm *Model) InitiateStimulusPulse() bool {
	nm.updateLockout()
	if nm.Lockout {
		return false
	}
	if nm.Rec.IsPlayback() {
		nm.Rec.SetRecord()
	}
	nm.Axon.InitiateTravelingAP()
	nm.changes |= StimulusInitiated
	nm.Lockout = true
	return true
}

// SetAllIonsSimulated turns the bulk particles on or off.
// It is a bug to call this while locked out.
func (nm *Model) SetAllIonsSimulated(on bool) {
	if nm.Lockout {
		panic("neuron.Model: SetAllIonsSimulated called while stimulus is locked out")
	}
	if on == nm.AllIonsSimulated {
		return
	}
	nm.AllIonsSimulated = on
	if on {
		nm.seedBulk()
	} else {
		nm.Background = nil
	}
	nm.changes |= ParticlesMoved
}

// SetPotentialChartVisible sets the chart view toggle
func (nm *Model) SetPotentialChartVisible(on bool) { nm.PotentialChartVisible = on }

// SetChargesVisible sets the charge view toggle
func (nm *Model) SetChargesVisible(on bool) { nm.ChargesVisible = on }

// SetConcentrationsVisible sets the concentration view toggle
func (nm *Model) SetConcentrationsVisible(on bool) { nm.ConcentrationsVisible = on }

// TravelingAPShape returns the shape of the action potential in flight, if any
func (nm *Model) TravelingAPShape() (axon.Shape, bool) {
	if nm.Axon.AP == nil {
		return axon.Shape{}, false
	}
	return nm.Axon.AP.Shape, true
}

// SizeReport returns a string reporting the number of channels and particles
// and the memory used by the recorded history.
func (nm *Model) SizeReport() string {
	var b strings.Builder
	pmem := int(unsafe.Sizeof(ions.Particle{}))
	np := len(nm.Background) + len(nm.Transient) + len(nm.PlaybackParticles)
	fmt.Fprintf(&b, "%14s:\t %d\n", "Channels", len(nm.Channels))
	fmt.Fprintf(&b, "%14s:\t %d\t Mem: %v\n", "Background", len(nm.Background), (datasize.ByteSize)(len(nm.Background)*pmem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t %d\t Mem: %v\n", "Transient", len(nm.Transient), (datasize.ByteSize)(len(nm.Transient)*pmem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t %d\t Mem: %v\n", "Playback", len(nm.PlaybackParticles), (datasize.ByteSize)(len(nm.PlaybackParticles)*pmem).HumanReadable())
	hmem := 0
	for _, dp := range nm.Rec.History {
		hmem += dp.State.MemSize()
	}
	fmt.Fprintf(&b, "\n%14s:\t Particles: %d\t Snapshots: %d\t HistMem: %v\n", "Total", np, len(nm.Rec.History), (datasize.ByteSize)(hmem).HumanReadable())
	return b.String()
}
