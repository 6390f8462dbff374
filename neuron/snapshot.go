// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"unsafe"

	"github.com/emer/membrane/axon"
	"github.com/emer/membrane/chans"
	"github.com/emer/membrane/delay"
	"github.com/emer/membrane/hh"
	"github.com/emer/membrane/ions"
)

// Snapshot is the full recorded state of the model at one time
type Snapshot struct {

	// traveling action potential, nil if none
	AP *axon.APState

	// integrator state
	HH hh.State

	// state of each channel, in channel order
	Channels []chans.State

	// all the visible particles
	Particles []ions.Memento

	// concentration readouts
	Conc Concentrations

	// exposed membrane potential
	Potential float64

	// simulated time
	SimTime float64

	// simulated time of the last stimulus arrival
	StimTime float64
}

// MemSize returns the approximate memory used by the snapshot, in bytes
func (sn *Snapshot) MemSize() int {
	sz := int(unsafe.Sizeof(*sn))
	sz += len(sn.Channels) * int(unsafe.Sizeof(chans.State{}))
	sz += len(sn.Particles) * int(unsafe.Sizeof(ions.Memento{}))
	if sn.AP != nil {
		sz += int(unsafe.Sizeof(*sn.AP))
	}
	for _, db := range []*delay.Buffer{sn.HH.M3hDelay, sn.HH.N4Delay} {
		if db != nil {
			sz += db.Cap() * int(unsafe.Sizeof(delay.Entry{}))
		}
	}
	return sz
}

// Snapshot captures the present state
func (nm *Model) Snapshot() *Snapshot {
	sn := &Snapshot{
		AP:        nm.Axon.State(),
		HH:        nm.HH.State(),
		Channels:  make([]chans.State, len(nm.Channels)),
		Particles: make([]ions.Memento, 0, nm.NParticles()),
		Conc:      nm.Conc,
		Potential: nm.Potential,
		SimTime:   nm.SimTime,
		StimTime:  nm.StimTime,
	}
	for i, ch := range nm.Channels {
		sn.Channels[i] = ch.State()
	}
	for _, pt := range nm.Background {
		sn.Particles = append(sn.Particles, pt.Memento())
	}
	for _, pt := range nm.Transient {
		sn.Particles = append(sn.Particles, pt.Memento())
	}
	return sn
}

// Restore makes the model match a snapshot.  Particles are restored into
// the playback population.  The chart trace is kept whole until playback ends.
func (nm *Model) Restore(sn *Snapshot) {
	nm.Axon.SetState(sn.AP)
	nm.HH.SetState(sn.HH)
	for i, ch := range nm.Channels {
		if i < len(sn.Channels) {
			ch.SetState(sn.Channels[i])
		}
	}
	nm.syncPlayback(sn.Particles)
	nm.Conc = sn.Conc
	if nm.Potential != sn.Potential {
		nm.changes |= PotentialChanged
	}
	nm.Potential = sn.Potential
	nm.SimTime = sn.SimTime
	nm.StimTime = sn.StimTime
	nm.changes |= ChannelsChanged
	nm.updateLockout()
}

// recTarget is the model as seen by its recorder
type recTarget Model

func (rt *recTarget) StepInTime(dt float64)  { (*Model)(rt).advance(dt) }
func (rt *recTarget) Snapshot() *Snapshot    { return (*Model)(rt).Snapshot() }
func (rt *recTarget) Restore(sn *Snapshot)   { (*Model)(rt).Restore(sn) }
