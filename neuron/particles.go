// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/emer/membrane/chans"
	"github.com/emer/membrane/ions"
	"github.com/emer/membrane/playback"
)

// RequestParticleThroughChannel creates a particle in the source zone of
// the channel and sends it through.  This is the only way channels get
// particles: it always makes a new one.
func (nm *Model) RequestParticleThroughChannel(ion chans.IonTypes, ch *chans.Channel, speed float32, dir chans.CrossingDirs) {
	pt := ions.NewCaptured(ion, ch, &nm.IonParams, speed, dir)
	nm.checkCap(1)
	nm.Transient = append(nm.Transient, pt)
	nm.changes |= ParticlesMoved
}

// NParticles returns the number of live (non-playback) particles
func (nm *Model) NParticles() int {
	return len(nm.Background) + len(nm.Transient)
}

// checkCap panics if adding n particles would exceed the cap, which means
// the cap must be raised.
func (nm *Model) checkCap(n int) {
	if nm.NParticles()+n > nm.Params.MaxParticles {
		panic(fmt.Sprintf("neuron.Model: particle count would exceed MaxParticles: %d", nm.Params.MaxParticles))
	}
}

// VisibleParticles returns the particles to show: the playback population
// in Playback mode, and otherwise the background and transient ones.
func (nm *Model) VisibleParticles() []*ions.Particle {
	if nm.Rec.IsPlayback() {
		return nm.PlaybackParticles
	}
	vis := make([]*ions.Particle, 0, nm.NParticles())
	vis = append(vis, nm.Background...)
	return append(vis, nm.Transient...)
}

// newBulk makes a background particle at pos
func (nm *Model) newBulk(typ chans.IonTypes, pos math32.Vector2) *ions.Particle {
	pt := ions.NewParticle(typ, pos, nm.rand.Int63())
	pt.SetJitter(&nm.IonParams)
	return pt
}

// seedBulk adds the bulk particles at random positions inside and outside
// the cross section, then makes sure every gated channel has at least one
// particle of its type in the zone it captures from.
func (nm *Model) seedBulk() {
	np := &nm.Params
	ap := &nm.Axon.Params
	inner := ap.Diameter/2 - ap.Thickness/2
	outer := ap.Diameter/2 + ap.Thickness/2
	band := ap.Diameter / 2 * np.ExteriorBand
	nm.checkCap(np.BulkNaOut + np.BulkNaIn + np.BulkKOut + np.BulkKIn)
	add := func(typ chans.IonTypes, n int, r0, r1 float32) {
		for i := 0; i < n; i++ {
			r := math32.Sqrt(r0*r0 + (r1*r1-r0*r0)*nm.rand.Float32())
			ang := 2 * math32.Pi * nm.rand.Float32()
			nm.Background = append(nm.Background, nm.newBulk(typ, math32.Vec2(r*math32.Cos(ang), r*math32.Sin(ang))))
		}
	}
	add(chans.Sodium, np.BulkNaOut, outer, band)
	add(chans.Sodium, np.BulkNaIn, 0, inner)
	add(chans.Potassium, np.BulkKOut, outer, band)
	add(chans.Potassium, np.BulkKIn, 0, inner)
	for _, ch := range nm.Channels {
		var zn chans.CaptureZone
		switch ch.Type {
		case chans.SodiumGated:
			zn = ch.ExteriorZone()
		case chans.PotassiumGated:
			zn = ch.InteriorZone()
		default:
			continue
		}
		typ := ch.Type.IonType()
		if nm.zoneHas(&zn, typ) {
			continue
		}
		n := 1 + nm.rand.Intn(2)
		nm.checkCap(n)
		for i := 0; i < n; i++ {
			nm.Background = append(nm.Background, nm.newBulk(typ, zn.RandomPoint(nm.rand)))
		}
	}
}

// zoneHas returns true if any background particle of the type is in the zone
func (nm *Model) zoneHas(zn *chans.CaptureZone, typ chans.IonTypes) bool {
	for _, pt := range nm.Background {
		if pt.Type == typ && zn.Contains(pt.Pos) {
			return true
		}
	}
	return false
}

// syncPlayback makes the playback population match the mementos,
// creating or discarding particles as needed.
func (nm *Model) syncPlayback(mms []ions.Memento) {
	n := len(mms)
	for len(nm.PlaybackParticles) < n {
		pt := ions.NewParticle(chans.Sodium, math32.Vector2{}, nm.rand.Int63())
		nm.PlaybackParticles = append(nm.PlaybackParticles, pt)
	}
	clear(nm.PlaybackParticles[n:])
	nm.PlaybackParticles = nm.PlaybackParticles[:n]
	for i, mm := range mms {
		nm.PlaybackParticles[i].SetMemento(mm)
	}
	nm.playbackMms = mms
	nm.changes |= ParticlesMoved
}

// modeChanged hands the particle populations over when the recorder
// leaves Playback.  Playback particles that were background become the
// background again, and those that were on their way through a channel
// wander away from the nearest one and fade out.  The transient ones from
// before playback are out of date and dropped.  Without all ions simulated,
// the handed over background fades away too.
// The chart trace is cut back to the playback time.
func (nm *Model) modeChanged(prev, cur playback.Modes) {
	if prev != playback.Playback {
		return
	}
	nm.Trace.TruncateAfter(float32((nm.SimTime - nm.StimTime) * 1000))
	ip := &nm.IonParams
	nm.Background = nil
	nm.Transient = nil
	for i, pt := range nm.PlaybackParticles {
		pt.Alive = true
		if i < len(nm.playbackMms) && !nm.playbackMms[i].IsBulk() {
			if ch := nm.nearestChannel(pt.Pos); ch != nil {
				pt.Motion = ions.NewWander(pt, ip, ch)
				pt.Fade = ions.Fade{}
				nm.Transient = append(nm.Transient, pt)
				continue
			}
		}
		pt.SetJitter(ip)
		if !nm.AllIonsSimulated {
			pt.Fade = ions.NewFadeOut(ip.WanderFadeTime, pt.Opacity)
		}
		nm.Background = append(nm.Background, pt)
	}
	nm.PlaybackParticles = nil
	nm.playbackMms = nil
	nm.changes |= ParticlesMoved
}

// nearestChannel returns the channel whose center is closest to pos, or nil
// if there are none.
func (nm *Model) nearestChannel(pos math32.Vector2) *chans.Channel {
	var near *chans.Channel
	var best float32
	for _, ch := range nm.Channels {
		d := pos.Sub(ch.Center).Length()
		if near == nil || d < best {
			near, best = ch, d
		}
	}
	return near
}
