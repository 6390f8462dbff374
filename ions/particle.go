// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ions provides the particles (sodium and potassium ions) that move
around the membrane and through its channels.  How a particle moves is given
by its Motion, and how its opacity changes by its Fade: both are small tagged
variants that a particle owns exclusively and replaces wholesale.

All motion accepts a negative dt, which runs it backward.  Channel traversal
retraces its waypoints in reverse order and removes the particle when it gets
back to where it was created.
*/
package ions

import (
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
	"github.com/emer/membrane/chans"
)

// Particle is one ion
type Particle struct {

	// which ion
	Type chans.IonTypes

	// position in nm, with the cell center at the origin
	Pos math32.Vector2

	// opacity, 0-1
	Opacity float32

	// how it moves
	Motion Motion

	// how its opacity changes
	Fade Fade

	// false once the particle should be removed
	Alive bool

	// random source for this particle
	Rand randx.Rand `view:"-"`
}

// NewParticle returns a live, fully opaque, still particle at the given position
func NewParticle(typ chans.IonTypes, pos math32.Vector2, seed int64) *Particle {
	return &Particle{Type: typ, Pos: pos, Opacity: 1, Alive: true, Rand: randx.NewSysRand(seed)}
}

// StepInTime moves and fades the particle by dt, which can be negative.
func (pt *Particle) StepInTime(ip *Params, dt float64) {
	if !pt.Alive {
		return
	}
	pt.Motion.Move(pt, ip, dt)
	pt.Fade.Step(pt, dt)
}

// Memento is the minimal record of a particle needed for playback
type Memento struct {
	Type    chans.IonTypes
	Pos     math32.Vector2
	Opacity float32

	// kind of motion at the time of the record
	Motion MotionTypes
}

// Memento returns the playback record of the particle
func (pt *Particle) Memento() Memento {
	return Memento{Type: pt.Type, Pos: pt.Pos, Opacity: pt.Opacity, Motion: pt.Motion.Type}
}

// IsBulk returns true if the record is of a background particle,
// not one on its way through a channel.
func (mm *Memento) IsBulk() bool {
	return mm.Motion == Jitter || mm.Motion == Still
}

// SetMemento makes the particle match the given record.
// The motion and fade are left alone.
func (pt *Particle) SetMemento(mm Memento) {
	pt.Type = mm.Type
	pt.Pos = mm.Pos
	pt.Opacity = mm.Opacity
}

// SetJitter switches to the background motion around the present position
func (pt *Particle) SetJitter(ip *Params) {
	pt.Motion = NewJitter(pt, ip)
	pt.Fade = Fade{}
}

// NewCaptured returns a particle of the given type, placed at a random point
// in the source zone of the channel, fading in and set to traverse it.
// Its random source is seeded from the channel's.
func NewCaptured(typ chans.IonTypes, ch *chans.Channel, ip *Params, speed float32, dir chans.CrossingDirs) *Particle {
	zn := ch.SourceZone(dir)
	pt := NewParticle(typ, math32.Vector2{}, ch.Rand.Int63())
	pt.Pos = zn.RandomPoint(pt.Rand)
	pt.Opacity = 0
	pt.Fade = NewFadeIn(ip.FadeInTime)
	pt.Motion = NewTraverse(ch, pt.Pos, speed, dir)
	return pt
}
