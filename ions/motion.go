// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ions

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/emer/membrane/chans"
)

// MotionTypes is the closed set of ways a particle can move
type MotionTypes int32

const (
	// Still does not move
	Still MotionTypes = iota

	// Jitter makes small, infrequent jumps away from and back to a home point.
	// Used for the background particles.
	Jitter

	// Linear moves at a constant velocity
	Linear

	// SpeedChange moves at a constant velocity that is scaled once after a delay
	SpeedChange

	// Traverse moves through a channel along its waypoints
	Traverse

	// Wander drifts away from a channel in randomly varying directions
	Wander

	MotionTypesN
)

func (mt MotionTypes) String() string {
	switch mt {
	case Still:
		return "Still"
	case Jitter:
		return "Jitter"
	case Linear:
		return "Linear"
	case SpeedChange:
		return "SpeedChange"
	case Traverse:
		return "Traverse"
	case Wander:
		return "Wander"
	}
	return fmt.Sprintf("MotionTypes(%d)", int32(mt))
}

// Motion is the movement of a particle.  Only the fields for its Type are used.
type Motion struct {
	Type MotionTypes

	// velocity, nm / sec (Linear, SpeedChange, Wander)
	Vel math32.Vector2

	// countdown to the next jump, speed change or wander update, sec
	Timer float64

	// length of the current Timer interval, sec
	Interval float64

	// home point for Jitter, point to move away from for Wander
	Home math32.Vector2

	// Jitter is away from home, SpeedChange has applied its Factor,
	// or Wander has started fading
	Flag bool

	// velocity multiplier (SpeedChange)
	Factor float32

	// channel being traversed (Traverse, Wander)
	Channel *chans.Channel

	// waypoints, starting with the creation point (Traverse)
	Points []math32.Vector2

	// index of the waypoint being moved toward (Traverse)
	Target int

	// traversal speed, nm / sec
	Speed float32

	// crossing direction (Traverse)
	Dir chans.CrossingDirs

	// bounced back out of an inactivating channel (Traverse)
	Bounced bool

	// time left before the fade out starts (Wander)
	FadeDelay float64
}

// NewJitter returns the background motion around the particle's position
func NewJitter(pt *Particle, ip *Params) Motion {
	mv := Motion{Type: Jitter, Home: pt.Pos}
	mv.Interval = ip.JumpTime.Min + ip.JumpTime.Range()*pt.Rand.Float64()
	mv.Timer = mv.Interval
	return mv
}

// NewLinear returns constant-velocity motion
func NewLinear(vel math32.Vector2) Motion {
	return Motion{Type: Linear, Vel: vel}
}

// NewSpeedChange returns motion at vel that is multiplied by factor after delay
func NewSpeedChange(vel math32.Vector2, delay float64, factor float32) Motion {
	return Motion{Type: SpeedChange, Vel: vel, Timer: delay, Interval: delay, Factor: factor}
}

// NewWander returns motion that drifts away from the channel, and then
// fades the particle out after WanderFadeDelay.
func NewWander(pt *Particle, ip *Params, ch *chans.Channel) Motion {
	mv := Motion{Type: Wander, Channel: ch, Home: ch.Center, FadeDelay: ip.WanderFadeDelay}
	mv.newWanderVel(pt, ip)
	return mv
}

// Move moves the particle by dt, which can be negative
func (mv *Motion) Move(pt *Particle, ip *Params, dt float64) {
	switch mv.Type {
	case Still:
	case Jitter:
		mv.moveJitter(pt, ip, dt)
	case Linear:
		pt.Pos = pt.Pos.Add(mv.Vel.MulScalar(float32(dt)))
	case SpeedChange:
		mv.moveSpeedChange(pt, dt)
	case Traverse:
		mv.moveTraverse(pt, ip, dt)
	case Wander:
		mv.moveWander(pt, ip, dt)
	default:
		panic(fmt.Sprintf("ions: cannot move %v", mv.Type))
	}
}

// moveJitter jumps at random intervals, alternately away from and back to home.
// It is not reversible, so backward time just runs it forward.
func (mv *Motion) moveJitter(pt *Particle, ip *Params, dt float64) {
	if dt < 0 {
		dt = -dt
	}
	mv.Timer -= dt
	if mv.Timer > 0 {
		return
	}
	if mv.Flag {
		pt.Pos = mv.Home
	} else {
		ang := 2 * math32.Pi * pt.Rand.Float32()
		dist := ip.JumpDist.Min + ip.JumpDist.Range()*pt.Rand.Float32()
		pt.Pos = mv.Home.Add(math32.Vec2(dist*math32.Cos(ang), dist*math32.Sin(ang)))
	}
	mv.Flag = !mv.Flag
	mv.Interval = ip.JumpTime.Min + ip.JumpTime.Range()*pt.Rand.Float64()
	mv.Timer = mv.Interval
}

func (mv *Motion) moveSpeedChange(pt *Particle, dt float64) {
	if dt >= 0 {
		pt.Pos = pt.Pos.Add(mv.Vel.MulScalar(float32(dt)))
		mv.Timer -= dt
		if !mv.Flag && mv.Timer <= 0 {
			mv.Vel = mv.Vel.MulScalar(mv.Factor)
			mv.Flag = true
		}
		return
	}
	pt.Pos = pt.Pos.Add(mv.Vel.MulScalar(float32(dt)))
	mv.Timer -= dt
	if mv.Flag && mv.Timer > 0 && mv.Factor != 0 {
		mv.Vel = mv.Vel.MulScalar(1 / mv.Factor)
		mv.Flag = false
	}
}

func (mv *Motion) newWanderVel(pt *Particle, ip *Params) {
	away := pt.Pos.Sub(mv.Home)
	ang := math32.Atan2(away.Y, away.X)
	if away.Length() == 0 {
		ang = 2 * math32.Pi * pt.Rand.Float32()
	}
	ang += ip.WanderAngle * (2*pt.Rand.Float32() - 1)
	spd := ip.Speed * (ip.WanderSpeed.Min + ip.WanderSpeed.Range()*pt.Rand.Float32())
	mv.Vel = math32.Vec2(spd*math32.Cos(ang), spd*math32.Sin(ang))
	mv.Interval = ip.WanderTime.Min + ip.WanderTime.Range()*pt.Rand.Float64()
	mv.Timer = mv.Interval
}

func (mv *Motion) moveWander(pt *Particle, ip *Params, dt float64) {
	pt.Pos = pt.Pos.Add(mv.Vel.MulScalar(float32(dt)))
	if dt <= 0 {
		return
	}
	if !mv.Flag {
		mv.FadeDelay -= dt
		if mv.FadeDelay <= 0 {
			mv.Flag = true
			pt.Fade = NewFadeOut(ip.WanderFadeTime, pt.Opacity)
		}
	}
	mv.Timer -= dt
	if mv.Timer <= 0 {
		mv.newWanderVel(pt, ip)
	}
}
