// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ions

import (
	"cogentcore.org/core/math32"
	"github.com/emer/membrane/chans"
)

// NewTraverse returns motion from start through the channel in the given
// direction.  The waypoints are the start, the entry mouth, the channel
// center (dual-gated only) and the exit mouth.
func NewTraverse(ch *chans.Channel, start math32.Vector2, speed float32, dir chans.CrossingDirs) Motion {
	entry, exit := ch.Mouths(dir)
	pts := []math32.Vector2{start, entry}
	if ch.Type == chans.SodiumGated {
		pts = append(pts, ch.Center)
	}
	pts = append(pts, exit)
	return Motion{Type: Traverse, Channel: ch, Points: pts, Target: 1, Speed: speed, Dir: dir}
}

// Entered returns true once the particle has reached the entry mouth
func (mv *Motion) Entered() bool {
	return mv.Target >= 2
}

func (mv *Motion) moveTraverse(pt *Particle, ip *Params, dt float64) {
	if dt < 0 {
		mv.retrace(pt, float32(-dt)*mv.Speed)
		return
	}
	ch := mv.Channel
	if !mv.Entered() && !ch.IsOpen() {
		pt.Motion = NewWander(pt, ip, ch)
		return
	}
	if ch.Type == chans.SodiumGated && mv.Entered() && !mv.Bounced && ch.Inactivation > ip.BounceThr {
		mv.bounce(pt)
	}
	dist := float32(dt) * mv.Speed
	for dist > 0 {
		d := mv.Points[mv.Target].Sub(pt.Pos)
		ln := d.Length()
		if ln > dist {
			pt.Pos = pt.Pos.Add(d.MulScalar(dist / ln))
			return
		}
		pt.Pos = mv.Points[mv.Target]
		dist -= ln
		mv.Target++
		if mv.Target == len(mv.Points) {
			mv.exit(pt, ip)
			return
		}
	}
}

// bounce turns the particle around: its present position becomes a waypoint
// and it heads back to the mouth it came in through.
func (mv *Motion) bounce(pt *Particle) {
	entry, _ := mv.Channel.Mouths(mv.Dir)
	pts := make([]math32.Vector2, mv.Target, mv.Target+2)
	copy(pts, mv.Points[:mv.Target])
	mv.Points = append(pts, pt.Pos, entry)
	mv.Target = len(mv.Points) - 1
	mv.Bounced = true
}

// retrace moves backward along the waypoints, removing the particle when
// it gets back to its creation point.
func (mv *Motion) retrace(pt *Particle, dist float32) {
	for {
		if mv.Target <= 0 {
			pt.Alive = false
			return
		}
		prev := mv.Points[mv.Target-1]
		d := prev.Sub(pt.Pos)
		ln := d.Length()
		if ln > dist {
			pt.Pos = pt.Pos.Add(d.MulScalar(dist / ln))
			return
		}
		pt.Pos = prev
		dist -= ln
		mv.Target--
	}
}

// exit replaces the traversal with motion away from the channel along the
// last segment, with a random rotation, and starts fading out.  Exits from
// the dual-gated channel rotate only to one side, away from its gate.
func (mv *Motion) exit(pt *Particle, ip *Params) {
	n := len(mv.Points)
	dir := mv.Points[n-1].Sub(mv.Points[n-2])
	if dir.Length() == 0 {
		dir = mv.Channel.Axis()
		if mv.Dir == chans.OutToIn {
			dir = dir.MulScalar(-1)
		}
	}
	dir = dir.Normal()
	if !mv.Bounced {
		var rot float32
		if mv.Channel.Type == chans.SodiumGated {
			rot = ip.ExitRot * pt.Rand.Float32()
		} else {
			rot = ip.ExitJitter * (2*pt.Rand.Float32() - 1)
		}
		dir = chans.Rotate(dir, rot)
	}
	vel := dir.MulScalar(mv.Speed)
	if mv.Speed >= ip.SlowThr*ip.Speed {
		pt.Motion = NewSpeedChange(vel, ip.SlowDelay, ip.SlowFactor)
	} else {
		pt.Motion = NewLinear(vel)
	}
	pt.Fade = NewFadeOut(ip.FadeOutTime, pt.Opacity)
}
