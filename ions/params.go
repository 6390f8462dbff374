// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ions

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
	"github.com/emer/membrane/chans"
)

// Params are the shared motion and fade parameters for all particles
type Params struct {

	// full particle speed, nm / sec
	Speed float32 `def:"40000"`

	// time to fade in after being created for a capture, sec
	FadeInTime float64 `def:"0.0005"`

	// time to fade out after completing a traversal, sec
	FadeOutTime float64 `def:"0.002"`

	// time to fade out while wandering away from a closed channel, sec
	WanderFadeTime float64 `def:"0.003"`

	// time spent wandering before the fade out starts, sec
	WanderFadeDelay float64 `def:"0.0005"`

	// speed multiplier applied a short while after leaving a channel
	SlowFactor float32 `def:"0.2"`

	// time after leaving a channel before slowing down, sec
	SlowDelay float64 `def:"0.0001"`

	// particles at or above this fraction of Speed slow down after exit
	SlowThr float32 `def:"0.5"`

	// inactivation above which a particle inside a dual-gated channel bounces back out
	BounceThr float32 `def:"0.5"`

	// maximum rotation of the exit direction from a dual-gated channel, radians
	ExitRot float32 `def:"0.7854"`

	// maximum rotation of the exit direction from other channels, either side, radians
	ExitJitter float32 `def:"0.5236"`

	// distance of a background jump, nm
	JumpDist minmax.F32 `view:"inline"`

	// time between background jumps, sec
	JumpTime minmax.F64 `view:"inline"`

	// speed while wandering, as a fraction of Speed
	WanderSpeed minmax.F32 `view:"inline"`

	// time between wander direction changes, sec
	WanderTime minmax.F64 `view:"inline"`

	// maximum deviation of the wander direction from straight away, radians
	WanderAngle float32 `def:"1.0472"`
}

func (ip *Params) Defaults() {
	ip.Speed = chans.DefaultSpeed
	ip.FadeInTime = 0.0005
	ip.FadeOutTime = 0.002
	ip.WanderFadeTime = 0.003
	ip.WanderFadeDelay = 0.0005
	ip.SlowFactor = 0.2
	ip.SlowDelay = 0.0001
	ip.SlowThr = 0.5
	ip.BounceThr = 0.5
	ip.ExitRot = math32.Pi / 4
	ip.ExitJitter = math32.Pi / 6
	ip.JumpDist.Set(0.1, 1)
	ip.JumpTime.Set(0.0009, 0.0015)
	ip.WanderSpeed.Set(0.3, 0.7)
	ip.WanderTime.Set(0.0002, 0.0005)
	ip.WanderAngle = math32.Pi / 3
}

func (ip *Params) Update() {
}
