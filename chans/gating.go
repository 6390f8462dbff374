// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"math"
)

// Sodium dual-gate timing and thresholds
const (
	// normalized conductance above which an idle gate starts opening
	ActivationThr = 0.002

	// inactivation at which the gate is considered fully inactivated
	FullInactivationThr = 0.98

	// dwell time in the Inactivated state, seconds
	InactivatedTime = 0.001

	// duration of the Resetting state, seconds
	ResettingTime = 0.001
)

// NormConductance returns the delayed, staggered activation product for
// this channel, normalized to the fully open value and capped at 1.
func (ch *Channel) NormConductance() float64 {
	if ch.Cond == nil {
		return 0
	}
	var g float64
	switch ch.Type {
	case SodiumGated:
		g = ch.Cond.DelayedM3h(ch.Stagger)
	case PotassiumGated:
		g = ch.Cond.DelayedN4(ch.Stagger)
	default:
		return 0
	}
	return math.Min(math.Abs(g)/ch.Params.FullyOpen, 1)
}

// stepPotassium: openness follows the delayed n4 directly
func (ch *Channel) stepPotassium(dt float64) {
	x := ch.NormConductance()
	ch.Openness = float32(1 - (x-1)*(x-1))
	ch.Inactivation = 0
	ch.PrevNorm = x
}

// stepSodium runs the dual-gate state machine.  Each call advances at most
// one state, so no state is ever skipped.
func (ch *Channel) stepSodium(dt float64) {
	x := ch.NormConductance()
	switch ch.Gate {
	case Idle:
		if x > ActivationThr {
			ch.Gate = Opening
		}
	case Opening:
		if x < ch.PrevNorm {
			ch.Gate = BecomingInactive
			ch.Openness = 1
		} else {
			ch.Openness = float32(1 - math.Pow(x-1, 20))
		}
	case BecomingInactive:
		ch.Inactivation = float32(1 - math.Pow(x, 7))
		if ch.Inactivation >= FullInactivationThr {
			// the activation gate stays open, the inactivation gate blocks
			ch.Openness = 1
			ch.Inactivation = 1
			ch.Gate = Inactivated
			ch.GateTimer = InactivatedTime
		}
	case Inactivated:
		ch.GateTimer -= dt
		if ch.GateTimer <= 0 {
			ch.Gate = Resetting
			ch.GateTimer = ResettingTime
		}
	case Resetting:
		ch.GateTimer -= dt
		if ch.GateTimer <= 0 {
			ch.Gate = Idle
			ch.GateTimer = 0
			ch.Openness = 0
			ch.Inactivation = 0
			ch.Stagger = ch.Params.MaxStagger * ch.Rand.Float64()
		} else {
			f := 1 - ch.GateTimer/ResettingTime
			ch.Inactivation = float32(1 - math.Pow(f, 10))
			ch.Openness = float32(math.Pow(1-f, 20))
		}
	}
	ch.PrevNorm = x
}
