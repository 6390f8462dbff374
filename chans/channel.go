// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"fmt"
	"math"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/math32/minmax"
)

// DefaultSpeed is the default particle speed through a channel, nm / sec
const DefaultSpeed = float32(40000)

// Conductances is the source of gating input for the channels,
// implemented by hh.Model.
type Conductances interface {

	// DelayedM3h returns the sodium activation product delay seconds ago
	DelayedM3h(delay float64) float64

	// DelayedN4 returns the potassium activation product delay seconds ago
	DelayedN4(delay float64) float64

	// LeakCurrent returns the present leak current
	LeakCurrent() float64
}

// Capturer obtains particles for channels.  It is the only way a channel
// causes particles to move through it.
type Capturer interface {
	RequestParticleThroughChannel(ion IonTypes, ch *Channel, speed float32, dir CrossingDirs)
}

// Params are the parameters for one type of channel
type Params struct {

	// width of the channel body, nm
	Width float32

	// height of the channel body along its axis (across the membrane), nm
	Height float32

	// inter-capture interval range, seconds.  For leak channels Min applies
	// at the strongest leak current and Max at none.
	CaptureRange minmax.F64

	// speed of particles moving through
	Speed float32

	// probability of reversing the usual crossing direction (leak channels)
	ReverseP float64

	// activation product value treated as fully open (gated channels)
	FullyOpen float64

	// leak current magnitude treated as the strongest (leak channels)
	LeakNorm float64

	// maximum random stagger delay applied to the conductance reading, seconds
	MaxStagger float64

	// capture zone radius as a multiple of Width
	ZoneRadius float32

	// capture zone angular extent, radians
	ZoneExtent float32

	// position of the traversal mouth points along the axis, as a multiple of Height
	MouthPos float32

	// overall size including surrounding protein, for display and spacing
	OverallSize math32.Vector2 `view:"-"`
}

// Defaults sets the parameters for the given type of channel
func (cp *Params) Defaults(ct ChannelTypes) {
	cp.Height = 4.8
	cp.ZoneExtent = 0.7 * math32.Pi
	cp.ZoneRadius = 5
	cp.MouthPos = 0.65
	cp.MaxStagger = 0
	cp.ReverseP = 0
	cp.FullyOpen = 1
	cp.LeakNorm = 10
	switch ct {
	case SodiumGated:
		cp.Width = 4.4
		cp.CaptureRange.Set(0.0001, 0.00025)
		cp.Speed = DefaultSpeed
		cp.FullyOpen = 0.25
		cp.MaxStagger = 0.0001
	case PotassiumGated:
		cp.Width = 4.4
		cp.CaptureRange.Set(0.0001, 0.00025)
		cp.Speed = DefaultSpeed
		cp.FullyOpen = 0.35
		cp.MaxStagger = 0.0001
	case SodiumLeak, PotassiumLeak:
		cp.Width = 2.4
		cp.CaptureRange.Set(0.0002, 0.002)
		cp.Speed = DefaultSpeed * 0.4
		cp.ReverseP = 0.2
	default:
		panic(fmt.Sprintf("chans: no params for %v", ct))
	}
	cp.Update()
}

func (cp *Params) Update() {
	cp.OverallSize = math32.Vec2(cp.Width*2.1, cp.Height*1.2)
}

// Channel is one membrane channel of any type
type Channel struct {

	// kind of channel
	Type ChannelTypes

	// index within the owning model
	Index int

	// parameters for this type
	Params Params

	// center position, nm
	Center math32.Vector2

	// direction of the channel axis, pointing from the interior to the exterior, radians
	Rotation float32

	// how open the channel is, 0-1
	Openness float32

	// how much the inactivation gate blocks the channel, 0-1
	Inactivation float32

	// time remaining until the next capture, +Inf when closed
	CaptureTimer float64

	// state of the dual gate, only used by SodiumGated
	Gate GateStates

	// time remaining in the present gate state, where the state has a fixed dwell
	GateTimer float64

	// normalized conductance at the previous step
	PrevNorm float64

	// random delay added to conductance readings
	Stagger float64

	// source of gating input
	Cond Conductances `view:"-"`

	// receiver of capture requests
	Capt Capturer `view:"-"`

	// random source for this channel
	Rand randx.Rand `view:"-"`
}

// NewChannel returns a channel of the given type at rest, with its own
// random source seeded from seed.
func NewChannel(ct ChannelTypes, idx int, cond Conductances, capt Capturer, seed int64) *Channel {
	ch := &Channel{Type: ct, Index: idx, Cond: cond, Capt: capt}
	ch.Params.Defaults(ct)
	ch.Rand = randx.NewSysRand(seed)
	ch.Reset()
	return ch
}

// Reset returns the channel to its resting state
func (ch *Channel) Reset() {
	ch.Gate = Idle
	ch.GateTimer = 0
	ch.PrevNorm = 0
	ch.Inactivation = 0
	ch.CaptureTimer = math.Inf(1)
	ch.Stagger = ch.Params.MaxStagger * ch.Rand.Float64()
	if ch.Type.IsLeak() {
		ch.Openness = 1
		ch.RestartCaptureTimer(false)
	} else {
		ch.Openness = 0
	}
}

// SetPosition places the channel.  The zones follow automatically.
func (ch *Channel) SetPosition(center math32.Vector2, rotation float32) {
	ch.Center = center
	ch.Rotation = rotation
}

// IsOpen returns true if particles can pass through the channel
func (ch *Channel) IsOpen() bool {
	return ch.Openness > 0.2 && ch.Inactivation < 0.7
}

// Axis returns the unit vector along the channel, interior to exterior
func (ch *Channel) Axis() math32.Vector2 {
	return math32.Vec2(math32.Cos(ch.Rotation), math32.Sin(ch.Rotation))
}

// IsPointInChannel returns true if the point is inside the rotated
// rectangle of the channel body.
func (ch *Channel) IsPointInChannel(p math32.Vector2) bool {
	d := Rotate(p.Sub(ch.Center), -ch.Rotation)
	// after rotation, X runs along the axis and Y across it
	return math32.Abs(d.X) <= ch.Params.Height/2 && math32.Abs(d.Y) <= ch.Params.Width/2
}

// InteriorZone returns the capture zone on the inside of the membrane
func (ch *Channel) InteriorZone() CaptureZone {
	u := ch.Axis()
	return CaptureZone{
		Origin: ch.Center.Sub(u.MulScalar(ch.Params.Height / 2)),
		Radius: ch.Params.Width * ch.Params.ZoneRadius,
		Angle:  ch.Rotation + math32.Pi,
		Extent: ch.Params.ZoneExtent,
	}
}

// ExteriorZone returns the capture zone on the outside of the membrane
func (ch *Channel) ExteriorZone() CaptureZone {
	u := ch.Axis()
	return CaptureZone{
		Origin: ch.Center.Add(u.MulScalar(ch.Params.Height / 2)),
		Radius: ch.Params.Width * ch.Params.ZoneRadius,
		Angle:  ch.Rotation,
		Extent: ch.Params.ZoneExtent,
	}
}

// SourceZone returns the zone particles start from when crossing in the given direction
func (ch *Channel) SourceZone(dir CrossingDirs) CaptureZone {
	if dir == InToOut {
		return ch.InteriorZone()
	}
	return ch.ExteriorZone()
}

// InteriorMouth is the traversal waypoint at the inner end of the channel
func (ch *Channel) InteriorMouth() math32.Vector2 {
	return ch.Center.Sub(ch.Axis().MulScalar(ch.Params.Height * ch.Params.MouthPos))
}

// ExteriorMouth is the traversal waypoint at the outer end of the channel
func (ch *Channel) ExteriorMouth() math32.Vector2 {
	return ch.Center.Add(ch.Axis().MulScalar(ch.Params.Height * ch.Params.MouthPos))
}

// Mouths returns the entry and exit points for crossing in the given direction
func (ch *Channel) Mouths(dir CrossingDirs) (entry, exit math32.Vector2) {
	if dir == InToOut {
		return ch.InteriorMouth(), ch.ExteriorMouth()
	}
	return ch.ExteriorMouth(), ch.InteriorMouth()
}

// StepInTime updates the gating and capture timing, returning true if the
// openness or inactivation changed.
func (ch *Channel) StepInTime(dt float64) bool {
	if dt <= 0 {
		return false
	}
	prevOpen, prevInact := ch.Openness, ch.Inactivation
	switch ch.Type {
	case SodiumGated:
		ch.stepSodium(dt)
	case PotassiumGated:
		ch.stepPotassium(dt)
	case SodiumLeak, PotassiumLeak:
		ch.Openness = 1
		ch.Inactivation = 0
	default:
		panic(fmt.Sprintf("chans: cannot step %v", ch.Type))
	}
	ch.stepCapture(dt)
	return ch.Openness != prevOpen || ch.Inactivation != prevInact
}

func (ch *Channel) stepCapture(dt float64) {
	if !ch.IsOpen() {
		ch.CaptureTimer = math.Inf(1)
		return
	}
	if math.IsInf(ch.CaptureTimer, 1) {
		ch.RestartCaptureTimer(false)
		return
	}
	ch.CaptureTimer -= dt
	if ch.CaptureTimer <= 0 {
		ch.RestartCaptureTimer(true)
	}
}

// RestartCaptureTimer samples a new inter-capture interval, optionally
// requesting one capture right away.
func (ch *Channel) RestartCaptureTimer(captureNow bool) {
	if captureNow {
		ch.requestCapture()
	}
	ch.CaptureTimer = ch.captureInterval()
}

// captureInterval samples the time until the next capture
func (ch *Channel) captureInterval() float64 {
	cr := ch.Params.CaptureRange
	if !ch.Type.IsLeak() {
		return cr.Min + cr.Range()*ch.Rand.Float64()
	}
	n := 0.0
	if ch.Cond != nil {
		n = math.Min(math.Abs(ch.Cond.LeakCurrent())/ch.Params.LeakNorm, 1)
	}
	return cr.Max - cr.Range()*(1-(n-1)*(n-1))
}

// CrossingDir returns the direction of the next capture
func (ch *Channel) CrossingDir() CrossingDirs {
	switch ch.Type {
	case SodiumGated:
		return OutToIn
	case PotassiumGated:
		return InToOut
	case SodiumLeak:
		if randx.BoolP(ch.Params.ReverseP, ch.Rand) {
			return InToOut
		}
		return OutToIn
	case PotassiumLeak:
		if randx.BoolP(ch.Params.ReverseP, ch.Rand) {
			return OutToIn
		}
		return InToOut
	}
	panic(fmt.Sprintf("chans: no crossing direction for %v", ch.Type))
}

func (ch *Channel) requestCapture() {
	if ch.Capt == nil {
		return
	}
	ch.Capt.RequestParticleThroughChannel(ch.Type.IonType(), ch, ch.Params.Speed, ch.CrossingDir())
}

// State is the restorable part of a channel
type State struct {
	Openness     float32
	Inactivation float32
	Gate         GateStates
	GateTimer    float64
	PrevNorm     float64
	CaptureTimer float64
	Stagger      float64
}

// State returns the restorable state
func (ch *Channel) State() State {
	return State{Openness: ch.Openness, Inactivation: ch.Inactivation, Gate: ch.Gate,
		GateTimer: ch.GateTimer, PrevNorm: ch.PrevNorm, CaptureTimer: ch.CaptureTimer,
		Stagger: ch.Stagger}
}

// SetState restores a state returned by State
func (ch *Channel) SetState(st State) {
	ch.Openness = st.Openness
	ch.Inactivation = st.Inactivation
	ch.Gate = st.Gate
	ch.GateTimer = st.GateTimer
	ch.PrevNorm = st.PrevNorm
	ch.CaptureTimer = st.CaptureTimer
	ch.Stagger = st.Stagger
}
