// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"math"
	"testing"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

// fixedCond holds the activation products at fixed values
type fixedCond struct {
	m3h, n4, leak float64
}

func (fc *fixedCond) DelayedM3h(delay float64) float64 { return fc.m3h }
func (fc *fixedCond) DelayedN4(delay float64) float64  { return fc.n4 }
func (fc *fixedCond) LeakCurrent() float64             { return fc.leak }

// countCapt counts capture requests
type countCapt struct {
	n    int
	dirs []CrossingDirs
}

func (cc *countCapt) RequestParticleThroughChannel(ion IonTypes, ch *Channel, speed float32, dir CrossingDirs) {
	cc.n++
	cc.dirs = append(cc.dirs, dir)
}

func TestPotassiumOpenness(t *testing.T) {
	fc := &fixedCond{}
	ch := NewChannel(PotassiumGated, 0, fc, nil, 1)
	fc.n4 = ch.Params.FullyOpen
	ch.StepInTime(1e-5)
	if math32.Abs(ch.Openness-1) > difTol || !ch.IsOpen() {
		t.Errorf("fully open err: openness: %v open: %v", ch.Openness, ch.IsOpen())
	}
	fc.n4 = 0
	ch.StepInTime(1e-5)
	if ch.Openness != 0 || ch.IsOpen() {
		t.Errorf("closed err: openness: %v open: %v", ch.Openness, ch.IsOpen())
	}
	fc.n4 = ch.Params.FullyOpen * 0.5
	ch.StepInTime(1e-5)
	if math32.Abs(ch.Openness-0.75) > difTol {
		t.Errorf("half err: openness: %v != 0.75", ch.Openness)
	}
}

func TestIsOpen(t *testing.T) {
	ch := NewChannel(SodiumGated, 0, nil, nil, 1)
	vals := []float32{0, 0.1, 0.2, 0.21, 0.5, 0.69, 0.7, 0.9, 1}
	for _, op := range vals {
		for _, in := range vals {
			ch.Openness = op
			ch.Inactivation = in
			want := op > 0.2 && in < 0.7
			if ch.IsOpen() != want {
				t.Errorf("isOpen err: openness: %v inactivation: %v got: %v", op, in, ch.IsOpen())
			}
		}
	}
}

func TestSodiumCycle(t *testing.T) {
	fc := &fixedCond{}
	ch := NewChannel(SodiumGated, 0, fc, nil, 1)
	const dt = 1.0e-5
	visited := []GateStates{ch.Gate}
	for i := 0; i < 2000; i++ {
		tm := float64(i) * dt * 1000 // msec
		fc.m3h = 0.3 * math.Exp(-(tm-1)*(tm-1)/0.2)
		prev := ch.Gate
		prevOpen := ch.Openness
		ch.StepInTime(dt)
		if (ch.Gate == Inactivated || ch.Gate == Resetting) && math32.Abs(ch.Openness-prevOpen) > 0.25 {
			t.Errorf("openness jump at step: %v: %v: %v -> %v", i, ch.Gate, prevOpen, ch.Openness)
		}
		if ch.Gate == BecomingInactive && ch.Openness != 1 {
			t.Errorf("becoming inactive openness err at step: %v: %v", i, ch.Openness)
		}
		if ch.Gate == Inactivated && (ch.Openness != 1 || ch.IsOpen()) {
			t.Errorf("inactivated err at step: %v: openness: %v open: %v", i, ch.Openness, ch.IsOpen())
		}
		if ch.Gate != prev {
			if ch.Gate != (prev+1)%GateStatesN {
				t.Errorf("skipped state at step: %v: %v -> %v", i, prev, ch.Gate)
			}
			visited = append(visited, ch.Gate)
		}
		if ch.IsOpen() != (ch.Openness > 0.2 && ch.Inactivation < 0.7) {
			t.Errorf("isOpen inconsistent at step: %v", i)
		}
	}
	cor := []GateStates{Idle, Opening, BecomingInactive, Inactivated, Resetting, Idle}
	if len(visited) != len(cor) {
		t.Fatalf("visited err: %v", visited)
	}
	for i := range cor {
		if visited[i] != cor[i] {
			t.Errorf("visited err: idx: %v, got: %v, cor: %v", i, visited[i], cor[i])
		}
	}
	if ch.Openness != 0 || ch.Inactivation != 0 {
		t.Errorf("reset err: openness: %v inactivation: %v", ch.Openness, ch.Inactivation)
	}
}

func TestCaptureTiming(t *testing.T) {
	fc := &fixedCond{}
	cc := &countCapt{}
	ch := NewChannel(PotassiumGated, 0, fc, cc, 3)
	ch.StepInTime(1e-5)
	if !math.IsInf(ch.CaptureTimer, 1) {
		t.Errorf("closed channel timer err: %v", ch.CaptureTimer)
	}
	fc.n4 = 1
	ch.StepInTime(1e-5) // opens, timer restarts without capture
	if cc.n != 0 || math.IsInf(ch.CaptureTimer, 1) {
		t.Errorf("restart err: captures: %v timer: %v", cc.n, ch.CaptureTimer)
	}
	for i := 0; i < 1000; i++ { // 10 msec
		ch.StepInTime(1e-5)
	}
	// one capture per 0.1 - 0.25 msec
	if cc.n < 39 || cc.n > 101 {
		t.Errorf("capture count err: %v", cc.n)
	}
	for _, d := range cc.dirs {
		if d != InToOut {
			t.Errorf("potassium direction err: %v", d)
		}
	}
	ch.RestartCaptureTimer(true)
	n := cc.n
	fc.n4 = 0
	ch.StepInTime(1e-5)
	if !math.IsInf(ch.CaptureTimer, 1) || cc.n != n {
		t.Errorf("closing should disable timer")
	}
}

func TestLeakInterval(t *testing.T) {
	fc := &fixedCond{}
	ch := NewChannel(SodiumLeak, 0, fc, nil, 1)
	if !ch.IsOpen() {
		t.Errorf("leak should always be open")
	}
	if math.Abs(ch.captureInterval()-ch.Params.CaptureRange.Max) > 1e-12 {
		t.Errorf("rest interval err: %v", ch.captureInterval())
	}
	fc.leak = -30
	if math.Abs(ch.captureInterval()-ch.Params.CaptureRange.Min) > 1e-12 {
		t.Errorf("max current interval err: %v", ch.captureInterval())
	}
}

func TestLeakDirections(t *testing.T) {
	cc := &countCapt{}
	ch := NewChannel(PotassiumLeak, 0, &fixedCond{}, cc, 5)
	for i := 0; i < 1000; i++ {
		ch.RestartCaptureTimer(true)
	}
	rev := 0
	for _, d := range cc.dirs {
		if d == OutToIn {
			rev++
		}
	}
	if rev < 120 || rev > 280 {
		t.Errorf("reverse fraction err: %v / 1000", rev)
	}
}

func TestGeometry(t *testing.T) {
	ch := NewChannel(SodiumGated, 0, nil, nil, 1)
	ch.SetPosition(math32.Vec2(75, 0), 0)
	if !ch.IsPointInChannel(math32.Vec2(75, 0)) {
		t.Errorf("center should be in channel")
	}
	if !ch.IsPointInChannel(math32.Vec2(77, 2)) {
		t.Errorf("corner should be in channel")
	}
	if ch.IsPointInChannel(math32.Vec2(75, 3)) {
		t.Errorf("beyond width should not be in channel")
	}
	ch.SetPosition(math32.Vec2(0, 75), math32.Pi/2)
	if !ch.IsPointInChannel(math32.Vec2(2, 77)) || ch.IsPointInChannel(math32.Vec2(3, 75)) {
		t.Errorf("rotated channel err")
	}
	ez := ch.ExteriorZone()
	iz := ch.InteriorZone()
	if !ch.ExteriorZone().Contains(math32.Vec2(0, 85)) {
		t.Errorf("zone returned by value err")
	}
	if !ez.Contains(math32.Vec2(0, 85)) || ez.Contains(math32.Vec2(0, 65)) {
		t.Errorf("exterior zone err")
	}
	if !iz.Contains(math32.Vec2(0, 65)) || iz.Contains(math32.Vec2(0, 85)) {
		t.Errorf("interior zone err")
	}
	rnd := randx.NewSysRand(7)
	for i := 0; i < 100; i++ {
		p := ez.RandomPoint(rnd)
		if !ez.Contains(p) {
			t.Errorf("random point outside zone: %v", p)
		}
	}
	entry, exit := ch.Mouths(OutToIn)
	if entry.Y <= 75 || exit.Y >= 75 {
		t.Errorf("mouths err: entry: %v exit: %v", entry, exit)
	}
}

func TestStateRoundTrip(t *testing.T) {
	fc := &fixedCond{m3h: 0.3}
	ch := NewChannel(SodiumGated, 0, fc, nil, 1)
	for i := 0; i < 5; i++ {
		ch.StepInTime(1e-5)
	}
	st := ch.State()
	fc.m3h = 0
	for i := 0; i < 50; i++ {
		ch.StepInTime(1e-5)
	}
	ch.SetState(st)
	if ch.State() != st {
		t.Errorf("state round trip err: %v != %v", ch.State(), st)
	}
}

func TestCounts(t *testing.T) {
	var cn Counts
	cn.Defaults()
	if cn.Total() != 50 {
		t.Errorf("total err: %v", cn.Total())
	}
	cor := []int{20, 20, 3, 7}
	for ct := SodiumGated; ct <= PotassiumLeak; ct++ {
		if cn.Of(ct) != cor[ct] {
			t.Errorf("count err: %v: %v != %v", ct, cn.Of(ct), cor[ct])
		}
	}
}
