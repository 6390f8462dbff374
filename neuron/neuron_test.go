// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"math"
	"strings"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/emer/membrane/chans"
	"github.com/emer/membrane/ions"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-6

func TestChannelLayout(t *testing.T) {
	nm := NewModel()
	if len(nm.Channels) != 50 {
		t.Fatalf("channel count err: %v", len(nm.Channels))
	}
	counts := make(map[chans.ChannelTypes]int)
	for _, ch := range nm.Channels {
		counts[ch.Type]++
		r := ch.Center.Length()
		if math32.Abs(r-nm.Axon.Params.Diameter/2) > 1e-3 {
			t.Errorf("channel not on the membrane: %v", ch.Center)
		}
	}
	cor := map[chans.ChannelTypes]int{chans.SodiumGated: 20, chans.PotassiumGated: 20, chans.SodiumLeak: 3, chans.PotassiumLeak: 7}
	for ct, n := range cor {
		if counts[ct] != n {
			t.Errorf("type count err: %v: %v != %v", ct, counts[ct], n)
		}
	}
	first := []chans.ChannelTypes{chans.SodiumLeak, chans.PotassiumGated, chans.SodiumGated, chans.PotassiumLeak}
	for i, ct := range first {
		if nm.Channels[i].Type != ct {
			t.Errorf("first placement err: idx: %v, %v != %v", i, nm.Channels[i].Type, ct)
		}
	}
	// no run of more than 3 gated channels of the same type
	run := 1
	for i := 1; i < len(nm.Channels); i++ {
		if nm.Channels[i].Type == nm.Channels[i-1].Type {
			run++
			if run > 3 {
				t.Errorf("uneven placement at: %v", i)
			}
		} else {
			run = 1
		}
	}
}

func TestStimulus(t *testing.T) {
	nm := NewModel()
	if nm.Lockout {
		t.Errorf("should not be locked out at rest")
	}
	if math.Abs(nm.Potential+0.065) > difTol {
		t.Errorf("resting potential err: %v", nm.Potential)
	}
	if !nm.InitiateStimulusPulse() {
		t.Fatalf("stimulus should start")
	}
	cg := nm.StepInTime(DefaultTickDt)
	if !cg.Has(StimulusInitiated) {
		t.Errorf("stimulus change not reported: %v", cg)
	}
	if !nm.Lockout {
		t.Errorf("should be locked out while in flight")
	}
	if _, ok := nm.TravelingAPShape(); !ok {
		t.Errorf("should have a traveling AP shape")
	}
	maxV := math.Inf(-1)
	stimTick := -1
	for i := 0; i < 3000; i++ {
		nm.StepInTime(DefaultTickDt)
		maxV = math.Max(maxV, nm.Potential)
		if stimTick < 0 && !math.IsInf(nm.HH.TimeSinceAP, 1) {
			stimTick = i
		}
	}
	if stimTick < 110 || stimTick > 125 {
		t.Errorf("integrator stimulus should follow the AP travel time: %v", stimTick)
	}
	if maxV < 0.02 {
		t.Errorf("membrane should depolarize: %v", maxV)
	}
	if nm.Lockout {
		t.Errorf("lockout should clear after the action potential")
	}
	if len(nm.Trace.Points) == 0 || !nm.Trace.IsFull() {
		t.Errorf("trace err: %v points", len(nm.Trace.Points))
	}
	cc := nm.Conc
	cp := nm.Params.Conc
	if cc.NaIn != cp.NaIn || cc.NaOut != cp.NaOut || cc.KIn != cp.KIn || cc.KOut != cp.KOut {
		t.Errorf("concentrations should return to nominal: %+v", cc)
	}
}

func TestStimulusLockoutNoOp(t *testing.T) {
	nm := NewModel()
	nm.InitiateStimulusPulse()
	for i := 0; i < 150; i++ {
		nm.StepInTime(DefaultTickDt)
	}
	if !nm.Lockout {
		t.Fatalf("should be locked out")
	}
	hs := nm.HH.State()
	ap := nm.Axon.State()
	if nm.InitiateStimulusPulse() {
		t.Errorf("stimulus during lockout should fail")
	}
	hs2 := nm.HH.State()
	if hs.V != hs2.V || hs.TimeSinceAP != hs2.TimeSinceAP {
		t.Errorf("stimulus during lockout changed the integrator")
	}
	ap2 := nm.Axon.State()
	if (ap == nil) != (ap2 == nil) || (ap != nil && *ap != *ap2) {
		t.Errorf("stimulus during lockout changed the traveling AP")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("toggling all ions during lockout should panic")
		}
	}()
	nm.SetAllIonsSimulated(true)
}

func TestConcentrationsDrift(t *testing.T) {
	nm := NewModel()
	nm.InitiateStimulusPulse()
	maxNaIn := 0.0
	minKIn := math.Inf(1)
	for i := 0; i < 500; i++ {
		nm.StepInTime(DefaultTickDt)
		maxNaIn = math.Max(maxNaIn, nm.Conc.NaIn)
		minKIn = math.Min(minKIn, nm.Conc.KIn)
	}
	if maxNaIn <= nm.Params.Conc.NaIn {
		t.Errorf("interior sodium should rise: %v", maxNaIn)
	}
	if minKIn >= nm.Params.Conc.KIn {
		t.Errorf("interior potassium should fall: %v", minKIn)
	}
}

func TestBulkSeeding(t *testing.T) {
	nm := NewModel()
	nm.SetAllIonsSimulated(true)
	np := &nm.Params
	nbulk := np.BulkNaOut + np.BulkNaIn + np.BulkKOut + np.BulkKIn
	if len(nm.Background) < nbulk {
		t.Errorf("background count err: %v < %v", len(nm.Background), nbulk)
	}
	for _, ch := range nm.Channels {
		switch ch.Type {
		case chans.SodiumGated:
			zn := ch.ExteriorZone()
			if !nm.zoneHas(&zn, chans.Sodium) {
				t.Errorf("sodium gated channel %v has no sodium in its capture zone", ch.Index)
			}
		case chans.PotassiumGated:
			zn := ch.InteriorZone()
			if !nm.zoneHas(&zn, chans.Potassium) {
				t.Errorf("potassium gated channel %v has no potassium in its capture zone", ch.Index)
			}
		}
	}
	for _, pt := range nm.Background {
		if pt.Motion.Type != ions.Jitter {
			t.Errorf("background motion err: %v", pt.Motion.Type)
			break
		}
	}
	nm.SetAllIonsSimulated(false)
	if len(nm.Background) != 0 {
		t.Errorf("background should be removed: %v", len(nm.Background))
	}
}

// observed is what the view sees at one time
type observed struct {
	time      float64
	channels  []chans.State
	particles []ions.Memento
	potential float64
}

func observe(nm *Model) observed {
	ob := observed{time: nm.Rec.Time, potential: nm.Potential}
	for _, ch := range nm.Channels {
		ob.channels = append(ob.channels, ch.State())
	}
	for _, pt := range nm.VisibleParticles() {
		ob.particles = append(ob.particles, pt.Memento())
	}
	return ob
}

func compareObserved(t *testing.T, nm *Model, ob observed) {
	t.Helper()
	for i, ch := range nm.Channels {
		if ch.State() != ob.channels[i] {
			t.Errorf("channel %v err at time %v: %+v != %+v", i, ob.time, ch.State(), ob.channels[i])
		}
	}
	vis := nm.VisibleParticles()
	if len(vis) != len(ob.particles) {
		t.Fatalf("particle count err at time %v: %v != %v", ob.time, len(vis), len(ob.particles))
	}
	for i, pt := range vis {
		if pt.Memento() != ob.particles[i] {
			t.Errorf("particle %v err at time %v: %+v != %+v", i, ob.time, pt.Memento(), ob.particles[i])
		}
	}
	if nm.Potential != ob.potential {
		t.Errorf("potential err at time %v: %v != %v", ob.time, nm.Potential, ob.potential)
	}
}

func TestRecordPlaybackRoundTrip(t *testing.T) {
	nm := NewModel()
	nm.SetAllIonsSimulated(true)
	nm.SetModeRecord()
	nm.InitiateStimulusPulse()
	var obs []observed
	for i := 0; i < 400; i++ {
		nm.StepInTime(DefaultTickDt)
		if i == 150 || i == 200 || i == 350 {
			obs = append(obs, observe(nm))
		}
	}
	if len(obs[1].particles) <= len(nm.Background) {
		t.Errorf("should have transient particles during the action potential")
	}
	npts := len(nm.Trace.Points)
	nm.SetModePlayback()
	for _, ob := range obs {
		nm.SetTime(ob.time)
		compareObserved(t, nm, ob)
	}
	// scrub back and forth
	nm.SetTime(obs[2].time)
	nm.SetTime(obs[0].time)
	if !nm.Lockout {
		t.Errorf("should be locked out while moving backward")
	}
	compareObserved(t, nm, obs[0])
	nm.SetTime(obs[2].time)
	compareObserved(t, nm, obs[2])
	if len(nm.Trace.Points) != npts {
		t.Errorf("trace should be kept whole during playback: %v != %v", len(nm.Trace.Points), npts)
	}
	nm.SetTime(obs[1].time)
	nm.SetModeRecord()
	cut := float32((nm.SimTime - nm.StimTime) * 1000)
	if n := len(nm.Trace.Points); n == 0 || n >= npts || nm.Trace.Points[n-1].Time > cut {
		t.Errorf("trace should be cut at the playback time: %v points, cut: %v", n, cut)
	}
}

func TestPlaybackToRecord(t *testing.T) {
	nm := NewModel()
	nm.SetAllIonsSimulated(true)
	nm.SetModeRecord()
	for i := 0; i < 100; i++ {
		nm.StepInTime(DefaultTickDt)
	}
	nm.SetModePlayback()
	tm := nm.Rec.History[49].Time
	nm.SetTime(tm)
	nplay := len(nm.PlaybackParticles)
	nbulk := countBulk(nm.playbackMms)
	nm.SetModeRecord()
	for _, dp := range nm.Rec.History {
		if dp.Time >= tm {
			t.Errorf("history not truncated: %v >= %v", dp.Time, tm)
		}
	}
	if len(nm.PlaybackParticles) != 0 || len(nm.Background) != nbulk || len(nm.Background)+len(nm.Transient) != nplay {
		t.Errorf("particle handoff err: playback: %v background: %v transient: %v, want %v of %v", len(nm.PlaybackParticles), len(nm.Background), len(nm.Transient), nbulk, nplay)
	}
	nm.StepInTime(DefaultTickDt)
	if n := len(nm.Rec.History); n != 50 {
		t.Errorf("should record again from the cursor: %v", n)
	}
}

func countBulk(mms []ions.Memento) int {
	n := 0
	for i := range mms {
		if mms[i].IsBulk() {
			n++
		}
	}
	return n
}

func TestPlaybackHandoffInChannel(t *testing.T) {
	nm := NewModel()
	nm.SetAllIonsSimulated(true)
	nm.SetModeRecord()
	nm.InitiateStimulusPulse()
	for i := 0; i < 400; i++ {
		nm.StepInTime(DefaultTickDt)
	}
	nm.SetModePlayback()
	// the snapshot with the most particles in channels
	best, most := 0, 0
	for i, dp := range nm.Rec.History {
		mms := dp.State.Particles
		if n := len(mms) - countBulk(mms); n > most {
			best, most = i, n
		}
	}
	if most == 0 {
		t.Fatalf("should have particles in channels during the action potential")
	}
	nm.SetTime(nm.Rec.History[best].Time)
	nbulk := countBulk(nm.playbackMms)
	nm.SetModeRecord()
	if len(nm.Background) != nbulk {
		t.Errorf("only background particles should rejoin the bulk: %v != %v", len(nm.Background), nbulk)
	}
	if len(nm.Transient) != most {
		t.Errorf("particles in channels should stay transient: %v != %v", len(nm.Transient), most)
	}
	out := append([]*ions.Particle{}, nm.Transient...)
	for _, pt := range out {
		if pt.Motion.Type != ions.Wander || pt.Fade.Type == ions.FadeOut {
			t.Errorf("handed over transient err: motion: %v fade: %v", pt.Motion.Type, pt.Fade.Type)
		}
	}
	for i := 0; i < 600; i++ {
		nm.StepInTime(DefaultTickDt)
	}
	for _, pt := range out {
		if pt.Alive {
			t.Errorf("handed over transient should have faded out: %v", pt.Pos)
		}
	}
	if len(nm.Background) != nbulk {
		t.Errorf("bulk should not grow: %v != %v", len(nm.Background), nbulk)
	}
}

func TestStimulusInPlayback(t *testing.T) {
	nm := NewModel()
	nm.SetModeRecord()
	for i := 0; i < 100; i++ {
		nm.StepInTime(DefaultTickDt)
	}
	nm.SetModePlayback()
	nm.SetTime(nm.Rec.History[10].Time)
	nm.SetTime(nm.Rec.History[20].Time) // moving forward, not locked out
	if !nm.InitiateStimulusPulse() {
		t.Fatalf("stimulus should start from playback")
	}
	if !nm.Rec.IsRecording() {
		t.Errorf("should be recording after a stimulus from playback: %v", nm.Rec.Mode)
	}
	if len(nm.Rec.History) != 20 {
		t.Errorf("history should be truncated at the cursor: %v", len(nm.Rec.History))
	}
}

func TestResetAndReport(t *testing.T) {
	nm := NewModel()
	nm.SetModeRecord()
	nm.InitiateStimulusPulse()
	for i := 0; i < 200; i++ {
		nm.StepInTime(DefaultTickDt)
	}
	rep := nm.SizeReport()
	if !strings.Contains(rep, "Channels") || !strings.Contains(rep, "Snapshots: 200") {
		t.Errorf("size report err: %v", rep)
	}
	nm.Reset()
	if nm.Lockout || nm.Axon.InFlight() || len(nm.Rec.History) != 0 || !nm.Rec.IsLive() {
		t.Errorf("reset err")
	}
	if len(nm.Transient) != 0 || math.Abs(nm.Potential+0.065) > difTol {
		t.Errorf("reset state err")
	}
}
