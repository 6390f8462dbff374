// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"cogentcore.org/core/math32"
	"github.com/emer/membrane/chans"
)

// DefaultTickDt is the simulation time advanced per frame at normal speed, sec
const DefaultTickDt = 1.0 / 60 / 1000

// MinTickDt is the smallest step the model is sized for, sec
const MinTickDt = DefaultTickDt / 10

// Params are the orchestration parameters for the neuron model
type Params struct {

	// seed for all random sources in the model
	Seed int64 `def:"1"`

	// number of each type of channel
	Chans chans.Counts `view:"inline"`

	// angle of the first channel on the cross section, radians
	StartAngle float32 `def:"1.4137"`

	// number of bulk particles of each type and location seeded when all ions are simulated
	BulkNaOut int `def:"600"`
	BulkNaIn  int `def:"8"`
	BulkKOut  int `def:"60"`
	BulkKIn   int `def:"200"`

	// outer radius of the exterior particle band, as a multiple of the cross section radius
	ExteriorBand float32 `def:"1.3"`

	// hard cap on the number of live particles
	MaxParticles int `def:"5000"`

	// maximum number of recorded snapshots
	MaxRecordPoints int `def:"1500"`

	// change in membrane potential needed to update the exposed value, mV
	PotentialThr float64 `def:"0.005"`

	// sodium current magnitude above which stimulation is locked out
	LockNaThr float64 `def:"0.001"`

	// potassium current magnitude above which stimulation is locked out
	LockKThr float64 `def:"0.001"`

	// leak current magnitude above which stimulation is locked out
	LockLeakThr float64 `def:"0.444"`

	// time span of the membrane potential chart, msec
	ChartSpan float32 `def:"25"`

	// concentration readout parameters
	Conc ConcParams `view:"inline"`
}

func (np *Params) Defaults() {
	np.Seed = 1
	np.Chans.Defaults()
	np.StartAngle = 0.45 * math32.Pi
	np.BulkNaOut = 600
	np.BulkNaIn = 8
	np.BulkKOut = 60
	np.BulkKIn = 200
	np.ExteriorBand = 1.3
	np.MaxParticles = 5000
	np.MaxRecordPoints = 1500
	np.PotentialThr = 0.005
	np.LockNaThr = 0.001
	np.LockKThr = 0.001
	np.LockLeakThr = 0.444
	np.ChartSpan = 25
	np.Conc.Defaults()
}

func (np *Params) Update() {
	np.Conc.Update()
}

// NChannels returns the total number of channels
func (np *Params) NChannels() int {
	return np.Chans.Total()
}
