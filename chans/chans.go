// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the ion channels embedded in the axon membrane:
voltage gated sodium and potassium channels driven by the Hodgkin-Huxley
activations, and sodium and potassium leak channels driven by the leak
current.  Each channel decides when to capture a particle and send it
across the membrane, through a Capturer.

Channels are a closed set of types dispatched in Channel.StepInTime,
rather than an open interface hierarchy.
*/
package chans

// Counts are numbers of channels of each type
type Counts struct {

	// voltage gated sodium channels
	NaGated int `def:"20"`

	// voltage gated potassium channels
	KGated int `def:"20"`

	// sodium leak channels
	NaLeak int `def:"3"`

	// potassium leak channels
	KLeak int `def:"7"`
}

func (cn *Counts) Defaults() {
	cn.SetAll(20, 20, 3, 7)
}

// SetAll sets all the values
func (cn *Counts) SetAll(nag, kg, nal, kl int) {
	cn.NaGated, cn.KGated, cn.NaLeak, cn.KLeak = nag, kg, nal, kl
}

// Total returns the total number of channels
func (cn *Counts) Total() int {
	return cn.NaGated + cn.KGated + cn.NaLeak + cn.KLeak
}

// Of returns the count for the given channel type
func (cn *Counts) Of(ct ChannelTypes) int {
	switch ct {
	case SodiumGated:
		return cn.NaGated
	case PotassiumGated:
		return cn.KGated
	case SodiumLeak:
		return cn.NaLeak
	case PotassiumLeak:
		return cn.KLeak
	}
	return 0
}
