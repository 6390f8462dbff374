// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import "fmt"

// IonTypes are the kinds of ions that can move through channels
type IonTypes int32

const (
	// Sodium is Na+
	Sodium IonTypes = iota

	// Potassium is K+
	Potassium

	IonTypesN
)

func (it IonTypes) String() string {
	switch it {
	case Sodium:
		return "Sodium"
	case Potassium:
		return "Potassium"
	}
	return fmt.Sprintf("IonTypes(%d)", int32(it))
}

// CrossingDirs are the directions in which a particle can cross the membrane
type CrossingDirs int32

const (
	// InToOut moves from the interior of the cell to the exterior
	InToOut CrossingDirs = iota

	// OutToIn moves from the exterior of the cell to the interior
	OutToIn

	CrossingDirsN
)

// Reverse returns the opposite direction
func (cd CrossingDirs) Reverse() CrossingDirs {
	if cd == InToOut {
		return OutToIn
	}
	return InToOut
}

func (cd CrossingDirs) String() string {
	switch cd {
	case InToOut:
		return "InToOut"
	case OutToIn:
		return "OutToIn"
	}
	return fmt.Sprintf("CrossingDirs(%d)", int32(cd))
}

// ChannelTypes is the closed set of membrane channel kinds.
// All behavior that differs by kind is dispatched by switching on this.
type ChannelTypes int32

const (
	// SodiumGated is the dual-gated (activation + inactivation) sodium channel
	SodiumGated ChannelTypes = iota

	// PotassiumGated is the single-gated potassium channel
	PotassiumGated

	// SodiumLeak is an always-open sodium channel
	SodiumLeak

	// PotassiumLeak is an always-open potassium channel
	PotassiumLeak

	ChannelTypesN
)

func (ct ChannelTypes) String() string {
	switch ct {
	case SodiumGated:
		return "SodiumGated"
	case PotassiumGated:
		return "PotassiumGated"
	case SodiumLeak:
		return "SodiumLeak"
	case PotassiumLeak:
		return "PotassiumLeak"
	}
	return fmt.Sprintf("ChannelTypes(%d)", int32(ct))
}

// IonType returns the type of ion this kind of channel passes
func (ct ChannelTypes) IonType() IonTypes {
	switch ct {
	case SodiumGated, SodiumLeak:
		return Sodium
	case PotassiumGated, PotassiumLeak:
		return Potassium
	}
	panic(fmt.Sprintf("chans: no ion type for %v", ct))
}

// IsGated returns true for the voltage-gated channel kinds
func (ct ChannelTypes) IsGated() bool {
	return ct == SodiumGated || ct == PotassiumGated
}

// IsLeak returns true for the always-open channel kinds
func (ct ChannelTypes) IsLeak() bool {
	return ct == SodiumLeak || ct == PotassiumLeak
}

// GateStates are the states of the sodium dual-gated channel,
// which always cycles through them in order.
type GateStates int32

const (
	// Idle is closed and ready to activate
	Idle GateStates = iota

	// Opening is activating as m3h rises
	Opening

	// BecomingInactive is closing via the inactivation gate as m3h falls
	BecomingInactive

	// Inactivated is fully inactivated, waiting out a fixed dwell time
	Inactivated

	// Resetting is recovering from inactivation over a fixed time
	Resetting

	GateStatesN
)

func (gs GateStates) String() string {
	switch gs {
	case Idle:
		return "Idle"
	case Opening:
		return "Opening"
	case BecomingInactive:
		return "BecomingInactive"
	case Inactivated:
		return "Inactivated"
	case Resetting:
		return "Resetting"
	}
	return fmt.Sprintf("GateStates(%d)", int32(gs))
}
