// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package membrane is the overall repository for the simulation of the
membrane of a neuron's axon, as seen in a cross section while an action
potential passes through.

This top-level of the repository has no functional code.  Everything is
organized into the following packages, from the bottom up:

* delay: a ring buffer answering what a value was some time ago.

* hh: the Hodgkin-Huxley integrator, with a fixed internal step decoupled
from the step it is driven with, and delayed activation readings.

* chans: the membrane channels (gated and leak, sodium and potassium),
their gating state machines and capture zones.

* ions: the particles and their motion and fade behaviors, including the
waypoint traversal through a channel.

* axon: the axon body and the action potential traveling along it to
the cross section.

* playback: generic record and playback of any model with snapshots.

* chart: the membrane potential trace shown after a stimulus.

* neuron: the model tying it all together, advanced one tick at a time.

* examples: runnable programs.  examples/stimulate runs a stimulus with
recording and playback, without any view.
*/
package membrane
