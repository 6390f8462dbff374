// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ions

import "fmt"

// FadeTypes are the kinds of opacity change
type FadeTypes int32

const (
	// NoFade leaves the opacity alone
	NoFade FadeTypes = iota

	// FadeIn raises the opacity to 1 over the fade time
	FadeIn

	// FadeOut lowers the opacity to 0 over the fade time, then removes the particle
	FadeOut

	FadeTypesN
)

func (ft FadeTypes) String() string {
	switch ft {
	case NoFade:
		return "NoFade"
	case FadeIn:
		return "FadeIn"
	case FadeOut:
		return "FadeOut"
	}
	return fmt.Sprintf("FadeTypes(%d)", int32(ft))
}

// Fade is the opacity change of a particle
type Fade struct {
	Type FadeTypes

	// total fade time, sec
	Total float64

	// time elapsed in the fade, sec
	Elapsed float64

	// opacity when the fade started (FadeOut)
	Start float32
}

// NewFadeIn returns a fade from transparent to opaque
func NewFadeIn(total float64) Fade {
	return Fade{Type: FadeIn, Total: total}
}

// NewFadeOut returns a fade from the present opacity to transparent
func NewFadeOut(total float64, start float32) Fade {
	return Fade{Type: FadeOut, Total: total, Start: start}
}

// Step advances the fade by dt, which can be negative
func (fd *Fade) Step(pt *Particle, dt float64) {
	if fd.Type == NoFade {
		return
	}
	fd.Elapsed += dt
	if fd.Elapsed < 0 {
		fd.Elapsed = 0
	}
	f := float32(1.0)
	if fd.Total > 0 && fd.Elapsed < fd.Total {
		f = float32(fd.Elapsed / fd.Total)
	}
	switch fd.Type {
	case FadeIn:
		pt.Opacity = f
		if f >= 1 && dt > 0 {
			*fd = Fade{}
		}
	case FadeOut:
		pt.Opacity = fd.Start * (1 - f)
		if f >= 1 && dt > 0 {
			pt.Opacity = 0
			pt.Alive = false
		}
	}
}
