// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
)

// CaptureZone is a pie-slice (wedge) region next to a channel mouth.
// It is a plain value computed from the channel position and rotation,
// so it is never stale when the channel moves.
type CaptureZone struct {

	// point of the wedge, at the channel mouth
	Origin math32.Vector2

	// radius of the wedge
	Radius float32

	// direction of the center line of the wedge, radians
	Angle float32

	// full angular extent of the wedge, radians
	Extent float32
}

// Contains returns true if the point is inside the wedge
func (cz CaptureZone) Contains(p math32.Vector2) bool {
	d := p.Sub(cz.Origin)
	if d.Length() > cz.Radius {
		return false
	}
	if d.X == 0 && d.Y == 0 {
		return true
	}
	return math32.Abs(AngleDiff(math32.Atan2(d.Y, d.X), cz.Angle)) <= cz.Extent/2
}

// RandomPoint returns a point uniformly distributed over the area of the wedge
func (cz CaptureZone) RandomPoint(rnd randx.Rand) math32.Vector2 {
	r := cz.Radius * math32.Sqrt(rnd.Float32())
	ang := cz.Angle - cz.Extent/2 + cz.Extent*rnd.Float32()
	return cz.Origin.Add(math32.Vec2(r*math32.Cos(ang), r*math32.Sin(ang)))
}

// AngleDiff returns a - b wrapped into [-Pi, Pi]
func AngleDiff(a, b float32) float32 {
	d := a - b
	for d > math32.Pi {
		d -= 2 * math32.Pi
	}
	for d < -math32.Pi {
		d += 2 * math32.Pi
	}
	return d
}

// Rotate returns v rotated by ang radians about the origin
func Rotate(v math32.Vector2, ang float32) math32.Vector2 {
	c, s := math32.Cos(ang), math32.Sin(ang)
	return math32.Vec2(v.X*c-v.Y*s, v.X*s+v.Y*c)
}
