// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package motion

import (
	"math"
	"time"
)

// Fixed is a signed 16.16 fixed-point number.
type Fixed int32

// One is 1.0 in fixed point.
const One Fixed = 1 << 16

// FixedFromFloat converts f, truncating toward zero.
func FixedFromFloat(f float64) Fixed {
	return Fixed(f * float64(One))
}

// Float returns the value of x.
func (x Fixed) Float() float64 {
	return float64(x) / float64(One)
}

// FromDuration converts d to fixed-point seconds, saturating at the int32
// range.
func FromDuration(d time.Duration) Fixed {
	v := d.Seconds() * float64(One)
	switch {
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return Fixed(v)
}

// Point is a position in fixed-point game units.
type Point struct {
	X, Y Fixed
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Div returns p/n, truncating toward zero.
func (p Point) Div(n Fixed) Point { return Point{p.X / n, p.Y / n} }

// Neg returns -p.
func (p Point) Neg() Point { return Point{-p.X, -p.Y} }

// ScreenPoint is an integer screen position in game pixels.
type ScreenPoint struct {
	X, Y int32
}

// Offset is a screen-space displacement in pixels.
type Offset struct {
	X, Y float32
}

// Add returns o+q.
func (o Offset) Add(q Offset) Offset { return Offset{o.X + q.X, o.Y + q.Y} }

// Sub returns o-q.
func (o Offset) Sub(q Offset) Offset { return Offset{o.X - q.X, o.Y - q.Y} }

// Scale returns o*s.
func (o Offset) Scale(s float32) Offset { return Offset{o.X * s, o.Y * s} }

// IsZero reports whether o is (0, 0).
func (o Offset) IsZero() bool { return o.X == 0 && o.Y == 0 }

func offsetOf(p ScreenPoint) Offset {
	return Offset{float32(p.X), float32(p.Y)}
}

// Isometric projection of one game unit.
const (
	gameToScreenX = float32(32 / math.Sqrt2)
	gameToScreenY = float32(16 / math.Sqrt2)
)

// gameToScreen projects a displacement in game units onto the screen.
func gameToScreen(x, y float64) Offset {
	return Offset{
		X: gameToScreenX * float32(x-y),
		Y: gameToScreenY * float32(x+y),
	}
}
