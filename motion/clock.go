// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package motion

const (
	// FrameLength is the simulation tick, 1/25 s in fixed point.
	FrameLength Fixed = One / 25

	// LookAhead is added to every projected frame time to make up for
	// present latency.
	LookAhead Fixed = 10
)

// Clock tracks where the current display frame falls inside the
// simulation tick. All times are fixed-point seconds.
//
// The zero value is ready to use.
type Clock struct {
	sinceLastUpdate  Fixed
	fromPrevFrame    Fixed
	currentFrameTime Fixed
	update           bool
}

// Advance is the outcome of Clock.Advance.
type Advance struct {
	// Update is true if a simulation tick is expected during this frame.
	Update bool

	// Reset is true if the clock drifted out of bounds and was zeroed.
	// Tracked history is no longer meaningful.
	Reset bool
}

// Fraction returns how far into the tick the current frame is, in [0, 1]
// for a well-behaved clock. Prediction offsets are scaled by it.
func (c *Clock) Fraction() float64 {
	return (c.sinceLastUpdate + c.fromPrevFrame).Float() / (FrameLength + c.fromPrevFrame).Float()
}

// UpdateExpected reports whether positions may change this frame.
func (c *Clock) UpdateExpected() bool { return c.update }

// SinceLastUpdate returns the time elapsed since the last tick.
func (c *Clock) SinceLastUpdate() Fixed { return c.sinceLastUpdate }

// FromPrevFrame returns the part of the previous tick carried into this one.
func (c *Clock) FromPrevFrame() Fixed { return c.fromPrevFrame }

// CurrentFrameTime returns the projected duration of the current frame,
// including LookAhead.
func (c *Clock) CurrentFrameTime() Fixed { return c.currentFrameTime }

// Advance moves the clock to the next frame. prevProjected is the frame
// time that was projected for the frame just finished, prevActual is the
// time it really took and projected is the expected time of the next frame.
func (c *Clock) Advance(prevProjected, prevActual, projected Fixed) Advance {
	c.sinceLastUpdate -= prevProjected + LookAhead
	c.sinceLastUpdate += prevActual
	c.update = false

	timeBeforeUpdate := FrameLength - c.sinceLastUpdate
	c.currentFrameTime = projected + LookAhead
	c.sinceLastUpdate += projected + LookAhead

	switch {
	case c.sinceLastUpdate >= FrameLength:
		c.update = true
		c.sinceLastUpdate -= FrameLength
		c.fromPrevFrame = timeBeforeUpdate
		if c.sinceLastUpdate >= FrameLength {
			c.zero()
			return Advance{Update: true, Reset: true}
		}
		return Advance{Update: true}
	case c.sinceLastUpdate < -FrameLength:
		c.update = true
		c.zero()
		return Advance{Update: true, Reset: true}
	}
	return Advance{}
}

// Reconcile handles a position change observed outside the expected tick.
// An update in the first half of the tick is assumed early and pulls the
// clock back. One in the second half is assumed late and starts the next
// tick now. It returns the applied adjustment and whether it jumped ahead.
func (c *Clock) Reconcile() (adjust Fixed, jumped bool) {
	c.update = true
	if c.sinceLastUpdate < FrameLength/2 {
		drawBack := (c.currentFrameTime - LookAhead) / 4
		c.sinceLastUpdate -= drawBack
		return drawBack, false
	}
	jumpAhead := FrameLength - c.sinceLastUpdate
	c.fromPrevFrame = jumpAhead + c.currentFrameTime
	c.sinceLastUpdate = 0
	return jumpAhead, true
}

func (c *Clock) zero() {
	c.currentFrameTime = 0
	c.sinceLastUpdate = 0
	c.fromPrevFrame = 0
}
