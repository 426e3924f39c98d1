// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

import "github.com/glidex/glidex/motion"

// MotionEnabled reports whether the context predicts motion.
func (c *Context) MotionEnabled() bool { return c.predictor != nil }

// UnitOffset returns the offset to draw unit h with. screenPos is where
// the game places the unit this frame. Without motion prediction the
// offset is zero.
func (c *Context) UnitOffset(h motion.Handle, screenPos motion.ScreenPoint, isPlayer bool) motion.Offset {
	if c.predictor == nil {
		return motion.Offset{}
	}
	return c.predictor.UnitOffset(h, screenPos, isPlayer)
}

// TextOffset returns the offset to draw the floating text id with.
func (c *Context) TextOffset(id uint64, pos motion.ScreenPoint) motion.Offset {
	if c.predictor == nil {
		return motion.Offset{}
	}
	return c.predictor.TextOffset(id, pos)
}

// BeginShadow marks the start of a shadow drawn at screenPos. The draws
// up to EndShadow are moved with the unit nearest to it at buffer swap.
func (c *Context) BeginShadow(screenPos motion.ScreenPoint) {
	if c.predictor == nil {
		return
	}
	c.predictor.StartShadow(screenPos, c.verts.Len())
}

// EndShadow ends the shadow started by BeginShadow.
func (c *Context) EndShadow() {
	if c.predictor == nil {
		return
	}
	c.predictor.EndShadow(c.verts.Len())
}

// MotionStats returns the predictor counters. It is the zero value
// without motion prediction.
func (c *Context) MotionStats() motion.Stats {
	if c.predictor == nil {
		return motion.Stats{}
	}
	return c.predictor.Stats()
}
