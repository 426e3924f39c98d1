// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vertex holds the transformed vertex format and the per-frame
// vertex stream that draw-call handlers append to.
package vertex

// Vertex is one screen-space vertex as uploaded to the device.
type Vertex struct {
	// X and Y are the screen position in game pixels.
	X, Y float32

	// S and T are texel coordinates inside the bound texture.
	S, T int16

	// Color is the packed ARGB color fed to the combiner.
	Color uint32

	// AtlasIndex is the texture's slot inside its atlas.
	AtlasIndex uint16

	// SurfaceID is the logical surface used by the anti-aliasing resolve.
	SurfaceID uint16

	// PaletteIndex selects the palette used to resolve texels.
	PaletteIndex uint8

	// ChromaKey carries the batch's chroma-key flag through to the shader.
	ChromaKey bool
}

// SetPosition sets the screen position.
func (v *Vertex) SetPosition(x, y float32) {
	v.X, v.Y = x, y
}

// AddOffset moves the vertex by (dx, dy) pixels.
func (v *Vertex) AddOffset(dx, dy float32) {
	v.X += dx
	v.Y += dy
}

// SetTexcoord sets the texel coordinates.
func (v *Vertex) SetTexcoord(s, t int32) {
	v.S, v.T = int16(s), int16(t)
}
