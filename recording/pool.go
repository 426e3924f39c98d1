// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"slices"

	"github.com/glidex/glidex/texture"
	"github.com/glidex/glidex/vertex"
)

// ResourcePool stores the data referenced by recorded commands. Every Add
// copies its argument, so a recording is unaffected by later writes to the
// caller's buffers.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	vertices [][]vertex.Vertex
	texels   [][]byte
	palettes []texture.Palette
}

// NewResourcePool creates an empty resource pool.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		vertices: make([][]vertex.Vertex, 0, 64),
		texels:   make([][]byte, 0, 64),
		palettes: make([]texture.Palette, 0, 16),
	}
}

// AddVertices stores a copy of vs and returns its reference.
func (p *ResourcePool) AddVertices(vs []vertex.Vertex) VertexRef {
	p.vertices = append(p.vertices, slices.Clone(vs))
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return VertexRef(uint32(len(p.vertices) - 1))
}

// Vertices returns the vertex block for ref, or nil if ref is invalid.
func (p *ResourcePool) Vertices(ref VertexRef) []vertex.Vertex {
	if int(ref) >= len(p.vertices) {
		return nil
	}
	return p.vertices[ref]
}

// AddTexels stores a copy of texels and returns its reference.
func (p *ResourcePool) AddTexels(texels []byte) TexelRef {
	p.texels = append(p.texels, slices.Clone(texels))
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return TexelRef(uint32(len(p.texels) - 1))
}

// Texels returns the texel data for ref, or nil if ref is invalid.
func (p *ResourcePool) Texels(ref TexelRef) []byte {
	if int(ref) >= len(p.texels) {
		return nil
	}
	return p.texels[ref]
}

// AddPalette stores a copy of pal and returns its reference.
func (p *ResourcePool) AddPalette(pal *texture.Palette) PaletteRef {
	p.palettes = append(p.palettes, *pal)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PaletteRef(uint32(len(p.palettes) - 1))
}

// Palette returns the palette for ref, or nil if ref is invalid.
func (p *ResourcePool) Palette(ref PaletteRef) *texture.Palette {
	if int(ref) >= len(p.palettes) {
		return nil
	}
	return &p.palettes[ref]
}

// Counts returns the number of stored vertex blocks, texel blocks and
// palettes.
func (p *ResourcePool) Counts() (vertexBlocks, texelBlocks, palettes int) {
	return len(p.vertices), len(p.texels), len(p.palettes)
}

// Clear removes all resources from the pool.
func (p *ResourcePool) Clear() {
	p.vertices = p.vertices[:0]
	p.texels = p.texels[:0]
	p.palettes = p.palettes[:0]
}
