// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"fmt"
	"math/bits"
)

// Texture memory geometry of the emulated texture mapping unit.
const (
	// TMUAddressAlignment is the required alignment of texture start addresses.
	TMUAddressAlignment = 256

	// TMUMemorySize is the size of the main texture memory in bytes.
	TMUMemorySize = 16 * 1024 * 1024

	// SideTMUMemorySize is the size of the auxiliary texture memory used for
	// textures that do not originate from the game.
	SideTMUMemorySize = 1 * 1024 * 1024
)

// Field limits.
const (
	MaxVertexCount  = 0xFFFF
	MaxStartVertex  = 0xFFFFF
	MaxTextureAtlas = 7
	MaxTextureIndex = 4095
	MaxPaletteIndex = 15

	MinTextureSize = 8
	MaxTextureSize = 256
)

// Palette slots.
const (
	MaxGamePalettes   = 14
	WhitePaletteIndex = 14
	LogoPaletteIndex  = 15
	MaxPalettes       = 16
)

// Surface ids used by the anti-aliasing resolve.
const (
	SurfaceUI     uint16 = 0
	SurfaceCursor uint16 = 1
	SurfaceFirst  uint16 = 2
)

// Batch describes one contiguous run of vertices that share render state.
//
// The zero value is an invalid batch with no texture bound. Batches are
// plain values: copy them freely.
type Batch struct {
	textureHash  uint64
	startVertex  uint32
	textureAddr  uint32 // start address / TMUAddressAlignment + 1; 0 is unset
	surfaceID    uint16
	vertexCount  uint16
	textureIndex uint16
	widthLog2    uint8
	heightLog2   uint8
	atlas        uint8
	paletteIndex uint8
	alphaBlend   AlphaBlend
	rgbCombine   RGBCombine
	alphaCombine AlphaCombine
	filter       FilterMode
	primitive    PrimitiveType
	chromaKey    bool
}

// New returns an invalid batch bound to the UI surface with an 8x8 texture size.
func New() Batch {
	return Batch{
		surfaceID:  SurfaceUI,
		widthLog2:  3,
		heightLog2: 3,
	}
}

// IsValid reports whether a texture start address has been set.
func (b Batch) IsValid() bool {
	return b.textureAddr != 0
}

// TextureStartAddress returns the byte address of the bound texture.
// The result is meaningless when the batch is not valid.
func (b Batch) TextureStartAddress() uint32 {
	return (b.textureAddr - 1) * TMUAddressAlignment
}

// SetTextureStartAddress binds a texture memory address. The address must be
// aligned to TMUAddressAlignment and lie inside the texture memory.
func (b *Batch) SetTextureStartAddress(addr uint32) {
	if addr%TMUAddressAlignment != 0 {
		panic(fmt.Sprintf("batch: texture start address %#x is not %d-byte aligned", addr, TMUAddressAlignment))
	}
	if addr > TMUMemorySize-TMUAddressAlignment {
		panic(fmt.Sprintf("batch: texture start address %#x is outside texture memory", addr))
	}
	b.textureAddr = addr/TMUAddressAlignment + 1
}

// ClearTextureStartAddress makes the batch invalid again.
func (b *Batch) ClearTextureStartAddress() {
	b.textureAddr = 0
}

// TextureHash returns the content identity of the bound texture.
func (b Batch) TextureHash() uint64 { return b.textureHash }

// SetTextureHash sets the content identity of the bound texture.
func (b *Batch) SetTextureHash(h uint64) { b.textureHash = h }

// TextureWidth returns the texture width in texels.
func (b Batch) TextureWidth() int { return 1 << b.widthLog2 }

// TextureHeight returns the texture height in texels.
func (b Batch) TextureHeight() int { return 1 << b.heightLog2 }

// SetTextureSize sets the texture dimensions. Both must be powers of two
// in [MinTextureSize, MaxTextureSize].
func (b *Batch) SetTextureSize(width, height int) {
	b.widthLog2 = textureLog2("width", width)
	b.heightLog2 = textureLog2("height", height)
}

func textureLog2(name string, v int) uint8 {
	if v < MinTextureSize || v > MaxTextureSize || v&(v-1) != 0 {
		panic(fmt.Sprintf("batch: texture %s %d is not a power of two in [%d,%d]", name, v, MinTextureSize, MaxTextureSize))
	}
	return uint8(bits.TrailingZeros(uint(v)))
}

// PaletteIndex returns the palette slot used to resolve texels.
func (b Batch) PaletteIndex() int { return int(b.paletteIndex) }

// SetPaletteIndex selects a palette slot in [0, MaxPaletteIndex].
func (b *Batch) SetPaletteIndex(i int) {
	if i < 0 || i > MaxPaletteIndex {
		panic(fmt.Sprintf("batch: palette index %d out of range [0,%d]", i, MaxPaletteIndex))
	}
	b.paletteIndex = uint8(i)
}

// IsChromaKeyEnabled reports whether chroma keying is on.
func (b Batch) IsChromaKeyEnabled() bool { return b.chromaKey }

// SetChromaKeyEnabled toggles chroma keying.
func (b *Batch) SetChromaKeyEnabled(enabled bool) { b.chromaKey = enabled }

// RGBCombine returns the color combine mode.
func (b Batch) RGBCombine() RGBCombine { return b.rgbCombine }

// SetRGBCombine sets the color combine mode.
func (b *Batch) SetRGBCombine(c RGBCombine) {
	if !c.valid() {
		panic(fmt.Sprintf("batch: invalid rgb combine %d", c))
	}
	b.rgbCombine = c
}

// AlphaCombine returns the alpha combine mode.
func (b Batch) AlphaCombine() AlphaCombine { return b.alphaCombine }

// SetAlphaCombine sets the alpha combine mode.
func (b *Batch) SetAlphaCombine(c AlphaCombine) {
	if !c.valid() {
		panic(fmt.Sprintf("batch: invalid alpha combine %d", c))
	}
	b.alphaCombine = c
}

// AlphaBlend returns the framebuffer blend mode.
func (b Batch) AlphaBlend() AlphaBlend { return b.alphaBlend }

// SetAlphaBlend sets the framebuffer blend mode.
func (b *Batch) SetAlphaBlend(a AlphaBlend) {
	if !a.valid() {
		panic(fmt.Sprintf("batch: invalid alpha blend %d", a))
	}
	b.alphaBlend = a
}

// FilterMode returns the texture filter mode.
func (b Batch) FilterMode() FilterMode { return b.filter }

// SetFilterMode sets the texture filter mode.
func (b *Batch) SetFilterMode(f FilterMode) {
	if !f.valid() {
		panic(fmt.Sprintf("batch: invalid filter mode %d", f))
	}
	b.filter = f
}

// PrimitiveType returns the primitive the batch was generated from.
func (b Batch) PrimitiveType() PrimitiveType { return b.primitive }

// SetPrimitiveType records the primitive the batch was generated from.
func (b *Batch) SetPrimitiveType(p PrimitiveType) {
	if !p.valid() {
		panic(fmt.Sprintf("batch: invalid primitive type %d", p))
	}
	b.primitive = p
}

// StartVertex returns the index of the first vertex in the frame's vertex stream.
func (b Batch) StartVertex() int { return int(b.startVertex) }

// SetStartVertex sets the index of the first vertex, at most MaxStartVertex.
func (b *Batch) SetStartVertex(v int) {
	if v < 0 || v > MaxStartVertex {
		panic(fmt.Sprintf("batch: start vertex %d out of range [0,%d]", v, MaxStartVertex))
	}
	b.startVertex = uint32(v)
}

// VertexCount returns the number of vertices in the batch.
func (b Batch) VertexCount() int { return int(b.vertexCount) }

// SetVertexCount sets the number of vertices, at most MaxVertexCount.
func (b *Batch) SetVertexCount(n int) {
	if n < 0 || n > MaxVertexCount {
		panic(fmt.Sprintf("batch: vertex count %d out of range [0,%d]", n, MaxVertexCount))
	}
	b.vertexCount = uint16(n)
}

// TextureAtlas returns which atlas of the texture cache holds the texture.
func (b Batch) TextureAtlas() int { return int(b.atlas) }

// SetTextureAtlas sets the atlas, at most MaxTextureAtlas.
func (b *Batch) SetTextureAtlas(a int) {
	if a < 0 || a > MaxTextureAtlas {
		panic(fmt.Sprintf("batch: texture atlas %d out of range [0,%d]", a, MaxTextureAtlas))
	}
	b.atlas = uint8(a)
}

// TextureIndex returns the texture's slot within its atlas.
func (b Batch) TextureIndex() int { return int(b.textureIndex) }

// SetTextureIndex sets the slot within the atlas, at most MaxTextureIndex.
func (b *Batch) SetTextureIndex(i int) {
	if i < 0 || i > MaxTextureIndex {
		panic(fmt.Sprintf("batch: texture index %d out of range [0,%d]", i, MaxTextureIndex))
	}
	b.textureIndex = uint16(i)
}

// SurfaceID returns the logical surface used by the anti-aliasing resolve.
func (b Batch) SurfaceID() uint16 { return b.surfaceID }

// SetSurfaceID sets the logical surface.
func (b *Batch) SetSurfaceID(id uint16) { b.surfaceID = id }

// SizeClass identifies the texture cache a batch resolves to. Batches with
// different size classes can never share a draw call.
type SizeClass struct {
	WidthLog2, HeightLog2 uint8
}

// SizeClass returns the texture cache identity derived from the texture size.
func (b Batch) SizeClass() SizeClass {
	return SizeClass{WidthLog2: b.widthLog2, HeightLog2: b.heightLog2}
}

// String implements fmt.Stringer.
func (s SizeClass) String() string {
	return fmt.Sprintf("%dx%d", 1<<s.WidthLog2, 1<<s.HeightLog2)
}

// SelectColorAndAlpha returns the ARGB color to feed the combiner.
//
// With ConstantColor the RGB comes from the constant color, otherwise from
// the iterated vertex color. Alpha comes from the constant color and is
// forced to 0xFF unless the blend mode is SrcAlphaInvSrcAlpha.
func (b Batch) SelectColorAndAlpha(iterated, constant uint32) uint32 {
	rgb := iterated
	if b.rgbCombine == RGBCombineConstantColor {
		rgb = constant
	}
	result := rgb&0x00FFFFFF | constant&0xFF000000
	if b.alphaBlend != AlphaBlendSrcAlphaInvSrcAlpha {
		result |= 0xFF000000
	}
	return result
}

// String implements fmt.Stringer.
func (b Batch) String() string {
	if !b.IsValid() {
		return "Batch(invalid)"
	}
	return fmt.Sprintf("Batch(tex=%016x@%#x %s atlas=%d/%d blend=%s filter=%s verts=%d+%d)",
		b.textureHash, b.TextureStartAddress(), b.SizeClass(), b.atlas, b.textureIndex,
		b.alphaBlend, b.filter, b.startVertex, b.vertexCount)
}
