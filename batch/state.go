// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

// AlphaBlend selects how a batch is blended into the framebuffer.
type AlphaBlend uint8

const (
	AlphaBlendOpaque AlphaBlend = iota
	AlphaBlendSrcAlphaInvSrcAlpha
	AlphaBlendAdditive
	AlphaBlendMultiplicative

	alphaBlendCount
)

func (a AlphaBlend) valid() bool { return a < alphaBlendCount }

// String implements fmt.Stringer.
func (a AlphaBlend) String() string {
	switch a {
	case AlphaBlendOpaque:
		return "Opaque"
	case AlphaBlendSrcAlphaInvSrcAlpha:
		return "SrcAlphaInvSrcAlpha"
	case AlphaBlendAdditive:
		return "Additive"
	case AlphaBlendMultiplicative:
		return "Multiplicative"
	default:
		return "AlphaBlend(?)"
	}
}

// RGBCombine selects the source of a fragment's RGB.
type RGBCombine uint8

const (
	// RGBCombineColorMultipliedByTexture modulates the texel by the iterated color.
	RGBCombineColorMultipliedByTexture RGBCombine = iota
	// RGBCombineConstantColor ignores the texture and uses the constant color.
	RGBCombineConstantColor

	rgbCombineCount
)

func (c RGBCombine) valid() bool { return c < rgbCombineCount }

// AlphaCombine selects the source of a fragment's alpha.
type AlphaCombine uint8

const (
	AlphaCombineOne AlphaCombine = iota
	AlphaCombineFromColor

	alphaCombineCount
)

func (c AlphaCombine) valid() bool { return c < alphaCombineCount }

// FilterMode is the texture sampling filter.
type FilterMode uint8

const (
	FilterPoint FilterMode = iota
	FilterBilinear

	filterModeCount
)

func (f FilterMode) valid() bool { return f < filterModeCount }

// String implements fmt.Stringer.
func (f FilterMode) String() string {
	switch f {
	case FilterPoint:
		return "Point"
	case FilterBilinear:
		return "Bilinear"
	default:
		return "FilterMode(?)"
	}
}

// PrimitiveType is the primitive a batch was generated from. Every primitive
// is expanded to a triangle list before it reaches the vertex stream.
type PrimitiveType uint8

const (
	PrimitivePoints PrimitiveType = iota
	PrimitiveLines
	PrimitiveTriangles

	primitiveTypeCount
)

func (p PrimitiveType) valid() bool { return p < primitiveTypeCount }
