// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

// BlendFactor is a Glide alpha blend function factor (GrAlphaBlendFnc_t).
type BlendFactor uint32

const (
	BlendZero             BlendFactor = 0
	BlendSrcAlpha         BlendFactor = 1
	BlendSrcColor         BlendFactor = 2
	BlendDstAlpha         BlendFactor = 3
	BlendOne              BlendFactor = 4
	BlendOneMinusSrcAlpha BlendFactor = 5
	BlendOneMinusSrcColor BlendFactor = 6
	BlendOneMinusDstAlpha BlendFactor = 7
)

// CombineFunction is a Glide combine function (GrCombineFunction_t).
type CombineFunction uint32

const (
	CombineFunctionZero       CombineFunction = 0
	CombineFunctionLocal      CombineFunction = 1
	CombineFunctionLocalAlpha CombineFunction = 2
	CombineFunctionScaleOther CombineFunction = 3
)

// CombineFactor is a Glide combine factor (GrCombineFactor_t).
type CombineFactor uint32

const (
	CombineFactorZero         CombineFactor = 0
	CombineFactorLocal        CombineFactor = 1
	CombineFactorOtherAlpha   CombineFactor = 2
	CombineFactorLocalAlpha   CombineFactor = 3
	CombineFactorTextureAlpha CombineFactor = 4
	CombineFactorOne          CombineFactor = 8
)

// CombineLocal is a Glide local combine source (GrCombineLocal_t).
type CombineLocal uint32

const (
	CombineLocalIterated CombineLocal = 0
	CombineLocalConstant CombineLocal = 1
	CombineLocalDepth    CombineLocal = 2
)

// CombineOther is a Glide other combine source (GrCombineOther_t).
type CombineOther uint32

const (
	CombineOtherIterated CombineOther = 0
	CombineOtherTexture  CombineOther = 1
	CombineOtherConstant CombineOther = 2
)

// TextureFilter is a Glide texture filter mode (GrTextureFilterMode_t).
type TextureFilter uint32

const (
	TextureFilterPointSampled TextureFilter = 0
	TextureFilterBilinear     TextureFilter = 1
)

// ChromaKeyMode is a Glide chroma-key mode (GrChromakeyMode_t).
type ChromaKeyMode uint32

const (
	ChromaKeyDisable ChromaKeyMode = 0
	ChromaKeyEnable  ChromaKeyMode = 1
)

// DrawMode is the primitive mode of a vertex array draw.
type DrawMode uint32

const (
	TriangleStrip DrawMode = 4
	TriangleFan   DrawMode = 5
)

// String implements fmt.Stringer.
func (m DrawMode) String() string {
	switch m {
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	default:
		return "DrawMode(?)"
	}
}

// GameVertex is a vertex as the game submits it.
type GameVertex struct {
	X, Y  float32
	S, T  float32
	Color uint32
}
