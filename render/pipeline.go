// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gputypes"

	"github.com/glidex/glidex/batch"
)

// AtlasFormat is the texel format of texture atlases: 8-bit palette indices.
const AtlasFormat = gputypes.TextureFormatR8Uint

// PipelineState is the fixed-function state a batch is drawn with.
type PipelineState struct {
	Blend       gputypes.BlendState
	Filter      gputypes.FilterMode
	Topology    gputypes.PrimitiveTopology
	AddressMode gputypes.AddressMode
	WriteMask   gputypes.ColorWriteMask
}

// PipelineStateFor returns the pipeline state of b. Every batch is drawn as
// a triangle list: points and lines are expanded to triangles on the way
// into the vertex stream.
func PipelineStateFor(b batch.Batch) PipelineState {
	return PipelineState{
		Blend:       BlendStateFor(b.AlphaBlend()),
		Filter:      FilterModeFor(b.FilterMode()),
		Topology:    gputypes.PrimitiveTopologyTriangleList,
		AddressMode: gputypes.AddressModeRepeat,
		WriteMask:   gputypes.ColorWriteMaskAll,
	}
}

// BlendStateFor maps an alpha blend mode to a blend state.
func BlendStateFor(a batch.AlphaBlend) gputypes.BlendState {
	switch a {
	case batch.AlphaBlendSrcAlphaInvSrcAlpha:
		return gputypes.BlendStateAlpha()
	case batch.AlphaBlendAdditive:
		return uniformBlend(gputypes.BlendFactorOne, gputypes.BlendFactorOne)
	case batch.AlphaBlendMultiplicative:
		return uniformBlend(gputypes.BlendFactorZero, gputypes.BlendFactorSrc)
	default:
		return gputypes.BlendStateReplace()
	}
}

func uniformBlend(src, dst gputypes.BlendFactor) gputypes.BlendState {
	c := gputypes.BlendComponent{
		SrcFactor: src,
		DstFactor: dst,
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: c, Alpha: c}
}

// FilterModeFor maps a texture filter to a sampler filter mode.
func FilterModeFor(f batch.FilterMode) gputypes.FilterMode {
	if f == batch.FilterBilinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}
