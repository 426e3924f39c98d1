// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package render_test

import (
	"fmt"

	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/render"
	"github.com/glidex/glidex/vertex"
)

// ExamplePipelineStateFor shows the pipeline state an additive,
// bilinear-filtered batch is drawn with.
func ExamplePipelineStateFor() {
	b := batch.New()
	b.SetAlphaBlend(batch.AlphaBlendAdditive)
	b.SetFilterMode(batch.FilterBilinear)

	ps := render.PipelineStateFor(b)
	fmt.Println(ps.Blend.Color.SrcFactor == ps.Blend.Color.DstFactor)
	fmt.Println(ps.Filter == render.FilterModeFor(batch.FilterBilinear))
	// Output:
	// true
	// true
}

// ExampleVertexRing shows a write restarting at the beginning of the ring.
func ExampleVertexRing() {
	ring := render.NewVertexRing(8)
	frame := make([]vertex.Vertex, 5)

	first, _ := ring.Write(frame)
	second, _ := ring.Write(frame)
	fmt.Println(first, second, ring.Wraps())
	// Output: 0 0 1
}
