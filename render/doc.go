// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the graphics device a frame is submitted to and
// the helpers shared by device implementations.
//
// The draw-call handler never talks to a GPU API directly. At the end of a
// frame it uploads the vertex stream, submits merged batches in draw order
// and presents, all through [Device]. Textures reach the device through the
// texture cache, which calls UploadTexture for every slot it fills.
//
// [PipelineStateFor] translates a batch's render state into gputypes
// descriptors, so that a WebGPU backend can build its pipelines from it.
// [VertexRing] implements the usual wrap-around vertex buffer.
package render
