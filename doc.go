// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glidex translates a legacy fixed-function 3D API's immediate-mode
// draw calls into batched draw submissions for a modern render device.
//
// # Overview
//
// The game issues Glide-style calls one primitive at a time: state changes
// (blend function, color combine, chroma key, texture source, palette) and
// draws (points, lines, triangle fans and strips). A [Context] folds the
// state changes into a scratch batch, expands every draw into a triangle
// list in a per-frame vertex stream, and appends one batch per draw. At
// [Context.BufferSwap] adjacent compatible batches are merged into as few
// device draw calls as possible, in the original draw order.
//
// # Quick Start
//
//	import (
//		"github.com/glidex/glidex"
//		"github.com/glidex/glidex/recording"
//	)
//
//	rec := recording.NewRecorder(0)
//	gc, err := glidex.NewContext(rec, glidex.WithGameSize(640, 480))
//	if err != nil {
//		return err
//	}
//
//	gc.SetAlphaBlendFunction(glidex.BlendOne, glidex.BlendZero, glidex.BlendZero, glidex.BlendZero)
//	gc.TexDownload(0, texels, 32, 32)
//	gc.TexSource(0, 32, 32)
//	gc.DrawVertexArrayContiguous(glidex.TriangleFan, quad)
//
//	stats, err := gc.BufferSwap(ctx)
//
// # Motion Prediction
//
// The game simulates at 25 ticks per second. When a [motion.UnitInfoProvider]
// is configured with [WithUnitInfo], the Context also runs a motion
// predictor: [Context.UnitOffset] and [Context.TextOffset] return the
// sub-tick screen offsets to draw units and floating texts with, and
// shadows bracketed by [Context.BeginShadow] and [Context.EndShadow] follow
// their unit. The predictor's clock is advanced with the measured frame
// time at every buffer swap.
//
// # Devices
//
// Draw submissions go to a [render.Device]. The recording package provides
// a device that records typed commands for tests and the replay tool.
//
// # Concurrency
//
// A Context is driven by the thread that issues the draw calls and is not
// safe for concurrent use. Only [SetLogger] and [Logger] may be called from
// any goroutine.
package glidex

// Version is the current version of the library.
const Version = "0.3.0"
