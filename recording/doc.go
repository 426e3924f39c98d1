// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recording captures the device traffic of a frame as typed
// commands.
//
// A [Recorder] is a render.Device that stores every vertex upload, texture
// upload, palette change, draw and present it receives instead of talking
// to a GPU. The resulting [Recording] can be inspected in tests, summarised
// by tools, or played back into another device.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(0)
//	gc, err := glidex.NewContext(rec, glidex.WithGameSize(640, 480))
//	if err != nil {
//		return err
//	}
//	// ... issue draw calls ...
//	gc.BufferSwap(ctx)
//
//	r := rec.FinishRecording()
//	for _, cmd := range r.Commands() {
//		fmt.Println(cmd.Type())
//	}
//
// # Devices by name
//
// Devices are also available by name. The replay tool builds the one
// picked on its command line with [NewDevice], passing the configured
// vertex ring capacity:
//
//	dev, err := recording.NewDevice("record", cfg.Capacity.VertexRing)
//
// Two devices are built in: "record" (a Recorder) and "count" (a Counter
// that keeps statistics only).
package recording
