// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"github.com/glidex/glidex/batch"
	"github.com/glidex/glidex/render"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdUploadVertices CommandType = iota // Copy the frame's vertices
	CmdUploadTexture                     // Fill an atlas layer
	CmdSetPalette                        // Replace a palette slot
	CmdDraw                              // Draw one merged batch
	CmdPresent                           // Show the frame
)

var commandTypeNames = [...]string{
	CmdUploadVertices: "UploadVertices",
	CmdUploadTexture:  "UploadTexture",
	CmdSetPalette:     "SetPalette",
	CmdDraw:           "Draw",
	CmdPresent:        "Present",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// VertexRef is a reference to a vertex block in the resource pool.
type VertexRef uint32

// TexelRef is a reference to texel data in the resource pool.
type TexelRef uint32

// PaletteRef is a reference to a palette in the resource pool.
type PaletteRef uint32

// InvalidRef is the sentinel value for an invalid reference.
const InvalidRef = ^uint32(0)

// IsValid returns true if the reference is not InvalidRef.
func (r VertexRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r TexelRef) IsValid() bool { return uint32(r) != InvalidRef }

// IsValid returns true if the reference is not InvalidRef.
func (r PaletteRef) IsValid() bool { return uint32(r) != InvalidRef }

// UploadVerticesCommand copies a vertex block into the device.
type UploadVerticesCommand struct {
	// Vertices references the uploaded vertices in the resource pool.
	Vertices VertexRef
	// Base is where the device placed the first vertex.
	Base uint32
}

// Type implements Command.
func (UploadVerticesCommand) Type() CommandType { return CmdUploadVertices }

// UploadTextureCommand fills one atlas layer.
type UploadTextureCommand struct {
	Class  batch.SizeClass
	Atlas  int
	Index  int
	Texels TexelRef
}

// Type implements Command.
func (UploadTextureCommand) Type() CommandType { return CmdUploadTexture }

// SetPaletteCommand replaces a palette slot.
type SetPaletteCommand struct {
	Index   int
	Palette PaletteRef
}

// Type implements Command.
func (SetPaletteCommand) Type() CommandType { return CmdSetPalette }

// DrawCommand draws one merged batch.
type DrawCommand struct {
	Batch      batch.Batch
	BaseVertex uint32
	// Pipeline is the fixed-function state the batch maps to.
	Pipeline render.PipelineState
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }

// PresentCommand ends a frame.
type PresentCommand struct {
	// Frame is the zero-based index of the presented frame.
	Frame int
}

// Type implements Command.
func (PresentCommand) Type() CommandType { return CmdPresent }
