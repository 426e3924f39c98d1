// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package motion

// Handle is an opaque reference to a game unit. Handles are recycled by
// the game and are only meaningful within one frame.
type Handle uint64

// UnitInfo is what the game reports about a unit.
type UnitInfo struct {
	ID   uint32
	Type uint32
	Pos  Point
}

// UnitInfoProvider reads unit state from the game. It is called for every
// visible unit every frame and may return garbage for recycled handles.
type UnitInfoProvider interface {
	UnitInfo(h Handle) UnitInfo
}

// UnitInfoFunc adapts a function to UnitInfoProvider.
type UnitInfoFunc func(h Handle) UnitInfo

// UnitInfo calls f(h).
func (f UnitInfoFunc) UnitInfo(h Handle) UnitInfo { return f(h) }

// Panel bits reported by Screen.OpenPanels.
const (
	PanelLeft  = 1 << 0
	PanelRight = 1 << 1
)

// Screen describes the visible game area.
type Screen interface {
	// GameSize returns the game resolution in pixels.
	GameSize() (width, height int)

	// OpenPanels returns a mask of PanelLeft and PanelRight.
	OpenPanels() int
}
