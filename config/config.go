// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads glidex options from YAML and from the legacy -dx
// command-line switches.
package config

import "fmt"

// Options is the complete glidex configuration.
type Options struct {
	OptOuts  OptOuts  `yaml:"optouts"`
	Game     Game     `yaml:"game"`
	Window   Window   `yaml:"window"`
	Debug    Debug    `yaml:"debug"`
	Capacity Capacity `yaml:"capacity"`
}

// OptOuts disables individual features. Every flag defaults to false
// except NoVSync and NoFrameTearing.
type OptOuts struct {
	NoClipCursor       bool `yaml:"noclipcursor"`
	NoResMod           bool `yaml:"noresmod"`
	NoFpsMod           bool `yaml:"nofpsmod"`
	NoWide             bool `yaml:"nowide"`
	NoAntiAliasing     bool `yaml:"noaa"`
	NoCompatModeFix    bool `yaml:"nocompatmodefix"`
	NoTitleChange      bool `yaml:"notitlechange"`
	NoVSync            bool `yaml:"novsync"`
	NoKeepAspectRatio  bool `yaml:"nokeepaspectratio"`
	NoFrameTearing     bool `yaml:"noframetearing"`
	NoMotionPrediction bool `yaml:"nomotionprediction"`
}

// UpscaleMethod selects the filter used to scale the game image to the
// window.
type UpscaleMethod int

const (
	UpscaleHighQuality UpscaleMethod = iota
	UpscaleBilinear
	UpscaleCatmullRom
	UpscaleNearest
	UpscaleRasterize

	upscaleMethodCount
)

// String implements fmt.Stringer.
func (m UpscaleMethod) String() string {
	switch m {
	case UpscaleHighQuality:
		return "HighQuality"
	case UpscaleBilinear:
		return "Bilinear"
	case UpscaleCatmullRom:
		return "CatmullRom"
	case UpscaleNearest:
		return "Nearest"
	case UpscaleRasterize:
		return "Rasterize"
	default:
		return fmt.Sprintf("UpscaleMethod(%d)", int(m))
	}
}

// Game holds the game-facing settings.
type Game struct {
	// Size is the game resolution. Negative values mean unset.
	Size [2]int `yaml:"size"`

	Filtering         UpscaleMethod `yaml:"filtering"`
	BilinearSharpness float64       `yaml:"bilinear-sharpness"`
}

// GameSize returns the configured game size and whether it is set.
func (g Game) GameSize() (width, height int, ok bool) {
	if g.Size[0] <= 0 || g.Size[1] <= 0 {
		return 0, 0, false
	}
	return g.Size[0], g.Size[1], true
}

// Window holds the window placement.
type Window struct {
	Scale     float64 `yaml:"scale"`
	Position  [2]int  `yaml:"position"`
	Frameless bool    `yaml:"frameless"`
}

// Debug holds diagnostics switches.
type Debug struct {
	DumpTextures bool   `yaml:"dumptextures"`
	DumpDir      string `yaml:"dumpdir"`
}

// Capacity sizes the per-frame buffers. Zero selects the package default.
type Capacity struct {
	Batches    int `yaml:"batches"`
	Vertices   int `yaml:"vertices"`
	VertexRing int `yaml:"vertexring"`
}

// Default returns the built-in configuration.
func Default() Options {
	return Options{
		OptOuts: OptOuts{
			NoVSync:        true,
			NoFrameTearing: true,
		},
		Game: Game{
			Size:              [2]int{-1, -1},
			Filtering:         UpscaleHighQuality,
			BilinearSharpness: 2.0,
		},
		Window: Window{
			Scale:    1,
			Position: [2]int{-1, -1},
		},
		Debug: Debug{
			DumpDir: "dump",
		},
		Capacity: Capacity{
			Batches:    16384,
			Vertices:   1024 * 1024,
			VertexRing: 1024 * 1024,
		},
	}
}

// ValidationError reports an invalid configuration value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "config: invalid " + e.Field + ": " + e.Reason
}

// Validate checks the options for values the renderer cannot honour.
func (o *Options) Validate() error {
	if o.Window.Scale < 1 || o.Window.Scale > 3 {
		return &ValidationError{Field: "window.scale", Reason: "must be between 1 and 3"}
	}
	if o.Game.Filtering < 0 || o.Game.Filtering >= upscaleMethodCount {
		return &ValidationError{Field: "game.filtering", Reason: fmt.Sprintf("must be between 0 and %d", upscaleMethodCount-1)}
	}
	for i, v := range o.Game.Size {
		if v == 0 || v > 8192 {
			return &ValidationError{Field: "game.size", Reason: fmt.Sprintf("component %d must be -1 or in 1..8192", i)}
		}
	}
	if o.Capacity.Batches < 0 || o.Capacity.Vertices < 0 || o.Capacity.VertexRing < 0 {
		return &ValidationError{Field: "capacity", Reason: "must not be negative"}
	}
	if o.Debug.DumpTextures && o.Debug.DumpDir == "" {
		return &ValidationError{Field: "debug.dumpdir", Reason: "required when dumptextures is set"}
	}
	return nil
}

// normalize clamps values the way the legacy loader did.
func (o *Options) normalize() {
	for i := range o.Game.Size {
		o.Game.Size[i] = max(-1, o.Game.Size[i])
	}
	for i := range o.Window.Position {
		o.Window.Position[i] = max(-1, o.Window.Position[i])
	}
}
