// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownOption is returned by SetOptOut for names without a flag.
var ErrUnknownOption = errors.New("config: unknown option")

// optOut returns the flag named like its YAML key.
func (o *OptOuts) optOut(name string) *bool {
	switch name {
	case "noclipcursor":
		return &o.NoClipCursor
	case "noresmod":
		return &o.NoResMod
	case "nofpsmod":
		return &o.NoFpsMod
	case "nowide":
		return &o.NoWide
	case "noaa":
		return &o.NoAntiAliasing
	case "nocompatmodefix":
		return &o.NoCompatModeFix
	case "notitlechange":
		return &o.NoTitleChange
	case "novsync":
		return &o.NoVSync
	case "nokeepaspectratio":
		return &o.NoKeepAspectRatio
	case "noframetearing":
		return &o.NoFrameTearing
	case "nomotionprediction":
		return &o.NoMotionPrediction
	}
	return nil
}

// SetOptOut sets the opt-out flag with the given YAML name.
func (o *Options) SetOptOut(name string, value bool) error {
	p := o.OptOuts.optOut(strings.ToLower(name))
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	*p = value
	return nil
}

// ApplyCommandLine applies the -dx switches found anywhere in cmdLine.
// Unrecognised text is ignored.
func (o *Options) ApplyCommandLine(cmdLine string) {
	for _, name := range []string{
		"noclipcursor", "noresmod", "nofpsmod", "nowide", "novsync",
		"noaa", "nocompatmodefix", "notitlechange", "nokeepaspectratio",
		"nomotionprediction",
	} {
		if strings.Contains(cmdLine, "-dx"+name) {
			*o.OptOuts.optOut(name) = true
		}
	}
	if strings.Contains(cmdLine, "-dxvsync") {
		o.OptOuts.NoVSync = false
	}
	if strings.Contains(cmdLine, "-dxframetearing") {
		o.OptOuts.NoFrameTearing = false
	}

	if v, ok := switchValue(cmdLine, "-dxupscale="); ok && len(v) > 0 {
		if m := UpscaleMethod(v[0] - '0'); m >= 0 && m < upscaleMethodCount {
			o.Game.Filtering = m
		}
	}
	if v, ok := switchValue(cmdLine, "-dxscale="); ok {
		if s, err := strconv.ParseFloat(v, 64); err == nil {
			o.Window.Scale = min(3, max(1, s))
		}
	}

	if strings.Contains(cmdLine, "-dxdbg_dump_textures") {
		o.Debug.DumpTextures = true
		if o.Debug.DumpDir == "" {
			o.Debug.DumpDir = "dump"
		}
	}
}

// switchValue returns the text after prefix up to the next blank.
func switchValue(cmdLine, prefix string) (string, bool) {
	_, rest, ok := strings.Cut(cmdLine, prefix)
	if !ok {
		return "", false
	}
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		rest = rest[:i]
	}
	return rest, true
}
