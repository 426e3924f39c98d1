// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != Default() {
		t.Errorf("Load() = %+v, want Default() %+v", got, Default())
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	if err := os.WriteFile(FileName, []byte("optouts:\n  nowide: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !got.OptOuts.NoWide {
		t.Error("local glidex.yaml was not read")
	}

	userDir := filepath.Join(home, ".glidex")
	if err := os.MkdirAll(userDir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, FileName), []byte("optouts:\n  noaa: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !got.OptOuts.NoAntiAliasing || got.OptOuts.NoWide {
		t.Errorf("user config should win over local: %+v", got.OptOuts)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
game:
  size: [1024, 768]
  filtering: 3
window:
  scale: 2
debug:
  dumptextures: true
capacity:
  batches: 100
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", path, err)
	}
	if w, h, ok := got.Game.GameSize(); !ok || w != 1024 || h != 768 {
		t.Errorf("GameSize() = %d,%d,%v, want 1024,768,true", w, h, ok)
	}
	if got.Game.Filtering != UpscaleNearest {
		t.Errorf("Filtering = %v, want Nearest", got.Game.Filtering)
	}
	if got.Window.Scale != 2 {
		t.Errorf("Scale = %v, want 2", got.Window.Scale)
	}
	if !got.Debug.DumpTextures || got.Debug.DumpDir != "dump" {
		t.Errorf("Debug = %+v, want dump enabled into dump", got.Debug)
	}
	if got.Capacity.Batches != 100 || got.Capacity.Vertices != Default().Capacity.Vertices {
		t.Errorf("Capacity = %+v, want batches overridden only", got.Capacity)
	}
	if !got.OptOuts.NoVSync {
		t.Error("unset keys should keep their defaults")
	}
}

func TestLoadExplicitPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("window:\n  scale: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load() error = %v, want *ValidationError", err)
	}
	if verr.Field != "window.scale" {
		t.Errorf("Field = %q, want window.scale", verr.Field)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
		field  string
	}{
		{"default", func(*Options) {}, ""},
		{"scale low", func(o *Options) { o.Window.Scale = 0.5 }, "window.scale"},
		{"filtering", func(o *Options) { o.Game.Filtering = 7 }, "game.filtering"},
		{"zero width", func(o *Options) { o.Game.Size = [2]int{0, 600} }, "game.size"},
		{"negative capacity", func(o *Options) { o.Capacity.Vertices = -1 }, "capacity"},
		{"dump without dir", func(o *Options) { o.Debug = Debug{DumpTextures: true} }, "debug.dumpdir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Default()
			tt.mutate(&o)
			err := o.Validate()
			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("Validate() = %v, want ValidationError on %s", err, tt.field)
			}
		})
	}
}

func TestApplyCommandLine(t *testing.T) {
	o := Default()
	o.ApplyCommandLine(`Game.exe -3dfx -dxnowide -dxnoaa -dxvsync -dxupscale=2 -dxscale=2.5 -dxdbg_dump_textures`)

	if !o.OptOuts.NoWide || !o.OptOuts.NoAntiAliasing {
		t.Errorf("opt-outs not applied: %+v", o.OptOuts)
	}
	if o.OptOuts.NoVSync {
		t.Error("-dxvsync should clear NoVSync")
	}
	if !o.OptOuts.NoFrameTearing {
		t.Error("NoFrameTearing should keep its default")
	}
	if o.Game.Filtering != UpscaleCatmullRom {
		t.Errorf("Filtering = %v, want CatmullRom", o.Game.Filtering)
	}
	if o.Window.Scale != 2.5 {
		t.Errorf("Scale = %v, want 2.5", o.Window.Scale)
	}
	if !o.Debug.DumpTextures {
		t.Error("-dxdbg_dump_textures not applied")
	}
}

func TestApplyCommandLineClamps(t *testing.T) {
	o := Default()
	o.ApplyCommandLine("-dxscale=12 -dxupscale=9")
	if o.Window.Scale != 3 {
		t.Errorf("Scale = %v, want clamped to 3", o.Window.Scale)
	}
	if o.Game.Filtering != UpscaleHighQuality {
		t.Errorf("Filtering = %v, want unchanged", o.Game.Filtering)
	}
}

func TestSetOptOut(t *testing.T) {
	o := Default()
	if err := o.SetOptOut("NoMotionPrediction", true); err != nil {
		t.Fatalf("SetOptOut() error = %v", err)
	}
	if !o.OptOuts.NoMotionPrediction {
		t.Error("SetOptOut did not set the flag")
	}
	for _, name := range []string{"nosuchthing", "nologo"} {
		if err := o.SetOptOut(name, true); !errors.Is(err, ErrUnknownOption) {
			t.Errorf("SetOptOut(%q) = %v, want ErrUnknownOption", name, err)
		}
	}
}

func TestApplyCommandLineIgnoresLogoSwitch(t *testing.T) {
	o := Default()
	o.ApplyCommandLine("Game.exe -3dfx -dxnologo")
	if o.OptOuts != Default().OptOuts {
		t.Errorf("-dxnologo changed opt-outs: %+v", o.OptOuts)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	o := Default()
	o.OptOuts.NoWide = true
	data, err := Marshal(o)
	if err != nil {
		t.Fatal(err)
	}
	got := Default()
	if err := Parse(data, &got); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != o {
		t.Errorf("round trip = %+v, want %+v", got, o)
	}
}
