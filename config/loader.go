// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file.
const FileName = "glidex.yaml"

//go:embed defaults/glidex.yaml
var defaultYAML []byte

// Load reads the configuration.
// Search order: path -> ~/.glidex/glidex.yaml -> ./glidex.yaml -> embedded default.
// Files only override the keys they set. An explicit path that cannot be
// read or parsed is an error; the other locations are skipped silently.
func Load(path string) (Options, error) {
	opts := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return opts, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := Parse(data, &opts); err != nil {
			return opts, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		return opts, nil
	}

	if userPath := userConfigPath(); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := Parse(data, &opts); err == nil {
				return opts, nil
			}
			opts = Default()
		}
	}

	if data, err := os.ReadFile(FileName); err == nil {
		if err := Parse(data, &opts); err == nil {
			return opts, nil
		}
		opts = Default()
	}

	if err := Parse(defaultYAML, &opts); err != nil {
		return Default(), nil
	}
	return opts, nil
}

// Parse decodes YAML data over opts and validates the result.
func Parse(data []byte, opts *Options) error {
	if err := yaml.Unmarshal(data, opts); err != nil {
		return err
	}
	opts.normalize()
	return opts.Validate()
}

// Marshal encodes opts as YAML.
func Marshal(opts Options) ([]byte, error) {
	return yaml.Marshal(opts)
}

// userConfigPath returns the per-user config file, or empty if home is
// unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".glidex", FileName)
}
