// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package glidex

import "errors"

var (
	// ErrNilDevice is returned by NewContext without a device.
	ErrNilDevice = errors.New("glidex: nil device")

	// ErrInvalidTextureSize is returned for texture dimensions that are not
	// powers of two between 8 and 256.
	ErrInvalidTextureSize = errors.New("glidex: invalid texture size")

	// ErrInvalidGameSize is returned for a non-positive game size.
	ErrInvalidGameSize = errors.New("glidex: invalid game size")

	// ErrInvalidCapacity is returned for a vertex capacity larger than a
	// batch can address.
	ErrInvalidCapacity = errors.New("glidex: invalid capacity")
)
