// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import "errors"

var (
	// ErrUnalignedAddress is returned for texture addresses that are not
	// multiples of batch.TMUAddressAlignment.
	ErrUnalignedAddress = errors.New("texture: address is not aligned")

	// ErrOutOfRange is returned when a texture does not fit texture memory.
	ErrOutOfRange = errors.New("texture: range outside texture memory")

	// ErrTooManyPalettes is returned when more distinct palettes are
	// downloaded than there are game palette slots.
	ErrTooManyPalettes = errors.New("texture: too many palettes")
)
