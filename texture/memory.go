// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package texture

import (
	"fmt"

	"github.com/glidex/glidex/batch"
)

// Memory is the flat texture memory textures are downloaded into.
type Memory struct {
	data []byte
}

// NewMemory allocates size bytes of texture memory.
func NewMemory(size int) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Size returns the memory size in bytes.
func (m *Memory) Size() int { return len(m.data) }

// Download copies src to addr.
func (m *Memory) Download(addr uint32, src []byte) error {
	if err := m.check(addr, len(src)); err != nil {
		return err
	}
	copy(m.data[addr:], src)
	return nil
}

// Texels returns n bytes starting at addr. The slice aliases the memory.
func (m *Memory) Texels(addr uint32, n int) ([]byte, error) {
	if err := m.check(addr, n); err != nil {
		return nil, err
	}
	return m.data[addr : int(addr)+n : int(addr)+n], nil
}

func (m *Memory) check(addr uint32, n int) error {
	if addr%batch.TMUAddressAlignment != 0 {
		return fmt.Errorf("%w: %#x", ErrUnalignedAddress, addr)
	}
	if n < 0 || uint64(addr)+uint64(n) > uint64(len(m.data)) {
		return fmt.Errorf("%w: %#x+%d (size %d)", ErrOutOfRange, addr, n, len(m.data))
	}
	return nil
}

// RequiredSize returns the bytes occupied by an 8-bit texture of the given
// dimensions.
func RequiredSize(width, height int) int {
	return width * height
}
