// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package recording

import (
	"fmt"
	"sort"
	"sync"

	"github.com/glidex/glidex/render"
)

// DeviceFactory builds a device whose vertex ring holds ringCapacity
// vertices. Zero or less selects render.DefaultRingCapacity.
type DeviceFactory func(ringCapacity int) render.Device

var (
	registryMu sync.RWMutex
	devices    = make(map[string]DeviceFactory)
)

// Register makes a device available to NewDevice under name. The
// built-in devices register from init; the replay command's --device
// flag selects among them.
//
// Register panics if factory is nil or name is taken.
func Register(name string, factory DeviceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("recording: Register factory is nil")
	}
	if _, dup := devices[name]; dup {
		panic("recording: Register called twice for " + name)
	}
	devices[name] = factory
}

// Unregister removes name. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(devices, name)
}

// NewDevice builds the device registered as name with a vertex ring of
// ringCapacity vertices.
func NewDevice(name string, ringCapacity int) (render.Device, error) {
	registryMu.RLock()
	factory, ok := devices[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("recording: unknown device %q", name)
	}
	return factory(ringCapacity), nil
}

// MustDevice is NewDevice that panics on an unknown name.
func MustDevice(name string, ringCapacity int) render.Device {
	d, err := NewDevice(name, ringCapacity)
	if err != nil {
		panic(err)
	}
	return d
}

// Devices returns the registered names, sorted.
func Devices() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(devices))
	for name := range devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := devices[name]
	return ok
}
