// Copyright 2025 The Helios Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fs

import (
	"sync"
)

// A Driver recognizes and interprets one filesystem format.
//
// Identify must be a non-destructive probe; it may be called against
// devices holding arbitrary or hostile content and must simply return
// false when the content is not recognized.
type Driver interface {
	// Name returns the driver's filesystem type name.
	Name() string

	// Identify returns true if the device contains a filesystem this
	// driver understands.
	Identify(device Node) bool

	// Mount constructs a live filesystem instance backed by the device
	// and returns its root node, named after the mount name. The volume
	// manager wraps the returned root in a Volume; drivers never touch
	// the registry themselves.
	Mount(device Node, name string) (Node, error)
}

// DriverRegistry is an ordered set of filesystem drivers. Probing
// happens in registration order, so more specific drivers should be
// registered before catch-alls.
type DriverRegistry struct {
	mu      sync.Mutex
	drivers []Driver
}

// NewDriverRegistry returns an empty driver registry.
func NewDriverRegistry() *DriverRegistry {
	return &DriverRegistry{}
}

// RegisterDriver adds a driver to the registry. Registering two drivers
// with the same name is a setup error and panics, as it would make
// identification results order-dependent in a way that cannot be
// diagnosed locally.
func (r *DriverRegistry) RegisterDriver(d Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.drivers {
		if other.Name() == d.Name() {
			panic("duplicate registration of filesystem driver " + d.Name())
		}
	}
	r.drivers = append(r.drivers, d)
}

// IdentifyFilesystem probes all registered drivers against the device
// and returns the first that recognizes it, or nil if none does. A nil
// result is a normal outcome, not an error.
func (r *DriverRegistry) IdentifyFilesystem(device Node) Driver {
	r.mu.Lock()
	drivers := append([]Driver(nil), r.drivers...)
	r.mu.Unlock()

	// Probing runs outside the registry lock: Identify may perform
	// device I/O.
	for _, d := range drivers {
		if d.Identify(device) {
			return d
		}
	}
	return nil
}

// registry is the system-wide driver registry.
var registry = NewDriverRegistry()

// RegisterDriver registers a driver with the system-wide registry.
// Drivers should register from an init function in their own package.
func RegisterDriver(d Driver) {
	registry.RegisterDriver(d)
}

// IdentifyFilesystem probes the system-wide registry.
func IdentifyFilesystem(device Node) Driver {
	return registry.IdentifyFilesystem(device)
}

// SystemDriverRegistry returns the system-wide driver registry, for
// wiring into a volume manager.
func SystemDriverRegistry() *DriverRegistry {
	return registry
}
