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

// Package volume implements the kernel's volume manager: it binds
// character devices to filesystem drivers, tracks the resulting mounted
// volumes in a registry, and locates the system volume at boot.
//
// The Manager owns all mounted volumes. Driver calls (Identify, Mount)
// are always made outside the registry lock; only registration and
// lookup hold it.
package volume

import (
	"math"
	"sync/atomic"

	"helios.dev/helios/pkg/fs"
)

// A Volume is one mounted filesystem instance.
//
// All fields except the reference count are immutable after
// registration. A Volume is observable by name or ID exactly between
// RegisterVolume and UnregisterVolume; once unregistered it must not be
// dereferenced again.
type Volume struct {
	// The lower 63 bits of refs are the number of active references
	// held by callers. The MSB is set once the volume has been
	// unmounted, after which TryIncRef fails. refs is accessed using
	// atomic memory operations.
	refs int64

	// id is assigned by the registry at registration time. IDs are
	// unique among currently mounted volumes, strictly increasing in
	// issuance order, and never reused within a boot session. They are
	// not persisted across boots.
	id uint64

	// name is the mount-point name, unique among mounted volumes.
	name string

	// mountRoot is the attachment point inside the global tree. Its
	// parent link is set to the tree root at registration and cleared
	// at unregistration.
	mountRoot fs.Node

	// driver and device back the volume for its lifetime.
	driver fs.Driver
	device fs.Node
}

// ID returns the volume's registry-assigned identifier.
func (v *Volume) ID() uint64 { return v.id }

// Name returns the volume's mount name.
func (v *Volume) Name() string { return v.name }

// Root returns the volume's mount root node.
func (v *Volume) Root() fs.Node { return v.mountRoot }

// Driver returns the driver backing the volume.
func (v *Volume) Driver() fs.Driver { return v.driver }

// Device returns the device backing the volume.
func (v *Volume) Device() fs.Node { return v.device }

// TryIncRef takes a reference on the volume, pinning it against
// unmount. It returns false if the volume has already been unmounted.
func (v *Volume) TryIncRef() bool {
	for {
		refs := atomic.LoadInt64(&v.refs)
		if refs < 0 { // MSB set => unmounted
			return false
		}
		if atomic.CompareAndSwapInt64(&v.refs, refs, refs+1) {
			return true
		}
	}
}

// DecRef drops a reference taken by TryIncRef.
func (v *Volume) DecRef() {
	refs := atomic.AddInt64(&v.refs, -1)
	if refs&math.MaxInt64 == math.MaxInt64 {
		panic("volume.DecRef() called without holding a reference")
	}
}

// seal marks the volume unmounted. It succeeds only when no references
// are held.
func (v *Volume) seal() bool {
	return atomic.CompareAndSwapInt64(&v.refs, 0, math.MinInt64)
}
