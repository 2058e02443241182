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

package volume

import (
	"strconv"
	"sync"
	"time"

	"helios.dev/helios/pkg/fs"
)

// autoNamePrefix prefixes generated mount names.
const autoNamePrefix = "volume"

// SystemVolumeName is the reserved mount name of the system volume.
const SystemVolumeName = "system"

// Options configures a Manager.
type Options struct {
	// DevPath is the path of the device namespace scanned at boot.
	// Defaults to "/dev".
	DevPath string

	// SystemVolumeName is the mount name given to the system volume.
	// Defaults to SystemVolumeName.
	SystemVolumeName string

	// ScanRetries is the number of additional boot-scan attempts made
	// when no device can be mounted, for devices that are slow to
	// appear. Zero means a single attempt.
	ScanRetries int

	// ScanRetryInterval is the delay between boot-scan attempts.
	ScanRetryInterval time.Duration
}

const defaultScanRetryInterval = 100 * time.Millisecond

// Manager is the volume registry: the authoritative set of currently
// mounted volumes, their identifier and name allocators, and the
// designated system volume.
//
// A single mutex serializes registration, unregistration, counter
// increments and lookups. Driver code and logging are never invoked
// with it held; operations under it are short and non-blocking.
type Manager struct {
	// root is the global filesystem tree root. Mount roots are grafted
	// under it at registration. root is immutable.
	root fs.Node

	// drivers backs filesystem identification. drivers is immutable.
	drivers *fs.DriverRegistry

	opts Options

	mu sync.Mutex

	// volumes holds mounted volumes in insertion order.
	volumes []*Volume

	// reserved holds names claimed by in-flight mounts, so that two
	// concurrent mounts cannot race to the same name between name
	// resolution and registration.
	reserved map[string]struct{}

	// nextID is the next volume ID. IDs start at 1 and are never
	// reused within a boot session.
	nextID uint64

	// nextNameSuffix is the next suffix for generated "volumeN" names.
	nextNameSuffix uint64

	// systemVolume is designated once during boot and is immutable
	// thereafter.
	systemVolume *Volume
}

// New returns an empty volume manager grafting mounts under root and
// identifying filesystems against drivers. It must be called before any
// other entry point.
func New(root fs.Node, drivers *fs.DriverRegistry, opts Options) *Manager {
	if opts.DevPath == "" {
		opts.DevPath = "/dev"
	}
	if opts.SystemVolumeName == "" {
		opts.SystemVolumeName = SystemVolumeName
	}
	if opts.ScanRetryInterval == 0 {
		opts.ScanRetryInterval = defaultScanRetryInterval
	}
	return &Manager{
		root:     root,
		drivers:  drivers,
		opts:     opts,
		reserved: make(map[string]struct{}),
		nextID:   1,
	}
}

// RegisterVolume assigns the volume its ID, grafts its mount root under
// the global tree root, and appends it to the registry. The volume
// becomes observable by name and ID when RegisterVolume returns.
func (vm *Manager) RegisterVolume(v *Volume) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.registerLocked(v)
}

// Preconditions: vm.mu must be locked.
func (vm *Manager) registerLocked(v *Volume) {
	delete(vm.reserved, v.name)
	v.id = vm.nextID
	vm.nextID++
	if v.mountRoot != nil {
		v.mountRoot.SetParent(vm.root)
	}
	vm.volumes = append(vm.volumes, v)
}

// UnregisterVolume removes the volume from the registry by identity.
// Unregistering a volume that is not registered is a reported error,
// not undefined behavior.
func (vm *Manager) UnregisterVolume(v *Volume) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.unregisterLocked(v)
}

// Preconditions: vm.mu must be locked.
func (vm *Manager) unregisterLocked(v *Volume) error {
	for i, other := range vm.volumes {
		if other == v {
			vm.volumes = append(vm.volumes[:i], vm.volumes[i+1:]...)
			if v.mountRoot != nil {
				v.mountRoot.SetParent(nil)
			}
			return nil
		}
	}
	return ErrVolumeNotFound
}

// FindVolume returns the mounted volume with the given name, or nil.
func (vm *Manager) FindVolume(name string) *Volume {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.findLocked(name)
}

// Preconditions: vm.mu must be locked.
func (vm *Manager) findLocked(name string) *Volume {
	for _, v := range vm.volumes {
		if v.name == name {
			return v
		}
	}
	return nil
}

// SystemVolume returns the designated system volume. It fails with
// ErrNotInitialized before MountSystemVolume has succeeded; it never
// halts the kernel.
func (vm *Manager) SystemVolume() (*Volume, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.systemVolume == nil {
		return nil, ErrNotInitialized
	}
	return vm.systemVolume, nil
}

// Volumes returns a snapshot of the mounted volumes in registration
// order.
func (vm *Manager) Volumes() []*Volume {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]*Volume(nil), vm.volumes...)
}

// reserveName claims a caller-supplied mount name ahead of the driver
// mount, rejecting collisions with mounted volumes and with other
// in-flight mounts.
func (vm *Manager) reserveName(name string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.findLocked(name) != nil {
		return ErrNameExists
	}
	if _, ok := vm.reserved[name]; ok {
		return ErrNameExists
	}
	vm.reserved[name] = struct{}{}
	return nil
}

// reserveAutoName claims the next generated "volumeN" name. The suffix
// counter guarantees uniqueness among generated names; collisions with
// a caller-supplied name of the same form are not re-checked. This is a
// documented limitation.
func (vm *Manager) reserveAutoName() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	name := autoNamePrefix + strconv.FormatUint(vm.nextNameSuffix, 10)
	vm.nextNameSuffix++
	vm.reserved[name] = struct{}{}
	return name
}

// releaseName drops a reservation after a failed mount.
func (vm *Manager) releaseName(name string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	delete(vm.reserved, name)
}
