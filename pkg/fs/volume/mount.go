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
	"helios.dev/helios/pkg/fs"
	"helios.dev/helios/pkg/log"
)

// Mount identifies the filesystem on device and mounts it under name.
// An empty name requests a generated "volumeN" name.
//
// Mount is a thin wrapper: it resolves a driver and delegates to
// MountWith, which is the single source of truth for validation and
// registration.
func (vm *Manager) Mount(device fs.Node, name string) (*Volume, error) {
	if !device.IsCharDevice() {
		return nil, ErrNotADevice
	}
	driver := vm.drivers.IdentifyFilesystem(device)
	if driver == nil {
		log.Infof("volume: no filesystem driver for device %q", device.Name())
		return nil, ErrInvalidFilesystem
	}
	return vm.MountWith(device, driver, name)
}

// MountWith mounts device with the given driver under name. An empty
// name requests a generated "volumeN" name.
//
// The driver's Identify is re-checked even though the caller chose the
// driver: a caller-supplied driver is not guaranteed correct, and a
// mismatched or hostile device must surface as a recoverable error.
func (vm *Manager) MountWith(device fs.Node, driver fs.Driver, name string) (*Volume, error) {
	if !device.IsCharDevice() {
		return nil, ErrNotADevice
	}
	if !driver.Identify(device) {
		log.Warningf("volume: driver %q does not recognize device %q", driver.Name(), device.Name())
		return nil, ErrDriverMismatch
	}

	if name == "" {
		name = vm.reserveAutoName()
	} else {
		if len(name) > fs.NameMax {
			return nil, ErrNameTooLong
		}
		if err := vm.reserveName(name); err != nil {
			return nil, err
		}
	}

	// The driver may block on device I/O here; the registry lock is
	// not held, only the name reservation.
	root, err := driver.Mount(device, name)
	if err != nil || root == nil {
		vm.releaseName(name)
		log.Warningf("volume: driver %q failed to mount device %q: %v", driver.Name(), device.Name(), err)
		return nil, ErrDriverFailed
	}

	v := &Volume{
		name:      name,
		mountRoot: root,
		driver:    driver,
		device:    device,
	}
	vm.RegisterVolume(v)

	log.Infof("volume: mounted %q (id %d, type %s) from device %q", v.name, v.id, driver.Name(), device.Name())
	return v, nil
}

// Unmount removes the volume with the given name from the registry and
// detaches its mount root from the tree. It fails with
// ErrVolumeNotFound on a lookup miss and with ErrBusy while references
// are held on the volume or the volume is the designated system
// volume.
func (vm *Manager) Unmount(name string) error {
	vm.mu.Lock()
	v := vm.findLocked(name)
	if v == nil {
		vm.mu.Unlock()
		return ErrVolumeNotFound
	}
	if v == vm.systemVolume {
		// The system volume designation is permanent; removing the
		// volume would leave SystemVolume returning an unregistered
		// volume.
		vm.mu.Unlock()
		return ErrBusy
	}
	if !v.seal() {
		vm.mu.Unlock()
		return ErrBusy
	}
	if err := vm.unregisterLocked(v); err != nil {
		// The volume was found by findLocked above, so removal cannot
		// miss; if it does, the registry is structurally corrupt.
		panic("volume: registry lost a volume between lookup and removal")
	}
	vm.mu.Unlock()

	log.Infof("volume: unmounted %q (id %d)", v.name, v.id)
	return nil
}
