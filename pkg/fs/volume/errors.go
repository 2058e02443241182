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
	"golang.org/x/sys/unix"

	"helios.dev/helios/pkg/kerr"
)

// Volume manager error values. All of these are ordinary, recoverable
// conditions returned to the caller; none of them may halt the kernel.
var (
	// ErrNotADevice indicates that the mount source does not satisfy
	// the character-device capability.
	ErrNotADevice = kerr.New(unix.ENOTBLK, "mount source is not a device")

	// ErrInvalidFilesystem indicates that no registered driver
	// recognizes the device's contents.
	ErrInvalidFilesystem = kerr.New(unix.ENODEV, "no filesystem driver recognizes the device")

	// ErrDriverMismatch indicates that a caller-supplied driver failed
	// its own identification check against the device.
	ErrDriverMismatch = kerr.New(unix.EINVAL, "driver does not recognize the device")

	// ErrDriverFailed indicates that the driver accepted identification
	// but failed to construct a volume. The driver's internal reason is
	// opaque to this layer; it is logged, not propagated.
	ErrDriverFailed = kerr.New(unix.EIO, "driver failed to mount the device")

	// ErrVolumeNotFound indicates a name lookup miss on unmount or
	// registry removal.
	ErrVolumeNotFound = kerr.New(unix.ENOENT, "no volume with the given name")

	// ErrNotInitialized indicates that the system volume was requested
	// before it was designated.
	ErrNotInitialized = kerr.New(unix.ENXIO, "system volume has not been mounted")

	// ErrNameExists indicates a collision with an existing volume name.
	// Colliding names are rejected, never silently renamed.
	ErrNameExists = kerr.New(unix.EEXIST, "volume name already in use")

	// ErrNameTooLong indicates a mount name exceeding fs.NameMax.
	ErrNameTooLong = kerr.New(unix.ENAMETOOLONG, "mount name exceeds the name length limit")

	// ErrBusy indicates that the volume has active references, or that
	// a system volume is already designated.
	ErrBusy = kerr.New(unix.EBUSY, "volume is busy")

	// ErrNoDevices indicates that a device scan found no character
	// devices at all.
	ErrNoDevices = kerr.New(unix.ENXIO, "no candidate devices found")

	// ErrNoDevFS indicates that the device namespace could not be
	// resolved at boot. This is the only fatal condition in this
	// package; callers on the boot path must treat it as such.
	ErrNoDevFS = kerr.New(unix.ENODEV, "device namespace is unresolvable")
)
