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
	"time"

	"github.com/cenkalti/backoff"

	"helios.dev/helios/pkg/fs"
	"helios.dev/helios/pkg/log"
)

// A retried scan over a settling device namespace revisits the same
// unmountable devices on every pass; bound the per-device log noise.
var scanLog = log.BasicRateLimitedLogger(30 * time.Second)

// MountFirst attempts to mount each character device found in dir under
// the given name, stopping at the first device that mounts
// successfully. Entries that are not character devices are skipped;
// devices no driver recognizes are skipped; a device whose driver fails
// to mount is logged and the scan continues.
//
// On failure the returned error distinguishes the cause: ErrNoDevices
// when the directory holds no character devices, ErrInvalidFilesystem
// when devices were found but none was identified, and the last mount
// error otherwise.
//
// MountFirst is independent of system-volume selection and may be used
// for recovery or fallback mounts after boot.
func (vm *Manager) MountFirst(dir fs.Node, name string) (*Volume, error) {
	var devices, identified int
	var lastErr error
	for i := 0; ; i++ {
		ent, ok := fs.ReadDir(dir, i)
		if !ok {
			break
		}
		device := fs.FindDir(dir, ent.Name)
		if device == nil || !device.IsCharDevice() {
			continue
		}
		devices++
		driver := vm.drivers.IdentifyFilesystem(device)
		if driver == nil {
			scanLog.Debugf("volume: device %q holds no recognizable filesystem, skipping", ent.Name)
			continue
		}
		identified++
		v, err := vm.MountWith(device, driver, name)
		if err != nil {
			scanLog.Warningf("volume: device %q identified as %s but failed to mount: %v", ent.Name, driver.Name(), err)
			lastErr = err
			continue
		}
		return v, nil
	}

	switch {
	case devices == 0:
		return nil, ErrNoDevices
	case identified == 0:
		return nil, ErrInvalidFilesystem
	default:
		return nil, lastErr
	}
}

// MountSystemVolume scans the device namespace and mounts the first
// workable device as the system volume. It is the boot-time entry
// point and designates the system volume exactly once; a second call
// fails with ErrBusy.
//
// Failure to resolve the device namespace is reported as ErrNoDevFS,
// which the boot path must treat as fatal; every other failure is
// diagnosable from the returned error.
func (vm *Manager) MountSystemVolume() error {
	vm.mu.Lock()
	designated := vm.systemVolume != nil
	vm.mu.Unlock()
	if designated {
		return ErrBusy
	}

	dev := fs.ResolvePath(vm.root, vm.opts.DevPath)
	if dev == nil || !dev.IsDir() {
		return ErrNoDevFS
	}

	var sys *Volume
	scan := func() error {
		v, err := vm.MountFirst(dev, vm.opts.SystemVolumeName)
		if err != nil {
			return err
		}
		sys = v
		return nil
	}

	var err error
	if vm.opts.ScanRetries > 0 {
		// Devices may still be settling this early in boot; retry the
		// scan on a constant interval before giving up.
		b := backoff.WithMaxRetries(backoff.NewConstantBackOff(vm.opts.ScanRetryInterval), uint64(vm.opts.ScanRetries))
		err = backoff.Retry(scan, b)
	} else {
		err = scan()
	}
	if err != nil {
		log.Warningf("volume: system volume scan of %q failed: %v", vm.opts.DevPath, err)
		return err
	}

	vm.mu.Lock()
	if vm.systemVolume != nil {
		// Lost a designation race; back out the fresh mount by
		// identity, not by name. It was never published as the system
		// volume.
		if !sys.seal() || vm.unregisterLocked(sys) != nil {
			log.Warningf("volume: failed to back out redundant system mount %q (id %d)", sys.Name(), sys.ID())
		}
		vm.mu.Unlock()
		return ErrBusy
	}
	vm.systemVolume = sys
	vm.mu.Unlock()

	log.Infof("volume: system volume %q mounted from device %q", sys.Name(), sys.Device().Name())
	return nil
}
