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
	"errors"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"helios.dev/helios/pkg/fs"
	"helios.dev/helios/pkg/fs/memfs"
)

// recordingDriver wraps a driver and records which devices it probed.
type recordingDriver struct {
	inner      fs.Driver
	identified []string
}

func (d *recordingDriver) Name() string { return d.inner.Name() }

func (d *recordingDriver) Identify(device fs.Node) bool {
	d.identified = append(d.identified, device.Name())
	return d.inner.Identify(device)
}

func (d *recordingDriver) Mount(device fs.Node, name string) (fs.Node, error) {
	return d.inner.Mount(device, name)
}

// transientDriver fails its first mounts, then delegates.
type transientDriver struct {
	inner    fs.Driver
	failures int
}

func (d *transientDriver) Name() string                 { return d.inner.Name() }
func (d *transientDriver) Identify(device fs.Node) bool { return d.inner.Identify(device) }

func (d *transientDriver) Mount(device fs.Node, name string) (fs.Node, error) {
	if d.failures > 0 {
		d.failures--
		return nil, errors.New("device not ready")
	}
	return d.inner.Mount(device, name)
}

func TestMountSystemVolume(t *testing.T) {
	vm, dev, drivers := newTestManager(t, Options{})
	drv := &recordingDriver{inner: &memfs.SignatureDriver{FSName: "extfs", Signature: "extfs"}}
	drivers.RegisterDriver(drv)

	// Three char devices; only the second carries a mountable
	// filesystem. The scan must mount it and never probe the third.
	addDevice(t, dev, "sda", "blank")
	addDevice(t, dev, "sdb", "extfs")
	addDevice(t, dev, "sdc", "extfs")

	if err := vm.MountSystemVolume(); err != nil {
		t.Fatalf("MountSystemVolume: %v", err)
	}

	sys, err := vm.SystemVolume()
	if err != nil {
		t.Fatalf("SystemVolume: %v", err)
	}
	if got, want := sys.Name(), SystemVolumeName; got != want {
		t.Errorf("system volume name: got %q, wanted %q", got, want)
	}
	if got, want := sys.Device().Name(), "sdb"; got != want {
		t.Errorf("system volume device: got %q, wanted %q", got, want)
	}
	for _, probed := range drv.identified {
		if probed == "sdc" {
			t.Errorf("scan probed device sdc after a successful mount")
		}
	}
}

func TestMountSystemVolumeTwice(t *testing.T) {
	vm, dev, drivers := newTestManager(t, Options{})
	drivers.RegisterDriver(&memfs.SignatureDriver{FSName: "extfs", Signature: "extfs"})
	addDevice(t, dev, "sda", "extfs")

	if err := vm.MountSystemVolume(); err != nil {
		t.Fatalf("first MountSystemVolume: %v", err)
	}
	if err := vm.MountSystemVolume(); err != ErrBusy {
		t.Errorf("second MountSystemVolume: got %v, wanted ErrBusy", err)
	}
}

func TestUnmountSystemVolumeRejected(t *testing.T) {
	vm, dev, drivers := newTestManager(t, Options{})
	drivers.RegisterDriver(&memfs.SignatureDriver{FSName: "extfs", Signature: "extfs"})
	addDevice(t, dev, "sda", "extfs")
	data := addDevice(t, dev, "sdb", "extfs")

	if err := vm.MountSystemVolume(); err != nil {
		t.Fatalf("MountSystemVolume: %v", err)
	}
	if _, err := vm.Mount(data, "data"); err != nil {
		t.Fatalf("Mount(sdb): %v", err)
	}

	// The designation is permanent; the system volume must stay
	// registered and reachable while ordinary volumes come and go.
	if err := vm.Unmount(SystemVolumeName); err != ErrBusy {
		t.Errorf("Unmount(%s): got %v, wanted ErrBusy", SystemVolumeName, err)
	}
	sys, err := vm.SystemVolume()
	if err != nil {
		t.Fatalf("SystemVolume after rejected unmount: %v", err)
	}
	if found := vm.FindVolume(SystemVolumeName); found != sys {
		t.Errorf("FindVolume(%s): got %v, wanted the system volume", SystemVolumeName, found)
	}
	if err := vm.Unmount("data"); err != nil {
		t.Errorf("Unmount(data): %v", err)
	}
}

func TestMountSystemVolumeConcurrent(t *testing.T) {
	vm, dev, drivers := newTestManager(t, Options{})
	drivers.RegisterDriver(&memfs.SignatureDriver{FSName: "extfs", Signature: "extfs"})
	addDevice(t, dev, "sda", "extfs")
	addDevice(t, dev, "sdb", "extfs")

	errs := make(chan error, 2)
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			errs <- vm.MountSystemVolume()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent MountSystemVolume: %v", err)
	}
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("concurrent MountSystemVolume: %d calls succeeded, wanted exactly 1", succeeded)
	}
	if _, err := vm.SystemVolume(); err != nil {
		t.Errorf("SystemVolume: %v", err)
	}
	if got, want := len(vm.Volumes()), 1; got != want {
		t.Errorf("registered volumes: got %d, wanted %d", got, want)
	}
}

func TestMountSystemVolumeNoDevFS(t *testing.T) {
	root := memfs.NewDir("")
	vm := New(root, fs.NewDriverRegistry(), Options{})
	if err := vm.MountSystemVolume(); err != ErrNoDevFS {
		t.Errorf("MountSystemVolume without /dev: got %v, wanted ErrNoDevFS", err)
	}
}

func TestMountSystemVolumeDiagnosableFailures(t *testing.T) {
	// Empty /dev: no devices at all.
	vm, _, _ := newTestManager(t, Options{})
	if err := vm.MountSystemVolume(); err != ErrNoDevices {
		t.Errorf("empty /dev: got %v, wanted ErrNoDevices", err)
	}

	// Devices present, none identified.
	vm, dev, drivers := newTestManager(t, Options{})
	drivers.RegisterDriver(&memfs.SignatureDriver{FSName: "extfs", Signature: "extfs"})
	addDevice(t, dev, "sda", "blank")
	if err := vm.MountSystemVolume(); err != ErrInvalidFilesystem {
		t.Errorf("unidentifiable devices: got %v, wanted ErrInvalidFilesystem", err)
	}

	// Identified, but the driver cannot construct a volume.
	vm, dev, drivers = newTestManager(t, Options{})
	drivers.RegisterDriver(&memfs.SignatureDriver{FSName: "extfs", Signature: "extfs", FailMount: true})
	addDevice(t, dev, "sda", "extfs")
	if err := vm.MountSystemVolume(); err != ErrDriverFailed {
		t.Errorf("driver failure: got %v, wanted ErrDriverFailed", err)
	}
}

func TestMountSystemVolumeRetry(t *testing.T) {
	vm, dev, drivers := newTestManager(t, Options{
		ScanRetries:       3,
		ScanRetryInterval: time.Millisecond,
	})
	drivers.RegisterDriver(&transientDriver{
		inner:    &memfs.SignatureDriver{FSName: "extfs", Signature: "extfs"},
		failures: 2,
	})
	addDevice(t, dev, "sda", "extfs")

	if err := vm.MountSystemVolume(); err != nil {
		t.Fatalf("MountSystemVolume with transient failures: %v", err)
	}
	if _, err := vm.SystemVolume(); err != nil {
		t.Errorf("SystemVolume after retry: %v", err)
	}
}

func TestMountFirstSkipsNonDevices(t *testing.T) {
	vm, dev, drivers := newTestManager(t, Options{})
	drivers.RegisterDriver(&memfs.SignatureDriver{FSName: "extfs", Signature: "extfs"})

	if err := dev.AddChild(memfs.NewFile("console.log")); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := dev.AddChild(memfs.NewDir("input")); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	addDevice(t, dev, "sda", "extfs")

	v, err := vm.MountFirst(dev, "recovery")
	if err != nil {
		t.Fatalf("MountFirst: %v", err)
	}
	if got, want := v.Device().Name(), "sda"; got != want {
		t.Errorf("mounted device: got %q, wanted %q", got, want)
	}
	if got, want := v.Name(), "recovery"; got != want {
		t.Errorf("mounted name: got %q, wanted %q", got, want)
	}
}
