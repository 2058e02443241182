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

package memfs

import (
	"errors"

	"helios.dev/helios/pkg/fs"
)

// SignatureDriver is an fs.Driver that recognizes CharDevice nodes by
// their Signature tag. It stands in for real filesystem drivers in
// tests and in the volmgr debug harness.
type SignatureDriver struct {
	// FSName is the driver's filesystem type name.
	FSName string

	// Signature is the device signature this driver recognizes.
	Signature string

	// FailMount, if set, makes Mount fail after a successful Identify,
	// simulating a driver that recognizes a device but cannot construct
	// a volume from it.
	FailMount bool
}

// Name implements fs.Driver.Name.
func (d *SignatureDriver) Name() string { return d.FSName }

// Identify implements fs.Driver.Identify.
func (d *SignatureDriver) Identify(device fs.Node) bool {
	c, ok := device.(*CharDevice)
	return ok && c.Signature == d.Signature
}

// Mount implements fs.Driver.Mount. The mounted filesystem is an empty
// in-memory directory named after the mount name.
func (d *SignatureDriver) Mount(device fs.Node, name string) (fs.Node, error) {
	if d.FailMount {
		return nil, errors.New("memfs: simulated mount failure")
	}
	if !d.Identify(device) {
		return nil, errors.New("memfs: device signature mismatch")
	}
	return NewDir(name), nil
}
