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

package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"helios.dev/helios/pkg/boot"
	"helios.dev/helios/pkg/fs"
	"helios.dev/helios/pkg/fs/memfs"
	"helios.dev/helios/pkg/fs/volume"
)

// machineConfig describes the simulated machine: which filesystem
// drivers exist and which devices sit in the device namespace.
type machineConfig struct {
	Drivers []driverConfig `toml:"driver"`
	Devices []deviceConfig `toml:"device"`
}

type driverConfig struct {
	// Name is the filesystem type name.
	Name string `toml:"name"`

	// Signature is the device signature the driver recognizes.
	Signature string `toml:"signature"`

	// FailMount simulates a driver that identifies devices but cannot
	// mount them.
	FailMount bool `toml:"fail_mount"`
}

type deviceConfig struct {
	// Name is the device node name under the device namespace.
	Name string `toml:"name"`

	// Signature is the filesystem signature the device carries. Empty
	// simulates an unformatted device.
	Signature string `toml:"signature"`
}

// machine is a fully wired in-memory instance of the volume stack.
type machine struct {
	root    *memfs.Dir
	dev     *memfs.Dir
	drivers *fs.DriverRegistry
	vm      *volume.Manager
}

// loadMachine builds a machine from the -machine manifest and the
// optional -config boot configuration.
func loadMachine() (*machine, error) {
	if *machinePath == "" {
		return nil, fmt.Errorf("the -machine flag is required")
	}
	var mc machineConfig
	if _, err := toml.DecodeFile(*machinePath, &mc); err != nil {
		return nil, fmt.Errorf("decoding machine manifest %q: %w", *machinePath, err)
	}

	conf := boot.Default()
	if *configPath != "" {
		var err error
		if conf, err = boot.Load(*configPath); err != nil {
			return nil, err
		}
	}
	return mc.build(conf)
}

// build assembles the tree, the driver registry and the volume manager.
func (mc *machineConfig) build(conf boot.Config) (*machine, error) {
	root := memfs.NewDir("")

	// Create the device namespace directory chain (usually just /dev).
	parent := root
	for _, component := range strings.Split(conf.DevPath, "/") {
		if component == "" {
			continue
		}
		dir := memfs.NewDir(component)
		if err := parent.AddChild(dir); err != nil {
			return nil, fmt.Errorf("creating %q: %w", conf.DevPath, err)
		}
		parent = dir
	}
	dev := parent

	for _, d := range mc.Devices {
		if err := dev.AddChild(memfs.NewCharDevice(d.Name, d.Signature)); err != nil {
			return nil, fmt.Errorf("adding device %q: %w", d.Name, err)
		}
	}

	drivers := fs.NewDriverRegistry()
	for _, d := range mc.Drivers {
		drivers.RegisterDriver(&memfs.SignatureDriver{
			FSName:    d.Name,
			Signature: d.Signature,
			FailMount: d.FailMount,
		})
	}

	return &machine{
		root:    root,
		dev:     dev,
		drivers: drivers,
		vm:      volume.New(root, drivers, conf.VolumeOptions()),
	}, nil
}

// device resolves a device node by name under the device namespace.
func (m *machine) device(name string) (fs.Node, error) {
	node := m.dev.FindDir(name)
	if node == nil {
		return nil, fmt.Errorf("no device %q in the device namespace", name)
	}
	return node, nil
}

// printVolume writes one volume description line.
func printVolume(v *volume.Volume) {
	fmt.Printf("%-4d %-16s %-10s %s\n", v.ID(), v.Name(), v.Driver().Name(), v.Device().Name())
}
