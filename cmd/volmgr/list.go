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
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"helios.dev/helios/pkg/fs"
)

// listCmd implements subcommands.Command for the "list" command. It
// boots the machine, mounts every remaining identifiable device with a
// generated name, and prints the registry.
type listCmd struct{}

// Name implements subcommands.Command.Name.
func (*listCmd) Name() string {
	return "list"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*listCmd) Synopsis() string {
	return "boot, mount all identifiable devices, and list the registry"
}

// Usage implements subcommands.Command.Usage.
func (*listCmd) Usage() string {
	return `list - boot the machine, mount everything mountable, and print volumes.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*listCmd) SetFlags(f *flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*listCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	m, err := loadMachine()
	if err != nil {
		Fatalf("error building machine: %v", err)
	}

	if err := m.vm.MountSystemVolume(); err != nil {
		fmt.Printf("boot failed: %v\n", err)
	}

	// Mount whatever else can be mounted; devices that are already
	// backing a volume or hold nothing recognizable are skipped.
	for i := 0; ; i++ {
		ent, ok := m.dev.ReadDir(i)
		if !ok {
			break
		}
		device := fs.FindDir(m.dev, ent.Name)
		if device == nil || !device.IsCharDevice() {
			continue
		}
		if mounted(m, device) {
			continue
		}
		if _, err := m.vm.Mount(device, ""); err != nil {
			fmt.Printf("skipping %s: %v\n", ent.Name, err)
		}
	}

	fmt.Printf("%-4s %-16s %-10s %s\n", "ID", "NAME", "TYPE", "DEVICE")
	for _, v := range m.vm.Volumes() {
		printVolume(v)
	}
	return subcommands.ExitSuccess
}

// mounted returns whether the device already backs a registered volume.
func mounted(m *machine, device fs.Node) bool {
	for _, v := range m.vm.Volumes() {
		if v.Device() == device {
			return true
		}
	}
	return false
}
