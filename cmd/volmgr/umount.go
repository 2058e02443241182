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
)

// umountCmd implements subcommands.Command for the "umount" command. It
// mounts a device and unmounts it again, exercising the full lifecycle
// in one process.
type umountCmd struct {
	device string
	name   string
}

// Name implements subcommands.Command.Name.
func (*umountCmd) Name() string {
	return "umount"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*umountCmd) Synopsis() string {
	return "mount a device and unmount it again"
}

// Usage implements subcommands.Command.Usage.
func (*umountCmd) Usage() string {
	return `umount -device <name> [-name <mount name>] - verify a mount/unmount round trip.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *umountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.device, "device", "", "device node to mount and unmount")
	f.StringVar(&c.name, "name", "", "mount name; empty for a generated volumeN name")
}

// Execute implements subcommands.Command.Execute.
func (c *umountCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if c.device == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	m, err := loadMachine()
	if err != nil {
		Fatalf("error building machine: %v", err)
	}

	device, err := m.device(c.device)
	if err != nil {
		Fatalf("%v", err)
	}
	v, err := m.vm.Mount(device, c.name)
	if err != nil {
		fmt.Printf("mount failed: %v\n", err)
		return subcommands.ExitFailure
	}
	printVolume(v)

	if err := m.vm.Unmount(v.Name()); err != nil {
		fmt.Printf("unmount failed: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("unmounted %q\n", v.Name())
	return subcommands.ExitSuccess
}
