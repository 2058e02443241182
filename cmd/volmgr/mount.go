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

// mountCmd implements subcommands.Command for the "mount" command.
type mountCmd struct {
	device string
	name   string
}

// Name implements subcommands.Command.Name.
func (*mountCmd) Name() string {
	return "mount"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*mountCmd) Synopsis() string {
	return "mount one device from the machine manifest"
}

// Usage implements subcommands.Command.Usage.
func (*mountCmd) Usage() string {
	return `mount -device <name> [-name <mount name>] - identify and mount a device.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *mountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.device, "device", "", "device node to mount")
	f.StringVar(&c.name, "name", "", "mount name; empty for a generated volumeN name")
}

// Execute implements subcommands.Command.Execute.
func (c *mountCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
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
	return subcommands.ExitSuccess
}
