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

	"helios.dev/helios/pkg/fs/volume"
)

// bootCmd implements subcommands.Command for the "boot" command.
type bootCmd struct{}

// Name implements subcommands.Command.Name.
func (*bootCmd) Name() string {
	return "boot"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*bootCmd) Synopsis() string {
	return "scan the device namespace and mount the system volume"
}

// Usage implements subcommands.Command.Usage.
func (*bootCmd) Usage() string {
	return `boot - run the boot-time system volume scan against the machine manifest.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*bootCmd) SetFlags(f *flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*bootCmd) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	m, err := loadMachine()
	if err != nil {
		Fatalf("error building machine: %v", err)
	}

	if err := m.vm.MountSystemVolume(); err != nil {
		if err == volume.ErrNoDevFS {
			// No device namespace means no possible root: fatal.
			Fatalf("boot failed: %v", err)
		}
		fmt.Printf("boot failed: %v\n", err)
		return subcommands.ExitFailure
	}

	sys, err := m.vm.SystemVolume()
	if err != nil {
		Fatalf("system volume not designated after successful boot: %v", err)
	}
	fmt.Printf("system volume mounted:\n")
	printVolume(sys)
	return subcommands.ExitSuccess
}
