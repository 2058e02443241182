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

// Binary volmgr is a debug harness for the volume manager. It builds an
// in-memory machine from a TOML manifest describing devices and
// drivers, then exercises mount, unmount and boot flows against it.
//
// It is a development tool, not a kernel interface.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"helios.dev/helios/pkg/log"
)

var (
	machinePath = flag.String("machine", "", "path to the TOML machine manifest")
	configPath  = flag.String("config", "", "optional path to a TOML boot config")
	debug       = flag.Bool("debug", false, "enable debug logging")
)

// Fatalf logs a message and exits without running deferred functions.
// It is only used on paths where the harness cannot continue.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(128)
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(bootCmd), "")
	subcommands.Register(new(mountCmd), "")
	subcommands.Register(new(umountCmd), "")
	subcommands.Register(new(listCmd), "")

	// All subcommands must be registered before flag parsing.
	flag.Parse()

	if *debug {
		log.SetLevel(log.Debug)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
