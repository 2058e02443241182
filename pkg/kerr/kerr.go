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

// Package kerr holds the standardized kernel error definition.
//
// Errors are declared once as package-level values and compared by
// identity, so that error checks reduce to pointer comparisons and no
// allocation happens on error paths.
package kerr

import (
	"golang.org/x/sys/unix"
)

// Error represents a kernel error with an associated errno and a
// descriptive message.
type Error struct {
	errno   unix.Errno
	message string
}

// New creates a new *Error.
func New(errno unix.Errno, message string) *Error {
	return &Error{
		errno:   errno,
		message: message,
	}
}

// Error implements error.Error.
func (e *Error) Error() string { return e.message }

// Errno returns the underlying errno value.
func (e *Error) Errno() unix.Errno { return e.errno }

// Common error values shared across subsystems. Subsystems with their
// own taxonomy declare dedicated values instead of reusing these, so
// that identity comparison stays meaningful.
var (
	// EEXIST indicates that a named entry already exists.
	EEXIST = New(unix.EEXIST, "entry already exists")

	// ENOENT indicates that a named entry does not exist.
	ENOENT = New(unix.ENOENT, "no such entry")

	// ENOTDIR indicates that a directory operation was attempted on a
	// node that is not a directory.
	ENOTDIR = New(unix.ENOTDIR, "not a directory")

	// ENAMETOOLONG indicates that a name exceeds the tree's name limit.
	ENAMETOOLONG = New(unix.ENAMETOOLONG, "name too long")
)
