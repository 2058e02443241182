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

// Package fs defines the contracts between the filesystem tree, the
// filesystem drivers, and the volume manager.
//
// The tree itself is implemented elsewhere (see memfs for the in-memory
// implementation used in tests); this package only fixes the interfaces
// the volume manager consumes and hosts the driver registry that backs
// filesystem identification.
package fs

import (
	"strings"
)

// NameMax is the maximum length of a node name, and therefore of a
// volume mount name. Names exceeding it are rejected, never truncated.
const NameMax = 255

// A DirEntry describes one entry of a directory. It carries only the
// name; callers resolve the entry to a Node with FindDir.
type DirEntry struct {
	Name string
}

// A Node is an element of the filesystem tree.
//
// Directory operations on non-directory nodes return zero values. Nodes
// are not reference-counted at this layer; their lifetime is owned by
// the tree (or, for volume mount roots, by the volume registry).
type Node interface {
	// Name returns the node's name within its parent.
	Name() string

	// IsDir returns true if the node is a directory.
	IsDir() bool

	// IsCharDevice returns true if the node can be queried as a
	// character device, making it a candidate mount source.
	IsCharDevice() bool

	// Parent returns the node's parent, or nil for a detached node or
	// the tree root.
	Parent() Node

	// SetParent grafts the node under a new parent. It is used by the
	// volume registry to attach a mount root to the global tree root,
	// and with nil to detach it again on unmount.
	SetParent(parent Node)

	// ReadDir returns the i'th entry of a directory. The second return
	// value is false once i is past the end of the directory, or if the
	// node is not a directory.
	ReadDir(i int) (DirEntry, bool)

	// FindDir resolves a single child by name. It returns nil if there
	// is no such child or the node is not a directory.
	FindDir(name string) Node
}

// ReadDir returns the i'th entry of dir.
func ReadDir(dir Node, i int) (DirEntry, bool) {
	return dir.ReadDir(i)
}

// FindDir resolves the named child of dir, or nil.
func FindDir(dir Node, name string) Node {
	return dir.FindDir(name)
}

// ResolvePath walks a /-separated path from root and returns the node
// it names, or nil if any component cannot be resolved. Empty and "."
// components are skipped; ".." moves to the parent when one exists.
func ResolvePath(root Node, path string) Node {
	node := root
	for _, component := range strings.Split(path, "/") {
		switch component {
		case "", ".":
			continue
		case "..":
			if parent := node.Parent(); parent != nil {
				node = parent
			}
			continue
		}
		if node = node.FindDir(component); node == nil {
			return nil
		}
	}
	return node
}
