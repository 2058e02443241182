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

// Package memfs provides a trivial in-memory filesystem tree.
//
// It exists to back the boot-time device namespace in tests and in the
// volmgr debug harness. It is not an on-disk format and carries no
// persistence.
package memfs

import (
	"sync"

	"helios.dev/helios/pkg/fs"
	"helios.dev/helios/pkg/kerr"
)

// Dir is an in-memory directory node.
type Dir struct {
	name string

	mu       sync.Mutex
	parent   fs.Node
	order    []string
	children map[string]fs.Node
}

// NewDir returns an empty directory with the given name.
func NewDir(name string) *Dir {
	return &Dir{
		name:     name,
		children: make(map[string]fs.Node),
	}
}

// AddChild inserts a node into the directory and sets its parent link.
func (d *Dir) AddChild(child fs.Node) error {
	if len(child.Name()) > fs.NameMax {
		return kerr.ENAMETOOLONG
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.children[child.Name()]; ok {
		return kerr.EEXIST
	}
	d.children[child.Name()] = child
	d.order = append(d.order, child.Name())
	child.SetParent(d)
	return nil
}

// RemoveChild removes the named child.
func (d *Dir) RemoveChild(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	child, ok := d.children[name]
	if !ok {
		return kerr.ENOENT
	}
	delete(d.children, name)
	for i, n := range d.order {
		if n == name {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	child.SetParent(nil)
	return nil
}

// Name implements fs.Node.Name.
func (d *Dir) Name() string { return d.name }

// IsDir implements fs.Node.IsDir.
func (d *Dir) IsDir() bool { return true }

// IsCharDevice implements fs.Node.IsCharDevice.
func (d *Dir) IsCharDevice() bool { return false }

// Parent implements fs.Node.Parent.
func (d *Dir) Parent() fs.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.parent
}

// SetParent implements fs.Node.SetParent.
func (d *Dir) SetParent(parent fs.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.parent = parent
}

// ReadDir implements fs.Node.ReadDir. Enumeration order is insertion
// order.
func (d *Dir) ReadDir(i int) (fs.DirEntry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.order) {
		return fs.DirEntry{}, false
	}
	return fs.DirEntry{Name: d.order[i]}, true
}

// FindDir implements fs.Node.FindDir.
func (d *Dir) FindDir(name string) fs.Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.children[name]
}

// CharDevice is an in-memory character-device node. Signature stands in
// for the on-disk superblock magic that a real driver would probe; the
// signature driver matches against it.
type CharDevice struct {
	name string

	// Signature identifies the filesystem the device pretends to hold.
	// Empty means unformatted.
	Signature string

	mu     sync.Mutex
	parent fs.Node
}

// NewCharDevice returns a char device carrying the given signature.
func NewCharDevice(name, signature string) *CharDevice {
	return &CharDevice{name: name, Signature: signature}
}

// Name implements fs.Node.Name.
func (c *CharDevice) Name() string { return c.name }

// IsDir implements fs.Node.IsDir.
func (c *CharDevice) IsDir() bool { return false }

// IsCharDevice implements fs.Node.IsCharDevice.
func (c *CharDevice) IsCharDevice() bool { return true }

// Parent implements fs.Node.Parent.
func (c *CharDevice) Parent() fs.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parent
}

// SetParent implements fs.Node.SetParent.
func (c *CharDevice) SetParent(parent fs.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parent = parent
}

// ReadDir implements fs.Node.ReadDir.
func (c *CharDevice) ReadDir(i int) (fs.DirEntry, bool) { return fs.DirEntry{}, false }

// FindDir implements fs.Node.FindDir.
func (c *CharDevice) FindDir(name string) fs.Node { return nil }

// File is a plain non-device node, used to verify that boot scans skip
// entries that cannot serve as mount sources.
type File struct {
	name string

	mu     sync.Mutex
	parent fs.Node
}

// NewFile returns a plain file node.
func NewFile(name string) *File {
	return &File{name: name}
}

// Name implements fs.Node.Name.
func (f *File) Name() string { return f.name }

// IsDir implements fs.Node.IsDir.
func (f *File) IsDir() bool { return false }

// IsCharDevice implements fs.Node.IsCharDevice.
func (f *File) IsCharDevice() bool { return false }

// Parent implements fs.Node.Parent.
func (f *File) Parent() fs.Node {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.parent
}

// SetParent implements fs.Node.SetParent.
func (f *File) SetParent(parent fs.Node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parent = parent
}

// ReadDir implements fs.Node.ReadDir.
func (f *File) ReadDir(i int) (fs.DirEntry, bool) { return fs.DirEntry{}, false }

// FindDir implements fs.Node.FindDir.
func (f *File) FindDir(name string) fs.Node { return nil }
