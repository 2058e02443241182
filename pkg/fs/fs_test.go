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

package fs

// testNode is a minimal tree node for path resolution tests.
type testNode struct {
	name     string
	parent   Node
	children map[string]*testNode
	order    []string
	chardev  bool
}

func newTestDir(name string) *testNode {
	return &testNode{name: name, children: make(map[string]*testNode)}
}

func (n *testNode) add(child *testNode) *testNode {
	child.parent = n
	n.children[child.name] = child
	n.order = append(n.order, child.name)
	return n
}

func (n *testNode) Name() string          { return n.name }
func (n *testNode) IsDir() bool           { return n.children != nil }
func (n *testNode) IsCharDevice() bool    { return n.chardev }
func (n *testNode) Parent() Node          { return n.parent }
func (n *testNode) SetParent(parent Node) { n.parent = parent }

func (n *testNode) ReadDir(i int) (DirEntry, bool) {
	if i < 0 || i >= len(n.order) {
		return DirEntry{}, false
	}
	return DirEntry{Name: n.order[i]}, true
}

func (n *testNode) FindDir(name string) Node {
	child, ok := n.children[name]
	if !ok {
		return nil
	}
	return child
}
