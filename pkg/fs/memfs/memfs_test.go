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

package memfs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"helios.dev/helios/pkg/fs"
	"helios.dev/helios/pkg/kerr"
)

func TestTreeBuilding(t *testing.T) {
	root := NewDir("")
	dev := NewDir("dev")
	if err := root.AddChild(dev); err != nil {
		t.Fatalf("AddChild(dev): %v", err)
	}
	if err := dev.AddChild(NewCharDevice("sda", "extfs")); err != nil {
		t.Fatalf("AddChild(sda): %v", err)
	}
	if err := dev.AddChild(NewFile("console.log")); err != nil {
		t.Fatalf("AddChild(console.log): %v", err)
	}

	if got := fs.ResolvePath(root, "/dev/sda"); got == nil || !got.IsCharDevice() {
		t.Errorf("ResolvePath(/dev/sda): got %v, wanted a char device", got)
	}
	if got := dev.Parent(); got != fs.Node(root) {
		t.Errorf("dev.Parent(): got %v, wanted root", got)
	}

	var names []string
	for i := 0; ; i++ {
		ent, ok := dev.ReadDir(i)
		if !ok {
			break
		}
		names = append(names, ent.Name)
	}
	if diff := cmp.Diff([]string{"sda", "console.log"}, names); diff != "" {
		t.Errorf("enumeration order mismatch (-want +got):\n%s", diff)
	}
}

func TestAddChildErrors(t *testing.T) {
	dir := NewDir("dev")
	if err := dir.AddChild(NewCharDevice("sda", "")); err != nil {
		t.Fatalf("AddChild(sda): %v", err)
	}
	if err := dir.AddChild(NewCharDevice("sda", "")); err != kerr.EEXIST {
		t.Errorf("duplicate AddChild: got %v, wanted EEXIST", err)
	}
	long := strings.Repeat("a", fs.NameMax+1)
	if err := dir.AddChild(NewFile(long)); err != kerr.ENAMETOOLONG {
		t.Errorf("oversized AddChild: got %v, wanted ENAMETOOLONG", err)
	}
}

func TestRemoveChild(t *testing.T) {
	dir := NewDir("dev")
	sda := NewCharDevice("sda", "")
	if err := dir.AddChild(sda); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if err := dir.RemoveChild("sda"); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if sda.Parent() != nil {
		t.Errorf("removed child still has a parent")
	}
	if err := dir.RemoveChild("sda"); err != kerr.ENOENT {
		t.Errorf("second RemoveChild: got %v, wanted ENOENT", err)
	}
}

func TestSignatureDriver(t *testing.T) {
	drv := &SignatureDriver{FSName: "extfs", Signature: "extfs"}

	match := NewCharDevice("sda", "extfs")
	other := NewCharDevice("sdb", "fat32")

	if !drv.Identify(match) {
		t.Errorf("Identify(matching device): got false, wanted true")
	}
	if drv.Identify(other) {
		t.Errorf("Identify(other signature): got true, wanted false")
	}

	root, err := drv.Mount(match, "data")
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if got, want := root.Name(), "data"; got != want {
		t.Errorf("mounted root name: got %q, wanted %q", got, want)
	}

	failing := &SignatureDriver{FSName: "flaky", Signature: "extfs", FailMount: true}
	if _, err := failing.Mount(match, "data"); err == nil {
		t.Errorf("Mount with FailMount: got nil error, wanted failure")
	}
}
