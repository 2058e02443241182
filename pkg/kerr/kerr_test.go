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

package kerr

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestIdentity(t *testing.T) {
	a := New(unix.EINVAL, "invalid argument")
	b := New(unix.EINVAL, "invalid argument")
	if a == b {
		t.Errorf("distinct New calls returned identical values")
	}
	var err error = a
	if err != a {
		t.Errorf("identity comparison through the error interface failed")
	}
}

func TestErrno(t *testing.T) {
	if got, want := EEXIST.Errno(), unix.EEXIST; got != want {
		t.Errorf("EEXIST.Errno(): got %v, wanted %v", got, want)
	}
	if got, want := ENOENT.Error(), "no such entry"; got != want {
		t.Errorf("ENOENT.Error(): got %q, wanted %q", got, want)
	}
}
