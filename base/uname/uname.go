// Copyright 2025 The AXL Authors
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

// Package uname provides unique names.
package uname

import "fmt"

// Unique generates unique names.
type Unique struct {
	names map[string]int
}

// New name generator.
func New() *Unique {
	return &Unique{names: make(map[string]int)}
}

// Name returns a fresh name built from a desired base name by
// appending the number of names already minted from that base.
// The first name built from base "t" is "t0", then "t1", and so on.
func (n *Unique) Name(root string) string {
	next := n.names[root]
	n.names[root] = next + 1
	return fmt.Sprintf("%s%d", root, next)
}
