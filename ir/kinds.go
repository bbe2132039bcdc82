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

package ir

import (
	"github.com/axl-org/axl/base/ordered"
	"github.com/axl-org/axl/errs"
)

// KindIndex is the dense index assigned to a node kind. Indices are
// stable for the lifetime of the process but not across runs or
// builds: no code may persist them.
type KindIndex uint32

// kinds maps each node kind's unique string key to its dense index,
// which is the key's insertion position. Registration happens at
// static-initialization time, before any dispatch table is consulted;
// afterwards the registry is only read, so concurrent lookups need no
// locking.
var kinds = ordered.NewMap[string, KindIndex]()

// RegisterKind assigns a dense index to a node kind key. The index is
// assigned the first time the key is referenced; registering the same
// key again returns the index already assigned.
func RegisterKind(key string) KindIndex {
	if index, ok := kinds.Load(key); ok {
		return index
	}
	index := KindIndex(kinds.Size())
	kinds.Store(key, index)
	return index
}

// KindCount returns the number of registered node kinds.
func KindCount() int { return kinds.Size() }

// KindKey returns the string key of a registered kind index.
func KindKey(index KindIndex) string {
	if int(index) >= kinds.Size() {
		errs.ThrowInternalf("kind index %d is out of range: %d kinds registered", index, kinds.Size())
	}
	return kinds.KeyAt(int(index))
}

// KindOf returns the kind index of a node kind given its Go type.
// The node type argument is not dereferenced, so instantiating with
// the concrete pointer type is enough:
//
//	index := ir.KindOf[*ir.Add]()
func KindOf[T Node]() KindIndex {
	var zero T
	return zero.Kind()
}
