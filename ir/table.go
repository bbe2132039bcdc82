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

import "github.com/axl-org/axl/errs"

// Table is a per-operation dispatch table: a dense vector of handlers
// indexed by node kind. Each operation over the IR (print, mutate,
// evaluate, ...) builds its own table and registers one handler per
// kind it supports, which lets new node kinds and new operations be
// added in independent packages.
//
// Handlers are registered at static-initialization time. Registering
// twice for the same kind and dispatching on a kind with no handler
// are both internal errors: dispatch never silently no-ops.
type Table[F any] struct {
	op       string
	handlers []*F
}

// NewTable returns an empty dispatch table for the named operation.
// The name only appears in failure messages.
func NewTable[F any](op string) *Table[F] {
	return &Table[F]{op: op}
}

// Set installs the handler for a node kind.
func (t *Table[F]) Set(index KindIndex, handler F) {
	if int(index) >= len(t.handlers) {
		grown := make([]*F, index+1)
		copy(grown, t.handlers)
		t.handlers = grown
	}
	if t.handlers[index] != nil {
		errs.ThrowInternalf("%s dispatch for %s is already set", t.op, KindKey(index))
	}
	t.handlers[index] = &handler
}

// CanDispatch returns true if a handler is installed for the kind.
func (t *Table[F]) CanDispatch(index KindIndex) bool {
	return int(index) < len(t.handlers) && t.handlers[index] != nil
}

// Get returns the handler installed for the kind.
func (t *Table[F]) Get(index KindIndex) F {
	if !t.CanDispatch(index) {
		errs.ThrowInternalf("%s dispatch called on unregistered kind %s", t.op, KindKey(index))
	}
	return *t.handlers[index]
}
