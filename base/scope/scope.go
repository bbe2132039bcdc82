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

// Package scope provides a stack of bindings for traversals that
// enter and leave lexical scopes.
package scope

// Stack maps keys to values with push/pop semantics: pushing a key
// already in the stack shadows the previous binding until the
// matching pop. A traversal pushes on entering a binding construct
// and pops on leaving it.
type Stack[K comparable, V any] struct {
	bindings map[K][]V
}

// New returns an empty stack of bindings.
func New[K comparable, V any]() *Stack[K, V] {
	return &Stack[K, V]{bindings: make(map[K][]V)}
}

// Push binds key to value, shadowing any current binding.
func (s *Stack[K, V]) Push(key K, value V) {
	s.bindings[key] = append(s.bindings[key], value)
}

// Pop removes the innermost binding of key. Popping a key that is not
// bound is a no-op.
func (s *Stack[K, V]) Pop(key K) {
	stack := s.bindings[key]
	if len(stack) == 0 {
		return
	}
	if len(stack) == 1 {
		delete(s.bindings, key)
		return
	}
	s.bindings[key] = stack[:len(stack)-1]
}

// Load returns the innermost value bound to key.
func (s *Stack[K, V]) Load(key K) (V, bool) {
	stack := s.bindings[key]
	if len(stack) == 0 {
		var zero V
		return zero, false
	}
	return stack[len(stack)-1], true
}

// Contains reports whether key is bound.
func (s *Stack[K, V]) Contains(key K) bool {
	return len(s.bindings[key]) > 0
}
