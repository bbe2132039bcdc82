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

// Equal reports deep structural equality of two expressions.
// Variables and function references compare by identity, never by
// name hint. Undefined compares equal only to undefined.
func Equal(a, b Expr) bool {
	return (&comparer{}).equalExpr(a, b)
}

// CompareCache remembers pairs of expression objects known to be
// structurally equal. Comparing large graphs with internal sharing is
// worst-case exponential without it; with it, a shared pair is deep
// compared once per cache generation.
//
// The cache is bounded: when full, it forgets everything and starts a
// new generation.
type CompareCache struct {
	limit int
	known map[exprPair]struct{}
}

type exprPair struct{ a, b Expr }

// NewCompareCache returns a cache holding at most limit pairs.
func NewCompareCache(limit int) *CompareCache {
	return &CompareCache{limit: limit, known: make(map[exprPair]struct{}, limit)}
}

// Equal is Equal backed by the cache. Results proven equal during the
// comparison seed later queries.
func (c *CompareCache) Equal(a, b Expr) bool {
	return (&comparer{cache: c}).equalExpr(a, b)
}

func (c *CompareCache) contains(a, b Expr) bool {
	if _, ok := c.known[exprPair{a, b}]; ok {
		return true
	}
	_, ok := c.known[exprPair{b, a}]
	return ok
}

func (c *CompareCache) insert(a, b Expr) {
	if len(c.known) >= c.limit {
		c.known = make(map[exprPair]struct{}, c.limit)
	}
	c.known[exprPair{a, b}] = struct{}{}
}

type comparer struct {
	cache *CompareCache
}

func (cmp *comparer) equalExpr(a, b Expr) bool {
	if a == b {
		return true
	}
	if !Defined(a) || !Defined(b) {
		return false
	}
	if a.Kind() != b.Kind() || a.Type() != b.Type() {
		return false
	}
	if cmp.cache != nil && cmp.cache.contains(a, b) {
		return true
	}
	equal := cmp.equalFields(a, b)
	if equal && cmp.cache != nil {
		cmp.cache.insert(a, b)
	}
	return equal
}

func (cmp *comparer) equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !cmp.equalExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

// equalFields compares the fields of two defined nodes of the same
// kind and type. Identity has already been ruled out, so kinds whose
// equality is identity are unequal here.
func (cmp *comparer) equalFields(a, b Expr) bool {
	switch opA := a.(type) {
	case *IntImm:
		return opA.Value == b.(*IntImm).Value
	case *UIntImm:
		return opA.Value == b.(*UIntImm).Value
	case *FloatImm:
		return opA.Value == b.(*FloatImm).Value
	case *StringImm:
		return opA.Value == b.(*StringImm).Value
	case *Variable:
		return false
	case *Cast:
		return cmp.equalExpr(opA.Value, b.(*Cast).Value)
	case BinaryExpr:
		aA, aB := opA.Operands()
		bA, bB := b.(BinaryExpr).Operands()
		return cmp.equalExpr(aA, bA) && cmp.equalExpr(aB, bB)
	case *Not:
		return cmp.equalExpr(opA.A, b.(*Not).A)
	case *Select:
		opB := b.(*Select)
		return cmp.equalExpr(opA.Condition, opB.Condition) &&
			cmp.equalExpr(opA.TrueValue, opB.TrueValue) &&
			cmp.equalExpr(opA.FalseValue, opB.FalseValue)
	case *Load:
		opB := b.(*Load)
		return opA.BufferName == opB.BufferName &&
			cmp.equalExpr(opA.Index, opB.Index) &&
			cmp.equalExpr(opA.Predicate, opB.Predicate)
	case *Ramp:
		opB := b.(*Ramp)
		return cmp.equalExpr(opA.Base, opB.Base) && cmp.equalExpr(opA.Stride, opB.Stride)
	case *Broadcast:
		return cmp.equalExpr(opA.Value, b.(*Broadcast).Value)
	case *Call:
		opB := b.(*Call)
		return opA.Name == opB.Name &&
			opA.CallType == opB.CallType &&
			opA.Func == opB.Func &&
			opA.ValueIndex == opB.ValueIndex &&
			cmp.equalExprs(opA.Args, opB.Args)
	case *Let:
		opB := b.(*Let)
		return opA.Var == opB.Var &&
			cmp.equalExpr(opA.Value, opB.Value) &&
			cmp.equalExpr(opA.Body, opB.Body)
	case *Shuffle:
		opB := b.(*Shuffle)
		if len(opA.Indices) != len(opB.Indices) {
			return false
		}
		for i := range opA.Indices {
			if opA.Indices[i] != opB.Indices[i] {
				return false
			}
		}
		return cmp.equalExprs(opA.Vectors, opB.Vectors)
	}
	throwInvalid("comparison", "", "unhandled expression kind %s", a.Key())
	return false
}
