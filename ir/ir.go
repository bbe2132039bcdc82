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

// Package ir defines the intermediate representation of array and loop
// computations: a closed set of expression and statement node kinds,
// validating factories as the only way to build them, and an open
// dispatch mechanism for operating over them.
//
// Nodes are immutable once built and shared by reference: a value is a
// directed acyclic graph, not a tree, and one node object may be
// pointed to by many parents. Passes never mutate a node in place;
// rewriting allocates new nodes and reuses unchanged subgraphs.
//
// A nil Expr or Stmt is the undefined sentinel used for optional
// children, such as the else branch of IfThenElse.
package ir

type (
	// Node is one IR node of any kind.
	Node interface {
		// Key is the unique string key of the node kind.
		Key() string

		// Kind is the dense index assigned to the node kind.
		Kind() KindIndex

		// node marks a structure as a node structure. It prevents
		// external packages from adding node kinds behind the
		// factories' back.
		node()
	}

	// Expr is a handle to an expression node. A nil Expr is undefined.
	Expr interface {
		Node

		// Type of the value the expression evaluates to.
		Type() Type

		expr()
	}

	// Stmt is a handle to a statement node. A nil Stmt is undefined.
	Stmt interface {
		Node

		stmt()
	}
)

type exprNode struct {
	typ Type
}

// Type of the value the expression evaluates to.
func (n *exprNode) Type() Type { return n.typ }

func (*exprNode) node() {}
func (*exprNode) expr() {}

type stmtNode struct{}

func (*stmtNode) node() {}
func (*stmtNode) stmt() {}

// Defined returns false if n is the undefined sentinel.
func Defined[T Node](n T) bool {
	var undef T
	return any(n) != any(undef)
}

// SameAs returns true if a and b are the same node object. Structurally
// equal nodes built separately are not the same; see Equal.
func SameAs(a, b Node) bool {
	return a == b
}

// As downcasts a handle to a concrete node kind. It returns the
// concrete node and true if and only if the handle's runtime kind
// matches, else the zero value and false.
func As[T Node](n Node) (T, bool) {
	concrete, ok := n.(T)
	return concrete, ok
}

// FuncRef references a function whose values are written by Provide
// and realized by Realize statements. Two references denote the same
// function only when they are the same object: NameHint is cosmetic
// and passes must never compare it.
type FuncRef struct {
	NameHint string

	// Outputs is the number of values the function produces.
	Outputs int
}

// NewFuncRef returns a reference to a function with the given number
// of outputs.
func NewFuncRef(nameHint string, outputs int) *FuncRef {
	if outputs < 1 {
		throwInvalid("function", nameHint, "must have at least one output, has %d", outputs)
	}
	return &FuncRef{NameHint: nameHint, Outputs: outputs}
}

// Range is a single-dimensional span covering all values between Min
// and Min+Extent-1.
type Range struct {
	Min, Extent Expr
}

// NewRange builds a Range, checking that min and extent are defined
// scalars of the same type.
func NewRange(min, extent Expr) Range {
	checkDefined("range", "min", min)
	checkDefined("range", "extent", extent)
	if min.Type() != extent.Type() {
		throwInvalid("range", "", "min type %s and extent type %s differ", min.Type(), extent.Type())
	}
	if !min.Type().IsScalar() {
		throwInvalid("range", "", "min and extent must be scalar, got %s", min.Type())
	}
	return Range{Min: min, Extent: extent}
}

// Region is a multi-dimensional box: the outer product of its ranges.
type Region []Range
