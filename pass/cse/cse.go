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

// Package cse rewrites multiply-used subexpressions into single named
// let bindings.
//
// The pass canonicalizes a shared expression graph into a global
// value numbering: every structurally-equal subexpression maps to one
// canonical object and one number, assigned bottom-up in discovery
// order so that a value only ever references values with smaller
// numbers. Values worth naming that are used more than once are then
// bound to fresh variables, innermost last.
package cse

import (
	"github.com/axl-org/axl/base/ordered"
	"github.com/axl-org/axl/base/scope"
	"github.com/axl-org/axl/base/uname"
	"github.com/axl-org/axl/errs"
	"github.com/axl-org/axl/ir"
)

// shouldExtract reports whether an expression is worth lifting into a
// let, regardless of how often it occurs. The list mirrors the cost
// model the simplifier uses for lets, otherwise the two passes fight
// over which trivial expressions to name.
func shouldExtract(e ir.Expr) bool {
	if ir.IsConst(e) {
		return false
	}
	switch op := e.(type) {
	case *ir.Variable:
		return false
	case *ir.Broadcast:
		return shouldExtract(op.Value)
	case *ir.Cast:
		return shouldExtract(op.Value)
	case *ir.Add:
		return !(ir.IsConst(op.A) || ir.IsConst(op.B))
	case *ir.Sub:
		return !(ir.IsConst(op.A) || ir.IsConst(op.B))
	case *ir.Mul:
		return !(ir.IsConst(op.A) || ir.IsConst(op.B))
	case *ir.Div:
		return !(ir.IsConst(op.A) || ir.IsConst(op.B))
	case *ir.Ramp:
		return !ir.IsConst(op.Stride)
	case *ir.Call:
		// Naming an impure call would change how often its side
		// effects run. A likely hint is free and not worth a binding,
		// though its argument still is.
		return op.IsPure() && !op.IsIntrinsic(ir.IntrinsicLikely)
	}
	return true
}

// entry is one canonical value: its expression in canonical form and
// the number of times the numbered graph references it.
type entry struct {
	expr     ir.Expr
	useCount int
}

// canonKey buckets canonical candidates by the two fields structural
// equality checks first, so a lookup only deep compares expressions
// that could match.
type canonKey struct {
	kind ir.KindIndex
	typ  ir.Type
}

type canonEntry struct {
	expr   ir.Expr
	number int
}

// valueNumbering mutates an expression into its canonical form,
// recording a global value numbering as a side effect. Numbers are
// assigned in bottom-up first-discovery order.
type valueNumbering struct {
	// entries in ascending number order.
	entries []*entry

	// shallow maps a node object already seen to its number, an
	// O(1) early-out for re-encountering the exact same object.
	shallow map[ir.Expr]int

	// lets redirects a let-bound variable to the number of its
	// value, erasing Let nodes from the numbered form.
	lets *scope.Stack[*ir.Variable, int]

	// canon maps a canonical form to its number by deep structural
	// equality.
	canon map[canonKey][]canonEntry

	cache *ir.CompareCache

	// number of the expression most recently returned by
	// MutateExpr.
	number int
}

func newValueNumbering() *valueNumbering {
	return &valueNumbering{
		shallow: make(map[ir.Expr]int),
		lets:    scope.New[*ir.Variable, int](),
		canon:   make(map[canonKey][]canonEntry),
		cache:   ir.NewCompareCache(256),
	}
}

func (g *valueNumbering) canonFind(e ir.Expr) (int, bool) {
	key := canonKey{kind: e.Kind(), typ: e.Type()}
	for _, candidate := range g.canon[key] {
		if g.cache.Equal(e, candidate.expr) {
			return candidate.number, true
		}
	}
	return 0, false
}

func (g *valueNumbering) canonInsert(e ir.Expr, number int) {
	key := canonKey{kind: e.Kind(), typ: e.Type()}
	g.canon[key] = append(g.canon[key], canonEntry{expr: e, number: number})
}

// canonical returns the canonical object of a number, checking that
// its type matches the expression it stands for.
func (g *valueNumbering) canonical(number int, e ir.Expr) ir.Expr {
	canonical := g.entries[number].expr
	errs.AssertInternal(canonical.Type() == e.Type(),
		"value %d has type %s but stands for an expression of type %s", number, canonical.Type(), e.Type())
	return canonical
}

// MutateExpr returns the canonical form of e and leaves its number in
// g.number. Lookup is three-level: object identity, let-bound
// variable identity, then deep structural equality of the form
// rebuilt from canonical children.
func (g *valueNumbering) MutateExpr(e ir.Expr) ir.Expr {
	if number, ok := g.shallow[e]; ok {
		g.number = number
		return g.canonical(number, e)
	}
	if v, ok := ir.As[*ir.Variable](e); ok {
		if number, ok := g.lets.Load(v); ok {
			g.number = number
			return g.canonical(number, e)
		}
	}
	if number, ok := g.canonFind(e); ok {
		g.number = number
		g.shallow[e] = number
		return g.canonical(number, e)
	}

	// Rebuild out of children already in the numbering.
	old := e
	e = g.rebuild(e)

	// The rebuilt form may match an existing value even though the
	// original did not, e.g. after a let-bound variable resolved to
	// its value.
	if number, ok := g.canonFind(e); ok {
		g.number = number
		g.shallow[old] = number
		return g.canonical(number, old)
	}

	number := len(g.entries)
	g.canonInsert(e, number)
	g.shallow[e] = number
	g.entries = append(g.entries, &entry{expr: e})
	g.number = number
	errs.AssertInternal(e.Type() == old.Type(), "canonical form changed type %s to %s", old.Type(), e.Type())
	return e
}

func (g *valueNumbering) rebuild(e ir.Expr) ir.Expr {
	let, ok := ir.As[*ir.Let](e)
	if !ok {
		return ir.MutateExprChildren(g, e)
	}
	// Number the value, redirect the variable to it while numbering
	// the body, and return the body: the let is gone from the
	// numbered form and is reconstructed later only if its value is
	// shared.
	g.MutateExpr(let.Value)
	g.lets.Push(let.Var, g.number)
	body := g.MutateExpr(let.Body)
	g.lets.Pop(let.Var)
	return body
}

func (g *valueNumbering) MutateStmt(s ir.Stmt) ir.Stmt {
	errs.ThrowInternalf("value numbering applies to expressions, not statements")
	return nil
}

// useCounter fills in the use counts of a value numbering. It walks
// the canonical form, in which every occurrence of a shared value is
// the same object.
type useCounter struct {
	numbering *valueNumbering
	visited   map[ir.Expr]bool
}

func (c *useCounter) VisitExpr(e ir.Expr) {
	// Values not worth extracting are not counted, but their
	// children may still be: recurse unconditionally, without
	// marking the node visited.
	if !shouldExtract(e) {
		ir.VisitChildren(c, e)
		return
	}
	if number, ok := c.numbering.shallow[e]; ok {
		c.numbering.entries[number].useCount++
	}
	// Visit the children only on first encounter so sharing inside
	// the graph is not double counted.
	if !c.visited[e] {
		c.visited[e] = true
		ir.VisitChildren(c, e)
	}
}

func (c *useCounter) VisitStmt(ir.Stmt) {
	errs.ThrowInternalf("use counting applies to expressions, not statements")
}

// replacer rebuilds an expression, substituting registered canonical
// values with their variables. Rebuild results are memoized so a
// subexpression reachable from many parents is rebuilt once.
type replacer struct {
	replacements *ordered.Map[ir.Expr, ir.Expr]
}

func (r *replacer) MutateExpr(e ir.Expr) ir.Expr {
	if to, ok := r.replacements.Load(e); ok {
		return to
	}
	rebuilt := ir.MutateExprChildren(r, e)
	r.replacements.Store(e, rebuilt)
	return rebuilt
}

func (r *replacer) MutateStmt(s ir.Stmt) ir.Stmt {
	errs.ThrowInternalf("replacement applies to expressions, not statements")
	return nil
}

type binding struct {
	v     *ir.Variable
	value ir.Expr
}

// Eliminate rewrites every subexpression of e that is worth naming
// and used more than once into a let binding, nearest enclosing
// scope, innermost first. The result is structurally equivalent to e.
func Eliminate(e ir.Expr) ir.Expr {
	if !ir.Defined(e) || ir.IsConst(e) {
		return e
	}
	if _, ok := ir.As[*ir.Variable](e); ok {
		return e
	}

	numbering := newValueNumbering()
	e = numbering.MutateExpr(e)

	counter := &useCounter{numbering: numbering, visited: make(map[ir.Expr]bool)}
	counter.VisitExpr(e)

	// Mint a variable for every value used more than once. Creation
	// order is ascending number order, which is a valid dependency
	// order: a value only references lower numbers.
	names := uname.New()
	var lets []binding
	r := &replacer{replacements: ordered.NewMap[ir.Expr, ir.Expr]()}
	for _, entry := range numbering.entries {
		if entry.useCount <= 1 {
			continue
		}
		v := ir.NewVariable(entry.expr.Type(), names.Name("t"))
		lets = append(lets, binding{v: v, value: entry.expr})
		r.replacements.Store(entry.expr, v)
	}

	// Rebuild the expression to reference the variables.
	e = r.MutateExpr(e)

	// Wrap in the lets, innermost first. A value must not be
	// rewritten to reference its own variable, so its entry leaves
	// the replacement table before the value itself is rebuilt; the
	// reduced table still substitutes the lower-numbered shared
	// values it contains.
	for i := len(lets) - 1; i >= 0; i-- {
		value := lets[i].value
		r.replacements.Delete(value)
		value = r.MutateExpr(value)
		e = ir.NewLet(lets[i].v, value, e)
	}
	return e
}

// stmtEliminator applies expression-level elimination to every
// expression embedded in a statement tree, independently per
// expression root.
type stmtEliminator struct{}

func (m stmtEliminator) MutateExpr(e ir.Expr) ir.Expr { return Eliminate(e) }

func (m stmtEliminator) MutateStmt(s ir.Stmt) ir.Stmt { return ir.MutateStmtChildren(m, s) }

// EliminateStmt applies Eliminate to every expression embedded in s.
func EliminateStmt(s ir.Stmt) ir.Stmt {
	return stmtEliminator{}.MutateStmt(s)
}
