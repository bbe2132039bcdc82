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

// Mutator rewrites IR. MutateExpr and MutateStmt are called on every
// node reachable from the root; an implementation rewrites the kinds
// it cares about and calls MutateExprChildren or MutateStmtChildren
// in the default path.
//
// Rewriting never mutates a node in place: a changed node is rebuilt
// through its factory and unchanged subgraphs are shared by returning
// the original handle.
type Mutator interface {
	MutateExpr(e Expr) Expr
	MutateStmt(s Stmt) Stmt
}

type (
	exprMutateFunc func(m Mutator, e Expr) Expr
	stmtMutateFunc func(m Mutator, s Stmt) Stmt
)

var (
	exprMutateTable = NewTable[exprMutateFunc]("mutate")
	stmtMutateTable = NewTable[stmtMutateFunc]("mutate")
)

// MutateExprChildren mutates every direct child of an expression and
// rebuilds the node through its factory. When every child comes back
// identical to the original, the original node is returned unchanged
// so that repeated passes over unchanged subgraphs allocate nothing.
func MutateExprChildren(m Mutator, e Expr) Expr {
	if !Defined(e) {
		return e
	}
	return exprMutateTable.Get(e.Kind())(m, e)
}

// MutateStmtChildren is MutateExprChildren for statements.
func MutateStmtChildren(m Mutator, s Stmt) Stmt {
	if !Defined(s) {
		return s
	}
	return stmtMutateTable.Get(s.Kind())(m, s)
}

// GraphMutator memoizes the result of mutating each node object so
// that a node reachable from many parents is rewritten exactly once.
// It is required whenever the input may be a DAG with sharing: a
// plain tree mutator re-walks a shared subgraph once per parent.
//
// ExprFunc and StmtFunc, when set, rewrite one node and recurse into
// children through the GraphMutator they receive; when nil, children
// are mutated and the node rebuilt as by MutateExprChildren.
type GraphMutator struct {
	ExprFunc func(g *GraphMutator, e Expr) Expr
	StmtFunc func(g *GraphMutator, s Stmt) Stmt

	exprs map[Expr]Expr
	stmts map[Stmt]Stmt
}

// MutateExpr returns the memoized rewrite of an expression object,
// computing it on first encounter.
func (g *GraphMutator) MutateExpr(e Expr) Expr {
	if !Defined(e) {
		return e
	}
	if done, ok := g.exprs[e]; ok {
		return done
	}
	var done Expr
	if g.ExprFunc != nil {
		done = g.ExprFunc(g, e)
	} else {
		done = MutateExprChildren(g, e)
	}
	if g.exprs == nil {
		g.exprs = make(map[Expr]Expr)
	}
	g.exprs[e] = done
	return done
}

// MutateStmt returns the memoized rewrite of a statement object,
// computing it on first encounter.
func (g *GraphMutator) MutateStmt(s Stmt) Stmt {
	if !Defined(s) {
		return s
	}
	if done, ok := g.stmts[s]; ok {
		return done
	}
	var done Stmt
	if g.StmtFunc != nil {
		done = g.StmtFunc(g, s)
	} else {
		done = MutateStmtChildren(g, s)
	}
	if g.stmts == nil {
		g.stmts = make(map[Stmt]Stmt)
	}
	g.stmts[s] = done
	return done
}

func mutateIdentity(m Mutator, e Expr) Expr { return e }

func mutateBinary(rebuild func(a, b Expr) Expr) exprMutateFunc {
	return func(m Mutator, e Expr) Expr {
		a, b := e.(BinaryExpr).Operands()
		ma, mb := m.MutateExpr(a), m.MutateExpr(b)
		if SameAs(ma, a) && SameAs(mb, b) {
			return e
		}
		return rebuild(ma, mb)
	}
}

func mutateExprList(m Mutator, exprs []Expr) ([]Expr, bool) {
	changed := false
	mutated := make([]Expr, len(exprs))
	for i, e := range exprs {
		mutated[i] = m.MutateExpr(e)
		if !SameAs(mutated[i], e) {
			changed = true
		}
	}
	if !changed {
		return exprs, false
	}
	return mutated, true
}

func mutateOptExpr(m Mutator, e Expr) Expr {
	if !Defined(e) {
		return e
	}
	return m.MutateExpr(e)
}

func mutateOptStmt(m Mutator, s Stmt) Stmt {
	if !Defined(s) {
		return s
	}
	return m.MutateStmt(s)
}

func init() {
	for _, kind := range []KindIndex{intImmKind, uintImmKind, floatImmKind, stringImmKind, variableKind} {
		exprMutateTable.Set(kind, mutateIdentity)
	}
	exprMutateTable.Set(addKind, mutateBinary(NewAdd))
	exprMutateTable.Set(subKind, mutateBinary(NewSub))
	exprMutateTable.Set(mulKind, mutateBinary(NewMul))
	exprMutateTable.Set(divKind, mutateBinary(NewDiv))
	exprMutateTable.Set(modKind, mutateBinary(NewMod))
	exprMutateTable.Set(minKind, mutateBinary(NewMin))
	exprMutateTable.Set(maxKind, mutateBinary(NewMax))
	exprMutateTable.Set(eqKind, mutateBinary(NewEQ))
	exprMutateTable.Set(neKind, mutateBinary(NewNE))
	exprMutateTable.Set(ltKind, mutateBinary(NewLT))
	exprMutateTable.Set(leKind, mutateBinary(NewLE))
	exprMutateTable.Set(gtKind, mutateBinary(NewGT))
	exprMutateTable.Set(geKind, mutateBinary(NewGE))
	exprMutateTable.Set(andKind, mutateBinary(NewAnd))
	exprMutateTable.Set(orKind, mutateBinary(NewOr))
	exprMutateTable.Set(castKind, func(m Mutator, e Expr) Expr {
		op := e.(*Cast)
		value := m.MutateExpr(op.Value)
		if SameAs(value, op.Value) {
			return e
		}
		return NewCast(op.Type(), value)
	})
	exprMutateTable.Set(notKind, func(m Mutator, e Expr) Expr {
		op := e.(*Not)
		a := m.MutateExpr(op.A)
		if SameAs(a, op.A) {
			return e
		}
		return NewNot(a)
	})
	exprMutateTable.Set(selectKind, func(m Mutator, e Expr) Expr {
		op := e.(*Select)
		cond := m.MutateExpr(op.Condition)
		t := m.MutateExpr(op.TrueValue)
		f := m.MutateExpr(op.FalseValue)
		if SameAs(cond, op.Condition) && SameAs(t, op.TrueValue) && SameAs(f, op.FalseValue) {
			return e
		}
		return NewSelect(cond, t, f)
	})
	exprMutateTable.Set(loadKind, func(m Mutator, e Expr) Expr {
		op := e.(*Load)
		index := m.MutateExpr(op.Index)
		predicate := m.MutateExpr(op.Predicate)
		if SameAs(index, op.Index) && SameAs(predicate, op.Predicate) {
			return e
		}
		return NewLoad(op.Type(), op.BufferName, index, predicate)
	})
	exprMutateTable.Set(rampKind, func(m Mutator, e Expr) Expr {
		op := e.(*Ramp)
		base := m.MutateExpr(op.Base)
		stride := m.MutateExpr(op.Stride)
		if SameAs(base, op.Base) && SameAs(stride, op.Stride) {
			return e
		}
		return NewRamp(base, stride, op.Lanes)
	})
	exprMutateTable.Set(broadcastKind, func(m Mutator, e Expr) Expr {
		op := e.(*Broadcast)
		value := m.MutateExpr(op.Value)
		if SameAs(value, op.Value) {
			return e
		}
		return NewBroadcast(value, op.Lanes)
	})
	exprMutateTable.Set(callKind, func(m Mutator, e Expr) Expr {
		op := e.(*Call)
		args, changed := mutateExprList(m, op.Args)
		if !changed {
			return e
		}
		return NewCall(op.Type(), op.Name, args, op.CallType, op.Func, op.ValueIndex)
	})
	exprMutateTable.Set(letKind, func(m Mutator, e Expr) Expr {
		op := e.(*Let)
		value := m.MutateExpr(op.Value)
		body := m.MutateExpr(op.Body)
		if SameAs(value, op.Value) && SameAs(body, op.Body) {
			return e
		}
		return NewLet(op.Var, value, body)
	})
	exprMutateTable.Set(shuffleKind, func(m Mutator, e Expr) Expr {
		op := e.(*Shuffle)
		vectors, changed := mutateExprList(m, op.Vectors)
		if !changed {
			return e
		}
		return NewShuffle(vectors, op.Indices)
	})

	stmtMutateTable.Set(letStmtKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*LetStmt)
		value := m.MutateExpr(op.Value)
		body := m.MutateStmt(op.Body)
		if SameAs(value, op.Value) && SameAs(body, op.Body) {
			return s
		}
		return NewLetStmt(op.Var, value, body)
	})
	stmtMutateTable.Set(assertStmtKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*AssertStmt)
		cond := m.MutateExpr(op.Condition)
		message := m.MutateExpr(op.Message)
		body := mutateOptStmt(m, op.Body)
		if SameAs(cond, op.Condition) && SameAs(message, op.Message) && SameAs(body, op.Body) {
			return s
		}
		return NewAssertStmt(cond, message, body)
	})
	stmtMutateTable.Set(producerConsumerKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*ProducerConsumer)
		body := m.MutateStmt(op.Body)
		if SameAs(body, op.Body) {
			return s
		}
		return NewProducerConsumer(op.Func, op.IsProducer, body)
	})
	stmtMutateTable.Set(forKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*For)
		min := m.MutateExpr(op.Min)
		extent := m.MutateExpr(op.Extent)
		body := m.MutateStmt(op.Body)
		if SameAs(min, op.Min) && SameAs(extent, op.Extent) && SameAs(body, op.Body) {
			return s
		}
		return NewFor(op.LoopVar, min, extent, op.ForKind, op.DeviceAPI, body)
	})
	stmtMutateTable.Set(storeKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*Store)
		value := m.MutateExpr(op.Value)
		index := m.MutateExpr(op.Index)
		predicate := m.MutateExpr(op.Predicate)
		if SameAs(value, op.Value) && SameAs(index, op.Index) && SameAs(predicate, op.Predicate) {
			return s
		}
		return NewStore(op.BufferName, value, index, predicate)
	})
	stmtMutateTable.Set(provideKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*Provide)
		value := m.MutateExpr(op.Value)
		args, argsChanged := mutateExprList(m, op.Args)
		if SameAs(value, op.Value) && !argsChanged {
			return s
		}
		return NewProvide(op.Func, op.ValueIndex, value, args)
	})
	stmtMutateTable.Set(allocateKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*Allocate)
		extents, extentsChanged := mutateExprList(m, op.Extents)
		cond := m.MutateExpr(op.Condition)
		newExpr := mutateOptExpr(m, op.NewExpr)
		body := m.MutateStmt(op.Body)
		if !extentsChanged && SameAs(cond, op.Condition) && SameAs(newExpr, op.NewExpr) && SameAs(body, op.Body) {
			return s
		}
		return NewAllocate(op.BufferName, op.Type, extents, cond, body, newExpr, op.FreeFunction)
	})
	stmtMutateTable.Set(freeKind, func(m Mutator, s Stmt) Stmt { return s })
	stmtMutateTable.Set(realizeKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*Realize)
		boundsChanged := false
		bounds := make(Region, len(op.Bounds))
		for i, bound := range op.Bounds {
			bounds[i] = Range{Min: m.MutateExpr(bound.Min), Extent: m.MutateExpr(bound.Extent)}
			if !SameAs(bounds[i].Min, bound.Min) || !SameAs(bounds[i].Extent, bound.Extent) {
				boundsChanged = true
			}
		}
		cond := m.MutateExpr(op.Condition)
		body := m.MutateStmt(op.Body)
		if !boundsChanged && SameAs(cond, op.Condition) && SameAs(body, op.Body) {
			return s
		}
		if !boundsChanged {
			bounds = op.Bounds
		}
		return NewRealize(op.Func, op.ValueIndex, op.Type, bounds, cond, body)
	})
	stmtMutateTable.Set(blockKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*Block)
		first := m.MutateStmt(op.First)
		rest := mutateOptStmt(m, op.Rest)
		if SameAs(first, op.First) && SameAs(rest, op.Rest) {
			return s
		}
		return NewBlock(first, rest)
	})
	stmtMutateTable.Set(ifThenElseKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*IfThenElse)
		cond := m.MutateExpr(op.Condition)
		thenCase := m.MutateStmt(op.ThenCase)
		elseCase := mutateOptStmt(m, op.ElseCase)
		if SameAs(cond, op.Condition) && SameAs(thenCase, op.ThenCase) && SameAs(elseCase, op.ElseCase) {
			return s
		}
		return NewIfThenElse(cond, thenCase, elseCase)
	})
	stmtMutateTable.Set(evaluateKind, func(m Mutator, s Stmt) Stmt {
		op := s.(*Evaluate)
		value := m.MutateExpr(op.Value)
		if SameAs(value, op.Value) {
			return s
		}
		return NewEvaluate(value)
	})
}
