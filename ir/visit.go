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

// Visitor traverses IR read-only. Implementations that only care
// about some kinds call VisitChildren in the default path to keep
// walking.
type Visitor interface {
	VisitExpr(e Expr)
	VisitStmt(s Stmt)
}

type visitFunc func(v Visitor, n Node)

var visitTable = NewTable[visitFunc]("visit")

// VisitChildren calls the visitor on every direct child of a node.
// Undefined nodes and undefined optional children are skipped.
func VisitChildren(v Visitor, n Node) {
	if !Defined(n) {
		return
	}
	visitTable.Get(n.Kind())(v, n)
}

func visitLeaf(Visitor, Node) {}

func visitBinary(v Visitor, n Node) {
	a, b := n.(BinaryExpr).Operands()
	v.VisitExpr(a)
	v.VisitExpr(b)
}

func visitOptStmt(v Visitor, s Stmt) {
	if Defined(s) {
		v.VisitStmt(s)
	}
}

func init() {
	for _, kind := range []KindIndex{intImmKind, uintImmKind, floatImmKind, stringImmKind, variableKind, freeKind} {
		visitTable.Set(kind, visitLeaf)
	}
	for _, kind := range []KindIndex{addKind, subKind, mulKind, divKind, modKind, minKind, maxKind,
		eqKind, neKind, ltKind, leKind, gtKind, geKind, andKind, orKind} {
		visitTable.Set(kind, visitBinary)
	}
	visitTable.Set(castKind, func(v Visitor, n Node) {
		v.VisitExpr(n.(*Cast).Value)
	})
	visitTable.Set(notKind, func(v Visitor, n Node) {
		v.VisitExpr(n.(*Not).A)
	})
	visitTable.Set(selectKind, func(v Visitor, n Node) {
		op := n.(*Select)
		v.VisitExpr(op.Condition)
		v.VisitExpr(op.TrueValue)
		v.VisitExpr(op.FalseValue)
	})
	visitTable.Set(loadKind, func(v Visitor, n Node) {
		op := n.(*Load)
		v.VisitExpr(op.Index)
		v.VisitExpr(op.Predicate)
	})
	visitTable.Set(rampKind, func(v Visitor, n Node) {
		op := n.(*Ramp)
		v.VisitExpr(op.Base)
		v.VisitExpr(op.Stride)
	})
	visitTable.Set(broadcastKind, func(v Visitor, n Node) {
		v.VisitExpr(n.(*Broadcast).Value)
	})
	visitTable.Set(callKind, func(v Visitor, n Node) {
		for _, arg := range n.(*Call).Args {
			v.VisitExpr(arg)
		}
	})
	visitTable.Set(letKind, func(v Visitor, n Node) {
		op := n.(*Let)
		v.VisitExpr(op.Value)
		v.VisitExpr(op.Body)
	})
	visitTable.Set(shuffleKind, func(v Visitor, n Node) {
		for _, vec := range n.(*Shuffle).Vectors {
			v.VisitExpr(vec)
		}
	})

	visitTable.Set(letStmtKind, func(v Visitor, n Node) {
		op := n.(*LetStmt)
		v.VisitExpr(op.Value)
		v.VisitStmt(op.Body)
	})
	visitTable.Set(assertStmtKind, func(v Visitor, n Node) {
		op := n.(*AssertStmt)
		v.VisitExpr(op.Condition)
		v.VisitExpr(op.Message)
		visitOptStmt(v, op.Body)
	})
	visitTable.Set(producerConsumerKind, func(v Visitor, n Node) {
		v.VisitStmt(n.(*ProducerConsumer).Body)
	})
	visitTable.Set(forKind, func(v Visitor, n Node) {
		op := n.(*For)
		v.VisitExpr(op.Min)
		v.VisitExpr(op.Extent)
		v.VisitStmt(op.Body)
	})
	visitTable.Set(storeKind, func(v Visitor, n Node) {
		op := n.(*Store)
		v.VisitExpr(op.Value)
		v.VisitExpr(op.Index)
		v.VisitExpr(op.Predicate)
	})
	visitTable.Set(provideKind, func(v Visitor, n Node) {
		op := n.(*Provide)
		v.VisitExpr(op.Value)
		for _, arg := range op.Args {
			v.VisitExpr(arg)
		}
	})
	visitTable.Set(allocateKind, func(v Visitor, n Node) {
		op := n.(*Allocate)
		for _, extent := range op.Extents {
			v.VisitExpr(extent)
		}
		v.VisitExpr(op.Condition)
		if Defined(op.NewExpr) {
			v.VisitExpr(op.NewExpr)
		}
		v.VisitStmt(op.Body)
	})
	visitTable.Set(realizeKind, func(v Visitor, n Node) {
		op := n.(*Realize)
		for _, bound := range op.Bounds {
			v.VisitExpr(bound.Min)
			v.VisitExpr(bound.Extent)
		}
		v.VisitExpr(op.Condition)
		v.VisitStmt(op.Body)
	})
	visitTable.Set(blockKind, func(v Visitor, n Node) {
		op := n.(*Block)
		v.VisitStmt(op.First)
		visitOptStmt(v, op.Rest)
	})
	visitTable.Set(ifThenElseKind, func(v Visitor, n Node) {
		op := n.(*IfThenElse)
		v.VisitExpr(op.Condition)
		v.VisitStmt(op.ThenCase)
		visitOptStmt(v, op.ElseCase)
	})
	visitTable.Set(evaluateKind, func(v Visitor, n Node) {
		v.VisitExpr(n.(*Evaluate).Value)
	})
}
