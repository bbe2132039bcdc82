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

// Package irfields enumerates the fields of every node kind for
// generic field-by-field introspection and serialization. Every field
// of every kind participates; a client walking the fields sees the
// complete node.
package irfields

import "github.com/axl-org/axl/ir"

// Field is one named field of a node.
type Field struct {
	Name  string
	Value any
}

type fieldsFunc func(n ir.Node) []Field

var fieldsTable = ir.NewTable[fieldsFunc]("fields")

// Of returns the fields of a node, in declaration order. Expression
// kinds list their type first.
func Of(n ir.Node) []Field {
	return fieldsTable.Get(n.Kind())(n)
}

func exprFields(e ir.Expr, fields ...Field) []Field {
	return append([]Field{{Name: "type", Value: e.Type()}}, fields...)
}

func binaryFields[T ir.Expr](get func(T) (ir.Expr, ir.Expr)) fieldsFunc {
	return func(n ir.Node) []Field {
		op := n.(T)
		a, b := get(op)
		return exprFields(op, Field{Name: "a", Value: a}, Field{Name: "b", Value: b})
	}
}

func register[T ir.Node](fn fieldsFunc) {
	fieldsTable.Set(ir.KindOf[T](), fn)
}

func init() {
	register[*ir.IntImm](func(n ir.Node) []Field {
		op := n.(*ir.IntImm)
		return exprFields(op, Field{Name: "value", Value: op.Value})
	})
	register[*ir.UIntImm](func(n ir.Node) []Field {
		op := n.(*ir.UIntImm)
		return exprFields(op, Field{Name: "value", Value: op.Value})
	})
	register[*ir.FloatImm](func(n ir.Node) []Field {
		op := n.(*ir.FloatImm)
		return exprFields(op, Field{Name: "value", Value: op.Value})
	})
	register[*ir.StringImm](func(n ir.Node) []Field {
		op := n.(*ir.StringImm)
		return exprFields(op, Field{Name: "value", Value: op.Value})
	})
	register[*ir.Cast](func(n ir.Node) []Field {
		op := n.(*ir.Cast)
		return exprFields(op, Field{Name: "value", Value: op.Value})
	})
	register[*ir.Variable](func(n ir.Node) []Field {
		op := n.(*ir.Variable)
		return exprFields(op, Field{Name: "name_hint", Value: op.NameHint})
	})
	register[*ir.Add](binaryFields(func(op *ir.Add) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.Sub](binaryFields(func(op *ir.Sub) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.Mul](binaryFields(func(op *ir.Mul) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.Div](binaryFields(func(op *ir.Div) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.Mod](binaryFields(func(op *ir.Mod) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.Min](binaryFields(func(op *ir.Min) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.Max](binaryFields(func(op *ir.Max) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.EQ](binaryFields(func(op *ir.EQ) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.NE](binaryFields(func(op *ir.NE) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.LT](binaryFields(func(op *ir.LT) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.LE](binaryFields(func(op *ir.LE) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.GT](binaryFields(func(op *ir.GT) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.GE](binaryFields(func(op *ir.GE) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.And](binaryFields(func(op *ir.And) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.Or](binaryFields(func(op *ir.Or) (ir.Expr, ir.Expr) { return op.A, op.B }))
	register[*ir.Not](func(n ir.Node) []Field {
		op := n.(*ir.Not)
		return exprFields(op, Field{Name: "a", Value: op.A})
	})
	register[*ir.Select](func(n ir.Node) []Field {
		op := n.(*ir.Select)
		return exprFields(op,
			Field{Name: "condition", Value: op.Condition},
			Field{Name: "true_value", Value: op.TrueValue},
			Field{Name: "false_value", Value: op.FalseValue})
	})
	register[*ir.Load](func(n ir.Node) []Field {
		op := n.(*ir.Load)
		return exprFields(op,
			Field{Name: "buffer_name", Value: op.BufferName},
			Field{Name: "index", Value: op.Index},
			Field{Name: "predicate", Value: op.Predicate})
	})
	register[*ir.Ramp](func(n ir.Node) []Field {
		op := n.(*ir.Ramp)
		return exprFields(op,
			Field{Name: "base", Value: op.Base},
			Field{Name: "stride", Value: op.Stride},
			Field{Name: "lanes", Value: op.Lanes})
	})
	register[*ir.Broadcast](func(n ir.Node) []Field {
		op := n.(*ir.Broadcast)
		return exprFields(op,
			Field{Name: "value", Value: op.Value},
			Field{Name: "lanes", Value: op.Lanes})
	})
	register[*ir.Call](func(n ir.Node) []Field {
		op := n.(*ir.Call)
		return exprFields(op,
			Field{Name: "name", Value: op.Name},
			Field{Name: "args", Value: op.Args},
			Field{Name: "call_type", Value: op.CallType},
			Field{Name: "func", Value: op.Func},
			Field{Name: "value_index", Value: op.ValueIndex})
	})
	register[*ir.Let](func(n ir.Node) []Field {
		op := n.(*ir.Let)
		return exprFields(op,
			Field{Name: "var", Value: op.Var},
			Field{Name: "value", Value: op.Value},
			Field{Name: "body", Value: op.Body})
	})
	register[*ir.Shuffle](func(n ir.Node) []Field {
		op := n.(*ir.Shuffle)
		return exprFields(op,
			Field{Name: "vectors", Value: op.Vectors},
			Field{Name: "indices", Value: op.Indices})
	})

	register[*ir.LetStmt](func(n ir.Node) []Field {
		op := n.(*ir.LetStmt)
		return []Field{
			{Name: "var", Value: op.Var},
			{Name: "value", Value: op.Value},
			{Name: "body", Value: op.Body},
		}
	})
	register[*ir.AssertStmt](func(n ir.Node) []Field {
		op := n.(*ir.AssertStmt)
		return []Field{
			{Name: "condition", Value: op.Condition},
			{Name: "message", Value: op.Message},
			{Name: "body", Value: op.Body},
		}
	})
	register[*ir.ProducerConsumer](func(n ir.Node) []Field {
		op := n.(*ir.ProducerConsumer)
		return []Field{
			{Name: "func", Value: op.Func},
			{Name: "is_producer", Value: op.IsProducer},
			{Name: "body", Value: op.Body},
		}
	})
	register[*ir.For](func(n ir.Node) []Field {
		op := n.(*ir.For)
		return []Field{
			{Name: "loop_var", Value: op.LoopVar},
			{Name: "min", Value: op.Min},
			{Name: "extent", Value: op.Extent},
			{Name: "for_kind", Value: op.ForKind},
			{Name: "device_api", Value: op.DeviceAPI},
			{Name: "body", Value: op.Body},
		}
	})
	register[*ir.Store](func(n ir.Node) []Field {
		op := n.(*ir.Store)
		return []Field{
			{Name: "buffer_name", Value: op.BufferName},
			{Name: "value", Value: op.Value},
			{Name: "index", Value: op.Index},
			{Name: "predicate", Value: op.Predicate},
		}
	})
	register[*ir.Provide](func(n ir.Node) []Field {
		op := n.(*ir.Provide)
		return []Field{
			{Name: "func", Value: op.Func},
			{Name: "value_index", Value: op.ValueIndex},
			{Name: "value", Value: op.Value},
			{Name: "args", Value: op.Args},
		}
	})
	register[*ir.Allocate](func(n ir.Node) []Field {
		op := n.(*ir.Allocate)
		return []Field{
			{Name: "buffer_name", Value: op.BufferName},
			{Name: "type", Value: op.Type},
			{Name: "extents", Value: op.Extents},
			{Name: "condition", Value: op.Condition},
			{Name: "new_expr", Value: op.NewExpr},
			{Name: "free_function", Value: op.FreeFunction},
			{Name: "body", Value: op.Body},
		}
	})
	register[*ir.Free](func(n ir.Node) []Field {
		op := n.(*ir.Free)
		return []Field{{Name: "buffer_name", Value: op.BufferName}}
	})
	register[*ir.Realize](func(n ir.Node) []Field {
		op := n.(*ir.Realize)
		return []Field{
			{Name: "func", Value: op.Func},
			{Name: "value_index", Value: op.ValueIndex},
			{Name: "type", Value: op.Type},
			{Name: "bounds", Value: op.Bounds},
			{Name: "condition", Value: op.Condition},
			{Name: "body", Value: op.Body},
		}
	})
	register[*ir.Block](func(n ir.Node) []Field {
		op := n.(*ir.Block)
		return []Field{
			{Name: "first", Value: op.First},
			{Name: "rest", Value: op.Rest},
		}
	})
	register[*ir.IfThenElse](func(n ir.Node) []Field {
		op := n.(*ir.IfThenElse)
		return []Field{
			{Name: "condition", Value: op.Condition},
			{Name: "then_case", Value: op.ThenCase},
			{Name: "else_case", Value: op.ElseCase},
		}
	})
	register[*ir.Evaluate](func(n ir.Node) []Field {
		op := n.(*ir.Evaluate)
		return []Field{{Name: "value", Value: op.Value}}
	})
}
