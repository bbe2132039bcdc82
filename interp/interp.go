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

// Package interp evaluates scalar expressions against an environment
// of variable bindings. It covers the pure arithmetic and logical
// subset of the IR; passes use it to check that a rewrite preserved
// the meaning of an expression.
package interp

import (
	"math"

	"github.com/pkg/errors"

	"github.com/axl-org/axl/ir"
)

type evalFunc func(ev *evaluator, e ir.Expr) (Value, error)

var evalTable = ir.NewTable[evalFunc]("eval")

// Eval evaluates a scalar expression. Evaluation fails on expressions
// outside the supported subset, on unbound variables and on division
// by zero; it never panics.
func Eval(e ir.Expr, env Env) (Value, error) {
	if !ir.Defined(e) {
		return Value{}, errors.New("cannot evaluate an undefined expression")
	}
	ev := &evaluator{env: env}
	return ev.eval(e)
}

type evaluator struct {
	env Env
}

func (ev *evaluator) eval(e ir.Expr) (Value, error) {
	if !e.Type().IsScalar() {
		return Value{}, errors.Errorf("cannot evaluate vector expression of type %s", e.Type())
	}
	if !evalTable.CanDispatch(e.Kind()) {
		return Value{}, errors.Errorf("cannot evaluate %s expression", e.Key())
	}
	return evalTable.Get(e.Kind())(ev, e)
}

func register[T ir.Expr](fn func(ev *evaluator, op T) (Value, error)) {
	evalTable.Set(ir.KindOf[T](), func(ev *evaluator, e ir.Expr) (Value, error) {
		return fn(ev, e.(T))
	})
}

func (ev *evaluator) operands(e ir.BinaryExpr) (Value, Value, error) {
	exprA, exprB := e.Operands()
	a, err := ev.eval(exprA)
	if err != nil {
		return Value{}, Value{}, err
	}
	b, err := ev.eval(exprB)
	if err != nil {
		return Value{}, Value{}, err
	}
	return a, b, nil
}

// arith dispatches a binary arithmetic operation on the payloads of
// two values of the operation's type.
type arith struct {
	onInt   func(t ir.Type, a, b int64) (Value, error)
	onUInt  func(t ir.Type, a, b uint64) (Value, error)
	onFloat func(t ir.Type, a, b float64) (Value, error)
}

func registerArith[T ir.BinaryExpr](op arith) {
	register[T](func(ev *evaluator, e T) (Value, error) {
		a, b, err := ev.operands(e)
		if err != nil {
			return Value{}, err
		}
		t := e.Type()
		switch {
		case t.IsInt():
			return op.onInt(t, a.Int(), b.Int())
		case t.IsUInt():
			return op.onUInt(t, a.UInt(), b.UInt())
		case t.IsFloat():
			return op.onFloat(t, a.Float(), b.Float())
		}
		return Value{}, errors.Errorf("cannot do arithmetic on type %s", t)
	})
}

// comparison dispatches on the payloads of two values of the operand
// type. The result is boolean whatever the operands are.
type comparison struct {
	onInt   func(a, b int64) bool
	onUInt  func(a, b uint64) bool
	onFloat func(a, b float64) bool
}

func registerComparison[T ir.BinaryExpr](op comparison) {
	register[T](func(ev *evaluator, e T) (Value, error) {
		a, b, err := ev.operands(e)
		if err != nil {
			return Value{}, err
		}
		t := a.Type()
		switch {
		case t.IsInt():
			return BoolValue(op.onInt(a.Int(), b.Int())), nil
		case t.IsUInt():
			return BoolValue(op.onUInt(a.UInt(), b.UInt())), nil
		case t.IsFloat():
			return BoolValue(op.onFloat(a.Float(), b.Float())), nil
		}
		return Value{}, errors.Errorf("cannot compare values of type %s", t)
	})
}

func registerLogical[T ir.BinaryExpr](combine func(a, b bool) bool) {
	register[T](func(ev *evaluator, e T) (Value, error) {
		a, b, err := ev.operands(e)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(combine(a.Bool(), b.Bool())), nil
	})
}

// floorDiv rounds the quotient toward negative infinity, which is the
// division the IR denotes, not the machine division.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod yields a remainder with the sign of the divisor.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func init() {
	register[*ir.IntImm](func(ev *evaluator, op *ir.IntImm) (Value, error) {
		return IntValue(op.Type(), op.Value), nil
	})
	register[*ir.UIntImm](func(ev *evaluator, op *ir.UIntImm) (Value, error) {
		return UIntValue(op.Type(), op.Value), nil
	})
	register[*ir.FloatImm](func(ev *evaluator, op *ir.FloatImm) (Value, error) {
		return FloatValue(op.Type(), op.Value), nil
	})
	register[*ir.StringImm](func(ev *evaluator, op *ir.StringImm) (Value, error) {
		return TextValue(op.Value), nil
	})
	register[*ir.Variable](func(ev *evaluator, op *ir.Variable) (Value, error) {
		value, ok := ev.env[op]
		if !ok {
			return Value{}, errors.Errorf("variable %s is not bound", op.NameHint)
		}
		return value, nil
	})
	register[*ir.Cast](func(ev *evaluator, op *ir.Cast) (Value, error) {
		value, err := ev.eval(op.Value)
		if err != nil {
			return Value{}, err
		}
		return cast(op.Type(), value)
	})

	registerArith[*ir.Add](arith{
		onInt:   func(t ir.Type, a, b int64) (Value, error) { return IntValue(t, a+b), nil },
		onUInt:  func(t ir.Type, a, b uint64) (Value, error) { return UIntValue(t, a+b), nil },
		onFloat: func(t ir.Type, a, b float64) (Value, error) { return FloatValue(t, a+b), nil },
	})
	registerArith[*ir.Sub](arith{
		onInt:   func(t ir.Type, a, b int64) (Value, error) { return IntValue(t, a-b), nil },
		onUInt:  func(t ir.Type, a, b uint64) (Value, error) { return UIntValue(t, a-b), nil },
		onFloat: func(t ir.Type, a, b float64) (Value, error) { return FloatValue(t, a-b), nil },
	})
	registerArith[*ir.Mul](arith{
		onInt:   func(t ir.Type, a, b int64) (Value, error) { return IntValue(t, a*b), nil },
		onUInt:  func(t ir.Type, a, b uint64) (Value, error) { return UIntValue(t, a*b), nil },
		onFloat: func(t ir.Type, a, b float64) (Value, error) { return FloatValue(t, a*b), nil },
	})
	registerArith[*ir.Div](arith{
		onInt: func(t ir.Type, a, b int64) (Value, error) {
			if b == 0 {
				return Value{}, errors.New("division by zero")
			}
			return IntValue(t, floorDiv(a, b)), nil
		},
		onUInt: func(t ir.Type, a, b uint64) (Value, error) {
			if b == 0 {
				return Value{}, errors.New("division by zero")
			}
			return UIntValue(t, a/b), nil
		},
		onFloat: func(t ir.Type, a, b float64) (Value, error) { return FloatValue(t, a/b), nil },
	})
	registerArith[*ir.Mod](arith{
		onInt: func(t ir.Type, a, b int64) (Value, error) {
			if b == 0 {
				return Value{}, errors.New("division by zero")
			}
			return IntValue(t, floorMod(a, b)), nil
		},
		onUInt: func(t ir.Type, a, b uint64) (Value, error) {
			if b == 0 {
				return Value{}, errors.New("division by zero")
			}
			return UIntValue(t, a%b), nil
		},
		onFloat: func(t ir.Type, a, b float64) (Value, error) {
			return Value{}, errors.New("modulo is not defined on floating point values")
		},
	})
	registerArith[*ir.Min](arith{
		onInt:   func(t ir.Type, a, b int64) (Value, error) { return IntValue(t, min(a, b)), nil },
		onUInt:  func(t ir.Type, a, b uint64) (Value, error) { return UIntValue(t, min(a, b)), nil },
		onFloat: func(t ir.Type, a, b float64) (Value, error) { return FloatValue(t, min(a, b)), nil },
	})
	registerArith[*ir.Max](arith{
		onInt:   func(t ir.Type, a, b int64) (Value, error) { return IntValue(t, max(a, b)), nil },
		onUInt:  func(t ir.Type, a, b uint64) (Value, error) { return UIntValue(t, max(a, b)), nil },
		onFloat: func(t ir.Type, a, b float64) (Value, error) { return FloatValue(t, max(a, b)), nil },
	})

	registerComparison[*ir.EQ](comparison{
		onInt:   func(a, b int64) bool { return a == b },
		onUInt:  func(a, b uint64) bool { return a == b },
		onFloat: func(a, b float64) bool { return a == b },
	})
	registerComparison[*ir.NE](comparison{
		onInt:   func(a, b int64) bool { return a != b },
		onUInt:  func(a, b uint64) bool { return a != b },
		onFloat: func(a, b float64) bool { return a != b },
	})
	registerComparison[*ir.LT](comparison{
		onInt:   func(a, b int64) bool { return a < b },
		onUInt:  func(a, b uint64) bool { return a < b },
		onFloat: func(a, b float64) bool { return a < b },
	})
	registerComparison[*ir.LE](comparison{
		onInt:   func(a, b int64) bool { return a <= b },
		onUInt:  func(a, b uint64) bool { return a <= b },
		onFloat: func(a, b float64) bool { return a <= b },
	})
	registerComparison[*ir.GT](comparison{
		onInt:   func(a, b int64) bool { return a > b },
		onUInt:  func(a, b uint64) bool { return a > b },
		onFloat: func(a, b float64) bool { return a > b },
	})
	registerComparison[*ir.GE](comparison{
		onInt:   func(a, b int64) bool { return a >= b },
		onUInt:  func(a, b uint64) bool { return a >= b },
		onFloat: func(a, b float64) bool { return a >= b },
	})

	registerLogical[*ir.And](func(a, b bool) bool { return a && b })
	registerLogical[*ir.Or](func(a, b bool) bool { return a || b })
	register[*ir.Not](func(ev *evaluator, op *ir.Not) (Value, error) {
		a, err := ev.eval(op.A)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(!a.Bool()), nil
	})

	register[*ir.Select](func(ev *evaluator, op *ir.Select) (Value, error) {
		condition, err := ev.eval(op.Condition)
		if err != nil {
			return Value{}, err
		}
		// Only the selected branch is evaluated; the other branch may
		// divide by zero or reference unbound variables.
		if condition.Bool() {
			return ev.eval(op.TrueValue)
		}
		return ev.eval(op.FalseValue)
	})
	register[*ir.Call](func(ev *evaluator, op *ir.Call) (Value, error) {
		switch {
		case op.IsIntrinsic(ir.IntrinsicIfThenElse) && len(op.Args) == 3:
			condition, err := ev.eval(op.Args[0])
			if err != nil {
				return Value{}, err
			}
			// The untaken branch is not evaluated.
			if condition.Bool() {
				return ev.eval(op.Args[1])
			}
			return ev.eval(op.Args[2])
		case op.IsIntrinsic(ir.IntrinsicLikely) && len(op.Args) == 1:
			return ev.eval(op.Args[0])
		case op.IsIntrinsic(ir.IntrinsicAbs) && len(op.Args) == 1:
			value, err := ev.eval(op.Args[0])
			if err != nil {
				return Value{}, err
			}
			return abs(value), nil
		case op.IsIntrinsic(ir.IntrinsicReinterpret) && len(op.Args) == 1:
			value, err := ev.eval(op.Args[0])
			if err != nil {
				return Value{}, err
			}
			return reinterpret(op.Type(), value)
		}
		return Value{}, errors.Errorf("cannot evaluate a call to %s", op.Name)
	})
	register[*ir.Let](func(ev *evaluator, op *ir.Let) (Value, error) {
		value, err := ev.eval(op.Value)
		if err != nil {
			return Value{}, err
		}
		outer := ev.env
		ev.env = ev.env.Bind(op.Var, value)
		result, err := ev.eval(op.Body)
		ev.env = outer
		return result, err
	})
}

func cast(to ir.Type, value Value) (Value, error) {
	from := value.Type()
	switch {
	case to.IsInt():
		switch {
		case from.IsInt():
			return IntValue(to, value.Int()), nil
		case from.IsUInt():
			return IntValue(to, int64(value.UInt())), nil
		case from.IsFloat():
			return IntValue(to, int64(value.Float())), nil
		}
	case to.IsUInt():
		switch {
		case from.IsInt():
			return UIntValue(to, uint64(value.Int())), nil
		case from.IsUInt():
			return UIntValue(to, value.UInt()), nil
		case from.IsFloat():
			return UIntValue(to, uint64(int64(value.Float()))), nil
		}
	case to.IsFloat():
		switch {
		case from.IsInt():
			return FloatValue(to, float64(value.Int())), nil
		case from.IsUInt():
			return FloatValue(to, float64(value.UInt())), nil
		case from.IsFloat():
			return FloatValue(to, value.Float()), nil
		}
	}
	return Value{}, errors.Errorf("cannot cast %s to %s", from, to)
}

func abs(value Value) Value {
	t := value.Type()
	switch {
	case t.IsInt():
		if value.Int() < 0 {
			return IntValue(t, -value.Int())
		}
	case t.IsFloat():
		return FloatValue(t, math.Abs(value.Float()))
	}
	return value
}

// reinterpret returns the same bits read as another type of the same
// width.
func reinterpret(to ir.Type, value Value) (Value, error) {
	from := value.Type()
	if from.Bits != to.Bits {
		return Value{}, errors.Errorf("cannot reinterpret %s as %s of a different width", from, to)
	}
	var bits uint64
	switch {
	case from.IsInt():
		bits = uint64(value.Int())
	case from.IsUInt():
		bits = value.UInt()
	case from.IsFloat() && from.Bits == 64:
		bits = math.Float64bits(value.Float())
	case from.IsFloat() && from.Bits == 32:
		bits = uint64(math.Float32bits(float32(value.Float())))
	default:
		return Value{}, errors.Errorf("cannot reinterpret a value of type %s", from)
	}
	switch {
	case to.IsInt():
		return IntValue(to, int64(bits)), nil
	case to.IsUInt():
		return UIntValue(to, bits), nil
	case to.IsFloat() && to.Bits == 64:
		return FloatValue(to, math.Float64frombits(bits)), nil
	case to.IsFloat() && to.Bits == 32:
		return FloatValue(to, float64(math.Float32frombits(uint32(bits)))), nil
	}
	return Value{}, errors.Errorf("cannot reinterpret %s as %s", from, to)
}
