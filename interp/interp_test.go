// Copyright 2025 The AXL Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package interp_test

import (
	"strings"
	"testing"

	"github.com/axl-org/axl/interp"
	"github.com/axl-org/axl/ir"
)

var (
	i32 = ir.IntType(32, 1)
	f64 = ir.FloatType(64, 1)
)

func intConst(value int64) ir.Expr { return ir.NewIntImm(i32, value) }

func TestEvalArithmetic(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	y := ir.NewVariable(i32, "y")
	env := interp.Env{}.Bind(x, interp.IntValue(i32, 7)).Bind(y, interp.IntValue(i32, -3))
	tests := []struct {
		e    ir.Expr
		want int64
	}{
		{e: intConst(42), want: 42},
		{e: x, want: 7},
		{e: ir.NewAdd(x, y), want: 4},
		{e: ir.NewSub(x, y), want: 10},
		{e: ir.NewMul(x, y), want: -21},
		// Division rounds toward negative infinity.
		{e: ir.NewDiv(x, intConst(2)), want: 3},
		{e: ir.NewDiv(y, intConst(2)), want: -2},
		{e: ir.NewDiv(intConst(-7), intConst(2)), want: -4},
		// The remainder takes the sign of the divisor.
		{e: ir.NewMod(intConst(-7), intConst(2)), want: 1},
		{e: ir.NewMod(intConst(7), intConst(-2)), want: -1},
		{e: ir.NewMin(x, y), want: -3},
		{e: ir.NewMax(x, y), want: 7},
		{e: ir.NewSelect(ir.NewLT(x, y), x, y), want: -3},
		{e: ir.NewSelect(ir.NewGE(x, y), x, y), want: 7},
		// int8 arithmetic wraps at the type width.
		{e: ir.NewAdd(ir.NewIntImm(ir.IntType(8, 1), 100), ir.NewIntImm(ir.IntType(8, 1), 100)), want: -56},
	}
	for _, test := range tests {
		got, err := interp.Eval(test.e, env)
		if err != nil {
			t.Errorf("%s node: %v", test.e.Key(), err)
			continue
		}
		if got.Int() != test.want {
			t.Errorf("%s node evaluates to %d but want %d", test.e.Key(), got.Int(), test.want)
		}
	}
}

func TestEvalLogic(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	env := interp.Env{}.Bind(x, interp.IntValue(i32, 5))
	tests := []struct {
		e    ir.Expr
		want bool
	}{
		{e: ir.NewEQ(x, intConst(5)), want: true},
		{e: ir.NewNE(x, intConst(5)), want: false},
		{e: ir.NewLE(x, intConst(5)), want: true},
		{e: ir.NewGT(x, intConst(5)), want: false},
		{e: ir.NewAnd(ir.NewLT(x, intConst(9)), ir.NewGT(x, intConst(0))), want: true},
		{e: ir.NewOr(ir.NewLT(x, intConst(0)), ir.NewGT(x, intConst(9))), want: false},
		{e: ir.NewNot(ir.NewEQ(x, intConst(5))), want: false},
		{e: ir.ConstBool(true, 1), want: true},
	}
	for _, test := range tests {
		got, err := interp.Eval(test.e, env)
		if err != nil {
			t.Errorf("%s node: %v", test.e.Key(), err)
			continue
		}
		if got.Bool() != test.want {
			t.Errorf("%s node evaluates to %v but want %v", test.e.Key(), got.Bool(), test.want)
		}
	}
}

func TestEvalLetShadowing(t *testing.T) {
	v := ir.NewVariable(i32, "v")
	inner := ir.NewVariable(i32, "v")
	// let v = 2 in v * (let v' = 3 in v' + v')
	e := ir.NewLet(v, intConst(2),
		ir.NewMul(v, ir.NewLet(inner, intConst(3), ir.NewAdd(inner, inner))))
	got, err := interp.Eval(e, nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Int() != 12 {
		t.Errorf("nested lets evaluate to %d but want 12", got.Int())
	}
	// The outer binding is restored after the inner let ends.
	e = ir.NewLet(v, intConst(2), ir.NewAdd(ir.NewLet(inner, intConst(3), inner), v))
	got, err = interp.Eval(e, nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Int() != 5 {
		t.Errorf("shadowed let evaluates to %d but want 5", got.Int())
	}
}

func TestEvalCast(t *testing.T) {
	got, err := interp.Eval(ir.NewCast(f64, intConst(3)), nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Type() != f64 || got.Float() != 3.0 {
		t.Errorf("int to float cast evaluates to %s", got)
	}
	got, err = interp.Eval(ir.NewCast(i32, ir.NewFloatImm(f64, 2.9)), nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Int() != 2 {
		t.Errorf("float to int cast evaluates to %d but want 2", got.Int())
	}
	// Casting to a narrower int renormalizes.
	got, err = interp.Eval(ir.NewCast(ir.IntType(8, 1), intConst(200)), nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Int() != -56 {
		t.Errorf("narrowing cast evaluates to %d but want -56", got.Int())
	}
}

func TestEvalSelectIsLazy(t *testing.T) {
	// The untaken branch divides by zero and must not be evaluated.
	e := ir.NewSelect(ir.ConstBool(true, 1), intConst(1), ir.NewDiv(intConst(1), intConst(0)))
	got, err := interp.Eval(e, nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got.Int() != 1 {
		t.Errorf("select evaluates to %d but want 1", got.Int())
	}
}

func TestEvalIntrinsics(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	env := interp.Env{}.Bind(x, interp.IntValue(i32, -5))
	call := func(t ir.Type, name string, args ...ir.Expr) ir.Expr {
		return ir.NewCall(t, name, args, ir.CallPureIntrinsic, nil, 0)
	}
	tests := []struct {
		name string
		e    ir.Expr
		want interp.Value
	}{
		{
			name: "abs int",
			e:    call(i32, ir.IntrinsicAbs, x),
			want: interp.IntValue(i32, 5),
		},
		{
			name: "abs float",
			e:    call(f64, ir.IntrinsicAbs, ir.NewFloatImm(f64, -2.5)),
			want: interp.FloatValue(f64, 2.5),
		},
		{
			name: "likely passes its argument through",
			e:    call(i32, ir.IntrinsicLikely, x),
			want: interp.IntValue(i32, -5),
		},
		{
			// The untaken branch divides by zero and must not be
			// evaluated.
			name: "if_then_else is lazy",
			e: call(i32, ir.IntrinsicIfThenElse, ir.ConstBool(false, 1),
				ir.NewDiv(intConst(1), intConst(0)), intConst(9)),
			want: interp.IntValue(i32, 9),
		},
		{
			name: "reinterpret float bits",
			e:    call(ir.IntType(64, 1), ir.IntrinsicReinterpret, ir.NewFloatImm(f64, 1.0)),
			want: interp.IntValue(ir.IntType(64, 1), 4607182418800017408),
		},
	}
	for _, test := range tests {
		got, err := interp.Eval(test.e, env)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("%s: evaluates to %s but want %s", test.name, got, test.want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	tests := []struct {
		name string
		e    ir.Expr
		want string
	}{
		{name: "undefined", e: nil, want: "undefined"},
		{name: "unbound variable", e: x, want: "not bound"},
		{name: "division by zero", e: ir.NewDiv(intConst(1), intConst(0)), want: "division by zero"},
		{name: "modulo by zero", e: ir.NewMod(intConst(1), intConst(0)), want: "division by zero"},
		{
			name: "float modulo",
			e:    ir.NewMod(ir.NewFloatImm(f64, 1), ir.NewFloatImm(f64, 2)),
			want: "not defined on floating point",
		},
		{
			name: "vector expression",
			e:    ir.NewBroadcast(intConst(1), 4),
			want: "vector",
		},
		{
			name: "unsupported kind",
			e:    ir.NewLoad(i32, "buf", intConst(0), ir.ConstTrue(1)),
			want: "cannot evaluate Load",
		},
		{
			name: "extern call",
			e:    ir.NewCall(i32, "rand", nil, ir.CallExtern, nil, 0),
			want: "cannot evaluate a call to rand",
		},
		{
			name: "reinterpret across widths",
			e: ir.NewCall(i32, ir.IntrinsicReinterpret,
				[]ir.Expr{ir.NewFloatImm(f64, 1)}, ir.CallPureIntrinsic, nil, 0),
			want: "different width",
		},
	}
	for _, test := range tests {
		_, err := interp.Eval(test.e, nil)
		if err == nil {
			t.Errorf("%s: Eval succeeded but want an error", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: error %q does not mention %q", test.name, err.Error(), test.want)
		}
	}
}

func TestEnvString(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	y := ir.NewVariable(i32, "y")
	env := interp.Env{}.Bind(y, interp.IntValue(i32, 2)).Bind(x, interp.IntValue(i32, 1))
	if got := env.String(); got != "{x: 1, y: 2}" {
		t.Errorf("environment prints as %q", got)
	}
}
