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
package ir_test

import (
	"testing"

	"github.com/axl-org/axl/ir"
)

var (
	i32 = ir.IntType(32, 1)
	f32 = ir.FloatType(32, 1)
)

func intConst(value int64) ir.Expr { return ir.NewIntImm(i32, value) }

func TestImmNormalization(t *testing.T) {
	imm, _ := ir.As[*ir.IntImm](ir.NewIntImm(ir.IntType(8, 1), 200))
	if imm.Value != -56 {
		t.Errorf("int8 value 200 normalized to %d but want -56", imm.Value)
	}
	imm, _ = ir.As[*ir.IntImm](ir.NewIntImm(i32, -1))
	if imm.Value != -1 {
		t.Errorf("int32 value -1 normalized to %d", imm.Value)
	}
	uimm, _ := ir.As[*ir.UIntImm](ir.NewUIntImm(ir.UIntType(8, 1), 300))
	if uimm.Value != 44 {
		t.Errorf("uint8 value 300 normalized to %d but want 44", uimm.Value)
	}
	fimm, _ := ir.As[*ir.FloatImm](ir.NewFloatImm(f32, 1.1))
	if fimm.Value != float64(float32(1.1)) {
		t.Errorf("float32 constant kept %v, not rounded to 32-bit precision", fimm.Value)
	}
	if got := ir.NewStringImm("hi").Type(); got != ir.HandleType(1) {
		t.Errorf("string constant has type %s but want handle64", got)
	}
}

func TestInvalidImms(t *testing.T) {
	wantInvalid(t, "IntImm of uint type", func() { ir.NewIntImm(ir.UIntType(32, 1), 0) })
	wantInvalid(t, "IntImm of vector type", func() { ir.NewIntImm(ir.IntType(32, 4), 0) })
	wantInvalid(t, "UIntImm of float type", func() { ir.NewUIntImm(f32, 0) })
	wantInvalid(t, "FloatImm of int type", func() { ir.NewFloatImm(i32, 0) })
}

func TestBinaryOps(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	y := ir.NewVariable(i32, "y")
	sum := ir.NewAdd(x, y)
	if sum.Type() != i32 {
		t.Errorf("x + y has type %s but want int32", sum.Type())
	}
	a, b := sum.(ir.BinaryExpr).Operands()
	if !ir.SameAs(a, x) || !ir.SameAs(b, y) {
		t.Errorf("operands of x + y are not the original nodes")
	}
	wantInvalid(t, "mixed types", func() { ir.NewAdd(x, ir.NewVariable(f32, "f")) })
	wantInvalid(t, "undefined operand", func() { ir.NewMul(x, nil) })
}

func TestComparisonsAreBool(t *testing.T) {
	x4 := ir.NewVariable(ir.IntType(32, 4), "x4")
	y4 := ir.NewVariable(ir.IntType(32, 4), "y4")
	lt := ir.NewLT(x4, y4)
	if lt.Type() != ir.BoolType(4) {
		t.Errorf("x4 < y4 has type %s but want boolx4", lt.Type())
	}
}

func TestLogicalOps(t *testing.T) {
	p := ir.NewVariable(ir.BoolType(1), "p")
	q := ir.NewVariable(ir.BoolType(1), "q")
	if got := ir.NewAnd(p, q).Type(); got != ir.BoolType(1) {
		t.Errorf("p && q has type %s", got)
	}
	if got := ir.NewNot(p).Type(); got != ir.BoolType(1) {
		t.Errorf("!p has type %s", got)
	}
	x := ir.NewVariable(i32, "x")
	wantInvalid(t, "And of ints", func() { ir.NewAnd(x, x) })
	wantInvalid(t, "Not of int", func() { ir.NewNot(x) })
}

func TestSelect(t *testing.T) {
	p := ir.NewVariable(ir.BoolType(1), "p")
	x := ir.NewVariable(i32, "x")
	y := ir.NewVariable(i32, "y")
	if got := ir.NewSelect(p, x, y).Type(); got != i32 {
		t.Errorf("select has type %s", got)
	}
	// A scalar condition may select between vectors.
	x4 := ir.NewVariable(ir.IntType(32, 4), "x4")
	y4 := ir.NewVariable(ir.IntType(32, 4), "y4")
	if got := ir.NewSelect(p, x4, y4).Type(); got != ir.IntType(32, 4) {
		t.Errorf("vector select has type %s", got)
	}
	wantInvalid(t, "non-bool condition", func() { ir.NewSelect(x, x, y) })
	wantInvalid(t, "branch type mismatch", func() { ir.NewSelect(p, x, x4) })
	p2 := ir.NewVariable(ir.BoolType(2), "p2")
	wantInvalid(t, "condition lane mismatch", func() { ir.NewSelect(p2, x4, y4) })
}

func TestCast(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	if got := ir.NewCast(f32, x).Type(); got != f32 {
		t.Errorf("cast has type %s", got)
	}
	wantInvalid(t, "lane change", func() { ir.NewCast(ir.IntType(32, 4), x) })
}

func TestVectorNodes(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	ramp := ir.NewRamp(x, intConst(1), 8)
	if ramp.Type() != ir.IntType(32, 8) {
		t.Errorf("ramp has type %s", ramp.Type())
	}
	broadcast := ir.NewBroadcast(x, 8)
	if broadcast.Type() != ir.IntType(32, 8) {
		t.Errorf("broadcast has type %s", broadcast.Type())
	}
	wantInvalid(t, "ramp of one lane", func() { ir.NewRamp(x, intConst(1), 1) })
	wantInvalid(t, "ramp of vector base", func() { ir.NewRamp(broadcast, intConst(1), 8) })
	wantInvalid(t, "ramp type mismatch", func() { ir.NewRamp(x, ir.NewVariable(f32, "f"), 8) })
	wantInvalid(t, "broadcast of vector", func() { ir.NewBroadcast(ramp, 4) })
	wantInvalid(t, "broadcast of one lane", func() { ir.NewBroadcast(x, 1) })
}

func TestLoad(t *testing.T) {
	index := ir.NewRamp(ir.NewVariable(i32, "i"), intConst(1), 4)
	load := ir.NewLoad(ir.FloatType(32, 4), "buf", index, ir.ConstTrue(4))
	if load.Type() != ir.FloatType(32, 4) {
		t.Errorf("load has type %s", load.Type())
	}
	wantInvalid(t, "index lane mismatch", func() {
		ir.NewLoad(ir.FloatType(32, 8), "buf", index, ir.ConstTrue(8))
	})
	wantInvalid(t, "predicate lane mismatch", func() {
		ir.NewLoad(ir.FloatType(32, 4), "buf", index, ir.ConstTrue(1))
	})
	wantInvalid(t, "non-bool predicate", func() {
		ir.NewLoad(ir.FloatType(32, 4), "buf", index, index)
	})
}

func TestCall(t *testing.T) {
	x := ir.NewVariable(f32, "x")
	sin := ir.NewCall(f32, "sin", []ir.Expr{x}, ir.CallPureExtern, nil, 0)
	call, _ := ir.As[*ir.Call](sin)
	if !call.IsPure() {
		t.Errorf("pure extern call reports IsPure=false")
	}
	if call.IsIntrinsic(ir.IntrinsicAbs) {
		t.Errorf("extern call claims to be an intrinsic")
	}
	abs := ir.NewCall(f32, ir.IntrinsicAbs, []ir.Expr{x}, ir.CallPureIntrinsic, nil, 0)
	if c, _ := ir.As[*ir.Call](abs); !c.IsIntrinsic(ir.IntrinsicAbs) {
		t.Errorf("abs intrinsic not recognized")
	}

	fn := ir.NewFuncRef("producer", 2)
	i := ir.NewVariable(i32, "i")
	ir.NewCall(f32, "producer", []ir.Expr{i}, ir.CallFunc, fn, 1)
	wantInvalid(t, "func call without function", func() {
		ir.NewCall(f32, "producer", []ir.Expr{i}, ir.CallFunc, nil, 0)
	})
	wantInvalid(t, "func call with non-int32 argument", func() {
		ir.NewCall(f32, "producer", []ir.Expr{x}, ir.CallFunc, fn, 0)
	})
	wantInvalid(t, "value index out of range", func() {
		ir.NewCall(f32, "producer", []ir.Expr{i}, ir.CallFunc, fn, 2)
	})
	wantInvalid(t, "undefined argument", func() {
		ir.NewCall(f32, "sin", []ir.Expr{nil}, ir.CallPureExtern, nil, 0)
	})
}

func TestLet(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	v := ir.NewVariable(i32, "v")
	let := ir.NewLet(v, ir.NewMul(x, x), ir.NewAdd(v, v))
	if let.Type() != i32 {
		t.Errorf("let has type %s", let.Type())
	}
	wantInvalid(t, "value type mismatch", func() {
		ir.NewLet(v, ir.NewVariable(f32, "f"), v)
	})
	wantInvalid(t, "nil variable", func() { ir.NewLet(nil, x, x) })
}

func TestShuffle(t *testing.T) {
	a := ir.NewVariable(ir.IntType(32, 4), "a")
	b := ir.NewVariable(ir.IntType(32, 4), "b")
	interleave := ir.NewShuffle([]ir.Expr{a, b}, []int{0, 4, 1, 5, 2, 6, 3, 7})
	if interleave.Type() != ir.IntType(32, 8) {
		t.Errorf("interleave has type %s", interleave.Type())
	}
	extract := ir.NewShuffle([]ir.Expr{a}, []int{2})
	if extract.Type() != i32 {
		t.Errorf("single-lane shuffle has type %s", extract.Type())
	}
	wantInvalid(t, "index out of range", func() { ir.NewShuffle([]ir.Expr{a}, []int{4}) })
	wantInvalid(t, "negative index", func() { ir.NewShuffle([]ir.Expr{a}, []int{-1}) })
	wantInvalid(t, "element type mismatch", func() {
		ir.NewShuffle([]ir.Expr{a, ir.NewVariable(ir.FloatType(32, 4), "f")}, []int{0})
	})
	wantInvalid(t, "no vectors", func() { ir.NewShuffle(nil, []int{0}) })
}

func TestFuncRef(t *testing.T) {
	wantInvalid(t, "zero outputs", func() { ir.NewFuncRef("f", 0) })
}

func TestIsConst(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	tests := []struct {
		e    ir.Expr
		want bool
	}{
		{e: intConst(1), want: true},
		{e: ir.NewFloatImm(f32, 1), want: true},
		{e: ir.NewStringImm("s"), want: true},
		{e: ir.NewBroadcast(intConst(1), 4), want: true},
		{e: ir.NewBroadcast(x, 4), want: false},
		{e: ir.NewRamp(intConst(0), intConst(1), 4), want: true},
		{e: ir.NewRamp(x, intConst(1), 4), want: false},
		{e: x, want: false},
		{e: ir.NewAdd(intConst(1), intConst(2)), want: false},
	}
	for _, test := range tests {
		if got := ir.IsConst(test.e); got != test.want {
			t.Errorf("IsConst(%s node)=%v but want %v", test.e.Key(), got, test.want)
		}
	}
	if v, ok := ir.ConstInt(intConst(7)); !ok || v != 7 {
		t.Errorf("ConstInt of 7 is %d, %v", v, ok)
	}
	if _, ok := ir.ConstInt(x); ok {
		t.Errorf("ConstInt of a variable reports ok")
	}
}

func TestDefined(t *testing.T) {
	var undef ir.Expr
	if ir.Defined(undef) {
		t.Errorf("nil expression reports defined")
	}
	if !ir.Defined(intConst(0)) {
		t.Errorf("constant reports undefined")
	}
	var undefStmt ir.Stmt
	if ir.Defined(undefStmt) {
		t.Errorf("nil statement reports defined")
	}
}
