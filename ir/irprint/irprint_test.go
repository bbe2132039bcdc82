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
package irprint_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/axl-org/axl/ir"
	"github.com/axl-org/axl/ir/irprint"
)

var (
	i32 = ir.IntType(32, 1)
	x   = ir.NewVariable(i32, "x")
	y   = ir.NewVariable(i32, "y")
)

func intConst(value int64) ir.Expr { return ir.NewIntImm(i32, value) }

func TestExprString(t *testing.T) {
	p := ir.NewVariable(ir.BoolType(1), "p")
	q := ir.NewVariable(ir.BoolType(1), "q")
	v := ir.NewVariable(i32, "v")
	tests := []struct {
		e    ir.Expr
		want string
	}{
		{e: nil, want: "(undefined)"},
		{e: intConst(42), want: "42"},
		{e: intConst(-1), want: "-1"},
		{e: ir.NewIntImm(ir.IntType(8, 1), 5), want: "(int8)5"},
		{e: ir.ConstBool(true, 1), want: "(bool)1"},
		{e: ir.NewFloatImm(ir.FloatType(64, 1), 3.5), want: "3.5"},
		{e: ir.NewFloatImm(ir.FloatType(32, 1), 3.5), want: "3.5f"},
		{e: ir.NewStringImm(`a"b`), want: `"a\"b"`},
		{e: ir.NewStringImm("line\n"), want: `"line\n"`},
		{e: x, want: "x"},
		{e: ir.NewAdd(x, y), want: "(x + y)"},
		{e: ir.NewSub(x, intConst(1)), want: "(x - 1)"},
		{e: ir.NewMul(x, y), want: "(x*y)"},
		{e: ir.NewDiv(x, y), want: "(x/y)"},
		{e: ir.NewMod(x, intConst(4)), want: "(x % 4)"},
		{e: ir.NewMin(x, y), want: "min(x, y)"},
		{e: ir.NewMax(x, y), want: "max(x, y)"},
		{e: ir.NewEQ(x, y), want: "(x == y)"},
		{e: ir.NewNE(x, y), want: "(x != y)"},
		{e: ir.NewLT(x, y), want: "(x < y)"},
		{e: ir.NewGE(x, y), want: "(x >= y)"},
		{e: ir.NewAnd(p, q), want: "(p && q)"},
		{e: ir.NewOr(p, q), want: "(p || q)"},
		{e: ir.NewNot(p), want: "!p"},
		{e: ir.NewSelect(ir.NewLT(x, y), x, y), want: "select((x < y), x, y)"},
		{e: ir.NewCast(ir.IntType(64, 1), x), want: "int64(x)"},
		{e: ir.NewLoad(i32, "buf", x, ir.ConstTrue(1)), want: "buf[x]"},
		{
			e:    ir.NewLoad(i32, "buf", x, p),
			want: "buf[x] if p",
		},
		{e: ir.NewRamp(x, intConst(1), 4), want: "ramp(x, 1, 4)"},
		{e: ir.NewBroadcast(x, 4), want: "x4(x)"},
		{
			e:    ir.NewCall(i32, "halving_add", []ir.Expr{x, y}, ir.CallPureExtern, nil, 0),
			want: "halving_add(x, y)",
		},
		{
			e:    ir.NewLet(v, ir.NewMul(x, x), ir.NewAdd(v, v)),
			want: "(let v = (x*x) in (v + v))",
		},
		{
			e:    ir.NewShuffle([]ir.Expr{ir.NewBroadcast(x, 4)}, []int{0, 2}),
			want: "shuffle(x4(x), [0, 2])",
		},
	}
	for _, test := range tests {
		if got := irprint.ExprString(test.e); got != test.want {
			t.Errorf("got %q but want %q", got, test.want)
		}
	}
}

func TestStmtStringLoop(t *testing.T) {
	i := ir.NewVariable(i32, "i")
	loop := ir.NewFor(i, intConst(0), intConst(8), ir.ForSerial, ir.DeviceNone,
		ir.NewStore("out", ir.NewAdd(i, intConst(1)), i, ir.ConstTrue(1)))
	want := "for (i, 0, 8) {\n" +
		"  out[i] = (i + 1)\n" +
		"}\n"
	if diff := cmp.Diff(want, irprint.StmtString(loop)); diff != "" {
		t.Errorf("loop rendering (-want +got):\n%s", diff)
	}

	parallel := ir.NewFor(i, intConst(0), intConst(8), ir.ForParallel, ir.DeviceNone,
		ir.NewEvaluate(i))
	want = "parallel (i, 0, 8) {\n" +
		"  i\n" +
		"}\n"
	if diff := cmp.Diff(want, irprint.StmtString(parallel)); diff != "" {
		t.Errorf("parallel loop rendering (-want +got):\n%s", diff)
	}
}

func TestStmtStringBlockAndLets(t *testing.T) {
	v := ir.NewVariable(i32, "v")
	s := ir.NewBlock(
		ir.NewLetStmt(v, ir.NewMul(x, x), ir.NewEvaluate(v)),
		ir.NewAssertStmt(ir.NewLT(x, intConst(10)), ir.NewStringImm("x too big"), nil),
	)
	want := "let v = (x*x)\n" +
		"v\n" +
		"assert((x < 10), \"x too big\")\n"
	if diff := cmp.Diff(want, irprint.StmtString(s)); diff != "" {
		t.Errorf("block rendering (-want +got):\n%s", diff)
	}
}

func TestStmtStringIfChain(t *testing.T) {
	s := ir.NewIfThenElse(ir.NewLT(x, intConst(0)),
		ir.NewEvaluate(intConst(1)),
		ir.NewIfThenElse(ir.NewEQ(x, intConst(0)),
			ir.NewEvaluate(intConst(2)),
			ir.NewEvaluate(intConst(3))))
	want := "if ((x < 0)) {\n" +
		"  1\n" +
		"} else if ((x == 0)) {\n" +
		"  2\n" +
		"} else {\n" +
		"  3\n" +
		"}\n"
	if diff := cmp.Diff(want, irprint.StmtString(s)); diff != "" {
		t.Errorf("if chain rendering (-want +got):\n%s", diff)
	}
}

func TestStmtStringAllocateRealize(t *testing.T) {
	fn := ir.NewFuncRef("f", 1)
	inner := ir.NewBlock(
		ir.NewProducerConsumer(fn, true, ir.NewProvide(fn, 0, intConst(0), []ir.Expr{x})),
		ir.NewFree("buf"),
	)
	s := ir.NewAllocate("buf", i32, []ir.Expr{intConst(16), intConst(16)}, ir.ConstTrue(1), inner, nil, "")
	want := "allocate buf[int32 * 16 * 16]\n" +
		"produce f {\n" +
		"  f(x) = 0\n" +
		"}\n" +
		"free buf\n"
	if diff := cmp.Diff(want, irprint.StmtString(s)); diff != "" {
		t.Errorf("allocate rendering (-want +got):\n%s", diff)
	}

	realize := ir.NewRealize(fn, 0, i32, ir.Region{ir.NewRange(intConst(0), intConst(16))},
		ir.ConstTrue(1), ir.NewEvaluate(intConst(0)))
	want = "realize f([0, 16]) {\n" +
		"  0\n" +
		"}\n"
	if diff := cmp.Diff(want, irprint.StmtString(realize)); diff != "" {
		t.Errorf("realize rendering (-want +got):\n%s", diff)
	}
}
