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

	"github.com/axl-org/axl/errs"
	"github.com/axl-org/axl/ir"
)

func wantInvalid(t *testing.T, name string, f func()) {
	t.Helper()
	err := errs.Catch(f)
	if !errs.IsInternal(err) {
		t.Errorf("%s: got %v but want an internal error", name, err)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  ir.Type
		want string
	}{
		{typ: ir.IntType(32, 1), want: "int32"},
		{typ: ir.IntType(8, 1), want: "int8"},
		{typ: ir.UIntType(16, 1), want: "uint16"},
		{typ: ir.FloatType(64, 1), want: "float64"},
		{typ: ir.FloatType(32, 8), want: "float32x8"},
		{typ: ir.HandleType(1), want: "handle64"},
		{typ: ir.BoolType(1), want: "bool"},
		{typ: ir.BoolType(4), want: "boolx4"},
	}
	for _, test := range tests {
		if got := test.typ.String(); got != test.want {
			t.Errorf("%#v prints as %q but want %q", test.typ, got, test.want)
		}
	}
}

func TestTypePredicates(t *testing.T) {
	i32x4 := ir.IntType(32, 4)
	if i32x4.IsScalar() || !i32x4.IsVector() || !i32x4.IsInt() {
		t.Errorf("int32x4 predicates are wrong")
	}
	b := ir.BoolType(1)
	if !b.IsBool() || !b.IsUInt() || !b.IsScalar() {
		t.Errorf("bool predicates are wrong")
	}
	if ir.UIntType(8, 1).IsBool() {
		t.Errorf("uint8 claims to be bool")
	}
	if got := i32x4.ElemType(); got != ir.IntType(32, 1) {
		t.Errorf("ElemType of int32x4 is %s", got)
	}
	if got := ir.FloatType(32, 1).WithLanes(8); got != ir.FloatType(32, 8) {
		t.Errorf("WithLanes(8) of float32 is %s", got)
	}
}

func TestInvalidTypes(t *testing.T) {
	wantInvalid(t, "int12", func() { ir.IntType(12, 1) })
	wantInvalid(t, "int1", func() { ir.IntType(1, 1) })
	wantInvalid(t, "float8", func() { ir.FloatType(8, 1) })
	wantInvalid(t, "zero lanes", func() { ir.UIntType(8, 0) })
	wantInvalid(t, "negative lanes", func() { ir.FloatType(32, -1) })
}
