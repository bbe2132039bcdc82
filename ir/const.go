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

// IsConst reports whether an expression is a compile-time constant:
// a literal, a broadcast of a constant, or a ramp with constant base
// and stride.
func IsConst(e Expr) bool {
	switch op := e.(type) {
	case *IntImm, *UIntImm, *FloatImm, *StringImm:
		return true
	case *Broadcast:
		return IsConst(op.Value)
	case *Ramp:
		return IsConst(op.Base) && IsConst(op.Stride)
	}
	return false
}

// ConstInt returns the value of a signed integer constant.
func ConstInt(e Expr) (int64, bool) {
	imm, ok := As[*IntImm](e)
	if !ok {
		return 0, false
	}
	return imm.Value, true
}

// ConstBool returns a boolean constant with the given number of
// lanes.
func ConstBool(value bool, lanes int) Expr {
	v := uint64(0)
	if value {
		v = 1
	}
	scalar := NewUIntImm(BoolType(1), v)
	if lanes == 1 {
		return scalar
	}
	return NewBroadcast(scalar, lanes)
}

// ConstTrue returns the all-true lane predicate, used by Load and
// Store when every lane is accessed.
func ConstTrue(lanes int) Expr { return ConstBool(true, lanes) }
