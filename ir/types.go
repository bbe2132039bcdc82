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

import "fmt"

// TypeCode is the fundamental kind of a value type.
type TypeCode int8

const (
	// TypeInt is a signed integer.
	TypeInt TypeCode = iota
	// TypeUInt is an unsigned integer. One-bit unsigned integers
	// represent booleans.
	TypeUInt
	// TypeFloat is a floating point number.
	TypeFloat
	// TypeHandle is an opaque pointer-like value.
	TypeHandle
)

func (c TypeCode) String() string {
	switch c {
	case TypeInt:
		return "int"
	case TypeUInt:
		return "uint"
	case TypeFloat:
		return "float"
	case TypeHandle:
		return "handle"
	}
	return fmt.Sprintf("typecode(%d)", int8(c))
}

// Type describes the run-time type of a scalar or vector value: its
// fundamental kind, the width in bits of one element, and the number
// of vector lanes. Two types are equal if and only if all three
// fields match, so Type values compare with ==.
type Type struct {
	Code  TypeCode
	Bits  int
	Lanes int
}

func validBits(code TypeCode, bits int) bool {
	switch code {
	case TypeInt:
		return bits == 8 || bits == 16 || bits == 32 || bits == 64
	case TypeUInt:
		return bits == 1 || bits == 8 || bits == 16 || bits == 32 || bits == 64
	case TypeFloat:
		return bits == 16 || bits == 32 || bits == 64
	case TypeHandle:
		return bits == 64
	}
	return false
}

func makeType(code TypeCode, bits, lanes int) Type {
	if !validBits(code, bits) {
		throwInvalid("type", "", "%s cannot be %d bits wide", code, bits)
	}
	if lanes < 1 {
		throwInvalid("type", "", "%s%d cannot have %d lanes", code, bits, lanes)
	}
	return Type{Code: code, Bits: bits, Lanes: lanes}
}

// IntType returns a signed integer type.
func IntType(bits, lanes int) Type { return makeType(TypeInt, bits, lanes) }

// UIntType returns an unsigned integer type.
func UIntType(bits, lanes int) Type { return makeType(TypeUInt, bits, lanes) }

// FloatType returns a floating point type.
func FloatType(bits, lanes int) Type { return makeType(TypeFloat, bits, lanes) }

// HandleType returns an opaque pointer-like type.
func HandleType(lanes int) Type { return makeType(TypeHandle, 64, lanes) }

// BoolType returns the boolean type with the given number of lanes,
// represented as a one-bit unsigned integer.
func BoolType(lanes int) Type { return makeType(TypeUInt, 1, lanes) }

// IsScalar returns true if the type has a single lane.
func (t Type) IsScalar() bool { return t.Lanes == 1 }

// IsVector returns true if the type has more than one lane.
func (t Type) IsVector() bool { return t.Lanes > 1 }

// IsInt returns true for signed integer types.
func (t Type) IsInt() bool { return t.Code == TypeInt }

// IsUInt returns true for unsigned integer types.
func (t Type) IsUInt() bool { return t.Code == TypeUInt }

// IsFloat returns true for floating point types.
func (t Type) IsFloat() bool { return t.Code == TypeFloat }

// IsHandle returns true for opaque pointer-like types.
func (t Type) IsHandle() bool { return t.Code == TypeHandle }

// IsBool returns true for one-bit unsigned integer types.
func (t Type) IsBool() bool { return t.Code == TypeUInt && t.Bits == 1 }

// WithLanes returns the same element type with a different lane count.
func (t Type) WithLanes(lanes int) Type { return makeType(t.Code, t.Bits, lanes) }

// ElemType returns the scalar type of one lane.
func (t Type) ElemType() Type { return t.WithLanes(1) }

func (t Type) String() string {
	if t.IsBool() {
		if t.Lanes == 1 {
			return "bool"
		}
		return fmt.Sprintf("boolx%d", t.Lanes)
	}
	s := fmt.Sprintf("%s%d", t.Code, t.Bits)
	if t.Lanes > 1 {
		s = fmt.Sprintf("%sx%d", s, t.Lanes)
	}
	return s
}
