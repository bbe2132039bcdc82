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

package interp

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/axl-org/axl/ir"
)

// Value is the result of evaluating a scalar expression. The type
// selects which payload field is meaningful.
type Value struct {
	typ ir.Type

	i int64
	u uint64
	f float64
	s string
}

// Type returns the type of the value.
func (v Value) Type() ir.Type { return v.typ }

// Int returns the payload of a signed integer value.
func (v Value) Int() int64 { return v.i }

// UInt returns the payload of an unsigned integer value.
func (v Value) UInt() uint64 { return v.u }

// Float returns the payload of a floating point value.
func (v Value) Float() float64 { return v.f }

// Text returns the payload of a string value.
func (v Value) Text() string { return v.s }

// Bool returns the payload of a boolean value.
func (v Value) Bool() bool { return v.typ.IsBool() && v.u != 0 }

func (v Value) String() string {
	switch {
	case v.typ.IsBool():
		return fmt.Sprintf("%v", v.u != 0)
	case v.typ.IsInt():
		return fmt.Sprintf("%d", v.i)
	case v.typ.IsUInt():
		return fmt.Sprintf("%d", v.u)
	case v.typ.IsFloat():
		return fmt.Sprintf("%g", v.f)
	}
	return fmt.Sprintf("%q", v.s)
}

// IntValue returns a signed integer value, sign extended from the
// width of the type.
func IntValue(t ir.Type, value int64) Value {
	if t.Bits < 64 {
		value <<= 64 - t.Bits
		value >>= 64 - t.Bits
	}
	return Value{typ: t, i: value}
}

// UIntValue returns an unsigned integer value, masked to the width of
// the type.
func UIntValue(t ir.Type, value uint64) Value {
	if t.Bits < 64 {
		value &= (uint64(1) << t.Bits) - 1
	}
	return Value{typ: t, u: value}
}

// FloatValue returns a floating point value. Values of 32-bit type are
// rounded to 32-bit precision.
func FloatValue(t ir.Type, value float64) Value {
	if t.Bits == 32 {
		value = float64(float32(value))
	}
	return Value{typ: t, f: value}
}

// BoolValue returns a boolean value.
func BoolValue(value bool) Value {
	u := uint64(0)
	if value {
		u = 1
	}
	return Value{typ: ir.BoolType(1), u: u}
}

// TextValue returns a string value.
func TextValue(value string) Value {
	return Value{typ: ir.HandleType(1), s: value}
}

// Env binds variables to values. Bindings are by variable object, so
// two variables sharing a name hint are distinct.
type Env map[*ir.Variable]Value

// Bind returns an environment extended with v bound to value. The
// receiver is not modified.
func (env Env) Bind(v *ir.Variable, value Value) Env {
	extended := make(Env, len(env)+1)
	for key, val := range env {
		extended[key] = val
	}
	extended[v] = value
	return extended
}

// String renders the bindings sorted by name hint.
func (env Env) String() string {
	vars := maps.Keys(env)
	sort.Slice(vars, func(i, j int) bool { return vars[i].NameHint < vars[j].NameHint })
	var sb strings.Builder
	sb.WriteString("{")
	for i, v := range vars {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", v.NameHint, env[v])
	}
	sb.WriteString("}")
	return sb.String()
}
