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

// IntImm is a signed integer constant.
type IntImm struct {
	exprNode
	Value int64
}

var intImmKind = RegisterKind("IntImm")

func (*IntImm) Key() string     { return "IntImm" }
func (*IntImm) Kind() KindIndex { return intImmKind }

// NewIntImm returns a signed integer constant of a scalar Int type.
// The value is normalized to the width of the type by sign extension.
func NewIntImm(t Type, value int64) Expr {
	if !t.IsInt() || !t.IsScalar() {
		throwInvalid("IntImm", "", "type must be a scalar Int, got %s", t)
	}
	value <<= 64 - t.Bits
	value >>= 64 - t.Bits
	return &IntImm{exprNode{t}, value}
}

// UIntImm is an unsigned integer constant.
type UIntImm struct {
	exprNode
	Value uint64
}

var uintImmKind = RegisterKind("UIntImm")

func (*UIntImm) Key() string     { return "UIntImm" }
func (*UIntImm) Kind() KindIndex { return uintImmKind }

// NewUIntImm returns an unsigned integer constant of a scalar UInt
// type. The value is masked to the width of the type.
func NewUIntImm(t Type, value uint64) Expr {
	if !t.IsUInt() || !t.IsScalar() {
		throwInvalid("UIntImm", "", "type must be a scalar UInt, got %s", t)
	}
	value <<= 64 - t.Bits
	value >>= 64 - t.Bits
	return &UIntImm{exprNode{t}, value}
}

// FloatImm is a floating point constant.
type FloatImm struct {
	exprNode
	Value float64
}

var floatImmKind = RegisterKind("FloatImm")

func (*FloatImm) Key() string     { return "FloatImm" }
func (*FloatImm) Kind() KindIndex { return floatImmKind }

// NewFloatImm returns a floating point constant of a scalar Float
// type. A 32-bit constant is rounded to 32-bit precision.
func NewFloatImm(t Type, value float64) Expr {
	if !t.IsFloat() || !t.IsScalar() {
		throwInvalid("FloatImm", "", "type must be a scalar Float, got %s", t)
	}
	if t.Bits == 32 {
		value = float64(float32(value))
	}
	return &FloatImm{exprNode{t}, value}
}

// StringImm is a string constant, typed as an opaque handle.
type StringImm struct {
	exprNode
	Value string
}

var stringImmKind = RegisterKind("StringImm")

func (*StringImm) Key() string     { return "StringImm" }
func (*StringImm) Kind() KindIndex { return stringImmKind }

// NewStringImm returns a string constant.
func NewStringImm(value string) Expr {
	return &StringImm{exprNode{HandleType(1)}, value}
}

// Cast reads a value as another type. A cast may not change the
// number of lanes.
type Cast struct {
	exprNode
	Value Expr
}

var castKind = RegisterKind("Cast")

func (*Cast) Key() string     { return "Cast" }
func (*Cast) Kind() KindIndex { return castKind }

// NewCast returns the value cast to type t.
func NewCast(t Type, value Expr) Expr {
	checkDefined("Cast", "value", value)
	if t.Lanes != value.Type().Lanes {
		throwInvalid("Cast", "", "cannot cast %s to %s: lane counts differ", value.Type(), t)
	}
	return &Cast{exprNode{t}, value}
}

// Variable is a named value bound elsewhere: a loop variable, a
// function argument, or the variable of a Let or LetStmt.
//
// A Variable is the unit of identity for a name: two variables denote
// the same binding if and only if they are the same object. NameHint
// is cosmetic and passes must never compare it.
type Variable struct {
	exprNode
	NameHint string
}

var variableKind = RegisterKind("Variable")

func (*Variable) Key() string     { return "Variable" }
func (*Variable) Kind() KindIndex { return variableKind }

// NewVariable returns a fresh variable. It returns the concrete node
// so that binding sites (Let, LetStmt, For) can hold the identity.
func NewVariable(t Type, nameHint string) *Variable {
	return &Variable{exprNode{t}, nameHint}
}

// binaryOp carries the two operands shared by all binary arithmetic,
// comparison and logical kinds.
type binaryOp struct {
	exprNode
	A, B Expr
}

// Operands returns the two operands. All binary kinds expose it, so
// operations uniform over them can dispatch on BinaryExpr instead of
// switching per kind.
func (op *binaryOp) Operands() (Expr, Expr) { return op.A, op.B }

// BinaryExpr is implemented by every two-operand expression kind.
type BinaryExpr interface {
	Expr
	Operands() (Expr, Expr)
}

func checkBinaryOp(kind string, a, b Expr) {
	checkDefined(kind, "a", a)
	checkDefined(kind, "b", b)
	if a.Type() != b.Type() {
		throwInvalid(kind, "", "operand types %s and %s differ", a.Type(), b.Type())
	}
}

func checkLogicalOp(kind string, a, b Expr) {
	checkBinaryOp(kind, a, b)
	if !a.Type().IsBool() {
		throwInvalid(kind, "", "operands must be boolean, got %s", a.Type())
	}
}

// Add is the sum of two expressions.
type Add struct{ binaryOp }

var addKind = RegisterKind("Add")

func (*Add) Key() string     { return "Add" }
func (*Add) Kind() KindIndex { return addKind }

// NewAdd returns the sum of a and b.
func NewAdd(a, b Expr) Expr {
	checkBinaryOp("Add", a, b)
	return &Add{binaryOp{exprNode{a.Type()}, a, b}}
}

// Sub is the difference of two expressions.
type Sub struct{ binaryOp }

var subKind = RegisterKind("Sub")

func (*Sub) Key() string     { return "Sub" }
func (*Sub) Kind() KindIndex { return subKind }

// NewSub returns the difference of a and b.
func NewSub(a, b Expr) Expr {
	checkBinaryOp("Sub", a, b)
	return &Sub{binaryOp{exprNode{a.Type()}, a, b}}
}

// Mul is the product of two expressions.
type Mul struct{ binaryOp }

var mulKind = RegisterKind("Mul")

func (*Mul) Key() string     { return "Mul" }
func (*Mul) Kind() KindIndex { return mulKind }

// NewMul returns the product of a and b.
func NewMul(a, b Expr) Expr {
	checkBinaryOp("Mul", a, b)
	return &Mul{binaryOp{exprNode{a.Type()}, a, b}}
}

// Div is the ratio of two expressions.
type Div struct{ binaryOp }

var divKind = RegisterKind("Div")

func (*Div) Key() string     { return "Div" }
func (*Div) Kind() KindIndex { return divKind }

// NewDiv returns the ratio of a and b.
func NewDiv(a, b Expr) Expr {
	checkBinaryOp("Div", a, b)
	return &Div{binaryOp{exprNode{a.Type()}, a, b}}
}

// Mod is the remainder of a divided by b.
type Mod struct{ binaryOp }

var modKind = RegisterKind("Mod")

func (*Mod) Key() string     { return "Mod" }
func (*Mod) Kind() KindIndex { return modKind }

// NewMod returns the remainder of a divided by b.
func NewMod(a, b Expr) Expr {
	checkBinaryOp("Mod", a, b)
	return &Mod{binaryOp{exprNode{a.Type()}, a, b}}
}

// Min is the lesser of two values.
type Min struct{ binaryOp }

var minKind = RegisterKind("Min")

func (*Min) Key() string     { return "Min" }
func (*Min) Kind() KindIndex { return minKind }

// NewMin returns the lesser of a and b.
func NewMin(a, b Expr) Expr {
	checkBinaryOp("Min", a, b)
	return &Min{binaryOp{exprNode{a.Type()}, a, b}}
}

// Max is the greater of two values.
type Max struct{ binaryOp }

var maxKind = RegisterKind("Max")

func (*Max) Key() string     { return "Max" }
func (*Max) Kind() KindIndex { return maxKind }

// NewMax returns the greater of a and b.
func NewMax(a, b Expr) Expr {
	checkBinaryOp("Max", a, b)
	return &Max{binaryOp{exprNode{a.Type()}, a, b}}
}

func cmpNode(kind string, a, b Expr) binaryOp {
	checkBinaryOp(kind, a, b)
	return binaryOp{exprNode{BoolType(a.Type().Lanes)}, a, b}
}

// EQ tests whether two values are equal.
type EQ struct{ binaryOp }

var eqKind = RegisterKind("EQ")

func (*EQ) Key() string     { return "EQ" }
func (*EQ) Kind() KindIndex { return eqKind }

// NewEQ returns a == b.
func NewEQ(a, b Expr) Expr { return &EQ{cmpNode("EQ", a, b)} }

// NE tests whether two values differ.
type NE struct{ binaryOp }

var neKind = RegisterKind("NE")

func (*NE) Key() string     { return "NE" }
func (*NE) Kind() KindIndex { return neKind }

// NewNE returns a != b.
func NewNE(a, b Expr) Expr { return &NE{cmpNode("NE", a, b)} }

// LT tests whether the first value is less than the second.
type LT struct{ binaryOp }

var ltKind = RegisterKind("LT")

func (*LT) Key() string     { return "LT" }
func (*LT) Kind() KindIndex { return ltKind }

// NewLT returns a < b.
func NewLT(a, b Expr) Expr { return &LT{cmpNode("LT", a, b)} }

// LE tests whether the first value is less than or equal to the second.
type LE struct{ binaryOp }

var leKind = RegisterKind("LE")

func (*LE) Key() string     { return "LE" }
func (*LE) Kind() KindIndex { return leKind }

// NewLE returns a <= b.
func NewLE(a, b Expr) Expr { return &LE{cmpNode("LE", a, b)} }

// GT tests whether the first value is greater than the second.
type GT struct{ binaryOp }

var gtKind = RegisterKind("GT")

func (*GT) Key() string     { return "GT" }
func (*GT) Kind() KindIndex { return gtKind }

// NewGT returns a > b.
func NewGT(a, b Expr) Expr { return &GT{cmpNode("GT", a, b)} }

// GE tests whether the first value is greater than or equal to the second.
type GE struct{ binaryOp }

var geKind = RegisterKind("GE")

func (*GE) Key() string     { return "GE" }
func (*GE) Kind() KindIndex { return geKind }

// NewGE returns a >= b.
func NewGE(a, b Expr) Expr { return &GE{cmpNode("GE", a, b)} }

// And is true when both operands are true.
type And struct{ binaryOp }

var andKind = RegisterKind("And")

func (*And) Key() string     { return "And" }
func (*And) Kind() KindIndex { return andKind }

// NewAnd returns a && b.
func NewAnd(a, b Expr) Expr {
	checkLogicalOp("And", a, b)
	return &And{binaryOp{exprNode{a.Type()}, a, b}}
}

// Or is true when at least one operand is true.
type Or struct{ binaryOp }

var orKind = RegisterKind("Or")

func (*Or) Key() string     { return "Or" }
func (*Or) Kind() KindIndex { return orKind }

// NewOr returns a || b.
func NewOr(a, b Expr) Expr {
	checkLogicalOp("Or", a, b)
	return &Or{binaryOp{exprNode{a.Type()}, a, b}}
}

// Not is true when its operand is false.
type Not struct {
	exprNode
	A Expr
}

var notKind = RegisterKind("Not")

func (*Not) Key() string     { return "Not" }
func (*Not) Kind() KindIndex { return notKind }

// NewNot returns !a.
func NewNot(a Expr) Expr {
	checkDefined("Not", "a", a)
	if !a.Type().IsBool() {
		throwInvalid("Not", "", "operand must be boolean, got %s", a.Type())
	}
	return &Not{exprNode{a.Type()}, a}
}

// Select evaluates to the true value where the condition holds and to
// the false value elsewhere.
type Select struct {
	exprNode
	Condition, TrueValue, FalseValue Expr
}

var selectKind = RegisterKind("Select")

func (*Select) Key() string     { return "Select" }
func (*Select) Kind() KindIndex { return selectKind }

// NewSelect returns cond ? trueValue : falseValue. The condition must
// be boolean and either scalar or of the same lane count as the two
// branches, which must have equal types.
func NewSelect(cond, trueValue, falseValue Expr) Expr {
	checkDefined("Select", "condition", cond)
	checkDefined("Select", "true value", trueValue)
	checkDefined("Select", "false value", falseValue)
	if !cond.Type().IsBool() {
		throwInvalid("Select", "", "condition must be boolean, got %s", cond.Type())
	}
	if trueValue.Type() != falseValue.Type() {
		throwInvalid("Select", "", "branch types %s and %s differ", trueValue.Type(), falseValue.Type())
	}
	if !cond.Type().IsScalar() && cond.Type().Lanes != trueValue.Type().Lanes {
		throwInvalid("Select", "", "condition lanes must be 1 or %d, got %d",
			trueValue.Type().Lanes, cond.Type().Lanes)
	}
	return &Select{exprNode{trueValue.Type()}, cond, trueValue, falseValue}
}

// Load reads a value from a named buffer at an index, under a lane
// predicate. The buffer has no inherent type: it is read as an array
// of the Load's type.
type Load struct {
	exprNode
	BufferName string
	Index      Expr
	Predicate  Expr
}

var loadKind = RegisterKind("Load")

func (*Load) Key() string     { return "Load" }
func (*Load) Kind() KindIndex { return loadKind }

// NewLoad returns a read of type t from the named buffer. The index
// and the predicate must have as many lanes as t; the predicate must
// be boolean.
func NewLoad(t Type, bufferName string, index, predicate Expr) Expr {
	checkDefined("Load", "index", index)
	checkDefined("Load", "predicate", predicate)
	if index.Type().Lanes != t.Lanes {
		throwInvalid("Load", bufferName, "index has %d lanes but the load has %d", index.Type().Lanes, t.Lanes)
	}
	if !predicate.Type().IsBool() {
		throwInvalid("Load", bufferName, "predicate must be boolean, got %s", predicate.Type())
	}
	if predicate.Type().Lanes != t.Lanes {
		throwInvalid("Load", bufferName, "predicate has %d lanes but the load has %d", predicate.Type().Lanes, t.Lanes)
	}
	return &Load{exprNode{t}, bufferName, index, predicate}
}

// Ramp is the linear vector base + i*stride for i in 0..lanes-1.
type Ramp struct {
	exprNode
	Base, Stride Expr
	Lanes        int
}

var rampKind = RegisterKind("Ramp")

func (*Ramp) Key() string     { return "Ramp" }
func (*Ramp) Kind() KindIndex { return rampKind }

// NewRamp returns a linear vector. Base and stride must be scalars of
// the same type and lanes must be greater than one.
func NewRamp(base, stride Expr, lanes int) Expr {
	checkDefined("Ramp", "base", base)
	checkDefined("Ramp", "stride", stride)
	if !base.Type().IsScalar() || !stride.Type().IsScalar() {
		throwInvalid("Ramp", "", "base and stride must be scalar, got %s and %s", base.Type(), stride.Type())
	}
	if base.Type() != stride.Type() {
		throwInvalid("Ramp", "", "base type %s and stride type %s differ", base.Type(), stride.Type())
	}
	if lanes <= 1 {
		throwInvalid("Ramp", "", "lanes must be greater than 1, got %d", lanes)
	}
	return &Ramp{exprNode{base.Type().WithLanes(lanes)}, base, stride, lanes}
}

// Broadcast replicates a scalar across all lanes of a vector.
type Broadcast struct {
	exprNode
	Value Expr
	Lanes int
}

var broadcastKind = RegisterKind("Broadcast")

func (*Broadcast) Key() string     { return "Broadcast" }
func (*Broadcast) Kind() KindIndex { return broadcastKind }

// NewBroadcast returns the scalar value replicated across lanes.
func NewBroadcast(value Expr, lanes int) Expr {
	checkDefined("Broadcast", "value", value)
	if !value.Type().IsScalar() {
		throwInvalid("Broadcast", "", "value must be scalar, got %s", value.Type())
	}
	if lanes == 1 {
		throwInvalid("Broadcast", "", "lanes must not be 1")
	}
	return &Broadcast{exprNode{value.Type().WithLanes(lanes)}, value, lanes}
}

// CallType classifies what a Call invokes and whether it is pure.
type CallType int

const (
	// CallExtern is a call to an external function, possibly with
	// side effects.
	CallExtern CallType = iota
	// CallPureExtern is a call to an external function guaranteed
	// to be free of side effects.
	CallPureExtern
	// CallFunc is a call to a user function defined in the IR.
	CallFunc
	// CallIntrinsic is a compiler intrinsic with special handling
	// during lowering, possibly with side effects.
	CallIntrinsic
	// CallPureIntrinsic is a side-effect-free compiler intrinsic.
	CallPureIntrinsic
)

func (c CallType) String() string {
	switch c {
	case CallExtern:
		return "extern"
	case CallPureExtern:
		return "pure extern"
	case CallFunc:
		return "func"
	case CallIntrinsic:
		return "intrinsic"
	case CallPureIntrinsic:
		return "pure intrinsic"
	}
	return "calltype(?)"
}

// Names of intrinsics with dedicated handling in lowering. Intrinsic
// calls are matched by name.
const (
	IntrinsicAbs         = "abs"
	IntrinsicIfThenElse  = "if_then_else"
	IntrinsicLikely      = "likely"
	IntrinsicReinterpret = "reinterpret"
)

// Call invokes an extern function, an intrinsic or a user function.
type Call struct {
	exprNode
	Name     string
	Args     []Expr
	CallType CallType

	// Func is the function invoked when CallType is CallFunc. Two
	// calls invoke the same function only when Func is the same
	// object.
	Func *FuncRef

	// ValueIndex selects which output of Func this call reads.
	ValueIndex int
}

var callKind = RegisterKind("Call")

func (*Call) Key() string     { return "Call" }
func (*Call) Kind() KindIndex { return callKind }

// IsPure reports whether the same arguments always give the same
// result, so that calls can be reordered, duplicated or unified. Not
// transitive: the arguments themselves may be impure.
func (op *Call) IsPure() bool {
	return op.CallType == CallPureExtern || op.CallType == CallPureIntrinsic
}

// IsIntrinsic reports whether the call invokes the named intrinsic.
func (op *Call) IsIntrinsic(name string) bool {
	return (op.CallType == CallIntrinsic || op.CallType == CallPureIntrinsic) && op.Name == name
}

// NewCall returns a call of type t. Arguments to a user function must
// all be scalar 32-bit signed integers, since they are indices into
// the function's domain.
func NewCall(t Type, name string, args []Expr, callType CallType, fn *FuncRef, valueIndex int) Expr {
	var violations []error
	for i, arg := range args {
		if !Defined(arg) {
			violations = append(violations, invalidf("argument %d is undefined", i))
			continue
		}
		if callType == CallFunc && arg.Type() != IntType(32, 1) {
			violations = append(violations, invalidf("argument %d to user function %s must be a scalar int32, got %s", i, name, arg.Type()))
		}
	}
	if callType == CallFunc && fn == nil {
		violations = append(violations, invalidf("call to user function %s has no function reference", name))
	}
	if fn != nil && (valueIndex < 0 || valueIndex >= fn.Outputs) {
		violations = append(violations, invalidf("value index %d out of range: function %s has %d outputs", valueIndex, name, fn.Outputs))
	}
	throwAll("Call", violations)
	return &Call{exprNode{t}, name, args, callType, fn, valueIndex}
}

// Let binds the value to the variable within the body expression.
type Let struct {
	exprNode
	Var   *Variable
	Value Expr
	Body  Expr
}

var letKind = RegisterKind("Let")

func (*Let) Key() string     { return "Let" }
func (*Let) Kind() KindIndex { return letKind }

// NewLet binds value to v within body. The value type must equal the
// declared type of the variable.
func NewLet(v *Variable, value, body Expr) Expr {
	if v == nil {
		throwInvalid("Let", "", "variable is undefined")
	}
	checkDefined("Let", "value", value)
	checkDefined("Let", "body", body)
	if value.Type() != v.Type() {
		throwInvalid("Let", v.NameHint, "value type %s does not match variable type %s", value.Type(), v.Type())
	}
	return &Let{exprNode{body.Type()}, v, value, body}
}

// Shuffle permutes the lanes of one or more source vectors by
// compile-time constant indices into their concatenation.
type Shuffle struct {
	exprNode
	Vectors []Expr
	Indices []int
}

var shuffleKind = RegisterKind("Shuffle")

func (*Shuffle) Key() string     { return "Shuffle" }
func (*Shuffle) Kind() KindIndex { return shuffleKind }

// NewShuffle returns a permutation of the source vectors. All sources
// must share an element type and every index must fall within their
// combined lane range. The result has one lane per index.
func NewShuffle(vectors []Expr, indices []int) Expr {
	var violations []error
	if len(vectors) == 0 {
		violations = append(violations, invalidf("no source vectors"))
	}
	if len(indices) == 0 {
		violations = append(violations, invalidf("no indices"))
	}
	totalLanes := 0
	var elem Type
	for i, vec := range vectors {
		if !Defined(vec) {
			violations = append(violations, invalidf("vector %d is undefined", i))
			continue
		}
		if i == 0 {
			elem = vec.Type().ElemType()
		} else if vec.Type().ElemType() != elem {
			violations = append(violations, invalidf("vector %d has element type %s but vector 0 has %s", i, vec.Type().ElemType(), elem))
		}
		totalLanes += vec.Type().Lanes
	}
	for i, index := range indices {
		if index < 0 || index >= totalLanes {
			violations = append(violations, invalidf("index %d is %d, outside the %d combined lanes", i, index, totalLanes))
		}
	}
	throwAll("Shuffle", violations)
	return &Shuffle{exprNode{elem.WithLanes(len(indices))}, vectors, indices}
}
