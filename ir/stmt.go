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

import "github.com/axl-org/axl/errs"

// LetStmt binds the value to the variable within the body statement.
type LetStmt struct {
	stmtNode
	Var   *Variable
	Value Expr
	Body  Stmt
}

var letStmtKind = RegisterKind("LetStmt")

func (*LetStmt) Key() string     { return "LetStmt" }
func (*LetStmt) Kind() KindIndex { return letStmtKind }

// NewLetStmt binds value to v within body. The value type must equal
// the declared type of the variable.
func NewLetStmt(v *Variable, value Expr, body Stmt) Stmt {
	if v == nil {
		throwInvalid("LetStmt", "", "variable is undefined")
	}
	checkDefined("LetStmt", "value", value)
	checkDefined("LetStmt", "body", body)
	if value.Type() != v.Type() {
		throwInvalid("LetStmt", v.NameHint, "value type %s does not match variable type %s", value.Type(), v.Type())
	}
	return &LetStmt{stmtNode{}, v, value, body}
}

// AssertStmt checks a condition at run time and aborts with the
// message when it does not hold. The body, if present, only runs when
// the condition holds.
type AssertStmt struct {
	stmtNode
	Condition Expr
	Message   Expr

	// Body is optional.
	Body Stmt
}

var assertStmtKind = RegisterKind("AssertStmt")

func (*AssertStmt) Key() string     { return "AssertStmt" }
func (*AssertStmt) Kind() KindIndex { return assertStmtKind }

// NewAssertStmt returns a runtime assertion guarding an optional body.
func NewAssertStmt(condition, message Expr, body Stmt) Stmt {
	checkDefined("AssertStmt", "condition", condition)
	checkDefined("AssertStmt", "message", message)
	if !condition.Type().IsBool() {
		throwInvalid("AssertStmt", "", "condition must be boolean, got %s", condition.Type())
	}
	return &AssertStmt{stmtNode{}, condition, message, body}
}

// ProducerConsumer marks its body as producing or consuming the
// values of a function. The marker is purely advisory: nothing is
// enforced, it only informs analyses during lowering.
type ProducerConsumer struct {
	stmtNode
	Func       *FuncRef
	IsProducer bool
	Body       Stmt
}

var producerConsumerKind = RegisterKind("ProducerConsumer")

func (*ProducerConsumer) Key() string     { return "ProducerConsumer" }
func (*ProducerConsumer) Kind() KindIndex { return producerConsumerKind }

// NewProducerConsumer marks body as a producer or a consumer of fn.
func NewProducerConsumer(fn *FuncRef, isProducer bool, body Stmt) Stmt {
	if fn == nil {
		throwInvalid("ProducerConsumer", "", "function is undefined")
	}
	checkDefined("ProducerConsumer", "body", body)
	return &ProducerConsumer{stmtNode{}, fn, isProducer, body}
}

// ForKind is the execution strategy of a For loop.
type ForKind int

const (
	// ForSerial runs iterations one after the other.
	ForSerial ForKind = iota
	// ForParallel runs iterations in parallel, in no particular
	// order.
	ForParallel
	// ForVectorized maps each iteration to one SIMD lane and runs
	// the loop in one shot. The extent must be a small constant.
	ForVectorized
	// ForUnrolled compiles each iteration to its own statement.
	// The extent must be a small constant.
	ForUnrolled
)

func (k ForKind) String() string {
	switch k {
	case ForSerial:
		return "for"
	case ForParallel:
		return "parallel"
	case ForVectorized:
		return "vectorized"
	case ForUnrolled:
		return "unrolled"
	}
	return "forkind(?)"
}

// DeviceAPI is the execution domain a loop is targeted at.
type DeviceAPI int

const (
	// DeviceNone runs on the host, as part of the enclosing domain.
	DeviceNone DeviceAPI = iota
	// DeviceHost explicitly targets the host.
	DeviceHost
	// DeviceGPU targets the default GPU of the machine.
	DeviceGPU
)

func (d DeviceAPI) String() string {
	switch d {
	case DeviceNone, DeviceHost:
		return ""
	case DeviceGPU:
		return "<GPU>"
	}
	return "<device(?)>"
}

// For runs the body for every value of the loop variable in
// [min, min+extent).
type For struct {
	stmtNode
	LoopVar     *Variable
	Min, Extent Expr
	ForKind     ForKind
	DeviceAPI   DeviceAPI
	Body        Stmt
}

var forKind = RegisterKind("For")

func (*For) Key() string     { return "For" }
func (*For) Kind() KindIndex { return forKind }

// NewFor returns a loop over [min, min+extent). The loop variable,
// min and extent must all be scalar.
func NewFor(loopVar *Variable, min, extent Expr, kind ForKind, device DeviceAPI, body Stmt) Stmt {
	if loopVar == nil {
		throwInvalid("For", "", "loop variable is undefined")
	}
	checkDefined("For", "min", min)
	checkDefined("For", "extent", extent)
	checkDefined("For", "body", body)
	if !loopVar.Type().IsScalar() {
		throwInvalid("For", loopVar.NameHint, "loop variable must be scalar, got %s", loopVar.Type())
	}
	if !min.Type().IsScalar() {
		throwInvalid("For", loopVar.NameHint, "min must be scalar, got %s", min.Type())
	}
	if !extent.Type().IsScalar() {
		throwInvalid("For", loopVar.NameHint, "extent must be scalar, got %s", extent.Type())
	}
	return &For{stmtNode{}, loopVar, min, extent, kind, device, body}
}

// Store writes a value to a named buffer at an index, under a lane
// predicate. The buffer is written as an array of the value's type.
type Store struct {
	stmtNode
	BufferName string
	Value      Expr
	Index      Expr
	Predicate  Expr
}

var storeKind = RegisterKind("Store")

func (*Store) Key() string     { return "Store" }
func (*Store) Kind() KindIndex { return storeKind }

// NewStore returns a write of value to the named buffer. The index
// and the predicate must have as many lanes as the value; the
// predicate must be boolean.
func NewStore(bufferName string, value, index, predicate Expr) Stmt {
	checkDefined("Store", "value", value)
	checkDefined("Store", "index", index)
	checkDefined("Store", "predicate", predicate)
	if index.Type().Lanes != value.Type().Lanes {
		throwInvalid("Store", bufferName, "index has %d lanes but the value has %d", index.Type().Lanes, value.Type().Lanes)
	}
	if !predicate.Type().IsBool() {
		throwInvalid("Store", bufferName, "predicate must be boolean, got %s", predicate.Type())
	}
	if predicate.Type().Lanes != value.Type().Lanes {
		throwInvalid("Store", bufferName, "predicate has %d lanes but the value has %d", predicate.Type().Lanes, value.Type().Lanes)
	}
	return &Store{stmtNode{}, bufferName, value, index, predicate}
}

// Provide writes one value of a function at a multi-dimensional
// location. It is the multi-dimensional analog of Store and lowers to
// one.
type Provide struct {
	stmtNode
	Func       *FuncRef
	ValueIndex int
	Value      Expr
	Args       []Expr
}

var provideKind = RegisterKind("Provide")

func (*Provide) Key() string     { return "Provide" }
func (*Provide) Kind() KindIndex { return provideKind }

// NewProvide returns a write of value to output valueIndex of fn at
// the location given by args.
func NewProvide(fn *FuncRef, valueIndex int, value Expr, args []Expr) Stmt {
	var violations []error
	if fn == nil {
		throwInvalid("Provide", "", "function is undefined")
	}
	if valueIndex < 0 || valueIndex >= fn.Outputs {
		violations = append(violations, invalidf("value index %d out of range: function %s has %d outputs", valueIndex, fn.NameHint, fn.Outputs))
	}
	if !Defined(value) {
		violations = append(violations, invalidf("value is undefined"))
	}
	for i, arg := range args {
		if !Defined(arg) {
			violations = append(violations, invalidf("location argument %d is undefined", i))
		}
	}
	throwAll("Provide", violations)
	return &Provide{stmtNode{}, fn, valueIndex, value, args}
}

// Allocate gives the body a scratch buffer of the given type and
// extents. The buffer lives at most as long as the body and must be
// freed within it. Allocation only happens when the condition holds.
type Allocate struct {
	stmtNode
	BufferName string
	Type       Type
	Extents    []Expr
	Condition  Expr
	Body       Stmt

	// NewExpr, if defined, overrides the default allocator. When it
	// succeeds, the function named by FreeFunction is guaranteed to
	// be called in place of the default deallocator.
	NewExpr      Expr
	FreeFunction string
}

var allocateKind = RegisterKind("Allocate")

func (*Allocate) Key() string     { return "Allocate" }
func (*Allocate) Kind() KindIndex { return allocateKind }

// NewAllocate returns a scoped allocation backing the named buffer.
// All extents must be defined scalars and the condition boolean.
func NewAllocate(bufferName string, t Type, extents []Expr, condition Expr, body Stmt, newExpr Expr, freeFunction string) Stmt {
	var violations []error
	for i, extent := range extents {
		if !Defined(extent) {
			violations = append(violations, invalidf("extent %d is undefined", i))
			continue
		}
		if !extent.Type().IsScalar() {
			violations = append(violations, invalidf("extent %d must be scalar, got %s", i, extent.Type()))
		}
	}
	if !Defined(condition) {
		violations = append(violations, invalidf("condition is undefined"))
	} else if !condition.Type().IsBool() {
		violations = append(violations, invalidf("condition must be boolean, got %s", condition.Type()))
	}
	if !Defined(body) {
		violations = append(violations, invalidf("body is undefined"))
	}
	throwAll("Allocate", violations)
	constantAllocationSize(extents, bufferName)
	return &Allocate{stmtNode{}, bufferName, t, extents, condition, body, newExpr, freeFunction}
}

// ConstantAllocationSize returns the total number of elements of the
// allocation if all extents are constant, and 0 otherwise.
func (op *Allocate) ConstantAllocationSize() int64 {
	return constantAllocationSize(op.Extents, op.BufferName)
}

// constantAllocationSize raises a user error when a constant total
// size exceeds 2^31-1: such an allocation is a problem with the input
// program, not with the compiler.
func constantAllocationSize(extents []Expr, bufferName string) int64 {
	size := int64(1)
	for _, extent := range extents {
		imm, ok := As[*IntImm](extent)
		if !ok {
			return 0
		}
		size *= imm.Value
		if size > (int64(1)<<31)-1 {
			errs.ThrowUserf("total size for allocation %s is constant but exceeds 2^31-1", bufferName)
		}
	}
	return size
}

// Free releases the buffer of the enclosing Allocate.
type Free struct {
	stmtNode
	BufferName string
}

var freeKind = RegisterKind("Free")

func (*Free) Key() string     { return "Free" }
func (*Free) Kind() KindIndex { return freeKind }

// NewFree releases the named buffer.
func NewFree(bufferName string) Stmt {
	return &Free{stmtNode{}, bufferName}
}

// Realize declares the region of a function that must be live over
// the body: scratch memory backing Provide statements and function
// calls before they lower to Store and Load. Allocation only happens
// when the condition holds.
type Realize struct {
	stmtNode
	Func       *FuncRef
	ValueIndex int
	Type       Type
	Bounds     Region
	Condition  Expr
	Body       Stmt
}

var realizeKind = RegisterKind("Realize")

func (*Realize) Key() string     { return "Realize" }
func (*Realize) Kind() KindIndex { return realizeKind }

// NewRealize declares the live (min, extent) region of output
// valueIndex of fn over body.
func NewRealize(fn *FuncRef, valueIndex int, t Type, bounds Region, condition Expr, body Stmt) Stmt {
	var violations []error
	if fn == nil {
		throwInvalid("Realize", "", "function is undefined")
	}
	if valueIndex < 0 || valueIndex >= fn.Outputs {
		violations = append(violations, invalidf("value index %d out of range: function %s has %d outputs", valueIndex, fn.NameHint, fn.Outputs))
	}
	for i, bound := range bounds {
		if !Defined(bound.Min) || !Defined(bound.Extent) {
			violations = append(violations, invalidf("bound %d is undefined", i))
			continue
		}
		if !bound.Min.Type().IsScalar() || !bound.Extent.Type().IsScalar() {
			violations = append(violations, invalidf("bound %d must be scalar", i))
		}
	}
	if !Defined(condition) {
		violations = append(violations, invalidf("condition is undefined"))
	} else if !condition.Type().IsBool() {
		violations = append(violations, invalidf("condition must be boolean, got %s", condition.Type()))
	}
	if !Defined(body) {
		violations = append(violations, invalidf("body is undefined"))
	}
	throwAll("Realize", violations)
	return &Realize{stmtNode{}, fn, valueIndex, t, bounds, condition, body}
}

// Block runs first, then rest. Rest is optional. Blocks are
// canonicalized so that nesting is right-associated: the first
// statement of a Block is never itself a Block.
type Block struct {
	stmtNode
	First Stmt

	// Rest is optional.
	Rest Stmt
}

var blockKind = RegisterKind("Block")

func (*Block) Key() string     { return "Block" }
func (*Block) Kind() KindIndex { return blockKind }

// NewBlock runs first, then rest. Rest may be undefined.
func NewBlock(first, rest Stmt) Stmt {
	checkDefined("Block", "first", first)
	if block, ok := As[*Block](first); ok {
		inner := block.First
		if Defined(block.Rest) {
			return &Block{stmtNode{}, inner, NewBlock(block.Rest, rest)}
		}
		return &Block{stmtNode{}, inner, rest}
	}
	return &Block{stmtNode{}, first, rest}
}

// BlockOf runs the statements in order. An empty slice yields the
// undefined statement, which passes treat as a no-op.
func BlockOf(stmts []Stmt) Stmt {
	if len(stmts) == 0 {
		return nil
	}
	result := stmts[len(stmts)-1]
	for i := len(stmts) - 2; i >= 0; i-- {
		result = NewBlock(stmts[i], result)
	}
	return result
}

// IfThenElse runs the then case when the condition holds and the else
// case, if present, otherwise.
type IfThenElse struct {
	stmtNode
	Condition Expr
	ThenCase  Stmt

	// ElseCase is optional.
	ElseCase Stmt
}

var ifThenElseKind = RegisterKind("IfThenElse")

func (*IfThenElse) Key() string     { return "IfThenElse" }
func (*IfThenElse) Kind() KindIndex { return ifThenElseKind }

// NewIfThenElse returns a conditional statement. The else case may be
// undefined.
func NewIfThenElse(condition Expr, thenCase, elseCase Stmt) Stmt {
	checkDefined("IfThenElse", "condition", condition)
	checkDefined("IfThenElse", "then case", thenCase)
	if !condition.Type().IsBool() {
		throwInvalid("IfThenElse", "", "condition must be boolean, got %s", condition.Type())
	}
	return &IfThenElse{stmtNode{}, condition, thenCase, elseCase}
}

// Evaluate computes an expression and discards the result, keeping it
// only for its side effects.
type Evaluate struct {
	stmtNode
	Value Expr
}

var evaluateKind = RegisterKind("Evaluate")

func (*Evaluate) Key() string     { return "Evaluate" }
func (*Evaluate) Kind() KindIndex { return evaluateKind }

// NewEvaluate computes value for its side effects.
func NewEvaluate(value Expr) Stmt {
	checkDefined("Evaluate", "value", value)
	return &Evaluate{stmtNode{}, value}
}
