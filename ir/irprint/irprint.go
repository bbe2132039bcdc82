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

// Package irprint renders IR as text, for debugging and golden tests.
// Expressions print on one line; statements print as an indented
// block, one statement per line.
package irprint

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/axl-org/axl/ir"
)

// Printer writes IR as text. The zero indent starts at column zero.
type Printer struct {
	w      io.Writer
	indent int
}

// New returns a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes one node. Expressions are written inline; statements
// end with a newline.
func (p *Printer) Print(n ir.Node) {
	if !ir.Defined(n) {
		fmt.Fprint(p.w, "(undefined)")
		return
	}
	printTable.Get(n.Kind())(p, n)
}

// ExprString renders an expression on one line.
func ExprString(e ir.Expr) string {
	var sb strings.Builder
	New(&sb).Print(e)
	return sb.String()
}

// StmtString renders a statement tree as an indented block.
func StmtString(s ir.Stmt) string {
	var sb strings.Builder
	New(&sb).Print(s)
	return sb.String()
}

type printFunc func(p *Printer, n ir.Node)

var printTable = ir.NewTable[printFunc]("print")

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) doIndent() {
	fmt.Fprint(p.w, strings.Repeat(" ", p.indent))
}

func (p *Printer) printList(exprs []ir.Expr) {
	for i, e := range exprs {
		if i > 0 {
			p.printf(", ")
		}
		p.Print(e)
	}
}

// isOne reports whether an expression is the constant 1, used to omit
// always-true conditions.
func isOne(e ir.Expr) bool {
	switch imm := e.(type) {
	case *ir.IntImm:
		return imm.Value == 1
	case *ir.UIntImm:
		return imm.Value == 1
	}
	return false
}

func printBinary(symbol string) printFunc {
	return func(p *Printer, n ir.Node) {
		a, b := n.(ir.BinaryExpr).Operands()
		p.printf("(")
		p.Print(a)
		p.printf("%s", symbol)
		p.Print(b)
		p.printf(")")
	}
}

func printCall2(name string) printFunc {
	return func(p *Printer, n ir.Node) {
		a, b := n.(ir.BinaryExpr).Operands()
		p.printf("%s(", name)
		p.Print(a)
		p.printf(", ")
		p.Print(b)
		p.printf(")")
	}
}

func register[T ir.Node](fn printFunc) {
	printTable.Set(ir.KindOf[T](), fn)
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c >= ' ' && c <= '~':
			sb.WriteByte(c)
		default:
			sb.WriteString(fmt.Sprintf(`\x%02X`, c))
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func init() {
	register[*ir.IntImm](func(p *Printer, n ir.Node) {
		op := n.(*ir.IntImm)
		if op.Type() == ir.IntType(32, 1) {
			p.printf("%d", op.Value)
			return
		}
		p.printf("(%s)%d", op.Type(), op.Value)
	})
	register[*ir.UIntImm](func(p *Printer, n ir.Node) {
		op := n.(*ir.UIntImm)
		p.printf("(%s)%d", op.Type(), op.Value)
	})
	register[*ir.FloatImm](func(p *Printer, n ir.Node) {
		op := n.(*ir.FloatImm)
		value := strconv.FormatFloat(op.Value, 'g', -1, 64)
		if op.Type().Bits == 32 {
			p.printf("%sf", value)
			return
		}
		p.printf("%s", value)
	})
	register[*ir.StringImm](func(p *Printer, n ir.Node) {
		p.printf("%s", quote(n.(*ir.StringImm).Value))
	})
	register[*ir.Cast](func(p *Printer, n ir.Node) {
		op := n.(*ir.Cast)
		p.printf("%s(", op.Type())
		p.Print(op.Value)
		p.printf(")")
	})
	register[*ir.Variable](func(p *Printer, n ir.Node) {
		p.printf("%s", n.(*ir.Variable).NameHint)
	})
	register[*ir.Add](printBinary(" + "))
	register[*ir.Sub](printBinary(" - "))
	register[*ir.Mul](printBinary("*"))
	register[*ir.Div](printBinary("/"))
	register[*ir.Mod](printBinary(" % "))
	register[*ir.Min](printCall2("min"))
	register[*ir.Max](printCall2("max"))
	register[*ir.EQ](printBinary(" == "))
	register[*ir.NE](printBinary(" != "))
	register[*ir.LT](printBinary(" < "))
	register[*ir.LE](printBinary(" <= "))
	register[*ir.GT](printBinary(" > "))
	register[*ir.GE](printBinary(" >= "))
	register[*ir.And](printBinary(" && "))
	register[*ir.Or](printBinary(" || "))
	register[*ir.Not](func(p *Printer, n ir.Node) {
		p.printf("!")
		p.Print(n.(*ir.Not).A)
	})
	register[*ir.Select](func(p *Printer, n ir.Node) {
		op := n.(*ir.Select)
		p.printf("select(")
		p.printList([]ir.Expr{op.Condition, op.TrueValue, op.FalseValue})
		p.printf(")")
	})
	register[*ir.Load](func(p *Printer, n ir.Node) {
		op := n.(*ir.Load)
		p.printf("%s[", op.BufferName)
		p.Print(op.Index)
		p.printf("]")
		if !isOne(op.Predicate) {
			p.printf(" if ")
			p.Print(op.Predicate)
		}
	})
	register[*ir.Ramp](func(p *Printer, n ir.Node) {
		op := n.(*ir.Ramp)
		p.printf("ramp(")
		p.Print(op.Base)
		p.printf(", ")
		p.Print(op.Stride)
		p.printf(", %d)", op.Lanes)
	})
	register[*ir.Broadcast](func(p *Printer, n ir.Node) {
		op := n.(*ir.Broadcast)
		p.printf("x%d(", op.Lanes)
		p.Print(op.Value)
		p.printf(")")
	})
	register[*ir.Call](func(p *Printer, n ir.Node) {
		op := n.(*ir.Call)
		p.printf("%s(", op.Name)
		p.printList(op.Args)
		p.printf(")")
	})
	register[*ir.Let](func(p *Printer, n ir.Node) {
		op := n.(*ir.Let)
		p.printf("(let %s = ", op.Var.NameHint)
		p.Print(op.Value)
		p.printf(" in ")
		p.Print(op.Body)
		p.printf(")")
	})
	register[*ir.Shuffle](func(p *Printer, n ir.Node) {
		op := n.(*ir.Shuffle)
		p.printf("shuffle(")
		p.printList(op.Vectors)
		p.printf(", [")
		for i, index := range op.Indices {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("%d", index)
		}
		p.printf("])")
	})

	register[*ir.LetStmt](func(p *Printer, n ir.Node) {
		op := n.(*ir.LetStmt)
		p.doIndent()
		p.printf("let %s = ", op.Var.NameHint)
		p.Print(op.Value)
		p.printf("\n")
		p.Print(op.Body)
	})
	register[*ir.AssertStmt](func(p *Printer, n ir.Node) {
		op := n.(*ir.AssertStmt)
		p.doIndent()
		p.printf("assert(")
		p.Print(op.Condition)
		p.printf(", ")
		p.Print(op.Message)
		p.printf(")\n")
		if ir.Defined(op.Body) {
			p.Print(op.Body)
		}
	})
	register[*ir.ProducerConsumer](func(p *Printer, n ir.Node) {
		op := n.(*ir.ProducerConsumer)
		if !op.IsProducer {
			p.Print(op.Body)
			return
		}
		p.doIndent()
		p.printf("produce %s {\n", op.Func.NameHint)
		p.indent += 2
		p.Print(op.Body)
		p.indent -= 2
		p.doIndent()
		p.printf("}\n")
	})
	register[*ir.For](func(p *Printer, n ir.Node) {
		op := n.(*ir.For)
		p.doIndent()
		p.printf("%s%s (%s, ", op.ForKind, op.DeviceAPI, op.LoopVar.NameHint)
		p.Print(op.Min)
		p.printf(", ")
		p.Print(op.Extent)
		p.printf(") {\n")
		p.indent += 2
		p.Print(op.Body)
		p.indent -= 2
		p.doIndent()
		p.printf("}\n")
	})
	register[*ir.Store](func(p *Printer, n ir.Node) {
		op := n.(*ir.Store)
		p.doIndent()
		p.printf("%s[", op.BufferName)
		p.Print(op.Index)
		p.printf("] = ")
		p.Print(op.Value)
		if !isOne(op.Predicate) {
			p.printf(" if ")
			p.Print(op.Predicate)
		}
		p.printf("\n")
	})
	register[*ir.Provide](func(p *Printer, n ir.Node) {
		op := n.(*ir.Provide)
		p.doIndent()
		p.printf("%s", op.Func.NameHint)
		if op.Func.Outputs > 1 {
			p.printf(".%d", op.ValueIndex)
		}
		p.printf("(")
		p.printList(op.Args)
		p.printf(") = ")
		p.Print(op.Value)
		p.printf("\n")
	})
	register[*ir.Allocate](func(p *Printer, n ir.Node) {
		op := n.(*ir.Allocate)
		p.doIndent()
		p.printf("allocate %s[%s", op.BufferName, op.Type)
		for _, extent := range op.Extents {
			p.printf(" * ")
			p.Print(extent)
		}
		p.printf("]")
		if !isOne(op.Condition) {
			p.printf(" if ")
			p.Print(op.Condition)
		}
		if ir.Defined(op.NewExpr) {
			p.printf(" custom_new { ")
			p.Print(op.NewExpr)
			p.printf(" }")
		}
		if op.FreeFunction != "" {
			p.printf(" custom_delete { %s }", op.FreeFunction)
		}
		p.printf("\n")
		p.Print(op.Body)
	})
	register[*ir.Free](func(p *Printer, n ir.Node) {
		op := n.(*ir.Free)
		p.doIndent()
		p.printf("free %s\n", op.BufferName)
	})
	register[*ir.Realize](func(p *Printer, n ir.Node) {
		op := n.(*ir.Realize)
		p.doIndent()
		p.printf("realize %s(", op.Func.NameHint)
		for i, bound := range op.Bounds {
			if i > 0 {
				p.printf(", ")
			}
			p.printf("[")
			p.Print(bound.Min)
			p.printf(", ")
			p.Print(bound.Extent)
			p.printf("]")
		}
		p.printf(")")
		if !isOne(op.Condition) {
			p.printf(" if ")
			p.Print(op.Condition)
		}
		p.printf(" {\n")
		p.indent += 2
		p.Print(op.Body)
		p.indent -= 2
		p.doIndent()
		p.printf("}\n")
	})
	register[*ir.Block](func(p *Printer, n ir.Node) {
		op := n.(*ir.Block)
		p.Print(op.First)
		if ir.Defined(op.Rest) {
			p.Print(op.Rest)
		}
	})
	register[*ir.IfThenElse](func(p *Printer, n ir.Node) {
		op := n.(*ir.IfThenElse)
		p.doIndent()
		for {
			p.printf("if (")
			p.Print(op.Condition)
			p.printf(") {\n")
			p.indent += 2
			p.Print(op.ThenCase)
			p.indent -= 2
			if !ir.Defined(op.ElseCase) {
				break
			}
			nested, ok := ir.As[*ir.IfThenElse](op.ElseCase)
			if ok {
				p.doIndent()
				p.printf("} else ")
				op = nested
				continue
			}
			p.doIndent()
			p.printf("} else {\n")
			p.indent += 2
			p.Print(op.ElseCase)
			p.indent -= 2
			break
		}
		p.doIndent()
		p.printf("}\n")
	})
	register[*ir.Evaluate](func(p *Printer, n ir.Node) {
		op := n.(*ir.Evaluate)
		p.doIndent()
		p.Print(op.Value)
		p.printf("\n")
	})
}
