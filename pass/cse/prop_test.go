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
package cse_test

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/axl-org/axl/interp"
	"github.com/axl-org/axl/ir"
	"github.com/axl-org/axl/pass/cse"
)

// randomExpr builds an arbitrary expression over the given variables.
// Division and modulo are left out so that every expression evaluates.
func randomExpr(r *rand.Rand, depth int, vars []*ir.Variable) ir.Expr {
	if depth == 0 || r.Intn(4) == 0 {
		if r.Intn(2) == 0 {
			return vars[r.Intn(len(vars))]
		}
		return intConst(int64(r.Intn(201) - 100))
	}
	a := randomExpr(r, depth-1, vars)
	b := randomExpr(r, depth-1, vars)
	switch r.Intn(6) {
	case 0:
		return ir.NewAdd(a, b)
	case 1:
		return ir.NewSub(a, b)
	case 2:
		return ir.NewMul(a, b)
	case 3:
		return ir.NewMin(a, b)
	case 4:
		return ir.NewMax(a, b)
	default:
		return ir.NewSelect(ir.NewLT(a, b), randomExpr(r, depth-1, vars), randomExpr(r, depth-1, vars))
	}
}

func TestEliminateProperties(t *testing.T) {
	x := ir.NewVariable(i32, "x")
	y := ir.NewVariable(i32, "y")
	vars := []*ir.Variable{x, y}

	build := func(seed int64) (ir.Expr, interp.Env) {
		r := rand.New(rand.NewSource(seed))
		// Duplicate a random subexpression under the root so that
		// there is usually something to extract.
		sub := randomExpr(r, 3, vars)
		e := ir.NewAdd(ir.NewMul(sub, randomExpr(r, 2, vars)), ir.NewMul(sub, sub))
		env := interp.Env{}.
			Bind(x, interp.IntValue(i32, int64(r.Intn(2001)-1000))).
			Bind(y, interp.IntValue(i32, int64(r.Intn(2001)-1000)))
		return e, env
	}

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("elimination preserves evaluation", prop.ForAll(
		func(seed int64) bool {
			e, env := build(seed)
			before, err := interp.Eval(e, env)
			if err != nil {
				return false
			}
			after, err := interp.Eval(cse.Eliminate(e), env)
			if err != nil {
				return false
			}
			return before == after
		},
		gen.Int64(),
	))
	properties.Property("elimination is idempotent", prop.ForAll(
		func(seed int64) bool {
			e, _ := build(seed)
			once := cse.Eliminate(e)
			twice := cse.Eliminate(once)
			n := newVarNormalizer()
			return ir.Equal(n.MutateExpr(once), n.MutateExpr(twice))
		},
		gen.Int64(),
	))
	properties.Property("repeated elimination preserves evaluation", prop.ForAll(
		func(seed int64) bool {
			e, env := build(seed)
			got, err := interp.Eval(cse.Eliminate(cse.Eliminate(e)), env)
			if err != nil {
				return false
			}
			want, err := interp.Eval(e, env)
			if err != nil {
				return false
			}
			return got == want
		},
		gen.Int64(),
	))
	properties.TestingRun(t)
}
