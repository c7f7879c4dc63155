/*
 * Copyright 2025 The TimeRoll Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rolling

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/timeroll/timeroll/frame"
	"github.com/timeroll/timeroll/functions"
	"github.com/timeroll/timeroll/utils/cast"
)

// Expr declares a rolling function written in the expression language. The
// window's values are bound to the variable "values"; the helpers mean, sum,
// min, max, std, median, count, first and last are available.
//
//	rolling.Expr("spread", "max(values) - min(values)")
//
// The expression compiles once at normalization; a compile failure is a
// specification error.
func Expr(label, expression string) FuncSpec {
	return exprSpec{label: label, src: expression}
}

type exprSpec struct {
	label string
	src   string
}

func (s exprSpec) resolve() (resolved, error) {
	if s.label == "" {
		return resolved{}, fmt.Errorf("%w: expression rolling function needs a label", functions.ErrSpec)
	}
	if s.src == "" {
		return resolved{}, fmt.Errorf("%w: expression rolling function %q is empty", functions.ErrSpec, s.label)
	}
	prog, err := compileWindowExpr(s.src)
	if err != nil {
		return resolved{}, fmt.Errorf("%w: compile %q: %v", functions.ErrSpec, s.label, err)
	}
	return resolved{
		label:   s.label,
		reducer: &exprReducer{label: s.label, prog: prog},
	}, nil
}

const kindExpr = functions.Kind("expr")

// exprReducer evaluates a compiled expression against each window.
type exprReducer struct {
	label string
	prog  *vm.Program
}

var _ functions.Reducer = (*exprReducer)(nil)

func (r *exprReducer) Name() string {
	return r.label
}

func (r *exprReducer) Kind() functions.Kind {
	return kindExpr
}

func (r *exprReducer) Reduce(values []float64) (float64, error) {
	out, err := expr.Run(r.prog, map[string]interface{}{"values": values})
	if err != nil {
		return 0, fmt.Errorf("expression %q: %w", r.label, err)
	}
	f, err := cast.ToFloat64E(out)
	if err != nil {
		return 0, fmt.Errorf("expression %q returned %T, want a number", r.label, out)
	}
	return f, nil
}

// compileWindowExpr compiles an expression with the window helpers bound.
// Undefined variables stay allowed so apply expressions can reference any
// column of the window. Colliding expression-language builtins are disabled
// so the helpers keep the registry's NaN-skipping semantics.
func compileWindowExpr(src string) (*vm.Program, error) {
	opts := []expr.Option{expr.AllowUndefinedVariables()}
	for name := range windowHelpers {
		helper := windowHelpers[name]
		opts = append(opts,
			expr.DisableBuiltin(name),
			expr.Function(name, func(params ...interface{}) (interface{}, error) {
				if len(params) != 1 {
					return nil, fmt.Errorf("%s takes one series argument", helper.Name())
				}
				xs, ok := params[0].([]float64)
				if !ok {
					return nil, fmt.Errorf("%s takes a series, got %T", helper.Name(), params[0])
				}
				return helper.Reduce(xs)
			}))
	}
	return expr.Compile(src, opts...)
}

// windowHelpers exposes the registry reductions as expression functions.
var windowHelpers = map[string]functions.Reducer{
	"mean":   mustReducer(functions.Mean),
	"sum":    mustReducer(functions.Sum),
	"min":    mustReducer(functions.Min),
	"max":    mustReducer(functions.Max),
	"std":    mustReducer(functions.Std),
	"median": mustReducer(functions.Median),
	"count":  mustReducer(functions.Count),
	"first":  mustReducer(functions.First),
	"last":   mustReducer(functions.Last),
}

func mustReducer(kind functions.Kind) functions.Reducer {
	r, err := functions.New(kind)
	if err != nil {
		panic(err)
	}
	return r
}

// ApplyExpr declares a whole-window expression for the apply engine. Every
// column of the window is bound as a float series under its own name, with
// the row count under "n".
//
//	rolling.ApplyExpr("spread_ratio", "(max(price) - min(price)) / mean(volume)")
func ApplyExpr(label, expression string) ApplySpec {
	return applyExprSpec{label: label, src: expression}
}

type applyExprSpec struct {
	label string
	src   string
}

func (s applyExprSpec) resolveApply() (applyResolved, error) {
	if s.label == "" {
		return applyResolved{}, fmt.Errorf("%w: apply expression needs a label", functions.ErrSpec)
	}
	if s.src == "" {
		return applyResolved{}, fmt.Errorf("%w: apply expression %q is empty", functions.ErrSpec, s.label)
	}
	prog, err := compileWindowExpr(s.src)
	if err != nil {
		return applyResolved{}, fmt.Errorf("%w: compile %q: %v", functions.ErrSpec, s.label, err)
	}
	fn := func(win *frame.Frame) (interface{}, error) {
		env := map[string]interface{}{"n": win.Len()}
		for _, c := range win.Columns() {
			env[c] = win.Floats(c)
		}
		return expr.Run(prog, env)
	}
	return applyResolved{label: s.label, fn: fn}, nil
}
