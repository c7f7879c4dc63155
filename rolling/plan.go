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

	"github.com/timeroll/timeroll/functions"
)

// Unit is one executable cell of the plan: a value column, a window length
// and a resolved reduction. Engines evaluate units in order; output columns
// append in the same order.
type Unit struct {
	// Column is the value column the window slides over.
	Column string
	// Window is the window length in rows.
	Window int
	// MinPeriods is the smallest clipped-window row count that still
	// produces a value. Rows below it come out as NaN.
	MinPeriods int
	// Output is the result column name.
	Output string
	// Reducer evaluates the window.
	Reducer functions.Reducer
	// Pair is the second column of a two-series reduction, empty otherwise.
	Pair string
	// Named marks registry-backed reductions, the only ones the columnar
	// engine accepts.
	Named bool
}

// Plan is a normalized rolling specification: the full cross product of
// value columns, window lengths and functions, plus the diagnostics
// collected while normalizing.
type Plan struct {
	Units  []Unit
	Center bool
	Diags  []Diagnostic
}

// Normalize expands value columns, windows and functions into a validated
// plan. The cross product nests value column, then window, then function,
// which fixes the output column order. minPeriods zero means every unit
// defaults to its own window length.
func Normalize(valueColumns []string, windows WindowSpec, funcs []FuncSpec, minPeriods int, center bool) (*Plan, error) {
	if len(valueColumns) == 0 {
		return nil, fmt.Errorf("%w: at least one value column is required", functions.ErrSpec)
	}
	for _, c := range valueColumns {
		if c == "" {
			return nil, fmt.Errorf("%w: empty value column name", functions.ErrSpec)
		}
	}
	if len(funcs) == 0 {
		return nil, fmt.Errorf("%w: at least one rolling function is required", functions.ErrSpec)
	}
	if minPeriods < 0 {
		return nil, fmt.Errorf("%w: min periods must not be negative, got %d", functions.ErrSpec, minPeriods)
	}
	sizes, err := windows.expand()
	if err != nil {
		return nil, err
	}

	plan := &Plan{Center: center}
	rs := make([]resolved, len(funcs))
	for i, f := range funcs {
		if f == nil {
			return nil, fmt.Errorf("%w: nil rolling function at position %d", functions.ErrSpec, i)
		}
		r, err := f.resolve()
		if err != nil {
			return nil, err
		}
		rs[i] = r
		plan.Diags = append(plan.Diags, r.diags...)
	}

	seen := make(map[string]bool)
	for _, col := range valueColumns {
		for _, w := range sizes {
			for _, r := range rs {
				minp := minPeriods
				if minp == 0 {
					minp = w
				}
				u := Unit{
					Column:     col,
					Window:     w,
					MinPeriods: minp,
					Output:     fmt.Sprintf("%s_rolling_%s_win_%d", col, r.label, w),
					Reducer:    r.reducer,
					Named:      r.named,
				}
				if pr, ok := r.reducer.(functions.PairReducer); ok {
					u.Pair = pr.Other()
				}
				if seen[u.Output] {
					return nil, fmt.Errorf("%w: duplicate output column %q", functions.ErrSpec, u.Output)
				}
				seen[u.Output] = true
				plan.Units = append(plan.Units, u)
			}
		}
	}
	return plan, nil
}

// Outputs returns the output column names in append order.
func (p *Plan) Outputs() []string {
	out := make([]string, len(p.Units))
	for i, u := range p.Units {
		out[i] = u.Output
	}
	return out
}

// PairColumns returns the distinct second columns of two-series reductions,
// in first-appearance order.
func (p *Plan) PairColumns() []string {
	var out []string
	seen := make(map[string]bool)
	for _, u := range p.Units {
		if u.Pair != "" && !seen[u.Pair] {
			seen[u.Pair] = true
			out = append(out, u.Pair)
		}
	}
	return out
}
