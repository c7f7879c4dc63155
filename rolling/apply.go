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
	"math"

	"github.com/timeroll/timeroll/frame"
	"github.com/timeroll/timeroll/functions"
)

// FrameFunc is a caller-supplied reduction over a whole window frame. The
// window view is shared with the engine and must be treated as read-only.
// The result may be a scalar or any value the caller wants in the cell.
type FrameFunc func(window *frame.Frame) (interface{}, error)

// ApplySpec declares one whole-window function for the apply engine.
type ApplySpec interface {
	resolveApply() (applyResolved, error)
}

type applyResolved struct {
	label string
	fn    FrameFunc
}

// Apply declares a labeled whole-window callable. Unlike value-column
// functions it sees every column of the window at once, which covers
// reductions that need more than one column.
func Apply(label string, fn FrameFunc) ApplySpec {
	return applySpec{label: label, fn: fn}
}

type applySpec struct {
	label string
	fn    FrameFunc
}

func (s applySpec) resolveApply() (applyResolved, error) {
	if s.label == "" {
		return applyResolved{}, fmt.Errorf("%w: apply function needs a label", functions.ErrSpec)
	}
	if s.fn == nil {
		return applyResolved{}, fmt.Errorf("%w: apply function %q has no callable", functions.ErrSpec, s.label)
	}
	return applyResolved{label: s.label, fn: s.fn}, nil
}

// ApplyUnit is one executable cell of an apply plan.
type ApplyUnit struct {
	Window     int
	MinPeriods int
	Output     string
	fn         FrameFunc
}

// ApplyPlan is a normalized whole-window specification.
type ApplyPlan struct {
	Units  []ApplyUnit
	Center bool
}

// NormalizeApply expands windows and apply functions into a validated plan.
// Output columns name the function without a value-column prefix, since the
// function sees the whole window.
func NormalizeApply(windows WindowSpec, funcs []ApplySpec, minPeriods int, center bool) (*ApplyPlan, error) {
	if len(funcs) == 0 {
		return nil, fmt.Errorf("%w: at least one apply function is required", functions.ErrSpec)
	}
	if minPeriods < 0 {
		return nil, fmt.Errorf("%w: min periods must not be negative, got %d", functions.ErrSpec, minPeriods)
	}
	sizes, err := windows.expand()
	if err != nil {
		return nil, err
	}

	rs := make([]applyResolved, len(funcs))
	for i, f := range funcs {
		if f == nil {
			return nil, fmt.Errorf("%w: nil apply function at position %d", functions.ErrSpec, i)
		}
		r, err := f.resolveApply()
		if err != nil {
			return nil, err
		}
		rs[i] = r
	}

	plan := &ApplyPlan{Center: center}
	seen := make(map[string]bool)
	for _, w := range sizes {
		for _, r := range rs {
			minp := minPeriods
			if minp == 0 {
				minp = w
			}
			u := ApplyUnit{
				Window:     w,
				MinPeriods: minp,
				Output:     fmt.Sprintf("rolling_%s_win_%d", r.label, w),
				fn:         r.fn,
			}
			if seen[u.Output] {
				return nil, fmt.Errorf("%w: duplicate output column %q", functions.ErrSpec, u.Output)
			}
			seen[u.Output] = true
			plan.Units = append(plan.Units, u)
		}
	}
	return plan, nil
}

// Outputs returns the output column names in append order.
func (p *ApplyPlan) Outputs() []string {
	out := make([]string, len(p.Units))
	for i, u := range p.Units {
		out[i] = u.Output
	}
	return out
}

// RunApply evaluates an apply plan against one group frame in place. Each
// row's cell holds whatever the callable returned; rows whose clipped
// window misses min periods hold NaN. Every unit sees the input columns
// only, results append after the last unit ran.
func RunApply(g *frame.Frame, p *ApplyPlan) error {
	n := g.Len()
	results := make([][]interface{}, len(p.Units))
	for i := range p.Units {
		u := &p.Units[i]
		out := make([]interface{}, n)
		for r := 0; r < n; r++ {
			start, end := windowBounds(n, u.Window, p.Center, r)
			if end-start < u.MinPeriods {
				out[r] = math.NaN()
				continue
			}
			v, err := u.fn(g.Slice(start, end))
			if err != nil {
				return fmt.Errorf("apply engine: %s: %w", u.Output, err)
			}
			out[r] = v
		}
		results[i] = out
	}
	for i := range p.Units {
		if err := g.SetColumn(p.Units[i].Output, results[i]); err != nil {
			return fmt.Errorf("apply engine: %w", err)
		}
	}
	return nil
}
