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

// Engine selects the execution backend. Both engines honor identical window
// semantics; picking one is a performance choice, never a correctness one.
type Engine string

const (
	// EngineRowwise slices the window per row and calls the reduction on
	// it. It accepts every function spec, including callables.
	EngineRowwise Engine = "rowwise"
	// EngineColumnar batches each unit over the cached column and uses
	// sliding kernels where the reduction allows it. Registry reductions
	// only.
	EngineColumnar Engine = "columnar"
)

// ValidateEngine rejects unknown engine names before any computation runs.
func ValidateEngine(e Engine) error {
	switch e {
	case EngineRowwise, EngineColumnar, "":
		return nil
	default:
		return fmt.Errorf("%w: unknown engine %q (use %q or %q)", functions.ErrSpec, e, EngineRowwise, EngineColumnar)
	}
}

// Run evaluates the plan against one group frame in place, appending one
// output column per unit. The frame must already be time-sorted; the empty
// engine falls back to row-wise.
func Run(g *frame.Frame, p *Plan, engine Engine) error {
	switch engine {
	case EngineRowwise, "":
		return runRowwise(g, p)
	case EngineColumnar:
		return runColumnar(g, p)
	default:
		return fmt.Errorf("%w: unknown engine %q (use %q or %q)", functions.ErrSpec, engine, EngineRowwise, EngineColumnar)
	}
}

// columnCache extracts each referenced column once per group.
type columnCache struct {
	f    *frame.Frame
	cols map[string][]float64
}

func newColumnCache(f *frame.Frame) *columnCache {
	return &columnCache{f: f, cols: make(map[string][]float64)}
}

func (c *columnCache) get(name string) []float64 {
	if vals, ok := c.cols[name]; ok {
		return vals
	}
	vals := c.f.Floats(name)
	c.cols[name] = vals
	return vals
}

// reduceWindowed evaluates one single-series unit by slicing the cached
// column to the window bounds of every row. Rows whose clipped window holds
// fewer rows than the unit's min periods come out as NaN.
func reduceWindowed(vals []float64, u *Unit, center bool) ([]float64, error) {
	n := len(vals)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start, end := windowBounds(n, u.Window, center, i)
		if end-start < u.MinPeriods {
			out[i] = math.NaN()
			continue
		}
		v, err := u.Reducer.Reduce(vals[start:end])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.Output, err)
		}
		out[i] = v
	}
	return out, nil
}

// reduceWindowedPair evaluates one two-series unit over aligned slices of
// both columns.
func reduceWindowedPair(a, b []float64, pr functions.PairReducer, u *Unit, center bool) ([]float64, error) {
	n := len(a)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start, end := windowBounds(n, u.Window, center, i)
		if end-start < u.MinPeriods {
			out[i] = math.NaN()
			continue
		}
		v, err := pr.ReducePair(a[start:end], b[start:end])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.Output, err)
		}
		out[i] = v
	}
	return out, nil
}
