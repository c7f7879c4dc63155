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

// runColumnar is the batched engine. Each unit runs over the cached column
// in one pass: sum, mean and count slide a running aggregate, min and max
// ride a monotonic deque, everything else recomputes per window with the
// exact loops of the row-wise engine. Results match row-wise within
// floating-point tolerance.
func runColumnar(g *frame.Frame, p *Plan) error {
	cache := newColumnCache(g)
	for i := range p.Units {
		u := &p.Units[i]
		if !u.Named {
			return fmt.Errorf("%w: columnar engine supports registry reductions only, %q needs the rowwise engine", functions.ErrSpec, u.Output)
		}
		var (
			out []float64
			err error
		)
		if pr, ok := u.Reducer.(functions.PairReducer); ok {
			out, err = reduceWindowedPair(cache.get(u.Column), cache.get(u.Pair), pr, u, p.Center)
		} else {
			vals := cache.get(u.Column)
			switch u.Reducer.Kind() {
			case functions.Sum, functions.Mean, functions.Count:
				out = slidingMoments(vals, u, p.Center)
			case functions.Min:
				out = slidingExtrema(vals, u, p.Center, false)
			case functions.Max:
				out = slidingExtrema(vals, u, p.Center, true)
			default:
				out, err = reduceWindowed(vals, u, p.Center)
			}
		}
		if err != nil {
			return fmt.Errorf("columnar engine: %w", err)
		}
		if err := g.SetFloatColumn(u.Output, out); err != nil {
			return fmt.Errorf("columnar engine: %w", err)
		}
	}
	return nil
}

// slidingMoments evaluates sum, mean or count with a running aggregate.
// Window bounds move monotonically, so each value enters and leaves the
// running state exactly once. NaN cells stay out of the aggregate but still
// count toward the min-periods row gate.
func slidingMoments(vals []float64, u *Unit, center bool) []float64 {
	n := len(vals)
	out := make([]float64, n)
	kind := u.Reducer.Kind()

	start, end := 0, 0
	sum := 0.0
	cnt := 0
	for i := 0; i < n; i++ {
		ns, ne := windowBounds(n, u.Window, center, i)
		for ; end < ne; end++ {
			if !math.IsNaN(vals[end]) {
				sum += vals[end]
				cnt++
			}
		}
		for ; start < ns; start++ {
			if !math.IsNaN(vals[start]) {
				sum -= vals[start]
				cnt--
			}
		}
		if ne-ns < u.MinPeriods {
			out[i] = math.NaN()
			continue
		}
		switch kind {
		case functions.Count:
			out[i] = float64(cnt)
		case functions.Sum:
			if cnt == 0 {
				out[i] = math.NaN()
			} else {
				out[i] = sum
			}
		default: // mean
			if cnt == 0 {
				out[i] = math.NaN()
			} else {
				out[i] = sum / float64(cnt)
			}
		}
	}
	return out
}

// slidingExtrema evaluates min or max with a monotonic index deque. The
// deque front always holds the best value of the current window; candidates
// that can never win again pop off the back as new values arrive.
func slidingExtrema(vals []float64, u *Unit, center bool, isMax bool) []float64 {
	n := len(vals)
	out := make([]float64, n)

	deque := make([]int, 0, u.Window+1)
	filled := 0
	for i := 0; i < n; i++ {
		ns, ne := windowBounds(n, u.Window, center, i)
		for ; filled < ne; filled++ {
			v := vals[filled]
			if math.IsNaN(v) {
				continue
			}
			for len(deque) > 0 {
				back := vals[deque[len(deque)-1]]
				if (isMax && back <= v) || (!isMax && back >= v) {
					deque = deque[:len(deque)-1]
					continue
				}
				break
			}
			deque = append(deque, filled)
		}
		for len(deque) > 0 && deque[0] < ns {
			deque = deque[1:]
		}
		if ne-ns < u.MinPeriods || len(deque) == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = vals[deque[0]]
	}
	return out
}
