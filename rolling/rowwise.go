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

	"github.com/timeroll/timeroll/frame"
	"github.com/timeroll/timeroll/functions"
)

// runRowwise is the reference engine: generic per-row window slicing. It
// accepts every function spec and trades speed for generality.
func runRowwise(g *frame.Frame, p *Plan) error {
	cache := newColumnCache(g)
	for i := range p.Units {
		u := &p.Units[i]
		var (
			out []float64
			err error
		)
		if pr, ok := u.Reducer.(functions.PairReducer); ok {
			out, err = reduceWindowedPair(cache.get(u.Column), cache.get(u.Pair), pr, u, p.Center)
		} else {
			out, err = reduceWindowed(cache.get(u.Column), u, p.Center)
		}
		if err != nil {
			return fmt.Errorf("rowwise engine: %w", err)
		}
		if err := g.SetFloatColumn(u.Output, out); err != nil {
			return fmt.Errorf("rowwise engine: %w", err)
		}
	}
	return nil
}
