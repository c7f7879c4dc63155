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

// WindowSpec declares one or more window lengths. Every length crosses with
// every value column and function during normalization.
type WindowSpec struct {
	sizes []int
}

// Window declares a single window length.
func Window(n int) WindowSpec {
	return WindowSpec{sizes: []int{n}}
}

// Windows declares an explicit list of window lengths.
func Windows(ns ...int) WindowSpec {
	return WindowSpec{sizes: append([]int(nil), ns...)}
}

// WindowRange declares every window length from lo to hi inclusive.
func WindowRange(lo, hi int) WindowSpec {
	var sizes []int
	for n := lo; n <= hi; n++ {
		sizes = append(sizes, n)
	}
	return WindowSpec{sizes: sizes}
}

// expand validates the spec and returns the window lengths in declaration
// order.
func (w WindowSpec) expand() ([]int, error) {
	if len(w.sizes) == 0 {
		return nil, fmt.Errorf("%w: window spec is empty", functions.ErrSpec)
	}
	for _, n := range w.sizes {
		if n < 1 {
			return nil, fmt.Errorf("%w: window length must be positive, got %d", functions.ErrSpec, n)
		}
	}
	return w.sizes, nil
}
