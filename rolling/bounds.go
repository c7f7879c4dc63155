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

// windowBounds returns the [start, end) row span of the window anchored at
// row i in a group of n rows. Both engines read their windows through this
// function, so the two never disagree on coverage.
//
// Trailing windows cover rows [i-w+1, i]. Centered windows with odd width
// cover [i-w/2, i+w/2]; even widths lean left, covering [i-w/2, i+w/2-1].
// Spans clip to the group edges; the result always lands on row i.
func windowBounds(n, w int, center bool, i int) (start, end int) {
	if center {
		half := w / 2
		start = i - half
		if w%2 == 0 {
			end = i + half
		} else {
			end = i + half + 1
		}
	} else {
		start = i - w + 1
		end = i + 1
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	return start, end
}
