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

/*
Package timeroll is a rolling-window feature engineering engine for
time-series tables.

TimeRoll takes an ordered table, slides windows over its value columns per
group, and appends one deterministic feature column per (value column,
window, function) combination. Rows always come back in their original order
with every original column intact, so augmented tables feed straight into
downstream joins or model pipelines.

# Core features

• Rolling statistics - mean, sum, count, min, max, median, std, var,
quantile, skew, kurt, first, last, range, plus pairwise corr and cov

• Custom reductions - Go callables, expression-language functions and
whole-window apply functions with access to every column

• Grouped computation - windows never cross group boundaries; groups are
isolated and results reassemble in original row order

• Two engines - a row-wise reference engine that accepts every function, and
a columnar engine with sliding kernels for the common reductions

• Parallel dispatch - per-group fan-out across a bounded worker pool with
deterministic, worker-count-independent output

• Exponentially weighted statistics - ewm mean, sum, std and var with alpha,
com, span or half-life decay

• Time-bucketed summaries - SummarizeByTime flattens groups into one row per
time bucket

# Quick start

	package main

	import (
		"fmt"

		"github.com/timeroll/timeroll"
		"github.com/timeroll/timeroll/frame"
		"github.com/timeroll/timeroll/rolling"
	)

	func main() {
		f := frame.New([]frame.Row{
			{"id": "a", "date": "2024-01-01", "price": 10.0},
			{"id": "a", "date": "2024-01-02", "price": 20.0},
			{"id": "a", "date": "2024-01-03", "price": 29.0},
			{"id": "b", "date": "2024-01-01", "price": 42.0},
			{"id": "b", "date": "2024-01-02", "price": 53.0},
		}, "id", "date", "price")

		grouped, err := f.GroupBy("id")
		if err != nil {
			panic(err)
		}

		out, err := timeroll.AugmentRolling(grouped, "date",
			[]string{"price"},
			rolling.Windows(2, 3),
			[]rolling.FuncSpec{rolling.Name("mean"), rolling.Name("max")},
			timeroll.WithMinPeriods(1),
		)
		if err != nil {
			panic(err)
		}

		fmt.Print(out)
	}

Windows trail their row by default and clip at group edges; WithCentered
centers them instead. WithMinPeriods controls how many rows a clipped window
needs before it produces a value. The columnar engine
(WithEngine(rolling.EngineColumnar)) accelerates registry reductions and
matches the row-wise engine's results.

Ungrouped tables work the same way, passing the frame itself:

	out, err := timeroll.AugmentRolling(f, "date", ...)
*/
package timeroll
