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

package timeroll

import (
	"fmt"

	"github.com/timeroll/timeroll/checks"
	"github.com/timeroll/timeroll/ewm"
	"github.com/timeroll/timeroll/frame"
	"github.com/timeroll/timeroll/functions"
	"github.com/timeroll/timeroll/parallel"
	"github.com/timeroll/timeroll/rolling"
	"github.com/timeroll/timeroll/summarize"
)

// AugmentRolling appends one rolling feature column per (value column,
// window, function) to the table. Grouped data computes every feature inside
// each group; windows never cross group boundaries. Rows come back in their
// original order with all original columns intact.
//
// Output columns are named "{column}_rolling_{function}_win_{window}".
//
// Example:
//
//	f := frame.New(rows, "id", "date", "price")
//	grouped, _ := f.GroupBy("id")
//	out, err := timeroll.AugmentRolling(grouped, "date",
//	    []string{"price"},
//	    rolling.Windows(7, 30),
//	    []rolling.FuncSpec{rolling.Name("mean"), rolling.Name("std")},
//	    timeroll.WithWorkers(-1),
//	)
//
// The call validates the table and the specification before any window is
// evaluated: missing columns are data errors, malformed specifications and
// unknown engine names are specification errors.
func AugmentRolling(data frame.Rollable, dateColumn string, valueColumns []string, windows rolling.WindowSpec, funcs []rolling.FuncSpec, opts ...Option) (*frame.Frame, error) {
	cfg := newConfig(opts...)
	src := data.Source()
	if err := checks.DateColumn(src, dateColumn); err != nil {
		return nil, err
	}
	if err := checks.ValueColumns(src, valueColumns); err != nil {
		return nil, err
	}
	if err := rolling.ValidateEngine(cfg.engine); err != nil {
		return nil, err
	}
	plan, err := rolling.Normalize(valueColumns, windows, funcs, cfg.minPeriods, cfg.center)
	if err != nil {
		return nil, err
	}
	if err := checks.ValueColumns(src, plan.PairColumns()); err != nil {
		return nil, err
	}
	cfg.deliver(plan.Diags)

	groups, err := data.Partitions(dateColumn)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug("rolling: %d units over %d groups (%s engine, %d workers)",
		len(plan.Units), len(groups), cfg.engine, parallel.Resolve(cfg.workers))

	results := make([]*frame.Frame, len(groups))
	err = parallel.Run(cfg.workers, len(groups), cfg.reporter("rolling groups"), func(i int) error {
		g := groups[i].Frame
		if err := rolling.Run(g, plan, cfg.engine); err != nil {
			return err
		}
		results[i] = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assemble(src, results, plan.Outputs()), nil
}

// AugmentRollingApply appends one feature column per (window, function)
// where each function sees the whole window as a sub-frame, every column
// included. It covers reductions that need several columns at once, at the
// cost of running on the row-wise path only.
//
// Output columns are named "rolling_{function}_win_{window}".
//
// Example:
//
//	vwap := rolling.Apply("vwap", func(win *frame.Frame) (interface{}, error) {
//	    p, v := win.Floats("price"), win.Floats("volume")
//	    var num, den float64
//	    for i := range p {
//	        num, den = num+p[i]*v[i], den+v[i]
//	    }
//	    return num / den, nil
//	})
//	out, err := timeroll.AugmentRollingApply(grouped, "date",
//	    rolling.Window(20), []rolling.ApplySpec{vwap})
func AugmentRollingApply(data frame.Rollable, dateColumn string, windows rolling.WindowSpec, funcs []rolling.ApplySpec, opts ...Option) (*frame.Frame, error) {
	cfg := newConfig(opts...)
	if cfg.engine == rolling.EngineColumnar {
		return nil, fmt.Errorf("%w: apply functions need the rowwise engine", functions.ErrSpec)
	}
	src := data.Source()
	if err := checks.DateColumn(src, dateColumn); err != nil {
		return nil, err
	}
	plan, err := rolling.NormalizeApply(windows, funcs, cfg.minPeriods, cfg.center)
	if err != nil {
		return nil, err
	}

	groups, err := data.Partitions(dateColumn)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug("rolling apply: %d units over %d groups (%d workers)",
		len(plan.Units), len(groups), parallel.Resolve(cfg.workers))

	results := make([]*frame.Frame, len(groups))
	err = parallel.Run(cfg.workers, len(groups), cfg.reporter("apply groups"), func(i int) error {
		g := groups[i].Frame
		if err := rolling.RunApply(g, plan); err != nil {
			return err
		}
		results[i] = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assemble(src, results, plan.Outputs()), nil
}

// AugmentEWM appends one exponentially weighted feature column per (value
// column, statistic). Exactly one decay parameter selects the weighting:
// ewm.Alpha, ewm.Com, ewm.Span or ewm.HalfLife.
//
// Output columns tag the decay parameter and its value, such as
// "price_ewm_mean_alpha_0.1".
func AugmentEWM(data frame.Rollable, dateColumn string, valueColumns []string, kinds []ewm.Kind, decay ewm.Decay, opts ...Option) (*frame.Frame, error) {
	cfg := newConfig(opts...)
	src := data.Source()
	if err := checks.DateColumn(src, dateColumn); err != nil {
		return nil, err
	}
	if err := checks.ValueColumns(src, valueColumns); err != nil {
		return nil, err
	}
	plan, err := ewm.Normalize(valueColumns, kinds, decay)
	if err != nil {
		return nil, err
	}

	groups, err := data.Partitions(dateColumn)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug("ewm: %d units over %d groups (alpha %g)", len(plan.Units), len(groups), plan.Alpha)

	results := make([]*frame.Frame, len(groups))
	err = parallel.Run(cfg.workers, len(groups), cfg.reporter("ewm groups"), func(i int) error {
		g := groups[i].Frame
		if err := ewm.Run(g, plan); err != nil {
			return err
		}
		results[i] = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assemble(src, results, plan.Outputs()), nil
}

// SummarizeByTime aggregates value columns into time buckets, one output
// row per (group, bucket). Unlike the augmentations it returns a new,
// smaller table instead of appending columns.
//
// Example:
//
//	daily, err := timeroll.SummarizeByTime(grouped, "date",
//	    []string{"price"},
//	    []functions.Kind{functions.Mean, functions.Max},
//	    summarize.Day)
func SummarizeByTime(data frame.Rollable, dateColumn string, valueColumns []string, kinds []functions.Kind, rule summarize.Rule, opts ...Option) (*frame.Frame, error) {
	cfg := newConfig(opts...)
	src := data.Source()
	if err := checks.DateColumn(src, dateColumn); err != nil {
		return nil, err
	}
	if err := checks.ValueColumns(src, valueColumns); err != nil {
		return nil, err
	}
	out, err := summarize.ByTime(data, dateColumn, valueColumns, kinds, rule)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug("summarize: %d rows into %d buckets by %s", src.Len(), out.Len(), rule)
	return out, nil
}

// assemble restores the original row order from the per-group fragments. A
// grouped table with no rows yields no fragments; the planned columns still
// appear, empty.
func assemble(src *frame.Frame, results []*frame.Frame, outputs []string) *frame.Frame {
	if len(results) == 0 {
		out := src.Clone()
		for _, name := range outputs {
			_ = out.SetFloatColumn(name, nil)
		}
		return out
	}
	return frame.Assemble(results)
}
