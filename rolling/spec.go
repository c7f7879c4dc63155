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

// SeriesFunc is a caller-supplied reduction over one window of values.
// NaN cells are passed through; the function decides how to treat them.
type SeriesFunc func(values []float64) (float64, error)

// FuncSpec declares one rolling function. Constructors: Name for registry
// reductions, Custom for callables, Expr for expression-language functions,
// Configurable for registry reductions with parameters.
type FuncSpec interface {
	resolve() (resolved, error)
}

// resolved is the outcome of validating one FuncSpec.
type resolved struct {
	label   string
	reducer functions.Reducer
	// named marks registry-backed reductions, the only ones the columnar
	// engine accepts.
	named bool
	diags []Diagnostic
}

// Name declares a reduction by its registry name, such as "mean" or "std".
// Unknown names fail normalization. A bare "quantile" defaults to the 0.5
// level, labels itself quantile_50 and emits a diagnostic.
func Name(name string) FuncSpec {
	return namedSpec{name: name}
}

type namedSpec struct {
	name string
}

func (s namedSpec) resolve() (resolved, error) {
	kind, err := functions.KindOf(s.name)
	if err != nil {
		return resolved{}, err
	}
	red, err := functions.New(kind)
	if err != nil {
		return resolved{}, err
	}
	out := resolved{label: s.name, reducer: red, named: true}
	if kind == functions.Quantile {
		out.label = "quantile_50"
		out.diags = append(out.diags, Diagnostic{
			Code:    DiagDefaultQuantile,
			Unit:    out.label,
			Message: "quantile defaulted to the 50th percentile; use Quantile(label, q) for an explicit level",
		})
	}
	return out, nil
}

// Custom declares a labeled callable reduction. The label names the output
// column; an empty label or nil callable is a specification error.
func Custom(label string, fn SeriesFunc) FuncSpec {
	return customSpec{label: label, fn: fn}
}

type customSpec struct {
	label string
	fn    SeriesFunc
}

func (s customSpec) resolve() (resolved, error) {
	if s.label == "" {
		return resolved{}, fmt.Errorf("%w: custom rolling function needs a label", functions.ErrSpec)
	}
	if s.fn == nil {
		return resolved{}, fmt.Errorf("%w: custom rolling function %q has no callable", functions.ErrSpec, s.label)
	}
	return resolved{
		label:   s.label,
		reducer: &seriesReducer{label: s.label, fn: s.fn},
	}, nil
}

// kindCustom tags caller-supplied reductions. It is not a registry kind.
const kindCustom = functions.Kind("custom")

// seriesReducer adapts a SeriesFunc to the Reducer interface.
type seriesReducer struct {
	label string
	fn    SeriesFunc
}

var _ functions.Reducer = (*seriesReducer)(nil)

func (r *seriesReducer) Name() string {
	return r.label
}

func (r *seriesReducer) Kind() functions.Kind {
	return kindCustom
}

func (r *seriesReducer) Reduce(values []float64) (float64, error) {
	return r.fn(values)
}

// Configurable declares a registry reduction with parameter overrides, such
// as a quantile level or the paired column of a correlation. Parameters
// merge over the kind's defaults; unknown keys fail normalization.
func Configurable(label string, kind functions.Kind, params functions.Params) FuncSpec {
	return configSpec{label: label, kind: kind, params: params}
}

type configSpec struct {
	label  string
	kind   functions.Kind
	params functions.Params
}

func (s configSpec) resolve() (resolved, error) {
	if s.label == "" {
		return resolved{}, fmt.Errorf("%w: configurable %s needs a label", functions.ErrSpec, s.kind)
	}
	red, err := functions.NewWithParams(s.kind, s.params)
	if err != nil {
		return resolved{}, err
	}
	return resolved{label: s.label, reducer: red, named: true}, nil
}

// Quantile declares a rolling quantile at an explicit level.
func Quantile(label string, q float64) FuncSpec {
	return Configurable(label, functions.Quantile, functions.Params{"q": q})
}

// Corr declares a rolling correlation between the unit's value column and
// the other column.
func Corr(label, other string) FuncSpec {
	return Configurable(label, functions.Corr, functions.Params{"other": other})
}

// Cov declares a rolling covariance between the unit's value column and the
// other column.
func Cov(label, other string) FuncSpec {
	return Configurable(label, functions.Cov, functions.Params{"other": other})
}
