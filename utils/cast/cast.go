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

// Package cast wraps the scalar conversions the engines need. Table cells
// arrive as interface{} values of whatever type the caller loaded, so every
// numeric path goes through here before any arithmetic happens.
package cast

import (
	"math"

	"github.com/spf13/cast"
)

// ToFloat64E converts a cell to float64, reporting an error for values that
// have no numeric reading.
func ToFloat64E(v interface{}) (float64, error) {
	return cast.ToFloat64E(v)
}

// ToFloat64 converts a cell to float64, returning 0 when conversion fails.
func ToFloat64(v interface{}) float64 {
	return cast.ToFloat64(v)
}

// ToFloatCell converts a cell to float64 for computation. Nil cells and
// non-numeric values become NaN rather than an error, so a dirty column
// degrades to missing results instead of failing the run.
func ToFloatCell(v interface{}) float64 {
	if v == nil {
		return math.NaN()
	}
	if f, ok := v.(float64); ok {
		return f
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToInt64E converts a cell to int64.
func ToInt64E(v interface{}) (int64, error) {
	return cast.ToInt64E(v)
}

// ToIntE converts a cell to int.
func ToIntE(v interface{}) (int, error) {
	return cast.ToIntE(v)
}

// ToString renders any cell as a string.
func ToString(v interface{}) string {
	return cast.ToString(v)
}

// ToStringE renders a cell as a string, reporting unconvertible types.
func ToStringE(v interface{}) (string, error) {
	return cast.ToStringE(v)
}
