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

// Package timex coerces heterogeneous timestamp cells into time.Time and
// aligns instants to bucket boundaries. Date columns commonly hold a mix of
// time.Time values, layout strings and unix numbers depending on how the
// table was loaded.
package timex

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/timeroll/timeroll/utils/cast"
)

// Unix magnitude cutoffs used to guess the unit of a bare numeric timestamp.
const (
	maxUnixSeconds = int64(1e11) // ~5138-11-16 in seconds
	maxUnixMillis  = int64(1e14)
)

// ToTimeE converts a timestamp cell to time.Time.
//
// time.Time values pass through. Strings are parsed with dateparse, which
// recognizes the usual layouts without a format argument. Integers and floats
// are read as unix timestamps, with the unit (seconds, milliseconds or
// nanoseconds) inferred from magnitude.
func ToTimeE(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("cannot convert nil to time")
	case time.Time:
		return t, nil
	case *time.Time:
		if t == nil {
			return time.Time{}, fmt.Errorf("cannot convert nil to time")
		}
		return *t, nil
	case string:
		parsed, err := dateparse.ParseAny(t)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot parse %q as time: %w", t, err)
		}
		return parsed, nil
	default:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("cannot convert %T to time", v)
		}
		return fromUnix(n), nil
	}
}

func fromUnix(n int64) time.Time {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < maxUnixSeconds:
		return time.Unix(n, 0).UTC()
	case abs < maxUnixMillis:
		return time.UnixMilli(n).UTC()
	default:
		return time.Unix(0, n).UTC()
	}
}

// AlignTime aligns an instant to the given unit. When roundUp is true the
// result rounds up to the next boundary, otherwise down.
func AlignTime(t time.Time, unit time.Duration, roundUp bool) time.Time {
	trunc := t.Truncate(unit)
	if roundUp && !t.Equal(trunc) {
		return trunc.Add(unit)
	}
	return trunc
}
