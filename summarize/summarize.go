package summarize

import (
	"fmt"
	"strings"
	"time"

	"github.com/timeroll/timeroll/frame"
	"github.com/timeroll/timeroll/functions"
	"github.com/timeroll/timeroll/utils/timex"
)

// Rule selects the bucket width. Month labels buckets with the month-end
// date; every other rule labels them with the bucket start.
type Rule string

const (
	Second     Rule = "second"
	Minute     Rule = "minute"
	Hour       Rule = "hour"
	Day        Rule = "day"
	Week       Rule = "week"
	Month      Rule = "month"
	MonthStart Rule = "month_start"
	Quarter    Rule = "quarter"
	Year       Rule = "year"
)

// floorFunc maps a rule to its bucket-start function.
func floorFunc(r Rule) (func(time.Time) time.Time, error) {
	switch r {
	case Second:
		return func(t time.Time) time.Time { return timex.AlignTime(t, time.Second, false) }, nil
	case Minute:
		return func(t time.Time) time.Time { return timex.AlignTime(t, time.Minute, false) }, nil
	case Hour:
		return func(t time.Time) time.Time { return timex.AlignTime(t, time.Hour, false) }, nil
	case Day:
		return timex.StartOfDay, nil
	case Week:
		return timex.StartOfWeek, nil
	case Month, MonthStart:
		return timex.StartOfMonth, nil
	case Quarter:
		return timex.StartOfQuarter, nil
	case Year:
		return timex.StartOfYear, nil
	default:
		return nil, fmt.Errorf("%w: unknown summarize rule %q", functions.ErrSpec, r)
	}
}

func label(r Rule, bucket time.Time) time.Time {
	if r == Month {
		return timex.EndOfMonth(bucket)
	}
	return bucket
}

// ByTime aggregates value columns into time buckets, one output row per
// (group, bucket). Groups keep their sorted key order and buckets ascend
// inside each group; only observed buckets appear. The output holds the
// group key columns, the bucket timestamp under the date column's name, and
// one column per value column and statistic named "{column}_{kind}".
func ByTime(data frame.Rollable, dateColumn string, valueColumns []string, kinds []functions.Kind, rule Rule) (*frame.Frame, error) {
	if len(valueColumns) == 0 {
		return nil, fmt.Errorf("%w: at least one value column is required", functions.ErrSpec)
	}
	for _, c := range valueColumns {
		if c == "" {
			return nil, fmt.Errorf("%w: empty value column name", functions.ErrSpec)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: at least one statistic is required", functions.ErrSpec)
	}
	floor, err := floorFunc(rule)
	if err != nil {
		return nil, err
	}
	reducers := make([]functions.Reducer, len(kinds))
	for i, k := range kinds {
		r, err := functions.New(k)
		if err != nil {
			return nil, err
		}
		reducers[i] = r
	}

	var missing []string
	for _, c := range valueColumns {
		if !data.Source().HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: value columns not found: %s", frame.ErrData, strings.Join(missing, ", "))
	}

	keyCols := data.GroupColumns()
	cols := make([]string, 0, len(keyCols)+1+len(valueColumns)*len(kinds))
	cols = append(cols, keyCols...)
	cols = append(cols, dateColumn)
	seen := make(map[string]bool)
	for _, c := range valueColumns {
		for _, k := range kinds {
			name := fmt.Sprintf("%s_%s", c, k)
			if seen[name] {
				return nil, fmt.Errorf("%w: duplicate output column %q", functions.ErrSpec, name)
			}
			seen[name] = true
			cols = append(cols, name)
		}
	}

	groups, err := data.Partitions(dateColumn)
	if err != nil {
		return nil, err
	}

	var rows []frame.Row
	for _, grp := range groups {
		gf := grp.Frame
		n := gf.Len()
		if n == 0 {
			continue
		}
		buckets := make([]time.Time, n)
		for i := 0; i < n; i++ {
			tm, err := timex.ToTimeE(gf.Value(i, dateColumn))
			if err != nil {
				return nil, fmt.Errorf("%w: column %q row %d: %v", frame.ErrData, dateColumn, i, err)
			}
			buckets[i] = floor(tm)
		}
		colVals := make(map[string][]float64, len(valueColumns))
		for _, c := range valueColumns {
			colVals[c] = gf.Floats(c)
		}

		// the group is time-sorted, so equal buckets sit in adjacent runs
		start := 0
		for i := 1; i <= n; i++ {
			if i < n && buckets[i].Equal(buckets[start]) {
				continue
			}
			row := make(frame.Row, len(cols))
			for ki, kc := range keyCols {
				row[kc] = grp.Key[ki]
			}
			row[dateColumn] = label(rule, buckets[start])
			for _, c := range valueColumns {
				window := colVals[c][start:i]
				for ri, red := range reducers {
					v, err := red.Reduce(window)
					if err != nil {
						return nil, fmt.Errorf("summarize %s_%s: %w", c, kinds[ri], err)
					}
					row[fmt.Sprintf("%s_%s", c, kinds[ri])] = v
				}
			}
			rows = append(rows, row)
			start = i
		}
	}
	return frame.New(rows, cols...), nil
}
