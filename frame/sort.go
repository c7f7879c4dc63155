package frame

import (
	"sort"
	"strings"
	"time"

	"github.com/timeroll/timeroll/utils/cast"
	"github.com/timeroll/timeroll/utils/timex"
)

// compareValues orders two cells. Nil sorts first, numbers compare
// numerically when both sides convert, everything else compares as strings.
func compareValues(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	fa, ea := cast.ToFloat64E(a)
	fb, eb := cast.ToFloat64E(b)
	if ea == nil && eb == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(cast.ToString(a), cast.ToString(b))
}

// sortRows stably orders rows by the key columns, then by the date column.
// Timestamps for the date column are coerced once per row; cells that cannot
// be read as times keep their relative input order at the front.
func (f *Frame) sortRows(keyCols []string, dateCol string) {
	s := &rowSorter{
		rows:  f.rows,
		index: f.index,
		keys:  keyCols,
	}
	if dateCol != "" {
		s.times = make([]time.Time, len(f.rows))
		for i, r := range f.rows {
			if t, err := timex.ToTimeE(r[dateCol]); err == nil {
				s.times[i] = t
			}
		}
	}
	sort.Stable(s)
}

// rowSorter swaps rows, original indexes and cached timestamps together.
type rowSorter struct {
	rows  []Row
	index []int
	times []time.Time
	keys  []string
}

func (s *rowSorter) Len() int {
	return len(s.rows)
}

func (s *rowSorter) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
	s.index[i], s.index[j] = s.index[j], s.index[i]
	if s.times != nil {
		s.times[i], s.times[j] = s.times[j], s.times[i]
	}
}

func (s *rowSorter) Less(i, j int) bool {
	for _, k := range s.keys {
		if c := compareValues(s.rows[i][k], s.rows[j][k]); c != 0 {
			return c < 0
		}
	}
	if s.times != nil {
		return s.times[i].Before(s.times[j])
	}
	return false
}

// compareKeys orders two rows by the key columns only.
func compareKeys(a, b Row, keys []string) int {
	for _, k := range keys {
		if c := compareValues(a[k], b[k]); c != 0 {
			return c
		}
	}
	return 0
}
