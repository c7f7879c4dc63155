package frame

import (
	"fmt"
	"sort"
)

// Rollable is the capability the augmentation entry points accept: anything
// that can hand out time-ordered partitions of its rows. Frame partitions as
// a single group; Grouped partitions per distinct key.
type Rollable interface {
	// Source returns the underlying frame.
	Source() *Frame
	// GroupColumns returns the grouping key columns, nil when ungrouped.
	GroupColumns() []string
	// Partitions returns isolated, time-sorted groups. The source frame is
	// never mutated; every group owns copies of its rows.
	Partitions(dateColumn string) ([]Group, error)
}

// Group is one partition: the key values it was split on and its rows,
// sorted by timestamp.
type Group struct {
	Key   []interface{}
	Frame *Frame
}

var _ Rollable = (*Frame)(nil)
var _ Rollable = (*Grouped)(nil)

// Source returns the frame itself.
func (f *Frame) Source() *Frame {
	return f
}

// GroupColumns returns nil; a bare frame is ungrouped.
func (f *Frame) GroupColumns() []string {
	return nil
}

// Partitions returns the whole table as a single group, deep-copied and
// stably sorted by the date column.
func (f *Frame) Partitions(dateColumn string) ([]Group, error) {
	if !f.HasColumn(dateColumn) {
		return nil, fmt.Errorf("%w: date column %q not found", ErrData, dateColumn)
	}
	work := f.Clone()
	work.sortRows(nil, dateColumn)
	return []Group{{Frame: work}}, nil
}

// GroupBy declares grouping key columns for partitioned augmentation.
func (f *Frame) GroupBy(cols ...string) (*Grouped, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: group by needs at least one column", ErrData)
	}
	for _, c := range cols {
		if !f.HasColumn(c) {
			return nil, fmt.Errorf("%w: group column %q not found", ErrData, c)
		}
	}
	return &Grouped{
		src:  f,
		keys: append([]string(nil), cols...),
	}, nil
}

// Grouped is a frame with grouping keys attached. Augmentations run per
// distinct key combination, never across groups.
type Grouped struct {
	src  *Frame
	keys []string
}

// Source returns the underlying frame.
func (g *Grouped) Source() *Frame {
	return g.src
}

// GroupColumns returns the grouping key columns.
func (g *Grouped) GroupColumns() []string {
	return append([]string(nil), g.keys...)
}

// Partitions deep-copies the table, stably sorts it by [keys..., timestamp]
// and splits it into runs of equal keys. Group order follows the sorted key
// order, so iteration is deterministic across runs.
func (g *Grouped) Partitions(dateColumn string) ([]Group, error) {
	if !g.src.HasColumn(dateColumn) {
		return nil, fmt.Errorf("%w: date column %q not found", ErrData, dateColumn)
	}
	work := g.src.Clone()
	work.sortRows(g.keys, dateColumn)

	var groups []Group
	start := 0
	for i := 1; i <= len(work.rows); i++ {
		if i < len(work.rows) && compareKeys(work.rows[start], work.rows[i], g.keys) == 0 {
			continue
		}
		key := make([]interface{}, len(g.keys))
		for k, col := range g.keys {
			key[k] = work.rows[start][col]
		}
		groups = append(groups, Group{
			Key: key,
			Frame: &Frame{
				rows:  work.rows[start:i],
				index: work.index[start:i],
				cols:  append([]string(nil), work.cols...),
			},
		})
		start = i
	}
	return groups, nil
}

// Assemble concatenates processed group frames and restores the original row
// order. The result is a fresh frame whose columns are the first fragment's
// columns followed by any extras from later fragments.
func Assemble(fragments []*Frame) *Frame {
	total := 0
	for _, fr := range fragments {
		total += fr.Len()
	}
	out := &Frame{
		rows:  make([]Row, 0, total),
		index: make([]int, 0, total),
	}
	for _, fr := range fragments {
		out.rows = append(out.rows, fr.rows...)
		out.index = append(out.index, fr.index...)
		for _, c := range fr.cols {
			out.addColumn(c)
		}
	}
	sort.Stable(&indexSorter{rows: out.rows, index: out.index})
	for i := range out.index {
		out.index[i] = i
	}
	return out
}

// indexSorter restores original row order after group processing.
type indexSorter struct {
	rows  []Row
	index []int
}

func (s *indexSorter) Len() int {
	return len(s.rows)
}

func (s *indexSorter) Swap(i, j int) {
	s.rows[i], s.rows[j] = s.rows[j], s.rows[i]
	s.index[i], s.index[j] = s.index[j], s.index[i]
}

func (s *indexSorter) Less(i, j int) bool {
	return s.index[i] < s.index[j]
}
