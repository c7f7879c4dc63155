// Package frame holds the tabular data model the augmentation engines work
// on. A Frame owns its rows, remembers the original row order and keeps an
// explicit column order, so results come back in the caller's row order with
// new columns appended deterministically.
package frame

import (
	"errors"
	"fmt"
	"sort"

	"github.com/timeroll/timeroll/utils/cast"
)

// ErrData marks problems with the input table itself, such as missing
// columns or timestamps that cannot be read. It is raised before any
// computation starts.
var ErrData = errors.New("invalid data")

// Row is a single record keyed by column name.
type Row map[string]interface{}

// Clone returns a copy of the row. Cell values are shared.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Frame is an ordered collection of rows with a fixed column order and the
// original position of every row.
type Frame struct {
	rows  []Row
	index []int
	cols  []string
}

// New builds a frame from rows. When cols is omitted the column order is the
// sorted union of the keys found in the rows, so construction stays
// deterministic regardless of map iteration order.
func New(rows []Row, cols ...string) *Frame {
	f := &Frame{
		rows:  rows,
		index: make([]int, len(rows)),
	}
	for i := range rows {
		f.index[i] = i
	}
	if len(cols) > 0 {
		f.cols = append([]string(nil), cols...)
		return f
	}
	seen := make(map[string]bool)
	for _, r := range rows {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				f.cols = append(f.cols, k)
			}
		}
	}
	sort.Strings(f.cols)
	return f
}

// FromColumns builds a frame from column slices. All columns must share one
// length.
func FromColumns(cols []string, data map[string][]interface{}) (*Frame, error) {
	n := -1
	for _, c := range cols {
		vals, ok := data[c]
		if !ok {
			return nil, fmt.Errorf("%w: column %q has no values", ErrData, c)
		}
		if n == -1 {
			n = len(vals)
		} else if len(vals) != n {
			return nil, fmt.Errorf("%w: column %q has %d values, want %d", ErrData, c, len(vals), n)
		}
	}
	if n == -1 {
		n = 0
	}
	rows := make([]Row, n)
	for i := 0; i < n; i++ {
		rows[i] = make(Row, len(cols))
		for _, c := range cols {
			rows[i][c] = data[c][i]
		}
	}
	return New(rows, cols...), nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Columns returns the column order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.cols...)
}

// HasColumn reports whether the frame declares the column.
func (f *Frame) HasColumn(name string) bool {
	for _, c := range f.cols {
		if c == name {
			return true
		}
	}
	return false
}

// Row returns the i-th row. The returned map is the live row, not a copy.
func (f *Frame) Row(i int) Row {
	return f.rows[i]
}

// Value returns the cell at row i, column col. Missing cells are nil.
func (f *Frame) Value(i int, col string) interface{} {
	return f.rows[i][col]
}

// Floats extracts a column as float64 values. Missing cells and values
// without a numeric reading become NaN.
func (f *Frame) Floats(col string) []float64 {
	out := make([]float64, len(f.rows))
	for i, r := range f.rows {
		out[i] = cast.ToFloatCell(r[col])
	}
	return out
}

// SetColumn writes a full column of cells, appending the column to the
// column order when it is new.
func (f *Frame) SetColumn(name string, values []interface{}) error {
	if len(values) != len(f.rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(f.rows))
	}
	for i, v := range values {
		f.rows[i][name] = v
	}
	f.addColumn(name)
	return nil
}

// SetFloatColumn writes a numeric column, appending it to the column order
// when it is new. NaN cells mark missing results.
func (f *Frame) SetFloatColumn(name string, values []float64) error {
	if len(values) != len(f.rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(f.rows))
	}
	for i, v := range values {
		f.rows[i][name] = v
	}
	f.addColumn(name)
	return nil
}

func (f *Frame) addColumn(name string) {
	if !f.HasColumn(name) {
		f.cols = append(f.cols, name)
	}
}

// Clone deep-copies the frame. Row maps are copied so the clone can be
// extended without touching the source.
func (f *Frame) Clone() *Frame {
	rows := make([]Row, len(f.rows))
	for i, r := range f.rows {
		rows[i] = r.Clone()
	}
	return &Frame{
		rows:  rows,
		index: append([]int(nil), f.index...),
		cols:  append([]string(nil), f.cols...),
	}
}

// Slice returns a view over rows [start, end). The view shares row maps with
// the frame and must be treated as read-only.
func (f *Frame) Slice(start, end int) *Frame {
	return &Frame{
		rows:  f.rows[start:end],
		index: f.index[start:end],
		cols:  f.cols,
	}
}
