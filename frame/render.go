package frame

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/timeroll/timeroll/utils/cast"
)

const minColumnWidth = 4

// String renders the frame as an aligned text table in column order.
func (f *Frame) String() string {
	if len(f.cols) == 0 {
		return "(empty frame)\n"
	}

	widths := make([]int, len(f.cols))
	cells := make([][]string, len(f.rows))
	for i, c := range f.cols {
		widths[i] = len(c)
	}
	for ri, r := range f.rows {
		cells[ri] = make([]string, len(f.cols))
		for ci, c := range f.cols {
			s := formatCell(r[c])
			cells[ri][ci] = s
			if len(s) > widths[ci] {
				widths[ci] = len(s)
			}
		}
	}
	for i := range widths {
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}

	var b strings.Builder
	for i, c := range f.cols {
		if i > 0 {
			b.WriteString("  ")
		}
		pad(&b, c, widths[i])
	}
	b.WriteByte('\n')
	for i := range f.cols {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", widths[i]))
	}
	b.WriteByte('\n')
	for _, row := range cells {
		for i, s := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			pad(&b, s, widths[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func pad(b *strings.Builder, s string, width int) {
	b.WriteString(s)
	for n := width - len(s); n > 0; n-- {
		b.WriteByte(' ')
	}
}

// formatCell renders a cell compactly: floats without trailing zeros, NaN as
// "NaN", timestamps in a fixed layout, nil as empty.
func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if math.IsNaN(t) {
			return "NaN"
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	default:
		return cast.ToString(v)
	}
}
