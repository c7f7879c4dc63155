package frame

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringRendersColumnsInOrder(t *testing.T) {
	f := New([]Row{
		{"date": time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), "value": 1.5, "note": "first"},
		{"date": time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC), "value": math.NaN(), "note": nil},
	}, "date", "value", "note")

	out := f.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)

	header := lines[0]
	assert.Less(t, strings.Index(header, "date"), strings.Index(header, "value"))
	assert.Less(t, strings.Index(header, "value"), strings.Index(header, "note"))

	assert.Contains(t, lines[2], "2022-01-01 00:00:00")
	assert.Contains(t, lines[2], "1.5")
	assert.Contains(t, lines[3], "NaN")
}

func TestStringEmptyFrame(t *testing.T) {
	f := New(nil)
	assert.Equal(t, "(empty frame)\n", f.String())
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "NaN", formatCell(math.NaN()))
	assert.Equal(t, "2.5", formatCell(2.5))
	assert.Equal(t, "3", formatCell(3.0))
	assert.Equal(t, "12", formatCell(12))
	assert.Equal(t, "abc", formatCell("abc"))
}
