package checks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeroll/timeroll/frame"
)

func TestDateColumnAcceptsMixedCells(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), "v": 1.0},
		{"date": "2022-01-02", "v": 2.0},
		{"date": int64(1641168000), "v": 3.0},
	}, "date", "v")

	assert.NoError(t, DateColumn(f, "date"))
}

func TestDateColumnMissing(t *testing.T) {
	f := frame.New([]frame.Row{{"v": 1.0}}, "v")

	err := DateColumn(f, "date")
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrData)
	assert.Contains(t, err.Error(), `"date"`)
}

func TestDateColumnEmptyName(t *testing.T) {
	f := frame.New([]frame.Row{{"v": 1.0}}, "v")
	assert.ErrorIs(t, DateColumn(f, ""), frame.ErrData)
}

func TestDateColumnUncoercibleCell(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": "2022-01-01", "v": 1.0},
		{"date": "yesterdayish", "v": 2.0},
	}, "date", "v")

	err := DateColumn(f, "date")
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrData)
	assert.Contains(t, err.Error(), "row 1")
}

func TestDateColumnEmptyFrame(t *testing.T) {
	f := frame.New(nil, "date", "v")
	assert.NoError(t, DateColumn(f, "date"))
}

func TestValueColumns(t *testing.T) {
	f := frame.New([]frame.Row{{"a": 1.0, "b": 2.0}}, "a", "b")

	assert.NoError(t, ValueColumns(f, []string{"a", "b"}))
	assert.NoError(t, ValueColumns(f, nil))

	err := ValueColumns(f, []string{"a", "x", "y"})
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrData)
	assert.Contains(t, err.Error(), "x, y")
}
