package summarize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeroll/timeroll/frame"
	"github.com/timeroll/timeroll/functions"
)

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2022, month, day, hour, 0, 0, 0, time.UTC)
}

func TestByTimeDailyBuckets(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": at(time.January, 2, 9), "v": 10.0},
		{"date": at(time.January, 1, 10), "v": 1.0},
		{"date": at(time.January, 1, 14), "v": 3.0},
	}, "date", "v")

	out, err := ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Mean, functions.Sum}, Day)
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "v_mean", "v_sum"}, out.Columns())
	require.Equal(t, 2, out.Len())

	assert.Equal(t, at(time.January, 1, 0), out.Value(0, "date"))
	assert.Equal(t, at(time.January, 2, 0), out.Value(1, "date"))
	assert.InDelta(t, 2.0, out.Floats("v_mean")[0], 1e-9)
	assert.InDelta(t, 4.0, out.Floats("v_sum")[0], 1e-9)
	assert.InDelta(t, 10.0, out.Floats("v_mean")[1], 1e-9)
	assert.InDelta(t, 10.0, out.Floats("v_sum")[1], 1e-9)
}

func TestByTimeGroupedMonthEndLabels(t *testing.T) {
	f := frame.New([]frame.Row{
		{"id": "b", "date": at(time.January, 5, 0), "v": 4.0},
		{"id": "a", "date": at(time.February, 10, 0), "v": 3.0},
		{"id": "a", "date": at(time.January, 20, 0), "v": 2.0},
		{"id": "a", "date": at(time.January, 10, 0), "v": 1.0},
	}, "id", "date", "v")
	grouped, err := f.GroupBy("id")
	require.NoError(t, err)

	out, err := ByTime(grouped, "date", []string{"v"}, []functions.Kind{functions.Sum}, Month)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "date", "v_sum"}, out.Columns())
	require.Equal(t, 3, out.Len())

	// groups in sorted key order, buckets ascending, month-end labels
	assert.Equal(t, "a", out.Value(0, "id"))
	assert.Equal(t, at(time.January, 31, 0), out.Value(0, "date"))
	assert.InDelta(t, 3.0, out.Floats("v_sum")[0], 1e-9)

	assert.Equal(t, "a", out.Value(1, "id"))
	assert.Equal(t, at(time.February, 28, 0), out.Value(1, "date"))
	assert.InDelta(t, 3.0, out.Floats("v_sum")[1], 1e-9)

	assert.Equal(t, "b", out.Value(2, "id"))
	assert.Equal(t, at(time.January, 31, 0), out.Value(2, "date"))
	assert.InDelta(t, 4.0, out.Floats("v_sum")[2], 1e-9)
}

func TestByTimeMonthStartLabels(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": at(time.January, 10, 0), "v": 1.0},
		{"date": at(time.January, 20, 0), "v": 2.0},
	}, "date", "v")

	out, err := ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Sum}, MonthStart)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, at(time.January, 1, 0), out.Value(0, "date"))
	assert.InDelta(t, 3.0, out.Floats("v_sum")[0], 1e-9)
}

func TestByTimeWeekBucketsStartMonday(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": at(time.August, 17, 9), "v": 1.0},  // Wednesday
		{"date": at(time.August, 21, 9), "v": 2.0},  // Sunday, same week
		{"date": at(time.August, 22, 9), "v": 10.0}, // next Monday
	}, "date", "v")

	out, err := ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Sum}, Week)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, at(time.August, 15, 0), out.Value(0, "date"))
	assert.InDelta(t, 3.0, out.Floats("v_sum")[0], 1e-9)
	assert.Equal(t, at(time.August, 22, 0), out.Value(1, "date"))
	assert.InDelta(t, 10.0, out.Floats("v_sum")[1], 1e-9)
}

func TestByTimeQuarterAndYear(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": at(time.February, 1, 0), "v": 1.0},
		{"date": at(time.August, 1, 0), "v": 2.0},
	}, "date", "v")

	out, err := ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Count}, Quarter)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, at(time.January, 1, 0), out.Value(0, "date"))
	assert.Equal(t, at(time.July, 1, 0), out.Value(1, "date"))

	out, err = ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Count}, Year)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, at(time.January, 1, 0), out.Value(0, "date"))
	assert.InDelta(t, 2.0, out.Floats("v_count")[0], 1e-9)
}

func TestByTimeStringDates(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": "2022-01-01 10:00:00", "v": 1.0},
		{"date": "2022-01-01 15:00:00", "v": 5.0},
	}, "date", "v")

	out, err := ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Max}, Day)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 5.0, out.Floats("v_max")[0], 1e-9)
}

func TestByTimeSkipsMissingCells(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": at(time.January, 1, 9), "v": nil},
		{"date": at(time.January, 1, 10), "v": 5.0},
	}, "date", "v")

	out, err := ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Mean, functions.Count}, Day)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.InDelta(t, 5.0, out.Floats("v_mean")[0], 1e-9)
	assert.InDelta(t, 1.0, out.Floats("v_count")[0], 1e-9)
}

func TestByTimeAllMissingBucket(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": at(time.January, 1, 9), "v": nil},
	}, "date", "v")

	out, err := ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Mean}, Day)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.True(t, math.IsNaN(out.Floats("v_mean")[0]))
}

func TestByTimeErrors(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": at(time.January, 1, 0), "v": 1.0},
	}, "date", "v")

	_, err := ByTime(f, "date", nil, []functions.Kind{functions.Mean}, Day)
	assert.ErrorIs(t, err, functions.ErrSpec)

	_, err = ByTime(f, "date", []string{"v"}, nil, Day)
	assert.ErrorIs(t, err, functions.ErrSpec)

	_, err = ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Kind("mode")}, Day)
	assert.ErrorIs(t, err, functions.ErrSpec)

	_, err = ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Mean, functions.Mean}, Day)
	assert.ErrorIs(t, err, functions.ErrSpec)

	_, err = ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Mean}, Rule("fortnight"))
	assert.ErrorIs(t, err, functions.ErrSpec)

	_, err = ByTime(f, "date", []string{"missing"}, []functions.Kind{functions.Mean}, Day)
	assert.ErrorIs(t, err, frame.ErrData)

	_, err = ByTime(f, "when", []string{"v"}, []functions.Kind{functions.Mean}, Day)
	assert.ErrorIs(t, err, frame.ErrData)
}

func TestByTimeUnparseableDate(t *testing.T) {
	f := frame.New([]frame.Row{
		{"date": "not a date", "v": 1.0},
	}, "date", "v")

	_, err := ByTime(f, "date", []string{"v"}, []functions.Kind{functions.Mean}, Day)
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrData)
}
