package timex

import (
	"testing"
	"time"
)

func TestCalendarBoundaries(t *testing.T) {
	// 2022-08-17 is a Wednesday
	ref := time.Date(2022, 8, 17, 13, 45, 12, 0, time.UTC)

	tests := []struct {
		name string
		fn   func(time.Time) time.Time
		want time.Time
	}{
		{"day", StartOfDay, time.Date(2022, 8, 17, 0, 0, 0, 0, time.UTC)},
		{"week", StartOfWeek, time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC)},
		{"month", StartOfMonth, time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"month end", EndOfMonth, time.Date(2022, 8, 31, 0, 0, 0, 0, time.UTC)},
		{"quarter", StartOfQuarter, time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"year", StartOfYear, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(ref); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday
	sunday := time.Date(2022, 8, 21, 8, 0, 0, 0, time.UTC)
	want := time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sunday); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestStartOfWeekOnMonday(t *testing.T) {
	monday := time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC)
	if got := StartOfWeek(monday); !got.Equal(monday) {
		t.Errorf("got %v, want %v", got, monday)
	}
}

func TestEndOfMonthFebruary(t *testing.T) {
	leap := time.Date(2024, 2, 10, 6, 0, 0, 0, time.UTC)
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if got := EndOfMonth(leap); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
