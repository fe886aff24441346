package calendar

import (
	"testing"
	"time"
)

func TestDayKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "midnight",
			in:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.Local),
			want: "2024-05-15",
		},
		{
			name: "late evening same day",
			in:   time.Date(2024, 5, 15, 23, 59, 59, 0, time.Local),
			want: "2024-05-15",
		},
		{
			name: "single digit month and day are padded",
			in:   time.Date(2024, 1, 2, 8, 0, 0, 0, time.Local),
			want: "2024-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayKey(tt.in); got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 5, 15, 6, 0, 0, 0, time.Local)
	evening := time.Date(2024, 5, 15, 22, 0, 0, 0, time.Local)
	nextDay := time.Date(2024, 5, 16, 0, 0, 0, 0, time.Local)

	if !SameDay(morning, evening) {
		t.Error("SameDay() = false for two times on the same day")
	}
	if SameDay(evening, nextDay) {
		t.Error("SameDay() = true across midnight")
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		d    time.Time
		want int
	}{
		{
			name: "same day, earlier time",
			d:    time.Date(2024, 5, 15, 1, 0, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "same day, later time",
			d:    time.Date(2024, 5, 15, 23, 0, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "yesterday late evening is still one day",
			d:    time.Date(2024, 5, 14, 23, 59, 0, 0, time.Local),
			want: 1,
		},
		{
			name: "three days ago",
			d:    time.Date(2024, 5, 12, 9, 0, 0, 0, time.Local),
			want: 3,
		},
		{
			name: "across month boundary",
			d:    time.Date(2024, 4, 30, 12, 0, 0, 0, time.Local),
			want: 15,
		},
		{
			name: "tomorrow is negative",
			d:    time.Date(2024, 5, 16, 0, 0, 0, 0, time.Local),
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSince(now, tt.d); got != tt.want {
				t.Errorf("DaysSince() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{
			name: "may has 31 days",
			in:   time.Date(2024, 5, 15, 12, 0, 0, 0, time.Local),
			want: 31,
		},
		{
			name: "april has 30 days",
			in:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local),
			want: 30,
		},
		{
			name: "february in a leap year has 29 days",
			in:   time.Date(2024, 2, 29, 12, 0, 0, 0, time.Local),
			want: 29,
		},
		{
			name: "february in a non-leap year has 28 days",
			in:   time.Date(2023, 2, 10, 12, 0, 0, 0, time.Local),
			want: 28,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := DaysInMonth(tt.in)
			if len(days) != tt.want {
				t.Fatalf("DaysInMonth() returned %d days, want %d", len(days), tt.want)
			}
			for i, d := range days {
				if d.Day() != i+1 {
					t.Errorf("day at index %d = %d, want %d", i, d.Day(), i+1)
				}
				if d.Month() != tt.in.Month() {
					t.Errorf("day at index %d has month %v, want %v", i, d.Month(), tt.in.Month())
				}
			}
		})
	}
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.Local)

	days := LastNDays(now, 7)
	if len(days) != 7 {
		t.Fatalf("LastNDays() returned %d days, want 7", len(days))
	}
	if got := DayKey(days[0]); got != "2024-05-09" {
		t.Errorf("oldest day = %s, want 2024-05-09", got)
	}
	if got := DayKey(days[6]); got != "2024-05-15" {
		t.Errorf("newest day = %s, want 2024-05-15", got)
	}
	for i := 1; i < len(days); i++ {
		if DaysSince(days[i], days[i-1]) != 1 {
			t.Errorf("days %d and %d are not consecutive", i-1, i)
		}
	}
}
