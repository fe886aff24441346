// Package calendar provides pure date helpers for working with local
// calendar days. All functions use the host's local calendar; time-of-day
// and zone offsets are discarded when comparing days.
package calendar

import (
	"math"
	"time"

	"github.com/apetersen/streaks/internal/constants"
)

// DayKey returns the canonical key for t's local calendar day (YYYY-MM-DD).
// Two times on the same local day always produce equal keys.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysSince returns the number of whole calendar days from d's day up to
// now's day. Same day yields 0, yesterday yields 1. The count is taken on
// day boundaries and rounded so DST transitions (23h/25h days) cannot skew it.
func DaysSince(now, d time.Time) int {
	return int(math.Round(startOfDay(now).Sub(startOfDay(d)).Hours() / 24))
}

// DaysInMonth returns one time.Time per calendar day of t's month, at local
// midnight, in ascending order. The slice is recomputed on every call so the
// result stays correct across a month rollover in a long-lived process.
func DaysInMonth(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// LastNDays returns the n local calendar days ending with now's day, oldest
// first, each at local midnight.
func LastNDays(now time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, startOfDay(now).AddDate(0, 0, -i))
	}
	return days
}
