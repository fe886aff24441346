// Package metrics derives progress figures from completion histories.
// Everything here is a pure function of a habit (or collection) and the
// current moment; nothing mutates and nothing is cached between calls.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/apetersen/streaks/internal/calendar"
	"github.com/apetersen/streaks/internal/constants"
	"github.com/apetersen/streaks/internal/habit"
	"github.com/apetersen/streaks/internal/models"
)

// Stats aggregates a collection at a single moment.
type Stats struct {
	Active           int `json:"active"`
	DoneToday        int `json:"done_today"`
	BestStreak       int `json:"best_streak"`
	TotalCompletions int `json:"total_completions"`
}

// CompletedOn reports whether the habit was completed on t's calendar day.
func CompletedOn(h models.Habit, t time.Time) bool {
	key := calendar.DayKey(t)
	for _, d := range h.CompletedDates {
		if d == key {
			return true
		}
	}
	return false
}

// CompletedToday is CompletedOn for now's calendar day.
func CompletedToday(h models.Habit, now time.Time) bool {
	return CompletedOn(h, now)
}

// Streak counts consecutive completed days ending at today or, when today is
// not yet completed, at yesterday. Each completed day is measured by its
// whole-day distance from now; the scan walks distances 0, 1, 2, ... and
// stops at the first gap. Older completions beyond a gap never count.
func Streak(h models.Habit, now time.Time) int {
	if len(h.CompletedDates) == 0 {
		return 0
	}

	diffs := make([]int, 0, len(h.CompletedDates))
	for _, key := range h.CompletedDates {
		d, err := time.ParseInLocation(constants.DateFormat, key, now.Location())
		if err != nil {
			continue
		}
		diffs = append(diffs, calendar.DaysSince(now, d))
	}
	sort.Ints(diffs)

	streak := 0
	expected := 0
	for _, diff := range diffs {
		if diff != expected {
			break
		}
		streak++
		expected++
	}
	return streak
}

// MonthlyCompletion returns the habit's completion rate for the current
// month as a rounded percentage, counting only days 1 through today.
func MonthlyCompletion(h models.Habit, now time.Time) int {
	daysPassed := now.Day()
	if daysPassed == 0 {
		return 0
	}

	completed := 0
	for _, day := range calendar.DaysInMonth(now) {
		if day.Day() > daysPassed {
			break
		}
		if CompletedOn(h, day) {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(daysPassed) * 100))
}

// TotalCompletions counts every completed day the habit has recorded.
func TotalCompletions(h models.Habit) int {
	return len(h.CompletedDates)
}

// Collect computes the aggregate stats for a collection. An empty collection
// yields all zeros.
func Collect(c habit.Collection, now time.Time) Stats {
	s := Stats{Active: len(c)}
	for _, h := range c {
		if CompletedToday(h, now) {
			s.DoneToday++
		}
		if streak := Streak(h, now); streak > s.BestStreak {
			s.BestStreak = streak
		}
		s.TotalCompletions += len(h.CompletedDates)
	}
	return s
}

// badgeRule pairs a badge with the stat threshold that unlocks it.
type badgeRule struct {
	badge constants.Badge
	stat  func(Stats) int
	min   int
}

var badgeRules = []badgeRule{
	{constants.BadgeFirstStep, func(s Stats) int { return s.TotalCompletions }, 1},
	{constants.BadgeTenClub, func(s Stats) int { return s.TotalCompletions }, 10},
	{constants.BadgeFiftyClub, func(s Stats) int { return s.TotalCompletions }, 50},
	{constants.BadgeCentury, func(s Stats) int { return s.TotalCompletions }, 100},
	{constants.BadgeStreak3, func(s Stats) int { return s.BestStreak }, 3},
	{constants.BadgeStreak7, func(s Stats) int { return s.BestStreak }, 7},
	{constants.BadgeStreak30, func(s Stats) int { return s.BestStreak }, 30},
	{constants.BadgeCollector, func(s Stats) int { return s.Active }, 5},
}

// Achievements returns the badges unlocked by the given stats, in rule
// order. Thresholds are independent, so several can unlock at once. Badges
// are recomputed from current stats on every call: deleting completions can
// make a badge disappear again, which is the intended behavior.
func Achievements(s Stats) []constants.Badge {
	var badges []constants.Badge
	for _, rule := range badgeRules {
		if rule.stat(s) >= rule.min {
			badges = append(badges, rule.badge)
		}
	}
	return badges
}
