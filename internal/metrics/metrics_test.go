package metrics

import (
	"reflect"
	"testing"
	"time"

	"github.com/apetersen/streaks/internal/calendar"
	"github.com/apetersen/streaks/internal/constants"
	"github.com/apetersen/streaks/internal/habit"
	"github.com/apetersen/streaks/internal/models"
)

var testNow = time.Date(2024, 5, 10, 14, 30, 0, 0, time.Local)

// habitWith builds a habit completed on the given day offsets from testNow
// (0 = today, 1 = yesterday, ...).
func habitWith(offsets ...int) models.Habit {
	h := models.Habit{ID: "h1", Name: "Read", CompletedDates: []string{}}
	for _, off := range offsets {
		h.CompletedDates = append(h.CompletedDates, calendar.DayKey(testNow.AddDate(0, 0, -off)))
	}
	return h
}

func TestCompletedOn(t *testing.T) {
	h := habitWith(0, 2)

	if !CompletedOn(h, testNow) {
		t.Error("CompletedOn() = false for completed day")
	}
	if CompletedOn(h, testNow.AddDate(0, 0, -1)) {
		t.Error("CompletedOn() = true for uncompleted day")
	}
	if !CompletedToday(h, testNow) {
		t.Error("CompletedToday() = false, want true")
	}

	// Membership is keyed on the calendar day, not the moment
	evening := time.Date(2024, 5, 10, 23, 0, 0, 0, time.Local)
	if !CompletedOn(h, evening) {
		t.Error("CompletedOn() = false for same day at different time")
	}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{
			name:    "empty history",
			offsets: nil,
			want:    0,
		},
		{
			name:    "only today",
			offsets: []int{0},
			want:    1,
		},
		{
			name:    "three consecutive days ending today",
			offsets: []int{0, 1, 2},
			want:    3,
		},
		{
			name:    "today not yet done credits run ending yesterday",
			offsets: []int{1, 2, 3},
			want:    3,
		},
		{
			name:    "gap of two days breaks the run",
			offsets: []int{0, 3},
			want:    1,
		},
		{
			name:    "gap two days back stops counting older completions",
			offsets: []int{0, 1, 4, 5, 6},
			want:    2,
		},
		{
			name:    "run broken two days ago yields zero",
			offsets: []int{2, 3, 4},
			want:    0,
		},
		{
			name:    "insertion order does not matter",
			offsets: []int{2, 0, 1},
			want:    3,
		},
		{
			name:    "long unbroken run",
			offsets: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			want:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(habitWith(tt.offsets...), testNow); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakIgnoresMalformedKeys(t *testing.T) {
	h := habitWith(0, 1)
	h.CompletedDates = append(h.CompletedDates, "garbage")

	if got := Streak(h, testNow); got != 2 {
		t.Errorf("Streak() = %d, want 2", got)
	}
}

func TestStreakGrowsByOnePerDay(t *testing.T) {
	h := habitWith(0, 1, 2)

	today := Streak(h, testNow)
	tomorrow := testNow.AddDate(0, 0, 1)
	h.CompletedDates = append(h.CompletedDates, calendar.DayKey(tomorrow))

	if got := Streak(h, tomorrow); got != today+1 {
		t.Errorf("Streak() after one more day = %d, want %d", got, today+1)
	}
}

func TestMonthlyCompletion(t *testing.T) {
	tests := []struct {
		name    string
		days    []int // days of the month that are completed
		now     time.Time
		want    int
	}{
		{
			name: "five of first ten days is 50 percent",
			days: []int{1, 3, 5, 7, 9},
			now:  time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local),
			want: 50,
		},
		{
			name: "no completions",
			days: nil,
			now:  time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local),
			want: 0,
		},
		{
			name: "every day so far",
			days: []int{1, 2, 3},
			now:  time.Date(2024, 5, 3, 12, 0, 0, 0, time.Local),
			want: 100,
		},
		{
			name: "rounds to nearest integer",
			days: []int{1},
			now:  time.Date(2024, 5, 3, 12, 0, 0, 0, time.Local),
			want: 33,
		},
		{
			name: "rounds up at two thirds",
			days: []int{1, 2},
			now:  time.Date(2024, 5, 3, 12, 0, 0, 0, time.Local),
			want: 67,
		},
		{
			name: "future days in month are not counted against the rate",
			days: []int{1, 2, 20},
			now:  time.Date(2024, 5, 2, 12, 0, 0, 0, time.Local),
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := models.Habit{ID: "h1", CompletedDates: []string{}}
			for _, day := range tt.days {
				d := time.Date(tt.now.Year(), tt.now.Month(), day, 0, 0, 0, 0, time.Local)
				h.CompletedDates = append(h.CompletedDates, calendar.DayKey(d))
			}
			if got := MonthlyCompletion(h, tt.now); got != tt.want {
				t.Errorf("MonthlyCompletion() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	t.Run("empty collection is all zeros", func(t *testing.T) {
		got := Collect(habit.Collection{}, testNow)
		want := Stats{}
		if got != want {
			t.Errorf("Collect() = %+v, want %+v", got, want)
		}
	})

	t.Run("aggregates across habits", func(t *testing.T) {
		a := habitWith(0, 1, 2)
		b := habitWith(1, 3)
		b.ID = "h2"
		c := habit.Collection{a, b}

		got := Collect(c, testNow)
		if got.Active != 2 {
			t.Errorf("Active = %d, want 2", got.Active)
		}
		if got.DoneToday != 1 {
			t.Errorf("DoneToday = %d, want 1", got.DoneToday)
		}
		if got.BestStreak != 3 {
			t.Errorf("BestStreak = %d, want 3", got.BestStreak)
		}
		if got.TotalCompletions != 5 {
			t.Errorf("TotalCompletions = %d, want 5", got.TotalCompletions)
		}
	})
}

func TestAchievements(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  []constants.Badge
	}{
		{
			name:  "nothing unlocked",
			stats: Stats{},
			want:  nil,
		},
		{
			name:  "first completion",
			stats: Stats{TotalCompletions: 1},
			want:  []constants.Badge{constants.BadgeFirstStep},
		},
		{
			name:  "nine completions stays below ten club",
			stats: Stats{TotalCompletions: 9},
			want:  []constants.Badge{constants.BadgeFirstStep},
		},
		{
			name:  "ten completions unlocks ten club",
			stats: Stats{TotalCompletions: 10},
			want:  []constants.Badge{constants.BadgeFirstStep, constants.BadgeTenClub},
		},
		{
			name:  "streak thresholds are independent of completions",
			stats: Stats{BestStreak: 7},
			want:  []constants.Badge{constants.BadgeStreak3, constants.BadgeStreak7},
		},
		{
			name:  "habit count unlocks collector",
			stats: Stats{Active: 5},
			want:  []constants.Badge{constants.BadgeCollector},
		},
		{
			name: "several unlock simultaneously",
			stats: Stats{
				Active:           5,
				BestStreak:       30,
				TotalCompletions: 100,
			},
			want: []constants.Badge{
				constants.BadgeFirstStep, constants.BadgeTenClub,
				constants.BadgeFiftyClub, constants.BadgeCentury,
				constants.BadgeStreak3, constants.BadgeStreak7,
				constants.BadgeStreak30, constants.BadgeCollector,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Achievements(tt.stats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Achievements() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Badges are recomputed from current stats: dropping below a threshold
// removes the badge again.
func TestAchievementsAreNotSticky(t *testing.T) {
	unlocked := Achievements(Stats{TotalCompletions: 10})
	if !reflect.DeepEqual(unlocked, []constants.Badge{constants.BadgeFirstStep, constants.BadgeTenClub}) {
		t.Fatalf("Achievements() = %v", unlocked)
	}

	relocked := Achievements(Stats{TotalCompletions: 9})
	for _, b := range relocked {
		if b == constants.BadgeTenClub {
			t.Error("ten-club badge still present after stat dropped below threshold")
		}
	}
}
