package models

import "time"

// Category groups habits for display and filtering
type Category string

const (
	CategoryStudy    Category = "study"
	CategoryHealth   Category = "health"
	CategorySport    Category = "sport"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
)

// Categories lists every valid category in display order
var Categories = []Category{
	CategoryStudy,
	CategoryHealth,
	CategorySport,
	CategoryWork,
	CategoryPersonal,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Notifications holds a habit's reminder preference. The application only
// stores this; no scheduling or delivery happens here.
type Notifications struct {
	Enabled bool           `json:"enabled"`
	Time    string         `json:"time"` // HH:MM
	Days    []time.Weekday `json:"days"`
}

// DefaultNotifications returns the preference assigned to new habits:
// disabled, 09:00, every day of the week.
func DefaultNotifications() Notifications {
	return Notifications{
		Enabled: false,
		Time:    "09:00",
		Days: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
	}
}

// Habit represents a recurring practice and its completion history.
// CompletedDates holds day keys (YYYY-MM-DD) in insertion order with no
// duplicates; a day is either present (completed) or absent.
type Habit struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Category       Category      `json:"category"`
	Color          string        `json:"color,omitempty"`
	CompletedDates []string      `json:"completed_dates"`
	CreatedAt      time.Time     `json:"created_at"`
	Notifications  Notifications `json:"notifications"`
}
