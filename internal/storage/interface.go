package storage

import "github.com/apetersen/streaks/internal/habit"

// Profile holds informational user data persisted alongside the habits.
// Nothing in the core consumes it.
type Profile struct {
	DisplayName string `json:"display_name"`
}

// Provider persists the habit collection and profile. Implementations load
// and save whole snapshots: the collection is the unit of persistence, and
// every mutation in the presentation layer is followed by a SaveHabits of
// the new snapshot.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	GetHabits() (habit.Collection, error)
	SaveHabits(habit.Collection) error

	// Profile
	GetProfile() (Profile, error)
	SaveProfile(Profile) error

	// Utils
	GetConfigPath() string
}
