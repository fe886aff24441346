package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apetersen/streaks/internal/habit"
	"github.com/apetersen/streaks/internal/logger"
)

// state is the persisted file layout: a version marker, the user profile,
// and the serialized habit collection.
type state struct {
	Version int              `json:"version"`
	Profile Profile          `json:"profile"`
	Habits  habit.Collection `json:"habits"`
}

type JSONStore struct {
	path  string
	state *state
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.state = &state{
		Version: 1,
		Habits:  habit.Collection{},
	}

	return s.save()
}

// Load reads the state file. A missing or unparseable file degrades to an
// empty state rather than failing: the app always starts with a usable
// collection.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = &state{Version: 1, Habits: habit.Collection{}}
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.state = &state{}
	if err := json.Unmarshal(data, s.state); err != nil {
		logger.Warn("Corrupt state file, starting empty", "path", s.path, "error", err)
		s.state = &state{Version: 1, Habits: habit.Collection{}}
		return nil
	}

	if s.state.Habits == nil {
		s.state.Habits = habit.Collection{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetHabits() (habit.Collection, error) {
	if s.state == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.state.Habits, nil
}

func (s *JSONStore) SaveHabits(c habit.Collection) error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	if c == nil {
		c = habit.Collection{}
	}
	s.state.Habits = c
	return s.save()
}

func (s *JSONStore) GetProfile() (Profile, error) {
	if s.state == nil {
		return Profile{}, fmt.Errorf("storage not loaded")
	}
	return s.state.Profile, nil
}

func (s *JSONStore) SaveProfile(p Profile) error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.state.Profile = p
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple streaks processes against the same path is not
//     supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
