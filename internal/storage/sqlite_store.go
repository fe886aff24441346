package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/apetersen/streaks/internal/habit"
	"github.com/apetersen/streaks/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	position INTEGER NOT NULL,
	notify_enabled INTEGER NOT NULL DEFAULT 0,
	notify_time TEXT NOT NULL DEFAULT '09:00',
	notify_days TEXT NOT NULL DEFAULT '[0,1,2,3,4,5,6]'
);

CREATE TABLE IF NOT EXISTS completions (
	habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
	day TEXT NOT NULL,
	position INTEGER NOT NULL,
	PRIMARY KEY (habit_id, day)
);

CREATE TABLE IF NOT EXISTS profile (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'streaks init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; running it on load covers databases
	// created by older versions.
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetHabits() (habit.Collection, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return loadHabits(s.db, "?")
}

func (s *SQLiteStore) SaveHabits(c habit.Collection) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	return saveHabits(s.db, "?", c)
}

func (s *SQLiteStore) GetProfile() (Profile, error) {
	if s.db == nil {
		return Profile{}, fmt.Errorf("storage not loaded")
	}

	var name string
	err := s.db.QueryRow(`SELECT value FROM profile WHERE key = 'display_name'`).Scan(&name)
	if err == sql.ErrNoRows {
		return Profile{}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	return Profile{DisplayName: name}, nil
}

func (s *SQLiteStore) SaveProfile(p Profile) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO profile (key, value) VALUES ('display_name', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, p.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// rebind rewrites ? placeholders to the driver's style ($1, $2, ... for
// postgres). Both SQL stores share the snapshot load/save below.
func rebind(style string, query string) string {
	if style == "?" {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

func loadHabits(db *sql.DB, style string) (habit.Collection, error) {
	rows, err := db.Query(rebind(style, `
		SELECT id, name, category, color, created_at, notify_enabled, notify_time, notify_days
		FROM habits ORDER BY position`))
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	habits := habit.Collection{}
	for rows.Next() {
		var h models.Habit
		var createdAt, notifyDays string
		var notifyEnabled bool

		if err := rows.Scan(&h.ID, &h.Name, &h.Category, &h.Color, &createdAt,
			&notifyEnabled, &h.Notifications.Time, &notifyDays); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}

		h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
		}
		h.Notifications.Enabled = notifyEnabled
		if err := json.Unmarshal([]byte(notifyDays), &h.Notifications.Days); err != nil {
			return nil, fmt.Errorf("failed to parse notify_days for habit %s: %w", h.ID, err)
		}
		h.CompletedDates = []string{}

		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	// Attach completion histories in insertion order
	crows, err := db.Query(rebind(style, `
		SELECT habit_id, day FROM completions ORDER BY habit_id, position`))
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer crows.Close()

	byID := make(map[string]int, len(habits))
	for i := range habits {
		byID[habits[i].ID] = i
	}
	for crows.Next() {
		var habitID, day string
		if err := crows.Scan(&habitID, &day); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		if i, ok := byID[habitID]; ok {
			habits[i].CompletedDates = append(habits[i].CompletedDates, day)
		}
	}
	if err := crows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completions: %w", err)
	}

	return habits, nil
}

// saveHabits replaces the stored snapshot wholesale inside a transaction.
// The collection is small and the snapshot is the unit of persistence, so
// replace-all is simpler and safer than diffing.
func saveHabits(db *sql.DB, style string, c habit.Collection) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM completions`); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits`); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	insertHabit := rebind(style, `
		INSERT INTO habits (id, name, category, color, created_at, position, notify_enabled, notify_time, notify_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	insertCompletion := rebind(style, `
		INSERT INTO completions (habit_id, day, position) VALUES (?, ?, ?)`)

	for pos, h := range c {
		days, err := json.Marshal(h.Notifications.Days)
		if err != nil {
			return fmt.Errorf("failed to serialize notify_days: %w", err)
		}
		if _, err := tx.Exec(insertHabit,
			h.ID, h.Name, string(h.Category), h.Color,
			h.CreatedAt.Format(time.RFC3339), pos,
			h.Notifications.Enabled, h.Notifications.Time, string(days)); err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}
		for i, day := range h.CompletedDates {
			if _, err := tx.Exec(insertCompletion, h.ID, day, i); err != nil {
				return fmt.Errorf("failed to insert completion for habit %s: %w", h.ID, err)
			}
		}
	}

	return tx.Commit()
}
