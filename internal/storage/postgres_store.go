package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/apetersen/streaks/internal/habit"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	position INTEGER NOT NULL,
	notify_enabled BOOLEAN NOT NULL DEFAULT FALSE,
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

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Those are rejected; use the environment, .pgpass, or the
// OS keyring instead.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// IsPostgresConnString reports whether the config argument selects the
// postgres backend.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetHabits() (habit.Collection, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return loadHabits(s.db, "$")
}

func (s *PostgresStore) SaveHabits(c habit.Collection) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	return saveHabits(s.db, "$", c)
}

func (s *PostgresStore) GetProfile() (Profile, error) {
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

func (s *PostgresStore) SaveProfile(p Profile) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO profile (key, value) VALUES ('display_name', $1)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, p.DisplayName)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetConfigPath returns the connection string with any userinfo stripped so
// it can be shown in diagnostics without leaking credentials.
func (s *PostgresStore) GetConfigPath() string {
	u, err := url.Parse(s.connStr)
	if err != nil {
		return "postgres"
	}
	u.User = nil
	return u.String()
}
