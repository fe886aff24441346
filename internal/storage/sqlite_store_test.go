package storage

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/apetersen/streaks/internal/habit"
	"github.com/apetersen/streaks/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "streaks.db")
	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreLoadRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "streaks.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on missing database did not error")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	c := habit.Collection{}
	c, first := habit.Add(c, "Read", models.CategoryStudy, "blue", testNow)
	c, _ = habit.Add(c, "Run", models.CategorySport, "", testNow)
	c, third := habit.Add(c, "Meditate", models.CategoryHealth, "", testNow)
	c = habit.Toggle(c, first.ID, testNow)
	c = habit.Toggle(c, first.ID, testNow.AddDate(0, 0, -2))
	c = habit.Toggle(c, first.ID, testNow.AddDate(0, 0, -1))
	c = habit.SetNotifications(c, third.ID, models.Notifications{
		Enabled: true,
		Time:    "07:15",
		Days:    []time.Weekday{time.Saturday, time.Sunday},
	})

	if err := store.SaveHabits(c); err != nil {
		t.Fatalf("SaveHabits() error = %v", err)
	}
	got, err := store.GetHabits()
	if err != nil {
		t.Fatalf("GetHabits() error = %v", err)
	}

	if len(got) != len(c) {
		t.Fatalf("GetHabits() returned %d habits, want %d", len(got), len(c))
	}
	for i := range c {
		want, have := c[i], got[i]
		if have.ID != want.ID || have.Name != want.Name || have.Category != want.Category || have.Color != want.Color {
			t.Errorf("habit %d = %+v, want %+v", i, have, want)
		}
		if !have.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("habit %d created_at = %v, want %v", i, have.CreatedAt, want.CreatedAt)
		}
		if !reflect.DeepEqual(have.CompletedDates, want.CompletedDates) {
			t.Errorf("habit %d completed dates = %v, want %v", i, have.CompletedDates, want.CompletedDates)
		}
		if !reflect.DeepEqual(have.Notifications, want.Notifications) {
			t.Errorf("habit %d notifications = %+v, want %+v", i, have.Notifications, want.Notifications)
		}
	}
}

func TestSQLiteStoreSaveReplacesSnapshot(t *testing.T) {
	store := newTestSQLiteStore(t)

	c := habit.Collection{}
	c, h := habit.Add(c, "Read", models.CategoryStudy, "", testNow)
	c = habit.Toggle(c, h.ID, testNow)
	if err := store.SaveHabits(c); err != nil {
		t.Fatalf("SaveHabits() error = %v", err)
	}

	c = habit.Delete(c, h.ID)
	c, _ = habit.Add(c, "Run", models.CategorySport, "", testNow)
	if err := store.SaveHabits(c); err != nil {
		t.Fatalf("SaveHabits() error = %v", err)
	}

	got, err := store.GetHabits()
	if err != nil {
		t.Fatalf("GetHabits() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Run" {
		t.Errorf("GetHabits() = %+v, want only Run", got)
	}
	if len(got[0].CompletedDates) != 0 {
		t.Errorf("stale completions survived replace: %v", got[0].CompletedDates)
	}
}

func TestSQLiteStoreEmptySnapshot(t *testing.T) {
	store := newTestSQLiteStore(t)

	if err := store.SaveHabits(habit.Collection{}); err != nil {
		t.Fatalf("SaveHabits() error = %v", err)
	}
	got, err := store.GetHabits()
	if err != nil {
		t.Fatalf("GetHabits() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetHabits() returned nil collection")
	}
	if len(got) != 0 {
		t.Errorf("GetHabits() = %+v, want empty", got)
	}
}

func TestSQLiteStoreProfile(t *testing.T) {
	store := newTestSQLiteStore(t)

	p, err := store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if p.DisplayName != "" {
		t.Errorf("fresh profile display name = %q, want empty", p.DisplayName)
	}

	if err := store.SaveProfile(Profile{DisplayName: "Alex"}); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := store.SaveProfile(Profile{DisplayName: "Sam"}); err != nil {
		t.Fatalf("SaveProfile() upsert error = %v", err)
	}

	p, err = store.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if p.DisplayName != "Sam" {
		t.Errorf("display name = %q, want Sam", p.DisplayName)
	}
}
