// Package habit holds the canonical habit collection and its pure
// mutation operations. Every operation returns a new collection and leaves
// its input untouched; the caller decides when the new snapshot becomes
// visible and when it is persisted.
package habit

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apetersen/streaks/internal/calendar"
	"github.com/apetersen/streaks/internal/models"
)

// Collection is an ordered sequence of habits. New habits are appended, so
// insertion order is preserved across mutations and persistence round-trips.
type Collection []models.Habit

// clone copies the collection and the completion slice of each habit so
// callers can never observe shared backing arrays.
func (c Collection) clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	for i := range out {
		if out[i].CompletedDates != nil {
			dates := make([]string, len(out[i].CompletedDates))
			copy(dates, out[i].CompletedDates)
			out[i].CompletedDates = dates
		}
	}
	return out
}

// Find returns the habit with the given id, or nil.
func (c Collection) Find(id string) *models.Habit {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// FindByName returns the first habit with the given name, or nil.
func (c Collection) FindByName(name string) *models.Habit {
	for i := range c {
		if c[i].Name == name {
			return &c[i]
		}
	}
	return nil
}

// Add appends a new habit and returns the new collection together with the
// created habit. A name that trims to empty is rejected: the original
// collection is returned unchanged and the habit is nil. An empty or unknown
// category falls back to personal.
func Add(c Collection, name string, category models.Category, color string, now time.Time) (Collection, *models.Habit) {
	if strings.TrimSpace(name) == "" {
		return c, nil
	}
	if !category.Valid() {
		category = models.CategoryPersonal
	}

	h := models.Habit{
		ID:             uuid.New().String(),
		Name:           name,
		Category:       category,
		Color:          color,
		CompletedDates: []string{},
		CreatedAt:      now,
		Notifications:  models.DefaultNotifications(),
	}

	out := c.clone()
	out = append(out, h)
	return out, &out[len(out)-1]
}

// Delete removes the habit with the given id. Unknown ids are a no-op, not
// an error.
func Delete(c Collection, id string) Collection {
	if c.Find(id) == nil {
		return c
	}
	out := make(Collection, 0, len(c)-1)
	for _, h := range c.clone() {
		if h.ID != id {
			out = append(out, h)
		}
	}
	return out
}

// Toggle flips completion of the habit's calendar day: the day key is added
// when absent and removed when present, so applying it twice with the same
// day restores the original history. Unknown ids are a no-op.
func Toggle(c Collection, id string, date time.Time) Collection {
	if c.Find(id) == nil {
		return c
	}

	key := calendar.DayKey(date)
	out := c.clone()
	for i := range out {
		if out[i].ID != id {
			continue
		}
		dates := out[i].CompletedDates
		removed := dates[:0]
		found := false
		for _, d := range dates {
			if d == key {
				found = true
				continue
			}
			removed = append(removed, d)
		}
		if found {
			out[i].CompletedDates = removed
		} else {
			out[i].CompletedDates = append(dates, key)
		}
	}
	return out
}

// ToggleToday is Toggle for now's calendar day.
func ToggleToday(c Collection, id string, now time.Time) Collection {
	return Toggle(c, id, now)
}

// SetNotifications replaces the habit's notification preference wholesale.
// Unknown ids are a no-op.
func SetNotifications(c Collection, id string, n models.Notifications) Collection {
	if c.Find(id) == nil {
		return c
	}
	out := c.clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Notifications = n
		}
	}
	return out
}

// Marshal serializes the collection for persistence.
func Marshal(c Collection) ([]byte, error) {
	if c == nil {
		c = Collection{}
	}
	return json.Marshal(c)
}

// Unmarshal restores a collection from its persisted form. Absent or corrupt
// input degrades to an empty collection; the load path never fails.
func Unmarshal(data []byte) Collection {
	if len(data) == 0 {
		return Collection{}
	}
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return Collection{}
	}
	if c == nil {
		c = Collection{}
	}
	for i := range c {
		if c[i].CompletedDates == nil {
			c[i].CompletedDates = []string{}
		}
	}
	return c
}
