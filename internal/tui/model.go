package tui

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/apetersen/streaks/internal/constants"
	"github.com/apetersen/streaks/internal/habit"
	"github.com/apetersen/streaks/internal/logger"
	"github.com/apetersen/streaks/internal/storage"
	"github.com/apetersen/streaks/internal/tui/components/habitlist"
)

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateHabits SessionState = iota
	StateStats
	StateAddHabit
	StateNotify
	StateConfirmDelete
)

type HabitFormModel struct {
	Name     string
	Category string
	Color    string
}

type NotifyFormModel struct {
	Enabled bool
	Time    string
	Days    string
}

type Model struct {
	store         storage.Provider
	habits        habit.Collection
	state         SessionState
	keys          KeyMap
	help          help.Model
	habitList     habitlist.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	notifyForm    *NotifyFormModel
	notifyHabitID string
	toDeleteID    string
	message       string
	formError     string
	quitting      bool
	width         int
	height        int
}

func NewModel(store storage.Provider) Model {
	habits, err := store.GetHabits()
	if err != nil {
		logger.Warn("Failed to load habits", "error", err)
		habits = habit.Collection{}
	}

	now := time.Now()
	return Model{
		store:     store,
		habits:    habits,
		state:     StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: habitlist.New(habits, now, 0, 0),
		message:   constants.PickMessage(rand.New(rand.NewSource(now.UnixNano()))),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// setHabits installs a new collection snapshot, persists it, and refreshes
// the list. The previous snapshot is kept when persistence fails so the
// screen never shows unsaved state.
func (m *Model) setHabits(habits habit.Collection) {
	if err := m.store.SaveHabits(habits); err != nil {
		logger.Error("Failed to save habits", "error", err)
		return
	}
	m.habits = habits
	m.habitList.SetHabits(habits, time.Now())
}
