package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/apetersen/streaks/internal/cli"
	"github.com/apetersen/streaks/internal/constants"
	"github.com/apetersen/streaks/internal/habit"
	"github.com/apetersen/streaks/internal/models"
	"github.com/apetersen/streaks/internal/tui/components/habitlist"
)

func newHabitForm(fm *HabitFormModel) *huh.Form {
	categories := make([]huh.Option[string], len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = huh.NewOption(string(c), string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Color (optional)").
				Value(&fm.Color),
		),
	)
}

func newNotifyForm(fm *NotifyFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reminders enabled?").
				Value(&fm.Enabled),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time),
			huh.NewInput().
				Title("Days (mon,wed,fri or blank for every day)").
				Value(&fm.Days),
		),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Add Habit State
	if m.state == StateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = StateHabits
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			newHabits, created := habit.Add(m.habits, m.habitForm.Name,
				models.Category(m.habitForm.Category), m.habitForm.Color, time.Now())
			if created == nil {
				// Blank name; keep the user in the form to correct it
				m.formError = "Habit name cannot be blank"
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.setHabits(newHabits)
			m.formError = ""
			m.state = StateHabits
		case huh.StateAborted:
			m.formError = ""
			m.state = StateHabits
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Notification Preference State
	if m.state == StateNotify {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = StateHabits
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			prefs := models.DefaultNotifications()
			prefs.Enabled = m.notifyForm.Enabled
			if m.notifyForm.Time != "" {
				if _, err := time.Parse(constants.TimeFormat, m.notifyForm.Time); err != nil {
					m.formError = "Invalid time: expected HH:MM"
					m.form.State = huh.StateNormal
					return m, tea.Batch(cmds...)
				}
				prefs.Time = m.notifyForm.Time
			}
			if m.notifyForm.Days != "" {
				days, err := cli.ParseWeekdays(m.notifyForm.Days)
				if err != nil {
					m.formError = "Invalid days: use names like mon,wed or numbers 0-6"
					m.form.State = huh.StateNormal
					return m, tea.Batch(cmds...)
				}
				prefs.Days = days
			}
			m.setHabits(habit.SetNotifications(m.habits, m.notifyHabitID, prefs))
			m.formError = ""
			m.state = StateHabits
		case huh.StateAborted:
			m.formError = ""
			m.state = StateHabits
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				m.setHabits(habit.Delete(m.habits, m.toDeleteID))
				m.toDeleteID = ""
				m.state = StateHabits
			case "n", "N", "esc", "q":
				m.toDeleteID = ""
				m.state = StateHabits
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.habitList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Category: string(models.CategoryPersonal)}
		m.form = newHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habitlist.ToggleHabitMsg:
		m.setHabits(habit.ToggleToday(m.habits, msg.ID, time.Now()))
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.toDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case habitlist.NotifyHabitMsg:
		h := m.habits.Find(msg.ID)
		if h == nil {
			return m, nil
		}
		m.notifyHabitID = msg.ID
		m.notifyForm = &NotifyFormModel{
			Enabled: h.Notifications.Enabled,
			Time:    h.Notifications.Time,
			Days:    cli.FormatWeekdays(h.Notifications.Days),
		}
		if m.notifyForm.Days == "every day" {
			m.notifyForm.Days = ""
		}
		m.form = newNotifyForm(m.notifyForm)
		m.state = StateNotify
		return m, m.form.Init()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.state == StateHabits && m.habitList.Filtering() {
				break
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			if m.state == StateHabits {
				m.state = StateStats
			} else {
				m.state = StateHabits
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	if m.state == StateHabits {
		var cmd tea.Cmd
		m.habitList, cmd = m.habitList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
