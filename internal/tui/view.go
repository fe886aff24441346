package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/apetersen/streaks/internal/constants"
	"github.com/apetersen/streaks/internal/metrics"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateHabits:
		content = docStyle.Render(m.habitList.View())
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateAddHabit, StateNotify:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	// Form and confirm states belong to the Habits tab
	active := 0
	if m.state == StateStats {
		active = 1
	}

	var tabs []string
	for i, title := range []string{"Habits", "Stats"} {
		if i == active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewForm() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.formError), view)
	}
	return view
}

func (m Model) viewStats() string {
	now := time.Now()
	stats := metrics.Collect(m.habits, now)

	var b strings.Builder
	row := func(label string, value string) {
		b.WriteString(statLabelStyle.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(statValueStyle.Render(value))
		b.WriteString("\n")
	}

	row("Habits", fmt.Sprintf("%d", stats.Active))
	row("Done today", fmt.Sprintf("%d/%d", stats.DoneToday, stats.Active))
	row("Best streak", fmt.Sprintf("%d", stats.BestStreak))
	row("Completions", fmt.Sprintf("%d", stats.TotalCompletions))
	b.WriteString("\n")

	badges := metrics.Achievements(stats)
	if len(badges) == 0 {
		b.WriteString(statLabelStyle.Render("No badges unlocked yet."))
		b.WriteString("\n")
	} else {
		b.WriteString("Badges:\n")
		for _, badge := range badges {
			b.WriteString(badgeStyle.Render("  ★ " + constants.BadgeTitles[badge]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(messageStyle.Render(m.message))

	return b.String()
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if h := m.habits.Find(m.toDeleteID); h != nil {
		name = h.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and its history?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
