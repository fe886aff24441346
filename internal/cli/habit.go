package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/apetersen/streaks/internal/calendar"
	"github.com/apetersen/streaks/internal/constants"
	"github.com/apetersen/streaks/internal/habit"
	"github.com/apetersen/streaks/internal/metrics"
	"github.com/apetersen/streaks/internal/models"
)

type AddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Category string `help:"Category: study, health, sport, work, personal." default:"personal"`
	Color    string `help:"Display color identifier." default:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	// The core allows duplicate names; the CLI addresses habits by name, so
	// refuse them here.
	if habits.FindByName(c.Name) != nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	newHabits, created := habit.Add(habits, c.Name, models.Category(strings.ToLower(c.Category)), c.Color, ctx.Clock())
	if created == nil {
		return fmt.Errorf("habit name cannot be blank")
	}

	if err := ctx.Store.SaveHabits(newHabits); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", created.Name, created.Category)
	return nil
}

type RmCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *RmCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	h := habits.FindByName(c.Name)
	if h == nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := ctx.Store.SaveHabits(habit.Delete(habits, h.ID)); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Name)
	return nil
}

type ListCmd struct {
	Category string `help:"Show only habits in this category."`
}

func (c *ListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now := ctx.Clock()
	for _, h := range habits {
		if c.Category != "" && h.Category != models.Category(strings.ToLower(c.Category)) {
			continue
		}
		status := "[ ]"
		if metrics.CompletedToday(h, now) {
			status = "[x]"
		}
		fmt.Printf("%s %-24s %-10s streak %d, month %d%%\n",
			status, h.Name, h.Category, metrics.Streak(h, now), metrics.MonthlyCompletion(h, now))
	}

	return nil
}

type DoneCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DoneCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	h := habits.FindByName(c.Name)
	if h == nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	day := ctx.Clock()
	if c.Date != "" {
		day, err = time.ParseInLocation(constants.DateFormat, c.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
	}

	wasDone := metrics.CompletedOn(*h, day)
	if err := ctx.Store.SaveHabits(habit.Toggle(habits, h.ID, day)); err != nil {
		return err
	}

	key := calendar.DayKey(day)
	if wasDone {
		fmt.Printf("Unmarked habit %q for %s\n", c.Name, key)
	} else {
		fmt.Printf("Marked habit %q for %s\n", c.Name, key)
	}
	return nil
}

type LogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *LogCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	selected := habits
	if c.Habit != "" {
		h := habits.FindByName(c.Habit)
		if h == nil {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
		selected = habit.Collection{*h}
	}

	days := calendar.LastNDays(ctx.Clock(), c.Days)

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)

	// Header with dates
	const maxNameLen = 20
	fmt.Print(strings.Repeat(" ", maxNameLen))
	for _, day := range days {
		fmt.Printf(" %5s", day.Format("01/02"))
	}
	fmt.Println()

	fmt.Print(strings.Repeat("-", maxNameLen))
	for range days {
		fmt.Print("------")
	}
	fmt.Println()

	for _, h := range selected {
		name := h.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		} else {
			name = name + strings.Repeat(" ", maxNameLen-len(name))
		}
		fmt.Print(name)

		for _, day := range days {
			if metrics.CompletedOn(h, day) {
				fmt.Print("  x   ")
			} else {
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}

	return nil
}

type NotifyCmd struct {
	Name    string `arg:"" help:"Habit name."`
	Enable  bool   `help:"Enable reminders." xor:"state"`
	Disable bool   `help:"Disable reminders." xor:"state"`
	Time    string `help:"Reminder time (HH:MM)." default:""`
	Days    string `help:"Comma-separated weekdays (mon,wed,fri or 1,3,5)." default:""`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	h := habits.FindByName(c.Name)
	if h == nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	prefs := h.Notifications
	if c.Enable {
		prefs.Enabled = true
	}
	if c.Disable {
		prefs.Enabled = false
	}
	if c.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, c.Time); err != nil {
			return fmt.Errorf("invalid time format: %s (expected HH:MM)", c.Time)
		}
		prefs.Time = c.Time
	}
	if c.Days != "" {
		days, err := ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		prefs.Days = days
	}

	if err := ctx.Store.SaveHabits(habit.SetNotifications(habits, h.ID, prefs)); err != nil {
		return err
	}

	state := "off"
	if prefs.Enabled {
		state = "on"
	}
	fmt.Printf("Reminders for %q: %s at %s (%s)\n", c.Name, state, prefs.Time, FormatWeekdays(prefs.Days))
	return nil
}
