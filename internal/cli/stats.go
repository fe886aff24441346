package cli

import (
	"fmt"
	"math/rand"

	"github.com/apetersen/streaks/internal/constants"
	"github.com/apetersen/streaks/internal/metrics"
	"github.com/apetersen/streaks/internal/storage"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	now := ctx.Clock()
	stats := metrics.Collect(habits, now)

	fmt.Printf("Habits:          %d\n", stats.Active)
	fmt.Printf("Done today:      %d/%d\n", stats.DoneToday, stats.Active)
	fmt.Printf("Best streak:     %d\n", stats.BestStreak)
	fmt.Printf("Completions:     %d\n", stats.TotalCompletions)

	if len(habits) > 0 {
		fmt.Println()
		for _, h := range habits {
			fmt.Printf("  %-24s streak %2d   month %3d%%   total %d\n",
				h.Name, metrics.Streak(h, now), metrics.MonthlyCompletion(h, now), metrics.TotalCompletions(h))
		}
	}

	return nil
}

type BadgesCmd struct{}

func (c *BadgesCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}

	badges := metrics.Achievements(metrics.Collect(habits, ctx.Clock()))
	if len(badges) == 0 {
		fmt.Println("No badges unlocked yet. Complete a habit to earn your first one.")
		return nil
	}

	fmt.Println("Unlocked badges:")
	for _, b := range badges {
		fmt.Printf("  * %s\n", constants.BadgeTitles[b])
	}
	fmt.Println()
	fmt.Println(constants.PickMessage(rand.New(rand.NewSource(ctx.Clock().UnixNano()))))
	return nil
}

type ProfileCmd struct {
	Name string `arg:"" optional:"" help:"Display name to set. Omit to show the current profile."`
}

func (c *ProfileCmd) Run(ctx *Context) error {
	if c.Name == "" {
		profile, err := ctx.Store.GetProfile()
		if err != nil {
			return err
		}
		if profile.DisplayName == "" {
			fmt.Println("No display name set.")
			return nil
		}
		fmt.Printf("Display name: %s\n", profile.DisplayName)
		return nil
	}

	if err := ctx.Store.SaveProfile(storage.Profile{DisplayName: c.Name}); err != nil {
		return err
	}
	fmt.Printf("Display name set to: %s\n", c.Name)
	return nil
}
