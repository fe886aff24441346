package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/apetersen/streaks/internal/cli"
	"github.com/apetersen/streaks/internal/keyring"
	"github.com/apetersen/streaks/internal/storage"
	"github.com/apetersen/streaks/internal/tui"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing storage before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			fmt.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized streaks storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Printf("Storage: %s\n", ctx.Store.GetConfigPath())

	habits, err := ctx.Store.GetHabits()
	if err != nil {
		fmt.Printf("  habits: UNREADABLE (%v)\n", err)
		return err
	}
	fmt.Printf("  habits: %d OK\n", len(habits))

	// Duplicate ids or day keys would break toggle idempotency; report them.
	ids := make(map[string]bool, len(habits))
	problems := 0
	for _, h := range habits {
		if ids[h.ID] {
			fmt.Printf("  WARNING: duplicate habit id %s\n", h.ID)
			problems++
		}
		ids[h.ID] = true

		seen := make(map[string]bool, len(h.CompletedDates))
		for _, day := range h.CompletedDates {
			if seen[day] {
				fmt.Printf("  WARNING: habit %q has duplicate completion %s\n", h.Name, day)
				problems++
			}
			seen[day] = true
		}
	}

	if keyring.IsAvailable() {
		fmt.Println("Keyring: available")
	} else {
		fmt.Println("Keyring: unavailable")
	}

	if problems > 0 {
		return fmt.Errorf("found %d problem(s)", problems)
	}
	fmt.Println("All checks passed.")
	return nil
}

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	p := tea.NewProgram(tui.NewModel(ctx.Store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type KeyringSetCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string to store."`
}

func (c *KeyringSetCmd) Run(ctx *cli.Context) error {
	if !storage.IsPostgresConnString(c.ConnString) {
		return fmt.Errorf("not a PostgreSQL connection string")
	}
	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}

type KeyringStatusCmd struct{}

func (c *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("OS keyring is not available.")
		return nil
	}
	if _, err := keyring.GetConnectionString(); err != nil {
		fmt.Println("No connection string stored.")
		return nil
	}
	fmt.Println("A connection string is stored in the OS keyring.")
	return nil
}
