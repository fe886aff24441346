package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/apetersen/streaks/internal/cli"
	"github.com/apetersen/streaks/internal/cli/system"
	"github.com/apetersen/streaks/internal/constants"
	"github.com/apetersen/streaks/internal/keyring"
	"github.com/apetersen/streaks/internal/logger"
	"github.com/apetersen/streaks/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path (.json or .db) or PostgreSQL connection string. Connection strings must NOT embed credentials; use the environment, .pgpass, or the OS keyring." type:"string" default:"~/.config/streaks/streaks.json"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd   `cmd:"" help:"Initialize streaks storage."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add     cli.AddCmd       `cmd:"" help:"Add a new habit."`
	Rm      cli.RmCmd        `cmd:"" help:"Delete a habit."`
	List    cli.ListCmd      `cmd:"" help:"List habits with today's status."`
	Done    cli.DoneCmd      `cmd:"" help:"Toggle completion for a day."`
	Log     cli.LogCmd       `cmd:"" help:"Show completion history (ASCII grid)."`
	Stats   cli.StatsCmd     `cmd:"" help:"Show aggregate statistics."`
	Badges  cli.BadgesCmd    `cmd:"" help:"Show unlocked achievements."`
	Notify  cli.NotifyCmd    `cmd:"" help:"Manage a habit's reminder preference."`
	Profile cli.ProfileCmd   `cmd:"" help:"Show or set the display name."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring status."`
	} `cmd:"" help:"Manage stored database credentials."`
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, monthly stats, and badges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := CLI.Config
	if config == "~/.config/streaks/streaks.json" {
		// Default config: a connection string in the keyring takes precedence
		if connStr, err := keyring.GetConnectionString(); err == nil {
			config = connStr
		}
	}
	config = expandPath(config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(expandPath(constants.DefaultConfigPath)),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Select storage backend from the config format
	var store storage.Provider
	switch {
	case storage.IsPostgresConnString(config):
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintln(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.")
			fmt.Fprintln(os.Stderr, "       Store the string in the OS keyring instead: streaks keyring set \"postgresql://user@host:5432/streaks\"")
			os.Exit(1)
		}
		store = storage.NewPostgresStore(config)
	case strings.HasSuffix(config, ".db") || strings.HasSuffix(config, ".sqlite"):
		store = storage.NewSQLiteStore(config)
	default:
		store = storage.NewJSONStore(config)
	}

	appCtx := &cli.Context{
		Store: store,
		Now:   time.Now,
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Error: no connection string stored in the OS keyring")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
