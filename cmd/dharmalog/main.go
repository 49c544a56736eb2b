package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/dharmalog/dharmalog/internal/cli"
	"github.com/dharmalog/dharmalog/internal/cli/backups"
	"github.com/dharmalog/dharmalog/internal/cli/library"
	"github.com/dharmalog/dharmalog/internal/cli/practices"
	"github.com/dharmalog/dharmalog/internal/cli/reminders"
	"github.com/dharmalog/dharmalog/internal/cli/settings"
	"github.com/dharmalog/dharmalog/internal/cli/stats"
	"github.com/dharmalog/dharmalog/internal/cli/system"
	"github.com/dharmalog/dharmalog/internal/constants"
	apperrors "github.com/dharmalog/dharmalog/internal/errors"
	"github.com/dharmalog/dharmalog/internal/logger"
	"github.com/dharmalog/dharmalog/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path. Use a .db suffix for SQLite, anything else for the JSON store." default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`
	Yes     bool   `help:"Assume yes for all confirmation prompts." short:"y"`

	Init     system.InitCmd        `cmd:"" help:"Initialize dharmalog storage."`
	Tui      system.TuiCmd         `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor   system.DoctorCmd      `cmd:"" help:"Run health checks and repair data."`
	Practice practices.PracticeCmd `cmd:"" help:"Manage practices."`
	Count    practices.CountCmd    `cmd:"" help:"Record and review repetitions."`
	Remind   reminders.RemindCmd   `cmd:"" help:"Manage reminders."`
	Card     library.CardCmd       `cmd:"" help:"Manage teaching cards."`
	Teaching library.TeachingCmd   `cmd:"" help:"Manage the teaching library."`
	Stats    stats.StatsCmd        `cmd:"" help:"Show practice statistics."`
	Export   stats.ExportCmd       `cmd:"" help:"Export records."`
	Backup   backups.BackupCmd     `cmd:"" help:"Manage backups."`
	Settings settings.SettingsCmd  `cmd:"" help:"Manage application settings."`
	Clear    system.ClearCmd       `cmd:"" help:"Erase all data and reseed defaults."`
	Notify   system.NotifyCmd      `cmd:"" hidden:"" help:"Dispatch due notifications (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Buddhist practice journal: counts, streaks, reminders, and teaching cards"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configDir := filepath.Dir(storage.ExpandPath(CLI.Config))
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewStore(CLI.Config)
	appCtx := &cli.Context{
		Store: store,
		Yes:   CLI.Yes,
	}

	// Load the store before running the command; init handles its own setup.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
