package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/etude/internal/export"
	"github.com/alexanderramin/etude/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Practice service.PracticeService
	Sessions service.SessionLogService
	Progress service.ProgressService
	Exporter *export.Exporter

	// Serve runs the HTTP API until ctx is done.
	Serve func(ctx context.Context, addr string) error

	User    string
	Addr    string
	Version string
	Now     func() time.Time

	// Setup wires the services from the global flags before any
	// subcommand runs. Tests leave it nil and wire App directly.
	Setup func(ctx context.Context, app *App, opts Options) error

	IsInteractive func() bool
}

// Options carries the global flags.
type Options struct {
	ConfigPath string
	User       string
	DBPath     string
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "etude" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:           "etude",
		Short:         "Practice tracker for scales, arpeggios and finger exercises",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup != nil {
				if err := app.Setup(cmd.Context(), app, opts); err != nil {
					return err
				}
			}
			if opts.User != "" {
				app.User = opts.User
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.etude/config.yaml)")
	root.PersistentFlags().StringVar(&opts.User, "user", "", "User whose progress to use")
	root.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite database path")

	root.AddCommand(
		newCatalogCmd(),
		newIDCmd(),
		newStatusCmd(app),
		newBPMCmd(app),
		newSnapshotCmd(app),
		newLogCmd(app),
		newGradesCmd(app),
		newFocusCmd(app),
		newResetCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newPickCmd(app),
		newTimerCmd(app),
		newServeCmd(app),
		newVersionCmd(app),
	)

	return root
}
