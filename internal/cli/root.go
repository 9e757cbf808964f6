package cli

import (
	"time"

	"github.com/alexanderramin/workhours/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Ledger   service.LedgerService
	Reports  service.ReportService
	Settings service.SettingsService
	Clock    service.Clock
	Logger   zerolog.Logger

	// StatusInterval is the heartbeat period of `run`.
	StatusInterval time.Duration

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// stats browser refuse to start without one.
	IsInteractive func() bool

	// Bootstrap, when set, runs before any subcommand with the parsed
	// flags and fills in the services above.
	Bootstrap func(flags *pflag.FlagSet) error
}

func (a *App) now() time.Time {
	if a.Clock == nil {
		return time.Now()
	}
	return a.Clock.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "workhours" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "workhours",
		Short:         "Track time spent at the computer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Bootstrap == nil {
				return nil
			}
			return app.Bootstrap(cmd.Flags())
		},
	}

	root.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/workhours/config.yaml)")
	root.PersistentFlags().String("db", "", "Session database path")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newRunCmd(app),
		newStartCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newReportCmd(app),
		newSettingsCmd(app),
		newStatsCmd(app),
	)

	return root
}
