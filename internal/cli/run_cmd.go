package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/workhours/internal/cli/formatter"
	"github.com/alexanderramin/workhours/internal/monitor"
	"github.com/spf13/cobra"
)

func newRunCmd(app *App) *cobra.Command {
	var interval time.Duration
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Track a session until interrupted",
		Long: `Open a session and keep it open until SIGINT or SIGTERM, then close it
with reason Shutdown. A status line is printed every --interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("interval") {
				interval = app.StatusInterval
			}

			cfg := monitor.Config{Interval: interval}
			if !quiet {
				cfg.OnTick = func(ctx context.Context) {
					printStatusLine(ctx, app, out)
				}
			}
			m := monitor.New(app.Ledger, cfg, app.Logger)

			fmt.Fprintln(out, formatter.Dim("Tracking. Press Ctrl+C to stop."))
			if err := m.Run(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Session closed.")
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", monitor.DefaultInterval, "Status line interval")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print status lines")

	return cmd
}

// printStatusLine is best effort; a failed read is logged and skipped.
func printStatusLine(ctx context.Context, app *App, out io.Writer) {
	summary, err := app.Reports.Status(ctx)
	if err != nil {
		app.Logger.Warn().Err(err).Msg("Status line unavailable")
		return
	}
	fmt.Fprintln(out, formatter.StatusLine(summary))
}
