package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/workhours/internal/cli/formatter"
	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/alexanderramin/workhours/internal/timeutil"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Open a new work session",
		Long: "Open a new work session. A session that is still open is closed\n" +
			"first with reason SystemRestart.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			id, err := app.Ledger.OpenSession(ctx)
			if err != nil {
				return err
			}
			// Read back by id: the stored login can differ from the clock
			// when a stale session had to be clamped.
			started, err := app.Ledger.GetSession(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Started session %s at %s\n",
				formatter.ShortID(started.ID), started.LoginTime.In(app.now().Location()).Format(formatter.ClockLayout))
			return nil
		},
	}
}

func newStopCmd(app *App) *cobra.Command {
	var reasonFlag string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Close the open work session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			reason, err := parseReasonFlag(reasonFlag)
			if err != nil {
				return err
			}

			open, err := app.Ledger.GetOpenSession(ctx)
			if err != nil {
				return err
			}
			if open == nil {
				fmt.Fprintln(out, formatter.Dim("No open session."))
				return nil
			}

			if err := app.Ledger.CloseSession(ctx, reason); err != nil {
				return err
			}
			closed, err := app.Ledger.GetSession(ctx, open.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Stopped session %s after %s (%s)\n",
				formatter.ShortID(closed.ID), timeutil.FormatDuration(closed.Duration()),
				formatter.ReasonColor(reason).Render(string(reason)))
			return nil
		},
	}

	cmd.Flags().StringVar(&reasonFlag, "reason", string(domain.ReasonManual),
		"Logout reason: "+reasonNames())

	return cmd
}

// parseReasonFlag is stricter than ParseLogoutReason: a typo on the command
// line is an error instead of a silent Unknown.
func parseReasonFlag(s string) (domain.LogoutReason, error) {
	reason := domain.ParseLogoutReason(s)
	if reason == domain.ReasonUnknown && !strings.EqualFold(strings.TrimSpace(s), string(domain.ReasonUnknown)) {
		return "", fmt.Errorf("unknown logout reason %q (want one of %s)", s, reasonNames())
	}
	return reason, nil
}

func reasonNames() string {
	names := make([]string, len(domain.LogoutReasons))
	for i, r := range domain.LogoutReasons {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
