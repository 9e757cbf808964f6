package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/workhours/internal/cli/formatter"
	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// errNotInteractive is returned by commands that need a terminal.
var errNotInteractive = errors.New("this command needs an interactive terminal")

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsWeekStartCmd(app),
		newSettingsEditCmd(app),
	)

	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings.List(cmd.Context())
			if err != nil {
				return err
			}
			day, err := app.Settings.WeekStartDay(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(settings))
			for _, s := range settings {
				value := s.Value
				if s.Key == domain.KeyWeekStartDay {
					value = fmt.Sprintf("%s %s", s.Value, formatter.Dim("("+day.String()+")"))
				}
				rows = append(rows, []string{s.Key, value})
			}
			if len(rows) == 0 {
				rows = append(rows, []string{domain.KeyWeekStartDay, formatter.Dim(day.String() + " (default)")})
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Settings", formatter.RenderTable([]string{"KEY", "VALUE"}, rows)))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newSettingsWeekStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week-start [DAY]",
		Short: "Show or set the first day of the week",
		Long: "Show or set the first day of the week. DAY is 0-6 (Monday=0), a\n" +
			"day name or a three-letter abbreviation.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				day, err := app.Settings.WeekStartDay(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Weeks start on %s (%d)\n", day, int(day))
				return nil
			}

			day, err := domain.ParseWeekStartDay(args[0])
			if err != nil {
				return err
			}
			if err := app.Settings.SetWeekStartDay(ctx, day); err != nil {
				return err
			}
			fmt.Fprintf(out, "Week start day set to %s\n", formatter.StyleGreen.Render(day.String()))
			return nil
		},
	}
}

func newSettingsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit settings in an interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("%w; use 'workhours settings week-start DAY'", errNotInteractive)
			}
			ctx := cmd.Context()

			day, err := app.Settings.WeekStartDay(ctx)
			if err != nil {
				return err
			}
			if err := newWeekStartForm(&day).RunWithContext(ctx); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
				return err
			}
			if err := app.Settings.SetWeekStartDay(ctx, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Week start day set to %s\n", formatter.StyleGreen.Render(day.String()))
			return nil
		},
	}
}
