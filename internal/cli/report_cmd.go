package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/workhours/internal/cli/formatter"
	"github.com/alexanderramin/workhours/internal/contract"
	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show sessions and totals for a period",
	}

	cmd.AddCommand(
		newReportDayCmd(app),
		newReportWeekCmd(app),
		newReportMonthCmd(app),
		newReportYearCmd(app),
	)

	return cmd
}

func printReport(cmd *cobra.Command, report *contract.PeriodReport, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPeriodReport(report))
	return nil
}

func newReportDayCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "Report a single day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day := now
			if date != "" {
				parsed, err := domain.ParseDate(date, now.Location())
				if err != nil {
					return err
				}
				day = parsed
			}
			report, err := app.Reports.Daily(cmd.Context(), day)
			return printReport(cmd, report, err)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to report, YYYY-MM-DD (default today)")

	return cmd
}

func newReportWeekCmd(app *App) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Report seven days",
		Long: "Report seven days starting at --start. Without --start the current\n" +
			"week is reported, honouring the week_start_day setting.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" {
				report, err := app.Reports.CurrentWeek(cmd.Context())
				return printReport(cmd, report, err)
			}
			weekStart, err := domain.ParseDate(start, app.now().Location())
			if err != nil {
				return err
			}
			report, err := app.Reports.Weekly(cmd.Context(), weekStart)
			return printReport(cmd, report, err)
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day of the week, YYYY-MM-DD")

	return cmd
}

func newReportMonthCmd(app *App) *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Report a calendar month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			if !cmd.Flags().Changed("year") {
				year = now.Year()
			}
			if !cmd.Flags().Changed("month") {
				month = int(now.Month())
			}
			report, err := app.Reports.Monthly(cmd.Context(), year, time.Month(month))
			return printReport(cmd, report, err)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default current)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12 (default current)")

	return cmd
}

func newReportYearCmd(app *App) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "year",
		Short: "Report a calendar year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("year") {
				year = app.now().Year()
			}
			report, err := app.Reports.Yearly(cmd.Context(), year)
			return printReport(cmd, report, err)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Year (default current)")

	return cmd
}
