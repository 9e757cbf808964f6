package cli

import (
	"github.com/alexanderramin/workhours/internal/cli/formatter"
	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// workhoursHuhTheme returns a huh theme that matches the formatter palette.
func workhoursHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// weekStartOptions lists every week start day, labelled by name.
func weekStartOptions() []huh.Option[domain.WeekStartDay] {
	options := make([]huh.Option[domain.WeekStartDay], 0, len(domain.WeekStartDays))
	for _, d := range domain.WeekStartDays {
		options = append(options, huh.NewOption(d.String(), d))
	}
	return options
}

// newWeekStartForm asks for the first day of the reporting week. The
// selection starts at *value and is written back on submit.
func newWeekStartForm(value *domain.WeekStartDay) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.WeekStartDay]().
				Title("First day of the week").
				Description("Weekly totals and the current week report start on this day.").
				Options(weekStartOptions()...).
				Value(value),
		),
	).WithTheme(workhoursHuhTheme()).WithShowHelp(false)
}
