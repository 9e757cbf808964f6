package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/workhours/internal/cli/formatter"
	"github.com/alexanderramin/workhours/internal/contract"
	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/alexanderramin/workhours/internal/service"
	"github.com/alexanderramin/workhours/internal/timeutil"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Browse daily, weekly, monthly and yearly totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("%w; use 'workhours report' instead", errNotInteractive)
			}
			p := tea.NewProgram(newStatsModel(cmd.Context(), app),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err := p.Run()
			return err
		},
	}
}

type statsTab int

const (
	tabDaily statsTab = iota
	tabWeekly
	tabMonthly
	tabYearly
	tabCount
)

var (
	tabTitles  = [tabCount]string{"Daily", "Weekly", "Monthly", "Yearly"}
	tabPrompts = [tabCount]string{"Date ▸ ", "Week start ▸ ", "Month ▸ ", "Year ▸ "}
	tabHints   = [tabCount]string{"YYYY-MM-DD", "YYYY-MM-DD", "YYYY-MM", "YYYY"}
)

const (
	defaultTableHeight = 10
	inputCharLimit     = 16
)

type statsLoadedMsg struct {
	tab    statsTab
	report *contract.PeriodReport
}

type statsFailedMsg struct {
	tab statsTab
	err error
}

type statsKeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Load    key.Binding
	Refresh key.Binding
	Scroll  key.Binding
	Quit    key.Binding
}

func (k statsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Load, k.Refresh, k.Scroll, k.Quit}
}

func (k statsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Load, k.Refresh}, {k.Scroll, k.Quit}}
}

func defaultStatsKeys() statsKeyMap {
	return statsKeyMap{
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next period")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous period")),
		Load:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load")),
		Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh all")),
		Scroll:  key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// statsPane is one tab: its input, the last report loaded into it and the
// last error. A failed load keeps the previous report on screen.
type statsPane struct {
	input  textinput.Model
	table  table.Model
	report *contract.PeriodReport
	err    error
}

// statsModel is the bubbletea statistics browser.
type statsModel struct {
	ctx     context.Context
	reports service.ReportService
	loc     *time.Location

	keys   statsKeyMap
	help   help.Model
	active statsTab
	panes  [tabCount]statsPane
}

func newStatsModel(ctx context.Context, app *App) statsModel {
	now := app.now()
	startDay, err := app.Settings.WeekStartDay(ctx)
	if err != nil {
		startDay = domain.DefaultWeekStartDay
	}
	defaults := [tabCount]string{
		now.Format(domain.DateLayout),
		timeutil.WeekStart(now, int(startDay)).Format(domain.DateLayout),
		now.Format(domain.YearMonthLayout),
		now.Format("2006"),
	}

	m := statsModel{
		ctx:     ctx,
		reports: app.Reports,
		loc:     now.Location(),
		keys:    defaultStatsKeys(),
		help:    help.New(),
	}
	for tab := range tabCount {
		m.panes[tab] = statsPane{
			input: newStatsInput(tab, defaults[tab]),
			table: newSessionTable(),
		}
	}
	m.panes[tabDaily].input.Focus()
	return m
}

func newStatsInput(tab statsTab, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = tabPrompts[tab]
	ti.PromptStyle = formatter.StyleHeader
	ti.Placeholder = tabHints[tab]
	ti.CharLimit = inputCharLimit
	ti.Width = inputCharLimit + 1
	ti.SetValue(value)
	return ti
}

func newSessionTable() table.Model {
	columns := []table.Column{
		{Title: formatter.SessionHeaders[0], Width: 16},
		{Title: formatter.SessionHeaders[1], Width: 16},
		{Title: formatter.SessionHeaders[2], Width: 14},
		{Title: formatter.SessionHeaders[3], Width: 11},
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(formatter.ColorHeader).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorPurple)

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(defaultTableHeight),
		table.WithStyles(styles),
	)
	t.Focus()
	return t
}

func (m statsModel) Init() tea.Cmd {
	return m.refreshAll()
}

func (m statsModel) refreshAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, tabCount)
	for tab := range tabCount {
		cmds = append(cmds, m.load(tab))
	}
	return tea.Batch(cmds...)
}

// load reads the tab's input now and queries in the returned Cmd.
func (m statsModel) load(tab statsTab) tea.Cmd {
	ctx, reports, loc := m.ctx, m.reports, m.loc
	value := strings.TrimSpace(m.panes[tab].input.Value())
	return func() tea.Msg {
		report, err := fetchReport(ctx, reports, loc, tab, value)
		if err != nil {
			return statsFailedMsg{tab: tab, err: err}
		}
		return statsLoadedMsg{tab: tab, report: report}
	}
}

func fetchReport(ctx context.Context, reports service.ReportService, loc *time.Location, tab statsTab, value string) (*contract.PeriodReport, error) {
	switch tab {
	case tabDaily:
		day, err := domain.ParseDate(value, loc)
		if err != nil {
			return nil, err
		}
		return reports.Daily(ctx, day)
	case tabWeekly:
		start, err := domain.ParseDate(value, loc)
		if err != nil {
			return nil, err
		}
		return reports.Weekly(ctx, start)
	case tabMonthly:
		year, month, err := domain.ParseYearMonth(value)
		if err != nil {
			return nil, err
		}
		return reports.Monthly(ctx, year, month)
	default:
		year, err := domain.ParseYear(value)
		if err != nil {
			return nil, err
		}
		return reports.Yearly(ctx, year)
	}
}

func (m statsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		height := max(msg.Height-12, 3)
		for tab := range tabCount {
			m.panes[tab].table.SetHeight(height)
		}
		return m, nil

	case statsLoadedMsg:
		pane := &m.panes[msg.tab]
		pane.report = msg.report
		pane.err = nil
		pane.table.SetRows(sessionRows(msg.report))
		pane.table.GotoTop()
		return m, nil

	case statsFailedMsg:
		m.panes[msg.tab].err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.switchTab(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.switchTab(-1)
		case key.Matches(msg, m.keys.Load):
			return m, m.load(m.active)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.refreshAll()
		case key.Matches(msg, m.keys.Scroll):
			var cmd tea.Cmd
			m.panes[m.active].table, cmd = m.panes[m.active].table.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.panes[m.active].input, cmd = m.panes[m.active].input.Update(msg)
	return m, cmd
}

func (m *statsModel) switchTab(delta int) tea.Cmd {
	m.panes[m.active].input.Blur()
	m.active = (m.active + statsTab(delta) + tabCount) % tabCount
	return m.panes[m.active].input.Focus()
}

func sessionRows(report *contract.PeriodReport) []table.Row {
	rows := make([]table.Row, 0, len(report.Entries))
	for _, e := range report.Entries {
		rows = append(rows, table.Row(formatter.SessionCells(e)))
	}
	return rows
}

func (m statsModel) View() string {
	var b strings.Builder

	b.WriteString(m.tabBar())
	b.WriteString("\n\n")

	pane := m.panes[m.active]
	b.WriteString(pane.input.View())
	b.WriteString("\n\n")

	switch {
	case pane.report == nil && pane.err == nil:
		b.WriteString(formatter.Dim("Loading..."))
	case pane.report == nil:
		b.WriteString(formatter.Dim("No report loaded."))
	default:
		b.WriteString(formatter.Bold(pane.report.Period.Label()))
		b.WriteString("\n")
		if len(pane.report.Entries) == 0 {
			b.WriteString(formatter.Dim("No sessions recorded."))
		} else {
			b.WriteString(pane.table.View())
		}
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s", formatter.Bold("Total:"), formatter.StyleGreen.Render(pane.report.TotalFormatted)))
	}
	b.WriteString("\n")

	if pane.err != nil {
		b.WriteString("\n")
		b.WriteString(formatter.StyleRed.Render("Error: " + pane.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m statsModel) tabBar() string {
	active := lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true).Underline(true)
	titles := make([]string, 0, tabCount)
	for tab := range tabCount {
		if tab == m.active {
			titles = append(titles, active.Render(tabTitles[tab]))
			continue
		}
		titles = append(titles, formatter.Dim(tabTitles[tab]))
	}
	return strings.Join(titles, formatter.Dim(" │ "))
}
