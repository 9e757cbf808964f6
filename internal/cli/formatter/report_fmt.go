package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/workhours/internal/contract"
	"github.com/alexanderramin/workhours/internal/timeutil"
)

// SessionHeaders are the report table columns.
var SessionHeaders = []string{"Login", "Logout", "Type", "Duration"}

const (
	activeLabel = "Active"
	staleLabel  = "Active (stale)"
	noReason    = "N/A"
)

// SessionCells returns the unstyled report cells for one entry.
func SessionCells(e contract.SessionEntry) []string {
	s := e.Session
	logout := activeLabel
	if e.Anomalous {
		logout = staleLabel
	}
	if s.LogoutTime != nil {
		logout = s.LogoutTime.Format(TimestampLayout)
	}
	reason := noReason
	if s.LogoutReason != nil {
		reason = string(*s.LogoutReason)
	}
	return []string{
		s.LoginTime.Format(TimestampLayout),
		logout,
		reason,
		timeutil.FormatDuration(e.Duration),
	}
}

func styledSessionRow(e contract.SessionEntry) []string {
	cells := SessionCells(e)
	s := e.Session
	switch {
	case e.Anomalous:
		cells[1] = StyleYellow.Render(cells[1])
	case s.IsOpen():
		cells[1] = StyleGreen.Render(cells[1])
	}
	if s.LogoutReason != nil {
		cells[2] = ReasonColor(*s.LogoutReason).Render(cells[2])
	} else {
		cells[2] = StyleDim.Render(cells[2])
	}
	return cells
}

// FormatPeriodReport renders a period report as a boxed table with the
// period total underneath.
func FormatPeriodReport(r *contract.PeriodReport) string {
	var b strings.Builder

	if len(r.Entries) == 0 {
		b.WriteString(Dim("No sessions recorded."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(r.Entries))
		for _, e := range r.Entries {
			rows = append(rows, styledSessionRow(e))
		}
		b.WriteString(RenderTable(SessionHeaders, rows))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s", Bold("Total:"), StyleGreen.Render(r.TotalFormatted)))
	if n := r.AnomalyCount(); n > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d stale open session(s) excluded from totals", n)))
	}

	return RenderBox(r.Period.Label(), b.String())
}
