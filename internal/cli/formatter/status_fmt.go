package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/workhours/internal/contract"
)

// FormatStatus renders the status summary shown by `workhours status`.
func FormatStatus(s *contract.StatusSummary) string {
	var b strings.Builder

	b.WriteString(TrackingIndicator(s.OpenSession != nil))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", Bold("Daily Hours:"), StyleGreen.Render(s.DailyTotalFormatted))
	fmt.Fprintf(&b, "%s %s %s\n", Bold("This Week:  "), StyleGreen.Render(s.WeekTotalFormatted),
		Dim(fmt.Sprintf("(weeks start %s)", s.WeekStartDay)))
	fmt.Fprintf(&b, "%s %s", Bold("Last Login: "), LastLogin(s.LastLogin, s.Now))

	if open := s.OpenSession; open != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s %s", Bold("Session:    "), ShortID(open.ID),
			Dim("since "+LastLogin(&open.LoginTime, s.Now)))
	}

	return RenderBox("Work Hours", b.String())
}

// StatusLine is the single-line heartbeat printed by `workhours run`.
func StatusLine(s *contract.StatusSummary) string {
	return fmt.Sprintf("%s  Daily Hours: %s | Last Login: %s",
		Dim(s.Now.Format(ClockLayout)), s.DailyTotalFormatted, LastLogin(s.LastLogin, s.Now))
}
