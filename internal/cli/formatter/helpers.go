package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/workhours/internal/timeutil"
	"github.com/charmbracelet/lipgloss"
)

// Timestamp layouts used across the terminal surface.
const (
	ClockLayout     = "15:04"
	ShortDayLayout  = "01/02 15:04"
	TimestampLayout = "2006-01-02 15:04"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// LastLogin renders a login time as HH:MM when it falls on the same local
// day as now, and as MM/DD HH:MM otherwise. Nil renders "Never".
func LastLogin(t *time.Time, now time.Time) string {
	if t == nil {
		return "Never"
	}
	local := t.In(now.Location())
	if timeutil.StartOfDay(local).Equal(timeutil.StartOfDay(now)) {
		return local.Format(ClockLayout)
	}
	return local.Format(ShortDayLayout)
}

// ShortID returns the first eight characters of a session id.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
