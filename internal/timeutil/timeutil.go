// Package timeutil provides calendar arithmetic and duration formatting
// shared by the reporting code.
package timeutil

import (
	"fmt"
	"time"
)

const (
	secondsInAMinute = 60
	secondsInAnHour  = 3600
	daysInAWeek      = 7
)

// StartOfDay resets t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MondayIndex returns the weekday of t numbered from Monday (0) to Sunday (6).
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % daysInAWeek
}

// WeekStart returns midnight of the first day of the week containing today,
// where weeks begin on startDay (0 = Monday .. 6 = Sunday).
func WeekStart(today time.Time, startDay int) time.Time {
	daysSinceStart := ((MondayIndex(today)-startDay)%daysInAWeek + daysInAWeek) % daysInAWeek
	return StartOfDay(today).AddDate(0, 0, -daysSinceStart)
}

// FormatDuration renders d as "{H}hr {M}min", or "{M}min" when there are
// no whole hours. Leftover seconds are dropped and negative values render
// as "0min".
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	hours := total / secondsInAnHour
	minutes := (total % secondsInAnHour) / secondsInAMinute
	if hours > 0 {
		return fmt.Sprintf("%dhr %dmin", hours, minutes)
	}
	return fmt.Sprintf("%dmin", minutes)
}
