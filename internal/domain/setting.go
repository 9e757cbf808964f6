package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyWeekStartDay is the settings key holding the first day of the week.
const KeyWeekStartDay = "week_start_day"

// Setting is a persisted key/value pair.
type Setting struct {
	ID    int64
	Key   string
	Value string
}

// WeekStartDay is the first day of a reporting week, 0 (Monday) through 6 (Sunday).
type WeekStartDay int

const (
	Monday WeekStartDay = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DefaultWeekStartDay is used when no setting is stored.
const DefaultWeekStartDay = Monday

var weekStartDayNames = [...]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekStartDays lists all valid values in order.
var WeekStartDays = []WeekStartDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is in 0..6.
func (d WeekStartDay) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d WeekStartDay) String() string {
	if !d.Valid() {
		return fmt.Sprintf("WeekStartDay(%d)", int(d))
	}
	return weekStartDayNames[d]
}

// Weekday converts to the time package's Sunday-based weekday.
func (d WeekStartDay) Weekday() time.Weekday {
	return time.Weekday((int(d) + 1) % 7)
}

// ParseWeekStartDay accepts "0".."6", full day names and three-letter
// abbreviations, case-insensitively.
func ParseWeekStartDay(s string) (WeekStartDay, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(v); err == nil {
		d := WeekStartDay(n)
		if !d.Valid() {
			return 0, fmt.Errorf("%w: %d (want 0-6)", ErrInvalidWeekStartDay, n)
		}
		return d, nil
	}
	for i, name := range weekStartDayNames {
		lower := strings.ToLower(name)
		if v == lower || (len(v) == 3 && strings.HasPrefix(lower, v)) {
			return WeekStartDay(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekStartDay, s)
}
