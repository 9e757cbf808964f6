package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/workhours/internal/timeutil"
)

const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"

	minYear = 1
	maxYear = 9999
)

// Period is a half-open local-time range [Start, End) with a granularity.
type Period struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
}

// DayPeriod covers the calendar day containing day.
func DayPeriod(day time.Time) Period {
	start := timeutil.StartOfDay(day)
	return Period{Kind: PeriodDay, Start: start, End: start.AddDate(0, 0, 1)}
}

// WeekPeriod covers seven days beginning at the day of weekStart.
func WeekPeriod(weekStart time.Time) Period {
	start := timeutil.StartOfDay(weekStart)
	return Period{Kind: PeriodWeek, Start: start, End: start.AddDate(0, 0, 7)}
}

// CurrentWeekPeriod covers the week containing now for the given start day.
func CurrentWeekPeriod(now time.Time, startDay WeekStartDay) Period {
	return WeekPeriod(timeutil.WeekStart(now, int(startDay)))
}

func MonthPeriod(year int, month time.Month, loc *time.Location) (Period, error) {
	if err := validateYear(year); err != nil {
		return Period{}, err
	}
	if month < time.January || month > time.December {
		return Period{}, fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidPeriod, int(month))
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{Kind: PeriodMonth, Start: start, End: start.AddDate(0, 1, 0)}, nil
}

func YearPeriod(year int, loc *time.Location) (Period, error) {
	if err := validateYear(year); err != nil {
		return Period{}, err
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return Period{Kind: PeriodYear, Start: start, End: start.AddDate(1, 0, 0)}, nil
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: year %d out of range %d-%d", ErrInvalidPeriod, year, minYear, maxYear)
	}
	return nil
}

// Contains reports whether t falls inside [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// LastDay is the final calendar day covered by the period.
func (p Period) LastDay() time.Time {
	return p.End.AddDate(0, 0, -1)
}

// Label is a short human-readable description of the period.
func (p Period) Label() string {
	switch p.Kind {
	case PeriodDay:
		return p.Start.Format("Monday, 2006-01-02")
	case PeriodWeek:
		return fmt.Sprintf("Week of %s to %s", p.Start.Format(DateLayout), p.LastDay().Format(DateLayout))
	case PeriodMonth:
		return p.Start.Format("January 2006")
	case PeriodYear:
		return p.Start.Format("2006")
	default:
		return fmt.Sprintf("%s to %s", p.Start.Format(DateLayout), p.LastDay().Format(DateLayout))
	}
}

// ParseDate parses a strict YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidPeriod, s)
	}
	return t, nil
}

// ParseYearMonth parses a strict YYYY-MM value.
func ParseYearMonth(s string) (int, time.Month, error) {
	t, err := time.Parse(YearMonthLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not a YYYY-MM month", ErrInvalidPeriod, s)
	}
	return t.Year(), t.Month(), nil
}

// ParseYear parses a four-digit year.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	year, err := strconv.Atoi(s)
	if err != nil || len(s) != 4 {
		return 0, fmt.Errorf("%w: %q is not a YYYY year", ErrInvalidPeriod, s)
	}
	if err := validateYear(year); err != nil {
		return 0, err
	}
	return year, nil
}
