package domain

import "errors"

var (
	// ErrSessionClosed is returned when closing a session that already has a logout.
	ErrSessionClosed = errors.New("session already closed")

	// ErrInvalidPeriod is returned for malformed dates, years or months.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidWeekStartDay is returned for week start days outside 0..6.
	ErrInvalidWeekStartDay = errors.New("invalid week start day")
)
