package contract

import (
	"time"

	"github.com/alexanderramin/workhours/internal/domain"
)

// SessionEntry is one row of a period report. Times on Session are in the
// report's local time zone.
type SessionEntry struct {
	Session  *domain.WorkSession
	Duration time.Duration
	// Anomalous marks an open session that is not the most recently opened
	// one. Only databases that predate the single-open guard contain these.
	Anomalous bool
}

// PeriodReport aggregates the sessions whose login falls inside Period.
type PeriodReport struct {
	Period         domain.Period
	Entries        []SessionEntry
	Total          time.Duration
	TotalFormatted string
}

// AnomalyCount returns how many entries are flagged anomalous.
func (r *PeriodReport) AnomalyCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Anomalous {
			n++
		}
	}
	return n
}

// StatusSummary is the one-glance view of today's tracking.
type StatusSummary struct {
	Now                 time.Time
	DailyTotal          time.Duration
	DailyTotalFormatted string
	WeekTotal           time.Duration
	WeekTotalFormatted  string
	LastLogin           *time.Time
	OpenSession         *domain.WorkSession
	WeekStartDay        domain.WeekStartDay
}
