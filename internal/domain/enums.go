package domain

import "strings"

// LogoutReason records why a session was closed.
type LogoutReason string

const (
	ReasonManual        LogoutReason = "Manual"
	ReasonLogout        LogoutReason = "Logout"
	ReasonSystemRestart LogoutReason = "SystemRestart"
	ReasonShutdown      LogoutReason = "Shutdown"
	ReasonSleep         LogoutReason = "Sleep"
	ReasonUnknown       LogoutReason = "Unknown"
)

// LogoutReasons is the closed set of reasons in display order.
var LogoutReasons = []LogoutReason{
	ReasonManual,
	ReasonLogout,
	ReasonSystemRestart,
	ReasonShutdown,
	ReasonSleep,
	ReasonUnknown,
}

// reasonAliases maps normalized free-form values to reasons. Older
// databases stored values like "Manual Stop" and "System Restart".
var reasonAliases = map[string]LogoutReason{
	"manual":        ReasonManual,
	"manualstop":    ReasonManual,
	"manuallogout":  ReasonManual,
	"stop":          ReasonManual,
	"logout":        ReasonLogout,
	"logoff":        ReasonLogout,
	"systemrestart": ReasonSystemRestart,
	"restart":       ReasonSystemRestart,
	"shutdown":      ReasonShutdown,
	"poweroff":      ReasonShutdown,
	"sleep":         ReasonSleep,
	"suspend":       ReasonSleep,
	"hibernate":     ReasonSleep,
	"unknown":       ReasonUnknown,
}

// ParseLogoutReason maps free-form input to a LogoutReason, ignoring case,
// spaces, dashes and underscores. Anything unrecognized is ReasonUnknown.
func ParseLogoutReason(s string) LogoutReason {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
	if r, ok := reasonAliases[key]; ok {
		return r
	}
	return ReasonUnknown
}

// Valid reports whether r is a member of the closed set.
func (r LogoutReason) Valid() bool {
	for _, known := range LogoutReasons {
		if r == known {
			return true
		}
	}
	return false
}

// PeriodKind is the granularity of a reporting period.
type PeriodKind string

const (
	PeriodDay   PeriodKind = "day"
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)
