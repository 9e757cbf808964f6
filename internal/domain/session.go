package domain

import "time"

// WorkSession is one continuous interval of computer use. A nil LogoutTime
// means the session is still open.
type WorkSession struct {
	ID           string
	LoginTime    time.Time
	LogoutTime   *time.Time
	LogoutReason *LogoutReason
}

// NewWorkSession returns an open session that started at login.
func NewWorkSession(id string, login time.Time) *WorkSession {
	return &WorkSession{ID: id, LoginTime: login}
}

// IsOpen reports whether the session has no recorded logout.
func (s *WorkSession) IsOpen() bool {
	return s.LogoutTime == nil
}

// Close records the logout. A logout earlier than the login is clamped to
// the login so durations are never negative. Closing twice is an error.
func (s *WorkSession) Close(at time.Time, reason LogoutReason) error {
	if !s.IsOpen() {
		return ErrSessionClosed
	}
	if at.Before(s.LoginTime) {
		at = s.LoginTime
	}
	s.LogoutTime = &at
	s.LogoutReason = &reason
	return nil
}

// Duration returns logout minus login for a closed session. Open sessions
// count as zero until they are closed.
func (s *WorkSession) Duration() time.Duration {
	if s.LogoutTime == nil {
		return 0
	}
	d := s.LogoutTime.Sub(s.LoginTime)
	if d < 0 {
		return 0
	}
	return d
}

// TotalDuration sums Duration over sessions.
func TotalDuration(sessions []*WorkSession) time.Duration {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration()
	}
	return total
}
