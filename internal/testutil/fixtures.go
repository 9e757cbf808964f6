package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/workhours/internal/domain"
)

// SessionOption configures a WorkSession fixture.
type SessionOption func(*domain.WorkSession)

// WithLogout closes the fixture at the given time and reason.
func WithLogout(at time.Time, reason domain.LogoutReason) SessionOption {
	return func(s *domain.WorkSession) {
		s.LogoutTime = &at
		s.LogoutReason = &reason
	}
}

// WithDuration closes the fixture d after login with the given reason.
func WithDuration(d time.Duration, reason domain.LogoutReason) SessionOption {
	return func(s *domain.WorkSession) {
		at := s.LoginTime.Add(d)
		s.LogoutTime = &at
		s.LogoutReason = &reason
	}
}

// WithID overrides the generated session id.
func WithID(id string) SessionOption {
	return func(s *domain.WorkSession) {
		s.ID = id
	}
}

// NewTestSession returns an open session that logged in at login unless
// options close it.
func NewTestSession(login time.Time, opts ...SessionOption) *domain.WorkSession {
	s := domain.NewWorkSession(uuid.New().String(), login.UTC())
	for _, opt := range opts {
		opt(s)
	}
	return s
}
