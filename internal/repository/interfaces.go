package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/workhours/internal/domain"
)

type SessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	// Update persists the logout time and reason of s.
	Update(ctx context.Context, s *domain.WorkSession) error
	// ListOpen returns sessions without a logout, most recently opened first.
	ListOpen(ctx context.Context) ([]*domain.WorkSession, error)
	// ListBetween returns sessions whose login falls in [from, to), oldest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.WorkSession, error)
	// LastLogin returns the latest login across all sessions, or nil when empty.
	LastLogin(ctx context.Context) (*time.Time, error)
}

type SettingRepo interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, key, value string) error
	List(ctx context.Context) ([]*domain.Setting, error)
}
