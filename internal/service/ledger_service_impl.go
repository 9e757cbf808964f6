package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/workhours/internal/db"
	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/alexanderramin/workhours/internal/repository"
)

type ledgerService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	clock    Clock
	logger   zerolog.Logger
	observer UseCaseObserver
}

func NewLedgerService(
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	clock Clock,
	logger zerolog.Logger,
	observers ...UseCaseObserver,
) LedgerService {
	return &ledgerService{
		sessions: sessions,
		uow:      uow,
		clock:    clock,
		logger:   logger.With().Str("component", "ledger").Logger(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// now is second precision, matching what the store keeps.
func (s *ledgerService) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Second)
}

func (s *ledgerService) OpenSession(ctx context.Context) (id string, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "open-session", startedAt, err, fields) }()

	now := s.now()
	session := domain.NewWorkSession(uuid.New().String(), now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		open, err := txSessions.ListOpen(ctx)
		if err != nil {
			return err
		}
		for _, stale := range open {
			if err := stale.Close(now, domain.ReasonSystemRestart); err != nil {
				return err
			}
			if err := txSessions.Update(ctx, stale); err != nil {
				return fmt.Errorf("closing stale session %s: %w", stale.ID, err)
			}
			// A stale login ahead of the clock is clamped, so the new
			// session must not start before that logout.
			if stale.LogoutTime.After(session.LoginTime) {
				session.LoginTime = *stale.LogoutTime
			}
		}
		fields["closed_stale"] = len(open)

		return txSessions.Create(ctx, session)
	})
	if err != nil {
		return "", fmt.Errorf("opening session: %w", err)
	}

	fields["session_id"] = session.ID
	return session.ID, nil
}

func (s *ledgerService) CloseSession(ctx context.Context, reason domain.LogoutReason) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"reason": string(reason)}
	defer func() { observe(ctx, s.observer, "close-session", startedAt, err, fields) }()

	if !reason.Valid() {
		reason = domain.ReasonUnknown
	}
	now := s.now()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		open, err := txSessions.ListOpen(ctx)
		if err != nil {
			return err
		}
		if len(open) == 0 {
			fields["noop"] = true
			return nil
		}
		s.logAnomalies(open)

		for _, session := range open {
			if err := session.Close(now, reason); err != nil {
				return err
			}
			if err := txSessions.Update(ctx, session); err != nil {
				return err
			}
		}
		fields["session_id"] = open[0].ID
		return nil
	})
	if err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	return nil
}

func (s *ledgerService) GetOpenSession(ctx context.Context) (*domain.WorkSession, error) {
	open, err := s.sessions.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding open session: %w", err)
	}
	if len(open) == 0 {
		return nil, nil
	}
	s.logAnomalies(open)
	return open[0], nil
}

func (s *ledgerService) GetSession(ctx context.Context, id string) (*domain.WorkSession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return session, nil
}

// logAnomalies reports open sessions beyond the authoritative first one.
func (s *ledgerService) logAnomalies(open []*domain.WorkSession) {
	if len(open) < 2 {
		return
	}
	ids := make([]string, 0, len(open)-1)
	for _, extra := range open[1:] {
		ids = append(ids, extra.ID)
	}
	s.logger.Warn().
		Str("authoritative_id", open[0].ID).
		Strs("anomalous_ids", ids).
		Msg("multiple open sessions found")
}
