// Package monitor drives the session ledger for a running tracker: it opens
// a session on start, keeps an advisory copy of the open session id and
// closes the session when tracking stops.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/workhours/internal/domain"
)

// DefaultInterval is how often Run reconciles with the store.
const DefaultInterval = time.Minute

// Ledger is the subset of the session ledger the monitor drives.
type Ledger interface {
	OpenSession(ctx context.Context) (string, error)
	CloseSession(ctx context.Context, reason domain.LogoutReason) error
	GetOpenSession(ctx context.Context) (*domain.WorkSession, error)
}

// Config holds monitor configuration.
type Config struct {
	Interval time.Duration
	// OnTick runs after every reconcile, e.g. to print a status line.
	OnTick func(ctx context.Context)
}

// Monitor owns the tracking lifecycle of one process.
type Monitor struct {
	ledger   Ledger
	interval time.Duration
	onTick   func(ctx context.Context)
	logger   zerolog.Logger

	mu      sync.Mutex
	current string
}

func New(ledger Ledger, cfg Config, logger zerolog.Logger) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Monitor{
		ledger:   ledger,
		interval: cfg.Interval,
		onTick:   cfg.OnTick,
		logger:   logger.With().Str("component", "monitor").Logger(),
	}
}

// CurrentID returns the cached id of the session this monitor believes is
// open. The store stays authoritative.
func (m *Monitor) CurrentID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Monitor) setCurrent(id string) {
	m.mu.Lock()
	m.current = id
	m.mu.Unlock()
}

// Start opens a new session, closing any stale one as a restart.
func (m *Monitor) Start(ctx context.Context) (string, error) {
	id, err := m.ledger.OpenSession(ctx)
	if err != nil {
		return "", fmt.Errorf("starting tracking: %w", err)
	}
	m.setCurrent(id)
	m.logger.Info().Str("session_id", id).Msg("Tracking started")
	return id, nil
}

// Stop closes whatever session the store holds open. Failures are logged
// and returned, and the cache is cleared either way.
func (m *Monitor) Stop(ctx context.Context, reason domain.LogoutReason) error {
	cached := m.CurrentID()
	m.setCurrent("")

	if err := m.ledger.CloseSession(ctx, reason); err != nil {
		m.logger.Warn().Err(err).
			Str("session_id", cached).
			Str("reason", string(reason)).
			Msg("Failed to close session")
		return fmt.Errorf("stopping tracking: %w", err)
	}
	m.logger.Info().
		Str("session_id", cached).
		Str("reason", string(reason)).
		Msg("Tracking stopped")
	return nil
}

// Reconcile refreshes the cached id from the store.
func (m *Monitor) Reconcile(ctx context.Context) error {
	open, err := m.ledger.GetOpenSession(ctx)
	if err != nil {
		return fmt.Errorf("reconciling open session: %w", err)
	}

	cached := m.CurrentID()
	switch {
	case open == nil && cached != "":
		m.logger.Info().Str("session_id", cached).Msg("Session was closed elsewhere")
		m.setCurrent("")
	case open != nil && open.ID != cached:
		m.logger.Info().
			Str("cached_id", cached).
			Str("session_id", open.ID).
			Msg("Open session changed elsewhere")
		m.setCurrent(open.ID)
	}
	return nil
}

// Run starts tracking and reconciles every interval until ctx is done, then
// closes the session as a shutdown. The close uses a context that outlives
// ctx so cancellation cannot abort it.
func (m *Monitor) Run(ctx context.Context) error {
	if _, err := m.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return m.Stop(context.WithoutCancel(ctx), domain.ReasonShutdown)
		case <-ticker.C:
			if err := m.Reconcile(ctx); err != nil {
				m.logger.Warn().Err(err).Msg("Reconcile failed")
			}
			if m.onTick != nil {
				m.onTick(ctx)
			}
		}
	}
}
