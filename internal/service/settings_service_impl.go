package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/workhours/internal/domain"
	"github.com/alexanderramin/workhours/internal/repository"
)

type settingsService struct {
	settings repository.SettingRepo
	logger   zerolog.Logger
	observer UseCaseObserver
}

func NewSettingsService(settings repository.SettingRepo, logger zerolog.Logger, observers ...UseCaseObserver) SettingsService {
	return &settingsService{
		settings: settings,
		logger:   logger.With().Str("component", "settings").Logger(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// WeekStartDay falls back to Monday when the setting is missing or holds
// something other than 0..6.
func (s *settingsService) WeekStartDay(ctx context.Context) (domain.WeekStartDay, error) {
	setting, err := s.settings.Get(ctx, domain.KeyWeekStartDay)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultWeekStartDay, nil
	}
	if err != nil {
		return domain.DefaultWeekStartDay, fmt.Errorf("reading week start day: %w", err)
	}

	n, err := strconv.Atoi(setting.Value)
	day := domain.WeekStartDay(n)
	if err != nil || !day.Valid() {
		s.logger.Warn().
			Str("value", setting.Value).
			Msg("ignoring invalid week_start_day setting")
		return domain.DefaultWeekStartDay, nil
	}
	return day, nil
}

func (s *settingsService) SetWeekStartDay(ctx context.Context, day domain.WeekStartDay) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "set-week-start-day", startedAt, err, map[string]any{"day": int(day)})
	}()

	if !day.Valid() {
		return fmt.Errorf("%w: %d (want 0-6)", domain.ErrInvalidWeekStartDay, int(day))
	}
	if err := s.settings.Upsert(ctx, domain.KeyWeekStartDay, strconv.Itoa(int(day))); err != nil {
		return fmt.Errorf("saving week start day: %w", err)
	}
	return nil
}

func (s *settingsService) List(ctx context.Context) ([]*domain.Setting, error) {
	return s.settings.List(ctx)
}
