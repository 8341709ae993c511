package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/smarttodo/tasks-api/internal/core/analytics"
	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/core/ports"
)

// AnalyticsService loads one snapshot per report and hands it to the
// analytics package.
type AnalyticsService struct {
	store  ports.SnapshotReader
	logger zerolog.Logger
	now    func() time.Time
}

func NewAnalyticsService(store ports.SnapshotReader, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, logger: logger, now: utcNow}
}

func (s *AnalyticsService) UserActivity(ctx context.Context, userID string) (*domain.UserActivity, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.UserActivity(snap, userID)
}

func (s *AnalyticsService) System(ctx context.Context) (*domain.SystemAnalytics, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	report := analytics.System(snap, s.now())
	s.logger.Debug().
		Int("users", report.TotalUsers).
		Int("tasks", report.TotalTasks).
		Msg("system analytics computed")
	return report, nil
}

func (s *AnalyticsService) UsersWithStats(ctx context.Context) ([]domain.UserStats, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.UsersWithStats(snap), nil
}
