package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type DashboardService struct {
	stats    ports.StatsRepository
	activity ports.ActivityLog
}

func NewDashboardService(stats ports.StatsRepository, activity ports.ActivityLog) *DashboardService {
	return &DashboardService{stats: stats, activity: activity}
}

// Stats runs the three counts concurrently and combines them into one
// snapshot. A failure in any count fails the whole call.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalUsers, err = s.stats.CountUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalStores, err = s.stats.CountStores(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TotalRatings, err = s.stats.CountRatings(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &out, nil
}

// RecentActivity returns the newest audit entries. The limit is clamped to
// [1, 100] with 20 as default.
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	if s.activity == nil {
		return []domain.Activity{}, nil
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return s.activity.Recent(ctx, limit)
}
