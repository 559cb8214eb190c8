package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// StatsRepository implements ports.StatsRepository with plain COUNT queries.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &userModel{})
}

func (r *StatsRepository) CountStores(ctx context.Context) (int64, error) {
	return r.count(ctx, &storeModel{})
}

func (r *StatsRepository) CountRatings(ctx context.Context) (int64, error) {
	return r.count(ctx, &ratingModel{})
}

func (r *StatsRepository) count(ctx context.Context, model any) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
