package ports

import (
	"context"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// RatingRepository defines persistence for ratings.
type RatingRepository interface {
	// Create always inserts a new row, even when the user already rated the store.
	Create(ctx context.Context, rating *domain.Rating) error
	FindByID(ctx context.Context, id uint) (*domain.Rating, error)
	UpdateValue(ctx context.Context, id uint, value int) (*domain.Rating, error)
	// ListByStore returns the store's ratings with the rater's identity attached.
	ListByStore(ctx context.Context, storeID uint) ([]domain.Rating, error)
	// FindLatest returns the user's most recent rating for the store.
	FindLatest(ctx context.Context, userID, storeID uint) (*domain.Rating, error)
	// Upsert updates the user's most recent rating for the store or inserts one,
	// serialised per user. created reports whether a row was inserted.
	Upsert(ctx context.Context, userID, storeID uint, value int) (rating *domain.Rating, created bool, err error)
}

// StatsRepository counts the platform's entities.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountStores(ctx context.Context) (int64, error)
	CountRatings(ctx context.Context) (int64, error)
}
