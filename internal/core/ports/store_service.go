package ports

import (
	"context"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// CreateStoreInput is the admin request to open a store for an existing user.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID uint
	ActorID uint
}

type StoreService interface {
	CreateStore(ctx context.Context, in CreateStoreInput) (*domain.Store, error)
	ListStores(ctx context.Context, search string) ([]domain.StoreSummary, error)
	GetStoreDetails(ctx context.Context, id uint) (*domain.Store, error)
	// GetStoresByOwner returns domain.ErrStoreNotFound when the owner has none.
	GetStoresByOwner(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error)
}

type RatingService interface {
	CreateRating(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, error)
	UpdateRating(ctx context.Context, ratingID uint, value int, callerID uint) (*domain.Rating, error)
	SubmitRating(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, bool, error)
	GetMyRating(ctx context.Context, userID, storeID uint) (*domain.Rating, error)
	GetStoreRatings(ctx context.Context, storeID uint) ([]domain.Rating, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.Activity, error)
}
