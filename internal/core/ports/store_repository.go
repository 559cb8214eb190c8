package ports

import (
	"context"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// StoreRepository defines persistence and aggregation for stores.
type StoreRepository interface {
	// CreateWithOwnerPromotion inserts store and promotes its owner to OWNER
	// in a single transaction. Either both writes commit or neither does.
	// It returns the role the owner held before the promotion.
	CreateWithOwnerPromotion(ctx context.Context, store *domain.Store) (domain.Role, error)
	FindByID(ctx context.Context, id uint) (*domain.Store, error)
	Exists(ctx context.Context, id uint) (bool, error)
	// List returns every store with its rating aggregate. search, when set,
	// is a case-insensitive substring match on the store name.
	List(ctx context.Context, search string) ([]domain.StoreSummary, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error)
}
