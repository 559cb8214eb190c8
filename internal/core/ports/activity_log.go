package ports

import (
	"context"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// ActivityLog is the append-only audit trail. Writes are best effort:
// callers log failures and carry on.
type ActivityLog interface {
	Record(ctx context.Context, entry domain.Activity) error
	Recent(ctx context.Context, limit int) ([]domain.Activity, error)
}
