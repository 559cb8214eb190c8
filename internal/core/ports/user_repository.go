package ports

import (
	"context"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// UserFilter narrows ListUsers. Zero values mean no filter.
type UserFilter struct {
	Search string // case-insensitive substring of name or email
	Role   domain.Role
}

// UserRepository defines persistence for user accounts.
// Implementations return domain errors, never driver errors, for the cases below.
type UserRepository interface {
	// Create inserts user and fills in its ID and timestamps.
	// Returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}
