package ports

import (
	"context"
	"time"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// RegisterInput carries a registration request. CallerRole is the role of an
// already-authenticated caller, empty for anonymous sign-ups.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Address    string
	Role       domain.Role
	CallerRole domain.Role
}

// AuthResult is a user paired with a freshly issued session token.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	Logout(ctx context.Context, claims *domain.Claims) error
}

type UserService interface {
	ListUsers(ctx context.Context, filter UserFilter) ([]domain.User, error)
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}
