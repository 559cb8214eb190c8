package service

import (
	"context"
	"strings"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

// UserService serves read-only account projections.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]domain.User, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.NewValidationError("role must be one of ADMIN, OWNER, USER")
	}
	return s.users.List(ctx, filter)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByID(ctx, id)
}
