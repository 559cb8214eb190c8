package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

type StoreService struct {
	stores   ports.StoreRepository
	users    ports.UserRepository
	activity ports.ActivityLog
	log      zerolog.Logger
}

func NewStoreService(stores ports.StoreRepository, users ports.UserRepository, activity ports.ActivityLog, log zerolog.Logger) *StoreService {
	return &StoreService{stores: stores, users: users, activity: activity, log: log}
}

// CreateStore validates the input, checks the owner exists and then inserts
// the store together with the owner's role promotion.
func (s *StoreService) CreateStore(ctx context.Context, in ports.CreateStoreInput) (*domain.Store, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	address := strings.TrimSpace(in.Address)

	if err := domain.ValidateStore(name, email, address); err != nil {
		return nil, err
	}
	if in.OwnerID == 0 {
		return nil, domain.NewValidationError("ownerId is required")
	}

	owner, err := s.users.FindByID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}

	store := &domain.Store{
		Name:    name,
		Email:   email,
		Address: address,
		OwnerID: owner.ID,
	}
	previous, err := s.stores.CreateWithOwnerPromotion(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	newRole := domain.PromoteToOwner(previous)
	store.Owner = &domain.UserRef{ID: owner.ID, Name: owner.Name, Email: owner.Email, Role: newRole}

	recordActivity(ctx, s.activity, s.log, domain.Activity{
		Action:      domain.ActionStoreCreated,
		ActorID:     in.ActorID,
		SubjectType: "store",
		SubjectID:   store.ID,
		Detail:      store.Name,
	})
	if newRole != previous {
		recordActivity(ctx, s.activity, s.log, domain.Activity{
			Action:      domain.ActionOwnerPromoted,
			ActorID:     in.ActorID,
			SubjectType: "user",
			SubjectID:   owner.ID,
			Detail:      fmt.Sprintf("%s -> %s", previous, newRole),
		})
	}

	s.log.Info().
		Uint("store_id", store.ID).
		Uint("owner_id", owner.ID).
		Str("owner_role", string(newRole)).
		Msg("store created")

	return store, nil
}

func (s *StoreService) ListStores(ctx context.Context, search string) ([]domain.StoreSummary, error) {
	return s.stores.List(ctx, strings.TrimSpace(search))
}

func (s *StoreService) GetStoreDetails(ctx context.Context, id uint) (*domain.Store, error) {
	if id == 0 {
		return nil, domain.ErrStoreNotFound
	}
	return s.stores.FindByID(ctx, id)
}

func (s *StoreService) GetStoresByOwner(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error) {
	stores, err := s.stores.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, domain.ErrStoreNotFound
	}
	return stores, nil
}
