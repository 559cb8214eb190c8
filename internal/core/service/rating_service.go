package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

type RatingService struct {
	ratings  ports.RatingRepository
	stores   ports.StoreRepository
	users    ports.UserRepository
	activity ports.ActivityLog
	log      zerolog.Logger
}

func NewRatingService(
	ratings ports.RatingRepository,
	stores ports.StoreRepository,
	users ports.UserRepository,
	activity ports.ActivityLog,
	log zerolog.Logger,
) *RatingService {
	return &RatingService{ratings: ratings, stores: stores, users: users, activity: activity, log: log}
}

// CreateRating always inserts a new row. Use SubmitRating to keep one
// current rating per user and store.
func (s *RatingService) CreateRating(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, error) {
	if err := domain.ValidateRatingValue(value); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, userID, storeID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{Value: value, UserID: userID, StoreID: storeID}
	if err := s.ratings.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}

	s.recorded(ctx, domain.ActionRatingCreated, rating)
	return rating, nil
}

// UpdateRating overwrites the value of a rating owned by callerID. Admins get
// no exemption. Concurrent updates are last-writer-wins.
func (s *RatingService) UpdateRating(ctx context.Context, ratingID uint, value int, callerID uint) (*domain.Rating, error) {
	if err := domain.ValidateRatingValue(value); err != nil {
		return nil, err
	}

	existing, err := s.ratings.FindByID(ctx, ratingID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != callerID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.ratings.UpdateValue(ctx, ratingID, value)
	if err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}

	s.recorded(ctx, domain.ActionRatingUpdated, updated)
	return updated, nil
}

// SubmitRating is the create-or-update entry point: the caller's latest
// rating for the store is amended when present, otherwise one is created.
func (s *RatingService) SubmitRating(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, bool, error) {
	if err := domain.ValidateRatingValue(value); err != nil {
		return nil, false, err
	}
	if err := s.checkRefs(ctx, userID, storeID); err != nil {
		return nil, false, err
	}

	rating, created, err := s.ratings.Upsert(ctx, userID, storeID, value)
	if err != nil {
		return nil, false, fmt.Errorf("submit rating: %w", err)
	}

	action := domain.ActionRatingUpdated
	if created {
		action = domain.ActionRatingCreated
	}
	s.recorded(ctx, action, rating)
	return rating, created, nil
}

func (s *RatingService) GetMyRating(ctx context.Context, userID, storeID uint) (*domain.Rating, error) {
	if ok, err := s.stores.Exists(ctx, storeID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrStoreNotFound
	}
	return s.ratings.FindLatest(ctx, userID, storeID)
}

func (s *RatingService) GetStoreRatings(ctx context.Context, storeID uint) ([]domain.Rating, error) {
	if ok, err := s.stores.Exists(ctx, storeID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrStoreNotFound
	}
	return s.ratings.ListByStore(ctx, storeID)
}

func (s *RatingService) checkRefs(ctx context.Context, userID, storeID uint) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	ok, err := s.stores.Exists(ctx, storeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrStoreNotFound
	}
	return nil
}

func (s *RatingService) recorded(ctx context.Context, action domain.ActivityAction, r *domain.Rating) {
	recordActivity(ctx, s.activity, s.log, domain.Activity{
		Action:      action,
		ActorID:     r.UserID,
		SubjectType: "rating",
		SubjectID:   r.ID,
		Detail:      fmt.Sprintf("store=%d value=%d", r.StoreID, r.Value),
	})
	s.log.Info().
		Str("action", string(action)).
		Uint("rating_id", r.ID).
		Uint("store_id", r.StoreID).
		Int("value", r.Value).
		Msg("rating saved")
}
