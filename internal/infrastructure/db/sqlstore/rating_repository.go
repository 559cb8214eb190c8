package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// RatingRepository implements ports.RatingRepository on gorm.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	return insertRating(r.db.WithContext(ctx), rating)
}

func (r *RatingRepository) FindByID(ctx context.Context, id uint) (*domain.Rating, error) {
	var m ratingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, ratingLookupErr(err)
	}
	return m.toDomain(), nil
}

func (r *RatingRepository) UpdateValue(ctx context.Context, id uint, value int) (*domain.Rating, error) {
	var out *domain.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m ratingModel
		if err := tx.First(&m, id).Error; err != nil {
			return ratingLookupErr(err)
		}
		updated, err := setRatingValue(tx, m, value)
		out = updated
		return err
	})
	return out, err
}

func (r *RatingRepository) ListByStore(ctx context.Context, storeID uint) ([]domain.Rating, error) {
	var rows []ratingModel
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("store_id = ?", storeID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	out := make([]domain.Rating, 0, len(rows))
	for _, m := range rows {
		out = append(out, *m.toDomain())
	}
	return out, nil
}

func (r *RatingRepository) FindLatest(ctx context.Context, userID, storeID uint) (*domain.Rating, error) {
	m, err := latestRating(r.db.WithContext(ctx), userID, storeID)
	if err != nil {
		return nil, err
	}
	return m.toDomain(), nil
}

// Upsert serialises on the rater's user row so that two concurrent submits
// from the same user cannot both insert.
func (r *RatingRepository) Upsert(ctx context.Context, userID, storeID uint, value int) (*domain.Rating, bool, error) {
	var (
		out     *domain.Rating
		created bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user userModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&user, userID).Error; err != nil {
			return userLookupErr(err)
		}

		existing, err := latestRating(tx, userID, storeID)
		switch {
		case err == nil:
			out, err = setRatingValue(tx, *existing, value)
			return err
		case errors.Is(err, domain.ErrRatingNotFound):
			rating := &domain.Rating{UserID: userID, StoreID: storeID, Value: value}
			if err := insertRating(tx, rating); err != nil {
				return err
			}
			out, created = rating, true
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

func insertRating(db *gorm.DB, rating *domain.Rating) error {
	m := ratingModel{Value: rating.Value, UserID: rating.UserID, StoreID: rating.StoreID}
	if err := db.Omit(clause.Associations).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ErrStoreNotFound
		}
		return fmt.Errorf("insert rating: %w", err)
	}
	rating.ID = m.ID
	rating.CreatedAt = m.CreatedAt
	rating.UpdatedAt = m.UpdatedAt
	return nil
}

func setRatingValue(db *gorm.DB, m ratingModel, value int) (*domain.Rating, error) {
	if err := db.Model(&m).Update("value", value).Error; err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	m.Value = value
	return m.toDomain(), nil
}

func latestRating(db *gorm.DB, userID, storeID uint) (*ratingModel, error) {
	var m ratingModel
	err := db.Where("user_id = ? AND store_id = ?", userID, storeID).
		Order("id DESC").
		Take(&m).Error
	if err != nil {
		return nil, ratingLookupErr(err)
	}
	return &m, nil
}

func ratingLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrRatingNotFound
	}
	return fmt.Errorf("find rating: %w", err)
}
