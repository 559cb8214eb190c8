package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// StoreRepository implements ports.StoreRepository on gorm.
type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// CreateWithOwnerPromotion locks the owner row, inserts the store and
// promotes the owner inside one transaction. The new role is derived from the
// locked row.
func (r *StoreRepository) CreateWithOwnerPromotion(ctx context.Context, store *domain.Store) (domain.Role, error) {
	var previous domain.Role
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner userModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&owner, store.OwnerID).Error; err != nil {
			return userLookupErr(err)
		}
		previous = domain.Role(owner.Role)

		m := storeModel{
			Name:    store.Name,
			Email:   store.Email,
			Address: store.Address,
			OwnerID: store.OwnerID,
		}
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			return fmt.Errorf("insert store: %w", err)
		}

		promoted := domain.PromoteToOwner(previous)
		if err := tx.Model(&userModel{}).Where("id = ?", owner.ID).Update("role", string(promoted)).Error; err != nil {
			return fmt.Errorf("promote owner: %w", err)
		}

		store.ID = m.ID
		store.CreatedAt = m.CreatedAt
		store.UpdatedAt = m.UpdatedAt
		return nil
	})
	if err != nil {
		return "", err
	}
	return previous, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id uint) (*domain.Store, error) {
	var m storeModel
	if err := r.db.WithContext(ctx).Preload("Owner").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}
	return m.toDomain(), nil
}

func (r *StoreRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&storeModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count store: %w", err)
	}
	return n > 0, nil
}

func (r *StoreRepository) List(ctx context.Context, search string) ([]domain.StoreSummary, error) {
	q := r.db.WithContext(ctx)
	if search != "" {
		q = q.Where(likeClause("stores.name"), containsPattern(search))
	}
	return r.summaries(ctx, q)
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.StoreSummary, error) {
	return r.summaries(ctx, r.db.WithContext(ctx).Where("owner_id = ?", ownerID))
}

type ratingAggregate struct {
	StoreID     uint
	RatingSum   int64
	RatingCount int64
}

// summaries loads the stores selected by q with their owners, then attaches
// SUM/COUNT aggregates from a single grouped query over ratings.
func (r *StoreRepository) summaries(ctx context.Context, q *gorm.DB) ([]domain.StoreSummary, error) {
	var rows []storeModel
	if err := q.Preload("Owner").Order("stores.id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if len(rows) == 0 {
		return []domain.StoreSummary{}, nil
	}

	ids := make([]uint, len(rows))
	for i, m := range rows {
		ids[i] = m.ID
	}

	var aggs []ratingAggregate
	err := r.db.WithContext(ctx).Model(&ratingModel{}).
		Select("store_id, COALESCE(SUM(value), 0) AS rating_sum, COUNT(*) AS rating_count").
		Where("store_id IN ?", ids).
		Group("store_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	byStore := make(map[uint]ratingAggregate, len(aggs))
	for _, a := range aggs {
		byStore[a.StoreID] = a
	}

	out := make([]domain.StoreSummary, 0, len(rows))
	for _, m := range rows {
		a := byStore[m.ID]
		out = append(out, domain.StoreSummary{
			Store:       *m.toDomain(),
			AvgRating:   domain.MeanFrom(a.RatingSum, a.RatingCount),
			RatingCount: a.RatingCount,
		})
	}
	return out, nil
}
