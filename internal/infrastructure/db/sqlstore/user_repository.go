package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/storepulse/store-rating/internal/core/domain"
	"github.com/storepulse/store-rating/internal/core/ports"
)

// UserRepository implements ports.UserRepository on gorm.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	m := userFromDomain(user)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, userLookupErr(err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, userLookupErr(err)
	}
	return m.toDomain(), nil
}

// List returns users ordered by id. Search matches name or email.
func (r *UserRepository) List(ctx context.Context, filter ports.UserFilter) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&userModel{}).Order("id ASC")
	if filter.Role != "" {
		q = q.Where("role = ?", string(filter.Role))
	}
	if filter.Search != "" {
		like := containsPattern(filter.Search)
		q = q.Where(likeClause("name")+" OR "+likeClause("email"), like, like)
	}

	var rows []userModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, *m.toDomain())
	}
	return out, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func userLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return fmt.Errorf("find user: %w", err)
}

// likeEscape is the LIKE escape character. A backslash would need different
// quoting on MySQL, so a plain '!' is used on every dialect.
const likeEscape = "!"

// containsPattern lowercases s for a case-insensitive LIKE and escapes the
// wildcards typed by the caller so they match literally. Use it with
// likeClause.
func containsPattern(s string) string {
	s = strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		`%`, likeEscape+`%`,
		`_`, likeEscape+`_`,
		`[`, likeEscape+`[`,
	).Replace(strings.ToLower(s))
	return "%" + s + "%"
}

// likeClause builds "LOWER(col) LIKE ? ESCAPE '!'".
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + likeEscape + "'"
}
