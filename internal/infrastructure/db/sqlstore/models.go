package sqlstore

import (
	"time"

	"github.com/storepulse/store-rating/internal/core/domain"
)

type userModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:60;not null"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	Password  string `gorm:"size:100;not null"`
	Address   string `gorm:"size:400"`
	Role      string `gorm:"size:10;not null;default:USER;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type storeModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:60;not null"`
	Email     string    `gorm:"size:255;not null"`
	Address   string    `gorm:"size:400;not null"`
	OwnerID   uint      `gorm:"index;not null"`
	Owner     userModel `gorm:"foreignKey:OwnerID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (storeModel) TableName() string { return "stores" }

type ratingModel struct {
	ID        uint       `gorm:"primaryKey"`
	Value     int        `gorm:"not null;check:chk_ratings_value,value >= 1 AND value <= 5"`
	UserID    uint       `gorm:"not null;index:idx_ratings_user_store,priority:1"`
	StoreID   uint       `gorm:"not null;index;index:idx_ratings_user_store,priority:2"`
	User      userModel  `gorm:"foreignKey:UserID"`
	Store     storeModel `gorm:"foreignKey:StoreID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ratingModel) TableName() string { return "ratings" }

func userFromDomain(u *domain.User) userModel {
	return userModel{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.PasswordHash,
		Address:  u.Address,
		Role:     string(u.Role),
	}
}

func (m userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Address:      m.Address,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (m userModel) toRef() *domain.UserRef {
	if m.ID == 0 {
		return nil
	}
	return &domain.UserRef{ID: m.ID, Name: m.Name, Email: m.Email, Role: domain.Role(m.Role)}
}

func (m storeModel) toDomain() *domain.Store {
	return &domain.Store{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Address:   m.Address,
		OwnerID:   m.OwnerID,
		Owner:     m.Owner.toRef(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toDomain attaches the rater without their role, matching what store
// owners are allowed to see.
func (m ratingModel) toDomain() *domain.Rating {
	r := &domain.Rating{
		ID:        m.ID,
		Value:     m.Value,
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.User.ID != 0 {
		r.User = &domain.UserRef{ID: m.User.ID, Name: m.User.Name, Email: m.User.Email}
	}
	return r
}
