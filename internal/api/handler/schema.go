package handler

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// flexInt accepts a JSON number or a numeric string, as sent by HTML form
// inputs. Fractions and other strings are rejected.
type flexInt int64

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("expected an integer, got %s", b)
	}
	*f = flexInt(n)
	return nil
}

func (f *flexInt) asUint() uint {
	if f == nil || *f < 0 {
		return 0
	}
	return uint(*f)
}

func (f *flexInt) asInt() int {
	if f == nil {
		return 0
	}
	return int(*f)
}

// --- Request types ---

// Field rules for registration and stores live in the domain validators.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type createStoreRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Address string   `json:"address"`
	OwnerID *flexInt `json:"ownerId" validate:"required"`
}

type createRatingRequest struct {
	StoreID *flexInt `json:"storeId" validate:"required"`
	Value   *flexInt `json:"value"   validate:"required"`
}

type updateRatingRequest struct {
	RatingID *flexInt `json:"ratingId" validate:"required"`
	Value    *flexInt `json:"value"    validate:"required"`
}

// --- Response types ---

type userResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Role    string `json:"role"`
}

type authResponse struct {
	Success bool         `json:"success,omitempty"`
	Message string       `json:"message,omitempty"`
	User    userResponse `json:"user"`
	Token   string       `json:"token"`
}

type userEnvelope struct {
	User userResponse `json:"user"`
}

type usersEnvelope struct {
	Users []userResponse `json:"users"`
}

type storeResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Address   string          `json:"address"`
	OwnerID   uint            `json:"ownerId"`
	Owner     *domain.UserRef `json:"owner,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type storeSummaryResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	Owner       *domain.UserRef `json:"owner,omitempty"`
	AvgRating   *float64        `json:"avgRating"`
	RatingCount int64           `json:"ratingCount"`
}

type createStoreResponse struct {
	Message     string          `json:"message"`
	Store       storeResponse   `json:"store"`
	UpdatedUser *domain.UserRef `json:"updatedUser,omitempty"`
}

type storeEnvelope struct {
	Store storeResponse `json:"store"`
}

type storesEnvelope struct {
	Stores []storeSummaryResponse `json:"stores"`
}

type ratingResponse struct {
	ID        uint            `json:"id"`
	Value     int             `json:"value"`
	UserID    uint            `json:"userId"`
	StoreID   uint            `json:"storeId"`
	User      *domain.UserRef `json:"user,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ratingEnvelope struct {
	Message string         `json:"message,omitempty"`
	Rating  ratingResponse `json:"rating"`
	Created *bool          `json:"created,omitempty"`
}

type updatedRatingEnvelope struct {
	Message       string         `json:"message"`
	UpdatedRating ratingResponse `json:"updatedRating"`
}

type ratingsEnvelope struct {
	Ratings []ratingResponse `json:"ratings"`
}

type statsEnvelope struct {
	Stats domain.DashboardStats `json:"stats"`
}

type activityEnvelope struct {
	Activity []domain.Activity `json:"activity"`
}
