package domain

import (
	"regexp"
	"time"
	"unicode/utf8"
)

const (
	StoreNameMin = 2
	StoreNameMax = 60
	AddressMax   = 400
	UserNameMax  = 60
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail applies the simple user@host.tld pattern used across the API.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Store is a rated business. OwnerID always references an existing user.
type Store struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   uint      `json:"ownerId"`
	Owner     *UserRef  `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreSummary is a store annotated with its rating aggregate.
// AvgRating is nil when the store has no ratings.
type StoreSummary struct {
	Store
	AvgRating   *float64 `json:"avgRating"`
	RatingCount int64    `json:"ratingCount"`
}

// ValidateStore checks the store fields before they reach the database.
func ValidateStore(name, email, address string) error {
	var p problems
	if n := utf8.RuneCountInString(name); n < StoreNameMin || n > StoreNameMax {
		p.add("store name must be between 2 and 60 characters")
	}
	if email == "" || !ValidEmail(email) {
		p.add("invalid email format")
	}
	if address == "" {
		p.add("address is required")
	} else if utf8.RuneCountInString(address) > AddressMax {
		p.add("address must be under 400 characters")
	}
	return p.err()
}
