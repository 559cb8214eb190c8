package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Role is the access level carried by a user and by every session token.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleOwner Role = "OWNER"
	RoleUser  Role = "USER"
)

// ParseRole normalises s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// PromoteToOwner returns the role a user holds after a store is assigned to
// them. Every role, ADMIN included, becomes OWNER.
func PromoteToOwner(Role) Role {
	return RoleOwner
}

// User models an account. PasswordHash never leaves the process.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Address      string    `json:"address"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRef is the short projection of a user embedded in stores and ratings.
type UserRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// NormalizeEmail lowercases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks account fields. Password strength rules are
// left to clients; only presence is enforced here.
func ValidateRegistration(name, email, password, address string) error {
	var p problems
	if name == "" {
		p.add("name is required")
	} else if utf8.RuneCountInString(name) > UserNameMax {
		p.add("name must be at most 60 characters")
	}
	if email == "" || !ValidEmail(email) {
		p.add("invalid email format")
	}
	if password == "" {
		p.add("password is required")
	}
	if utf8.RuneCountInString(address) > AddressMax {
		p.add("address must be under 400 characters")
	}
	return p.err()
}
