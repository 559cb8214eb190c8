package domain

import "time"

// Claims is the identity carried by a verified session token.
type Claims struct {
	UserID    uint
	Role      Role
	TokenID   string // jti, used for revocation on logout
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the claims' role is one of roles.
func (c *Claims) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
