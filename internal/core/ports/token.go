package ports

import (
	"context"
	"time"

	"github.com/storepulse/store-rating/internal/core/domain"
)

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(userID uint, role domain.Role) (token string, expiresAt time.Time, err error)
}

// TokenVerifier validates a session token and returns its claims.
// Any failure is reported as domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenDenylist records revoked token IDs until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
