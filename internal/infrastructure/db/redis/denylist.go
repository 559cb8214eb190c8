package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist stores revoked session token IDs.
// Key format: revoked:jti:<token_id>, expiring when the token itself would.
type Denylist struct {
	client redis.Cmdable
}

func NewDenylist(client redis.Cmdable) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks tokenID as revoked until the given time. Tokens that have
// already expired are skipped since verification rejects them anyway.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked and has not yet expired.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func key(tokenID string) string {
	return "revoked:jti:" + tokenID
}
