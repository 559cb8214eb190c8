package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableClient points at a port nothing listens on so every command fails fast.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestKey(t *testing.T) {
	if got := key("abc-123"); got != "revoked:jti:abc-123" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestDenylist_RevokeExpiredIsNoop(t *testing.T) {
	d := NewDenylist(unreachableClient(t))
	if err := d.Revoke(context.Background(), "jti", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("expected expired token to be skipped without a round trip, got %v", err)
	}
}

func TestDenylist_ErrorsSurface(t *testing.T) {
	d := NewDenylist(unreachableClient(t))
	ctx := context.Background()

	if err := d.Revoke(ctx, "jti", time.Now().Add(time.Hour)); err == nil {
		t.Fatalf("expected revoke error against unreachable redis")
	}
	if _, err := d.IsRevoked(ctx, "jti"); err == nil {
		t.Fatalf("expected check error against unreachable redis")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected ping failure")
	}
}
