package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for denylisted token IDs.
const revokedTokenKeyPrefix = "denylist:jti:"

// RedisDenylist is a Redis-backed token denylist. Sessions stay stateless;
// the denylist is the additive escape hatch for forced logout. Entries expire
// with the token itself, so the set stays bounded by the validity window.
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist constructs a Redis-backed token denylist.
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

// Revoke adds a token ID to the denylist with TTL.
func (d *RedisDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	// Store "1" as a simple marker; the key existence is what matters
	return d.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked checks if a token ID is denylisted.
// Returns false if the key doesn't exist (not revoked or expired).
func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := d.client.Get(ctx, revokedTokenKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
