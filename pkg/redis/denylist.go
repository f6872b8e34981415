package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "revoked_token:"

// TokenDenylist stores revoked token ids until the token would have
// expired anyway.
type TokenDenylist struct {
	rdb redis.Cmdable
}

func NewTokenDenylist(rdb redis.Cmdable) *TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

// Revoke marks tokenID as revoked for ttl. Non-positive ttl is a no-op since
// the token is already expired.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, denylistPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked reports whether tokenID was revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
