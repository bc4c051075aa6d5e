package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token ids until their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NoopDenylist keeps nothing: logout stays stateless and a token is honored
// until it expires.
type NoopDenylist struct{}

func (NoopDenylist) Revoke(context.Context, string, time.Time) error { return nil }
func (NoopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// redisCmdable is the part of the go-redis client the denylist needs.
type redisCmdable interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

const denylistPrefix = "taskkeeper:revoked:"

// RedisDenylist stores revoked ids as keys that expire with the token.
type RedisDenylist struct {
	client redisCmdable
	now    func() time.Time
}

func NewRedisDenylist(client redisCmdable) *RedisDenylist {
	return &RedisDenylist{client: client, now: time.Now}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistPrefix+jti, 1, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
