package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "bookmarker:revoked:"

type (
	// Denylist remembers revoked token ids until the tokens would have expired anyway.
	Denylist interface {
		Revoke(ctx context.Context, tokenID string, until time.Time) error
		IsRevoked(ctx context.Context, tokenID string) (bool, error)
	}

	RedisDenylist struct {
		client *redis.Client
		now    func() time.Time
	}

	NopDenylist struct{}
)

// NewDenylist falls back to a no-op list when redis is not configured.
func NewDenylist(client *redis.Client) Denylist {
	if client == nil {
		return NopDenylist{}
	}
	return NewRedisDenylist(client)
}

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{
		client: client,
		now:    time.Now,
	}
}

func RevokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, RevokedKey(tokenID), 1, ttl).Err(); err != nil {
		return errors.Wrap(err, "revoke token")
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, RevokedKey(tokenID)).Result()
	if err != nil {
		return false, errors.Wrap(err, "check revoked token")
	}
	return n > 0, nil
}

func (NopDenylist) Revoke(context.Context, string, time.Time) error { return nil }

func (NopDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }
