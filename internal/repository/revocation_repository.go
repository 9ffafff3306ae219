package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationRepository remembers logged-out token ids until they expire.
type RevocationRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedKeyPrefix = "auth:revoked:"

type redisRevocationRepository struct {
	client *redis.Client
}

// NewRedisRevocationRepository stores revocations as expiring Redis keys.
func NewRedisRevocationRepository(client *redis.Client) RevocationRepository {
	return &redisRevocationRepository{client: client}
}

func (r *redisRevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (r *redisRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
