package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked_token:"

// TokenRevocationRepository stores revoked token ids in Redis until the
// token would have expired anyway.
type TokenRevocationRepository struct {
	client redis.UniversalClient
}

// NewTokenRevocationRepository constructs repository.
func NewTokenRevocationRepository(client redis.UniversalClient) *TokenRevocationRepository {
	return &TokenRevocationRepository{client: client}
}

// Revoke marks tokenID as revoked. Already-expired tokens are ignored.
func (r *TokenRevocationRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedTokenPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked reports whether tokenID has been revoked.
func (r *TokenRevocationRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
