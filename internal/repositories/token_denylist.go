package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/recipe-share/internal/logger"
)

// TokenDenylistRepository stores revoked token IDs in Redis until the token
// would have expired anyway.
type TokenDenylistRepository struct {
	client *redis.Client
}

func NewTokenDenylistRepository(client *redis.Client) *TokenDenylistRepository {
	return &TokenDenylistRepository{client: client}
}

func denylistKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

// Revoke denylists tokenID for ttl. A non-positive ttl is a no-op since the
// token has already expired.
func (r *TokenDenylistRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	key := denylistKey(tokenID)
	err := r.client.Set(ctx, key, "1", ttl).Err()

	logger.FromContext(ctx).Infow("token revoked",
		"key", key,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// IsRevoked reports whether tokenID has been denylisted.
func (r *TokenDenylistRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := denylistKey(tokenID)
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		logger.FromContext(ctx).Errorw("denylist lookup failed", "key", key, "error", err)
		return false, err
	}
	return n > 0, nil
}
