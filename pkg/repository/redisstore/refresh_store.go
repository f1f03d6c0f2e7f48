// Package redisstore keeps issued refresh-token ids in Redis so tokens can
// be rotated: each jti lives under its own key with the token's remaining
// TTL and is removed atomically on first use.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RefreshStore struct {
	client *redis.Client
}

func NewRefreshStore(client *redis.Client) *RefreshStore {
	return &RefreshStore{client: client}
}

func tokenKey(jti string) string {
	return "refresh_token:" + jti
}

func (s *RefreshStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("refresh token ttl already elapsed")
	}
	if err := s.client.Set(ctx, tokenKey(jti), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Consume deletes jti and reports whether it existed. GETDEL makes the
// check-and-remove atomic, so a replayed refresh token loses the race.
func (s *RefreshStore) Consume(ctx context.Context, jti string) (bool, error) {
	_, err := s.client.GetDel(ctx, tokenKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consume refresh token: %w", err)
	}
	return true, nil
}
