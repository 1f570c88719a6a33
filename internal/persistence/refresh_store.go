package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshNamespace = "refresh"

// RefreshStore tracks live refresh sessions by token id. A session is usable once.
type RefreshStore struct {
	client *redis.Client
	redis  *Redis
}

// NewRefreshStore binds the store to the shared Redis client.
func NewRefreshStore(r *Redis) *RefreshStore {
	return &RefreshStore{client: r.Client, redis: r}
}

func (s *RefreshStore) key(tokenID string) string {
	return s.redis.Key(refreshNamespace, tokenID)
}

// Save records the session of tokenID for userID until ttl elapses.
func (s *RefreshStore) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(tokenID), userID, ttl).Err()
}

// Consume atomically removes the session and returns its owner. ok is false when the
// session was never saved, already used, revoked or expired.
func (s *RefreshStore) Consume(ctx context.Context, tokenID string) (userID string, ok bool, err error) {
	userID, err = s.client.GetDel(ctx, s.key(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return userID, true, nil
}

// Revoke drops the session of tokenID if present.
func (s *RefreshStore) Revoke(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, s.key(tokenID)).Err()
}
