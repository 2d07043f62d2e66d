package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"time"

	"github.com/dmitrijs2005/authkit/internal/common"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore persists sessions in Redis, delegating TTL enforcement to
// the server (SET with expiry). Claims are stored as a JSON document
// under a prefixed key.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, key string, claims map[string]string, ttl time.Duration) error {
	payload, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("error encoding session payload: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("store error: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (map[string]string, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	claims := make(map[string]string)
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("error decoding session payload: %w", err)
	}
	return claims, nil
}

func (s *RedisStore) Invalidate(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("store error: %w", err)
	}
	return nil
}
