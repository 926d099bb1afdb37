package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore is a fixed-window counter shared by every instance that points
// at the same Redis.
type RedisStore struct {
	client *redis.Client
	policy Policy
	prefix string
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis unavailable: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client, prefix string, policy Policy) *RedisStore {
	if policy.Max < 1 {
		policy.Max = 1
	}
	if policy.Window <= 0 {
		policy.Window = time.Minute
	}
	return &RedisStore{client: client, policy: policy, prefix: prefix}
}

func (s *RedisStore) Take(ctx context.Context, key string) (Decision, error) {
	countKey := s.prefix + ":" + key
	blockKey := s.prefix + ":block:" + key

	if s.policy.BlockFor > 0 {
		ttl, err := s.client.PTTL(ctx, blockKey).Result()
		if err != nil {
			return Decision{}, err
		}
		if ttl > 0 {
			return Decision{RetryAfter: ttl}, nil
		}
	}

	count, err := s.client.Incr(ctx, countKey).Result()
	if err != nil {
		return Decision{}, err
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, countKey, s.policy.Window).Err(); err != nil {
			return Decision{}, err
		}
	}
	if count <= int64(s.policy.Max) {
		return Decision{Allowed: true}, nil
	}

	if s.policy.BlockFor > 0 {
		if err := s.client.Set(ctx, blockKey, 1, s.policy.BlockFor).Err(); err != nil {
			return Decision{}, err
		}
		return Decision{RetryAfter: s.policy.BlockFor}, nil
	}

	ttl, err := s.client.PTTL(ctx, countKey).Result()
	if err != nil {
		return Decision{}, err
	}
	if ttl <= 0 {
		ttl = s.policy.Window
	}
	return Decision{RetryAfter: ttl}, nil
}
