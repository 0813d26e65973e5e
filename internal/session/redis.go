package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "storefront:session:"

// RedisStore keeps one hash per origin.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) hashKey(origin string) string {
	return redisKeyPrefix + origin
}

func (r *RedisStore) Get(ctx context.Context, origin, key string) (string, error) {
	v, err := r.client.HGet(ctx, r.hashKey(origin), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *RedisStore) Set(ctx context.Context, origin, key, value string) error {
	return r.client.HSet(ctx, r.hashKey(origin), key, value).Err()
}

func (r *RedisStore) Delete(ctx context.Context, origin, key string) error {
	return r.client.HDel(ctx, r.hashKey(origin), key).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
