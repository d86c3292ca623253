package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore хранилище поверх Redis
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore создает хранилище поверх готового клиента Redis
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrStore, key, err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: SET %s: %v", ErrStore, key, err)
	}
	return nil
}

func (s *RedisStore) HGet(ctx context.Context, key, field string) (string, error) {
	v, err := s.client.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: HGET %s %s: %v", ErrStore, key, field, err)
	}
	return v, nil
}

func (s *RedisStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	v, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: HGETALL %s: %v", ErrStore, key, err)
	}
	return v, nil
}

func (s *RedisStore) HSet(ctx context.Context, key, field, value string) error {
	if err := s.client.HSet(ctx, key, field, value).Err(); err != nil {
		return fmt.Errorf("%w: HSET %s %s: %v", ErrStore, key, field, err)
	}
	return nil
}

func (s *RedisStore) HDel(ctx context.Context, key, field string) error {
	n, err := s.client.HDel(ctx, key, field).Result()
	if err != nil {
		return fmt.Errorf("%w: HDEL %s %s: %v", ErrStore, key, field, err)
	}
	if n == 0 {
		return ErrKeyNotFound
	}
	return nil
}
