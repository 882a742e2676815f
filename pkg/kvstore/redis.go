package kvstore

import (
	"context"
	"errors"
	"strings"

	"github.com/go-redis/redis/v8"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return value, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return translateRedisError(s.client.Set(ctx, key, value, 0).Err())
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// maxmemory dolduğunda Redis "OOM command not allowed" döner
func translateRedisError(err error) error {
	if err != nil && strings.HasPrefix(err.Error(), "OOM ") {
		return ErrQuotaExceeded
	}
	return err
}
