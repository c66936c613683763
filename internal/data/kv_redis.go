package data

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ KV = (*RedisKV)(nil)

// RedisKV stores each key as a plain redis string.
type RedisKV struct {
	rdb *redis.Client
}

// NewRedisKV wraps an existing client. Close closes the client.
func NewRedisKV(rdb *redis.Client) *RedisKV {
	return &RedisKV{rdb: rdb}
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *RedisKV) Put(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *RedisKV) PutTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, value, ttl).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisKV) Close() error {
	return r.rdb.Close()
}
