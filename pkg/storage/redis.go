package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisProvider 将每个 key 保存为一个 redis 字符串
type RedisProvider struct {
	Redis *redis.Client
}

func NewRedisProvider(rdb *redis.Client) *RedisProvider {
	return &RedisProvider{Redis: rdb}
}

func (p *RedisProvider) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := p.Redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	return data, err
}

func (p *RedisProvider) Put(ctx context.Context, key string, value []byte) error {
	return p.Redis.Set(ctx, key, value, 0).Err()
}

func (p *RedisProvider) Delete(ctx context.Context, key string) error {
	return p.Redis.Del(ctx, key).Err()
}

func (p *RedisProvider) Name() string { return "redis" }
