package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV is a Redis-backed ephemeral key-value store with TTL support. Spent
// request tokens live here when several processes share a deployment.
type KV struct {
	rdb    *redis.Client
	prefix string
}

func NewKV(rdb *redis.Client) *KV {
	return &KV{rdb: rdb}
}

// WithPrefix namespaces every key, e.g. per host application.
func (k *KV) WithPrefix(prefix string) *KV { k.prefix = prefix; return k }

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := k.rdb.Get(ctx, k.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return k.rdb.Set(ctx, k.prefix+key, value, ttl).Err()
}

func (k *KV) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return k.rdb.SetNX(ctx, k.prefix+key, value, ttl).Result()
}

func (k *KV) Del(ctx context.Context, key string) error {
	return k.rdb.Del(ctx, k.prefix+key).Err()
}
