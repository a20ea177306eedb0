package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "pokeshiri:session:"

// Redis stores each scope as a hash that expires ttl after its last write.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) hashKey(scope string) string {
	return redisKeyPrefix + scope
}

func (r *Redis) Get(ctx context.Context, scope, key string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.hashKey(scope), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, scope, key, value string) error {
	hk := r.hashKey(scope)
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, hk, key, value)
		if r.ttl > 0 {
			p.Expire(ctx, hk, r.ttl)
		}
		return nil
	})
	return err
}

func (r *Redis) Remove(ctx context.Context, scope, key string) error {
	return r.client.HDel(ctx, r.hashKey(scope), key).Err()
}

func (r *Redis) Clear(ctx context.Context, scope string) error {
	return r.client.Del(ctx, r.hashKey(scope)).Err()
}

var _ Backend = (*Redis)(nil)
