package myredis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myregistry/service"

	"github.com/go-redis/redis/v8"
)

// redisCache stores typed values under prefix:key with a TTL.
type redisCache[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
	zero      T
}

func newCache[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *redisCache[T] {
	var zero T
	return &redisCache[T]{
		client:    client,
		prefix:    prefix,
		zero:      zero,
		marshal:   marshal,
		unmarshal: unmarshal,
	}
}

// writeValue sets the value unconditionally.
func (r *redisCache[T]) writeValue(ctx context.Context, pipe redis.Cmdable, key string, item T, ttl time.Duration) error {
	bytes, err := r.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	err = pipe.Set(ctx, r.generateKey(key), bytes, ttl).Err()
	if err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write item of type %T to redis (key='%s'), err: %w", item, key, err))
	}

	return nil
}

// replaceValue queues a SET XX of the value on pipe. The returned command reports false once the pipeline has run
// if the key no longer existed.
func (r *redisCache[T]) replaceValue(ctx context.Context, pipe redis.Cmdable, key string, item T, ttl time.Duration) (*redis.BoolCmd, error) {
	bytes, err := r.marshal(item)
	if err != nil {
		return nil, service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}
	return pipe.SetXX(ctx, r.generateKey(key), bytes, ttl), nil
}

func (r *redisCache[T]) readValue(ctx context.Context, cmd redis.Cmdable, key string) (T, error) {
	bytes, err := cmd.Get(ctx, r.generateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return r.zero, service.NewEntityNotFoundError("Entity not found", nil)
	}
	if err != nil {
		return r.zero, service.NewInternalServerError("Redis read key error", fmt.Errorf("can't read item of type %T from redis (key='%s'), err: %w", r.zero, key, err))
	}

	item, err := r.unmarshal(bytes)
	if err != nil {
		return r.zero, service.NewInternalServerError("Redis unmarshal item error", fmt.Errorf("can't unmarshal item of type %T (key='%s'), err: %w", r.zero, key, err))
	}
	return item, nil
}

// readValues fetches keys in one MGET. Keys that are missing or hold undecodable data are reported in missing.
func (r *redisCache[T]) readValues(ctx context.Context, keys []string) (found map[string]T, missing []string, err error) {
	found = make(map[string]T, len(keys))
	if len(keys) == 0 {
		return found, nil, nil
	}

	fullKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		fullKeys = append(fullKeys, r.generateKey(k))
	}
	values, err := r.client.MGet(ctx, fullKeys...).Result()
	if err != nil {
		return nil, nil, service.NewInternalServerError("Redis get keys error", fmt.Errorf("redis mget error, err: %w", err))
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, keys[i])
			continue
		}
		item, err := r.unmarshal([]byte(raw))
		if err != nil {
			missing = append(missing, keys[i])
			continue
		}
		found[keys[i]] = item
	}
	return found, missing, nil
}

func (r *redisCache[T]) deleteValue(ctx context.Context, pipe redis.Cmdable, key string) error {
	err := pipe.Del(ctx, r.generateKey(key)).Err()
	if err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete item of type %T from redis (key='%s'), err: %w", r.zero, key, err))
	}
	return nil
}

func (r *redisCache[T]) generateKey(key string) string {
	return r.prefix + ":" + key
}
