package main

import (
	"context"
	"fmt"
	"time"

	"myregistry/adapters/memory"
	"myregistry/adapters/myredis"
	"myregistry/interfaces"
)

// newRegistry builds the configured backend. The returned close func releases its resources.
func newRegistry(ctx context.Context, config *MyRegistryConfig, clock interfaces.TimeProvider) (interfaces.Registry, func() error, error) {
	switch config.Storage {
	case storageRedis:
		client, err := myredis.NewRedisUniversalClient(config.Redis.Addr, myredis.WithTimeouts(2*time.Second))
		if err != nil {
			return nil, nil, fmt.Errorf("can't create Redis client: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("can't connect to Redis: %w", err)
		}
		return myredis.NewRegistry(client, config.Redis.KeyPrefix, clock, config.LeaseDuration), client.Close, nil
	default:
		return memory.NewRegistry(clock, config.LeaseDuration), func() error { return nil }, nil
	}
}
