package main

import (
	"context"
	"testing"
	"time"

	"myregistry/adapters/myredis"
	"myregistry/domain"
	"myregistry/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	ctx := context.Background()
	clock := service.NewTimeProvider(time.Now)
	mr := miniredis.RunT(t)

	tests := []struct {
		name   string
		config MyRegistryConfig
	}{
		{name: "memory", config: MyRegistryConfig{Storage: storageMemory, LeaseDuration: time.Minute}},
		{name: "redis", config: MyRegistryConfig{Storage: storageRedis, LeaseDuration: time.Minute}},
	}
	tests[1].config.Redis.Addr = "redis://" + mr.Addr()
	tests[1].config.Redis.KeyPrefix = "test"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, closeFn, err := newRegistry(ctx, &tt.config, clock)
			require.NoError(t, err)
			defer func() { assert.NoError(t, closeFn()) }()

			_, err = registry.Register(ctx, domain.Instance{ServiceName: "orders", InstanceID: "i1", Address: "10.0.0.1:8080"})
			require.NoError(t, err)
			got, err := registry.Query(ctx, "orders")
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
	assert.True(t, mr.Exists("test:instance:orders:i1"))
}

func TestNewRegistry_RedisErrors(t *testing.T) {
	clock := service.NewTimeProvider(time.Now)

	_, _, err := newRegistry(context.Background(), &MyRegistryConfig{Storage: storageRedis, LeaseDuration: time.Minute, Redis: redisCfg("::not a url")}, clock)
	assert.ErrorContains(t, err, "can't create Redis client")

	mr := miniredis.RunT(t)
	addr := "redis://" + mr.Addr()
	mr.Close()
	_, _, err = newRegistry(context.Background(), &MyRegistryConfig{Storage: storageRedis, LeaseDuration: time.Minute, Redis: redisCfg(addr)}, clock)
	assert.ErrorContains(t, err, "can't connect to Redis")
}

func redisCfg(addr string) myredis.RedisConfig {
	return myredis.RedisConfig{Addr: addr, KeyPrefix: "test"}
}
