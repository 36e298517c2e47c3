package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		envConfigPath, envHTTPPort, envGRPCPort, envLeaseDurationMs, envEvictionInterval,
		envStorage, envRedisAddr, envRedisKeyPrefix, envRateLimitRPS, envRateBurst, envLogLevel,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_ServicePortRequired(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SERVICE_PORT_HTTP is required")
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(envHTTPPort, "8080")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Zero(t, cfg.GRPCPort)
	assert.Equal(t, 30*time.Second, cfg.LeaseDuration)
	assert.Equal(t, 10*time.Second, cfg.EvictionInterval)
	assert.Equal(t, storageMemory, cfg.Storage)
	assert.Equal(t, "myregistry", cfg.Redis.KeyPrefix)
	assert.Zero(t, cfg.RateLimitRPS)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "bad port", env: map[string]string{envHTTPPort: "http"}, wantErr: "SERVICE_PORT_HTTP must be an integer"},
		{name: "port out of range", env: map[string]string{envHTTPPort: "70000"}, wantErr: "SERVICE_PORT_HTTP must be 1-65535"},
		{name: "grpc port out of range", env: map[string]string{envHTTPPort: "8080", envGRPCPort: "-1"}, wantErr: "SERVICE_PORT_GRPC must be 1-65535"},
		{name: "zero lease", env: map[string]string{envHTTPPort: "8080", envLeaseDurationMs: "-5"}, wantErr: "LEASE_DURATION_MS must be positive"},
		{name: "negative eviction", env: map[string]string{envHTTPPort: "8080", envEvictionInterval: "-1"}, wantErr: "EVICTION_INTERVAL_MS must be positive"},
		{name: "unknown storage", env: map[string]string{envHTTPPort: "8080", envStorage: "etcd"}, wantErr: "STORAGE must be memory|redis"},
		{name: "redis without addr", env: map[string]string{envHTTPPort: "8080", envStorage: "redis"}, wantErr: "REDIS_ADDR is required when STORAGE=redis"},
		{name: "negative rate", env: map[string]string{envHTTPPort: "8080", envRateLimitRPS: "-1"}, wantErr: "RATE_LIMIT_RPS must not be negative"},
		{name: "missing file", env: map[string]string{envConfigPath: "/nonexistent/myregistry.yaml"}, wantErr: "load config"},
		{name: "lease overflowing duration", env: map[string]string{envHTTPPort: "8080", envLeaseDurationMs: "18446744073710"}, wantErr: "LEASE_DURATION_MS must not exceed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := LoadConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_YAMLWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "myregistry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service_port_http: 9000
service_port_grpc: 9001
lease_duration_ms: 6000
storage: redis
rate_limit_rps: 50
log_level: debug
redis:
  addr: redis://cache:6379
  key_prefix: reg
`), 0o600))
	t.Setenv(envConfigPath, path)
	t.Setenv(envHTTPPort, "9100")
	t.Setenv(envRedisAddr, "redis://other:6380")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTPPort)
	assert.Equal(t, 9001, cfg.GRPCPort)
	assert.Equal(t, 6*time.Second, cfg.LeaseDuration)
	assert.Equal(t, 2*time.Second, cfg.EvictionInterval)
	assert.Equal(t, storageRedis, cfg.Storage)
	assert.Equal(t, "redis://other:6380", cfg.Redis.Addr)
	assert.Equal(t, "reg", cfg.Redis.KeyPrefix)
	assert.Equal(t, 50.0, cfg.RateLimitRPS)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_YAMLLeaseOverflow(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "myregistry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_port_http: 9000\nlease_duration_ms: 18446744073710\n"), 0o600))
	t.Setenv(envConfigPath, path)

	cfg, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "LEASE_DURATION_MS must not exceed")
}
