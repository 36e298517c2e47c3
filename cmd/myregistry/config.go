package main

import (
	"fmt"
	"time"

	"myregistry/adapters/myredis"
	"myregistry/helpers"
)

// Env variable names.
const (
	envConfigPath       = "CONFIG_PATH"
	envHTTPPort         = "SERVICE_PORT_HTTP"
	envGRPCPort         = "SERVICE_PORT_GRPC"
	envLeaseDurationMs  = "LEASE_DURATION_MS"
	envEvictionInterval = "EVICTION_INTERVAL_MS"
	envStorage          = "STORAGE"
	envRedisAddr        = "REDIS_ADDR"
	envRedisKeyPrefix   = "REDIS_KEY_PREFIX"
	envRateLimitRPS     = "RATE_LIMIT_RPS"
	envRateBurst        = "RATE_BURST"
	envLogLevel         = "LOG_LEVEL"
)

const (
	storageMemory = "memory"
	storageRedis  = "redis"

	defaultLeaseDuration = 30 * time.Second
)

type MyRegistryConfig struct {
	HTTPPort int
	// GRPCPort serves grpc.health.v1 when non-zero.
	GRPCPort         int
	LeaseDuration    time.Duration
	EvictionInterval time.Duration
	Storage          string
	Redis            myredis.RedisConfig
	RateLimitRPS     float64
	RateBurst        int
	LogLevel         string
}

// yamlConfig is the optional file at CONFIG_PATH. Environment variables override every field.
type yamlConfig struct {
	HTTPPort           int     `yaml:"service_port_http"`
	GRPCPort           int     `yaml:"service_port_grpc"`
	LeaseDurationMs    int     `yaml:"lease_duration_ms"`
	EvictionIntervalMs int     `yaml:"eviction_interval_ms"`
	Storage            string  `yaml:"storage"`
	RateLimitRPS       float64 `yaml:"rate_limit_rps"`
	RateBurst          int     `yaml:"rate_burst"`
	LogLevel           string  `yaml:"log_level"`
	Redis              struct {
		Addr      string `yaml:"addr"`
		KeyPrefix string `yaml:"key_prefix"`
	} `yaml:"redis"`
}

// LoadConfig loads configuration from the YAML file at CONFIG_PATH (if set) and environment variables.
// SERVICE_PORT_HTTP is required; REDIS_ADDR is required when STORAGE=redis. The eviction interval
// defaults to a third of the lease duration.
func LoadConfig() (*MyRegistryConfig, error) {
	var raw yamlConfig
	if path := helpers.EnvString(envConfigPath, ""); path != "" {
		if err := helpers.LoadYAML(path, &raw); err != nil {
			return nil, err
		}
	}

	httpPort, err := helpers.EnvInt(envHTTPPort, raw.HTTPPort)
	if err != nil {
		return nil, err
	}
	if httpPort == 0 {
		return nil, fmt.Errorf("%s is required", envHTTPPort)
	}
	if err := helpers.ValidPort(envHTTPPort, httpPort); err != nil {
		return nil, err
	}

	grpcPort, err := helpers.EnvInt(envGRPCPort, raw.GRPCPort)
	if err != nil {
		return nil, err
	}
	if grpcPort != 0 {
		if err := helpers.ValidPort(envGRPCPort, grpcPort); err != nil {
			return nil, err
		}
	}

	lease, err := envMillis(envLeaseDurationMs, raw.LeaseDurationMs, defaultLeaseDuration)
	if err != nil {
		return nil, err
	}
	if lease <= 0 {
		return nil, fmt.Errorf("%s must be positive", envLeaseDurationMs)
	}
	eviction, err := envMillis(envEvictionInterval, raw.EvictionIntervalMs, lease/3)
	if err != nil {
		return nil, err
	}
	if eviction <= 0 {
		return nil, fmt.Errorf("%s must be positive", envEvictionInterval)
	}

	storage := helpers.EnvString(envStorage, stringOr(raw.Storage, storageMemory))
	redisCfg := myredis.RedisConfig{
		Addr:      helpers.EnvString(envRedisAddr, raw.Redis.Addr),
		KeyPrefix: helpers.EnvString(envRedisKeyPrefix, stringOr(raw.Redis.KeyPrefix, myredis.DefaultKeyPrefix)),
	}
	switch storage {
	case storageMemory:
	case storageRedis:
		if redisCfg.Addr == "" {
			return nil, fmt.Errorf("%s is required when %s=%s", envRedisAddr, envStorage, storageRedis)
		}
	default:
		return nil, fmt.Errorf("%s must be %s|%s, got %q", envStorage, storageMemory, storageRedis, storage)
	}

	rps, err := helpers.EnvFloat(envRateLimitRPS, raw.RateLimitRPS)
	if err != nil {
		return nil, err
	}
	if rps < 0 {
		return nil, fmt.Errorf("%s must not be negative", envRateLimitRPS)
	}
	burst, err := helpers.EnvInt(envRateBurst, raw.RateBurst)
	if err != nil {
		return nil, err
	}

	return &MyRegistryConfig{
		HTTPPort:         httpPort,
		GRPCPort:         grpcPort,
		LeaseDuration:    lease,
		EvictionInterval: eviction,
		Storage:          storage,
		Redis:            redisCfg,
		RateLimitRPS:     rps,
		RateBurst:        burst,
		LogLevel:         helpers.EnvString(envLogLevel, raw.LogLevel),
	}, nil
}

// envMillis reads name from the environment, falling back to the YAML value ms and then to def.
func envMillis(name string, ms int, def time.Duration) (time.Duration, error) {
	if ms != 0 {
		d, err := helpers.Millis(name, ms)
		if err != nil {
			return 0, err
		}
		def = d
	}
	return helpers.EnvMillis(name, def)
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
