package main

import (
	"fmt"
	"strconv"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/registration"

	"github.com/google/uuid"
)

// Env variable names.
const (
	envConfigPath      = "CONFIG_PATH"
	envHTTPPort        = "SERVICE_PORT_HTTP"
	envRegistryURL     = "REGISTRY_URL"
	envServiceName     = "SERVICE_NAME"
	envInstanceID      = "INSTANCE_ID"
	envInstanceAddress = "INSTANCE_ADDRESS"
	envLeaseDurationMs = "LEASE_DURATION_MS"
	envRenewalInterval = "RENEWAL_INTERVAL_MS"
	envRetryBaseMs     = "RETRY_BASE_MS"
	envRetryMaxMs      = "RETRY_MAX_MS"
	envLogLevel        = "LOG_LEVEL"
)

const (
	defaultServiceName   = "a-bootiful-client"
	defaultLeaseDuration = 30 * time.Second
)

type MyClientConfig struct {
	HTTPPort     int
	RegistryURL  string
	Registration registration.Config
	LogLevel     string
}

type yamlConfig struct {
	HTTPPort          int    `yaml:"service_port_http"`
	RegistryURL       string `yaml:"registry_url"`
	ServiceName       string `yaml:"service_name"`
	InstanceID        string `yaml:"instance_id"`
	InstanceAddress   string `yaml:"instance_address"`
	LeaseDurationMs   int    `yaml:"lease_duration_ms"`
	RenewalIntervalMs int    `yaml:"renewal_interval_ms"`
	RetryBaseMs       int    `yaml:"retry_base_ms"`
	RetryMaxMs        int    `yaml:"retry_max_ms"`
	LogLevel          string `yaml:"log_level"`
}

// LoadConfig loads configuration from the YAML file at CONFIG_PATH (if set) and environment variables.
// SERVICE_PORT_HTTP and REGISTRY_URL are required. INSTANCE_ID defaults to a random UUID and
// INSTANCE_ADDRESS to localhost:<SERVICE_PORT_HTTP>. The renewal interval must be shorter than the lease.
func LoadConfig() (*MyClientConfig, error) {
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

	registryURL := helpers.EnvString(envRegistryURL, raw.RegistryURL)
	if registryURL == "" {
		return nil, fmt.Errorf("%s is required", envRegistryURL)
	}

	lease, err := envMillis(envLeaseDurationMs, raw.LeaseDurationMs, defaultLeaseDuration)
	if err != nil {
		return nil, err
	}
	if lease <= 0 {
		return nil, fmt.Errorf("%s must be positive", envLeaseDurationMs)
	}
	renewal, err := envMillis(envRenewalInterval, raw.RenewalIntervalMs, lease/3)
	if err != nil {
		return nil, err
	}
	if renewal <= 0 || renewal >= lease {
		return nil, fmt.Errorf("%s must be positive and shorter than %s", envRenewalInterval, envLeaseDurationMs)
	}
	retryBase, err := envMillis(envRetryBaseMs, raw.RetryBaseMs, registration.DefaultRetryBase)
	if err != nil {
		return nil, err
	}
	retryMax, err := envMillis(envRetryMaxMs, raw.RetryMaxMs, registration.DefaultRetryMax)
	if err != nil {
		return nil, err
	}
	if retryBase <= 0 || retryMax < retryBase {
		return nil, fmt.Errorf("%s must be positive and not above %s", envRetryBaseMs, envRetryMaxMs)
	}

	instance := domain.Instance{
		ServiceName:   helpers.EnvString(envServiceName, stringOr(raw.ServiceName, defaultServiceName)),
		InstanceID:    helpers.EnvString(envInstanceID, stringOr(raw.InstanceID, uuid.NewString())),
		Address:       helpers.EnvString(envInstanceAddress, stringOr(raw.InstanceAddress, "localhost:"+strconv.Itoa(httpPort))),
		Status:        domain.StatusUp,
		LeaseDuration: lease,
	}
	if err := instance.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instance descriptor: %w", err)
	}

	return &MyClientConfig{
		HTTPPort:    httpPort,
		RegistryURL: registryURL,
		Registration: registration.Config{
			Instance:        instance,
			RenewalInterval: renewal,
			RetryBase:       retryBase,
			RetryMax:        retryMax,
		},
		LogLevel: helpers.EnvString(envLogLevel, raw.LogLevel),
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
