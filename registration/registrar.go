// Package registration keeps one service instance registered with a MyRegistry server.
package registration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	DefaultRetryBase         = 500 * time.Millisecond
	DefaultRetryMax          = 30 * time.Second
	DefaultDeregisterTimeout = 5 * time.Second
)

// ErrAlreadyStarted is returned by Registrar.Start when the registrar is running.
var ErrAlreadyStarted = errors.New("registrar already started")

// Config describes the instance to keep registered and the client timing.
type Config struct {
	// Instance is the descriptor sent on every registration. LeaseDuration is required.
	Instance domain.Instance
	// RenewalInterval defaults to a third of the lease and must be shorter than the lease.
	RenewalInterval time.Duration
	// RetryBase and RetryMax bound the exponential backoff between failed registrations.
	RetryBase time.Duration
	RetryMax  time.Duration
	// DeregisterTimeout bounds the best-effort deregistration done by Stop.
	DeregisterTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.RenewalInterval == 0 && c.Instance.LeaseDuration > 0 {
		c.RenewalInterval = c.Instance.LeaseDuration / 3
	}
	if c.RetryBase == 0 {
		c.RetryBase = DefaultRetryBase
	}
	if c.RetryMax == 0 {
		c.RetryMax = DefaultRetryMax
	}
	if c.DeregisterTimeout == 0 {
		c.DeregisterTimeout = DefaultDeregisterTimeout
	}
	return c
}

// Validate returns a bad_parameter error when the descriptor or the timing is unusable.
func (c Config) Validate() error {
	if err := c.Instance.Validate(); err != nil {
		return service.NewBadParameterError(err.Error(), nil)
	}
	switch {
	case c.Instance.LeaseDuration <= 0:
		return service.NewBadParameterError("lease duration must be positive", nil)
	case c.RenewalInterval <= 0:
		return service.NewBadParameterError("renewal interval must be positive", nil)
	case c.RenewalInterval >= c.Instance.LeaseDuration:
		return service.NewBadParameterError("renewal interval must be shorter than the lease duration", nil)
	case c.RetryBase <= 0 || c.RetryMax < c.RetryBase:
		return service.NewBadParameterError("retry base must be positive and not above retry max", nil)
	}
	return nil
}

// Registrar registers an instance, renews its lease in the background and deregisters it on Stop.
// Registry outages never surface to the caller: failed registrations are retried with backoff
// and failed renewals on the next tick.
type Registrar struct {
	api    interfaces.RegistryAPI
	cfg    Config
	logger log.Logger

	registered atomic.Bool
	ready      chan struct{}
	readyOnce  sync.Once

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRegistrar creates a stopped Registrar. Zero timing fields in cfg get defaults. Panics on nil api or logger.
func NewRegistrar(api interfaces.RegistryAPI, cfg Config, logger log.Logger) *Registrar {
	cfg = cfg.withDefaults()
	logger = helpers.NilPanic(logger, "registration.registrar.go: logger is required")
	return &Registrar{
		api: helpers.NilPanic(api, "registration.registrar.go: api is required"),
		cfg: cfg,
		logger: log.With(logger,
			"component", "Registrar",
			"service", cfg.Instance.ServiceName,
			"instance_id", cfg.Instance.InstanceID,
		),
		ready: make(chan struct{}),
	}
}

// Start validates the configuration and launches registration in the background.
// It fails only on an invalid configuration or when already started, never because the registry is down.
func (r *Registrar) Start(ctx context.Context) error {
	if err := r.cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	go r.run(ctx, r.done)

	level.Info(r.logger).Log("msg", "registrar started", "lease", r.cfg.Instance.LeaseDuration, "renewal_interval", r.cfg.RenewalInterval)
	return nil
}

// Stop halts renewals, waits for the background loop and then deregisters within DeregisterTimeout.
// Deregistration failures are logged only. Stop is a no-op when not started.
func (r *Registrar) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	ctx, cancelDeregister := context.WithTimeout(context.Background(), r.cfg.DeregisterTimeout)
	defer cancelDeregister()
	inst := r.cfg.Instance
	if err := r.api.Deregister(ctx, inst.ServiceName, inst.InstanceID); err != nil {
		level.Warn(r.logger).Log("msg", "deregistration failed", "err", err)
	} else {
		level.Info(r.logger).Log("msg", "instance deregistered")
	}
	r.registered.Store(false)
}

// Ready is closed after the first successful registration.
func (r *Registrar) Ready() <-chan struct{} {
	return r.ready
}

// Registered reports whether the registry holds a lease for this instance as far as the registrar knows.
func (r *Registrar) Registered() bool {
	return r.registered.Load()
}

func (r *Registrar) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	if !r.register(ctx) {
		return
	}

	ticker := time.NewTicker(r.cfg.RenewalInterval)
	defer ticker.Stop()
	inst := r.cfg.Instance
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return
		}

		err := r.api.Renew(ctx, inst.ServiceName, inst.InstanceID)
		switch {
		case err == nil:
			level.Debug(r.logger).Log("msg", "lease renewed")
		case ctx.Err() != nil:
			return
		case service.IsEntityNotFoundError(err):
			r.registered.Store(false)
			level.Warn(r.logger).Log("msg", "registry lost the instance, registering again", "err", err)
			if !r.register(ctx) {
				return
			}
			ticker.Reset(r.cfg.RenewalInterval)
		default:
			level.Warn(r.logger).Log("msg", "lease renewal failed, retrying on next tick", "err", err)
		}
	}
}

// register retries until the registry accepts the instance. Returns false when ctx is done
// or the registry rejects the descriptor.
func (r *Registrar) register(ctx context.Context) bool {
	for attempt := 0; ; attempt++ {
		err := r.api.Register(ctx, r.cfg.Instance)
		if err == nil {
			r.registered.Store(true)
			r.readyOnce.Do(func() { close(r.ready) })
			level.Info(r.logger).Log("msg", "instance registered", "attempts", attempt+1)
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		if service.IsBadParameterError(err) {
			level.Error(r.logger).Log("msg", "registry rejected the instance, giving up", "err", err)
			return false
		}

		delay := backoff(attempt, r.cfg.RetryBase, r.cfg.RetryMax)
		level.Warn(r.logger).Log("msg", "registration failed, retrying", "attempt", attempt+1, "retry_in", delay, "err", err)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}

// backoff returns base*2^attempt capped at max.
func backoff(attempt int, base, limit time.Duration) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= limit || d <= 0 {
			return limit
		}
	}
	return min(d, limit)
}
