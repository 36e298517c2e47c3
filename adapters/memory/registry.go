// Package memory holds the in-process registry backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"
)

// bucket holds the instances of one service name. All reads and writes of entries, including the
// eviction check, happen under mu, so an expiry decision never races a concurrent Register or Renew.
type bucket struct {
	mu        sync.Mutex
	instances map[string]domain.Instance
	// removed is set once the bucket is unlinked from the registry; writers must retry against a fresh bucket.
	removed bool
}

type registry struct {
	clock        interfaces.TimeProvider
	defaultLease time.Duration

	mu      sync.RWMutex
	buckets map[string]*bucket
}

// NewRegistry creates the in-memory implementation of interfaces.Registry.
// defaultLease applies to instances registered without their own lease duration.
// Panics on nil clock or non-positive defaultLease.
func NewRegistry(clock interfaces.TimeProvider, defaultLease time.Duration) interfaces.Registry {
	if defaultLease <= 0 {
		panic("adapters.memory.registry.go: defaultLease must be positive")
	}
	return &registry{
		clock:        helpers.NilPanic(clock, "adapters.memory.registry.go: clock is required"),
		defaultLease: defaultLease,
		buckets:      make(map[string]*bucket),
	}
}

func (r *registry) Register(ctx context.Context, instance domain.Instance) (domain.Instance, error) {
	if err := instance.Validate(); err != nil {
		return domain.Instance{}, service.NewBadParameterError(err.Error(), nil)
	}
	if instance.Status == "" {
		instance.Status = domain.StatusUp
	}
	lease := instance.LeaseDuration
	if lease == 0 {
		lease = r.defaultLease
	}

	for {
		b := r.getOrCreateBucket(instance.ServiceName)
		b.mu.Lock()
		if b.removed {
			b.mu.Unlock()
			continue
		}
		now := r.clock.Now()
		stored := instance.WithLease(now, lease)
		stored.RegisteredAt = now
		b.instances[instance.InstanceID] = stored
		b.mu.Unlock()
		return stored, nil
	}
}

func (r *registry) Renew(ctx context.Context, serviceName, instanceID string) (domain.Instance, error) {
	b := r.getBucket(serviceName)
	if b == nil {
		return domain.Instance{}, notFound(serviceName, instanceID)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	current, ok := b.instances[instanceID]
	if !ok || b.removed {
		return domain.Instance{}, notFound(serviceName, instanceID)
	}
	// Expired-but-not-evicted entries are renewed too; the sweep only reclaims memory.
	renewed := current.WithLease(r.clock.Now(), current.LeaseDuration)
	b.instances[instanceID] = renewed
	return renewed, nil
}

func (r *registry) Deregister(ctx context.Context, serviceName, instanceID string) error {
	b := r.getBucket(serviceName)
	if b == nil {
		return nil
	}
	b.mu.Lock()
	delete(b.instances, instanceID)
	empty := len(b.instances) == 0
	b.mu.Unlock()

	if empty {
		r.removeIfEmpty(serviceName, b)
	}
	return nil
}

func (r *registry) Query(ctx context.Context, serviceName string) ([]domain.Instance, error) {
	b := r.getBucket(serviceName)
	if b == nil {
		return []domain.Instance{}, nil
	}
	return b.live(r.clock.Now()), nil
}

func (r *registry) Applications(ctx context.Context) ([]domain.Application, error) {
	r.mu.RLock()
	names := make([]string, 0, len(r.buckets))
	buckets := make(map[string]*bucket, len(r.buckets))
	for name, b := range r.buckets {
		names = append(names, name)
		buckets[name] = b
	}
	r.mu.RUnlock()
	sort.Strings(names)

	now := r.clock.Now()
	apps := make([]domain.Application, 0, len(names))
	for _, name := range names {
		instances := buckets[name].live(now)
		if len(instances) == 0 {
			continue
		}
		apps = append(apps, domain.Application{Name: name, Instances: instances})
	}
	return apps, nil
}

// Evict scans buckets one at a time; the registry-wide lock is only held to snapshot the bucket list
// and to unlink buckets that became empty.
func (r *registry) Evict(ctx context.Context) (int, error) {
	r.mu.RLock()
	snapshot := make(map[string]*bucket, len(r.buckets))
	for name, b := range r.buckets {
		snapshot[name] = b
	}
	r.mu.RUnlock()

	evicted := 0
	for name, b := range snapshot {
		if err := ctx.Err(); err != nil {
			return evicted, err
		}
		b.mu.Lock()
		now := r.clock.Now()
		for id, inst := range b.instances {
			if inst.Expired(now) {
				delete(b.instances, id)
				evicted++
			}
		}
		empty := len(b.instances) == 0
		b.mu.Unlock()

		if empty {
			r.removeIfEmpty(name, b)
		}
	}
	return evicted, nil
}

// live returns the non-expired instances ordered by instance id.
func (b *bucket) live(now time.Time) []domain.Instance {
	b.mu.Lock()
	out := make([]domain.Instance, 0, len(b.instances))
	for _, inst := range b.instances {
		if !inst.Expired(now) {
			out = append(out, inst)
		}
	}
	b.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].InstanceID < out[j].InstanceID })
	return out
}

func (r *registry) getBucket(serviceName string) *bucket {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.buckets[serviceName]
}

func (r *registry) getOrCreateBucket(serviceName string) *bucket {
	if b := r.getBucket(serviceName); b != nil {
		return b
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.buckets[serviceName]; ok {
		return b
	}
	b := &bucket{instances: make(map[string]domain.Instance)}
	r.buckets[serviceName] = b
	return b
}

// removeIfEmpty unlinks b if it is still the current bucket for serviceName and still empty.
// Lock order is registry then bucket.
func (r *registry) removeIfEmpty(serviceName string, b *bucket) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buckets[serviceName] != b {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.instances) > 0 {
		return
	}
	b.removed = true
	delete(r.buckets, serviceName)
}

func notFound(serviceName, instanceID string) error {
	return service.NewEntityNotFoundError(
		"instance not found",
		fmt.Errorf("no instance %q registered for service %q", instanceID, serviceName),
	)
}
