package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces/mock"
	"myregistry/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLease = 2 * time.Second

func newTestRegistry(t *testing.T) (*registry, *helpers.FakeClock) {
	t.Helper()
	clock := helpers.NewFakeClock(helpers.TestNow())
	r, ok := NewRegistry(service.NewTimeProvider(clock.Now), testLease).(*registry)
	require.True(t, ok)
	return r, clock
}

func orders(id, addr string) domain.Instance {
	return domain.Instance{ServiceName: "orders", InstanceID: id, Address: addr}
}

func ids(instances []domain.Instance) []string {
	out := make([]string, 0, len(instances))
	for _, i := range instances {
		out = append(out, i.InstanceID)
	}
	return out
}

func TestNewRegistry_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "adapters.memory.registry.go: clock is required", func() {
		NewRegistry(nil, time.Second)
	})
	assert.PanicsWithValue(t, "adapters.memory.registry.go: defaultLease must be positive", func() {
		NewRegistry(service.NewTimeProvider(time.Now), 0)
	})
}

func TestRegistry_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("stores instance with fresh lease", func(t *testing.T) {
		r, _ := newTestRegistry(t)
		stored, err := r.Register(ctx, orders("i1", "10.0.0.1:8080"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUp, stored.Status)
		assert.Equal(t, testLease, stored.LeaseDuration)
		assert.Equal(t, helpers.TestNow(), stored.RegisteredAt)
		assert.Equal(t, helpers.TestNow().Add(testLease), stored.LeaseExpiresAt)

		got, err := r.Query(ctx, "orders")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "i1", got[0].InstanceID)
		assert.Equal(t, "10.0.0.1:8080", got[0].Address)
	})

	t.Run("instance lease overrides default", func(t *testing.T) {
		r, _ := newTestRegistry(t)
		inst := orders("i1", "10.0.0.1:8080")
		inst.LeaseDuration = 10 * time.Second
		stored, err := r.Register(ctx, inst)
		require.NoError(t, err)
		assert.Equal(t, helpers.TestNow().Add(10*time.Second), stored.LeaseExpiresAt)
	})

	t.Run("re-register keeps one entry with latest data", func(t *testing.T) {
		r, clock := newTestRegistry(t)
		_, err := r.Register(ctx, orders("i1", "10.0.0.1:8080"))
		require.NoError(t, err)

		clock.Advance(time.Second)
		update := orders("i1", "10.0.0.2:9090")
		update.Status = domain.StatusDown
		_, err = r.Register(ctx, update)
		require.NoError(t, err)

		got, err := r.Query(ctx, "orders")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "10.0.0.2:9090", got[0].Address)
		assert.Equal(t, domain.StatusDown, got[0].Status)
		assert.Equal(t, helpers.TestNow().Add(time.Second+testLease), got[0].LeaseExpiresAt)
	})

	t.Run("invalid descriptor is bad_parameter", func(t *testing.T) {
		r, _ := newTestRegistry(t)
		_, err := r.Register(ctx, orders("", "10.0.0.1:8080"))
		require.Error(t, err)
		assert.True(t, service.IsBadParameterError(err))

		got, err := r.Query(ctx, "orders")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRegistry_Renew(t *testing.T) {
	ctx := context.Background()

	t.Run("extends lease from now", func(t *testing.T) {
		r, clock := newTestRegistry(t)
		_, err := r.Register(ctx, orders("i1", "10.0.0.1:8080"))
		require.NoError(t, err)

		clock.Advance(1500 * time.Millisecond)
		renewed, err := r.Renew(ctx, "orders", "i1")
		require.NoError(t, err)
		assert.Equal(t, clock.Now().Add(testLease), renewed.LeaseExpiresAt)

		clock.Advance(1500 * time.Millisecond)
		got, err := r.Query(ctx, "orders")
		require.NoError(t, err)
		assert.Equal(t, []string{"i1"}, ids(got))
	})

	t.Run("unknown entry is not found and creates nothing", func(t *testing.T) {
		r, _ := newTestRegistry(t)
		_, err := r.Renew(ctx, "orders", "ghost")
		require.Error(t, err)
		assert.True(t, service.IsEntityNotFoundError(err))

		_, err = r.Register(ctx, orders("i1", "10.0.0.1:8080"))
		require.NoError(t, err)
		_, err = r.Renew(ctx, "orders", "ghost")
		assert.True(t, service.IsEntityNotFoundError(err))

		got, err := r.Query(ctx, "orders")
		require.NoError(t, err)
		assert.Equal(t, []string{"i1"}, ids(got))
	})

	t.Run("expired but not evicted entry is renewed", func(t *testing.T) {
		r, clock := newTestRegistry(t)
		_, err := r.Register(ctx, orders("i1", "10.0.0.1:8080"))
		require.NoError(t, err)

		clock.Advance(3 * time.Second)
		got, err := r.Query(ctx, "orders")
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = r.Renew(ctx, "orders", "i1")
		require.NoError(t, err)
		got, err = r.Query(ctx, "orders")
		require.NoError(t, err)
		assert.Equal(t, []string{"i1"}, ids(got))
	})

	t.Run("evicted entry is not found", func(t *testing.T) {
		r, clock := newTestRegistry(t)
		_, err := r.Register(ctx, orders("i1", "10.0.0.1:8080"))
		require.NoError(t, err)
		clock.Advance(3 * time.Second)
		n, err := r.Evict(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = r.Renew(ctx, "orders", "i1")
		assert.True(t, service.IsEntityNotFoundError(err))
	})
}

func TestRegistry_Deregister(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t)

	_, err := r.Register(ctx, orders("i1", "10.0.0.1:8080"))
	require.NoError(t, err)
	_, err = r.Register(ctx, orders("i2", "10.0.0.2:8080"))
	require.NoError(t, err)

	require.NoError(t, r.Deregister(ctx, "orders", "i1"))
	got, err := r.Query(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"i2"}, ids(got))

	// Idempotent, unknown service or id included.
	require.NoError(t, r.Deregister(ctx, "orders", "i1"))
	require.NoError(t, r.Deregister(ctx, "payments", "x"))

	require.NoError(t, r.Deregister(ctx, "orders", "i2"))
	got, err = r.Query(ctx, "orders")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, r.buckets, "empty service bucket is unlinked")
}

func TestRegistry_Query(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t)

	t.Run("unknown service is empty not error", func(t *testing.T) {
		got, err := r.Query(ctx, "nope")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("ordered by instance id and scoped by service", func(t *testing.T) {
		for _, id := range []string{"c", "a", "b"} {
			_, err := r.Register(ctx, orders(id, "10.0.0.1:8080"))
			require.NoError(t, err)
		}
		_, err := r.Register(ctx, domain.Instance{ServiceName: "payments", InstanceID: "p1", Address: "10.0.1.1:80"})
		require.NoError(t, err)

		got, err := r.Query(ctx, "orders")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	})
}

func TestRegistry_LeaseExpiryScenario(t *testing.T) {
	ctx := context.Background()
	r, clock := newTestRegistry(t)

	_, err := r.Register(ctx, orders("i1", "10.0.0.1:8080"))
	require.NoError(t, err)

	got, err := r.Query(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].InstanceID)
	assert.Equal(t, "10.0.0.1:8080", got[0].Address)

	clock.Advance(3 * time.Second)
	got, err = r.Query(ctx, "orders")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegistry_Evict(t *testing.T) {
	ctx := context.Background()
	r, clock := newTestRegistry(t)

	_, err := r.Register(ctx, orders("old", "10.0.0.1:8080"))
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = r.Register(ctx, orders("new", "10.0.0.2:8080"))
	require.NoError(t, err)
	_, err = r.Register(ctx, domain.Instance{ServiceName: "payments", InstanceID: "p1", Address: "10.0.1.1:80"})
	require.NoError(t, err)

	clock.Advance(1500 * time.Millisecond)
	n, err := r.Evict(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := r.Query(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids(got))

	clock.Advance(time.Second)
	n, err = r.Evict(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, r.buckets)

	// Registering after the bucket was unlinked creates a fresh one.
	_, err = r.Register(ctx, orders("again", "10.0.0.3:8080"))
	require.NoError(t, err)
	got, err = r.Query(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, []string{"again"}, ids(got))
}

func TestRegistry_EvictCancelled(t *testing.T) {
	r, clock := newTestRegistry(t)
	_, err := r.Register(context.Background(), orders("i1", "10.0.0.1:8080"))
	require.NoError(t, err)
	clock.Advance(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Evict(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_Applications(t *testing.T) {
	ctx := context.Background()
	r, clock := newTestRegistry(t)

	apps, err := r.Applications(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	_, err = r.Register(ctx, domain.Instance{ServiceName: "payments", InstanceID: "p1", Address: "10.0.1.1:80"})
	require.NoError(t, err)
	_, err = r.Register(ctx, orders("i2", "10.0.0.2:8080"))
	require.NoError(t, err)
	_, err = r.Register(ctx, orders("i1", "10.0.0.1:8080"))
	require.NoError(t, err)
	expiring := domain.Instance{ServiceName: "audit", InstanceID: "a1", Address: "10.0.2.1:80", LeaseDuration: time.Second}
	_, err = r.Register(ctx, expiring)
	require.NoError(t, err)

	clock.Advance(1500 * time.Millisecond)
	apps, err = r.Applications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 2, "services with only expired instances are omitted")
	assert.Equal(t, "orders", apps[0].Name)
	assert.Equal(t, []string{"i1", "i2"}, ids(apps[0].Instances))
	assert.Equal(t, "payments", apps[1].Name)
}

// Query must reflect exactly the registered, not deregistered, not expired set regardless of the order in
// which distinct instances are processed.
func TestRegistry_ConcurrentClients(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRegistry(t)

	const clients = 50
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("i%02d", i)
			_, err := r.Register(ctx, orders(id, "10.0.0.1:8080"))
			assert.NoError(t, err)
			_, err = r.Renew(ctx, "orders", id)
			assert.NoError(t, err)
			_, _ = r.Query(ctx, "orders")
			_, _ = r.Evict(ctx)
			if i%2 == 1 {
				assert.NoError(t, r.Deregister(ctx, "orders", id))
			}
		}(i)
	}
	wg.Wait()

	got, err := r.Query(ctx, "orders")
	require.NoError(t, err)
	want := make([]string, 0, clients/2)
	for i := 0; i < clients; i += 2 {
		want = append(want, fmt.Sprintf("i%02d", i))
	}
	assert.Equal(t, want, ids(got))
}

// A Register or Renew racing a sweep at the expiry boundary must never be lost.
func TestRegistry_RenewRacingEviction(t *testing.T) {
	ctx := context.Background()
	r, clock := newTestRegistry(t)

	for round := 0; round < 200; round++ {
		_, err := r.Register(ctx, orders("a", "10.0.0.1:8080"))
		require.NoError(t, err)
		clock.Advance(testLease)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = r.Evict(ctx)
		}()
		go func() {
			defer wg.Done()
			_, err := r.Register(ctx, orders("a", "10.0.0.1:8080"))
			assert.NoError(t, err)
		}()
		wg.Wait()

		got, err := r.Query(ctx, "orders")
		require.NoError(t, err)
		require.Equal(t, []string{"a"}, ids(got), "round %d", round)
	}
}

func TestRegistry_ExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	now := helpers.TestNow()
	clock := &mock.TimeProviderMock{NowFunc: func() time.Time { return now }}
	r := NewRegistry(clock, testLease)

	stored, err := r.Register(ctx, orders("i1", "10.0.0.1:8080"))
	require.NoError(t, err)
	require.Equal(t, now.Add(testLease), stored.LeaseExpiresAt)

	now = stored.LeaseExpiresAt.Add(-time.Nanosecond)
	got, err := r.Query(ctx, "orders")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	now = stored.LeaseExpiresAt
	got, err = r.Query(ctx, "orders")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotEmpty(t, clock.NowCalls())
}
