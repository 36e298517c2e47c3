package myredis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/go-redis/redis/v8"
)

// maxRenewAttempts bounds the WATCH retries of Renew while other writers keep touching the record.
const maxRenewAttempts = 10

// pruneScript removes ids from the index set KEYS[1] only while their record KEYS[i+1] is still absent, so a
// Register that lands after the records were read keeps its index entry. Returns the number of ids removed.
var pruneScript = redis.NewScript(`
local removed = 0
for i, id in ipairs(ARGV) do
	if redis.call('EXISTS', KEYS[i + 1]) == 0 then
		removed = removed + redis.call('SREM', KEYS[1], id)
	end
end
return removed
`)

// registry keeps each instance as a JSON record under prefix:instance:{name}:{id} with a TTL equal to its
// lease, and the ids of a service in the set prefix:service:{name}. Redis expiry is authoritative: once a
// record is gone its id is pruned from the set on the next Query or Evict. Register and Deregister write the
// record and the index in one MULTI. All keys of a registry must live on one node.
type registry struct {
	client       redis.UniversalClient
	records      *redisCache[domain.Instance]
	indexPrefix  string
	clock        interfaces.TimeProvider
	defaultLease time.Duration
}

// NewRegistry creates the Redis implementation of interfaces.Registry. Panics on nil client or clock,
// empty prefix or non-positive defaultLease.
func NewRegistry(client redis.UniversalClient, prefix string, clock interfaces.TimeProvider, defaultLease time.Duration) interfaces.Registry {
	if defaultLease <= 0 {
		panic("adapters.myredis.registry.go: defaultLease must be positive")
	}
	client = helpers.NilPanic(client, "adapters.myredis.registry.go: client is required")
	prefix = helpers.StrPanic(prefix, "adapters.myredis.registry.go: prefix is required")

	marshal := func(i domain.Instance) ([]byte, error) { return json.Marshal(i) }
	unmarshal := func(b []byte) (domain.Instance, error) {
		var i domain.Instance
		err := json.Unmarshal(b, &i)
		return i, err
	}
	return &registry{
		client:       client,
		records:      newCache[domain.Instance](client, prefix+":instance", marshal, unmarshal),
		indexPrefix:  prefix + ":service:",
		clock:        helpers.NilPanic(clock, "adapters.myredis.registry.go: clock is required"),
		defaultLease: defaultLease,
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
	now := r.clock.Now()
	stored := instance.WithLease(now, lease)
	stored.RegisteredAt = now

	var writeErr error
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		writeErr = r.records.writeValue(ctx, pipe, recordKey(stored.ServiceName, stored.InstanceID), stored, lease)
		pipe.SAdd(ctx, r.indexKey(stored.ServiceName), stored.InstanceID)
		return writeErr
	})
	if writeErr != nil {
		return domain.Instance{}, writeErr
	}
	if err != nil {
		return domain.Instance{}, service.NewInternalServerError("Redis register error", fmt.Errorf("can't register %s/%s, err: %w", stored.ServiceName, stored.InstanceID, err))
	}
	return stored, nil
}

// Renew extends the lease of a stored record. The read and the write run under WATCH so a concurrent Register is
// never overwritten with the copy read here; the renewal is retried against the new record instead.
func (r *registry) Renew(ctx context.Context, serviceName, instanceID string) (domain.Instance, error) {
	key := recordKey(serviceName, instanceID)

	var renewed domain.Instance
	renew := func(tx *redis.Tx) error {
		current, err := r.records.readValue(ctx, tx, key)
		if err != nil {
			return err
		}
		renewed = current.WithLease(r.clock.Now(), current.LeaseDuration)

		var replaced *redis.BoolCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			var queueErr error
			replaced, queueErr = r.records.replaceValue(ctx, pipe, key, renewed, renewed.LeaseDuration)
			if queueErr != nil {
				return queueErr
			}
			pipe.SAdd(ctx, r.indexKey(serviceName), instanceID)
			return nil
		})
		if err != nil {
			return err
		}
		if !replaced.Val() {
			// expired between read and write
			return service.NewEntityNotFoundError("Entity not found", nil)
		}
		return nil
	}

	for attempt := 0; attempt < maxRenewAttempts; attempt++ {
		err := r.client.Watch(ctx, renew, r.records.generateKey(key))
		switch {
		case err == nil:
			return renewed, nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case service.IsEntityNotFoundError(err):
			return domain.Instance{}, notFound(serviceName, instanceID)
		case service.IsInternalServerError(err):
			return domain.Instance{}, err
		default:
			return domain.Instance{}, service.NewInternalServerError("Redis renew error", fmt.Errorf("can't renew %s/%s, err: %w", serviceName, instanceID, err))
		}
	}
	return domain.Instance{}, service.NewUnavailableError("Redis renew contention", fmt.Errorf("can't renew %s/%s after %d attempts, err: %w", serviceName, instanceID, maxRenewAttempts, redis.TxFailedErr))
}

func (r *registry) Deregister(ctx context.Context, serviceName, instanceID string) error {
	var delErr error
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		delErr = r.records.deleteValue(ctx, pipe, recordKey(serviceName, instanceID))
		pipe.SRem(ctx, r.indexKey(serviceName), instanceID)
		return delErr
	})
	if delErr != nil {
		return delErr
	}
	if err != nil {
		return service.NewInternalServerError("Redis deregister error", fmt.Errorf("can't deregister %s/%s, err: %w", serviceName, instanceID, err))
	}
	return nil
}

func (r *registry) Query(ctx context.Context, serviceName string) ([]domain.Instance, error) {
	live, _, err := r.scanService(ctx, serviceName)
	if err != nil {
		return nil, err
	}
	return live, nil
}

func (r *registry) Applications(ctx context.Context) ([]domain.Application, error) {
	names, err := r.serviceNames(ctx)
	if err != nil {
		return nil, err
	}

	apps := make([]domain.Application, 0, len(names))
	for _, name := range names {
		live, _, err := r.scanService(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(live) == 0 {
			continue
		}
		apps = append(apps, domain.Application{Name: name, Instances: live})
	}
	return apps, nil
}

// Evict prunes index entries whose records Redis has already expired and returns how many were pruned.
func (r *registry) Evict(ctx context.Context) (int, error) {
	names, err := r.serviceNames(ctx)
	if err != nil {
		return 0, err
	}

	evicted := 0
	for _, name := range names {
		_, pruned, err := r.scanService(ctx, name)
		if err != nil {
			return evicted, err
		}
		evicted += pruned
	}
	return evicted, nil
}

// scanService reads the index of serviceName, loads the records and drops ids whose record is gone.
func (r *registry) scanService(ctx context.Context, serviceName string) ([]domain.Instance, int, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey(serviceName)).Result()
	if err != nil {
		return nil, 0, service.NewInternalServerError("Redis index read error", fmt.Errorf("can't read index of %s, err: %w", serviceName, err))
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, recordKey(serviceName, id))
	}
	found, missing, err := r.records.readValues(ctx, keys)
	if err != nil {
		return nil, 0, err
	}

	pruned, err := r.prune(ctx, serviceName, missing)
	if err != nil {
		return nil, 0, err
	}

	now := r.clock.Now()
	live := make([]domain.Instance, 0, len(found))
	for _, inst := range found {
		if !inst.Expired(now) {
			live = append(live, inst)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i].InstanceID < live[j].InstanceID })
	return live, pruned, nil
}

// prune drops the given record keys of serviceName from its index, skipping any record that reappeared since it
// was read.
func (r *registry) prune(ctx context.Context, serviceName string, missing []string) (int, error) {
	if len(missing) == 0 {
		return 0, nil
	}

	keys := make([]string, 0, len(missing)+1)
	ids := make([]interface{}, 0, len(missing))
	keys = append(keys, r.indexKey(serviceName))
	for _, k := range missing {
		keys = append(keys, r.records.generateKey(k))
		ids = append(ids, strings.TrimPrefix(k, serviceName+":"))
	}
	n, err := pruneScript.Run(ctx, r.client, keys, ids...).Int()
	if err != nil {
		return 0, service.NewInternalServerError("Redis index prune error", fmt.Errorf("can't prune index of %s, err: %w", serviceName, err))
	}
	return n, nil
}

func (r *registry) serviceNames(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.indexPrefix+"*", 100).Result()
		if err != nil {
			return nil, service.NewInternalServerError("Redis scan error", fmt.Errorf("can't scan service index, err: %w", err))
		}
		// SCAN may return a key more than once.
		for _, k := range keys {
			name := strings.TrimPrefix(k, r.indexPrefix)
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *registry) indexKey(serviceName string) string {
	return r.indexPrefix + serviceName
}

func recordKey(serviceName, instanceID string) string {
	return serviceName + ":" + instanceID
}

func notFound(serviceName, instanceID string) error {
	return service.NewEntityNotFoundError(
		"instance not found",
		fmt.Errorf("no instance %q registered for service %q", instanceID, serviceName),
	)
}
