package interfaces

import (
	"context"

	"myregistry/domain"
)

// Registry is the authoritative store of live service instances.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Register inserts or replaces the entry for (instance.ServiceName, instance.InstanceID) with a lease starting now.
	// Returns:
	// 1) (stored instance, nil) on success, re-registration included;
	// 2) bad_parameter when the descriptor is malformed;
	// 3) internal_server_error when the storage write fails.
	Register(ctx context.Context, instance domain.Instance) (domain.Instance, error)

	// Renew restarts the lease of an existing entry, expired-but-not-evicted entries included.
	// Returns:
	// 1) (renewed instance, nil) on success;
	// 2) entity_not_found when there is no such entry; nothing is created;
	// 3) internal_server_error when the storage fails.
	Renew(ctx context.Context, serviceName, instanceID string) (domain.Instance, error)

	// Deregister removes the entry regardless of lease state. Absent entries are not an error.
	Deregister(ctx context.Context, serviceName, instanceID string) error

	// Query returns the non-expired instances of serviceName ordered by instance id.
	// Unknown services yield an empty slice and nil error.
	Query(ctx context.Context, serviceName string) ([]domain.Instance, error)

	// Applications returns every service with at least one live instance, ordered by name.
	Applications(ctx context.Context) ([]domain.Application, error)

	// Evict removes entries whose lease has expired and returns how many were removed.
	Evict(ctx context.Context) (int, error)
}
