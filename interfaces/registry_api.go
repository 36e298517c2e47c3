package interfaces

import (
	"context"

	"myregistry/domain"
)

// RegistryAPI is the remote view of a MyRegistry server used by registration clients and tools.
//
// Implemented by adapters/registryhttp. Errors carry service.MyError codes: entity_not_found (renew target
// absent, re-register), unavailable (network or server failure, retry later), bad_parameter (malformed descriptor,
// do not retry).
//
//go:generate moq -stub -out mock/registry_api.go -pkg mock . RegistryAPI
type RegistryAPI interface {
	// Register sends PUT /services/{name}/{instance_id} with the descriptor body.
	Register(ctx context.Context, instance domain.Instance) error

	// Renew sends PUT /services/{name}/{instance_id} without a body.
	Renew(ctx context.Context, serviceName, instanceID string) error

	// Deregister sends DELETE /services/{name}/{instance_id}.
	Deregister(ctx context.Context, serviceName, instanceID string) error

	// Query sends GET /services/{name}.
	Query(ctx context.Context, serviceName string) ([]domain.Instance, error)

	// Applications sends GET /services.
	Applications(ctx context.Context) ([]domain.Application, error)
}
