package interfaces

import "time"

// TimeProvider supplies the current time for lease arithmetic.
// Injected so tests can move a fake clock instead of sleeping.
//
// Used by adapters/memory and adapters/myredis to stamp leases and to decide expiry during Query and Evict.
// Constructed in cmd/myregistry as service.NewTimeProvider(func() time.Time { return time.Now().UTC() }).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; in tests a controlled clock).
	Now() time.Time
}
