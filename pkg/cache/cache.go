package cache

import (
	"context"
	"time"
)

// Cache is the read-cache port used by the catalog. Implementations must
// treat a miss as (false, nil), never as an error.
type Cache interface {
	// Get unmarshals the cached value into dest and reports whether the key
	// was present. dest is untouched on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob-style pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}
