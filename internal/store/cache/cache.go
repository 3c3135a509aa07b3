package cache

import (
	"context"
	"time"
)

// CacheService is the cache contract used for upstream model-list
// passthrough. Implementations marshal values to JSON.
type CacheService interface {
	// Get retrieves a value, unmarshalling into dest.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error
}
