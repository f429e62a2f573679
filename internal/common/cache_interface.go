package common

import "time"

// CacheInterface is the contract shared by the in-memory and Redis caches.
// The idea listing and its invalidation go through this.
type CacheInterface interface {
	// Set stores a value with the given key and TTL
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value by key; false when absent or expired
	Get(key string) (interface{}, bool)

	// Delete removes a key
	Delete(key string)

	// GetOrSet returns the cached value, or stores what loader returns
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close releases any underlying connections (Redis)
	Close() error
}
