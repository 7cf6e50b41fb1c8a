// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the interface for memoizing rendered results.
// Implementations can be in-memory, Redis, SQLite, or any other caching solution.
// Keys are digests of an operation and its inputs, so a hit is always safe to reuse.
//
// Example usage:
//
//	cache := someCache // implements Cache interface
//
//	// Store a rendered result
//	err := cache.Set(ctx, "format:json:9f86d0", formatted, 1*time.Hour)
//
//	// Retrieve it
//	data, err := cache.Get(ctx, "format:json:9f86d0")
//	if err != nil {
//		// handle error or cache miss
//	}
//
//	// Delete it
//	err = cache.Delete(ctx, "format:json:9f86d0")
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
