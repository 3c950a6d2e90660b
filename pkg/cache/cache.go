package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent.
var ErrMiss = errors.New("cache miss")

// Cache is the generic cache interface used by read-mostly lookups
// (the package catalog, mainly).
type Cache interface {
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get loads key and unmarshals the stored value into target.
	Get(ctx context.Context, key string, target interface{}) error
	// Delete removes key.
	Delete(ctx context.Context, key string) error
}
