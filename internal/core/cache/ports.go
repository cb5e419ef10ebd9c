package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist or has expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache is the key/value port used for short-lived operational state such as
// the last check report. Values are opaque bytes; callers own the encoding.
type Cache interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl keeps the key until deleted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection.
	Close() error
}
