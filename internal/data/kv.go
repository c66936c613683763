package data

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by KV.Get for absent or expired keys.
var ErrKeyNotFound = errors.New("key not found")

// KV is the key-value store every repository is built on.
// A Put replaces the whole value atomically; readers never observe a partial write.
type KV interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key with no expiry.
	Put(ctx context.Context, key string, value []byte) error

	// PutTTL stores value under key; it disappears after ttl.
	PutTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
