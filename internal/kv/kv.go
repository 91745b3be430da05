// Package kv holds the key-value stores backing user sessions
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is unknown or expired
var ErrMiss = errors.New("key not found")

// Store is a string key-value store with per-key expiry
type Store interface {
	// Set stores value under key. The key expires after ttl and the expiry
	// is never extended by reads.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns ErrMiss for unknown or expired keys
	Get(ctx context.Context, key string) (string, error)
	// Del removes key. Removing an absent key is not an error.
	Del(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
