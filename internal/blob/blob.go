// Package blob stores the raw content of files and their thumbnails
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no blob exists at a path
var ErrNotFound = errors.New("blob not found")

// Store saves opaque byte payloads. Paths are returned by Write and are
// only meaningful to the store that produced them.
type Store interface {
	// Write saves data under a new unique path and returns it
	Write(ctx context.Context, data []byte) (string, error)
	// WriteAt saves data at path, replacing any previous content
	WriteAt(ctx context.Context, path string, data []byte) error
	Read(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	Remove(ctx context.Context, path string) error
}

var (
	_ Store = (*Local)(nil)
	_ Store = (*S3)(nil)
)
