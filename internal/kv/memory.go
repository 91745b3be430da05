package kv

import (
	"context"
	"errors"
	"time"

	"github.com/jellydator/ttlcache/v2"
)

// Memory is an in-process Store for single instance deployments and tests.
// Sessions stored here don't survive a restart.
type Memory struct {
	cache *ttlcache.Cache
}

func NewMemory() *Memory {
	c := ttlcache.NewCache()
	// Session expiry is absolute
	c.SkipTTLExtensionOnHit(true)

	return &Memory{cache: c}
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	return m.cache.SetWithTTL(key, value, ttl)
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, err := m.cache.Get(key)
	if err != nil {
		if errors.Is(err, ttlcache.ErrNotFound) {
			return "", ErrMiss
		}

		return "", err
	}

	s, _ := v.(string)
	return s, nil
}

func (m *Memory) Del(_ context.Context, key string) error {
	err := m.cache.Remove(key)
	if err != nil && !errors.Is(err, ttlcache.ErrNotFound) {
		return err
	}

	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	err := m.cache.Close()
	if errors.Is(err, ttlcache.ErrClosed) {
		return nil
	}

	return err
}
