package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitwise74/files-api/internal/kv"
	"bitwise74/files-api/pkg/util"
)

const (
	sessionPrefix = "auth_"
	tokenBytes    = 32
)

// Sessions maps opaque tokens to user ids. Nothing is cached in process,
// every call goes to the key-value store.
type Sessions struct {
	kv  kv.Store
	ttl time.Duration
}

func NewSessions(store kv.Store, ttl time.Duration) *Sessions {
	return &Sessions{
		kv:  store,
		ttl: ttl,
	}
}

// Create issues a new token for userID. Tokens expire after the TTL no
// matter how often they are used.
func (s *Sessions) Create(ctx context.Context, userID string) (string, error) {
	token, err := util.GenerateToken(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate token, %w", err)
	}

	if err := s.kv.Set(ctx, sessionPrefix+token, userID, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session, %w", err)
	}

	return token, nil
}

// Resolve returns the user behind token. Unknown and expired tokens are not
// an error, ok is false for them.
func (s *Sessions) Resolve(ctx context.Context, token string) (userID string, ok bool, err error) {
	if token == "" {
		return "", false, nil
	}

	userID, err = s.kv.Get(ctx, sessionPrefix+token)
	if err != nil {
		if errors.Is(err, kv.ErrMiss) {
			return "", false, nil
		}

		return "", false, fmt.Errorf("failed to resolve session, %w", err)
	}

	return userID, userID != "", nil
}

// Destroy removes token. Destroying an unknown token is a no-op.
func (s *Sessions) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	return s.kv.Del(ctx, sessionPrefix+token)
}
