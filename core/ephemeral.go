package core

import (
	"context"
	"errors"
	"time"
)

type EphemeralMode string

const (
	EphemeralMemory EphemeralMode = "memory"
	EphemeralRedis  EphemeralMode = "redis"
)

// EphemeralStore is a minimal key-value interface for short-lived state
// (spent request tokens). Implementations honor TTL on Set and report a
// missing key as (found=false, err=nil).
type EphemeralStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// EphemeralClaimer is implemented by stores that can set a key only when it
// is absent, in one step.
type EphemeralClaimer interface {
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}

var errNoEphemeralStore = errors.New("ephemeral store unavailable")

// WithEphemeralStore makes request tokens single-use across every process
// sharing store.
func (s *Service) WithEphemeralStore(store EphemeralStore, mode EphemeralMode) *Service {
	if mode == "" {
		mode = EphemeralMemory
	}
	s.ephemeralMode = mode
	s.tokens.spent = store
	return s
}

// EphemeralMode reports which kind of store backs spent request tokens.
func (s *Service) EphemeralMode() EphemeralMode {
	if s == nil || s.ephemeralMode == "" {
		return EphemeralMemory
	}
	return s.ephemeralMode
}

func ephemSetString(ctx context.Context, store EphemeralStore, key, value string, ttl time.Duration) error {
	if store == nil {
		return errNoEphemeralStore
	}
	return store.Set(ctx, key, []byte(value), ttl)
}

// ephemClaim sets key unless it already exists and reports whether this call
// set it. Stores without SetNX fall back to Get then Set.
func ephemClaim(ctx context.Context, store EphemeralStore, key, value string, ttl time.Duration) (bool, error) {
	if store == nil {
		return false, errNoEphemeralStore
	}
	if c, ok := store.(EphemeralClaimer); ok {
		return c.SetNX(ctx, key, []byte(value), ttl)
	}
	if _, found, err := ephemGetString(ctx, store, key); err != nil || found {
		return false, err
	}
	return true, ephemSetString(ctx, store, key, value, ttl)
}

func ephemGetString(ctx context.Context, store EphemeralStore, key string) (string, bool, error) {
	if store == nil {
		return "", false, errNoEphemeralStore
	}
	b, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	return string(b), true, nil
}
