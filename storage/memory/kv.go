package memorystore

import (
	"context"
	"sync"
	"time"
)

type kvItem struct {
	value   []byte
	expires time.Time
}

func (it kvItem) expired(now time.Time) bool {
	return !it.expires.IsZero() && now.After(it.expires)
}

// KV is an in-memory key-value store with TTL support, used for spent
// request tokens. It is only safe for single-process deployments.
type KV struct {
	mu    sync.Mutex
	items map[string]kvItem
	now   func() time.Time
}

func NewKV() *KV {
	return &KV{items: make(map[string]kvItem), now: time.Now}
}

func (k *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	it, ok := k.items[key]
	if !ok {
		return nil, false, nil
	}
	if it.expired(k.now()) {
		delete(k.items, key)
		return nil, false, nil
	}
	return append([]byte(nil), it.value...), true, nil
}

func (k *KV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.setLocked(key, value, ttl)
	return nil
}

// SetNX stores value only when key is absent or expired.
func (k *KV) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if it, ok := k.items[key]; ok && !it.expired(k.now()) {
		return false, nil
	}
	k.setLocked(key, value, ttl)
	return true, nil
}

func (k *KV) Del(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.items, key)
	return nil
}

func (k *KV) setLocked(key string, value []byte, ttl time.Duration) {
	now := k.now()
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}
	// Spent tokens pile up; drop expired ones while we hold the lock.
	for kk, it := range k.items {
		if it.expired(now) {
			delete(k.items, kk)
		}
	}
	k.items[key] = kvItem{value: append([]byte(nil), value...), expires: exp}
}
