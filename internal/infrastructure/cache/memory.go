package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a key-value store with expiration. Backed by Redis when enabled,
// by MemoryStore otherwise.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// MemoryStore is a simple in-memory key-value store with expiration
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*memoryItem),
	}
}

// Set stores a key-value pair with expiration
func (ms *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = &memoryItem{
		value:      value,
		expireTime: time.Now().Add(ttl),
	}
	return nil
}

// Get retrieves a value by key; the bool reports whether a live entry exists
func (ms *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists {
		return "", false, nil
	}
	if time.Now().After(item.expireTime) {
		return "", false, nil
	}
	return item.value, true, nil
}

// Delete removes a key
func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
	return nil
}

// Close is a no-op for the in-memory store
func (ms *MemoryStore) Close() error {
	return nil
}

// PurgeExpired removes expired items and reports how many were dropped.
// Called periodically by the scheduler; Redis handles expiry itself.
func (ms *MemoryStore) PurgeExpired() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	purged := 0
	for key, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, key)
			purged++
		}
	}
	return purged
}
