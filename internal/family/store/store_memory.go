package store

import (
	"context"
	"sync"
	"time"

	"famcard/internal/family/models"
	"famcard/pkg/platform/sentinel"
)

type cachedFamily struct {
	payload  []byte
	storedAt time.Time
}

// InMemoryCache keeps profiles in process memory with TTL expiration.
type InMemoryCache struct {
	mu       sync.RWMutex
	families map[string]cachedFamily
	cacheTTL time.Duration
	now      func() time.Time
}

type MemoryOption func(*InMemoryCache)

// WithMemoryClock overrides the time source used for expiry.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(c *InMemoryCache) {
		c.now = now
	}
}

// NewInMemoryCache creates an in-memory cache with the given TTL.
func NewInMemoryCache(cacheTTL time.Duration, opts ...MemoryOption) *InMemoryCache {
	c := &InMemoryCache{
		families: make(map[string]cachedFamily),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Save stores a copy of the profile under iin. A nil profile is a no-op.
func (c *InMemoryCache) Save(_ context.Context, iin string, family *models.Family) error {
	if family == nil {
		return nil
	}
	payload, err := encode(family)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.families[iin] = cachedFamily{payload: payload, storedAt: c.now()}
	return nil
}

// Find returns the cached profile of iin, or sentinel.ErrNotFound when absent
// or older than the TTL.
func (c *InMemoryCache) Find(_ context.Context, iin string) (*models.Family, error) {
	c.mu.RLock()
	cached, ok := c.families[iin]
	c.mu.RUnlock()
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if c.now().Sub(cached.storedAt) >= c.cacheTTL {
		c.evict(iin, cached.storedAt)
		return nil, sentinel.ErrExpiredEntry
	}
	return decode(cached.payload)
}

// Delete drops the entry of iin.
func (c *InMemoryCache) Delete(_ context.Context, iin string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.families, iin)
	return nil
}

// evict drops an expired entry unless it was refreshed since it was read.
func (c *InMemoryCache) evict(iin string, storedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.families[iin]; ok && cur.storedAt.Equal(storedAt) {
		delete(c.families, iin)
	}
}

// Len reports the number of entries, expired ones included.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.families)
}
