package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ak/backend/internal/domain/identity"
)

type userEntry struct {
	user      cachedUser
	expiresAt time.Time
}

// InMemoryUserCache implements UserCache with a map guarded by a mutex.
// It is used when Redis is not configured and in tests.
type InMemoryUserCache struct {
	mu      sync.RWMutex
	entries map[string]userEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryUserCache creates an in-memory user cache
func NewInMemoryUserCache(ttl time.Duration) *InMemoryUserCache {
	return &InMemoryUserCache{
		entries: make(map[string]userEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the cached user while the entry is fresh
func (c *InMemoryUserCache) Get(_ context.Context, login string) (*identity.User, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[login]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, login)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.user.toDomain(), true, nil
}

// Set caches a copy of the user
func (c *InMemoryUserCache) Set(_ context.Context, user *identity.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[user.Login] = userEntry{user: toCached(user), expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Evict drops the cached user
func (c *InMemoryUserCache) Evict(_ context.Context, login string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, login)
	return nil
}

// Len returns the number of entries, expired ones included
func (c *InMemoryUserCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ UserCache = (*InMemoryUserCache)(nil)
