package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// UserCache caches users by login so that resolving the current user does not
// hit the database on every request. Writes to a user must evict its entry.
type UserCache interface {
	Get(ctx context.Context, login string) (*identity.User, bool, error)
	Set(ctx context.Context, user *identity.User) error
	Evict(ctx context.Context, login string) error
}

// cachedUser is the serialized form of a user. The password hash is not cached.
type cachedUser struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Email       string    `json:"email,omitempty"`
	Activated   bool      `json:"activated"`
	LangKey     string    `json:"langKey,omitempty"`
	CompanyID   int64     `json:"companyId"`
	Authorities []string  `json:"authorities"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCached(u *identity.User) cachedUser {
	return cachedUser{
		ID:          u.ID,
		Login:       u.Login,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Activated:   u.Activated,
		LangKey:     u.LangKey,
		CompanyID:   u.CompanyID,
		Authorities: append([]string(nil), u.Authorities...),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c cachedUser) toDomain() *identity.User {
	return &identity.User{
		BaseEntity:  shared.BaseEntity{ID: c.ID},
		Login:       c.Login,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Activated:   c.Activated,
		LangKey:     c.LangKey,
		CompanyID:   c.CompanyID,
		Authorities: append([]string(nil), c.Authorities...),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// RedisUserCache stores users as JSON strings with a TTL
type RedisUserCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisUserCache creates a user cache on an existing Redis client
func NewRedisUserCache(client *redis.Client, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{
		client:    client,
		keyPrefix: "ak:user:login:",
		ttl:       ttl,
	}
}

// Get returns the cached user, if any
func (c *RedisUserCache) Get(ctx context.Context, login string) (*identity.User, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+login).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached user: %w", err)
	}
	var cached cachedUser
	if err := json.Unmarshal(raw, &cached); err != nil {
		// A stale or foreign value behaves as a miss and is replaced on the next Set.
		return nil, false, nil
	}
	return cached.toDomain(), true, nil
}

// Set caches the user
func (c *RedisUserCache) Set(ctx context.Context, user *identity.User) error {
	raw, err := json.Marshal(toCached(user))
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+user.Login, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}
	return nil
}

// Evict drops the cached user
func (c *RedisUserCache) Evict(ctx context.Context, login string) error {
	if err := c.client.Del(ctx, c.keyPrefix+login).Err(); err != nil {
		return fmt.Errorf("failed to evict user: %w", err)
	}
	return nil
}

var _ UserCache = (*RedisUserCache)(nil)
