package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes access tokens before they expire.
// Single tokens are revoked by JWT id on logout; all tokens of a login are
// revoked when the account is deleted or deactivated.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	RevokeLogin(ctx context.Context, login string, ttl time.Duration) error
	IsLoginRevoked(ctx context.Context, login string, issuedAt time.Time) (bool, error)
}

const blacklistKeyPrefix = "ak:token:revoked:"

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewRedisTokenBlacklist creates a blacklist on an existing Redis client
func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

func jtiKey(jti string) string {
	return blacklistKeyPrefix + "jti:" + jti
}

func loginKey(login string) string {
	return blacklistKeyPrefix + "login:" + login
}

// Revoke stores the JWT id until the token would have expired anyway
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked checks if a JWT id was revoked
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

// RevokeLogin invalidates every token of the login issued up to now
func (b *RedisTokenBlacklist) RevokeLogin(ctx context.Context, login string, ttl time.Duration) error {
	if err := b.client.Set(ctx, loginKey(login), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke tokens of %s: %w", login, err)
	}
	return nil
}

// IsLoginRevoked reports whether a token issued at issuedAt predates the revocation of its login
func (b *RedisTokenBlacklist) IsLoginRevoked(ctx context.Context, login string, issuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, loginKey(login)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check login revocation: %w", err)
	}
	revokedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation timestamp: %w", err)
	}
	return issuedAt.Unix() <= revokedAt, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist keeps revocations in process memory.
// Revocations are not shared between instances.
type InMemoryTokenBlacklist struct {
	mu     sync.Mutex
	tokens map[string]time.Time // jti -> expiry of the entry
	logins map[string]time.Time // login -> revocation time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens: make(map[string]time.Time),
		logins: make(map[string]time.Time),
	}
}

// Revoke adds the JWT id
func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks the JWT id and drops expired entries
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, ok := b.tokens[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(b.tokens, jti)
		return false, nil
	}
	return true, nil
}

// RevokeLogin records the revocation time of the login
func (b *InMemoryTokenBlacklist) RevokeLogin(_ context.Context, login string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logins[login] = time.Now()
	return nil
}

// IsLoginRevoked compares the token issue time with the revocation time
func (b *InMemoryTokenBlacklist) IsLoginRevoked(_ context.Context, login string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	revokedAt, ok := b.logins[login]
	if !ok {
		return false, nil
	}
	return !issuedAt.After(revokedAt), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
