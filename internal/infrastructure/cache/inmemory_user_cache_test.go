package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ak/backend/internal/domain/identity"
	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser(3, "john", identity.WithUserID(9), identity.WithActivated(true),
		identity.WithAuthorities(identity.AuthorityUser), identity.WithPasswordHash("$2a$hash"))
	require.NoError(t, err)
	return user
}

func TestInMemoryUserCache(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryUserCache(time.Minute)

	_, ok, err := cache.Get(ctx, "john")
	require.NoError(t, err)
	assert.False(t, ok)

	user := testUser(t)
	require.NoError(t, cache.Set(ctx, user))

	got, ok, err := cache.Get(ctx, "john")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, int64(3), got.CompanyID)
	assert.Equal(t, []string{identity.AuthorityUser}, got.Authorities)
	assert.Empty(t, got.PasswordHash, "password hash must not be cached")

	got.Authorities[0] = "ROLE_ADMIN"
	again, _, _ := cache.Get(ctx, "john")
	assert.Equal(t, identity.AuthorityUser, again.Authorities[0])

	require.NoError(t, cache.Evict(ctx, "john"))
	_, ok, _ = cache.Get(ctx, "john")
	assert.False(t, ok)
}

func TestInMemoryUserCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryUserCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, testUser(t)))

	now = now.Add(2 * time.Minute)
	_, ok, err := cache.Get(ctx, "john")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestFactory_DisabledRedisUsesMemory(t *testing.T) {
	stores, err := NewFactory(config.RedisConfig{Enabled: false, UserTTL: time.Minute}).CreateStores()
	require.NoError(t, err)

	assert.Nil(t, stores.Client)
	assert.IsType(t, &InMemoryUserCache{}, stores.Users)
	assert.NoError(t, stores.Ping(context.Background()))
	assert.NoError(t, stores.Close())
}

func TestFactory_UnreachableRedis(t *testing.T) {
	cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1, UserTTL: time.Minute}

	stores, err := NewFactory(cfg).CreateStores()
	require.NoError(t, err)
	assert.Nil(t, stores.Client)

	_, err = NewFactory(cfg, WithInMemoryFallback(false)).CreateStores()
	assert.Error(t, err)
}
