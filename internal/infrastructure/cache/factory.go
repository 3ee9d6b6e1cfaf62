package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ak/backend/internal/infrastructure/auth"
	"github.com/ak/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores bundles the Redis backed stores of the application.
// Client is nil when the in-memory fallback is in use.
type Stores struct {
	Client    *redis.Client
	Users     UserCache
	Blacklist auth.TokenBlacklist
}

// Close releases the Redis connection
func (s *Stores) Close() error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}

// Ping checks the Redis connection. It is a no-op for the in-memory fallback.
func (s *Stores) Ping(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Ping(ctx).Err()
}

// Factory creates the stores based on configuration
type Factory struct {
	cfg                   config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:                   cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// CreateInMemoryStores creates process local stores.
// They do not share state across instances: a logout on one instance is not
// seen by the others.
func (f *Factory) CreateInMemoryStores() *Stores {
	return &Stores{
		Users:     NewInMemoryUserCache(f.cfg.UserTTL),
		Blacklist: auth.NewInMemoryTokenBlacklist(),
	}
}

// CreateStores uses Redis when it is enabled and reachable and falls back to
// in-memory stores otherwise, if the fallback is allowed
func (f *Factory) CreateStores() (*Stores, error) {
	if !f.cfg.Enabled {
		f.logger.Info("Redis disabled, using in-memory user cache and token blacklist")
		return f.CreateInMemoryStores(), nil
	}

	client, err := NewRedisClient(f.cfg)
	if err == nil {
		f.logger.Info("Using Redis user cache and token blacklist", zap.String("addr", f.cfg.Addr()))
		return &Stores{
			Client:    client,
			Users:     NewRedisUserCache(client, f.cfg.UserTTL),
			Blacklist: auth.NewRedisTokenBlacklist(client),
		}, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stores. "+
		"Revoked tokens will not be shared between instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStores(), nil
}
