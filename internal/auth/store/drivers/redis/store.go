package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/store"
	"github.com/redis/go-redis/v9"
)

// Default timeouts for Redis operations.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
)

// Config holds Redis connection configuration.
type Config struct {
	Addr     string
	Password string
	DB       int

	// KeyPrefix namespaces every key, e.g. "familytree:".
	KeyPrefix string
}

// Store keeps client records as JSON values with a set indexing every id.
type Store struct {
	client    redis.UniversalClient
	keyPrefix string
}

var _ store.Store = (*Store)(nil)

// NewStore connects to Redis and verifies the connection with a PING.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis: address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  DefaultDialTimeout,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the client to prevent resource leak
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewStoreWithClient wraps a pre-configured client. Useful for tests.
func NewStoreWithClient(client redis.UniversalClient, keyPrefix string) *Store {
	return &Store{client: client, keyPrefix: keyPrefix}
}

// ApplyMigrations is a no-op; there is no schema to migrate.
func (s *Store) ApplyMigrations() error { return nil }

// Close closes the Redis client connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping checks Redis connectivity (health check).
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Clients() store.Clients { return &clientsRepo{s: s} }

func (s *Store) clientKey(id string) string { return s.keyPrefix + "client:" + id }

func (s *Store) clientIndexKey() string { return s.keyPrefix + "clients" }
