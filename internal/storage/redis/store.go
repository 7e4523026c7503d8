// Package redis provides a Redis-backed storage.LedgerStore and a distributed
// lock for serializing a conversation across replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage"
)

var _ storage.LedgerStore = (*Store)(nil)

const defaultPrefix = "krispyledger:ledger:"

// Store implements storage.LedgerStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL expires ledgers that have not been saved for ttl.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for ledgers.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client so a Locker can share the connection.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(conversationID string) string {
	return s.prefix + conversationID
}

// Save persists the ledger to Redis.
func (s *Store) Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(conversationID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the ledger from Redis.
func (s *Store) Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error) {
	val, err := s.client.Get(ctx, s.key(conversationID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return storage.Decode(val)
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
