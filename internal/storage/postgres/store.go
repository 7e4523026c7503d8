// Package postgres provides a Postgres-backed storage.LedgerStore using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage"
)

var _ storage.LedgerStore = (*Store)(nil)

// Store keeps each conversation's ledger as a JSONB row.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to databaseURL and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// RunMigrations creates the ledgers table.
func (s *Store) RunMigrations(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ledgers (
			conversation_id TEXT PRIMARY KEY,
			document JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load retrieves the ledger for a conversation.
func (s *Store) Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT document FROM ledgers WHERE conversation_id = $1`,
		conversationID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return storage.Decode(data)
}

// Save replaces the ledger for a conversation.
func (s *Store) Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO ledgers (conversation_id, document, updated_at)
         VALUES ($1, $2, CURRENT_TIMESTAMP)
         ON CONFLICT (conversation_id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		conversationID, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}
