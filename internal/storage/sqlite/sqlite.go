// Package sqlite provides a SQLite-backed implementation of storage.LedgerStore.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage"
)

// Ensure SQLiteStore implements storage.LedgerStore
var _ storage.LedgerStore = (*SQLiteStore)(nil)

// SQLiteStore implements storage.LedgerStore using SQLite.
// Each conversation is one row holding the JSON document.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Wait on writer contention instead of failing with SQLITE_BUSY
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load retrieves the ledger for a conversation.
func (s *SQLiteStore) Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM ledgers WHERE conversation_id = ?",
		conversationID,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}

	return storage.Decode([]byte(data))
}

// Save replaces the ledger for a conversation.
func (s *SQLiteStore) Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ledgers (conversation_id, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(conversation_id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at`,
		conversationID, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}

	return nil
}
