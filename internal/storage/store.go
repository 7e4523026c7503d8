// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/kristykoh/krispyledger-web/internal/models"
)

// ErrNotFound is returned by Load when a conversation has never been saved.
var ErrNotFound = errors.New("ledger not found")

// LedgerStore persists one LedgerDocument per conversation.
// This abstraction allows swapping storage backends (SQLite, Postgres, Redis,
// DynamoDB, MongoDB) without changing the session layer.
//
// Documents are read and written whole. Concurrent saves for the same
// conversation are last-writer-wins; callers serialize per conversation.
type LedgerStore interface {
	// Load retrieves the document for a conversation.
	// Returns ErrNotFound if nothing has been saved yet.
	Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error)

	// Save replaces the document for a conversation.
	Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error

	// Close releases any resources held by the store.
	Close() error
}

// LoadOrNew loads the document for a conversation, returning a fresh empty
// ledger when none has been saved.
func LoadOrNew(ctx context.Context, store LedgerStore, conversationID string) (*models.LedgerDocument, error) {
	doc, err := store.Load(ctx, conversationID)
	if errors.Is(err, ErrNotFound) {
		return models.NewLedgerDocument(), nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}
