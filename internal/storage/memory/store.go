// Package memory provides an in-process storage.LedgerStore.
package memory

import (
	"context"
	"sync"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage"
)

var _ storage.LedgerStore = (*Store)(nil)

// Store implements storage.LedgerStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*models.LedgerDocument
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*models.LedgerDocument),
	}
}

// Save stores a copy of doc.
func (s *Store) Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error {
	copied := doc.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[conversationID] = copied
	return nil
}

// Load returns a copy so callers can't mutate stored state by pointer.
func (s *Store) Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[conversationID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return doc.Clone(), nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
