package storage

import (
	"context"
	"errors"
	"time"

	"github.com/kristykoh/krispyledger-web/internal/models"
)

// Middleware wraps a LedgerStore to add behavior.
type Middleware func(LedgerStore) LedgerStore

// Chain applies middlewares so that the first one is outermost.
func Chain(store LedgerStore, mws ...Middleware) LedgerStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

// WithTimeout bounds every Load and Save with d. A zero d disables the bound.
func WithTimeout(d time.Duration) Middleware {
	return func(next LedgerStore) LedgerStore {
		if d <= 0 {
			return next
		}
		return &timeoutStore{next: next, timeout: d}
	}
}

type timeoutStore struct {
	next    LedgerStore
	timeout time.Duration
}

func (s *timeoutStore) Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Load(ctx, conversationID)
}

func (s *timeoutStore) Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.next.Save(ctx, conversationID, doc)
}

func (s *timeoutStore) Close() error { return s.next.Close() }

// Observer receives the outcome of each store operation.
type Observer interface {
	ObserveStoreOperation(op, result string, elapsed time.Duration)
}

// Store operation results reported to an Observer.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Instrument reports the duration and result of every Load and Save.
func Instrument(obs Observer) Middleware {
	return func(next LedgerStore) LedgerStore {
		if obs == nil {
			return next
		}
		return &instrumentedStore{next: next, obs: obs}
	}
}

type instrumentedStore struct {
	next LedgerStore
	obs  Observer
}

func (s *instrumentedStore) Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error) {
	start := time.Now()
	doc, err := s.next.Load(ctx, conversationID)
	s.obs.ObserveStoreOperation("load", resultOf(err), time.Since(start))
	return doc, err
}

func (s *instrumentedStore) Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error {
	start := time.Now()
	err := s.next.Save(ctx, conversationID, doc)
	s.obs.ObserveStoreOperation("save", resultOf(err), time.Since(start))
	return err
}

func (s *instrumentedStore) Close() error { return s.next.Close() }

func resultOf(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
