// Package session serializes intents per conversation and connects the dialog
// engine to ledger storage.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kristykoh/krispyledger-web/internal/dialog"
	"github.com/kristykoh/krispyledger-web/internal/storage"
	"github.com/kristykoh/krispyledger-web/pkg/logging"
)

const (
	defaultLockTTL = 30 * time.Second
	defaultIdleTTL = 30 * time.Minute
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates conversation access, ensuring intents for one
// conversation run one at a time while different conversations run in
// parallel. It uses reference counting to garbage collect unused locks.
type Manager struct {
	store  storage.LedgerStore
	engine *dialog.Engine

	mu       sync.Mutex            // Global lock for the maps
	locks    map[string]*lockEntry // Active conversation locks
	sessions map[string]*Session

	locker   storage.DistributedLocker // Optional distributed locker
	lockTTL  time.Duration
	idleTTL  time.Duration
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking with the given lock TTL.
func WithLocker(locker storage.DistributedLocker, ttl time.Duration) Option {
	return func(m *Manager) {
		m.locker = locker
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithRecorder reports intent outcomes and session counts.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) {
		m.recorder = r
	}
}

// WithIdleTTL sets how long an untouched session is kept.
func WithIdleTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.idleTTL = ttl
	}
}

// WithEngine replaces the default dialog engine.
func WithEngine(e *dialog.Engine) Option {
	return func(m *Manager) {
		m.engine = e
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new Manager over the given ledger store.
func NewManager(store storage.LedgerStore, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		engine:   dialog.NewEngine(),
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*Session),
		lockTTL:  defaultLockTTL,
		idleTTL:  defaultIdleTTL,
		logger:   logging.NewNop(), // Default to no-op
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// lock takes the local lock for id and returns its release function.
func (m *Manager) lock(id string) func() {
	entry := m.acquire(id)
	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		m.release(id)
	}
}

// session returns the session for id, creating an idle one if needed.
// The caller must hold the conversation lock.
func (m *Manager) session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		sess = &Session{ConversationID: id, State: dialog.NewState(id), LastActive: m.now()}
		m.sessions[id] = sess
		m.recorder.SetActiveSessions(len(m.sessions))
	}
	return sess
}

// Handle applies one intent to a conversation.
//
// The returned Response is always non-nil. When the ledger cannot be locked,
// loaded or saved, the Response carries a generic failure message, the dialog
// is reset, and a *StoreError is returned for the caller to log.
func (m *Manager) Handle(ctx context.Context, conversationID string, in dialog.Intent) (*Response, error) {
	unlock := m.lock(conversationID)
	defer unlock()

	sess := m.session(conversationID)

	if m.locker != nil {
		release, err := m.locker.Lock(ctx, conversationID, m.lockTTL)
		if err != nil {
			return m.fail(sess, in, OpLock, err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"conversation_id", conversationID,
					"err", err,
				)
			}
		}()
	}

	return m.dispatch(ctx, sess, in)
}

func (m *Manager) dispatch(ctx context.Context, sess *Session, in dialog.Intent) (*Response, error) {
	id := sess.ConversationID

	doc, err := storage.LoadOrNew(ctx, m.store, id)
	if err != nil {
		return m.fail(sess, in, OpLoad, err)
	}

	out := m.engine.Handle(sess.State, doc, in)

	if out.Ledger != nil {
		if err := m.store.Save(ctx, id, out.Ledger); err != nil {
			return m.fail(sess, in, OpSave, err)
		}
	}

	if out.State.FlowID != "" && out.State.FlowID != sess.State.FlowID {
		m.logger.Debug("Flow started",
			"conversation_id", id,
			"flow_id", out.State.FlowID,
			"phase", out.State.Phase.String(),
		)
	}
	sess.State = out.State
	sess.LastActive = m.now()

	outcome := dialog.Classify(out.Err)
	m.recorder.ObserveIntent(string(in.Kind), outcome)

	if out.Err != nil {
		m.logger.Debug("Intent rejected",
			"conversation_id", id,
			"kind", string(in.Kind),
			"phase", out.State.Phase.String(),
			"outcome", outcome,
			"err", out.Err,
		)
	}
	if out.Report != nil {
		m.logger.Info("Ledger updated",
			"conversation_id", id,
			"flow_id", sess.State.FlowID,
			"change", string(out.Report.Kind),
			"user", out.Report.User,
			"expense_id", out.Report.ExpenseID,
			"cascaded_expenses", out.Report.CascadedExpenses,
			"cleared_expenses", out.Report.ClearedExpenses,
		)
	}

	return &Response{
		Phase:   out.State.Phase,
		Renders: out.Renders,
		Report:  out.Report,
	}, nil
}

// fail resets the dialog after a store failure.
func (m *Manager) fail(sess *Session, in dialog.Intent, op string, err error) (*Response, error) {
	storeErr := &StoreError{Op: op, ConversationID: sess.ConversationID, Err: err}

	m.logger.Error("Ledger store failed",
		"conversation_id", sess.ConversationID,
		"flow_id", sess.State.FlowID,
		"op", op,
		"kind", string(in.Kind),
		"err", err,
	)
	m.recorder.ObserveIntent(string(in.Kind), OutcomeStoreError)

	sess.State = sess.State.Reset()
	sess.LastActive = m.now()

	return &Response{
		Phase:   dialog.Idle,
		Renders: []dialog.RenderRequest{dialog.Failure()},
		Failed:  true,
	}, storeErr
}

// Snapshot returns a copy of a conversation's dialog state. ok is false when
// the conversation has no live session.
func (m *Manager) Snapshot(conversationID string) (state dialog.State, ok bool) {
	unlock := m.lock(conversationID)
	defer unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[conversationID]
	if !ok {
		return dialog.State{}, false
	}
	return sess.State, true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
