package session

import (
	"time"

	"github.com/kristykoh/krispyledger-web/internal/dialog"
)

// Session binds a conversation to its dialog state. The ledger itself is
// reloaded from the store on every intent.
type Session struct {
	ConversationID string
	State          dialog.State
	LastActive     time.Time
}

// Response is what the transport shows after an intent.
type Response struct {
	Phase   dialog.Phase
	Renders []dialog.RenderRequest
	Report  *dialog.MutationReport

	// Failed is set when the ledger could not be loaded or saved.
	Failed bool
}

// Recorder receives per-intent metrics.
type Recorder interface {
	ObserveIntent(kind, outcome string)
	SetActiveSessions(n int)
}

// OutcomeStoreError is the outcome recorded when a StoreError ends an intent.
const OutcomeStoreError = "store_error"

type nopRecorder struct{}

func (nopRecorder) ObserveIntent(string, string) {}
func (nopRecorder) SetActiveSessions(int)        {}
