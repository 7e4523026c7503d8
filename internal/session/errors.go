package session

import "fmt"

// Store operations that can fail.
const (
	OpLock = "lock"
	OpLoad = "load"
	OpSave = "save"
)

// StoreError reports that a conversation's ledger could not be locked,
// loaded or saved. The dialog is reset when one occurs.
type StoreError struct {
	Op             string
	ConversationID string
	Err            error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s ledger for conversation %s: %v", e.Op, e.ConversationID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
