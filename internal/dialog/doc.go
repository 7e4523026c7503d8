// Package dialog implements the per-conversation state machine that walks a
// user through adding people, removing people and recording an expense.
//
// Engine.Handle is synchronous and pure: given the current State, the
// conversation's ledger and an Intent, it returns the next State, the
// messages to show and, when the ledger changed, the new document to persist.
// It never performs I/O; the session layer loads and saves documents.
//
// Buttons carry opaque tokens (see EncodeToken and DecodeToken). A token that
// arrives after the conversation moved on is treated as stale and the current
// step is shown again.
package dialog
