// Package models defines the core domain models for KrispyLedger.
//
// # Models
//
//   - LedgerDocument: the full persisted state of one conversation
//   - Expense: one recorded expense and how it is split
//   - User: a participant, identified by display name
//   - Settlement: a suggested transfer that clears outstanding balances
//
// Participants are identified by name strings. Names are unique within a
// conversation and compared case-sensitively.
//
// # Design Principles
//
// 1. **Whole-document persistence**: a conversation is loaded and saved as one
// LedgerDocument; there is no per-expense storage.
// 2. **Decimal money**: amounts are decimal values, never floats.
// 3. **Copy on write**: callers mutate a Clone, never a document that may be
// shared with a store or a cache.
package models
