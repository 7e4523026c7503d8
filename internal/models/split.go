package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SplitKind describes who shares an expense.
type SplitKind string

const (
	// SplitGroup divides the amount equally among every current user,
	// payer included.
	SplitGroup SplitKind = "group"

	// SplitPair divides the amount equally between the payer and one payee.
	SplitPair SplitKind = "pair"
)

// Valid reports whether k is a known split kind.
func (k SplitKind) Valid() bool {
	return k == SplitGroup || k == SplitPair
}

// Expense represents one recorded expense.
type Expense struct {
	// ID is unique within the conversation and never reused.
	ID int64 `json:"id"`

	// Payer is the user who paid the full amount.
	Payer User `json:"payer"`

	// Amount is the total paid. Always positive.
	Amount decimal.Decimal `json:"amount"`

	// Description is a short free-text label (e.g., "Lunch", "Taxi").
	Description string `json:"description"`

	// SplitKind selects group or pair semantics.
	SplitKind SplitKind `json:"splitKind"`

	// Payee is set only for pair splits.
	Payee User `json:"payee,omitempty"`
}

// MarshalJSON writes Amount as a JSON number rather than a quoted string.
func (e Expense) MarshalJSON() ([]byte, error) {
	type expense Expense
	return json.Marshal(struct {
		expense
		Amount json.Number `json:"amount"`
	}{
		expense: expense(e),
		Amount:  json.Number(e.Amount.String()),
	})
}

// Involves reports whether user is the payer or the payee of the expense.
func (e Expense) Involves(user User) bool {
	return e.Payer == user || (e.SplitKind == SplitPair && e.Payee == user)
}
