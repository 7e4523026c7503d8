package models

import "github.com/shopspring/decimal"

// Settlement is a suggested transfer that moves balances toward zero.
type Settlement struct {
	// From is the debtor who should pay.
	From User `json:"from"`

	// To is the creditor who should receive payment.
	To User `json:"to"`

	// Amount is the transfer amount, rounded to cents.
	Amount decimal.Decimal `json:"amount"`
}

// Balance is one user's net position. Positive means the user is owed money.
type Balance struct {
	User   User            `json:"user"`
	Amount decimal.Decimal `json:"amount"`
}
