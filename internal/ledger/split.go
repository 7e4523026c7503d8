package ledger

import (
	"fmt"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Shares computes how much of one expense each participant owes, payer
// included.
//
//   - group: amount / N for each of the N users on the roster
//   - pair: amount / 2 for the payer and amount / 2 for the payee
//
// A group split over an empty roster has no shares.
func Shares(expense models.Expense, users []models.User) (map[models.User]decimal.Decimal, error) {
	shares := make(map[models.User]decimal.Decimal)

	switch expense.SplitKind {
	case models.SplitGroup:
		if len(users) == 0 {
			return shares, nil
		}
		perPerson := expense.Amount.Div(decimal.NewFromInt(int64(len(users))))
		for _, u := range users {
			shares[u] = perPerson
		}
	case models.SplitPair:
		if expense.Payee == "" {
			return nil, fmt.Errorf("expense %d: %w", expense.ID, ErrMissingPayee)
		}
		half := expense.Amount.Div(two)
		shares[expense.Payer] = half
		shares[expense.Payee] = shares[expense.Payee].Add(half)
	default:
		return nil, fmt.Errorf("expense %d: %w", expense.ID, ErrUnknownSplitKind)
	}

	return shares, nil
}
