// Package ledger implements the pure ledger operations: roster changes,
// expense recording, balance computation and settlement suggestions.
//
// Every function takes a document and returns a new one. Inputs are never
// modified, so a failed operation leaves the caller's document untouched.
package ledger

import (
	"strings"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/shopspring/decimal"
)

// ExpenseInput is the data needed to record an expense.
type ExpenseInput struct {
	Payer       models.User
	Amount      decimal.Decimal
	Description string
	SplitKind   models.SplitKind
	Payee       models.User // pair splits only
}

// AddUser appends name to the roster.
func AddUser(doc *models.LedgerDocument, name string) (*models.LedgerDocument, error) {
	name = models.NormalizeName(name)
	if name == "" {
		return nil, invalid(KindEmptyName, "")
	}
	if doc.HasUser(name) {
		return nil, invalid(KindDuplicateUser, name)
	}

	out := doc.Clone()
	out.Users = append(out.Users, name)
	return out, nil
}

// RemoveUser drops name from the roster together with every expense it paid
// for or received in a pair split. It returns the number of removed expenses.
// NextExpenseID is left unchanged.
func RemoveUser(doc *models.LedgerDocument, name string) (*models.LedgerDocument, int, error) {
	name = models.NormalizeName(name)
	if !doc.HasUser(name) {
		return nil, 0, invalid(KindUnknownUser, name)
	}

	out := &models.LedgerDocument{
		Users:         make([]models.User, 0, len(doc.Users)-1),
		Expenses:      make([]models.Expense, 0, len(doc.Expenses)),
		NextExpenseID: doc.NextExpenseID,
	}
	for _, u := range doc.Users {
		if u != name {
			out.Users = append(out.Users, u)
		}
	}

	removed := 0
	for _, e := range doc.Expenses {
		if e.Involves(name) {
			removed++
			continue
		}
		out.Expenses = append(out.Expenses, e)
	}
	return out, removed, nil
}

// AddExpense validates in and appends it with the next expense ID.
func AddExpense(doc *models.LedgerDocument, in ExpenseInput) (*models.LedgerDocument, models.Expense, error) {
	if err := validateExpense(doc, in); err != nil {
		return nil, models.Expense{}, err
	}

	expense := models.Expense{
		ID:          doc.NextExpenseID,
		Payer:       in.Payer,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		SplitKind:   in.SplitKind,
	}
	if in.SplitKind == models.SplitPair {
		expense.Payee = in.Payee
	}

	out := doc.Clone()
	out.Expenses = append(out.Expenses, expense)
	out.NextExpenseID++
	return out, expense, nil
}

// ClearExpenses empties the expense log. The roster and the ID counter are
// kept so IDs are never reused. It returns the number of cleared expenses.
func ClearExpenses(doc *models.LedgerDocument) (*models.LedgerDocument, int) {
	out := doc.Clone()
	out.Expenses = []models.Expense{}
	return out, len(doc.Expenses)
}

func validateExpense(doc *models.LedgerDocument, in ExpenseInput) error {
	if !doc.HasUser(in.Payer) {
		return invalid(KindUnknownUser, in.Payer)
	}
	if !in.Amount.IsPositive() {
		return invalid(KindNonPositiveAmount, "")
	}
	if strings.TrimSpace(in.Description) == "" {
		return invalid(KindEmptyDescription, "")
	}

	switch in.SplitKind {
	case models.SplitGroup:
	case models.SplitPair:
		if in.Payee == "" || in.Payee == in.Payer {
			return invalid(KindMissingPayee, in.Payee)
		}
		if !doc.HasUser(in.Payee) {
			return invalid(KindUnknownUser, in.Payee)
		}
	default:
		return invalid(KindUnknownSplitKind, string(in.SplitKind))
	}
	return nil
}
