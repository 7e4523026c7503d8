package mongo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kristykoh/krispyledger-web/internal/models"
)

type ledgerModel struct {
	ID            string         `bson:"_id"`
	Users         []string       `bson:"users"`
	Expenses      []expenseModel `bson:"expenses"`
	NextExpenseID int64          `bson:"next_expense_id"`
	UpdatedAt     time.Time      `bson:"updated_at"`
}

type expenseModel struct {
	ID          int64           `bson:"id"`
	Payer       string          `bson:"payer"`
	Amount      bson.Decimal128 `bson:"amount"`
	Description string          `bson:"description"`
	SplitKind   string          `bson:"split_kind"`
	Payee       string          `bson:"payee,omitempty"`
}

func toLedgerModel(conversationID string, doc *models.LedgerDocument) (*ledgerModel, error) {
	m := &ledgerModel{
		ID:            conversationID,
		Users:         append([]string{}, doc.Users...),
		Expenses:      make([]expenseModel, 0, len(doc.Expenses)),
		NextExpenseID: doc.NextExpenseID,
		UpdatedAt:     time.Now().UTC(),
	}
	for _, e := range doc.Expenses {
		amount, err := bson.ParseDecimal128(e.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("expense %d amount: %w", e.ID, err)
		}
		m.Expenses = append(m.Expenses, expenseModel{
			ID:          e.ID,
			Payer:       e.Payer,
			Amount:      amount,
			Description: e.Description,
			SplitKind:   string(e.SplitKind),
			Payee:       e.Payee,
		})
	}
	return m, nil
}

func fromLedgerModel(m *ledgerModel) (*models.LedgerDocument, error) {
	doc := &models.LedgerDocument{
		Users:         append([]models.User{}, m.Users...),
		Expenses:      make([]models.Expense, 0, len(m.Expenses)),
		NextExpenseID: m.NextExpenseID,
	}
	for _, e := range m.Expenses {
		amount, err := decimal.NewFromString(e.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("expense %d amount: %w", e.ID, err)
		}
		doc.Expenses = append(doc.Expenses, models.Expense{
			ID:          e.ID,
			Payer:       e.Payer,
			Amount:      amount,
			Description: e.Description,
			SplitKind:   models.SplitKind(e.SplitKind),
			Payee:       e.Payee,
		})
	}
	doc.Normalize()
	return doc, nil
}
