package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage/storetest"
)

func TestLedgerModelRoundTrip(t *testing.T) {
	doc := &models.LedgerDocument{
		Users: []models.User{"Alice", "Bob"},
		Expenses: []models.Expense{
			{ID: 1, Payer: "Alice", Amount: decimal.RequireFromString("20.50"), Description: "Lunch", SplitKind: models.SplitGroup},
			{ID: 2, Payer: "Bob", Amount: decimal.RequireFromString("0.07"), Description: "Gum", SplitKind: models.SplitPair, Payee: "Alice"},
		},
		NextExpenseID: 3,
	}

	m, err := toLedgerModel("chat-1", doc)
	require.NoError(t, err)
	assert.Equal(t, "chat-1", m.ID)
	assert.Equal(t, "pair", m.Expenses[1].SplitKind)

	got, err := fromLedgerModel(m)
	require.NoError(t, err)
	assert.Equal(t, doc.Users, got.Users)
	assert.Equal(t, doc.NextExpenseID, got.NextExpenseID)
	require.Len(t, got.Expenses, 2)
	for i := range doc.Expenses {
		assert.True(t, doc.Expenses[i].Amount.Equal(got.Expenses[i].Amount), "amount %d", i)
		assert.Equal(t, doc.Expenses[i].Payee, got.Expenses[i].Payee)
	}
}

func TestMongoStore_Contract(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	store, err := New(ctx, uri, "krispyledger_test")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.col.Drop(ctx))
	require.NoError(t, store.Migrate(ctx))

	storetest.Run(t, store)
}
