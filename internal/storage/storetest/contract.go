// Package storetest holds the behavior every storage.LedgerStore must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage"
	"github.com/shopspring/decimal"
)

// Run verifies that store complies with storage.LedgerStore.
func Run(t *testing.T, store storage.LedgerStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected storage.ErrNotFound, got %v", err)
		}
	})

	t.Run("LoadOrNew_Empty", func(t *testing.T) {
		doc, err := storage.LoadOrNew(ctx, store, "contract-fresh")
		if err != nil {
			t.Fatalf("LoadOrNew failed: %v", err)
		}
		if len(doc.Users) != 0 || len(doc.Expenses) != 0 || doc.NextExpenseID != models.FirstExpenseID {
			t.Errorf("expected empty ledger, got %+v", doc)
		}
	})

	t.Run("Save_Load_RoundTrip", func(t *testing.T) {
		want := sampleDocument()
		if err := store.Save(ctx, "contract-roundtrip", want); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := store.Load(ctx, "contract-roundtrip")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		assertEqual(t, got, want)
	})

	t.Run("Save_Overwrites", func(t *testing.T) {
		first := sampleDocument()
		if err := store.Save(ctx, "contract-overwrite", first); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		second := models.NewLedgerDocument()
		second.Users = []models.User{"Zoe"}
		second.NextExpenseID = 9
		if err := store.Save(ctx, "contract-overwrite", second); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := store.Load(ctx, "contract-overwrite")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		assertEqual(t, got, second)
	})

	t.Run("Conversations_Isolated", func(t *testing.T) {
		a := models.NewLedgerDocument()
		a.Users = []models.User{"Alice"}
		b := models.NewLedgerDocument()
		b.Users = []models.User{"Bob"}

		if err := store.Save(ctx, "contract-a", a); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := store.Save(ctx, "contract-b", b); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := store.Load(ctx, "contract-a")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		assertEqual(t, got, a)
	})

	t.Run("Load_ReturnsCopy", func(t *testing.T) {
		doc := sampleDocument()
		if err := store.Save(ctx, "contract-copy", doc); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		doc.Users[0] = "Mallory"

		loaded, err := store.Load(ctx, "contract-copy")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		loaded.Users[1] = "Eve"

		again, err := store.Load(ctx, "contract-copy")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		assertEqual(t, again, sampleDocument())
	})
}

func sampleDocument() *models.LedgerDocument {
	return &models.LedgerDocument{
		Users: []models.User{"Alice", "Bob", "Carol"},
		Expenses: []models.Expense{
			{ID: 1, Payer: "Alice", Amount: decimal.RequireFromString("20.50"), Description: "Lunch", SplitKind: models.SplitGroup},
			{ID: 3, Payer: "Bob", Amount: decimal.RequireFromString("7.25"), Description: "Coffee", SplitKind: models.SplitPair, Payee: "Carol"},
		},
		NextExpenseID: 4,
	}
}

func assertEqual(t *testing.T, got, want *models.LedgerDocument) {
	t.Helper()
	if got.NextExpenseID != want.NextExpenseID {
		t.Errorf("NextExpenseID = %d, want %d", got.NextExpenseID, want.NextExpenseID)
	}
	if len(got.Users) != len(want.Users) {
		t.Fatalf("Users = %v, want %v", got.Users, want.Users)
	}
	for i := range want.Users {
		if got.Users[i] != want.Users[i] {
			t.Errorf("Users[%d] = %q, want %q", i, got.Users[i], want.Users[i])
		}
	}
	if len(got.Expenses) != len(want.Expenses) {
		t.Fatalf("Expenses = %v, want %v", got.Expenses, want.Expenses)
	}
	for i, w := range want.Expenses {
		g := got.Expenses[i]
		if g.ID != w.ID || g.Payer != w.Payer || g.Description != w.Description || g.SplitKind != w.SplitKind || g.Payee != w.Payee {
			t.Errorf("Expenses[%d] = %+v, want %+v", i, g, w)
		}
		if !g.Amount.Equal(w.Amount) {
			t.Errorf("Expenses[%d].Amount = %s, want %s", i, g.Amount, w.Amount)
		}
	}
}
