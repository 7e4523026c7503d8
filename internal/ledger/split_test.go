package ledger

import (
	"errors"
	"testing"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestShares(t *testing.T) {
	tests := []struct {
		name         string
		expense      models.Expense
		users        []models.User
		wantErr      error
		validateFunc func(t *testing.T, shares map[models.User]decimal.Decimal)
	}{
		{
			name:    "group split divides by roster size",
			expense: models.Expense{ID: 1, Payer: "Alice", Amount: dec("30"), SplitKind: models.SplitGroup},
			users:   []models.User{"Alice", "Bob", "Carol"},
			validateFunc: func(t *testing.T, shares map[models.User]decimal.Decimal) {
				for _, u := range []models.User{"Alice", "Bob", "Carol"} {
					if !shares[u].Equal(dec("10")) {
						t.Errorf("%s share = %s, want 10", u, shares[u])
					}
				}
			},
		},
		{
			name:    "group split over empty roster has no shares",
			expense: models.Expense{ID: 1, Payer: "Alice", Amount: dec("30"), SplitKind: models.SplitGroup},
			users:   nil,
			validateFunc: func(t *testing.T, shares map[models.User]decimal.Decimal) {
				if len(shares) != 0 {
					t.Errorf("expected no shares, got %v", shares)
				}
			},
		},
		{
			name:    "pair split halves between payer and payee",
			expense: models.Expense{ID: 2, Payer: "Alice", Amount: dec("10"), SplitKind: models.SplitPair, Payee: "Bob"},
			users:   []models.User{"Alice", "Bob", "Carol"},
			validateFunc: func(t *testing.T, shares map[models.User]decimal.Decimal) {
				if !shares["Alice"].Equal(dec("5")) || !shares["Bob"].Equal(dec("5")) {
					t.Errorf("shares = %v, want 5 each", shares)
				}
				if _, ok := shares["Carol"]; ok {
					t.Error("Carol should not share a pair split")
				}
			},
		},
		{
			name:    "pair split without payee",
			expense: models.Expense{ID: 3, Payer: "Alice", Amount: dec("10"), SplitKind: models.SplitPair},
			users:   []models.User{"Alice", "Bob"},
			wantErr: ErrMissingPayee,
		},
		{
			name:    "unknown split kind",
			expense: models.Expense{ID: 4, Payer: "Alice", Amount: dec("10"), SplitKind: "thirds"},
			users:   []models.User{"Alice"},
			wantErr: ErrUnknownSplitKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Shares(tt.expense, tt.users)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Shares() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Shares() unexpected error: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}
