package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerDocumentJSON(t *testing.T) {
	doc := &LedgerDocument{
		Users: []User{"Alice", "Bob"},
		Expenses: []Expense{
			{ID: 1, Payer: "Alice", Amount: decimal.RequireFromString("20.50"), Description: "Lunch", SplitKind: SplitGroup},
			{ID: 2, Payer: "Bob", Amount: decimal.NewFromInt(10), Description: "Coffee", SplitKind: SplitPair, Payee: "Alice"},
		},
		NextExpenseID: 3,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	got := string(data)
	if !strings.Contains(got, `"amount":20.5`) {
		t.Errorf("expected numeric amount, got %s", got)
	}
	if strings.Count(got, `"payee"`) != 1 {
		t.Errorf("expected payee only on the pair split, got %s", got)
	}
	if !strings.Contains(got, `"nextExpenseId":3`) {
		t.Errorf("expected nextExpenseId, got %s", got)
	}

	var decoded LedgerDocument
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Expenses[0].Amount.Equal(decimal.RequireFromString("20.5")) {
		t.Errorf("amount = %s, want 20.5", decoded.Expenses[0].Amount)
	}
	if decoded.Expenses[1].Payee != "Alice" {
		t.Errorf("payee = %q, want Alice", decoded.Expenses[1].Payee)
	}
}

func TestLedgerDocumentClone(t *testing.T) {
	doc := NewLedgerDocument()
	doc.Users = append(doc.Users, "Alice")

	clone := doc.Clone()
	clone.Users[0] = "Mallory"
	clone.Users = append(clone.Users, "Bob")

	if doc.Users[0] != "Alice" || len(doc.Users) != 1 {
		t.Errorf("clone mutation leaked into original: %v", doc.Users)
	}
}

func TestLedgerDocumentNormalize(t *testing.T) {
	doc := &LedgerDocument{
		Expenses: []Expense{{ID: 4}, {ID: 7}},
	}
	doc.Normalize()

	if doc.Users == nil {
		t.Error("expected non-nil users")
	}
	if doc.NextExpenseID != 8 {
		t.Errorf("NextExpenseID = %d, want 8", doc.NextExpenseID)
	}
}

func TestExpenseInvolves(t *testing.T) {
	group := Expense{Payer: "Alice", SplitKind: SplitGroup, Payee: "Bob"}
	if group.Involves("Bob") {
		t.Error("group split should ignore a stray payee")
	}
	pair := Expense{Payer: "Alice", SplitKind: SplitPair, Payee: "Bob"}
	if !pair.Involves("Bob") || !pair.Involves("Alice") {
		t.Error("pair split should involve payer and payee")
	}
}
