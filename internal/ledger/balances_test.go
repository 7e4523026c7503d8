package ledger

import (
	"testing"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/shopspring/decimal"
)

func mustExpense(t *testing.T, doc *models.LedgerDocument, in ExpenseInput) *models.LedgerDocument {
	t.Helper()
	out, _, err := AddExpense(doc, in)
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return out
}

func TestCalculateBalances(t *testing.T) {
	t.Run("two users group lunch", func(t *testing.T) {
		doc := docWithUsers(t, "A", "B")
		doc = mustExpense(t, doc, ExpenseInput{Payer: "A", Amount: dec("20"), Description: "Lunch", SplitKind: models.SplitGroup})

		balances := CalculateBalances(doc)
		if !balances.Of("A").Equal(dec("10")) {
			t.Errorf("A = %s, want 10", balances.Of("A"))
		}
		if !balances.Of("B").Equal(dec("-10")) {
			t.Errorf("B = %s, want -10", balances.Of("B"))
		}
	})

	t.Run("pair coffee leaves third user even", func(t *testing.T) {
		doc := docWithUsers(t, "A", "B", "C")
		doc = mustExpense(t, doc, ExpenseInput{Payer: "A", Amount: dec("10"), Description: "Coffee", SplitKind: models.SplitPair, Payee: "B"})

		balances := CalculateBalances(doc)
		want := map[models.User]string{"A": "5", "B": "-5", "C": "0"}
		for u, w := range want {
			if !balances.Of(u).Equal(dec(w)) {
				t.Errorf("%s = %s, want %s", u, balances.Of(u), w)
			}
		}
	})

	t.Run("roster order is preserved", func(t *testing.T) {
		doc := docWithUsers(t, "Carol", "Alice", "Bob")
		balances := CalculateBalances(doc)
		for i, want := range []models.User{"Carol", "Alice", "Bob"} {
			if balances[i].User != want {
				t.Errorf("balances[%d] = %s, want %s", i, balances[i].User, want)
			}
		}
	})

	t.Run("empty roster", func(t *testing.T) {
		if got := CalculateBalances(models.NewLedgerDocument()); len(got) != 0 {
			t.Errorf("expected no balances, got %v", got)
		}
	})

	t.Run("group splits divide by the live roster", func(t *testing.T) {
		doc := docWithUsers(t, "A", "B")
		doc = mustExpense(t, doc, ExpenseInput{Payer: "A", Amount: dec("30"), Description: "Dinner", SplitKind: models.SplitGroup})
		doc, _ = AddUser(doc, "C")

		balances := CalculateBalances(doc)
		if !balances.Of("A").Equal(dec("20")) || !balances.Of("C").Equal(dec("-10")) {
			t.Errorf("balances = %v, want A=20 C=-10", balances)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		doc := docWithUsers(t, "A", "B", "C")
		doc = mustExpense(t, doc, ExpenseInput{Payer: "B", Amount: dec("17.35"), Description: "Taxi", SplitKind: models.SplitGroup})
		first := CalculateBalances(doc)
		second := CalculateBalances(doc)
		for i := range first {
			if !first[i].Amount.Equal(second[i].Amount) {
				t.Errorf("balance %d differs: %s vs %s", i, first[i].Amount, second[i].Amount)
			}
		}
	})
}

func TestGroupSplitConservesMoney(t *testing.T) {
	doc := docWithUsers(t, "A", "B", "C", "D", "E", "F", "G")
	amounts := []string{"10", "33.33", "0.07", "1234.56", "99.99"}
	for i, a := range amounts {
		payer := doc.Users[i%len(doc.Users)]
		doc = mustExpense(t, doc, ExpenseInput{Payer: payer, Amount: dec(a), Description: "Shared", SplitKind: models.SplitGroup})
	}

	total := CalculateBalances(doc).Total()
	tolerance := decimal.New(1, -9)
	if total.Abs().GreaterThan(tolerance) {
		t.Errorf("balances sum to %s, want ~0", total)
	}
}

func TestSimplifySettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		want     []models.Settlement
	}{
		{
			name: "single debt",
			balances: Balances{
				{User: "A", Amount: dec("10")},
				{User: "B", Amount: dec("-10")},
			},
			want: []models.Settlement{{From: "B", To: "A", Amount: dec("10")}},
		},
		{
			name: "everyone even",
			balances: Balances{
				{User: "A", Amount: dec("0")},
				{User: "B", Amount: dec("0.004")},
			},
			want: nil,
		},
		{
			name: "first seen order, no sorting",
			balances: Balances{
				{User: "A", Amount: dec("-5")},
				{User: "B", Amount: dec("-15")},
				{User: "C", Amount: dec("12")},
				{User: "D", Amount: dec("8")},
			},
			want: []models.Settlement{
				{From: "A", To: "C", Amount: dec("5")},
				{From: "B", To: "C", Amount: dec("7")},
				{From: "B", To: "D", Amount: dec("8")},
			},
		},
		{
			name: "thirds leave a cent unsettled",
			balances: Balances{
				{User: "A", Amount: dec("6.6666666666666667")},
				{User: "B", Amount: dec("-3.3333333333333333")},
				{User: "C", Amount: dec("-3.3333333333333333")},
			},
			want: []models.Settlement{
				{From: "B", To: "A", Amount: dec("3.33")},
				{From: "C", To: "A", Amount: dec("3.33")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifySettlements(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d settlements %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i].From != tt.want[i].From || got[i].To != tt.want[i].To || !got[i].Amount.Equal(tt.want[i].Amount) {
					t.Errorf("settlement %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSettlementsSettleEveryone(t *testing.T) {
	doc := docWithUsers(t, "A", "B", "C", "D")
	doc = mustExpense(t, doc, ExpenseInput{Payer: "A", Amount: dec("100"), Description: "Hotel", SplitKind: models.SplitGroup})
	doc = mustExpense(t, doc, ExpenseInput{Payer: "B", Amount: dec("41.17"), Description: "Fuel", SplitKind: models.SplitGroup})
	doc = mustExpense(t, doc, ExpenseInput{Payer: "C", Amount: dec("9.99"), Description: "Snacks", SplitKind: models.SplitPair, Payee: "D"})

	balances := CalculateBalances(doc)
	settlements := SimplifySettlements(balances)

	remaining := make(map[models.User]decimal.Decimal)
	for _, b := range balances {
		remaining[b.User] = b.Amount.Round(2)
	}
	for _, s := range settlements {
		if s.Amount.LessThan(Cent) {
			t.Errorf("settlement below one cent: %+v", s)
		}
		remaining[s.From] = remaining[s.From].Add(s.Amount)
		remaining[s.To] = remaining[s.To].Sub(s.Amount)
	}
	for u, r := range remaining {
		if r.Abs().GreaterThan(Cent) {
			t.Errorf("%s left with %s after settling", u, r)
		}
	}
}
