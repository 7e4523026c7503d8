package ledger

import (
	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/shopspring/decimal"
)

// Cent is the smallest amount worth settling.
var Cent = decimal.New(1, -2)

// Balances lists every user's net position in roster order.
type Balances []models.Balance

// Of returns user's balance, or zero for a user not in the list.
func (b Balances) Of(user models.User) decimal.Decimal {
	for _, bal := range b {
		if bal.User == user {
			return bal.Amount
		}
	}
	return decimal.Zero
}

// Total sums all balances. It is zero up to division rounding.
func (b Balances) Total() decimal.Decimal {
	total := decimal.Zero
	for _, bal := range b {
		total = total.Add(bal.Amount)
	}
	return total
}

// CalculateBalances computes each user's net balance over the whole expense
// log. Positive means the user is owed money.
//
// Algorithm:
// - Payer is credited the full amount
// - Every participant is debited their share (see Shares)
// - Group splits divide by the current roster size, so adding or removing a
// user changes what everyone owes for past group expenses
//
// Expenses that reference users no longer on the roster are skipped.
func CalculateBalances(doc *models.LedgerDocument) Balances {
	balances := make(Balances, len(doc.Users))
	index := make(map[models.User]int, len(doc.Users))
	for i, u := range doc.Users {
		balances[i] = models.Balance{User: u, Amount: decimal.Zero}
		index[u] = i
	}
	if len(doc.Users) == 0 {
		return balances
	}

	for _, e := range doc.Expenses {
		payer, ok := index[e.Payer]
		if !ok {
			continue
		}
		shares, err := Shares(e, doc.Users)
		if err != nil {
			continue
		}
		if e.SplitKind == models.SplitPair {
			if _, known := index[e.Payee]; !known {
				continue
			}
		}

		balances[payer].Amount = balances[payer].Amount.Add(e.Amount)
		for user, share := range shares {
			i := index[user]
			balances[i].Amount = balances[i].Amount.Sub(share)
		}
	}

	return balances
}

// SimplifySettlements turns balances into a short list of transfers.
//
// Algorithm:
// - Round each balance to cents and drop anything under one cent
// - Split into debtors and creditors, keeping the input order
// - Greedy sweep: settle min(debt, credit) and move past whichever side
// drops under one cent
//
// The result is deterministic for a given input order. It is not guaranteed
// to be the minimum number of transfers.
func SimplifySettlements(balances Balances) []models.Settlement {
	var debtors, creditors []models.Balance
	for _, bal := range balances {
		rounded := bal.Amount.Round(2)
		if rounded.Abs().LessThan(Cent) {
			continue
		}
		if rounded.IsNegative() {
			debtors = append(debtors, models.Balance{User: bal.User, Amount: rounded.Neg()})
		} else {
			creditors = append(creditors, models.Balance{User: bal.User, Amount: rounded})
		}
	}

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.Amount, creditor.Amount)
		if amount.GreaterThanOrEqual(Cent) {
			settlements = append(settlements, models.Settlement{
				From:   debtor.User,
				To:     creditor.User,
				Amount: amount,
			})
		}

		debtor.Amount = debtor.Amount.Sub(amount)
		creditor.Amount = creditor.Amount.Sub(amount)

		if debtor.Amount.LessThan(Cent) {
			i++
		}
		if creditor.Amount.LessThan(Cent) {
			j++
		}
	}

	return settlements
}
