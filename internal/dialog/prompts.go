package dialog

import (
	"fmt"
	"strings"

	"github.com/kristykoh/krispyledger-web/internal/ledger"
	"github.com/kristykoh/krispyledger-web/internal/models"
)

const (
	welcomeText     = "Welcome to KrispyLedger! Track shared expenses and see who owes whom."
	menuText        = "What would you like to do?"
	cancelledText   = "Transaction cancelled."
	nothingText     = "Nothing to cancel."
	noUsersText     = "No participants yet."
	noExpensesText  = "No expenses recorded."
	settledUpText   = "Everyone is settled up."
	FailureText     = "Sorry, something went wrong while saving. Please start again."
	cancelLabel     = "Cancel"
	doneLabel       = "Done"
	everyoneLabel   = "Split with everyone"
	pairLabelFormat = "Split with %s"
)

var cancelRow = []Choice{choice(cancelLabel, Of(KindCancel))}

// MainMenu is the set of top-level actions.
func MainMenu() [][]Choice {
	return [][]Choice{
		{choice("Add expense", Of(KindExpenseBegin)), choice("Summary", Of(KindViewSummary))},
		{choice("Add people", Of(KindAddUserBegin)), choice("Remove person", Of(KindRemoveUserBegin))},
		{choice("Expense log", Of(KindViewLog)), choice("Clear expenses", Of(KindClearAll))},
	}
}

// Failure is shown when a conversation's ledger could not be loaded or saved.
func Failure() RenderRequest {
	return RenderRequest{Text: FailureText, Choices: MainMenu()}
}

func menu(lead string) RenderRequest {
	text := menuText
	if lead != "" {
		text = lead + "\n\n" + menuText
	}
	return RenderRequest{Text: text, Choices: MainMenu()}
}

// prompt renders the current step of s.
func prompt(s State, doc *models.LedgerDocument) RenderRequest {
	switch s.Phase {
	case AwaitingUserName:
		return RenderRequest{
			Text:    "Send the name of a person to add, or tap Done.",
			Choices: [][]Choice{{choice(doneLabel, Of(KindAddUserDone)), choice(cancelLabel, Of(KindCancel))}},
		}
	case AwaitingRemoveUserName:
		return RenderRequest{
			Text:    "Who should be removed? Their expenses are removed too.",
			Choices: userRows(doc.Users, RemoveUserName),
		}
	case ChoosingPayer:
		return RenderRequest{
			Text:    "Who paid?",
			Choices: userRows(doc.Users, SelectPayer),
		}
	case ChoosingSplitKind:
		rows := [][]Choice{{choice(everyoneLabel, Of(KindSelectGroupSplit))}}
		for _, u := range doc.Users {
			if u == s.Buffer.Payer {
				continue
			}
			rows = append(rows, []Choice{choice(fmt.Sprintf(pairLabelFormat, u), SelectPairSplit(u))})
		}
		rows = append(rows, cancelRow)
		return RenderRequest{
			Text:    fmt.Sprintf("How should %s's expense be split?", s.Buffer.Payer),
			Choices: rows,
		}
	case TypingAmount:
		return RenderRequest{
			Text:    fmt.Sprintf("How much did %s pay? (e.g., 15.50)", s.Buffer.Payer),
			Choices: [][]Choice{cancelRow},
		}
	case TypingDescription:
		return RenderRequest{
			Text:    fmt.Sprintf("What was the %s for?", money(s.Buffer.Amount.Decimal)),
			Choices: [][]Choice{cancelRow},
		}
	}
	return menu("")
}

// withError prefixes the current step with a message explaining err.
func withError(err error, s State, doc *models.LedgerDocument) RenderRequest {
	r := prompt(s, doc)
	r.Text = userMessage(err) + "\n\n" + r.Text
	return r
}

func userRows(users []models.User, intent func(string) Intent) [][]Choice {
	rows := make([][]Choice, 0, len(users)+1)
	for _, u := range users {
		rows = append(rows, []Choice{choice(u, intent(u))})
	}
	return append(rows, cancelRow)
}

func summaryText(doc *models.LedgerDocument) string {
	if len(doc.Users) == 0 {
		return noUsersText
	}

	balances := ledger.CalculateBalances(doc)
	var b strings.Builder
	b.WriteString("Balances\n")
	for _, bal := range balances {
		rounded := bal.Amount.Round(2)
		switch {
		case rounded.Abs().LessThan(ledger.Cent):
			fmt.Fprintf(&b, "%s is even\n", bal.User)
		case rounded.IsPositive():
			fmt.Fprintf(&b, "%s is owed %s\n", bal.User, money(rounded))
		default:
			fmt.Fprintf(&b, "%s owes %s\n", bal.User, money(rounded.Neg()))
		}
	}

	settlements := ledger.SimplifySettlements(balances)
	b.WriteString("\nSuggested transfers\n")
	if len(settlements) == 0 {
		b.WriteString(settledUpText)
	}
	for i, s := range settlements {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s pays %s %s", s.From, s.To, money(s.Amount))
	}
	return b.String()
}

func logText(doc *models.LedgerDocument) string {
	if len(doc.Expenses) == 0 {
		return noExpensesText
	}
	lines := make([]string, 0, len(doc.Expenses)+1)
	lines = append(lines, "Expenses")
	for _, e := range doc.Expenses {
		lines = append(lines, describeExpense(e))
	}
	return strings.Join(lines, "\n")
}

func describeExpense(e models.Expense) string {
	split := "split with everyone"
	if e.SplitKind == models.SplitPair {
		split = "split with " + e.Payee
	}
	return fmt.Sprintf("#%d %s paid %s for %s, %s", e.ID, e.Payer, money(e.Amount), e.Description, split)
}
