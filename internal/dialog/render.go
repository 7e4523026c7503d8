package dialog

// Choice is one button.
type Choice struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

// RenderRequest is a message for the transport to show. Choices are grouped
// in rows.
type RenderRequest struct {
	Text    string     `json:"text"`
	Choices [][]Choice `json:"choices,omitempty"`
}

// ReportKind names the ledger change a flow committed.
type ReportKind string

const (
	ReportUserAdded     ReportKind = "user_added"
	ReportUserRemoved   ReportKind = "user_removed"
	ReportExpenseAdded  ReportKind = "expense_added"
	ReportLedgerCleared ReportKind = "ledger_cleared"
)

// MutationReport describes a committed ledger change for logging and for
// transports that want to format their own confirmation.
type MutationReport struct {
	Kind             ReportKind `json:"kind"`
	User             string     `json:"user,omitempty"`
	ExpenseID        int64      `json:"expenseId,omitempty"`
	CascadedExpenses int        `json:"cascadedExpenses,omitempty"`
	ClearedExpenses  int        `json:"clearedExpenses,omitempty"`
}
