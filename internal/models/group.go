package models

// FirstExpenseID is the ID assigned to the first expense of a fresh ledger.
const FirstExpenseID int64 = 1

// LedgerDocument is the complete persisted state of one conversation.
//
// Invariants kept by the ledger engine:
//   - every expense's payer (and payee for pair splits) is in Users
//   - NextExpenseID is greater than every expense ID
//   - every expense amount is positive
type LedgerDocument struct {
	// Users is the roster in insertion order.
	Users []User `json:"users"`

	// Expenses is the chronological expense log.
	Expenses []Expense `json:"expenses"`

	// NextExpenseID is the ID the next recorded expense receives.
	NextExpenseID int64 `json:"nextExpenseId"`
}

// NewLedgerDocument returns an empty ledger for a conversation that has never
// been saved.
func NewLedgerDocument() *LedgerDocument {
	return &LedgerDocument{
		Users:         []User{},
		Expenses:      []Expense{},
		NextExpenseID: FirstExpenseID,
	}
}

// HasUser reports whether name is on the roster.
func (d *LedgerDocument) HasUser(name User) bool {
	for _, u := range d.Users {
		if u == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the document.
func (d *LedgerDocument) Clone() *LedgerDocument {
	if d == nil {
		return nil
	}
	out := &LedgerDocument{
		Users:         make([]User, len(d.Users)),
		Expenses:      make([]Expense, len(d.Expenses)),
		NextExpenseID: d.NextExpenseID,
	}
	copy(out.Users, d.Users)
	copy(out.Expenses, d.Expenses)
	return out
}

// Normalize repairs fields a decoder may leave unset: nil slices and a zero
// ID counter.
func (d *LedgerDocument) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.NextExpenseID < FirstExpenseID {
		d.NextExpenseID = FirstExpenseID
		for _, e := range d.Expenses {
			if e.ID >= d.NextExpenseID {
				d.NextExpenseID = e.ID + 1
			}
		}
	}
}
