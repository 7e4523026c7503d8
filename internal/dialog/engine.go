package dialog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kristykoh/krispyledger-web/internal/ledger"
	"github.com/kristykoh/krispyledger-web/internal/models"
)

// stepKinds maps each in-flow intent to the only phase that accepts it.
var stepKinds = map[Kind]Phase{
	KindAddUserName:      AwaitingUserName,
	KindAddUserDone:      AwaitingUserName,
	KindRemoveUserName:   AwaitingRemoveUserName,
	KindSelectPayer:      ChoosingPayer,
	KindSelectGroupSplit: ChoosingSplitKind,
	KindSelectPairSplit:  ChoosingSplitKind,
	KindAmountText:       TypingAmount,
	KindDescriptionText:  TypingDescription,
}

// Outcome is the result of handling one intent.
type Outcome struct {
	State   State
	Renders []RenderRequest

	// Ledger is the new document when the intent changed it, nil otherwise.
	Ledger *models.LedgerDocument
	Report *MutationReport

	// Err is the validation or protocol error that was shown to the user.
	Err error
}

// Engine runs the dialog state machine.
type Engine struct {
	newFlowID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithFlowIDs overrides how flow correlation IDs are generated.
func WithFlowIDs(gen func() string) Option {
	return func(e *Engine) {
		e.newFlowID = gen
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{newFlowID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle applies in to the conversation in state s with ledger doc.
// doc is never modified.
func (e *Engine) Handle(s State, doc *models.LedgerDocument, in Intent) Outcome {
	in = route(s.Phase, in)

	switch in.Kind {
	case KindStart:
		return done(s, RenderRequest{Text: welcomeText + "\n\n" + menuText, Choices: MainMenu()})
	case KindCancel:
		if s.Phase == Idle {
			return done(s, menu(nothingText))
		}
		return done(s, menu(cancelledText))
	case KindAddUserBegin:
		return e.begin(s, doc, AwaitingUserName)
	case KindRemoveUserBegin:
		if len(doc.Users) == 0 {
			return failed(s, ErrNoUsers)
		}
		return e.begin(s, doc, AwaitingRemoveUserName)
	case KindExpenseBegin:
		if len(doc.Users) == 0 {
			return failed(s, ErrNoUsers)
		}
		return e.begin(s, doc, ChoosingPayer)
	case KindViewSummary:
		return view(s, doc, summaryText(doc))
	case KindViewLog:
		return view(s, doc, logText(doc))
	case KindClearAll:
		return clearAll(s, doc)
	}

	if phase, ok := stepKinds[in.Kind]; !ok || phase != s.Phase {
		return Outcome{
			State:   s,
			Renders: []RenderRequest{prompt(s, doc)},
			Err:     protocolError(s.Phase, in.Kind),
		}
	}

	switch in.Kind {
	case KindAddUserName:
		return addUser(s, doc, in.Arg)
	case KindAddUserDone:
		return done(s, menu(rosterText(doc)))
	case KindRemoveUserName:
		return removeUser(s, doc, in.Arg)
	case KindSelectPayer:
		return selectPayer(s, doc, in.Arg)
	case KindSelectGroupSplit:
		s.Buffer.SplitKind = models.SplitGroup
		s.Buffer.Payee = ""
		s.Phase = TypingAmount
		return step(s, doc)
	case KindSelectPairSplit:
		return selectPayee(s, doc, in.Arg)
	case KindAmountText:
		return enterAmount(s, doc, in.Arg)
	default: // KindDescriptionText
		return enterDescription(s, doc, in.Arg)
	}
}

func (e *Engine) begin(s State, doc *models.LedgerDocument, phase Phase) Outcome {
	s = s.Reset()
	s.Phase = phase
	s.FlowID = e.newFlowID()
	return step(s, doc)
}

// step moves to s and shows its prompt.
func step(s State, doc *models.LedgerDocument) Outcome {
	return Outcome{State: s, Renders: []RenderRequest{prompt(s, doc)}}
}

// retry keeps s and shows err above the current prompt.
func retry(s State, doc *models.LedgerDocument, err error) Outcome {
	return Outcome{State: s, Renders: []RenderRequest{withError(err, s, doc)}, Err: err}
}

// done ends any flow and shows r.
func done(s State, r RenderRequest) Outcome {
	return Outcome{State: s.Reset(), Renders: []RenderRequest{r}}
}

// failed ends any flow and explains err.
func failed(s State, err error) Outcome {
	return Outcome{State: s.Reset(), Renders: []RenderRequest{menu(userMessage(err))}, Err: err}
}

func view(s State, doc *models.LedgerDocument, text string) Outcome {
	return Outcome{
		State:   s,
		Renders: []RenderRequest{{Text: text}, prompt(s, doc)},
	}
}

func addUser(s State, doc *models.LedgerDocument, name string) Outcome {
	next, err := ledger.AddUser(doc, name)
	if err != nil {
		return retry(s, doc, err)
	}
	added := next.Users[len(next.Users)-1]

	r := prompt(s, next)
	r.Text = fmt.Sprintf("Added %s.", added) + "\n\n" + r.Text
	return Outcome{
		State:   s,
		Renders: []RenderRequest{r},
		Ledger:  next,
		Report:  &MutationReport{Kind: ReportUserAdded, User: added},
	}
}

func removeUser(s State, doc *models.LedgerDocument, name string) Outcome {
	next, removed, err := ledger.RemoveUser(doc, name)
	if err != nil {
		return retry(s, doc, err)
	}
	user := models.NormalizeName(name)

	text := fmt.Sprintf("Removed %s.", user)
	if removed > 0 {
		text = fmt.Sprintf("Removed %s and %d of their expenses.", user, removed)
	}
	out := done(s, menu(text))
	out.Ledger = next
	out.Report = &MutationReport{Kind: ReportUserRemoved, User: user, CascadedExpenses: removed}
	return out
}

func selectPayer(s State, doc *models.LedgerDocument, name string) Outcome {
	name = models.NormalizeName(name)
	if !doc.HasUser(name) {
		return retry(s, doc, &ledger.ValidationError{Kind: ledger.KindUnknownUser, Subject: name})
	}
	s.Buffer.Payer = name
	s.Phase = ChoosingSplitKind
	return step(s, doc)
}

func selectPayee(s State, doc *models.LedgerDocument, name string) Outcome {
	name = models.NormalizeName(name)
	if name == "" || name == s.Buffer.Payer {
		return retry(s, doc, &ledger.ValidationError{Kind: ledger.KindMissingPayee, Subject: name})
	}
	if !doc.HasUser(name) {
		return retry(s, doc, &ledger.ValidationError{Kind: ledger.KindUnknownUser, Subject: name})
	}
	s.Buffer.SplitKind = models.SplitPair
	s.Buffer.Payee = name
	s.Phase = TypingAmount
	return step(s, doc)
}

func enterAmount(s State, doc *models.LedgerDocument, text string) Outcome {
	amount, err := ParseAmount(text)
	if err != nil {
		return retry(s, doc, err)
	}
	s.Buffer.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
	s.Phase = TypingDescription
	return step(s, doc)
}

func enterDescription(s State, doc *models.LedgerDocument, text string) Outcome {
	next, expense, err := ledger.AddExpense(doc, ledger.ExpenseInput{
		Payer:       s.Buffer.Payer,
		Amount:      s.Buffer.Amount.Decimal,
		Description: text,
		SplitKind:   s.Buffer.SplitKind,
		Payee:       s.Buffer.Payee,
	})
	if errors.Is(err, ledger.ErrEmptyDescription) {
		return retry(s, doc, err)
	}
	if err != nil {
		// The buffer no longer fits the ledger, e.g. the payer was removed
		// elsewhere. Start over.
		return failed(s, err)
	}

	text = fmt.Sprintf("Recorded %s.", describeExpense(expense)) + "\n\n" + summaryText(next)
	out := done(s, menu(text))
	out.Ledger = next
	out.Report = &MutationReport{Kind: ReportExpenseAdded, User: expense.Payer, ExpenseID: expense.ID}
	return out
}

func clearAll(s State, doc *models.LedgerDocument) Outcome {
	if len(doc.Expenses) == 0 {
		return done(s, menu(noExpensesText))
	}
	next, cleared := ledger.ClearExpenses(doc)
	out := done(s, menu(fmt.Sprintf("Cleared %d expenses. Everyone is settled up.", cleared)))
	out.Ledger = next
	out.Report = &MutationReport{Kind: ReportLedgerCleared, ClearedExpenses: cleared}
	return out
}

func rosterText(doc *models.LedgerDocument) string {
	if len(doc.Users) == 0 {
		return noUsersText
	}
	return "Participants: " + strings.Join(doc.Users, ", ")
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
