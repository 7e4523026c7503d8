package dialog

import (
	"github.com/shopspring/decimal"

	"github.com/kristykoh/krispyledger-web/internal/models"
)

// Phase is the step a conversation is in.
type Phase int

const (
	Idle Phase = iota
	AwaitingUserName
	AwaitingRemoveUserName
	ChoosingPayer
	ChoosingSplitKind
	TypingAmount
	TypingDescription
)

var phaseNames = [...]string{
	Idle:                   "idle",
	AwaitingUserName:       "awaiting_user_name",
	AwaitingRemoveUserName: "awaiting_remove_user_name",
	ChoosingPayer:          "choosing_payer",
	ChoosingSplitKind:      "choosing_split_kind",
	TypingAmount:           "typing_amount",
	TypingDescription:      "typing_description",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Buffer accumulates a partially entered expense.
type Buffer struct {
	Payer     models.User
	SplitKind models.SplitKind
	Payee     models.User
	Amount    decimal.NullDecimal
}

// State is a conversation's dialog working memory. It is never persisted.
type State struct {
	ConversationID string
	Phase          Phase
	Buffer         Buffer

	// FlowID correlates the log lines of one multi-step flow.
	FlowID string
}

// NewState returns an idle state for a conversation.
func NewState(conversationID string) State {
	return State{ConversationID: conversationID}
}

// Reset returns s moved back to Idle with an empty buffer.
func (s State) Reset() State {
	return State{ConversationID: s.ConversationID}
}
