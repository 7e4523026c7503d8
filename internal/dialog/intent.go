package dialog

// Kind identifies what the user asked for.
type Kind string

const (
	KindStart            Kind = "start"
	KindAddUserBegin     Kind = "add_user_begin"
	KindAddUserName      Kind = "add_user_name"
	KindAddUserDone      Kind = "add_user_done"
	KindRemoveUserBegin  Kind = "remove_user_begin"
	KindRemoveUserName   Kind = "remove_user_name"
	KindExpenseBegin     Kind = "expense_begin"
	KindSelectPayer      Kind = "select_payer"
	KindSelectGroupSplit Kind = "select_group_split"
	KindSelectPairSplit  Kind = "select_pair_split"
	KindAmountText       Kind = "amount_text"
	KindDescriptionText  Kind = "description_text"
	KindCancel           Kind = "cancel"
	KindViewSummary      Kind = "view_summary"
	KindViewLog          Kind = "view_log"
	KindClearAll         Kind = "clear_all"

	// KindText is free text whose meaning depends on the current phase.
	KindText Kind = "text"
)

var knownKinds = map[Kind]bool{
	KindStart: true, KindAddUserBegin: true, KindAddUserName: true, KindAddUserDone: true,
	KindRemoveUserBegin: true, KindRemoveUserName: true, KindExpenseBegin: true,
	KindSelectPayer: true, KindSelectGroupSplit: true, KindSelectPairSplit: true,
	KindAmountText: true, KindDescriptionText: true, KindCancel: true,
	KindViewSummary: true, KindViewLog: true, KindClearAll: true, KindText: true,
}

// Valid reports whether k is a known intent kind.
func (k Kind) Valid() bool {
	return knownKinds[k]
}

// Intent is one discrete user action.
type Intent struct {
	Kind Kind

	// Arg carries the typed text or the selected user name, when the kind
	// takes one.
	Arg string
}

// Constructors for intents that take an argument.

func AddUserName(text string) Intent      { return Intent{Kind: KindAddUserName, Arg: text} }
func RemoveUserName(name string) Intent   { return Intent{Kind: KindRemoveUserName, Arg: name} }
func SelectPayer(name string) Intent      { return Intent{Kind: KindSelectPayer, Arg: name} }
func SelectPairSplit(payee string) Intent { return Intent{Kind: KindSelectPairSplit, Arg: payee} }
func AmountText(text string) Intent       { return Intent{Kind: KindAmountText, Arg: text} }
func DescriptionText(text string) Intent  { return Intent{Kind: KindDescriptionText, Arg: text} }
func Text(text string) Intent             { return Intent{Kind: KindText, Arg: text} }

// Of returns an intent that takes no argument.
func Of(kind Kind) Intent { return Intent{Kind: kind} }

// route resolves free text into the intent the current phase expects.
func route(phase Phase, in Intent) Intent {
	if in.Kind != KindText {
		return in
	}
	switch phase {
	case AwaitingUserName:
		return AddUserName(in.Arg)
	case AwaitingRemoveUserName:
		return RemoveUserName(in.Arg)
	case ChoosingPayer:
		return SelectPayer(in.Arg)
	case TypingAmount:
		return AmountText(in.Arg)
	case TypingDescription:
		return DescriptionText(in.Arg)
	}
	return in
}
