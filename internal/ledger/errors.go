package ledger

import "fmt"

// ErrorKind classifies a rejected ledger operation.
type ErrorKind string

const (
	KindDuplicateUser     ErrorKind = "duplicate_user"
	KindEmptyName         ErrorKind = "empty_name"
	KindUnknownUser       ErrorKind = "unknown_user"
	KindNonPositiveAmount ErrorKind = "non_positive_amount"
	KindEmptyDescription  ErrorKind = "empty_description"
	KindMissingPayee      ErrorKind = "missing_payee"
	KindUnknownSplitKind  ErrorKind = "unknown_split_kind"
)

var kindMessages = map[ErrorKind]string{
	KindDuplicateUser:     "user already exists",
	KindEmptyName:         "name must not be empty",
	KindUnknownUser:       "unknown user",
	KindNonPositiveAmount: "amount must be greater than zero",
	KindEmptyDescription:  "description must not be empty",
	KindMissingPayee:      "pair split needs a payee other than the payer",
	KindUnknownSplitKind:  "unknown split kind",
}

// ValidationError reports input the ledger rejected. The document is left
// unchanged whenever one is returned.
type ValidationError struct {
	Kind ErrorKind

	// Subject is the offending value, when there is one (a user name).
	Subject string
}

func (e *ValidationError) Error() string {
	msg, ok := kindMessages[e.Kind]
	if !ok {
		msg = string(e.Kind)
	}
	if e.Subject != "" {
		return fmt.Sprintf("ledger: %s: %q", msg, e.Subject)
	}
	return "ledger: " + msg
}

// Is matches any ValidationError of the same kind, so the sentinels below
// work with errors.Is regardless of Subject.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrDuplicateUser     = &ValidationError{Kind: KindDuplicateUser}
	ErrEmptyName         = &ValidationError{Kind: KindEmptyName}
	ErrUnknownUser       = &ValidationError{Kind: KindUnknownUser}
	ErrNonPositiveAmount = &ValidationError{Kind: KindNonPositiveAmount}
	ErrEmptyDescription  = &ValidationError{Kind: KindEmptyDescription}
	ErrMissingPayee      = &ValidationError{Kind: KindMissingPayee}
	ErrUnknownSplitKind  = &ValidationError{Kind: KindUnknownSplitKind}
)

func invalid(kind ErrorKind, subject string) error {
	return &ValidationError{Kind: kind, Subject: subject}
}
