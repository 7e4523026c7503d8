package dialog

import (
	"errors"
	"fmt"

	"github.com/kristykoh/krispyledger-web/internal/ledger"
)

var (
	// ErrProtocol means the intent does not belong to the current step,
	// typically a stale button.
	ErrProtocol = errors.New("dialog: intent not valid in current step")

	// ErrInvalidAmount means the amount text is not a number.
	ErrInvalidAmount = errors.New("dialog: amount is not a number")

	// ErrAmountTooLarge means the amount is at or above MaxAmount.
	ErrAmountTooLarge = fmt.Errorf("%w: too large", ErrInvalidAmount)

	// ErrNoUsers means a flow needs participants and there are none.
	ErrNoUsers = errors.New("dialog: no participants yet")
)

// Outcome classes reported by Classify.
const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeProtocol   = "protocol"
)

// Classify buckets an Outcome error for metrics and logs.
func Classify(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrProtocol):
		return OutcomeProtocol
	default:
		return OutcomeValidation
	}
}

func protocolError(phase Phase, kind Kind) error {
	return fmt.Errorf("%w: %s during %s", ErrProtocol, kind, phase)
}

// userMessage turns a rendered error into text for the user.
func userMessage(err error) string {
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		switch verr.Kind {
		case ledger.KindDuplicateUser:
			return fmt.Sprintf("%s is already in the group.", verr.Subject)
		case ledger.KindEmptyName:
			return "Names can't be empty."
		case ledger.KindUnknownUser:
			return fmt.Sprintf("I don't know anyone called %q.", verr.Subject)
		case ledger.KindNonPositiveAmount:
			return "Amount must be greater than zero."
		case ledger.KindEmptyDescription:
			return "Description can't be empty."
		case ledger.KindMissingPayee:
			return "Pick someone other than the payer."
		}
	}
	switch {
	case errors.Is(err, ErrAmountTooLarge):
		return fmt.Sprintf("Amount must be less than %s.", MaxAmount.StringFixed(0))
	case errors.Is(err, ErrInvalidAmount):
		return "Enter a valid number (e.g., 15.50)."
	case errors.Is(err, ErrNoUsers):
		return "Add some people first."
	}
	return "That didn't work."
}
