package dialog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kristykoh/krispyledger-web/internal/ledger"
)

// MaxAmount bounds a single expense.
var MaxAmount = decimal.New(1, 12)

const maxAmountLen = 32

// Plain digits with an optional fraction. No exponents, no separators.
var amountPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)

// ParseAmount reads a positive amount such as "15.50" or "$15.50". At most
// two decimal places are allowed and the amount must be below MaxAmount.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if len(s) > maxAmountLen || !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %.40q", ErrInvalidAmount, text)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if !d.IsPositive() {
		return decimal.Zero, &ledger.ValidationError{Kind: ledger.KindNonPositiveAmount}
	}
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, fmt.Errorf("%w: more than two decimal places in %q", ErrInvalidAmount, text)
	}
	if d.GreaterThanOrEqual(MaxAmount) {
		return decimal.Zero, ErrAmountTooLarge
	}
	return d, nil
}
