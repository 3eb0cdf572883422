package calculator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidState is returned when there is nobody to split across.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidReference is returned when an expense names a payer who is not a member.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidAmount is returned when an amount is not a finite non-negative number.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Limits on the digits of an amount. A trillion đồng is far beyond any
// household bill, and sums of such amounts stay well inside int64.
const (
	MaxAmountIntegerDigits  = 15
	MaxAmountFractionDigits = 6
)

// plainAmount matches unsigned digits with an optional fraction. Exponents,
// signs and grouping separators are rejected.
var plainAmount = regexp.MustCompile(fmt.Sprintf(`^\d{1,%d}(\.\d{1,%d})?$`, MaxAmountIntegerDigits, MaxAmountFractionDigits))

// ParseAmount converts a stored decimal amount string into a decimal.
// Surrounding whitespace is ignored. Anything but plain digits with an optional
// fraction, within the digit limits, yields ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}
	if !plainAmount.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
