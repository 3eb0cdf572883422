package ledger

import (
	"errors"
	"fmt"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
)

var (
	// ErrValidation is returned when input fails field validation.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateMember is returned when a member name is already on the bill.
	ErrDuplicateMember = errors.New("duplicate member")

	// ErrUnknownCategory is returned when an expense names a category outside the
	// lookup set.
	ErrUnknownCategory = errors.New("unknown category")

	// Lifecycle violations all match calculator.ErrInvalidState.
	ErrBillNotActive     = fmt.Errorf("bill is not active: %w", calculator.ErrInvalidState)
	ErrLastMember        = fmt.Errorf("cannot remove the last member: %w", calculator.ErrInvalidState)
	ErrMemberHasExpenses = fmt.Errorf("member has paid expenses: %w", calculator.ErrInvalidState)
)
