package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Expense is the minimal view of an expense needed for calculations.
type Expense struct {
	Amount   string // decimal string, as stored
	PaidBy   string
	Category string
}

// ComputeBalances returns each member's net balance under equal-split sharing.
// Positive = owed money, Negative = owes money.
//
// For every expense the payer is credited amount - amount/n and every other member
// is debited amount/n, where n is the number of members. Values are accumulated at
// full precision; rounding is left to the display layer.
func ComputeBalances(members []string, expenses []Expense) (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal, len(members))
	for _, m := range members {
		if _, dup := balances[m]; dup {
			return nil, fmt.Errorf("%w: duplicate member %q", ErrInvalidState, m)
		}
		balances[m] = decimal.Zero
	}

	for i, e := range expenses {
		n := len(members)
		if n == 0 {
			return nil, fmt.Errorf("%w: no members to split across", ErrInvalidState)
		}
		if _, ok := balances[e.PaidBy]; !ok {
			return nil, fmt.Errorf("%w: expense %d paid by %q who is not a member", ErrInvalidReference, i, e.PaidBy)
		}
		amount, err := ParseAmount(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}

		share := amount.Div(decimal.NewFromInt(int64(n)))
		for _, m := range members {
			if m == e.PaidBy {
				balances[m] = balances[m].Add(amount.Sub(share))
			} else {
				balances[m] = balances[m].Sub(share)
			}
		}
	}

	return balances, nil
}
