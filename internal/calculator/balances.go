package calculator

import "github.com/shopspring/decimal"

// MemberBalance represents the balance information for one bill member.
type MemberBalance struct {
	MemberName string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
}

// Transfer represents a payment one member should make to another to settle up.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// settleThreshold is the smallest amount worth a transfer: one đồng.
var settleThreshold = decimal.NewFromInt(1)

// OrderBalances returns balances as a slice following the order of members.
// Members missing from balances are reported with a zero balance.
func OrderBalances(members []string, balances map[string]decimal.Decimal) []MemberBalance {
	out := make([]MemberBalance, 0, len(members))
	for _, m := range members {
		out = append(out, MemberBalance{MemberName: m, NetBalance: balances[m]})
	}
	return out
}

// Settle turns net balances into a short list of transfers that clears them.
//
// Algorithm:
// - Split members into debtors (negative balance) and creditors (positive balance)
// - Walk both lists in member order, matching what the current debtor owes with
//   what the current creditor is owed
// - Residues below one đồng are treated as settled
func Settle(members []string, balances map[string]decimal.Decimal) []Transfer {
	type party struct {
		name      string
		remaining decimal.Decimal
	}

	var creditors, debtors []party
	for _, m := range members {
		bal := balances[m]
		if bal.GreaterThanOrEqual(settleThreshold) {
			creditors = append(creditors, party{name: m, remaining: bal})
		} else if bal.Neg().GreaterThanOrEqual(settleThreshold) {
			debtors = append(debtors, party{name: m, remaining: bal.Neg()})
		}
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := decimal.Min(debtor.remaining, creditor.remaining)
		if amount.GreaterThanOrEqual(settleThreshold) {
			transfers = append(transfers, Transfer{
				From:   debtor.name,
				To:     creditor.name,
				Amount: amount,
			})
		}

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.LessThan(settleThreshold) {
			i++
		}
		if creditor.remaining.LessThan(settleThreshold) {
			j++
		}
	}

	return transfers
}
