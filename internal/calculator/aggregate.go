package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OtherCategory is the group for expenses that carry no category.
const OtherCategory = "Other"

var hundred = decimal.NewFromInt(100)

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Percent  float64 // share of the grand total, one decimal place
}

// MemberTotal is the amount one member paid.
type MemberTotal struct {
	MemberName string
	Total      decimal.Decimal
}

// CategoryTotals groups expenses by category, in order of first occurrence, and
// computes each group's percentage of the grand total. A zero grand total yields
// 0% for every group.
func CategoryTotals(expenses []Expense) ([]CategoryTotal, error) {
	index := make(map[string]int)
	var totals []CategoryTotal
	grand := decimal.Zero

	for i, e := range expenses {
		amount, err := ParseAmount(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}

		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = OtherCategory
		}

		pos, ok := index[category]
		if !ok {
			pos = len(totals)
			index[category] = pos
			totals = append(totals, CategoryTotal{Category: category, Total: decimal.Zero})
		}
		totals[pos].Total = totals[pos].Total.Add(amount)
		grand = grand.Add(amount)
	}

	for i := range totals {
		totals[i].Percent = percentOf(totals[i].Total, grand)
	}
	return totals, nil
}

// MemberTotals sums what each member paid. Every member appears once, in input
// order, including members who paid nothing.
func MemberTotals(members []string, expenses []Expense) ([]MemberTotal, error) {
	sums := make(map[string]decimal.Decimal, len(members))
	for i, e := range expenses {
		amount, err := ParseAmount(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %d: %w", i, err)
		}
		sums[e.PaidBy] = sums[e.PaidBy].Add(amount)
	}

	totals := make([]MemberTotal, len(members))
	for i, m := range members {
		totals[i] = MemberTotal{MemberName: m, Total: sums[m]}
	}
	return totals, nil
}

// GrandTotal sums all expense amounts.
func GrandTotal(expenses []Expense) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, e := range expenses {
		amount, err := ParseAmount(e.Amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("expense %d: %w", i, err)
		}
		total = total.Add(amount)
	}
	return total, nil
}

func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).Round(1).InexactFloat64()
}
