package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
	"github.com/htn0810/Bill-Sharing/internal/models"
)

// Summary is everything the bill overview screen shows.
type Summary struct {
	Bill       *models.Bill
	Expenses   []*models.Expense
	Balances   []calculator.MemberBalance
	Transfers  []calculator.Transfer
	Categories []calculator.CategoryTotal
	Members    []calculator.MemberTotal
	GrandTotal decimal.Decimal
}

// Summary recomputes balances and spending breakdowns for a bill from a fresh
// snapshot. Completed bills can still be summarized.
func (l *Ledger) Summary(ctx context.Context, billID string) (*Summary, error) {
	var (
		bill     *models.Bill
		expenses []*models.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bill, err = l.store.GetBill(gctx, billID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = l.store.ListExpenses(gctx, billID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inputs := CalculatorExpenses(expenses)

	balances, err := calculator.ComputeBalances(bill.Members, inputs)
	if err != nil {
		return nil, err
	}
	categories, err := calculator.CategoryTotals(inputs)
	if err != nil {
		return nil, err
	}
	members, err := calculator.MemberTotals(bill.Members, inputs)
	if err != nil {
		return nil, err
	}
	total, err := calculator.GrandTotal(inputs)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Bill:       bill,
		Expenses:   expenses,
		Balances:   calculator.OrderBalances(bill.Members, balances),
		Transfers:  calculator.Settle(bill.Members, balances),
		Categories: categories,
		Members:    members,
		GrandTotal: total,
	}, nil
}

// CalculatorExpenses projects stored expenses onto the calculator's input type.
func CalculatorExpenses(expenses []*models.Expense) []calculator.Expense {
	out := make([]calculator.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = calculator.Expense{Amount: e.Amount, PaidBy: e.PaidBy, Category: e.Category}
	}
	return out
}
