package service

import (
	"github.com/htn0810/Bill-Sharing/internal/calculator"
	"github.com/htn0810/Bill-Sharing/internal/format"
	"github.com/htn0810/Bill-Sharing/internal/ledger"
	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/pkg/api"
)

func toAPIBill(f *format.Formatter, b *models.Bill) *api.Bill {
	return &api.Bill{
		ID:               b.ID,
		Name:             b.Name,
		Status:           string(b.Status),
		Members:          b.Members,
		CreatedAt:        b.CreatedAt,
		CompletedAt:      b.CompletedAt,
		CreatedAtDisplay: f.DateTime(b.CreatedAt),
	}
}

func toAPIExpense(f *format.Formatter, e *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:          e.ID,
		BillID:      e.BillID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Category:    e.Category,
		Date:        e.Date.Format(models.DateLayout),
		DateDisplay: f.CalendarDate(e.Date),
		CreatedAt:   e.CreatedAt,
	}
	// Stored amounts were validated on the way in.
	if amount, err := calculator.ParseAmount(e.Amount); err == nil {
		out.AmountDisplay = format.Currency(amount)
	}
	return out
}

func toAPISummary(f *format.Formatter, s *ledger.Summary) *api.Summary {
	out := &api.Summary{
		Bill:              toAPIBill(f, s.Bill),
		GrandTotal:        s.GrandTotal.String(),
		GrandTotalDisplay: format.Currency(s.GrandTotal),
		ExpenseCount:      len(s.Expenses),
	}
	for _, b := range s.Balances {
		out.Balances = append(out.Balances, &api.MemberBalance{
			Member:         b.MemberName,
			Balance:        b.NetBalance.String(),
			BalanceDisplay: format.Currency(b.NetBalance),
		})
	}
	for _, t := range s.Transfers {
		out.Transfers = append(out.Transfers, &api.Transfer{
			From:          t.From,
			To:            t.To,
			Amount:        t.Amount.String(),
			AmountDisplay: format.Currency(t.Amount),
		})
	}
	for _, c := range s.Categories {
		out.Categories = append(out.Categories, &api.CategoryTotal{
			Category:     c.Category,
			Total:        c.Total.String(),
			TotalDisplay: format.Currency(c.Total),
			Percent:      c.Percent,
		})
	}
	for _, m := range s.Members {
		out.MemberTotals = append(out.MemberTotals, &api.MemberTotal{
			Member:       m.MemberName,
			Total:        m.Total.String(),
			TotalDisplay: format.Currency(m.Total),
		})
	}
	return out
}
