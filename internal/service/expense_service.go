package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/htn0810/Bill-Sharing/internal/format"
	"github.com/htn0810/Bill-Sharing/internal/ledger"
	"github.com/htn0810/Bill-Sharing/pkg/api"
	"github.com/htn0810/Bill-Sharing/pkg/api/apiconnect"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	ledger    *ledger.Ledger
	formatter *format.Formatter
}

// NewExpenseService creates a new ExpenseService on top of the given ledger.
func NewExpenseService(l *ledger.Ledger, f *format.Formatter) *ExpenseService {
	return &ExpenseService{ledger: l, formatter: f}
}

// CreateExpense records an expense on an active bill.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"bill_id", req.Msg.BillID,
		"amount", req.Msg.Amount,
		"paid_by", req.Msg.PaidBy,
		"category", req.Msg.Category,
	)

	expense, err := s.ledger.AddExpense(ctx, req.Msg.BillID, ledger.ExpenseInput{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		PaidBy:      req.Msg.PaidBy,
		Category:    req.Msg.Category,
		Date:        req.Msg.Date,
	})
	if err != nil {
		slog.Error("CreateExpense failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense created", "bill_id", expense.BillID, "expense_id", expense.ID)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(s.formatter, expense)}), nil
}

// ListExpenses returns the expenses of a bill.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "bill_id", req.Msg.BillID)

	expenses, err := s.ledger.ListExpenses(ctx, req.Msg.BillID)
	if err != nil {
		slog.Error("ListExpenses failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(s.formatter, e)
	}

	slog.Info("ListExpenses successful", "bill_id", req.Msg.BillID, "count", len(out))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense from an active bill.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "bill_id", req.Msg.BillID, "expense_id", req.Msg.ExpenseID)

	if err := s.ledger.DeleteExpense(ctx, req.Msg.BillID, req.Msg.ExpenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListCategories returns the category lookup set.
func (s *ExpenseService) ListCategories(ctx context.Context, req *connect.Request[api.ListCategoriesRequest]) (*connect.Response[api.ListCategoriesResponse], error) {
	categories, err := s.ledger.ListCategories(ctx)
	if err != nil {
		slog.Error("ListCategories failed", "error", err)
		return nil, toConnectError(err)
	}

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return connect.NewResponse(&api.ListCategoriesResponse{Categories: names}), nil
}
