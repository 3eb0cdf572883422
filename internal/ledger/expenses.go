package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
	"github.com/htn0810/Bill-Sharing/internal/events"
	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/internal/storage"
)

// ExpenseInput is an expense as entered by a user. Amount stays a decimal
// string end to end.
type ExpenseInput struct {
	Description string `validate:"required,max=255"`
	Amount      string `validate:"required"`
	PaidBy      string `validate:"required"`
	Category    string `validate:"required,max=64"`
	Date        string `validate:"required,datetime=2006-01-02"`
}

// ListExpenses returns the expenses of an existing bill.
func (l *Ledger) ListExpenses(ctx context.Context, billID string) ([]*models.Expense, error) {
	if _, err := l.store.GetBill(ctx, billID); err != nil {
		return nil, err
	}
	return l.store.ListExpenses(ctx, billID)
}

// AddExpense records an expense on an active bill.
func (l *Ledger) AddExpense(ctx context.Context, billID string, in ExpenseInput) (*models.Expense, error) {
	in.Description = strings.TrimSpace(in.Description)
	in.Amount = strings.TrimSpace(in.Amount)
	in.PaidBy = normalizeName(in.PaidBy)
	in.Category = strings.TrimSpace(in.Category)
	in.Date = strings.TrimSpace(in.Date)

	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	amount, err := calculator.ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", calculator.ErrInvalidAmount)
	}

	date, err := time.Parse(models.DateLayout, in.Date)
	if err != nil {
		return nil, validationError(err)
	}

	bill, err := l.activeBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if !bill.HasMember(in.PaidBy) {
		return nil, fmt.Errorf("payer %q: %w", in.PaidBy, calculator.ErrInvalidReference)
	}
	if err := l.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		BillID:      billID,
		Description: in.Description,
		Amount:      amount.String(),
		PaidBy:      in.PaidBy,
		Category:    in.Category,
		Date:        date,
		CreatedAt:   l.now(),
	}
	if err := l.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	e := events.New(events.ExpenseCreated, billID)
	e.ExpenseID = expense.ID
	l.publish(ctx, e)
	return expense, nil
}

// DeleteExpense removes an expense from an active bill.
func (l *Ledger) DeleteExpense(ctx context.Context, billID, expenseID string) error {
	if _, err := l.activeBill(ctx, billID); err != nil {
		return err
	}

	expense, err := l.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.BillID != billID {
		return fmt.Errorf("expense %s on bill %s: %w", expenseID, billID, storage.ErrNotFound)
	}

	if err := l.store.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	e := events.New(events.ExpenseDeleted, billID)
	e.ExpenseID = expenseID
	l.publish(ctx, e)
	return nil
}

// ListCategories returns the category lookup set.
func (l *Ledger) ListCategories(ctx context.Context) ([]models.Category, error) {
	return l.store.ListCategories(ctx)
}

// AddCategory extends the lookup set.
func (l *Ledger) AddCategory(ctx context.Context, name string) (models.Category, error) {
	name = normalizeName(name)
	if err := validate.Var(name, "required,max=64"); err != nil {
		return models.Category{}, validationError(fmt.Errorf("category: %w", err))
	}

	c := models.Category{Name: name}
	if err := l.store.CreateCategory(ctx, c); err != nil {
		return models.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (l *Ledger) checkCategory(ctx context.Context, name string) error {
	categories, err := l.store.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		if c.Name == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
