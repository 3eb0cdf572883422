package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/internal/storage"
)

var expenseColumns = []string{"id", "bill_id", "description", "amount", "paid_by", "category", "date", "created_at"}

// CreateExpense persists a new expense.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	rec := storage.FromExpense(expense)

	query, args, err := sq.Insert("expenses").
		Columns(expenseColumns...).
		Values(rec.ID, rec.BillID, rec.Description, rec.Amount, rec.PaidBy, rec.Category, rec.Date, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build expense insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// GetExpense retrieves a single expense.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	query, args, err := sq.Select(expenseColumns...).
		From("expenses").
		Where(sq.Eq{"id": expenseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build expense query: %w", err)
	}

	rec, err := scanExpense(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return storage.ToExpense(rec)
}

// ListExpenses returns the expenses of a bill ordered by date, then insertion.
func (s *SQLiteStore) ListExpenses(ctx context.Context, billID string) ([]*models.Expense, error) {
	query, args, err := sq.Select(expenseColumns...).
		From("expenses").
		Where(sq.Eq{"bill_id": billID}).
		OrderBy("date", "created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build expense query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		rec, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense, err := storage.ToExpense(rec)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes an expense.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	query, args, err := sq.Delete("expenses").Where(sq.Eq{"id": expenseID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build expense delete: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return rowsAffected(res, "expense", expenseID)
}

func scanExpense(row scanner) (storage.ExpenseRecord, error) {
	var rec storage.ExpenseRecord
	err := row.Scan(&rec.ID, &rec.BillID, &rec.Description, &rec.Amount, &rec.PaidBy, &rec.Category, &rec.Date, &rec.CreatedAt)
	return rec, err
}
