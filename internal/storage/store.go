// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/htn0810/Bill-Sharing/internal/models"
)

var (
	// ErrNotFound is returned when a bill or expense does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedRecord is returned when a stored record cannot be converted into
	// a valid model (unknown status, empty member list, unparsable timestamp...).
	ErrMalformedRecord = errors.New("malformed record")
)

// Store defines the interface for bill and expense storage operations.
// This abstraction allows swapping storage backends (SQLite, in-memory, etc.)
// without changing the ledger layer.
type Store interface {
	// ListBills returns every bill, newest first.
	ListBills(ctx context.Context) ([]*models.Bill, error)

	// CreateBill persists a new bill.
	// The bill.ID field will be populated by the store if empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill by its ID.
	// Returns ErrNotFound if the bill does not exist.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// SetBillStatus changes the status of a bill. completedAt is stored when the
	// status is completed and ignored otherwise.
	SetBillStatus(ctx context.Context, billID string, status models.BillStatus, completedAt time.Time) error

	// UpdateBillMembers replaces the member list of a bill.
	UpdateBillMembers(ctx context.Context, billID string, members []string) error

	// ListExpenses returns the expenses of a bill, oldest first.
	ListExpenses(ctx context.Context, billID string) ([]*models.Expense, error)

	// GetExpense retrieves an expense by its ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// CreateExpense persists a new expense. ID and CreatedAt are set by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense.
	// Returns ErrNotFound if the expense does not exist.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListCategories returns the category lookup set ordered by name.
	ListCategories(ctx context.Context) ([]models.Category, error)

	// CreateCategory adds a category to the lookup set. Existing names are ignored.
	CreateCategory(ctx context.Context, category models.Category) error

	// Close releases any resources held by the store.
	Close() error
}
