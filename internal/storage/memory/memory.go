// Package memory provides an in-process storage.Store for tests and demos.
//
// Records are kept in their persisted shape and go through the same parse
// boundary as the SQLite store, so both backends agree on what is malformed.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// DefaultCategories mirrors the categories seeded by the SQL migrations.
var DefaultCategories = []string{"Food", "Groceries", "Utilities", "Rent", "Internet", "Transport", "Other"}

// Store is a mutex-guarded map store.
type Store struct {
	mu         sync.RWMutex
	bills      map[string]storage.BillRecord
	expenses   map[string]storage.ExpenseRecord
	categories map[string]struct{}
	now        func() time.Time
}

// New returns an empty store seeded with DefaultCategories.
func New() *Store {
	s := &Store{
		bills:      make(map[string]storage.BillRecord),
		expenses:   make(map[string]storage.ExpenseRecord),
		categories: make(map[string]struct{}),
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, c := range DefaultCategories {
		s.categories[c] = struct{}{}
	}
	return s
}

// PutBillRecord stores a raw record as-is. Used to load fixtures, including
// deliberately malformed ones.
func (s *Store) PutBillRecord(rec storage.BillRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills[rec.ID] = rec
}

// PutExpenseRecord stores a raw expense record as-is.
func (s *Store) PutExpenseRecord(rec storage.ExpenseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[rec.ID] = rec
}

// ListBills returns all bills, newest first.
func (s *Store) ListBills(ctx context.Context) ([]*models.Bill, error) {
	s.mu.RLock()
	records := make([]storage.BillRecord, 0, len(s.bills))
	for _, rec := range s.bills {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	// RFC 3339 timestamps in UTC sort lexically.
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID < records[j].ID
	})

	bills := make([]*models.Bill, 0, len(records))
	for _, rec := range records {
		bill, err := storage.ToBill(rec)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

// CreateBill stores a new bill, filling in ID, CreatedAt and status when unset.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = s.now()
	}
	if bill.Status == "" {
		bill.Status = models.BillStatusActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[bill.ID]; ok {
		return fmt.Errorf("bill %s already exists", bill.ID)
	}
	s.bills[bill.ID] = storage.FromBill(bill)
	return nil
}

// GetBill retrieves a bill by ID.
func (s *Store) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	s.mu.RLock()
	rec, ok := s.bills[billID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return storage.ToBill(rec)
}

// SetBillStatus changes a bill's status. completedAt is kept only for completed bills.
func (s *Store) SetBillStatus(ctx context.Context, billID string, status models.BillStatus, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bills[billID]
	if !ok {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	rec.Status = string(status)
	rec.CompletedAt = ""
	if status == models.BillStatusCompleted {
		rec.CompletedAt = completedAt.UTC().Format(storage.TimeLayout)
	}
	s.bills[billID] = rec
	return nil
}

// UpdateBillMembers replaces the member list of a bill.
func (s *Store) UpdateBillMembers(ctx context.Context, billID string, members []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.bills[billID]
	if !ok {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	rec.Members = slices.Clone(members)
	s.bills[billID] = rec
	return nil
}

// ListExpenses returns the expenses of a bill ordered by date, then insertion.
func (s *Store) ListExpenses(ctx context.Context, billID string) ([]*models.Expense, error) {
	s.mu.RLock()
	var records []storage.ExpenseRecord
	for _, rec := range s.expenses {
		if rec.BillID == billID {
			records = append(records, rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		return a.ID < b.ID
	})

	expenses := make([]*models.Expense, 0, len(records))
	for _, rec := range records {
		e, err := storage.ToExpense(rec)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// GetExpense retrieves a single expense.
func (s *Store) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	s.mu.RLock()
	rec, ok := s.expenses[expenseID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return storage.ToExpense(rec)
}

// CreateExpense stores a new expense on an existing bill.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[expense.BillID]; !ok {
		return fmt.Errorf("bill %s: %w", expense.BillID, storage.ErrNotFound)
	}
	s.expenses[expense.ID] = storage.FromExpense(expense)
	return nil
}

// DeleteExpense removes an expense.
func (s *Store) DeleteExpense(ctx context.Context, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[expenseID]; !ok {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	delete(s.expenses, expenseID)
	return nil
}

// ListCategories returns the category lookup set ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for name := range s.categories {
		categories = append(categories, models.Category{Name: name})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// CreateCategory adds a category. Existing names are left untouched.
func (s *Store) CreateCategory(ctx context.Context, category models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.Name] = struct{}{}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
