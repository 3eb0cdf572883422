package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Bills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateBill generates ID and defaults", func(t *testing.T) {
		bill := &models.Bill{Name: "Tháng 10", Members: []string{"An", "Bình"}}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.CreatedAt.IsZero() {
			t.Error("Expected CreatedAt to be set")
		}
		if bill.Status != models.BillStatusActive {
			t.Errorf("Expected status active, got %s", bill.Status)
		}
	})

	t.Run("GetBill keeps member order", func(t *testing.T) {
		original := &models.Bill{Name: "Đà Lạt", Members: []string{"Chi", "An", "Bình"}}
		if err := store.CreateBill(ctx, original); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		got, err := store.GetBill(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.Name != original.Name {
			t.Errorf("Name mismatch: got %s, want %s", got.Name, original.Name)
		}
		if len(got.Members) != 3 || got.Members[0] != "Chi" || got.Members[2] != "Bình" {
			t.Errorf("Members mismatch: got %v", got.Members)
		}
		if !got.CreatedAt.Equal(original.CreatedAt) {
			t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, original.CreatedAt)
		}
	})

	t.Run("GetBill returns ErrNotFound for nonexistent bill", func(t *testing.T) {
		_, err := store.GetBill(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SetBillStatus completes a bill", func(t *testing.T) {
		bill := &models.Bill{Name: "Tiền nhà", Members: []string{"An"}}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		now := time.Date(2026, 10, 31, 17, 0, 0, 0, time.UTC)
		if err := store.SetBillStatus(ctx, bill.ID, models.BillStatusCompleted, now); err != nil {
			t.Fatalf("SetBillStatus failed: %v", err)
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.IsActive() {
			t.Error("Expected bill to be completed")
		}
		if got.CompletedAt == nil || !got.CompletedAt.Equal(now) {
			t.Errorf("CompletedAt mismatch: got %v, want %v", got.CompletedAt, now)
		}

		if err := store.SetBillStatus(ctx, "missing", models.BillStatusCompleted, now); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateBillMembers replaces members", func(t *testing.T) {
		bill := &models.Bill{Name: "Du lịch", Members: []string{"An", "Bình"}}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		if err := store.UpdateBillMembers(ctx, bill.ID, []string{"Bình", "Dũng"}); err != nil {
			t.Fatalf("UpdateBillMembers failed: %v", err)
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if len(got.Members) != 2 || got.Members[0] != "Bình" || got.Members[1] != "Dũng" {
			t.Errorf("Members mismatch: got %v", got.Members)
		}

		if err := store.UpdateBillMembers(ctx, "missing", []string{"An"}); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListBills returns newest first", func(t *testing.T) {
		fresh := newTestStore(t)
		older := &models.Bill{Name: "cũ", Members: []string{"An"}, CreatedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)}
		newer := &models.Bill{Name: "mới", Members: []string{"An"}, CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
		for _, b := range []*models.Bill{older, newer} {
			if err := fresh.CreateBill(ctx, b); err != nil {
				t.Fatalf("CreateBill failed: %v", err)
			}
		}

		bills, err := fresh.ListBills(ctx)
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bills) != 2 || bills[0].ID != newer.ID || bills[1].ID != older.ID {
			t.Errorf("Unexpected order: %+v", bills)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	bill := &models.Bill{Name: "Tháng 10", Members: []string{"An", "Bình"}}
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	later := &models.Expense{
		BillID: bill.ID, Description: "Tiền điện", Amount: "450000", PaidBy: "An",
		Category: "Utilities", Date: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
	}
	earlier := &models.Expense{
		BillID: bill.ID, Description: "Đi chợ", Amount: "120000.5", PaidBy: "Bình",
		Category: "Groceries", Date: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
	}
	for _, e := range []*models.Expense{later, earlier} {
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if e.ID == "" {
			t.Fatal("Expected expense ID to be generated")
		}
	}

	expenses, err := store.ListExpenses(ctx, bill.ID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 2 {
		t.Fatalf("Expected 2 expenses, got %d", len(expenses))
	}
	if expenses[0].ID != earlier.ID {
		t.Errorf("Expected earliest expense first, got %s", expenses[0].Description)
	}
	if expenses[0].Amount != "120000.5" {
		t.Errorf("Amount mismatch: got %s", expenses[0].Amount)
	}

	got, err := store.GetExpense(ctx, later.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if !got.Date.Equal(later.Date) {
		t.Errorf("Date mismatch: got %v, want %v", got.Date, later.Date)
	}

	if err := store.DeleteExpense(ctx, later.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if err := store.DeleteExpense(ctx, later.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := store.GetExpense(ctx, later.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_Categories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 7 {
		t.Errorf("Expected 7 seeded categories, got %d", len(categories))
	}

	if err := store.CreateCategory(ctx, models.Category{Name: "Coffee"}); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if err := store.CreateCategory(ctx, models.Category{Name: "Coffee"}); err != nil {
		t.Fatalf("CreateCategory duplicate failed: %v", err)
	}

	categories, err = store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 8 {
		t.Errorf("Expected 8 categories, got %d", len(categories))
	}
	if categories[0].Name != "Coffee" {
		t.Errorf("Expected categories ordered by name, got %v", categories)
	}
}

func TestSQLiteStore_MalformedRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.db.ExecContext(ctx,
		"INSERT INTO bills (id, name, status, created_at) VALUES ('b1', 'x', 'archived', '2026-10-01T00:00:00Z')",
	); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}
	if _, err := store.db.ExecContext(ctx,
		"INSERT INTO bill_members (bill_id, name, position) VALUES ('b1', 'An', 0)",
	); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}

	if _, err := store.GetBill(ctx, "b1"); !errors.Is(err, storage.ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord for unknown status, got %v", err)
	}
	if _, err := store.ListBills(ctx); !errors.Is(err, storage.ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord from ListBills, got %v", err)
	}

	if _, err := store.db.ExecContext(ctx,
		"INSERT INTO bills (id, name, status, created_at) VALUES ('b2', 'y', 'active', '2026-10-01T00:00:00Z')",
	); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}
	if _, err := store.GetBill(ctx, "b2"); !errors.Is(err, storage.ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord for bill without members, got %v", err)
	}

	if _, err := store.db.ExecContext(ctx,
		"INSERT INTO expenses (id, bill_id, description, amount, paid_by, date, created_at) VALUES ('e1', 'b2', 'z', 'abc', 'An', '2026-10-01', '2026-10-01T00:00:00Z')",
	); err != nil {
		t.Fatalf("raw insert failed: %v", err)
	}
	if _, err := store.ListExpenses(ctx, "b2"); !errors.Is(err, storage.ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord for bad amount, got %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.db")

	v1, err := Migrate(path)
	if err != nil {
		t.Fatalf("first Migrate failed: %v", err)
	}
	v2, err := Migrate(path)
	if err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}
	if v1 != 2 || v2 != 2 {
		t.Errorf("Expected schema version 2, got %d then %d", v1, v2)
	}
}
