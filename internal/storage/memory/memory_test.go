package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/internal/storage"
)

func TestStore_BillLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	bill := &models.Bill{Name: "Tháng 10", Members: []string{"An", "Bình"}}
	require.NoError(t, s.CreateBill(ctx, bill))
	assert.NotEmpty(t, bill.ID)
	assert.Equal(t, models.BillStatusActive, bill.Status)

	// Returned bills are copies.
	got, err := s.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	got.Members[0] = "changed"
	again, err := s.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"An", "Bình"}, again.Members)

	require.NoError(t, s.UpdateBillMembers(ctx, bill.ID, []string{"An", "Bình", "Chi"}))
	done := time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.SetBillStatus(ctx, bill.ID, models.BillStatusCompleted, done))

	got, err = s.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, 3)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(done))

	_, err = s.GetBill(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.SetBillStatus(ctx, "missing", models.BillStatusActive, time.Time{}), storage.ErrNotFound)
	assert.ErrorIs(t, s.UpdateBillMembers(ctx, "missing", nil), storage.ErrNotFound)
}

func TestStore_ListBillsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	older := &models.Bill{Name: "cũ", Members: []string{"An"}, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &models.Bill{Name: "mới", Members: []string{"An"}, CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.CreateBill(ctx, older))
	require.NoError(t, s.CreateBill(ctx, newer))

	bills, err := s.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, newer.ID, bills[0].ID)
}

func TestStore_Expenses(t *testing.T) {
	ctx := context.Background()
	s := New()

	bill := &models.Bill{Name: "Tháng 10", Members: []string{"An"}}
	require.NoError(t, s.CreateBill(ctx, bill))

	e := &models.Expense{BillID: bill.ID, Amount: "100", PaidBy: "An", Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.CreateExpense(ctx, e))

	orphan := &models.Expense{BillID: "missing", Amount: "100", PaidBy: "An"}
	assert.ErrorIs(t, s.CreateExpense(ctx, orphan), storage.ErrNotFound)

	list, err := s.ListExpenses(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, e.ID, list[0].ID)

	require.NoError(t, s.DeleteExpense(ctx, e.ID))
	assert.ErrorIs(t, s.DeleteExpense(ctx, e.ID), storage.ErrNotFound)
	_, err = s.GetExpense(ctx, e.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_MalformedRecords(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.PutBillRecord(storage.BillRecord{ID: "b1", Status: "paused", CreatedAt: "2026-10-01T00:00:00Z", Members: []string{"An"}})
	_, err := s.GetBill(ctx, "b1")
	assert.ErrorIs(t, err, storage.ErrMalformedRecord)

	s.PutExpenseRecord(storage.ExpenseRecord{ID: "e1", BillID: "b1", Amount: "-5", PaidBy: "An", Date: "2026-10-01", CreatedAt: "2026-10-01T00:00:00Z"})
	_, err = s.ListExpenses(ctx, "b1")
	assert.ErrorIs(t, err, storage.ErrMalformedRecord)
}

func TestStore_Categories(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateCategory(ctx, models.Category{Name: "Coffee"}))
	require.NoError(t, s.CreateCategory(ctx, models.Category{Name: "Coffee"}))

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(DefaultCategories)+1)
	assert.Equal(t, "Coffee", categories[0].Name)
}
