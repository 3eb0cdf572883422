package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
	"github.com/htn0810/Bill-Sharing/internal/events"
	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/internal/storage"
	"github.com/htn0810/Bill-Sharing/internal/storage/memory"
)

var fixedNow = time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) (*Ledger, *memory.Store, *events.Recorder) {
	t.Helper()
	store := memory.New()
	rec := &events.Recorder{}
	return New(store, rec, WithClock(func() time.Time { return fixedNow })), store, rec
}

func mustCreateBill(t *testing.T, l *Ledger, members ...string) *models.Bill {
	t.Helper()
	bill, err := l.CreateBill(context.Background(), BillInput{Name: "Tháng 10", Members: members})
	require.NoError(t, err)
	return bill
}

func expenseInput(amount, paidBy string) ExpenseInput {
	return ExpenseInput{
		Description: "Đi chợ",
		Amount:      amount,
		PaidBy:      paidBy,
		Category:    "Food",
		Date:        "2026-10-19",
	}
}

func TestCreateBill(t *testing.T) {
	l, _, rec := newTestLedger(t)

	bill, err := l.CreateBill(context.Background(), BillInput{Name: "  Nhà trọ ", Members: []string{" An", "Bình "}})
	require.NoError(t, err)
	assert.NotEmpty(t, bill.ID)
	assert.Equal(t, "Nhà trọ", bill.Name)
	assert.Equal(t, []string{"An", "Bình"}, bill.Members)
	assert.Equal(t, models.BillStatusActive, bill.Status)
	assert.True(t, bill.CreatedAt.Equal(fixedNow))
	assert.Equal(t, []string{events.BillCreated}, rec.Types())
}

func TestCreateBill_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		in      BillInput
		wantErr error
	}{
		{"missing name", BillInput{Name: " ", Members: []string{"An"}}, ErrValidation},
		{"no members", BillInput{Name: "x"}, ErrValidation},
		{"blank member", BillInput{Name: "x", Members: []string{"An", "  "}}, ErrValidation},
		{"duplicate member", BillInput{Name: "x", Members: []string{"An", "An "}}, ErrDuplicateMember},
		// "Bình" precomposed vs. decomposed.
		{"duplicate after NFC", BillInput{Name: "x", Members: []string{"B\u00ecnh", "Bi\u0300nh"}}, ErrDuplicateMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _, rec := newTestLedger(t)
			_, err := l.CreateBill(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, rec.Events())
		})
	}
}

func TestCompleteBill(t *testing.T) {
	l, _, rec := newTestLedger(t)
	ctx := context.Background()
	bill := mustCreateBill(t, l, "An", "Bình")

	done, err := l.CompleteBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(fixedNow))

	stored, err := l.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive())

	// Completion is one-way.
	_, err = l.CompleteBill(ctx, bill.ID)
	assert.ErrorIs(t, err, ErrBillNotActive)
	assert.ErrorIs(t, err, calculator.ErrInvalidState)

	_, err = l.CompleteBill(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.Equal(t, []string{events.BillCreated, events.BillCompleted}, rec.Types())
}

func TestCompletedBillRejectsMutations(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	bill := mustCreateBill(t, l, "An", "Bình")
	expense, err := l.AddExpense(ctx, bill.ID, expenseInput("100000", "An"))
	require.NoError(t, err)
	_, err = l.CompleteBill(ctx, bill.ID)
	require.NoError(t, err)

	_, err = l.AddExpense(ctx, bill.ID, expenseInput("1", "An"))
	assert.ErrorIs(t, err, ErrBillNotActive)
	assert.ErrorIs(t, l.DeleteExpense(ctx, bill.ID, expense.ID), ErrBillNotActive)
	_, err = l.AddMember(ctx, bill.ID, "Chi")
	assert.ErrorIs(t, err, ErrBillNotActive)
	_, err = l.RemoveMember(ctx, bill.ID, "Bình")
	assert.ErrorIs(t, err, ErrBillNotActive)

	// Reads still work.
	summary, err := l.Summary(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, summary.GrandTotal.Equal(decimal.NewFromInt(100000)))
}

func TestMembers(t *testing.T) {
	l, _, rec := newTestLedger(t)
	ctx := context.Background()
	bill := mustCreateBill(t, l, "An")

	got, err := l.AddMember(ctx, bill.ID, " Bình ")
	require.NoError(t, err)
	assert.Equal(t, []string{"An", "Bình"}, got.Members)

	_, err = l.AddMember(ctx, bill.ID, "An")
	assert.ErrorIs(t, err, ErrDuplicateMember)
	_, err = l.AddMember(ctx, bill.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = l.RemoveMember(ctx, bill.ID, "Chi")
	assert.ErrorIs(t, err, calculator.ErrInvalidReference)

	_, err = l.AddExpense(ctx, bill.ID, expenseInput("50000", "Bình"))
	require.NoError(t, err)
	_, err = l.RemoveMember(ctx, bill.ID, "Bình")
	assert.ErrorIs(t, err, ErrMemberHasExpenses)

	got, err = l.RemoveMember(ctx, bill.ID, "An")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bình"}, got.Members)

	_, err = l.RemoveMember(ctx, bill.ID, "Bình")
	assert.ErrorIs(t, err, ErrLastMember)

	assert.Equal(t, []string{
		events.BillCreated,
		events.BillMemberAdded,
		events.ExpenseCreated,
		events.BillMemberRemoved,
	}, rec.Types())
}

func TestAddExpense(t *testing.T) {
	l, _, rec := newTestLedger(t)
	ctx := context.Background()
	bill := mustCreateBill(t, l, "An", "Bình")

	expense, err := l.AddExpense(ctx, bill.ID, expenseInput(" 120000.5 ", "An"))
	require.NoError(t, err)
	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, "120000.5", expense.Amount)
	assert.Equal(t, bill.ID, expense.BillID)
	assert.Equal(t, 19, expense.Date.Day())

	list, err := l.ListExpenses(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, expense.ID, list[0].ID)

	published := rec.Events()
	require.Len(t, published, 2)
	assert.Equal(t, expense.ID, published[1].ExpenseID)
}

func TestAddExpense_StoresCanonicalAmount(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	bill := mustCreateBill(t, l, "An", "Bình")

	expense, err := l.AddExpense(ctx, bill.ID, expenseInput("0120000.50", "An"))
	require.NoError(t, err)
	assert.Equal(t, "120000.5", expense.Amount)

	list, err := l.ListExpenses(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "120000.5", list[0].Amount)
}

func TestAddExpense_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExpenseInput)
		wantErr error
	}{
		{"missing description", func(in *ExpenseInput) { in.Description = "" }, ErrValidation},
		{"missing amount", func(in *ExpenseInput) { in.Amount = " " }, ErrValidation},
		{"zero amount", func(in *ExpenseInput) { in.Amount = "0" }, calculator.ErrInvalidAmount},
		{"negative amount", func(in *ExpenseInput) { in.Amount = "-10" }, calculator.ErrInvalidAmount},
		{"non-numeric amount", func(in *ExpenseInput) { in.Amount = "mười" }, calculator.ErrInvalidAmount},
		{"exponent amount", func(in *ExpenseInput) { in.Amount = "1e3" }, calculator.ErrInvalidAmount},
		{"signed amount", func(in *ExpenseInput) { in.Amount = "+5" }, calculator.ErrInvalidAmount},
		{"huge exponent amount", func(in *ExpenseInput) { in.Amount = "1e50000000" }, calculator.ErrInvalidAmount},
		{"too many digits", func(in *ExpenseInput) { in.Amount = "10000000000000000000" }, calculator.ErrInvalidAmount},
		{"payer not a member", func(in *ExpenseInput) { in.PaidBy = "Chi" }, calculator.ErrInvalidReference},
		{"unknown category", func(in *ExpenseInput) { in.Category = "Casino" }, ErrUnknownCategory},
		{"missing category", func(in *ExpenseInput) { in.Category = "" }, ErrValidation},
		{"bad date", func(in *ExpenseInput) { in.Date = "19/10/2026" }, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _, _ := newTestLedger(t)
			bill := mustCreateBill(t, l, "An", "Bình")

			in := expenseInput("100000", "An")
			tt.mutate(&in)
			_, err := l.AddExpense(context.Background(), bill.ID, in)
			assert.ErrorIs(t, err, tt.wantErr)

			list, err := l.ListExpenses(context.Background(), bill.ID)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestDeleteExpense(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	bill := mustCreateBill(t, l, "An")
	other := mustCreateBill(t, l, "Bình")

	expense, err := l.AddExpense(ctx, bill.ID, expenseInput("100", "An"))
	require.NoError(t, err)

	// Expense must belong to the bill named in the request.
	assert.ErrorIs(t, l.DeleteExpense(ctx, other.ID, expense.ID), storage.ErrNotFound)

	require.NoError(t, l.DeleteExpense(ctx, bill.ID, expense.ID))
	assert.ErrorIs(t, l.DeleteExpense(ctx, bill.ID, expense.ID), storage.ErrNotFound)
}

func TestListExpenses_UnknownBill(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.ListExpenses(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCategories(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	c, err := l.AddCategory(ctx, " Coffee ")
	require.NoError(t, err)
	assert.Equal(t, "Coffee", c.Name)

	_, err = l.AddCategory(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)

	categories, err := l.ListCategories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, models.Category{Name: "Coffee"})

	bill := mustCreateBill(t, l, "An")
	in := expenseInput("30000", "An")
	in.Category = "Coffee"
	_, err = l.AddExpense(ctx, bill.ID, in)
	assert.NoError(t, err)
}

func TestSummary(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	bill := mustCreateBill(t, l, "An", "Bình", "Chi")

	for _, in := range []ExpenseInput{
		{Description: "Tiền nhà", Amount: "90", PaidBy: "An", Category: "Rent", Date: "2026-10-01"},
		{Description: "Đi chợ", Amount: "30", PaidBy: "Bình", Category: "Food", Date: "2026-10-02"},
	} {
		_, err := l.AddExpense(ctx, bill.ID, in)
		require.NoError(t, err)
	}

	s, err := l.Summary(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, s.Bill.ID)
	assert.Len(t, s.Expenses, 2)
	assert.True(t, s.GrandTotal.Equal(decimal.NewFromInt(120)))

	// An: +60 -10 = 50; Bình: -30 +20 = -10; Chi: -30 -10 = -40.
	want := map[string]int64{"An": 50, "Bình": -10, "Chi": -40}
	require.Len(t, s.Balances, 3)
	sum := decimal.Zero
	for i, b := range s.Balances {
		assert.Equal(t, bill.Members[i], b.MemberName)
		assert.True(t, b.NetBalance.Equal(decimal.NewFromInt(want[b.MemberName])), "%s: %s", b.MemberName, b.NetBalance)
		sum = sum.Add(b.NetBalance)
	}
	assert.True(t, sum.IsZero())

	require.Len(t, s.Transfers, 2)
	assert.Equal(t, "Bình", s.Transfers[0].From)
	assert.Equal(t, "An", s.Transfers[0].To)
	assert.True(t, s.Transfers[0].Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "Chi", s.Transfers[1].From)
	assert.True(t, s.Transfers[1].Amount.Equal(decimal.NewFromInt(40)))

	require.Len(t, s.Categories, 2)
	assert.Equal(t, "Rent", s.Categories[0].Category)
	assert.InDelta(t, 75.0, s.Categories[0].Percent, 1e-9)

	require.Len(t, s.Members, 3)
	assert.True(t, s.Members[2].Total.IsZero())
}

func TestSummary_Errors(t *testing.T) {
	l, store, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Summary(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// A stored expense whose payer left the bill is reported, not silently split.
	bill := mustCreateBill(t, l, "An")
	store.PutExpenseRecord(storage.ExpenseRecord{
		ID: "e1", BillID: bill.ID, Amount: "100", PaidBy: "Ghost",
		Date: "2026-10-01", CreatedAt: "2026-10-01T00:00:00Z",
	})
	_, err = l.Summary(ctx, bill.ID)
	assert.ErrorIs(t, err, calculator.ErrInvalidReference)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	store := memory.New()
	rec := &events.Recorder{Err: errors.New("broker down")}
	l := New(store, rec)

	bill, err := l.CreateBill(context.Background(), BillInput{Name: "x", Members: []string{"An"}})
	require.NoError(t, err)

	_, err = store.GetBill(context.Background(), bill.ID)
	assert.NoError(t, err)
}
