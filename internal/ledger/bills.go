package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
	"github.com/htn0810/Bill-Sharing/internal/events"
	"github.com/htn0810/Bill-Sharing/internal/models"
)

// BillInput holds the fields needed to open a bill.
type BillInput struct {
	Name    string   `validate:"required,max=128"`
	Members []string `validate:"required,min=1,dive,required,max=64"`
}

// CreateBill opens a new active bill.
func (l *Ledger) CreateBill(ctx context.Context, in BillInput) (*models.Bill, error) {
	in.Name = normalizeName(in.Name)
	members := make([]string, len(in.Members))
	for i, m := range in.Members {
		members[i] = normalizeName(m)
	}
	in.Members = members

	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	for i, m := range members {
		if slices.Contains(members[:i], m) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMember, m)
		}
	}

	bill := &models.Bill{
		Name:      in.Name,
		Status:    models.BillStatusActive,
		Members:   members,
		CreatedAt: l.now(),
	}
	if err := l.store.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	l.publish(ctx, events.New(events.BillCreated, bill.ID))
	return bill, nil
}

// ListBills returns every bill, newest first.
func (l *Ledger) ListBills(ctx context.Context) ([]*models.Bill, error) {
	return l.store.ListBills(ctx)
}

// GetBill returns a single bill.
func (l *Ledger) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	return l.store.GetBill(ctx, billID)
}

// CompleteBill moves an active bill to completed. The transition happens once.
func (l *Ledger) CompleteBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := l.activeBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	completedAt := l.now()
	if err := l.store.SetBillStatus(ctx, billID, models.BillStatusCompleted, completedAt); err != nil {
		return nil, fmt.Errorf("failed to complete bill: %w", err)
	}
	bill.Status = models.BillStatusCompleted
	bill.CompletedAt = &completedAt

	l.publish(ctx, events.New(events.BillCompleted, billID))
	return bill, nil
}

// AddMember appends a member to an active bill.
func (l *Ledger) AddMember(ctx context.Context, billID, name string) (*models.Bill, error) {
	name = normalizeName(name)
	if err := validate.Var(name, "required,max=64"); err != nil {
		return nil, validationError(fmt.Errorf("member: %w", err))
	}

	bill, err := l.activeBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill.HasMember(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateMember, name)
	}

	members := append(slices.Clone(bill.Members), name)
	if err := l.store.UpdateBillMembers(ctx, billID, members); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	bill.Members = members

	e := events.New(events.BillMemberAdded, billID)
	e.Member = name
	l.publish(ctx, e)
	return bill, nil
}

// RemoveMember drops a member from an active bill. A bill always keeps at least
// one member, and a member who paid for an expense cannot be removed while that
// expense exists.
func (l *Ledger) RemoveMember(ctx context.Context, billID, name string) (*models.Bill, error) {
	name = normalizeName(name)

	bill, err := l.activeBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if !bill.HasMember(name) {
		return nil, fmt.Errorf("member %q: %w", name, calculator.ErrInvalidReference)
	}
	if len(bill.Members) == 1 {
		return nil, ErrLastMember
	}

	expenses, err := l.store.ListExpenses(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	for _, e := range expenses {
		if e.PaidBy == name {
			return nil, fmt.Errorf("%q: %w", name, ErrMemberHasExpenses)
		}
	}

	members := slices.DeleteFunc(slices.Clone(bill.Members), func(m string) bool { return m == name })
	if err := l.store.UpdateBillMembers(ctx, billID, members); err != nil {
		return nil, fmt.Errorf("failed to remove member: %w", err)
	}
	bill.Members = members

	e := events.New(events.BillMemberRemoved, billID)
	e.Member = name
	l.publish(ctx, e)
	return bill, nil
}
