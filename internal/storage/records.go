package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/htn0810/Bill-Sharing/internal/calculator"
	"github.com/htn0810/Bill-Sharing/internal/models"
)

// TimeLayout is how timestamps are persisted (always UTC).
const TimeLayout = time.RFC3339Nano

// BillRecord is a bill as persisted. Every field is raw text; use ToBill to get a
// validated models.Bill.
type BillRecord struct {
	ID          string
	Name        string
	Status      string
	CreatedAt   string
	CompletedAt string // empty while active
	Members     []string
}

// ExpenseRecord is an expense as persisted. Use ToExpense to get a validated
// models.Expense.
type ExpenseRecord struct {
	ID          string
	BillID      string
	Description string
	Amount      string
	PaidBy      string
	Category    string
	Date        string
	CreatedAt   string
}

// FromBill converts a bill into its persisted shape.
func FromBill(b *models.Bill) BillRecord {
	rec := BillRecord{
		ID:        b.ID,
		Name:      b.Name,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.UTC().Format(TimeLayout),
		Members:   append([]string(nil), b.Members...),
	}
	if b.CompletedAt != nil {
		rec.CompletedAt = b.CompletedAt.UTC().Format(TimeLayout)
	}
	return rec
}

// ToBill validates a persisted bill and converts it into a model.
func ToBill(rec BillRecord) (*models.Bill, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("%w: bill without id", ErrMalformedRecord)
	}

	status := models.BillStatus(rec.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: bill %s: unknown status %q", ErrMalformedRecord, rec.ID, rec.Status)
	}

	if len(rec.Members) == 0 {
		return nil, fmt.Errorf("%w: bill %s: no members", ErrMalformedRecord, rec.ID)
	}
	for _, m := range rec.Members {
		if strings.TrimSpace(m) == "" {
			return nil, fmt.Errorf("%w: bill %s: blank member name", ErrMalformedRecord, rec.ID)
		}
	}

	createdAt, err := time.Parse(TimeLayout, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: bill %s: created_at %q", ErrMalformedRecord, rec.ID, rec.CreatedAt)
	}

	bill := &models.Bill{
		ID:        rec.ID,
		Name:      rec.Name,
		Status:    status,
		Members:   append([]string(nil), rec.Members...),
		CreatedAt: createdAt,
	}

	switch {
	case status == models.BillStatusCompleted && rec.CompletedAt == "":
		return nil, fmt.Errorf("%w: bill %s: completed without completed_at", ErrMalformedRecord, rec.ID)
	case status == models.BillStatusActive && rec.CompletedAt != "":
		return nil, fmt.Errorf("%w: bill %s: active with completed_at", ErrMalformedRecord, rec.ID)
	case rec.CompletedAt != "":
		completedAt, err := time.Parse(TimeLayout, rec.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: bill %s: completed_at %q", ErrMalformedRecord, rec.ID, rec.CompletedAt)
		}
		bill.CompletedAt = &completedAt
	}

	return bill, nil
}

// FromExpense converts an expense into its persisted shape.
func FromExpense(e *models.Expense) ExpenseRecord {
	return ExpenseRecord{
		ID:          e.ID,
		BillID:      e.BillID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		Category:    e.Category,
		Date:        e.Date.Format(models.DateLayout),
		CreatedAt:   e.CreatedAt.UTC().Format(TimeLayout),
	}
}

// ToExpense validates a persisted expense and converts it into a model.
func ToExpense(rec ExpenseRecord) (*models.Expense, error) {
	if rec.ID == "" || rec.BillID == "" {
		return nil, fmt.Errorf("%w: expense without id or bill id", ErrMalformedRecord)
	}
	if rec.PaidBy == "" {
		return nil, fmt.Errorf("%w: expense %s: no payer", ErrMalformedRecord, rec.ID)
	}
	if _, err := calculator.ParseAmount(rec.Amount); err != nil {
		return nil, fmt.Errorf("%w: expense %s: %v", ErrMalformedRecord, rec.ID, err)
	}

	date, err := time.Parse(models.DateLayout, rec.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: expense %s: date %q", ErrMalformedRecord, rec.ID, rec.Date)
	}
	createdAt, err := time.Parse(TimeLayout, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: expense %s: created_at %q", ErrMalformedRecord, rec.ID, rec.CreatedAt)
	}

	return &models.Expense{
		ID:          rec.ID,
		BillID:      rec.BillID,
		Description: rec.Description,
		Amount:      rec.Amount,
		PaidBy:      rec.PaidBy,
		Category:    rec.Category,
		Date:        date,
		CreatedAt:   createdAt,
	}, nil
}
