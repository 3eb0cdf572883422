// Package ledger enforces the bill lifecycle and input rules on top of a
// storage.Store, and assembles bill summaries from the calculator.
//
// A bill starts active. While active, members and expenses may change. Once
// completed it is read-only; every mutation is rejected with ErrBillNotActive.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"

	"github.com/htn0810/Bill-Sharing/internal/events"
	"github.com/htn0810/Bill-Sharing/internal/models"
	"github.com/htn0810/Bill-Sharing/internal/storage"
)

var validate = validator.New()

// Ledger is safe for concurrent use as long as its store is.
type Ledger struct {
	store     storage.Store
	publisher events.Publisher
	now       func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for lifecycle timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger. A nil publisher logs events instead.
func New(store storage.Store, publisher events.Publisher, opts ...Option) *Ledger {
	if publisher == nil {
		publisher = events.LogPublisher{}
	}
	l := &Ledger{
		store:     store,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// publish never fails the caller; the mutation has already been stored.
func (l *Ledger) publish(ctx context.Context, e events.Event) {
	if err := l.publisher.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "Failed to publish event",
			"type", e.Type,
			"bill_id", e.BillID,
			"error", err)
	}
}

// activeBill loads a bill and rejects it unless it is active.
func (l *Ledger) activeBill(ctx context.Context, billID string) (*models.Bill, error) {
	bill, err := l.store.GetBill(ctx, billID)
	if err != nil {
		return nil, err
	}
	if !bill.IsActive() {
		return nil, fmt.Errorf("bill %s: %w", billID, ErrBillNotActive)
	}
	return bill, nil
}

// normalizeName trims a display name and puts it in NFC so visually equal
// Vietnamese names compare equal.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
