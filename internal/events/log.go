package events

import (
	"context"
	"log/slog"
)

// LogPublisher writes events to the default logger. Used when no broker is
// configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, e Event) error {
	slog.DebugContext(ctx, "Domain event",
		"type", e.Type,
		"bill_id", e.BillID,
		"expense_id", e.ExpenseID,
		"member", e.Member)
	return nil
}

func (LogPublisher) Close() error { return nil }
