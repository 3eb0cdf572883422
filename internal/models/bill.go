package models

import "time"

// BillStatus is the lifecycle state of a bill.
type BillStatus string

const (
	BillStatusActive    BillStatus = "active"
	BillStatusCompleted BillStatus = "completed"
)

// Valid reports whether s is a known status.
func (s BillStatus) Valid() bool {
	return s == BillStatusActive || s == BillStatusCompleted
}

// Bill represents a shared expense ledger.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// Name is the display label chosen at creation (e.g., "Apartment 3B - March").
	Name string

	// Status is Active until the bill is completed. The transition happens once.
	Status BillStatus

	// Members is the ordered list of member display names. Never empty.
	Members []string

	// CreatedAt is when the bill was created.
	CreatedAt time.Time

	// CompletedAt is set when the bill is completed, nil while Active.
	CompletedAt *time.Time
}

// IsActive reports whether the bill still accepts changes.
func (b *Bill) IsActive() bool {
	return b.Status == BillStatusActive
}

// HasMember reports whether name is one of the bill's members.
func (b *Bill) HasMember(name string) bool {
	for _, m := range b.Members {
		if m == name {
			return true
		}
	}
	return false
}
