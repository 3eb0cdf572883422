package models

import "time"

// DateLayout is the layout of Expense.Date when exchanged as text.
const DateLayout = "2006-01-02"

// Expense represents a single purchase logged against a bill.
// The cost is shared equally among all members of the bill.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// BillID is the bill this expense belongs to.
	BillID string

	// Description is a free-text label (e.g., "Electricity", "Groceries").
	Description string

	// Amount is the decimal string of the amount in đồng, as entered.
	Amount string

	// PaidBy is the member who paid. Must be a member of the bill.
	PaidBy string

	// Category is the name of a Category from the lookup set.
	Category string

	// Date is the calendar date the expense was incurred (midnight UTC).
	Date time.Time

	// CreatedAt is set by the storage layer.
	CreatedAt time.Time
}

// Category is an entry of the expense category lookup set.
type Category struct {
	Name string
}
