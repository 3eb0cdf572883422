// Package api holds the request and response messages of the bill-sharing RPC
// services. Amounts travel as decimal strings; every amount also comes with a
// display string rounded up to a whole đồng.
package api

import "time"

type Bill struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	Members          []string   `json:"members"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAtDisplay string     `json:"created_at_display"`
}

type Expense struct {
	ID            string    `json:"id"`
	BillID        string    `json:"bill_id"`
	Description   string    `json:"description"`
	Amount        string    `json:"amount"`
	AmountDisplay string    `json:"amount_display"`
	PaidBy        string    `json:"paid_by"`
	Category      string    `json:"category"`
	Date          string    `json:"date"` // YYYY-MM-DD
	DateDisplay   string    `json:"date_display"`
	CreatedAt     time.Time `json:"created_at"`
}

type MemberBalance struct {
	Member         string `json:"member"`
	Balance        string `json:"balance"`
	BalanceDisplay string `json:"balance_display"`
}

type Transfer struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Amount        string `json:"amount"`
	AmountDisplay string `json:"amount_display"`
}

type CategoryTotal struct {
	Category     string  `json:"category"`
	Total        string  `json:"total"`
	TotalDisplay string  `json:"total_display"`
	Percent      float64 `json:"percent"`
}

type MemberTotal struct {
	Member       string `json:"member"`
	Total        string `json:"total"`
	TotalDisplay string `json:"total_display"`
}

type Summary struct {
	Bill              *Bill            `json:"bill"`
	Balances          []*MemberBalance `json:"balances"`
	Transfers         []*Transfer      `json:"transfers"`
	Categories        []*CategoryTotal `json:"categories"`
	MemberTotals      []*MemberTotal   `json:"member_totals"`
	GrandTotal        string           `json:"grand_total"`
	GrandTotalDisplay string           `json:"grand_total_display"`
	ExpenseCount      int              `json:"expense_count"`
}

// BillService messages.

type CreateBillRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type ListBillsRequest struct{}

type ListBillsResponse struct {
	Bills []*Bill `json:"bills"`
}

type GetBillRequest struct {
	BillID string `json:"bill_id"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

type CompleteBillRequest struct {
	BillID string `json:"bill_id"`
}

type CompleteBillResponse struct {
	Bill *Bill `json:"bill"`
}

type AddMemberRequest struct {
	BillID string `json:"bill_id"`
	Name   string `json:"name"`
}

type AddMemberResponse struct {
	Bill *Bill `json:"bill"`
}

type RemoveMemberRequest struct {
	BillID string `json:"bill_id"`
	Name   string `json:"name"`
}

type RemoveMemberResponse struct {
	Bill *Bill `json:"bill"`
}

type GetSummaryRequest struct {
	BillID string `json:"bill_id"`
}

type GetSummaryResponse struct {
	Summary *Summary `json:"summary"`
}

// ExpenseService messages.

type CreateExpenseRequest struct {
	BillID      string `json:"bill_id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	PaidBy      string `json:"paid_by"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	BillID string `json:"bill_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	BillID    string `json:"bill_id"`
	ExpenseID string `json:"expense_id"`
}

type DeleteExpenseResponse struct{}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []string `json:"categories"`
}
