package domain

import "time"

type ExpenseType string

const (
	ExpenseTypeRent      ExpenseType = "rent"
	ExpenseTypeSalary    ExpenseType = "salary"
	ExpenseTypeUtilities ExpenseType = "utilities"
	ExpenseTypeMarketing ExpenseType = "marketing"
	ExpenseTypeMisc      ExpenseType = "misc"
)

// Expense is a dated operating-cost record scoped to a dealership and month.
// Any authenticated staff member may create one; only admins may mutate.
type Expense struct {
	ID           int32       `json:"id"`
	DealershipID int32       `json:"dealership_id"`
	ExpenseType  ExpenseType `json:"expense_type"`
	AmountCents  int64       `json:"amount_cents"`
	ExpenseDate  time.Time   `json:"expense_date"`
	Month        string      `json:"month"` // format: 'YYYY-MM'
	Note         string      `json:"note"`
	CreatedBy    int32       `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ExpenseSummary aggregates a dealership's expenses for one month by type.
type ExpenseSummary struct {
	Month       string           `json:"month"`
	TotalCents  int64            `json:"total_cents"`
	ByTypeCents map[string]int64 `json:"by_type_cents"`
}
