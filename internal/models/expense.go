package models

// Expense is a single budget line
type Expense struct {
	ID           string        `json:"id"`
	Category     string        `json:"category"`
	Item         string        `json:"item"`
	Cost         float64       `json:"cost"`
	PaidAmount   float64       `json:"paidAmount"`
	Status       ExpenseStatus `json:"status"`
	ContactName  string        `json:"contactName,omitempty"`
	ContactPhone string        `json:"contactPhone,omitempty"`
	ContactEmail string        `json:"contactEmail,omitempty"`
	ImageURL     string        `json:"imageUrl,omitempty"`
}

// ExpenseStatus represents how much of an expense has been paid
type ExpenseStatus string

const (
	ExpensePaid          ExpenseStatus = "Paid"
	ExpensePartiallyPaid ExpenseStatus = "Partially Paid"
	ExpenseDue           ExpenseStatus = "Due"
)

// ExpenseCategories is the fixed category list, in chart order
var ExpenseCategories = []string{"Venue", "Catering", "Attire", "Decor", "Photos", "Flowers", "Jewelry", "Music", "Other"}

// DeriveExpenseStatus picks the status for a new expense from its cost and
// the amount already paid. It is applied once, when the expense is created.
func DeriveExpenseStatus(cost, paid float64) ExpenseStatus {
	switch {
	case paid >= cost:
		return ExpensePaid
	case paid > 0:
		return ExpensePartiallyPaid
	default:
		return ExpenseDue
	}
}

// Remaining returns the unpaid part of the expense, never negative
func (e Expense) Remaining() float64 {
	if r := e.Cost - e.PaidAmount; r > 0 {
		return r
	}
	return 0
}

func (e Expense) RecordID() string { return e.ID }

func (e Expense) WithID(id string) Expense {
	e.ID = id
	return e
}
