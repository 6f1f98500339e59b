package planner

import (
	"sort"
	"strings"

	"wedding-planner/internal/models"
	"wedding-planner/internal/storage"
)

// DefaultExpenseCategory is used when an expense is added without one
const DefaultExpenseCategory = "Venue"

// ExpenseInput describes an expense to record
type ExpenseInput struct {
	Item         string  `validate:"required"`
	Category     string  `validate:"omitempty,oneof=Venue Catering Attire Decor Photos Flowers Jewelry Music Other"`
	Cost         float64 `validate:"gte=0"`
	Paid         float64 `validate:"gte=0"`
	ContactName  string
	ContactPhone string
	ContactEmail string `validate:"omitempty,email"`
	ImageURL     string `validate:"omitempty,datauri"`
}

// BudgetSummary is the budget card
type BudgetSummary struct {
	Goal         float64
	TotalCost    float64
	TotalPaid    float64
	Remaining    float64
	UsagePercent int
}

// CategoryTotal is one slice of the spending chart
type CategoryTotal struct {
	Category string
	Total    float64
}

// Expenses returns expenses, most recent first
func (p *Planner) Expenses() []models.Expense {
	return p.expenses.Items()
}

// ExpensesByCost returns expenses, most expensive first
func (p *Planner) ExpensesByCost() []models.Expense {
	items := p.expenses.Items()
	sort.SliceStable(items, func(i, j int) bool { return items[i].Cost > items[j].Cost })
	return items
}

// AddExpense records an expense. Its status is derived from cost and paid
// amount here and never recomputed.
func (p *Planner) AddExpense(in ExpenseInput) (models.Expense, error) {
	in.Item = strings.TrimSpace(in.Item)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	if err := validateStruct(in); err != nil {
		return models.Expense{}, err
	}

	category := in.Category
	if category == "" {
		category = DefaultExpenseCategory
	}

	return p.expenses.Add(models.Expense{
		Category:     category,
		Item:         in.Item,
		Cost:         in.Cost,
		PaidAmount:   in.Paid,
		Status:       models.DeriveExpenseStatus(in.Cost, in.Paid),
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		ContactEmail: in.ContactEmail,
		ImageURL:     in.ImageURL,
	}), nil
}

// DeleteExpense removes an expense
func (p *Planner) DeleteExpense(id string) error {
	if !p.expenses.Remove(id) {
		return ErrNotFound
	}
	return nil
}

// BudgetSummary totals all expenses against the goal
func (p *Planner) BudgetSummary() BudgetSummary {
	goal := p.budgetGoal.Get()
	return storage.Aggregate(p.expenses, func(expenses []models.Expense) BudgetSummary {
		s := BudgetSummary{Goal: goal}
		for _, e := range expenses {
			s.TotalCost += e.Cost
			s.TotalPaid += e.PaidAmount
		}
		s.Remaining = s.TotalCost - s.TotalPaid
		s.UsagePercent = min(100, percent(s.TotalCost, goal))
		return s
	})
}

// CategoryBreakdown sums expense costs per known category, skipping empty ones
func (p *Planner) CategoryBreakdown() []CategoryTotal {
	return storage.Aggregate(p.expenses, func(expenses []models.Expense) []CategoryTotal {
		sums := make(map[string]float64, len(models.ExpenseCategories))
		for _, e := range expenses {
			sums[e.Category] += e.Cost
		}

		var totals []CategoryTotal
		for _, category := range models.ExpenseCategories {
			if sums[category] > 0 {
				totals = append(totals, CategoryTotal{Category: category, Total: sums[category]})
			}
		}
		return totals
	})
}
