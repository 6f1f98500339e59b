package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wedding-planner/internal/models"
)

func TestAddExpenseDerivesStatus(t *testing.T) {
	tests := []struct {
		paid float64
		want models.ExpenseStatus
	}{
		{500, models.ExpensePaid},
		{200, models.ExpensePartiallyPaid},
		{0, models.ExpenseDue},
	}

	p := newTestPlanner(t, nil)
	for _, tt := range tests {
		e, err := p.AddExpense(ExpenseInput{Item: "Photographer", Category: "Photos", Cost: 500, Paid: tt.paid})
		require.NoError(t, err)
		assert.Equal(t, tt.want, e.Status, "paid %v", tt.paid)
	}
}

func TestAddExpenseDefaultsAndValidation(t *testing.T) {
	p := newTestPlanner(t, nil)

	e, err := p.AddExpense(ExpenseInput{
		Item:         "Deposit",
		Cost:         1000,
		ContactName:  " Villa Rosa ",
		ContactEmail: "events@villarosa.example",
		ImageURL:     "data:image/png;base64,iVBORw0KGgo=",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultExpenseCategory, e.Category)
	assert.Equal(t, "Villa Rosa", e.ContactName)
	assert.Equal(t, models.ExpenseDue, e.Status)

	invalid := []ExpenseInput{
		{Item: "", Cost: 10},
		{Item: "Cake", Cost: -5},
		{Item: "Cake", Cost: 5, Paid: -1},
		{Item: "Cake", Cost: 5, Category: "Snacks"},
		{Item: "Cake", Cost: 5, ContactEmail: "baker at home"},
		{Item: "Cake", Cost: 5, ImageURL: "http://example.com/cake.jpg"},
	}
	for _, in := range invalid {
		_, err := p.AddExpense(in)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", in)
	}
	assert.Len(t, p.Expenses(), 1)
}

func TestStatusIsNotRecomputed(t *testing.T) {
	p := newTestPlanner(t, nil)
	e, err := p.AddExpense(ExpenseInput{Item: "Dress", Category: "Attire", Cost: 2000})
	require.NoError(t, err)

	p.expenses.Update(e.ID, func(e models.Expense) models.Expense {
		e.PaidAmount = 2000
		return e
	})
	got, _ := p.expenses.Find(e.ID)
	assert.Equal(t, models.ExpenseDue, got.Status)
}

func TestBudgetSummaryAndBreakdown(t *testing.T) {
	p := newTestPlanner(t, nil)
	require.NoError(t, p.SetBudgetGoal(10000))

	inputs := []ExpenseInput{
		{Item: "Hall", Category: "Venue", Cost: 6000, Paid: 6000},
		{Item: "Band", Category: "Music", Cost: 1500, Paid: 500},
		{Item: "Menu", Category: "Catering", Cost: 4000},
		{Item: "Favors", Category: "Other", Cost: 0},
	}
	for _, in := range inputs {
		_, err := p.AddExpense(in)
		require.NoError(t, err)
	}

	s := p.BudgetSummary()
	assert.Equal(t, 11500.0, s.TotalCost)
	assert.Equal(t, 6500.0, s.TotalPaid)
	assert.Equal(t, 5000.0, s.Remaining)
	assert.Equal(t, 100, s.UsagePercent, "usage is capped")

	assert.Equal(t, []CategoryTotal{
		{Category: "Venue", Total: 6000},
		{Category: "Catering", Total: 4000},
		{Category: "Music", Total: 1500},
	}, p.CategoryBreakdown())

	byCost := p.ExpensesByCost()
	require.Len(t, byCost, 4)
	assert.Equal(t, "Hall", byCost[0].Item)
	assert.Equal(t, "Favors", byCost[3].Item)
	assert.Equal(t, "Favors", p.Expenses()[0].Item, "stored order is untouched")
}

func TestBudgetSummaryZeroGoal(t *testing.T) {
	p := newTestPlanner(t, nil)
	require.NoError(t, p.SetBudgetGoal(0))
	_, err := p.AddExpense(ExpenseInput{Item: "Rings", Category: "Jewelry", Cost: 900})
	require.NoError(t, err)

	assert.Equal(t, 0, p.BudgetSummary().UsagePercent)
}

func TestDeleteExpense(t *testing.T) {
	p := newTestPlanner(t, nil)
	e, err := p.AddExpense(ExpenseInput{Item: "Flowers", Category: "Flowers", Cost: 300})
	require.NoError(t, err)

	require.NoError(t, p.DeleteExpense(e.ID))
	assert.Empty(t, p.Expenses())
	assert.ErrorIs(t, p.DeleteExpense(e.ID), ErrNotFound)
}
