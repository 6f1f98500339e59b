package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveExpenseStatus(t *testing.T) {
	tests := []struct {
		name string
		cost float64
		paid float64
		want ExpenseStatus
	}{
		{"fully paid", 500, 500, ExpensePaid},
		{"overpaid", 500, 650, ExpensePaid},
		{"partially paid", 500, 200, ExpensePartiallyPaid},
		{"nothing paid", 500, 0, ExpenseDue},
		{"negative paid", 500, -10, ExpenseDue},
		{"free item", 0, 0, ExpensePaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveExpenseStatus(tt.cost, tt.paid))
		})
	}
}

func TestExpenseRemaining(t *testing.T) {
	assert.Equal(t, 300.0, Expense{Cost: 500, PaidAmount: 200}.Remaining())
	assert.Equal(t, 0.0, Expense{Cost: 500, PaidAmount: 700}.Remaining())
}

func TestGuestStatusValid(t *testing.T) {
	for _, s := range GuestStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, GuestStatus("accepted").Valid())
}

func TestDefaultTasks(t *testing.T) {
	tasks := DefaultTasks()
	assert.Len(t, tasks, 3)
	assert.Equal(t, "Pick a venue", tasks[0].Title)
	assert.True(t, tasks[0].Completed)

	// callers get their own copy
	tasks[0].Title = "changed"
	assert.Equal(t, "Pick a venue", DefaultTasks()[0].Title)
}
