package planner

import (
	"math"
	"time"

	"wedding-planner/internal/models"
	"wedding-planner/internal/storage"
)

// Dashboard is the home screen summary
type Dashboard struct {
	WeddingDate     string
	DaysLeft        int
	CompletedTasks  int
	TotalTasks      int
	TaskProgress    int
	ConfirmedGuests int
	TotalGuests     int
	TotalCost       float64
	TotalPaid       float64
	BudgetGoal      float64
	BudgetProgress  int
}

// Dashboard computes the home screen summary from current state
func (p *Planner) Dashboard() Dashboard {
	progress := storage.Aggregate(p.tasks, func(tasks []models.Task) [2]int {
		done := 0
		for _, t := range tasks {
			if t.Completed {
				done++
			}
		}
		return [2]int{done, len(tasks)}
	})
	completed, total := progress[0], progress[1]

	guests := p.GuestCounts()
	budget := p.BudgetSummary()
	date := p.weddingDate.Get()

	return Dashboard{
		WeddingDate:     date,
		DaysLeft:        DaysUntil(date, p.now()),
		CompletedTasks:  completed,
		TotalTasks:      total,
		TaskProgress:    percent(float64(completed), float64(total)),
		ConfirmedGuests: guests.Confirmed,
		TotalGuests:     guests.Total,
		TotalCost:       budget.TotalCost,
		TotalPaid:       budget.TotalPaid,
		BudgetGoal:      budget.Goal,
		BudgetProgress:  budget.UsagePercent,
	}
}

// DaysUntil counts whole days (rounded up) from now until date (YYYY-MM-DD,
// midnight UTC). Past or unparseable dates give 0.
func DaysUntil(date string, now time.Time) int {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	days := math.Ceil(day.Sub(now).Hours() / 24)
	return max(0, int(days))
}
