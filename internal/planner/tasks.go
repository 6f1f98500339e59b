package planner

import (
	"strings"

	"wedding-planner/internal/models"
)

// AllCategories is the pseudo-category that matches every task
const AllCategories = "All"

// TaskInput describes a task to create
type TaskInput struct {
	Title    string `validate:"required"`
	Category string
	DueDate  string `validate:"omitempty,datetime=2006-01-02"`
}

// Tasks returns the checklist, most recent first
func (p *Planner) Tasks() []models.Task {
	return p.tasks.Items()
}

// AddTask quick-adds a task in the General category, due today
func (p *Planner) AddTask(title string) (models.Task, error) {
	return p.AddTaskWithDetails(TaskInput{Title: title})
}

// AddTaskWithDetails adds a task; empty category and due date get the quick-add defaults
func (p *Planner) AddTaskWithDetails(in TaskInput) (models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	if err := validateStruct(in); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		Title:    in.Title,
		Category: in.Category,
		DueDate:  in.DueDate,
	}
	if task.Category == "" {
		task.Category = models.DefaultTaskCategory
	}
	if task.DueDate == "" {
		task.DueDate = p.today()
	}
	return p.tasks.Add(task), nil
}

// ToggleTask flips a task between done and not done
func (p *Planner) ToggleTask(id string) error {
	ok := p.tasks.Update(id, func(t models.Task) models.Task {
		t.Completed = !t.Completed
		return t
	})
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteTask removes a task
func (p *Planner) DeleteTask(id string) error {
	if !p.tasks.Remove(id) {
		return ErrNotFound
	}
	return nil
}

// TaskCategories returns "All" followed by each category in first-seen order
func (p *Planner) TaskCategories() []string {
	categories := []string{AllCategories}
	seen := map[string]bool{}
	for _, t := range p.tasks.Items() {
		if !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}
	return categories
}

// TasksByCategory filters the checklist; "All" returns every task
func (p *Planner) TasksByCategory(category string) []models.Task {
	if category == AllCategories {
		return p.tasks.Items()
	}
	return p.tasks.Filter(func(t models.Task) bool { return t.Category == category })
}
