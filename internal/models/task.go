package models

// Task is a checklist item
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	DueDate   string `json:"dueDate"`
	Completed bool   `json:"completed"`
}

// DefaultTaskCategory is used for quick-add tasks
const DefaultTaskCategory = "General"

// DefaultTasks is the checklist seeded into an untouched store
func DefaultTasks() []Task {
	return []Task{
		{ID: "1", Title: "Pick a venue", Category: "Venue", DueDate: "2024-12-01", Completed: true},
		{ID: "2", Title: "Find a dress", Category: "Attire", DueDate: "2025-01-15", Completed: false},
		{ID: "3", Title: "Send Save the Dates", Category: "Stationery", DueDate: "2024-11-20", Completed: false},
	}
}

func (t Task) RecordID() string { return t.ID }

func (t Task) WithID(id string) Task {
	t.ID = id
	return t
}
