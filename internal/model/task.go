package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single item in the planner. A task always has a category; it
// exclusively owns its reminder list, which is only handed out as copies.
// The id set at construction is a placeholder that the repository replaces
// with the storage-generated id on insert.
type Task struct {
	ID           string
	Name         string
	Description  string
	CreationDate time.Time
	Completed    bool
	Category     *Category
	Deadline     *time.Time
	Priority     Priority

	reminders []Reminder
}

// NewTask creates a pending task with medium priority and no deadline.
// A nil category is a programming error.
func NewTask(name, description string, category *Category) *Task {
	if category == nil {
		panic("model: task category must not be nil")
	}
	return &Task{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		CreationDate: time.Now(),
		Category:     category,
		Priority:     PriorityMedium,
	}
}

// SetCategory replaces the task category. A nil category is a programming
// error.
func (t *Task) SetCategory(c *Category) {
	if c == nil {
		panic("model: task category must not be nil")
	}
	t.Category = c
}

// SetPriority replaces the task priority, rejecting unknown levels.
func (t *Task) SetPriority(p Priority) {
	if !p.Valid() {
		panic("model: invalid task priority")
	}
	t.Priority = p
}

// AddReminder attaches a reminder to the task. A nil reminder is a
// programming error.
func (t *Task) AddReminder(r *Reminder) {
	if r == nil {
		panic("model: reminder must not be nil")
	}
	t.reminders = append(t.reminders, *r)
}

// Reminders returns a copy of the reminder list.
func (t *Task) Reminders() []Reminder {
	out := make([]Reminder, len(t.reminders))
	copy(out, t.reminders)
	return out
}

// RemoveReminder detaches the reminder with the given id and reports
// whether it was present.
func (t *Task) RemoveReminder(id string) bool {
	for i := range t.reminders {
		if t.reminders[i].ID == id {
			t.reminders = append(t.reminders[:i], t.reminders[i+1:]...)
			return true
		}
	}
	return false
}

// IsOverdue reports whether the deadline is set, the task is not completed
// and the deadline has passed.
func (t *Task) IsOverdue() bool {
	if t.Deadline == nil || t.Completed {
		return false
	}
	return t.Deadline.Before(time.Now())
}

// DaysUntilDeadline returns the whole days left until the deadline, or -1
// when no deadline is set.
func (t *Task) DaysUntilDeadline() int {
	if t.Deadline == nil {
		return -1
	}
	return int(time.Until(*t.Deadline).Hours() / 24)
}
