package model

import (
	"time"

	"github.com/google/uuid"
)

// Reminder schedules a notification for a task. The id set at construction
// is a placeholder; the repository overwrites it with the storage-generated
// id on insert.
type Reminder struct {
	ID           string
	TaskID       string
	ReminderTime *time.Time
	Triggered    bool
	Message      string
}

// NewReminder creates an untriggered reminder for the given task.
func NewReminder(taskID string, at time.Time) *Reminder {
	t := at
	return &Reminder{
		ID:           uuid.NewString(),
		TaskID:       taskID,
		ReminderTime: &t,
	}
}

// IsDue reports whether the reminder time has passed and the reminder has
// not been triggered yet. Once triggered it is permanently not due.
func (r *Reminder) IsDue() bool {
	if r.ReminderTime == nil || r.Triggered {
		return false
	}
	return r.ReminderTime.Before(time.Now())
}
