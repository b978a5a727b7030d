package notify

import (
	"fmt"
	"io"

	"taskmanager/internal/model"
	"taskmanager/internal/timeutil"
)

// Console prints due reminders to a writer. Dates are rendered in the
// display format, never the storage one.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) OnReminderDue(reminder *model.Reminder, taskID string) {
	when := "unknown time"
	if reminder.ReminderTime != nil {
		when = timeutil.FormatDisplay(*reminder.ReminderTime)
	}
	if reminder.Message != "" {
		fmt.Fprintf(c.out, "Reminder for task %s (%s): %s\n", taskID, when, reminder.Message)
		return
	}
	fmt.Fprintf(c.out, "Reminder for task %s (%s)\n", taskID, when)
}
