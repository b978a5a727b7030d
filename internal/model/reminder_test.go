package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReminderIsDue(t *testing.T) {
	future := NewReminder("1", time.Now().Add(time.Hour))
	assert.False(t, future.IsDue())

	past := NewReminder("1", time.Now().Add(-time.Minute))
	assert.True(t, past.IsDue())

	// Triggered is terminal: the reminder is never due again.
	past.Triggered = true
	assert.False(t, past.IsDue())

	unset := &Reminder{ID: "x", TaskID: "1"}
	assert.False(t, unset.IsDue())
}

func TestProjectCompletionPercentage(t *testing.T) {
	project := NewProject("release", "")
	assert.Equal(t, 0, project.CompletionPercentage())

	category := &Category{Name: "Work"}
	done := NewTask("a", "", category)
	done.Completed = true
	pending := NewTask("b", "", category)

	project.AddTask(done)
	project.AddTask(pending)
	assert.Equal(t, 50, project.CompletionPercentage())

	assert.True(t, project.RemoveTask(pending.ID))
	assert.Equal(t, 100, project.CompletionPercentage())
}
