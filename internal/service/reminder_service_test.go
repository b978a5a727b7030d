package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/model"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingObserver) OnReminderDue(reminder *model.Reminder, taskID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, reminder.ID)
}

func (r *recordingObserver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func newReminderEnv(t *testing.T) (*testEnv, *TaskService, *ReminderService) {
	t.Helper()

	env := newTestEnv(t)
	env.registerUser(t, "ali")
	tasks := NewTaskService(env.tasks, "ali")
	engine := NewReminderService(env.reminders, env.settings, "ali")
	return env, tasks, engine
}

func TestCreateReminderBeforeDeadline(t *testing.T) {
	_, tasks, engine := newReminderEnv(t)
	ctx := context.Background()

	deadline := time.Now().Add(time.Hour).Truncate(time.Second)
	task := tasks.CreateTask(ctx, "report", "", &model.Category{Name: "Work"})
	task.Deadline = &deadline
	tasks.UpdateTask(ctx, task)

	reminder, err := engine.CreateReminderBeforeDeadline(ctx, task, 30)
	require.NoError(t, err)
	require.NotNil(t, reminder.ReminderTime)
	assert.True(t, reminder.ReminderTime.Equal(deadline.Add(-30*time.Minute)))

	// Thirty minutes out: not yet due.
	assert.False(t, reminder.IsDue())
	assert.Empty(t, engine.DueReminders(ctx))
}

func TestCreateReminderBeforeDeadlineRequiresDeadline(t *testing.T) {
	_, tasks, engine := newReminderEnv(t)
	ctx := context.Background()

	task := tasks.CreateTask(ctx, "no deadline", "", &model.Category{Name: "Work"})

	_, err := engine.CreateReminderBeforeDeadline(ctx, task, 30)
	assert.ErrorIs(t, err, ErrNoDeadline)
}

func TestCreateReminderBeforeDeadlineUsesSettingsDefault(t *testing.T) {
	env, tasks, engine := newReminderEnv(t)
	ctx := context.Background()

	settings := model.DefaultNotificationSettings()
	settings.DefaultReminderMinutes = 45
	env.settings.Save(ctx, "ali", settings)

	deadline := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	task := tasks.CreateTask(ctx, "report", "", &model.Category{Name: "Work"})
	task.Deadline = &deadline
	tasks.UpdateTask(ctx, task)

	reminder, err := engine.CreateReminderBeforeDeadline(ctx, task, 0)
	require.NoError(t, err)
	assert.True(t, reminder.ReminderTime.Equal(deadline.Add(-45*time.Minute)))
}

func TestCreateReminderZeroTimePanics(t *testing.T) {
	_, tasks, engine := newReminderEnv(t)
	ctx := context.Background()

	task := tasks.CreateTask(ctx, "report", "", &model.Category{Name: "Work"})
	assert.Panics(t, func() { engine.CreateReminder(ctx, task.ID, time.Time{}, "") })
}

func TestSweepNotifiesEachDueReminderExactlyOnce(t *testing.T) {
	_, tasks, engine := newReminderEnv(t)
	ctx := context.Background()

	task := tasks.CreateTask(ctx, "report", "", &model.Category{Name: "Work"})
	engine.CreateReminder(ctx, task.ID, time.Now().Add(-time.Minute), "now")
	engine.CreateReminder(ctx, task.ID, time.Now().Add(time.Hour), "later")

	observer := &recordingObserver{}
	engine.AddObserver(observer)

	assert.Equal(t, 1, engine.Sweep(ctx), "only the elapsed reminder is due")
	assert.Equal(t, 1, observer.count())

	// The triggered reminder never comes back.
	assert.Equal(t, 0, engine.Sweep(ctx))
	assert.Equal(t, 1, observer.count())
}

func TestSweepNotifiesEveryObserver(t *testing.T) {
	_, tasks, engine := newReminderEnv(t)
	ctx := context.Background()

	task := tasks.CreateTask(ctx, "report", "", &model.Category{Name: "Work"})
	engine.CreateReminder(ctx, task.ID, time.Now().Add(-time.Minute), "")

	first := &recordingObserver{}
	second := &recordingObserver{}
	engine.AddObserver(first)
	engine.AddObserver(second)
	// Registering the same observer twice is a no-op.
	engine.AddObserver(first)

	engine.Sweep(ctx)
	assert.Equal(t, 1, first.count())
	assert.Equal(t, 1, second.count())
}

func TestRemoveObserverStopsDelivery(t *testing.T) {
	_, tasks, engine := newReminderEnv(t)
	ctx := context.Background()

	task := tasks.CreateTask(ctx, "report", "", &model.Category{Name: "Work"})
	engine.CreateReminder(ctx, task.ID, time.Now().Add(-time.Minute), "")

	observer := &recordingObserver{}
	engine.AddObserver(observer)
	engine.RemoveObserver(observer)

	engine.Sweep(ctx)
	assert.Zero(t, observer.count())
}

func TestDeleteReminder(t *testing.T) {
	_, tasks, engine := newReminderEnv(t)
	ctx := context.Background()

	task := tasks.CreateTask(ctx, "report", "", &model.Category{Name: "Work"})
	reminder := engine.CreateReminder(ctx, task.ID, time.Now().Add(time.Hour), "")
	require.Len(t, engine.AllReminders(ctx), 1)

	engine.DeleteReminder(ctx, reminder.ID)
	assert.Empty(t, engine.AllReminders(ctx))
}
