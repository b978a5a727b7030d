package repository

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/model"
)

func TestReminderSaveOverwritesPlaceholderID(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	task := seedTask(t, db, "ali", "report")
	reminders := NewReminderRepository(db)

	reminder := model.NewReminder(task.ID, time.Now().Add(time.Hour))
	reminder.ID = "client-side-guess"
	reminders.Save(context.Background(), "ali", reminder)

	assert.NotEqual(t, "client-side-guess", reminder.ID)
	_, err := strconv.ParseInt(reminder.ID, 10, 64)
	assert.NoError(t, err)
}

func TestReminderRoundTrip(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	task := seedTask(t, db, "ali", "report")
	reminders := NewReminderRepository(db)
	ctx := context.Background()

	at := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	reminder := model.NewReminder(task.ID, at)
	reminder.Message = "wrap up"
	reminders.Save(ctx, "ali", reminder)

	got := reminders.GetByID(ctx, "ali", reminder.ID)
	require.NotNil(t, got)
	assert.Equal(t, task.ID, got.TaskID)
	assert.Equal(t, "wrap up", got.Message)
	assert.False(t, got.Triggered)
	require.NotNil(t, got.ReminderTime)
	assert.True(t, got.ReminderTime.Equal(at))
}

func TestReminderSaveRejectsForeignTask(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	seedUser(t, db, "veli")
	task := seedTask(t, db, "veli", "not yours")
	reminders := NewReminderRepository(db)
	ctx := context.Background()

	reminder := model.NewReminder(task.ID, time.Now())
	placeholder := reminder.ID
	reminders.Save(ctx, "ali", reminder)

	assert.Equal(t, placeholder, reminder.ID, "save against a foreign task must not assign an id")
	assert.Empty(t, reminders.GetAll(ctx, "ali"))
}

func TestRemindersAreScopedThroughTasks(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	seedUser(t, db, "veli")
	mine := seedTask(t, db, "ali", "mine")
	reminders := NewReminderRepository(db)
	ctx := context.Background()

	reminder := model.NewReminder(mine.ID, pastTime(time.Minute))
	reminders.Save(ctx, "ali", reminder)

	assert.Len(t, reminders.GetAll(ctx, "ali"), 1)
	assert.Empty(t, reminders.GetAll(ctx, "veli"))
	assert.Nil(t, reminders.GetByID(ctx, "veli", reminder.ID))

	// A foreign update must not stick.
	foreign := *reminder
	foreign.Triggered = true
	reminders.Update(ctx, "veli", &foreign)
	got := reminders.GetByID(ctx, "ali", reminder.ID)
	require.NotNil(t, got)
	assert.False(t, got.Triggered)

	// Nor a foreign delete.
	reminders.Delete(ctx, "veli", reminder.ID)
	assert.Len(t, reminders.GetAll(ctx, "ali"), 1)
}

func TestRemindersForTask(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	one := seedTask(t, db, "ali", "one")
	two := seedTask(t, db, "ali", "two")
	reminders := NewReminderRepository(db)
	ctx := context.Background()

	reminders.Save(ctx, "ali", model.NewReminder(one.ID, time.Now()))
	reminders.Save(ctx, "ali", model.NewReminder(one.ID, time.Now().Add(time.Hour)))
	reminders.Save(ctx, "ali", model.NewReminder(two.ID, time.Now()))

	assert.Len(t, reminders.ForTask(ctx, "ali", one.ID), 2)
	assert.Len(t, reminders.ForTask(ctx, "ali", two.ID), 1)
}

func TestReminderUpdatePersistsTriggered(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	task := seedTask(t, db, "ali", "report")
	reminders := NewReminderRepository(db)
	ctx := context.Background()

	reminder := model.NewReminder(task.ID, pastTime(time.Minute))
	reminders.Save(ctx, "ali", reminder)

	reminder.Triggered = true
	reminders.Update(ctx, "ali", reminder)

	got := reminders.GetByID(ctx, "ali", reminder.ID)
	require.NotNil(t, got)
	assert.True(t, got.Triggered)
	assert.False(t, got.IsDue())
}

func TestTaskDeleteCascadesToReminders(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "ali")
	task := seedTask(t, db, "ali", "doomed")
	tasks := NewTaskRepository(db)
	reminders := NewReminderRepository(db)
	ctx := context.Background()

	reminders.Save(ctx, "ali", model.NewReminder(task.ID, time.Now()))
	require.Len(t, reminders.GetAll(ctx, "ali"), 1)

	tasks.Delete(ctx, "ali", task.ID)

	conn, err := db.Conn()
	require.NoError(t, err)
	var count int64
	require.NoError(t, conn.Table("Reminders").Count(&count).Error)
	assert.Zero(t, count)
}
