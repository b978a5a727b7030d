package repository

import (
	"context"
	"log"
	"strconv"

	"taskmanager/internal/model"
)

// ReminderRepository persists reminders. Every query joins through Tasks on
// the owning username, so reminders are only visible and mutable inside
// their owner's task set. Like the task repository, storage errors degrade
// to logs and empty results.
type ReminderRepository struct {
	db *Database
}

func NewReminderRepository(db *Database) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// ownsTask reports whether the task row belongs to the username.
func (r *ReminderRepository) ownsTask(ctx context.Context, username string, taskID int64) bool {
	db, err := r.db.Conn()
	if err != nil {
		return false
	}
	var count int64
	if err := db.WithContext(ctx).Model(&taskRow{}).
		Where("id = ? AND username = ?", taskID, username).
		Count(&count).Error; err != nil {
		log.Printf("repository: check task owner: %v", err)
		return false
	}
	return count > 0
}

// Save inserts the reminder and writes the storage-generated id back onto
// it, overwriting whatever id the caller set. Reminders for tasks outside
// the user's set are dropped.
func (r *ReminderRepository) Save(ctx context.Context, username string, reminder *model.Reminder) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: save reminder: %v", err)
		return
	}
	taskID, ok := parseRowID(reminder.TaskID)
	if !ok || !r.ownsTask(ctx, username, taskID) {
		log.Printf("repository: save reminder: no task %q for user %q", reminder.TaskID, username)
		return
	}

	row := reminderRow{
		TaskID:       taskID,
		ReminderTime: formatTimePtr(reminder.ReminderTime),
		Triggered:    boolToInt(reminder.Triggered),
		Message:      reminder.Message,
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("repository: save reminder for task %q: %v", reminder.TaskID, err)
		return
	}
	reminder.ID = strconv.FormatInt(row.ID, 10)
}

// GetAll returns every reminder attached to the user's tasks.
func (r *ReminderRepository) GetAll(ctx context.Context, username string) []model.Reminder {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: list reminders: %v", err)
		return nil
	}

	var rows []reminderRow
	if err := db.WithContext(ctx).Table("Reminders").
		Select("Reminders.*").
		Joins("JOIN Tasks ON Tasks.id = Reminders.task_id").
		Where("Tasks.username = ?", username).
		Order("Reminders.id ASC").
		Find(&rows).Error; err != nil {
		log.Printf("repository: list reminders for %q: %v", username, err)
		return nil
	}

	reminders := make([]model.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, row.toModel())
	}
	return reminders
}

// GetByID returns the reminder when it exists inside the user's task set,
// nil otherwise.
func (r *ReminderRepository) GetByID(ctx context.Context, username, id string) *model.Reminder {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: get reminder: %v", err)
		return nil
	}
	rowID, ok := parseRowID(id)
	if !ok {
		return nil
	}

	var rows []reminderRow
	if err := db.WithContext(ctx).Table("Reminders").
		Select("Reminders.*").
		Joins("JOIN Tasks ON Tasks.id = Reminders.task_id").
		Where("Reminders.id = ? AND Tasks.username = ?", rowID, username).
		Limit(1).
		Find(&rows).Error; err != nil {
		log.Printf("repository: get reminder %q: %v", id, err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	reminder := rows[0].toModel()
	return &reminder
}

// ForTask returns the reminders attached to one task of the user.
func (r *ReminderRepository) ForTask(ctx context.Context, username, taskID string) []model.Reminder {
	rowID, ok := parseRowID(taskID)
	if !ok || !r.ownsTask(ctx, username, rowID) {
		return nil
	}

	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: reminders for task: %v", err)
		return nil
	}
	var rows []reminderRow
	if err := db.WithContext(ctx).
		Where("task_id = ?", rowID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		log.Printf("repository: reminders for task %q: %v", taskID, err)
		return nil
	}

	reminders := make([]model.Reminder, 0, len(rows))
	for _, row := range rows {
		reminders = append(reminders, row.toModel())
	}
	return reminders
}

// Update rewrites the stored reminder, scoped to the user's task set.
func (r *ReminderRepository) Update(ctx context.Context, username string, reminder *model.Reminder) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: update reminder: %v", err)
		return
	}
	rowID, ok := parseRowID(reminder.ID)
	if !ok {
		log.Printf("repository: update reminder: bad id %q", reminder.ID)
		return
	}

	res := db.WithContext(ctx).Model(&reminderRow{}).
		Where("id = ? AND task_id IN (SELECT id FROM Tasks WHERE username = ?)", rowID, username).
		Updates(map[string]interface{}{
			"reminder_time": formatTimePtr(reminder.ReminderTime),
			"triggered":     boolToInt(reminder.Triggered),
			"message":       reminder.Message,
		})
	if res.Error != nil {
		log.Printf("repository: update reminder %q: %v", reminder.ID, res.Error)
	}
}

// Delete removes the reminder, scoped to the user's task set.
func (r *ReminderRepository) Delete(ctx context.Context, username, id string) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: delete reminder: %v", err)
		return
	}
	rowID, ok := parseRowID(id)
	if !ok {
		return
	}

	res := db.WithContext(ctx).
		Where("id = ? AND task_id IN (SELECT id FROM Tasks WHERE username = ?)", rowID, username).
		Delete(&reminderRow{})
	if res.Error != nil {
		log.Printf("repository: delete reminder %q: %v", id, res.Error)
	}
}
