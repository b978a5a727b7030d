package repository

import (
	"log"
	"strconv"
	"time"

	"taskmanager/internal/model"
	"taskmanager/internal/timeutil"
)

// Row structs pin gorm to the external schema. Dates travel as text in the
// storage format; conversion to and from time.Time happens only here.

type userRow struct {
	Username string `gorm:"column:username;primaryKey"`
	Password string `gorm:"column:password"`
	Email    string `gorm:"column:email"`
}

func (userRow) TableName() string { return "Users" }

type categoryRow struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name"`
}

func (categoryRow) TableName() string { return "Categories" }

type taskRow struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string  `gorm:"column:username"`
	Name         string  `gorm:"column:name"`
	Description  string  `gorm:"column:description"`
	CategoryID   *int64  `gorm:"column:category_id"`
	Deadline     *string `gorm:"column:deadline"`
	Priority     int     `gorm:"column:priority"`
	Completed    int     `gorm:"column:completed"`
	CreationDate string  `gorm:"column:creation_date"`
}

func (taskRow) TableName() string { return "Tasks" }

type reminderRow struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	TaskID       int64   `gorm:"column:task_id"`
	ReminderTime *string `gorm:"column:reminder_time"`
	Triggered    int     `gorm:"column:triggered"`
	Message      string  `gorm:"column:message"`
}

func (reminderRow) TableName() string { return "Reminders" }

type projectRow struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string  `gorm:"column:username"`
	Name         string  `gorm:"column:name"`
	Description  string  `gorm:"column:description"`
	StartDate    *string `gorm:"column:start_date"`
	EndDate      *string `gorm:"column:end_date"`
	CreationDate string  `gorm:"column:creation_date"`
	Completed    int     `gorm:"column:completed"`
}

func (projectRow) TableName() string { return "Projects" }

type projectTaskRow struct {
	ProjectID int64 `gorm:"column:project_id;primaryKey"`
	TaskID    int64 `gorm:"column:task_id;primaryKey"`
}

func (projectTaskRow) TableName() string { return "Project_Tasks" }

type settingsRow struct {
	Username                string `gorm:"column:username;primaryKey"`
	EmailEnabled            int    `gorm:"column:email_enabled"`
	AppNotificationsEnabled int    `gorm:"column:app_notifications_enabled"`
	DefaultReminderMinutes  int    `gorm:"column:default_reminder_minutes"`
}

func (settingsRow) TableName() string { return "Settings" }

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := timeutil.FormatStorage(*t)
	return &s
}

// parseTimePtr converts a stored date back to a time. Malformed values are
// logged and treated as unset, matching how reads degrade elsewhere.
func parseTimePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := timeutil.ParseStorage(*s)
	if err != nil {
		log.Printf("repository: bad stored date %q: %v", *s, err)
		return nil
	}
	return &t
}

func parseRowID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r reminderRow) toModel() model.Reminder {
	return model.Reminder{
		ID:           strconv.FormatInt(r.ID, 10),
		TaskID:       strconv.FormatInt(r.TaskID, 10),
		ReminderTime: parseTimePtr(r.ReminderTime),
		Triggered:    r.Triggered == 1,
		Message:      r.Message,
	}
}
