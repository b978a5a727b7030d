package repository

import (
	"context"
	"log"

	"gorm.io/gorm/clause"

	"taskmanager/internal/model"
)

// SettingsRepository persists per-user notification settings as a single
// row keyed by username.
type SettingsRepository struct {
	db *Database
}

func NewSettingsRepository(db *Database) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored settings, or the defaults when the user has no
// row yet. The defaults are not written back.
func (r *SettingsRepository) Get(ctx context.Context, username string) *model.NotificationSettings {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: get settings: %v", err)
		return model.DefaultNotificationSettings()
	}

	var rows []settingsRow
	if err := db.WithContext(ctx).Where("username = ?", username).Limit(1).Find(&rows).Error; err != nil {
		log.Printf("repository: get settings for %q: %v", username, err)
		return model.DefaultNotificationSettings()
	}
	if len(rows) == 0 {
		return model.DefaultNotificationSettings()
	}
	return &model.NotificationSettings{
		EmailEnabled:            rows[0].EmailEnabled == 1,
		AppNotificationsEnabled: rows[0].AppNotificationsEnabled == 1,
		DefaultReminderMinutes:  rows[0].DefaultReminderMinutes,
	}
}

// Save upserts the settings row for the username.
func (r *SettingsRepository) Save(ctx context.Context, username string, settings *model.NotificationSettings) {
	db, err := r.db.Conn()
	if err != nil {
		log.Printf("repository: save settings: %v", err)
		return
	}

	row := settingsRow{
		Username:                username,
		EmailEnabled:            boolToInt(settings.EmailEnabled),
		AppNotificationsEnabled: boolToInt(settings.AppNotificationsEnabled),
		DefaultReminderMinutes:  settings.DefaultReminderMinutes,
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		UpdateAll: true,
	}).Create(&row).Error; err != nil {
		log.Printf("repository: save settings for %q: %v", username, err)
	}
}
